package mysql

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/store"
)

// userRow users 表结构，bson 标签与文档键一致。
type userRow struct {
	ID        string     `gorm:"column:id;type:char(24);primaryKey"                          bson:"_id"`
	Name      string     `gorm:"column:name;type:varchar(255)"                               bson:"name"`
	Email     string     `gorm:"column:email;type:varchar(255);uniqueIndex:uniq_email"       bson:"email"`
	Password  string     `gorm:"column:password;type:varchar(255)"                           bson:"password"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime:false"                      bson:"createdAt"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false"                      bson:"updatedAt,omitempty"`
	Deleted   bool       `gorm:"column:deleted;index"                                        bson:"deleted"`
}

func (userRow) TableName() string { return store.UsersCollection }

var userColumns = map[string]string{
	"_id":       "id",
	"name":      "name",
	"email":     "email",
	"password":  "password",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"deleted":   "deleted",
}

// productRow products 表结构。
type productRow struct {
	ID          string     `gorm:"column:id;type:char(24);primaryKey"                        bson:"_id"`
	Name        string     `gorm:"column:name;type:varchar(255)"                             bson:"name"`
	Description string     `gorm:"column:description;type:text"                             bson:"description"`
	Price       float64    `gorm:"column:price"                                              bson:"price"`
	Quantity    int        `gorm:"column:quantity"                                           bson:"quantity"`
	SKU         string     `gorm:"column:sku;type:varchar(128);index:idx_sku"                bson:"sku"`
	Category    string     `gorm:"column:category;type:varchar(128);index:idx_category"      bson:"category"`
	Images      stringList `gorm:"column:images;type:json"                                   bson:"images"`
	IsActive    bool       `gorm:"column:is_active"                                          bson:"isActive"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime:false"                    bson:"createdAt"`
	UpdatedAt   *time.Time `gorm:"column:updated_at;autoUpdateTime:false"                    bson:"updatedAt,omitempty"`
	Deleted     bool       `gorm:"column:deleted;index"                                      bson:"deleted"`
}

func (productRow) TableName() string { return store.ProductsCollection }

var productColumns = map[string]string{
	"_id":         "id",
	"name":        "name",
	"description": "description",
	"price":       "price",
	"quantity":    "quantity",
	"sku":         "sku",
	"category":    "category",
	"images":      "images",
	"isActive":    "is_active",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"deleted":     "deleted",
}

// stringList 以 JSON 数组保存在单列中。
type stringList []string

func (l stringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	return string(b), err
}

func (l *stringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = stringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported images value %T", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

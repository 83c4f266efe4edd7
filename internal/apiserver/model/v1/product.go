package v1

import (
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
)

// Product 商品。
type Product struct {
	resource.Base `bson:",inline"`

	Name        string   `json:"name"                  bson:"name"        validate:"required"`
	Description string   `json:"description,omitempty" bson:"description"`
	Price       float64  `json:"price"                 bson:"price"       validate:"gte=0"`
	Quantity    int      `json:"quantity"              bson:"quantity"    validate:"gte=0"`
	SKU         string   `json:"sku,omitempty"         bson:"sku"`
	Category    string   `json:"category,omitempty"    bson:"category"`
	Images      []string `json:"images"                bson:"images"`
	IsActive    *bool    `json:"isActive"              bson:"isActive"`

	// InStock 仅在查询详情时填充。
	InStock *bool `json:"inStock,omitempty" bson:"-"`
}

// ProductList 商品分页结果。
type ProductList struct {
	Total int64      `json:"total"`
	Items []*Product `json:"items"`
}

// CreateProductRequest 创建商品请求。
type CreateProductRequest struct {
	Name        string   `json:"name"        binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"       binding:"required,gte=0"`
	Quantity    int      `json:"quantity"    binding:"gte=0"`
	SKU         string   `json:"sku"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	IsActive    *bool    `json:"isActive"`
}

// Product 转换为模型，未设置的字段保持零值，由服务补充默认值。
func (r *CreateProductRequest) Product() *Product {
	p := &Product{
		Name:        r.Name,
		Description: r.Description,
		Quantity:    r.Quantity,
		SKU:         r.SKU,
		Category:    r.Category,
		Images:      r.Images,
		IsActive:    r.IsActive,
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	return p
}

// UpdateProductRequest 部分更新请求，只有出现的字段会被修改。
type UpdateProductRequest struct {
	Name        *string   `json:"name"        binding:"omitempty,min=1"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"       binding:"omitempty,gte=0"`
	Quantity    *int      `json:"quantity"    binding:"omitempty,gte=0"`
	SKU         *string   `json:"sku"`
	Category    *string   `json:"category"`
	Images      *[]string `json:"images"`
	IsActive    *bool     `json:"isActive"`
}

// Document 返回只包含已设置字段的更新文档。
func (r *UpdateProductRequest) Document() resource.Document {
	doc := resource.Document{}
	if r.Name != nil {
		doc["name"] = *r.Name
	}
	if r.Description != nil {
		doc["description"] = *r.Description
	}
	if r.Price != nil {
		doc["price"] = *r.Price
	}
	if r.Quantity != nil {
		doc["quantity"] = *r.Quantity
	}
	if r.SKU != nil {
		doc["sku"] = *r.SKU
	}
	if r.Category != nil {
		doc["category"] = *r.Category
	}
	if r.Images != nil {
		doc["images"] = *r.Images
	}
	if r.IsActive != nil {
		doc["isActive"] = *r.IsActive
	}
	return doc
}

// UpdateInventoryRequest 设置库存。
type UpdateInventoryRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

// ListProductsQuery 商品列表查询参数。
type ListProductsQuery struct {
	Limit    int64  `form:"limit"    binding:"omitempty,gte=0"`
	Offset   int64  `form:"offset"   binding:"omitempty,gte=0"`
	Category string `form:"category"`
	Detailed bool   `form:"detailed"`
}

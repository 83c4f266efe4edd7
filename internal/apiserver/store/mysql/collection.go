package mysql

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	driver "github.com/go-sql-driver/mysql"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/metrics"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
)

const (
	driverName        = "mysql"
	errDuplicateEntry = 1062
)

// collection 把文档读写映射到一张表，R 为表的行结构。
type collection[R any] struct {
	db      *gorm.DB
	name    string
	columns map[string]string
}

func newCollection[R any](db *gorm.DB, name string, columns map[string]string) *collection[R] {
	return &collection[R]{db: db, name: name, columns: columns}
}

func (c *collection[R]) Name() string { return c.name }

func (c *collection[R]) Find(ctx context.Context, filter resource.Document, opts *resource.FindOptions) (_ []resource.Document, err error) {
	defer func() { metrics.RecordDatabaseOperation(driverName, "find", c.name, err) }()

	tx, err := c.where(c.db.WithContext(ctx).Table(c.name), filter)
	if err != nil {
		return nil, err
	}
	var projections []string
	if opts != nil {
		for _, s := range opts.Sort {
			col, ok := c.columns[s.Field]
			if !ok {
				return nil, fmt.Errorf("unknown sort field %q", s.Field)
			}
			dir := "ASC"
			if s.Order < 0 {
				dir = "DESC"
			}
			tx = tx.Order(col + " " + dir)
		}
		if opts.Offset > 0 {
			tx = tx.Offset(int(opts.Offset))
		}
		if opts.Limit > 0 {
			tx = tx.Limit(int(opts.Limit))
		}
		projections = opts.Projections
	}

	var rows []R
	if err := tx.Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}

	docs := make([]resource.Document, 0, len(rows))
	for i := range rows {
		doc, err := toDocument(&rows[i], projections)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (c *collection[R]) FindOne(ctx context.Context, filter resource.Document) (resource.Document, error) {
	docs, err := c.Find(ctx, filter, &resource.FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, resource.ErrNoDocuments
	}
	return docs[0], nil
}

func (c *collection[R]) Count(ctx context.Context, filter resource.Document) (_ int64, err error) {
	defer func() { metrics.RecordDatabaseOperation(driverName, "count", c.name, err) }()

	tx, err := c.where(c.db.WithContext(ctx).Table(c.name), filter)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func (c *collection[R]) Insert(ctx context.Context, doc resource.Document) (_ resource.Document, err error) {
	defer func() { metrics.RecordDatabaseOperation(driverName, "insert", c.name, err) }()

	if _, ok := doc["_id"].(primitive.ObjectID); !ok {
		doc["_id"] = primitive.NewObjectID()
	}
	row, err := toRow[R](doc)
	if err != nil {
		return nil, err
	}
	if err := c.db.WithContext(ctx).Table(c.name).Create(row).Error; err != nil {
		return nil, mapError(err)
	}
	return c.FindOne(ctx, resource.Document{"_id": doc["_id"]})
}

func (c *collection[R]) UpdateByID(ctx context.Context, id interface{}, set resource.Document) (_ resource.Document, err error) {
	defer func() { metrics.RecordDatabaseOperation(driverName, "update", c.name, err) }()

	row, err := toRow[R](set)
	if err != nil {
		return nil, err
	}
	selected := make([]string, 0, len(set))
	for key := range set {
		col, ok := c.columns[key]
		if !ok || col == "id" {
			continue
		}
		selected = append(selected, col)
	}

	res := c.db.WithContext(ctx).Table(c.name).Where("id = ?", hexID(id)).Select(selected).Updates(row)
	if res.Error != nil {
		return nil, mapError(res.Error)
	}
	return c.FindOne(ctx, resource.Document{"_id": id})
}

// where 把文档条件转换为列等值条件。
func (c *collection[R]) where(tx *gorm.DB, filter resource.Document) (*gorm.DB, error) {
	if len(filter) == 0 {
		return tx, nil
	}
	cond := make(map[string]interface{}, len(filter))
	for key, v := range filter {
		col, ok := c.columns[key]
		if !ok {
			return nil, fmt.Errorf("unknown filter field %q", key)
		}
		if col == "id" {
			v = hexID(v)
		}
		cond[col] = v
	}
	return tx.Where(cond), nil
}

func hexID(id interface{}) interface{} {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return id
}

// toRow 通过 bson 编解码把文档转换为行结构。
func toRow[R any](doc resource.Document) (*R, error) {
	normalized := make(bson.M, len(doc))
	for k, v := range doc {
		normalized[k] = hexID(v)
	}
	raw, err := bson.Marshal(normalized)
	if err != nil {
		return nil, err
	}
	row := new(R)
	if err := bson.Unmarshal(raw, row); err != nil {
		return nil, err
	}
	return row, nil
}

func toDocument[R any](row *R, projections []string) (resource.Document, error) {
	raw, err := bson.Marshal(row)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if id, ok := doc["_id"].(string); ok {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			doc["_id"] = oid
		}
	}
	if len(projections) == 0 {
		return resource.Document(doc), nil
	}

	out := resource.Document{"_id": doc["_id"]}
	for _, f := range projections {
		if v, ok := doc[f]; ok {
			out[f] = v
		}
	}
	return out, nil
}

// mapError 将 1062 转换为 DuplicateKeyError。
func mapError(err error) error {
	var myErr *driver.MySQLError
	if stderrors.As(err, &myErr) && myErr.Number == errDuplicateEntry {
		return &resource.DuplicateKeyError{KeyValue: duplicateEntry(myErr.Message), Err: err}
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return resource.ErrNoDocuments
	}
	return err
}

// duplicateEntry 从 "Duplicate entry 'x' for key 'users.uniq_email'" 中取出 'x'。
func duplicateEntry(msg string) string {
	const prefix = "Duplicate entry "
	if !strings.HasPrefix(msg, prefix) {
		return msg
	}
	rest := msg[len(prefix):]
	if i := strings.Index(rest, " for key "); i >= 0 {
		return rest[:i]
	}
	return rest
}

// Package memory 内存存储，用于测试和本地开发。
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/store"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/metrics"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
)

type datastore struct {
	users    *Collection
	products *Collection
}

// New 创建内存存储工厂，用户邮箱、商品 SKU 唯一。
func New() store.Factory {
	return &datastore{
		users:    NewCollection(store.UsersCollection, "email"),
		products: NewCollection(store.ProductsCollection, "sku"),
	}
}

func (ds *datastore) Users() resource.Collection    { return ds.users }
func (ds *datastore) Products() resource.Collection { return ds.products }
func (ds *datastore) Ping(context.Context) error    { return nil }
func (ds *datastore) Close() error                  { return nil }

// Collection 按插入顺序保存文档的内存集合。
type Collection struct {
	name       string
	uniqueKeys []string

	mu   sync.RWMutex
	docs []resource.Document
}

// NewCollection 创建内存集合，uniqueKeys 中的字段值为空时不参与唯一性检查。
func NewCollection(name string, uniqueKeys ...string) *Collection {
	return &Collection{name: name, uniqueKeys: uniqueKeys}
}

func (c *Collection) Name() string { return c.name }

func (c *Collection) Find(_ context.Context, filter resource.Document, opts *resource.FindOptions) ([]resource.Document, error) {
	defer metrics.RecordDatabaseOperation("memory", "find", c.name, nil)

	c.mu.RLock()
	matched := make([]resource.Document, 0)
	for _, doc := range c.docs {
		if matches(doc, filter) {
			matched = append(matched, doc)
		}
	}
	c.mu.RUnlock()

	if opts == nil {
		opts = &resource.FindOptions{}
	}
	if len(opts.Sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			for _, s := range opts.Sort {
				cmp := compare(matched[i][s.Field], matched[j][s.Field])
				if cmp == 0 {
					continue
				}
				if s.Order < 0 {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}

	start := int(opts.Offset)
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if opts.Limit > 0 && start+int(opts.Limit) < end {
		end = start + int(opts.Limit)
	}

	out := make([]resource.Document, 0, end-start)
	for _, doc := range matched[start:end] {
		out = append(out, project(doc, opts.Projections))
	}
	return out, nil
}

func (c *Collection) FindOne(ctx context.Context, filter resource.Document) (resource.Document, error) {
	docs, err := c.Find(ctx, filter, &resource.FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, resource.ErrNoDocuments
	}
	return docs[0], nil
}

func (c *Collection) Count(_ context.Context, filter resource.Document) (int64, error) {
	defer metrics.RecordDatabaseOperation("memory", "count", c.name, nil)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int64
	for _, doc := range c.docs {
		if matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

func (c *Collection) Insert(_ context.Context, doc resource.Document) (_ resource.Document, err error) {
	defer func() { metrics.RecordDatabaseOperation("memory", "insert", c.name, err) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	stored := clone(doc)
	if _, ok := stored["_id"].(primitive.ObjectID); !ok {
		stored["_id"] = primitive.NewObjectID()
	}
	for _, existing := range c.docs {
		if existing["_id"] == stored["_id"] {
			return nil, &resource.DuplicateKeyError{KeyValue: resource.KeyValueString(map[string]interface{}{"_id": stored["_id"]})}
		}
	}
	if err := c.checkUnique(stored, nil); err != nil {
		return nil, err
	}

	c.docs = append(c.docs, stored)
	return clone(stored), nil
}

func (c *Collection) UpdateByID(_ context.Context, id interface{}, set resource.Document) (_ resource.Document, err error) {
	defer func() { metrics.RecordDatabaseOperation("memory", "update", c.name, err) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, doc := range c.docs {
		if doc["_id"] != id {
			continue
		}
		updated := clone(doc)
		for k, v := range set {
			if k == "_id" {
				continue
			}
			updated[k] = v
		}
		if err := c.checkUnique(updated, id); err != nil {
			return nil, err
		}
		c.docs[i] = updated
		return clone(updated), nil
	}
	return nil, resource.ErrNoDocuments
}

func (c *Collection) checkUnique(doc resource.Document, self interface{}) error {
	for _, key := range c.uniqueKeys {
		v, ok := doc[key]
		if !ok || isEmpty(v) {
			continue
		}
		for _, existing := range c.docs {
			if self != nil && existing["_id"] == self {
				continue
			}
			if equal(existing[key], v) {
				return &resource.DuplicateKeyError{KeyValue: resource.KeyValueString(map[string]interface{}{key: v})}
			}
		}
	}
	return nil
}

func matches(doc, filter resource.Document) bool {
	for k, want := range filter {
		if !equal(doc[k], want) {
			return false
		}
	}
	return true
}

func equal(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

func compare(a, b interface{}) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case primitive.DateTime:
		return float64(n), true
	}
	return 0, false
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func project(doc resource.Document, fields []string) resource.Document {
	if len(fields) == 0 {
		return clone(doc)
	}
	out := resource.Document{"_id": doc["_id"]}
	for _, f := range fields {
		if v, ok := doc[f]; ok {
			out[f] = v
		}
	}
	return out
}

func clone(doc resource.Document) resource.Document {
	out := make(resource.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

package resource

import (
	"context"
	"time"

	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

// Document 为无类型的文档，同时用作查询条件和更新内容。键名与 bson 标签一致。
type Document = map[string]interface{}

// Base 所有资源共有的字段。
type Base struct {
	ID        string     `json:"id"                  bson:"_id,omitempty"`
	CreatedAt time.Time  `json:"createdAt"           bson:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	Deleted   bool       `json:"deleted"             bson:"deleted"`
}

// GetBase 供泛型代码访问内嵌的 Base。
func (b *Base) GetBase() *Base { return b }

// Model 由内嵌 Base 的资源指针类型实现。
type Model interface {
	GetBase() *Base
}

// ptrModel 约束 PT 为 *T 且实现 Model。
type ptrModel[T any] interface {
	*T
	Model
}

// SortField 排序字段，Order 为 1 升序、-1 降序。
type SortField struct {
	Field string
	Order int
}

// FindOptions 查询选项。
type FindOptions struct {
	Limit       int64
	Offset      int64
	Sort        []SortField
	Projections []string

	// Detailed 为 true 时调用 Detailer 展开详情。
	Detailed bool
	// SkipTransformation 为 true 时不调用 Transformer。
	SkipTransformation bool
	// FilterNeedsToBePrinted 为 nil 或 true 时记录查询条件。
	FilterNeedsToBePrinted *bool
}

// WriteOptions 创建、更新选项。
type WriteOptions struct {
	// TransformRequired 为 nil 时视为 true。
	TransformRequired *bool
	Detailed          bool
	SkipLogging       bool
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

func (o *WriteOptions) transform() bool {
	return o == nil || o.TransformRequired == nil || *o.TransformRequired
}

func (o *FindOptions) printFilter() bool {
	return o == nil || o.FilterNeedsToBePrinted == nil || *o.FilterNeedsToBePrinted
}

// Collection 是资源服务依赖的存储端口。
// 返回的文档中 _id 为 primitive.ObjectID。
type Collection interface {
	Name() string
	Find(ctx context.Context, filter Document, opts *FindOptions) ([]Document, error)
	FindOne(ctx context.Context, filter Document) (Document, error)
	Count(ctx context.Context, filter Document) (int64, error)
	Insert(ctx context.Context, doc Document) (Document, error)
	UpdateByID(ctx context.Context, id interface{}, set Document) (Document, error)
}

// ErrNoDocuments 由 Collection 在 FindOne/UpdateByID 未命中时返回。
var ErrNoDocuments = errors.New("resource: no documents in result")

// DuplicateKeyError 由 Collection 在违反唯一约束时返回。
type DuplicateKeyError struct {
	KeyValue string
	Err      error
}

func (e *DuplicateKeyError) Error() string { return "duplicate key: " + e.KeyValue }
func (e *DuplicateKeyError) Unwrap() error { return e.Err }

// 生命周期钩子，具体服务按需实现。
type (
	BeforeCreator[T any] interface {
		BeforeCreate(ctx context.Context, r *T) error
	}
	AfterCreator[T any] interface {
		AfterCreate(ctx context.Context, r *T) error
	}
	BeforeUpdater[T any] interface {
		BeforeUpdate(ctx context.Context, id string, input Document, existing *T) error
	}
	AfterUpdater[T any] interface {
		AfterUpdate(ctx context.Context, id string, old, updated *T, input Document) error
	}
	Detailer[T any] interface {
		DetailedResources(ctx context.Context, rs []*T, opts *FindOptions) ([]*T, error)
	}
	Transformer[T any] interface {
		TransformResource(r *T) *T
	}
)

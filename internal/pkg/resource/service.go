/*
Package resource 提供泛型的资源服务，封装对单个集合的查询、创建与更新。

具体业务服务内嵌 *Service[T, PT]，并按需实现 BeforeCreator、AfterUpdater 等钩子接口，
通过 SetHooks 注册后，Create/Update/Find 在固定的位置调用它们：

	Create: BeforeCreate -> 基础字段 -> 校验 -> 写入 -> 详情 -> 转换 -> AfterCreate
	Update: 读取 -> BeforeUpdate -> 合并 -> 校验 -> $set -> 详情 -> 转换 -> AfterUpdate

对外的资源 ID 始终是十六进制字符串，存储层使用 ObjectID。
*/
package resource

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/metrics"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

const (
	DefaultLimit  int64 = 10
	DefaultOffset int64 = 0
)

// Service 资源服务。T 为资源结构体，PT 为其指针类型。
type Service[T any, PT ptrModel[T]] struct {
	coll     Collection
	name     string
	validate *validator.Validate
	hooks    interface{}
	now      func() time.Time
}

// Option 配置 Service。
type Option func(*options)

type options struct {
	validate *validator.Validate
	now      func() time.Time
}

// WithValidator 设置结构体校验器，未设置时跳过校验。
func WithValidator(v *validator.Validate) Option {
	return func(o *options) { o.validate = v }
}

// WithClock 替换时间来源，测试中使用。
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New 创建资源服务，name 用于日志和错误信息。
func New[T any, PT ptrModel[T]](coll Collection, name string, opts ...Option) *Service[T, PT] {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return &Service[T, PT]{
		coll:     coll,
		name:     name,
		validate: o.validate,
		now:      o.now,
	}
}

// SetHooks 注册钩子对象，通常为内嵌本服务的具体服务自身。
func (s *Service[T, PT]) SetHooks(hooks interface{}) {
	s.hooks = hooks
}

func (s *Service[T, PT]) Name() string { return s.name }

func (s *Service[T, PT]) Collection() Collection { return s.coll }

// FindResources 按条件分页查询。
func (s *Service[T, PT]) FindResources(ctx context.Context, filter Document, opts *FindOptions) (_ []*T, err error) {
	defer func(start time.Time) { metrics.RecordResourceOperation(s.name, "find", start, err) }(time.Now())

	opts = normalizeFindOptions(opts)
	if opts.printFilter() {
		log.L(ctx).Infow("Finding resources", "filters", filter, "resource", s.name)
	}

	docs, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapWriteError(err)
	}

	resources := make([]*T, 0, len(docs))
	for _, doc := range docs {
		r, err := fromDocument[T](doc)
		if err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}

	return s.finish(ctx, resources, opts.Detailed, !opts.SkipTransformation, opts)
}

// CountResources 返回满足条件的文档数。
func (s *Service[T, PT]) CountResources(ctx context.Context, filter Document) (_ int64, err error) {
	defer func(start time.Time) { metrics.RecordResourceOperation(s.name, "count", start, err) }(time.Now())

	n, err := s.coll.Count(ctx, filter)
	if err != nil {
		return 0, mapWriteError(err)
	}
	return n, nil
}

// FindResource 按 ID 查询单个资源，ID 非法或不存在时返回 404。
func (s *Service[T, PT]) FindResource(ctx context.Context, id string, opts *FindOptions) (_ *T, err error) {
	defer func(start time.Time) { metrics.RecordResourceOperation(s.name, "get", start, err) }(time.Now())

	oid, ok := ObjectID(id)
	if !ok {
		return nil, newNotFoundError(id, s.name)
	}

	var projections []string
	if opts != nil {
		projections = opts.Projections
	}
	docs, err := s.coll.Find(ctx, Document{idKey: oid}, &FindOptions{Limit: 1, Projections: projections})
	if err != nil {
		return nil, mapWriteError(err)
	}
	if len(docs) == 0 {
		return nil, newNotFoundError(id, s.name)
	}

	r, err := fromDocument[T](docs[0])
	if err != nil {
		return nil, err
	}

	detailed, transform := false, true
	if opts != nil {
		detailed, transform = opts.Detailed, !opts.SkipTransformation
	}
	out, err := s.finish(ctx, []*T{r}, detailed, transform, opts)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// FindAll 返回满足条件的全部资源，不分页，不展开详情。
func (s *Service[T, PT]) FindAll(ctx context.Context, filter Document, sort ...SortField) (_ []*T, err error) {
	defer func(start time.Time) { metrics.RecordResourceOperation(s.name, "findAll", start, err) }(time.Now())

	docs, err := s.coll.Find(ctx, filter, &FindOptions{Sort: sort})
	if err != nil {
		return nil, mapWriteError(err)
	}
	resources := make([]*T, 0, len(docs))
	for _, doc := range docs {
		r, err := fromDocument[T](doc)
		if err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}
	return s.finish(ctx, resources, false, true, nil)
}

// FindOne 返回第一个满足条件的资源，不存在时返回 nil。
func (s *Service[T, PT]) FindOne(ctx context.Context, filter Document) (*T, error) {
	doc, err := s.coll.FindOne(ctx, filter)
	if errors.Is(err, ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, mapWriteError(err)
	}
	return fromDocument[T](doc)
}

// Create 校验并写入新资源。
func (s *Service[T, PT]) Create(ctx context.Context, r *T, opts *WriteOptions) (_ *T, err error) {
	defer func(start time.Time) { metrics.RecordResourceOperation(s.name, "create", start, err) }(time.Now())

	logger := log.L(ctx)
	skipLogging := opts != nil && opts.SkipLogging
	if !skipLogging {
		logger.Infof("Creating resource of type: %s", s.name)
	}

	if h, ok := s.hooks.(BeforeCreator[T]); ok {
		if err := h.BeforeCreate(ctx, r); err != nil {
			return nil, err
		}
	}
	base := PT(r).GetBase()
	base.CreatedAt = s.now()
	base.Deleted = false

	if err := s.Validate(ctx, r); err != nil {
		return nil, err
	}

	doc, err := toDocument(r)
	if err != nil {
		return nil, err
	}
	if !skipLogging {
		logger.Debugw("Inserting resource", "resource", s.name, "document", redact(doc))
	}

	inserted, err := s.coll.Insert(ctx, doc)
	if err != nil {
		logger.Errorf("Error creating resource %s: %v", s.name, err)
		return nil, mapWriteError(err)
	}

	created, err := fromDocument[T](inserted)
	if err != nil {
		return nil, err
	}
	detailed := opts != nil && opts.Detailed
	out, err := s.finish(ctx, []*T{created}, detailed, opts.transform(), nil)
	if err != nil {
		return nil, err
	}
	created = out[0]

	if h, ok := s.hooks.(AfterCreator[T]); ok {
		if err := h.AfterCreate(ctx, created); err != nil {
			return nil, err
		}
	}

	return created, nil
}

// Update 将 input 合并到现有资源，校验后整体写回。existing 为 nil 时先按 ID 读取。
func (s *Service[T, PT]) Update(ctx context.Context, id string, input Document, existing *T, opts *WriteOptions) (_ *T, err error) {
	defer func(start time.Time) { metrics.RecordResourceOperation(s.name, "update", start, err) }(time.Now())

	logger := log.L(ctx)
	skipLogging := opts != nil && opts.SkipLogging
	if !skipLogging {
		logger.Infof("Updating resource of type: %s", s.name)
	}

	if existing == nil {
		existing, err = s.FindResource(ctx, id, &FindOptions{SkipTransformation: true})
		if err != nil {
			return nil, err
		}
	}
	oid, ok := ObjectID(id)
	if !ok {
		return nil, newNotFoundError(id, s.name)
	}
	if input == nil {
		input = Document{}
	}

	if h, ok := s.hooks.(BeforeUpdater[T]); ok {
		if err := h.BeforeUpdate(ctx, id, input, existing); err != nil {
			return nil, err
		}
	}
	if !skipLogging {
		logger.Infow("Updating resource", "resourceId", id, "input", redact(input))
	}

	current, err := toDocument(existing)
	if err != nil {
		return nil, err
	}
	merged := merge(current, input)
	merged["updatedAt"] = s.now()

	dirty, err := fromDocument[T](merged)
	if err != nil {
		return nil, NewValidationError([]FieldError{{Error: errors.Cause(err).Error()}})
	}
	if err := s.Validate(ctx, dirty); err != nil {
		return nil, err
	}

	set, err := toDocument(dirty)
	if err != nil {
		return nil, err
	}
	delete(set, idKey)

	updatedDoc, err := s.coll.UpdateByID(ctx, oid, set)
	if errors.Is(err, ErrNoDocuments) {
		return nil, newNotFoundError(id, s.name)
	}
	if err != nil {
		logger.Errorf("Error updating resource, error: %v", err)
		return nil, mapWriteError(err)
	}

	updated, err := fromDocument[T](updatedDoc)
	if err != nil {
		return nil, err
	}
	PT(updated).GetBase().ID = id

	detailed := opts != nil && opts.Detailed
	out, err := s.finish(ctx, []*T{updated}, detailed, opts.transform(), nil)
	if err != nil {
		return nil, err
	}
	updated = out[0]

	if h, ok := s.hooks.(AfterUpdater[T]); ok {
		if err := h.AfterUpdate(ctx, id, existing, updated, input); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// PassedFilters 返回列表查询的默认条件，只包含未删除的资源。
func (s *Service[T, PT]) PassedFilters(_ *http.Request) Document {
	return Document{"deleted": false}
}

// Validate 对资源做结构体校验，返回包含全部字段错误的 422。
func (s *Service[T, PT]) Validate(ctx context.Context, r *T) error {
	if s.validate == nil {
		return nil
	}
	if err := s.validate.StructCtx(ctx, r); err != nil {
		log.L(ctx).Errorf("Error while validating %s: %v", s.name, err)
		return NewValidationError(ToFieldErrors(err))
	}
	return nil
}

// finish 依次展开详情并转换资源。
func (s *Service[T, PT]) finish(ctx context.Context, rs []*T, detailed, transform bool, opts *FindOptions) ([]*T, error) {
	if len(rs) == 0 {
		return rs, nil
	}
	if detailed {
		if h, ok := s.hooks.(Detailer[T]); ok {
			var err error
			if rs, err = h.DetailedResources(ctx, rs, opts); err != nil {
				return nil, err
			}
		}
	}
	if transform {
		if h, ok := s.hooks.(Transformer[T]); ok {
			for i := range rs {
				rs[i] = h.TransformResource(rs[i])
			}
		}
	}
	return rs, nil
}

func normalizeFindOptions(opts *FindOptions) *FindOptions {
	out := FindOptions{}
	if opts != nil {
		out = *opts
	}
	if out.Limit <= 0 {
		out.Limit = DefaultLimit
	}
	if out.Offset < 0 {
		out.Offset = DefaultOffset
	}
	return &out
}

// redact 去掉日志中的密码字段。
func redact(doc Document) Document {
	if _, ok := doc["password"]; !ok {
		return doc
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	out["password"] = "******"
	return out
}

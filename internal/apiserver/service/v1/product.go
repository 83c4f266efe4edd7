package v1

import (
	"context"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/store"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/code"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/producer"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

// ProductSrv 商品库存。
type ProductSrv interface {
	Create(ctx context.Context, product *v1.Product) (*v1.Product, error)
	Get(ctx context.Context, id string, detailed bool) (*v1.Product, error)
	Update(ctx context.Context, id string, input resource.Document) (*v1.Product, error)
	UpdateInventory(ctx context.Context, id string, quantity int) (*v1.Product, error)
	SoftDelete(ctx context.Context, id string) (*v1.Product, error)
	FindBySku(ctx context.Context, sku string) (*v1.Product, error)
	FindByCategory(ctx context.Context, category string) ([]*v1.Product, error)
	List(ctx context.Context, query *v1.ListProductsQuery) (*v1.ProductList, error)
}

var _ ProductSrv = (*productService)(nil)

type productService struct {
	*resource.Service[v1.Product, *v1.Product]

	producer producer.MessageProducer
}

func newProducts(factory store.Factory, v *validator.Validate, opts Options) *productService {
	p := &productService{
		Service:  resource.New[v1.Product](factory.Products(), "Product", resource.WithValidator(v), resource.WithClock(opts.Now)),
		producer: opts.Producer,
	}
	p.SetHooks(p)
	return p
}

// BeforeCreate 补充默认值。
func (p *productService) BeforeCreate(_ context.Context, product *v1.Product) error {
	if product.IsActive == nil {
		product.IsActive = resource.Bool(true)
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	return nil
}

// AfterCreate 发布创建事件。发送失败只记录日志，不影响已写入的数据。
func (p *productService) AfterCreate(ctx context.Context, product *v1.Product) error {
	if err := p.producer.SendProductCreateMessage(ctx, product); err != nil {
		log.L(ctx).Warnw("publish product create event failed", "productId", product.ID, "error", err)
	}
	return nil
}

// AfterUpdate 发布更新事件，软删除时发布删除事件。
func (p *productService) AfterUpdate(ctx context.Context, id string, old, updated *v1.Product, _ resource.Document) error {
	var err error
	if updated.Deleted && !old.Deleted {
		err = p.producer.SendProductDeleteMessage(ctx, updated)
	} else {
		err = p.producer.SendProductUpdateMessage(ctx, updated)
	}
	if err != nil {
		log.L(ctx).Warnw("publish product event failed", "productId", id, "error", err)
	}
	return nil
}

// DetailedResources 填充库存状态。
func (p *productService) DetailedResources(_ context.Context, products []*v1.Product, _ *resource.FindOptions) ([]*v1.Product, error) {
	for _, product := range products {
		product.InStock = resource.Bool(product.Quantity > 0)
	}
	return products, nil
}

func (p *productService) Create(ctx context.Context, product *v1.Product) (*v1.Product, error) {
	return p.Service.Create(ctx, product, nil)
}

func (p *productService) Get(ctx context.Context, id string, detailed bool) (*v1.Product, error) {
	return p.FindResource(ctx, id, &resource.FindOptions{Detailed: detailed})
}

func (p *productService) Update(ctx context.Context, id string, input resource.Document) (*v1.Product, error) {
	return p.Service.Update(ctx, id, input, nil, nil)
}

// UpdateInventory 设置库存数量。
func (p *productService) UpdateInventory(ctx context.Context, id string, quantity int) (*v1.Product, error) {
	if quantity < 0 {
		return nil, errors.WithCode(code.ErrInvalidInventory, "Quantity must not be negative, got %d", quantity)
	}

	existing, err := p.FindResource(ctx, id, &resource.FindOptions{SkipTransformation: true})
	if err != nil {
		return nil, err
	}
	log.L(ctx).Infow("updating inventory", "productId", id, "from", existing.Quantity, "to", quantity)

	return p.Service.Update(ctx, id, resource.Document{"quantity": quantity}, existing, nil)
}

// SoftDelete 标记删除并下架，记录保留。
func (p *productService) SoftDelete(ctx context.Context, id string) (*v1.Product, error) {
	existing, err := p.FindResource(ctx, id, &resource.FindOptions{SkipTransformation: true})
	if err != nil {
		return nil, err
	}

	return p.Service.Update(ctx, id, resource.Document{"deleted": true, "isActive": false}, existing, nil)
}

// FindBySku 按 SKU 查询未删除的商品，不存在时返回 nil。
func (p *productService) FindBySku(ctx context.Context, sku string) (*v1.Product, error) {
	return p.FindOne(ctx, resource.Document{"sku": sku, "deleted": false})
}

// FindByCategory 返回分类下全部在售商品。
func (p *productService) FindByCategory(ctx context.Context, category string) ([]*v1.Product, error) {
	return p.FindAll(ctx, resource.Document{"category": category, "deleted": false, "isActive": true},
		resource.SortField{Field: "createdAt", Order: -1})
}

// List 分页查询在售商品，列表与总数并发查询。
func (p *productService) List(ctx context.Context, query *v1.ListProductsQuery) (*v1.ProductList, error) {
	filter := resource.Document{"deleted": false, "isActive": true}
	if query.Category != "" {
		filter["category"] = query.Category
	}
	opts := &resource.FindOptions{
		Limit:    query.Limit,
		Offset:   query.Offset,
		Sort:     []resource.SortField{{Field: "createdAt", Order: -1}},
		Detailed: query.Detailed,
	}

	var (
		items []*v1.Product
		total int64
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		items, err = p.FindResources(egCtx, filter, opts)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = p.CountResources(egCtx, filter)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &v1.ProductList{Total: total, Items: items}, nil
}

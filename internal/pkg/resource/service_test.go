package resource_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/store/memory"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/code"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

type widget struct {
	resource.Base `bson:",inline"`
	Name          string   `json:"name"  bson:"name"  validate:"required"`
	Code          string   `json:"code"  bson:"code"`
	Count         int      `json:"count" bson:"count" validate:"gte=0"`
	Tags          []string `json:"tags"  bson:"tags"`
	Label         string   `json:"label,omitempty" bson:"-"`
}

type widgetService struct {
	*resource.Service[widget, *widget]

	calls []string
}

func (s *widgetService) BeforeCreate(_ context.Context, w *widget) error {
	s.calls = append(s.calls, "beforeCreate")
	if w.Tags == nil {
		w.Tags = []string{}
	}
	return nil
}

func (s *widgetService) AfterCreate(_ context.Context, w *widget) error {
	s.calls = append(s.calls, "afterCreate:"+w.ID)
	return nil
}

func (s *widgetService) BeforeUpdate(_ context.Context, _ string, input resource.Document, _ *widget) error {
	s.calls = append(s.calls, "beforeUpdate")
	input["code"] = "touched"
	return nil
}

func (s *widgetService) AfterUpdate(_ context.Context, _ string, old, updated *widget, _ resource.Document) error {
	s.calls = append(s.calls, "afterUpdate:"+old.Name+"->"+updated.Name)
	return nil
}

func (s *widgetService) DetailedResources(_ context.Context, ws []*widget, _ *resource.FindOptions) ([]*widget, error) {
	for _, w := range ws {
		w.Label = "detailed"
	}
	return ws, nil
}

func (s *widgetService) TransformResource(w *widget) *widget {
	w.Name = "T(" + w.Name + ")"
	return w
}

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newWidgetService(t *testing.T, hooks bool) (*widgetService, *memory.Collection) {
	t.Helper()
	coll := memory.NewCollection("widgets", "code")
	svc := &widgetService{
		Service: resource.New[widget](coll, "Widget",
			resource.WithValidator(validator.New()),
			resource.WithClock(func() time.Time { return fixedNow })),
	}
	if hooks {
		svc.SetHooks(svc)
	}
	return svc, coll
}

func mustCreate(t *testing.T, svc *widgetService, w widget) *widget {
	t.Helper()
	created, err := svc.Create(context.Background(), &w, &resource.WriteOptions{TransformRequired: resource.Bool(false)})
	require.NoError(t, err)
	return created
}

func TestCreate_StampsBaseAndNormalizesID(t *testing.T) {
	svc, _ := newWidgetService(t, false)

	created, err := svc.Create(context.Background(), &widget{Name: "bolt", Count: 3}, nil)
	require.NoError(t, err)

	_, valid := resource.ObjectID(created.ID)
	assert.True(t, valid, "id should be an ObjectId hex string")
	assert.False(t, created.Deleted)
	assert.True(t, created.CreatedAt.Equal(fixedNow))
	assert.Nil(t, created.UpdatedAt)
	assert.Equal(t, 3, created.Count)
}

func TestCreate_UsesCallerID(t *testing.T) {
	svc, _ := newWidgetService(t, false)
	id := "665f1c2b9d3e4a0012345678"

	created, err := svc.Create(context.Background(), &widget{Base: resource.Base{ID: id}, Name: "nut"}, nil)
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)

	found, err := svc.FindResource(context.Background(), id, nil)
	require.NoError(t, err)
	assert.Equal(t, "nut", found.Name)
}

func TestCreate_InvalidCallerID(t *testing.T) {
	svc, _ := newWidgetService(t, false)

	_, err := svc.Create(context.Background(), &widget{Base: resource.Base{ID: "nope"}, Name: "nut"}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, code.ErrValidation))
}

func TestCreate_HookOrder(t *testing.T) {
	svc, _ := newWidgetService(t, true)

	created, err := svc.Create(context.Background(), &widget{Name: "gear"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "T(gear)", created.Name)
	assert.NotNil(t, created.Tags)
	assert.Empty(t, created.Tags)
	require.Len(t, svc.calls, 2)
	assert.Equal(t, "beforeCreate", svc.calls[0])
	assert.Equal(t, "afterCreate:"+created.ID, svc.calls[1])
}

func TestCreate_ValidationCollectsAllFields(t *testing.T) {
	svc, coll := newWidgetService(t, false)

	_, err := svc.Create(context.Background(), &widget{Count: -1}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, code.ErrValidation))
	assert.Equal(t, http.StatusUnprocessableEntity, errors.GetHTTPStatus(err))

	var rerr *resource.ResourceError
	require.True(t, errors.As(err, &rerr))
	require.Len(t, rerr.FieldErrors, 2)
	assert.Equal(t, "Name", rerr.FieldErrors[0].Field)
	assert.Equal(t, "Name is required", rerr.FieldErrors[0].Error)
	assert.Equal(t, "Count", rerr.FieldErrors[1].Field)
	assert.Equal(t, -1, rerr.FieldErrors[1].Value)

	n, err := coll.Count(context.Background(), resource.Document{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreate_DuplicateKey(t *testing.T) {
	svc, _ := newWidgetService(t, false)
	mustCreate(t, svc, widget{Name: "a", Code: "W-1"})

	_, err := svc.Create(context.Background(), &widget{Name: "b", Code: "W-1"}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, code.ErrResourceConflict))
	assert.Equal(t, `Duplicate value: {"code":"W-1"}`, errors.GetMessage(err))
}

func TestFindResource_NotFound(t *testing.T) {
	svc, _ := newWidgetService(t, false)

	tests := []struct {
		name string
		id   string
	}{
		{name: "malformed id", id: "123"},
		{name: "unknown id", id: "665f1c2b9d3e4a0012345678"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FindResource(context.Background(), tt.id, nil)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, code.ErrResourceNotFound))
			assert.Equal(t, "Resource not found for resourceId: "+tt.id+" and resource: Widget", errors.GetMessage(err))
		})
	}
}

func TestFindResource_DetailedAndTransform(t *testing.T) {
	svc, _ := newWidgetService(t, true)
	created := mustCreate(t, svc, widget{Name: "cog"})

	found, err := svc.FindResource(context.Background(), created.ID, &resource.FindOptions{Detailed: true})
	require.NoError(t, err)
	assert.Equal(t, "detailed", found.Label)
	assert.Equal(t, "T(cog)", found.Name)

	raw, err := svc.FindResource(context.Background(), created.ID, &resource.FindOptions{SkipTransformation: true})
	require.NoError(t, err)
	assert.Equal(t, "cog", raw.Name)
	assert.Empty(t, raw.Label)
}

func TestFindResources_Pagination(t *testing.T) {
	svc, _ := newWidgetService(t, false)
	for i := 0; i < 12; i++ {
		mustCreate(t, svc, widget{Name: "w", Count: i})
	}

	tests := []struct {
		name      string
		opts      *resource.FindOptions
		wantLen   int
		wantFirst int
	}{
		{name: "default limit", opts: nil, wantLen: 10, wantFirst: 0},
		{name: "offset", opts: &resource.FindOptions{Offset: 10}, wantLen: 2, wantFirst: 10},
		{name: "sorted desc", opts: &resource.FindOptions{Limit: 3, Sort: []resource.SortField{{Field: "count", Order: -1}}}, wantLen: 3, wantFirst: 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, err := svc.FindResources(context.Background(), resource.Document{"deleted": false}, tt.opts)
			require.NoError(t, err)
			require.Len(t, ws, tt.wantLen)
			assert.Equal(t, tt.wantFirst, ws[0].Count)
		})
	}

	n, err := svc.CountResources(context.Background(), resource.Document{"count": 3})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestFind_Projections(t *testing.T) {
	svc, _ := newWidgetService(t, false)
	created := mustCreate(t, svc, widget{Name: "spring", Code: "P-1", Count: 7, Tags: []string{"x"}})

	ws, err := svc.FindResources(context.Background(), resource.Document{"deleted": false},
		&resource.FindOptions{Projections: []string{"name"}})
	require.NoError(t, err)
	require.Len(t, ws, 1)

	one, err := svc.FindResource(context.Background(), created.ID, &resource.FindOptions{Projections: []string{"name"}})
	require.NoError(t, err)

	for _, w := range []*widget{ws[0], one} {
		assert.Equal(t, created.ID, w.ID)
		assert.Equal(t, "spring", w.Name)
		assert.Empty(t, w.Code)
		assert.Zero(t, w.Count)
		assert.Nil(t, w.Tags)
		assert.True(t, w.CreatedAt.IsZero())
	}
}

func TestUpdate_MergesAndStamps(t *testing.T) {
	svc, _ := newWidgetService(t, true)
	created := mustCreate(t, svc, widget{Name: "old", Count: 1, Tags: []string{"x"}})
	svc.calls = nil

	updated, err := svc.Update(context.Background(), created.ID, resource.Document{"name": "new", "id": "ignored"}, nil,
		&resource.WriteOptions{TransformRequired: resource.Bool(false)})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "new", updated.Name)
	assert.Equal(t, 1, updated.Count)
	assert.Equal(t, []string{"x"}, updated.Tags)
	assert.Equal(t, "touched", updated.Code)
	require.NotNil(t, updated.UpdatedAt)
	assert.True(t, updated.UpdatedAt.Equal(fixedNow))
	assert.Equal(t, []string{"beforeUpdate", "afterUpdate:old->new"}, svc.calls)
}

func TestUpdate_ValidationWritesNothing(t *testing.T) {
	svc, _ := newWidgetService(t, false)
	created := mustCreate(t, svc, widget{Name: "keep", Count: 2})

	_, err := svc.Update(context.Background(), created.ID, resource.Document{"count": -5}, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, code.ErrValidation))

	found, err := svc.FindResource(context.Background(), created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Count)
	assert.Nil(t, found.UpdatedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newWidgetService(t, false)

	_, err := svc.Update(context.Background(), "665f1c2b9d3e4a0012345678", resource.Document{"name": "x"}, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, code.ErrResourceNotFound))
}

func TestUpdate_DuplicateKey(t *testing.T) {
	svc, _ := newWidgetService(t, false)
	mustCreate(t, svc, widget{Name: "a", Code: "A"})
	b := mustCreate(t, svc, widget{Name: "b", Code: "B"})

	_, err := svc.Update(context.Background(), b.ID, resource.Document{"code": "A"}, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, code.ErrResourceConflict))
}

func TestFindOne(t *testing.T) {
	svc, _ := newWidgetService(t, false)
	mustCreate(t, svc, widget{Name: "one", Code: "C-1"})

	found, err := svc.FindOne(context.Background(), resource.Document{"code": "C-1"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "one", found.Name)

	missing, err := svc.FindOne(context.Background(), resource.Document{"code": "nope"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPassedFilters(t *testing.T) {
	svc, _ := newWidgetService(t, false)
	req, _ := http.NewRequest(http.MethodGet, "/widgets", nil)
	assert.Equal(t, resource.Document{"deleted": false}, svc.PassedFilters(req))
}

func TestFindAll_NoLimit(t *testing.T) {
	svc, _ := newWidgetService(t, false)
	for i := 0; i < 15; i++ {
		mustCreate(t, svc, widget{Name: "w", Count: i})
	}

	ws, err := svc.FindAll(context.Background(), resource.Document{"deleted": false}, resource.SortField{Field: "count", Order: -1})
	require.NoError(t, err)
	require.Len(t, ws, 15)
	assert.Equal(t, 14, ws[0].Count)
}

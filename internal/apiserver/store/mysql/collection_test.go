package mysql

import (
	"fmt"
	"testing"
	"time"

	driver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
)

func TestMapError(t *testing.T) {
	dup := &driver.MySQLError{Number: 1062, Message: "Duplicate entry 'jane@example.com' for key 'users.uniq_email'"}

	var dupErr *resource.DuplicateKeyError
	require.ErrorAs(t, mapError(fmt.Errorf("insert: %w", dup)), &dupErr)
	assert.Equal(t, "'jane@example.com'", dupErr.KeyValue)

	assert.ErrorIs(t, mapError(gorm.ErrRecordNotFound), resource.ErrNoDocuments)

	other := &driver.MySQLError{Number: 1045, Message: "Access denied"}
	assert.Equal(t, error(other), mapError(other))
}

func TestRowRoundTrip(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	doc := resource.Document{
		"_id":       oid,
		"name":      "Desk",
		"price":     120.5,
		"quantity":  int32(4),
		"images":    primitive.A{"a.png", "b.png"},
		"isActive":  true,
		"createdAt": primitive.NewDateTimeFromTime(created),
		"deleted":   false,
	}

	row, err := toRow[productRow](doc)
	require.NoError(t, err)
	assert.Equal(t, oid.Hex(), row.ID)
	assert.Equal(t, 4, row.Quantity)
	assert.Equal(t, stringList{"a.png", "b.png"}, row.Images)
	assert.True(t, row.CreatedAt.Equal(created))
	assert.Nil(t, row.UpdatedAt)

	back, err := toDocument(row, nil)
	require.NoError(t, err)
	assert.Equal(t, oid, back["_id"])
	assert.Equal(t, "Desk", back["name"])
	assert.NotContains(t, back, "updatedAt")

	projected, err := toDocument(row, []string{"name"})
	require.NoError(t, err)
	assert.Equal(t, resource.Document{"_id": oid, "name": "Desk"}, projected)
}

func TestStringList(t *testing.T) {
	v, err := stringList{"x"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["x"]`, v)

	var l stringList
	require.NoError(t, l.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, stringList{"a", "b"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Empty(t, l)

	assert.Error(t, l.Scan(42))
}

func TestWhereRejectsUnknownField(t *testing.T) {
	c := newCollection[productRow](nil, "products", productColumns)
	_, err := c.where(nil, resource.Document{"color": "red"})
	assert.Error(t, err)
}

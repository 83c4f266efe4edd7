//go:build integration

package mongo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/db"
)

func startMongo(t *testing.T) *datastore {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp"),
		},
		Started: true,
	}
	container, err := testcontainers.GenericContainer(ctx, req)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	client, err := db.NewMongo(ctx, &db.MongoOptions{
		URI:         fmt.Sprintf("mongodb://%s:%s", host, port.Port()),
		Database:    "ecommerce_test",
		MaxPoolSize: 5,
		MinPoolSize: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	ds := NewFactory(client, "ecommerce_test").(*datastore)
	require.NoError(t, EnsureIndexes(ctx, ds.database))
	return ds
}

func TestCollection_CRUD(t *testing.T) {
	ds := startMongo(t)
	ctx := context.Background()
	products := ds.Products()

	inserted, err := products.Insert(ctx, resource.Document{"name": "Keyboard", "sku": "KB-1", "price": 49.5, "deleted": false})
	require.NoError(t, err)
	id, ok := inserted["_id"].(primitive.ObjectID)
	require.True(t, ok)

	docs, err := products.Find(ctx, resource.Document{"deleted": false}, &resource.FindOptions{Limit: 10, Projections: []string{"name"}})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Keyboard", docs[0]["name"])
	assert.NotContains(t, docs[0], "price")

	updated, err := products.UpdateByID(ctx, id, resource.Document{"price": 39.0})
	require.NoError(t, err)
	assert.Equal(t, 39.0, updated["price"])

	n, err := products.Count(ctx, resource.Document{"sku": "KB-1"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = products.UpdateByID(ctx, primitive.NewObjectID(), resource.Document{"price": 1.0})
	assert.ErrorIs(t, err, resource.ErrNoDocuments)
}

func TestCollection_DuplicateKey(t *testing.T) {
	ds := startMongo(t)
	ctx := context.Background()
	users := ds.Users()

	_, err := users.Insert(ctx, resource.Document{"email": "jane@example.com"})
	require.NoError(t, err)

	_, err = users.Insert(ctx, resource.Document{"email": "jane@example.com"})
	var dup *resource.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Contains(t, dup.KeyValue, "jane@example.com")

	// 空 SKU 不参与唯一索引
	products := ds.Products()
	_, err = products.Insert(ctx, resource.Document{"name": "a", "sku": ""})
	require.NoError(t, err)
	_, err = products.Insert(ctx, resource.Document{"name": "b", "sku": ""})
	require.NoError(t, err)
}

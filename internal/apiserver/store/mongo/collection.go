package mongo

import (
	"context"
	stderrors "errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/metrics"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
)

const driverName = "mongo"

type collection struct {
	coll *mongo.Collection
}

func newCollection(coll *mongo.Collection) *collection {
	return &collection{coll: coll}
}

func (c *collection) Name() string { return c.coll.Name() }

func (c *collection) Find(ctx context.Context, filter resource.Document, opts *resource.FindOptions) (_ []resource.Document, err error) {
	defer func() { metrics.RecordDatabaseOperation(driverName, "find", c.coll.Name(), err) }()

	findOpts := options.Find()
	if opts != nil {
		findOpts.SetSkip(opts.Offset)
		if opts.Limit > 0 {
			findOpts.SetLimit(opts.Limit)
		}
		if len(opts.Sort) > 0 {
			sort := bson.D{}
			for _, s := range opts.Sort {
				sort = append(sort, bson.E{Key: s.Field, Value: s.Order})
			}
			findOpts.SetSort(sort)
		}
		if len(opts.Projections) > 0 {
			projection := bson.M{}
			for _, f := range opts.Projections {
				projection[f] = 1
			}
			findOpts.SetProjection(projection)
		}
	}

	cur, err := c.coll.Find(ctx, toFilter(filter), findOpts)
	if err != nil {
		return nil, mapError(err)
	}
	defer cur.Close(ctx)

	docs := make([]resource.Document, 0)
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, resource.Document(doc))
	}
	return docs, cur.Err()
}

func (c *collection) FindOne(ctx context.Context, filter resource.Document) (_ resource.Document, err error) {
	defer func() { metrics.RecordDatabaseOperation(driverName, "findOne", c.coll.Name(), err) }()

	var doc bson.M
	if err := c.coll.FindOne(ctx, toFilter(filter)).Decode(&doc); err != nil {
		return nil, mapError(err)
	}
	return resource.Document(doc), nil
}

func (c *collection) Count(ctx context.Context, filter resource.Document) (_ int64, err error) {
	defer func() { metrics.RecordDatabaseOperation(driverName, "count", c.coll.Name(), err) }()

	return c.coll.CountDocuments(ctx, toFilter(filter))
}

func (c *collection) Insert(ctx context.Context, doc resource.Document) (_ resource.Document, err error) {
	defer func() { metrics.RecordDatabaseOperation(driverName, "insert", c.coll.Name(), err) }()

	res, err := c.coll.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return nil, mapError(err)
	}

	var inserted bson.M
	if err := c.coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&inserted); err != nil {
		return nil, mapError(err)
	}
	return resource.Document(inserted), nil
}

func (c *collection) UpdateByID(ctx context.Context, id interface{}, set resource.Document) (_ resource.Document, err error) {
	defer func() { metrics.RecordDatabaseOperation(driverName, "update", c.coll.Name(), err) }()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated bson.M
	err = c.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(set)}, opts).Decode(&updated)
	if err != nil {
		return nil, mapError(err)
	}
	return resource.Document(updated), nil
}

func toFilter(filter resource.Document) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return bson.M(filter)
}

// mapError 转换驱动错误为 resource 包定义的错误。
func mapError(err error) error {
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return resource.ErrNoDocuments
	}
	if mongo.IsDuplicateKeyError(err) {
		return &resource.DuplicateKeyError{KeyValue: duplicateKeyValue(err), Err: err}
	}
	return err
}

// duplicateKeyValue 从 "E11000 ... dup key: { email: \"a@b.c\" }" 中取出键值部分。
func duplicateKeyValue(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, "dup key: "); i >= 0 {
		return strings.TrimSpace(msg[i+len("dup key: "):])
	}
	return msg
}

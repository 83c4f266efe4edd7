package resource

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

const (
	idKey  = "_id"
	jsonID = "id"
)

// ObjectID 将十六进制字符串解析为 ObjectID。
func ObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// toDocument 把资源编码为文档。非空 ID 转换为 ObjectID。
func toDocument(r interface{}) (Document, error) {
	raw, err := bson.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "encode resource")
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "decode resource")
	}

	out := Document(doc)
	if id, ok := out[idKey].(string); ok {
		oid, valid := ObjectID(id)
		if !valid {
			return nil, NewValidationError([]FieldError{{Field: jsonID, Error: "id must be a valid ObjectId", Value: id}})
		}
		out[idKey] = oid
	}
	return out, nil
}

// fromDocument 把文档解码为资源，_id 统一转换为十六进制字符串。
func fromDocument[T any](doc Document) (*T, error) {
	normalized := make(Document, len(doc))
	for k, v := range doc {
		if k == "__v" {
			continue
		}
		normalized[k] = v
	}
	if oid, ok := normalized[idKey].(primitive.ObjectID); ok {
		normalized[idKey] = oid.Hex()
	}

	raw, err := bson.Marshal(normalized)
	if err != nil {
		return nil, errors.Wrap(err, "encode document")
	}
	r := new(T)
	if err := bson.Unmarshal(raw, r); err != nil {
		return nil, errors.Wrap(err, "decode document")
	}
	return r, nil
}

// merge 返回 base 与 input 合并后的新文档，input 优先。
func merge(base, input Document) Document {
	out := make(Document, len(base)+len(input))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range input {
		out[k] = v
	}
	delete(out, jsonID)
	delete(out, idKey)
	return out
}

package store

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Serialize converts a raw stored document into its transport form: _id is
// renamed to id and stringified, remaining ObjectID values become hex
// strings, and datetimes become ISO 8601 strings in UTC. Other fields pass
// through untouched; absent fields stay absent. The input map is not
// modified.
func Serialize(doc bson.M) bson.M {
	if doc == nil {
		return nil
	}
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	if id, ok := out["_id"]; ok {
		delete(out, "_id")
		out["id"] = stringID(id)
	}
	for k, v := range out {
		switch t := v.(type) {
		case primitive.ObjectID:
			out[k] = t.Hex()
		case primitive.DateTime:
			out[k] = t.Time().UTC().Format(time.RFC3339Nano)
		case time.Time:
			out[k] = t.UTC().Format(time.RFC3339Nano)
		}
	}
	return out
}

func stringID(v any) string {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

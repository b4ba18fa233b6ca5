package store

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSerializeRenamesID(t *testing.T) {
	oid := primitive.NewObjectID()
	out := Serialize(bson.M{"_id": oid})

	if _, ok := out["_id"]; ok {
		t.Fatal("_id should be removed")
	}
	if got := out["id"]; got != oid.Hex() {
		t.Fatalf("id = %v, want %v", got, oid.Hex())
	}
	if len(out) != 1 {
		t.Fatalf("expected exactly one field, got %v", out)
	}
}

func TestSerializeObjectIDValues(t *testing.T) {
	ref := primitive.NewObjectID()
	out := Serialize(bson.M{"parent": ref, "note": "keep"})

	if got := out["parent"]; got != ref.Hex() {
		t.Fatalf("parent = %v, want %v", got, ref.Hex())
	}
	if got := out["note"]; got != "keep" {
		t.Fatalf("note = %v", got)
	}
}

func TestSerializeDatetimes(t *testing.T) {
	at := time.Date(2025, 8, 17, 10, 30, 0, 0, time.UTC)

	out := Serialize(bson.M{
		"created_at": primitive.NewDateTimeFromTime(at),
		"updated_at": at,
	})

	want := "2025-08-17T10:30:00Z"
	if got := out["created_at"]; got != want {
		t.Fatalf("created_at = %v, want %v", got, want)
	}
	if got := out["updated_at"]; got != want {
		t.Fatalf("updated_at = %v, want %v", got, want)
	}
}

func TestSerializeNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2025, 8, 17, 12, 0, 0, 0, loc)

	out := Serialize(bson.M{"created_at": at})
	if got := out["created_at"]; got != "2025-08-17T10:00:00Z" {
		t.Fatalf("created_at = %v", got)
	}
}

func TestSerializeLeavesAbsentFieldsAbsent(t *testing.T) {
	out := Serialize(bson.M{"role": "user"})
	if len(out) != 1 {
		t.Fatalf("no fields should be invented: %v", out)
	}
	if _, ok := out["id"]; ok {
		t.Fatal("id should not appear without _id")
	}
}

func TestSerializeDoesNotMutateInput(t *testing.T) {
	oid := primitive.NewObjectID()
	in := bson.M{"_id": oid, "created_at": primitive.NewDateTimeFromTime(time.Now())}

	Serialize(in)

	if _, ok := in["_id"]; !ok {
		t.Fatal("input lost its _id")
	}
	if _, ok := in["created_at"].(primitive.DateTime); !ok {
		t.Fatal("input datetime was rewritten")
	}
}

func TestSerializeNil(t *testing.T) {
	if out := Serialize(nil); out != nil {
		t.Fatalf("expected nil, got %v", out)
	}
}

func TestSerializeStringIDPassesThrough(t *testing.T) {
	out := Serialize(bson.M{"_id": "already-a-string"})
	if got := out["id"]; got != "already-a-string" {
		t.Fatalf("id = %v", got)
	}
}

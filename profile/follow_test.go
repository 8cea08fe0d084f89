package profile

import (
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repeating a follow leaves the $addToSet untouched, and the counters must
// only move when the set itself moved.
func TestSetChanged(t *testing.T) {
	if setChanged(&mongo.UpdateResult{MatchedCount: 1}) {
		t.Error("matched but unmodified update should not count as a change")
	}
	if !setChanged(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}) {
		t.Error("modified set should count as a change")
	}
	if !setChanged(&mongo.UpdateResult{UpsertedCount: 1}) {
		t.Error("fresh upsert should count as a change")
	}
}

func TestUpdateFollowRelationshipRejectsUnknownAction(t *testing.T) {
	if _, err := UpdateFollowRelationship("u1", "u2", "block"); err == nil {
		t.Error("expected an error for an unknown action")
	}
}

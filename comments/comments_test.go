package comments

import "testing"

// A comment must only be addressable through the entity path it belongs to,
// so the lookup filter has to pin entity type and id alongside the comment id.
func TestCommentFilterScopesEntityPath(t *testing.T) {
	filter := commentFilter("spot", "s123", "c456")

	if filter["commentid"] != "c456" {
		t.Errorf("commentid = %v, want c456", filter["commentid"])
	}
	if filter["entity_type"] != "spot" {
		t.Errorf("entity_type = %v, want spot", filter["entity_type"])
	}
	if filter["entity_id"] != "s123" {
		t.Errorf("entity_id = %v, want s123", filter["entity_id"])
	}
	if len(filter) != 3 {
		t.Errorf("filter has %d keys, want 3", len(filter))
	}
}

package utils

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		url      string
		wantSkip int64
		wantLim  int64
	}{
		{"/api/spots/spots", 0, 20},
		{"/api/spots/spots?page=3&limit=10", 20, 10},
		{"/api/spots/spots?page=0&limit=-5", 0, 20},
		{"/api/spots/spots?limit=5000", 0, 100},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		skip, limit := ParsePagination(r, 20, 100)
		if skip != tt.wantSkip || limit != tt.wantLim {
			t.Errorf("ParsePagination(%q) = (%d, %d), want (%d, %d)",
				tt.url, skip, limit, tt.wantSkip, tt.wantLim)
		}
	}
}

func TestParseFloat(t *testing.T) {
	if got, err := ParseFloat(" 12.5 "); err != nil || got != 12.5 {
		t.Errorf("ParseFloat(\" 12.5 \") = (%v, %v), want (12.5, nil)", got, err)
	}
	if got, err := ParseFloat("-90"); err != nil || got != -90 {
		t.Errorf("ParseFloat(\"-90\") = (%v, %v), want (-90, nil)", got, err)
	}
	for _, input := range []string{"abc", "", "12.5.6"} {
		if _, err := ParseFloat(input); err == nil {
			t.Errorf("ParseFloat(%q) should fail", input)
		}
	}
}

func TestParseSort(t *testing.T) {
	fallback := bson.D{{Key: "created_at", Value: -1}}
	allowed := map[string]bson.D{
		"popular": {{Key: "likes", Value: -1}},
	}

	if got := ParseSort("popular", fallback, allowed); got[0].Key != "likes" {
		t.Errorf("expected likes sort, got %v", got)
	}
	if got := ParseSort("POPULAR", fallback, allowed); got[0].Key != "likes" {
		t.Errorf("sort lookup should be case-insensitive, got %v", got)
	}
	if got := ParseSort("bogus", fallback, allowed); got[0].Key != "created_at" {
		t.Errorf("expected fallback sort, got %v", got)
	}
	if got := ParseSort("", fallback, nil); got[0].Key != "created_at" {
		t.Errorf("expected fallback sort with nil map, got %v", got)
	}
}

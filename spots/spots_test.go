package spots

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newSpotForm(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	writer.Close()

	r := httptest.NewRequest("POST", "/api/spots/spot", body)
	r.Header.Set("Content-Type", writer.FormDataContentType())
	return r
}

func TestParseSpotFormData(t *testing.T) {
	valid := map[string]string{
		"name":        "Hidden Falls",
		"description": "A waterfall off the main trail",
		"category":    "nature",
		"lat":         "46.85",
		"lng":         "7.52",
		"tags":        "waterfall, Hiking",
	}

	spot, err := parseSpotFormData(newSpotForm(t, valid))
	if err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
	if spot.Location == nil || spot.Location.Coordinates[0] != 7.52 || spot.Location.Coordinates[1] != 46.85 {
		t.Errorf("unexpected location %v", spot.Location)
	}
	if len(spot.Tags) != 2 {
		t.Errorf("tags = %v, want 2 normalized tags", spot.Tags)
	}
}

func TestParseSpotFormDataRejectsBadCoordinates(t *testing.T) {
	tests := []struct {
		name string
		lat  string
		lng  string
	}{
		{"non-numeric lat", "abc", "7.52"},
		{"non-numeric lng", "46.85", "xyz"},
		{"lat out of range", "91", "7.52"},
		{"lng out of range", "46.85", "181"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := map[string]string{
				"name":        "Hidden Falls",
				"description": "A waterfall off the main trail",
				"category":    "nature",
				"lat":         tt.lat,
				"lng":         tt.lng,
			}
			if _, err := parseSpotFormData(newSpotForm(t, fields)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestGetNearbySpotsRejectsMalformedCoordinates(t *testing.T) {
	tests := []string{
		"/api/spots/nearby",
		"/api/spots/nearby?lat=abc&lng=7.52",
		"/api/spots/nearby?lat=46.85&lng=xyz",
		"/api/spots/nearby?lat=120&lng=7.52",
	}

	for _, url := range tests {
		r := httptest.NewRequest("GET", url, nil)
		w := httptest.NewRecorder()
		GetNearbySpots(w, r, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("GET %s = %d, want %d", url, w.Code, http.StatusBadRequest)
		}
	}
}

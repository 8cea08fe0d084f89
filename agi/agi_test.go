package agi

import "testing"

func TestPaginateList(t *testing.T) {
	data := []map[string]string{
		{"name": "a"}, {"name": "b"}, {"name": "c"},
		{"name": "d"}, {"name": "e"}, {"name": "f"}, {"name": "g"},
	}

	page1 := paginateList(data, 1, 6)
	if len(page1) != 6 {
		t.Errorf("expected 6 items on page 1, got %d", len(page1))
	}

	page2 := paginateList(data, 2, 6)
	if len(page2) != 1 {
		t.Errorf("expected 1 item on page 2, got %d", len(page2))
	}

	page3 := paginateList(data, 3, 6)
	if len(page3) != 0 {
		t.Errorf("expected empty page past the end, got %d items", len(page3))
	}
}

func TestPaginateListEmpty(t *testing.T) {
	if got := paginateList([]map[string]string{}, 1, 6); len(got) != 0 {
		t.Errorf("expected empty result for empty input, got %d items", len(got))
	}
}

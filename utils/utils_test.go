package utils

import "testing"

func TestSplitTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"hiking", []string{"hiking"}},
		{"Hiking, Sunset , hiking", []string{"hiking", "sunset"}},
		{" , ,", []string{}},
		{"beach,BEACH,Beach", []string{"beach"}},
	}

	for _, tt := range tests {
		got := SplitTags(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("SplitTags(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitTags(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(16)
	b := GenerateRandomString(16)
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("expected length 16, got %d and %d", len(a), len(b))
	}
	if a == b {
		t.Error("two generated strings should not collide")
	}
}

func TestContains(t *testing.T) {
	roles := []string{"user", "moderator"}
	if !Contains(roles, "moderator") {
		t.Error("expected moderator to be found")
	}
	if Contains(roles, "admin") {
		t.Error("did not expect admin to be found")
	}
}

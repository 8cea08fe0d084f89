package userdata

import "testing"

func TestUndoes(t *testing.T) {
	tests := []struct {
		action   string
		wantBase string
		wantUndo bool
	}{
		{"unfollow", "follow", true},
		{"unlike", "like", true},
		{"unsave", "save", true},
		{"like", "", false},
		{"follow", "", false},
		{"undo", "", false},
	}

	for _, tt := range tests {
		base, isUndo := undoes(tt.action)
		if base != tt.wantBase || isUndo != tt.wantUndo {
			t.Errorf("undoes(%q) = (%q, %v), want (%q, %v)",
				tt.action, base, isUndo, tt.wantBase, tt.wantUndo)
		}
	}
}

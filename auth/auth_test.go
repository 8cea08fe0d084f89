package auth

import (
	"strings"
	"testing"
)

// Registration input must never leak into server-managed fields, even when a
// request body carries counter or timestamp values.
func TestNewUserStartsClean(t *testing.T) {
	user := newUser("wanda", "wanda@example.com", "hashed")

	if user.FollowersCount != 0 || user.FollowingCount != 0 {
		t.Errorf("counters = (%d, %d), want zero", user.FollowersCount, user.FollowingCount)
	}
	if !user.LastLogin.IsZero() {
		t.Errorf("last login = %v, want zero time", user.LastLogin)
	}
	if len(user.Role) != 1 || user.Role[0] != "user" {
		t.Errorf("role = %v, want [user]", user.Role)
	}
	if user.Password != "" || user.PasswordHash != "hashed" {
		t.Error("only the hash should be stored")
	}
	if !strings.HasPrefix(user.UserID, "u") || len(user.UserID) != 11 {
		t.Errorf("userid = %q, want u-prefixed generated id", user.UserID)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("created/updated timestamps should be set")
	}
	if user.Interests == nil || len(user.Interests) != 0 {
		t.Errorf("interests = %v, want empty slice", user.Interests)
	}
}

func TestHashTokenIsStable(t *testing.T) {
	a := hashToken("refresh-token")
	b := hashToken("refresh-token")
	if a != b {
		t.Error("hashing the same token twice should match")
	}
	if a == hashToken("other-token") {
		t.Error("different tokens should not collide")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

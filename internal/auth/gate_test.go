package auth_test

import (
	"testing"

	"github.com/ferdiebergado/verikit/internal/auth"
	"github.com/ferdiebergado/verikit/internal/user"
)

func TestCanLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user user.User
		want bool
	}{
		{"Verified user can log in", user.User{IsEmailVerified: true}, true},
		{"Unverified user is gated", user.User{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, want := auth.CanLogin(tc.user), tc.want
			if got != want {
				t.Errorf("auth.CanLogin(u) = %v, want: %v", got, want)
			}
		})
	}
}

package auth

import "github.com/ferdiebergado/verikit/internal/user"

// CanLogin reports whether the account may receive a session. It is a pure
// predicate over the verification flag, consulted only after the credential
// check so callers cannot tell a bad password from an unverified account.
func CanLogin(u user.User) bool {
	return u.IsEmailVerified
}

package security

import (
	"net/http"
	"time"
)

// HardenedCookie returns a cookie with the attributes locked down for
// credential-bearing values. A non-positive duration expires the cookie.
func HardenedCookie(name, val string, duration time.Duration) *http.Cookie {
	maxAge := int(duration.Seconds())
	if duration <= 0 {
		maxAge = -1
	}

	return &http.Cookie{
		Name:     name,
		Value:    val,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

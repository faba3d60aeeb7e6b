package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var ErrInvalidCSRFToken = errors.New("invalid csrf token")

// CSRFCookieBaker bakes double-submit CSRF cookies signed with an HMAC pepper.
type CSRFCookieBaker struct {
	name       string
	length     uint32
	expiration time.Duration
	pepper     string
}

func NewCSRFCookieBaker(name string, length uint32, expiration time.Duration, pepper string) *CSRFCookieBaker {
	return &CSRFCookieBaker{
		name:       name,
		length:     length,
		expiration: expiration,
		pepper:     pepper,
	}
}

func (c *CSRFCookieBaker) Bake() (*http.Cookie, error) {
	token, err := GenerateRandomBytesURLEncoded(c.length)
	if err != nil {
		return nil, err
	}

	h := hmac.New(sha256.New, []byte(c.pepper))
	h.Write([]byte(token))
	signature := base64.RawURLEncoding.EncodeToString(h.Sum(nil))

	signedToken := token + ":" + signature

	csrfCookie := HardenedCookie(c.name, signedToken, c.expiration)
	// The client script must read the token to echo it in a header.
	csrfCookie.HttpOnly = false

	return csrfCookie, nil
}

// Check verifies the signature of the provided CSRF token.
func (c *CSRFCookieBaker) Check(csrfCookie *http.Cookie) error {
	parts := strings.SplitN(csrfCookie.Value, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("split signed token: %w", ErrInvalidCSRFToken)
	}
	token, sig := parts[0], parts[1]

	sigBytes, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return fmt.Errorf("base64 decode signature: %w", err)
	}

	h := hmac.New(sha256.New, []byte(c.pepper))
	h.Write([]byte(token))
	expectedSig := h.Sum(nil)

	if ok := hmac.Equal(sigBytes, expectedSig); !ok {
		return fmt.Errorf("hmac compare: %w", ErrInvalidCSRFToken)
	}
	return nil
}

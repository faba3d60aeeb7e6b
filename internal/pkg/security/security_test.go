package security_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferdiebergado/verikit/internal/pkg/security"
)

func TestGenerateRandomBytes(t *testing.T) {
	t.Parallel()

	const length = 32

	first, err := security.GenerateRandomBytes(length)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(first), length; got != want {
		t.Errorf("len(first) = %d, want: %d", got, want)
	}

	second, err := security.GenerateRandomBytes(length)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) == string(second) {
		t.Error("two draws returned identical bytes")
	}
}

func TestConstantTimeCompareStr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"Equal strings", "secret", "secret", true},
		{"Different strings", "secret", "Secret", false},
		{"Different lengths", "secret", "secret1", false},
		{"Both empty", "", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, want := security.ConstantTimeCompareStr(tc.a, tc.b), tc.want
			if got != want {
				t.Errorf("ConstantTimeCompareStr(%q, %q) = %v, want: %v", tc.a, tc.b, got, want)
			}
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"Well-formed bearer token", "Bearer abc123", "abc123", false},
		{"Missing header", "", "", true},
		{"No Bearer prefix", "Basic abc123", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			got, err := security.ExtractBearerToken(req)
			if tc.wantErr {
				if err == nil {
					t.Error("ExtractBearerToken() = nil, want an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("ExtractBearerToken() = %q, want: %q", got, tc.want)
			}
		})
	}
}

func TestHardenedCookie(t *testing.T) {
	t.Parallel()

	t.Run("Live cookie", func(t *testing.T) {
		t.Parallel()

		cookie := security.HardenedCookie("refresh_token", "value", time.Hour)
		if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteStrictMode {
			t.Errorf("cookie attributes are not hardened: %+v", cookie)
		}
		if got, want := cookie.MaxAge, int(time.Hour.Seconds()); got != want {
			t.Errorf("cookie.MaxAge = %d, want: %d", got, want)
		}
	})

	t.Run("Expiring cookie", func(t *testing.T) {
		t.Parallel()

		cookie := security.HardenedCookie("refresh_token", "", -1)
		if got, want := cookie.MaxAge, -1; got != want {
			t.Errorf("cookie.MaxAge = %d, want: %d", got, want)
		}
	})
}

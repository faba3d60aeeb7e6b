package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ferdiebergado/verikit/internal/middleware"
	"github.com/ferdiebergado/verikit/internal/pkg/message"
	"github.com/ferdiebergado/verikit/internal/pkg/web"
)

type testPayload struct {
	Email string `json:"email"`
}

func TestDecodePayload(t *testing.T) {
	t.Parallel()

	const bodySize = 1 << 10

	tests := []struct {
		name string
		body string
		code int
	}{
		{"Well-formed payload", `{"email":"test@example.com"}`, http.StatusOK},
		{"Malformed JSON", `{"email":`, http.StatusBadRequest},
		{"Unknown field", `{"email":"a@b.c","extra":true}`, http.StatusUnprocessableEntity},
		{"Trailing data after the object", `{"email":"a@b.c"}{"email":"x@y.z"}`, http.StatusBadRequest},
		{"Body exceeds the limit", `{"email":"` + strings.Repeat("a", bodySize) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var decoded testPayload
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				params, err := web.ParamsFromContext[testPayload](r.Context())
				if err != nil {
					t.Errorf("payload missing from context: %v", err)
				}
				decoded = params
				w.WriteHeader(http.StatusOK)
			})

			handler := middleware.DecodePayload[testPayload](bodySize)(next)
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			gotCode, wantCode := rec.Code, tc.code
			if gotCode != wantCode {
				t.Errorf(message.FmtErrStatusCode, gotCode, wantCode)
			}

			if tc.code == http.StatusOK && decoded.Email != "test@example.com" {
				t.Errorf("decoded.Email = %q, want: %q", decoded.Email, "test@example.com")
			}
		})
	}
}

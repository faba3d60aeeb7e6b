package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/verikit/internal/middleware"
	"github.com/ferdiebergado/verikit/internal/pkg/message"
	"github.com/ferdiebergado/verikit/internal/pkg/web"
	"github.com/ferdiebergado/verikit/internal/platform/validation"
)

func TestValidateInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		ctx          context.Context
		validateFunc func(s any) map[string]string
		code         int
	}{
		{
			name: "Valid payload passes through",
			ctx:  web.NewContextWithParams(context.Background(), testPayload{Email: "test@example.com"}),
			code: http.StatusOK,
		},
		{
			name: "Validation errors are rejected",
			ctx:  web.NewContextWithParams(context.Background(), testPayload{}),
			validateFunc: func(s any) map[string]string {
				return map[string]string{"email": "email is required"}
			},
			code: http.StatusBadRequest,
		},
		{
			name: "Payload missing from the context",
			ctx:  context.Background(),
			code: http.StatusBadRequest,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			validator := &validation.StubValidator{ValidateStructFunc: tc.validateFunc}
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			handler := middleware.ValidateInput[testPayload](validator)(next)
			req := httptest.NewRequestWithContext(tc.ctx, http.MethodPost, "/", http.NoBody)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			gotCode, wantCode := rec.Code, tc.code
			if gotCode != wantCode {
				t.Errorf(message.FmtErrStatusCode, gotCode, wantCode)
			}
		})
	}
}

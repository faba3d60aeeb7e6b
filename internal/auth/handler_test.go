package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferdiebergado/verikit/internal/auth"
	"github.com/ferdiebergado/verikit/internal/pkg/message"
	"github.com/ferdiebergado/verikit/internal/pkg/security"
	"github.com/ferdiebergado/verikit/internal/pkg/web"
	"github.com/ferdiebergado/verikit/internal/platform/jwt"
	"github.com/ferdiebergado/verikit/internal/user"
	"github.com/ferdiebergado/verikit/internal/verification"
)

func okBaker() *security.StubBaker {
	return &security.StubBaker{
		BakeFunc: func() (*http.Cookie, error) {
			return &http.Cookie{Name: "csrf_token", Value: "csrf-value"}, nil
		},
		CheckFunc: func(cookie *http.Cookie) error {
			return nil
		},
	}
}

func TestHandler_RegisterUser(t *testing.T) {
	t.Parallel()

	params := auth.RegisterUserRequest{
		Username: testUsername,
		Email:    testEmail,
		Password: testPass,
	}

	tests := []struct {
		name         string
		registerFunc func(ctx context.Context, params auth.RegisterUserParams) (user.User, error)
		code         int
	}{
		{"Successful registration",
			func(ctx context.Context, params auth.RegisterUserParams) (user.User, error) {
				return user.User{ID: "1", Username: params.Username, Email: params.Email}, nil
			},
			http.StatusCreated,
		},
		{"User already exists",
			func(ctx context.Context, params auth.RegisterUserParams) (user.User, error) {
				return user.User{}, auth.ErrUserExists
			},
			http.StatusBadRequest,
		},
		{"Registration failed due to a database error",
			func(ctx context.Context, params auth.RegisterUserParams) (user.User, error) {
				return user.User{}, errors.New("query failed")
			},
			http.StatusInternalServerError,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &auth.StubService{RegisterUserFunc: tc.registerFunc}
			handler := auth.NewHandler(svc, &auth.StubVerificationService{}, &jwt.StubSigner{}, testConfig(), okBaker())

			ctx := web.NewContextWithParams(context.Background(), params)
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/api/register", http.NoBody)
			rec := httptest.NewRecorder()
			handler.RegisterUser(rec, req)

			gotCode, wantCode := rec.Code, tc.code
			if gotCode != wantCode {
				t.Errorf(message.FmtErrStatusCode, gotCode, wantCode)
			}

			if tc.code == http.StatusCreated {
				var apiRes web.OKResponse[*auth.RegisterUserResponse]
				if err := json.NewDecoder(rec.Body).Decode(&apiRes); err != nil {
					t.Fatal(err)
				}
				if got, want := apiRes.Data.Email, testEmail; got != want {
					t.Errorf("apiRes.Data.Email = %q, want: %q", got, want)
				}
			}
		})
	}
}

func TestHandler_VerifyEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		token       string
		consumeFunc func(ctx context.Context, token string) error
		code        int
		wantMsg     string
	}{
		{"Valid pending token",
			"sometoken",
			func(ctx context.Context, token string) error { return nil },
			http.StatusOK,
			message.VerifySuccess,
		},
		{"Missing token query parameter",
			"",
			nil,
			http.StatusBadRequest,
			message.TokenMissing,
		},
		{"Unknown token",
			"sometoken",
			func(ctx context.Context, token string) error { return verification.ErrTokenInvalid },
			http.StatusBadRequest,
			message.TokenInvalid,
		},
		{"Replayed token",
			"sometoken",
			func(ctx context.Context, token string) error { return verification.ErrTokenUsed },
			http.StatusBadRequest,
			message.TokenUsed,
		},
		{"Expired token",
			"sometoken",
			func(ctx context.Context, token string) error { return verification.ErrTokenExpired },
			http.StatusBadRequest,
			message.TokenExpired,
		},
		{"Account no longer exists",
			"sometoken",
			func(ctx context.Context, token string) error { return verification.ErrAccountNotFound },
			http.StatusNotFound,
			message.AccountNotFound,
		},
		{"Verification failed due to a database error",
			"sometoken",
			func(ctx context.Context, token string) error { return errors.New("query failed") },
			http.StatusInternalServerError,
			"",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			verifier := &auth.StubVerificationService{ConsumeFunc: tc.consumeFunc}
			handler := auth.NewHandler(&auth.StubService{}, verifier, &jwt.StubSigner{}, testConfig(), okBaker())

			target := "/api/auth/verify-email"
			if tc.token != "" {
				target += "?token=" + tc.token
			}
			req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
			rec := httptest.NewRecorder()
			handler.VerifyEmail(rec, req)

			gotCode, wantCode := rec.Code, tc.code
			if gotCode != wantCode {
				t.Errorf(message.FmtErrStatusCode, gotCode, wantCode)
			}

			if tc.wantMsg == "" {
				return
			}

			var body map[string]any
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if got, want := body["message"], tc.wantMsg; got != want {
				t.Errorf("body message = %q, want: %q", got, want)
			}
		})
	}
}

func TestHandler_ResendVerification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		reissueFunc func(ctx context.Context, email string) error
		code        int
	}{
		{"Unverified account gets a fresh link",
			func(ctx context.Context, email string) error { return nil },
			http.StatusOK,
		},
		{"Already verified account",
			func(ctx context.Context, email string) error { return verification.ErrAlreadyVerified },
			http.StatusBadRequest,
		},
		{"Unknown email",
			func(ctx context.Context, email string) error { return verification.ErrAccountNotFound },
			http.StatusNotFound,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			verifier := &auth.StubVerificationService{ReissueFunc: tc.reissueFunc}
			handler := auth.NewHandler(&auth.StubService{}, verifier, &jwt.StubSigner{}, testConfig(), okBaker())

			params := auth.ResendVerificationRequest{Email: testEmail}
			ctx := web.NewContextWithParams(context.Background(), params)
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/api/auth/resend-verification", http.NoBody)
			rec := httptest.NewRecorder()
			handler.ResendVerification(rec, req)

			gotCode, wantCode := rec.Code, tc.code
			if gotCode != wantCode {
				t.Errorf(message.FmtErrStatusCode, gotCode, wantCode)
			}
		})
	}
}

func TestHandler_LoginUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		loginFunc func(ctx context.Context, params auth.LoginUserParams) (auth.LoginResult, error)
		code      int
	}{
		{"Verified user with correct credentials",
			func(ctx context.Context, params auth.LoginUserParams) (auth.LoginResult, error) {
				return auth.LoginResult{
					User:         user.User{ID: "1", Username: params.Username, IsEmailVerified: true},
					AccessToken:  "access-token",
					RefreshToken: "refresh-token",
				}, nil
			},
			http.StatusOK,
		},
		{"Invalid credentials",
			func(ctx context.Context, params auth.LoginUserParams) (auth.LoginResult, error) {
				return auth.LoginResult{}, auth.ErrInvalidCredentials
			},
			http.StatusUnauthorized,
		},
		{"Correct credentials but unverified email",
			func(ctx context.Context, params auth.LoginUserParams) (auth.LoginResult, error) {
				return auth.LoginResult{}, auth.ErrUserNotVerified
			},
			http.StatusForbidden,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &auth.StubService{LoginUserFunc: tc.loginFunc}
			handler := auth.NewHandler(svc, &auth.StubVerificationService{}, &jwt.StubSigner{}, testConfig(), okBaker())

			params := auth.UserLoginRequest{Username: testUsername, Password: testPass}
			ctx := web.NewContextWithParams(context.Background(), params)
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/api/login", http.NoBody)
			rec := httptest.NewRecorder()
			handler.LoginUser(rec, req)

			gotCode, wantCode := rec.Code, tc.code
			if gotCode != wantCode {
				t.Errorf(message.FmtErrStatusCode, gotCode, wantCode)
			}

			if tc.code != http.StatusOK {
				return
			}

			var apiRes web.OKResponse[*auth.UserLoginResponse]
			if err := json.NewDecoder(rec.Body).Decode(&apiRes); err != nil {
				t.Fatal(err)
			}
			if got, want := apiRes.Data.AccessToken, "access-token"; got != want {
				t.Errorf("apiRes.Data.AccessToken = %q, want: %q", got, want)
			}
			if got, want := apiRes.Data.CSRFToken, "csrf-value"; got != want {
				t.Errorf("apiRes.Data.CSRFToken = %q, want: %q", got, want)
			}

			res := rec.Result()
			defer res.Body.Close()
			var refreshSet bool
			for _, cookie := range res.Cookies() {
				if cookie.Name == "refresh_token" && cookie.Value == "refresh-token" {
					refreshSet = true
				}
			}
			if !refreshSet {
				t.Error("refresh token cookie was not set")
			}
		})
	}
}

func TestHandler_RefreshToken(t *testing.T) {
	t.Parallel()

	cfg := testConfig()

	refreshCookie := &http.Cookie{Name: cfg.Cookie.Name, Value: "refresh-token"}
	csrfCookie := &http.Cookie{Name: cfg.CSRF.CookieName, Value: "csrf-value"}

	okSigner := &jwt.StubSigner{
		VerifyFunc: func(tokenString string) (*jwt.Claims, error) {
			return &jwt.Claims{UserID: "1"}, nil
		},
		SignFunc: func(subject string, audience []string, duration time.Duration) (string, error) {
			return "new-access-token", nil
		},
	}

	tests := []struct {
		name          string
		refreshCookie *http.Cookie
		csrfCookie    *http.Cookie
		csrfHeader    string
		signer        jwt.Signer
		baker         web.Baker
		code          int
	}{
		{
			name:          "Valid refresh and csrf tokens",
			refreshCookie: refreshCookie,
			csrfCookie:    csrfCookie,
			csrfHeader:    "csrf-value",
			signer:        okSigner,
			baker:         okBaker(),
			code:          http.StatusOK,
		},
		{
			name:       "Missing refresh cookie",
			csrfCookie: csrfCookie,
			csrfHeader: "csrf-value",
			signer:     okSigner,
			baker:      okBaker(),
			code:       http.StatusUnauthorized,
		},
		{
			name:          "Missing csrf cookie",
			refreshCookie: refreshCookie,
			csrfHeader:    "csrf-value",
			signer:        okSigner,
			baker:         okBaker(),
			code:          http.StatusForbidden,
		},
		{
			name:          "Header does not match csrf cookie",
			refreshCookie: refreshCookie,
			csrfCookie:    csrfCookie,
			csrfHeader:    "tampered",
			signer:        okSigner,
			baker:         okBaker(),
			code:          http.StatusForbidden,
		},
		{
			name:          "Invalid csrf signature",
			refreshCookie: refreshCookie,
			csrfCookie:    csrfCookie,
			csrfHeader:    "csrf-value",
			signer:        okSigner,
			baker: &security.StubBaker{
				CheckFunc: func(cookie *http.Cookie) error {
					return errors.New("mac mismatch")
				},
			},
			code: http.StatusForbidden,
		},
		{
			name:          "Expired refresh token",
			refreshCookie: refreshCookie,
			csrfCookie:    csrfCookie,
			csrfHeader:    "csrf-value",
			signer: &jwt.StubSigner{
				VerifyFunc: func(tokenString string) (*jwt.Claims, error) {
					return nil, errors.New("token is expired")
				},
			},
			baker: okBaker(),
			code:  http.StatusUnauthorized,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := auth.NewHandler(&auth.StubService{}, &auth.StubVerificationService{}, tc.signer, cfg, tc.baker)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", http.NoBody)
			if tc.refreshCookie != nil {
				req.AddCookie(tc.refreshCookie)
			}
			if tc.csrfCookie != nil {
				req.AddCookie(tc.csrfCookie)
			}
			if tc.csrfHeader != "" {
				req.Header.Set(cfg.CSRF.HeaderName, tc.csrfHeader)
			}
			rec := httptest.NewRecorder()
			handler.RefreshToken(rec, req)

			gotCode, wantCode := rec.Code, tc.code
			if gotCode != wantCode {
				t.Errorf(message.FmtErrStatusCode, gotCode, wantCode)
			}
		})
	}
}

func TestHandler_LogoutUser(t *testing.T) {
	t.Parallel()

	cfg := testConfig()

	t.Run("Logged-in user is logged out", func(t *testing.T) {
		t.Parallel()

		handler := auth.NewHandler(&auth.StubService{}, &auth.StubVerificationService{}, &jwt.StubSigner{}, cfg, okBaker())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", http.NoBody)
		req.AddCookie(&http.Cookie{Name: cfg.Cookie.Name, Value: "refresh-token"})
		rec := httptest.NewRecorder()
		handler.LogoutUser(rec, req)

		gotCode, wantCode := rec.Code, http.StatusOK
		if gotCode != wantCode {
			t.Errorf(message.FmtErrStatusCode, gotCode, wantCode)
		}

		res := rec.Result()
		defer res.Body.Close()
		for _, cookie := range res.Cookies() {
			if cookie.Name == cfg.Cookie.Name && cookie.MaxAge != -1 {
				t.Error("refresh token cookie was not cleared")
			}
		}
	})

	t.Run("No session to log out", func(t *testing.T) {
		t.Parallel()

		handler := auth.NewHandler(&auth.StubService{}, &auth.StubVerificationService{}, &jwt.StubSigner{}, cfg, okBaker())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", http.NoBody)
		rec := httptest.NewRecorder()
		handler.LogoutUser(rec, req)

		gotCode, wantCode := rec.Code, http.StatusUnauthorized
		if gotCode != wantCode {
			t.Errorf(message.FmtErrStatusCode, gotCode, wantCode)
		}
	})
}

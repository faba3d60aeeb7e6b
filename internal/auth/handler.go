package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/verikit/internal/config"
	"github.com/ferdiebergado/verikit/internal/pkg/message"
	"github.com/ferdiebergado/verikit/internal/pkg/security"
	"github.com/ferdiebergado/verikit/internal/pkg/web"
	"github.com/ferdiebergado/verikit/internal/platform/jwt"
	"github.com/ferdiebergado/verikit/internal/user"
	"github.com/ferdiebergado/verikit/internal/verification"
)

const maskChar = "*"

// AuthService is the account-facing slice of the auth service.
type AuthService interface {
	RegisterUser(ctx context.Context, params RegisterUserParams) (user.User, error)
	LoginUser(ctx context.Context, params LoginUserParams) (LoginResult, error)
}

// VerificationService is the token lifecycle consumed by the HTTP surface.
type VerificationService interface {
	Consume(ctx context.Context, token string) error
	Reissue(ctx context.Context, email string) error
}

type Handler struct {
	svc      AuthService
	verifier VerificationService
	signer   jwt.Signer
	cfg      *config.Config
	baker    web.Baker
}

func NewHandler(svc AuthService, verifier VerificationService, signer jwt.Signer, cfg *config.Config, baker web.Baker) *Handler {
	return &Handler{
		svc:      svc,
		verifier: verifier,
		signer:   signer,
		cfg:      cfg,
		baker:    baker,
	}
}

type RegisterUserRequest struct {
	Username string `json:"username,omitempty" validate:"required,min=3,max=50"`
	Email    string `json:"email,omitempty" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"required,min=8"`
}

func (r RegisterUserRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", r.Username),
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

type RegisterUserResponse struct {
	Email string `json:"email"`
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[RegisterUserRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := RegisterUserParams(req)
	newUser, err := h.svc.RegisterUser(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			web.RespondBadRequest(w, err, message.UserExists, nil)
			return
		}

		web.RespondInternalServerError(w, err)
		return
	}

	msg := message.RegisterSuccess
	data := &RegisterUserResponse{
		Email: newUser.Email,
	}
	web.RespondCreated(w, &msg, data)
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		web.RespondBadRequest(w, errors.New("missing token query param"), message.TokenMissing, nil)
		return
	}

	if err := h.verifier.Consume(r.Context(), token); err != nil {
		switch {
		case errors.Is(err, verification.ErrTokenInvalid):
			web.RespondBadRequest(w, err, message.TokenInvalid, nil)
		case errors.Is(err, verification.ErrTokenUsed):
			web.RespondBadRequest(w, err, message.TokenUsed, nil)
		case errors.Is(err, verification.ErrTokenExpired):
			web.RespondBadRequest(w, err, message.TokenExpired, nil)
		case errors.Is(err, verification.ErrAccountNotFound):
			web.RespondNotFound(w, err, message.AccountNotFound, nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	msg := message.VerifySuccess
	web.RespondOK(w, &msg, &struct{}{})
}

type ResendVerificationRequest struct {
	Email string `json:"email,omitempty" validate:"required,email"`
}

func (r ResendVerificationRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
	)
}

func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[ResendVerificationRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	if err := h.verifier.Reissue(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, verification.ErrAlreadyVerified):
			web.RespondBadRequest(w, err, message.AlreadyVerified, nil)
		case errors.Is(err, verification.ErrAccountNotFound):
			web.RespondNotFound(w, err, message.AccountNotFound, nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	msg := message.ResendSuccess
	web.RespondOK(w, &msg, &struct{}{})
}

type UserLoginRequest struct {
	Username string `json:"username,omitempty" validate:"required"`
	Password string `json:"password,omitempty" validate:"required"`
}

func (r UserLoginRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", r.Username),
		slog.String("password", maskChar),
	)
}

type UserLoginResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
	CSRFToken   string `json:"csrf_token"`
}

func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[UserLoginRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := LoginUserParams(req)
	result, err := h.svc.LoginUser(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			web.RespondUnauthorized(w, err, message.InvalidUser, nil)
			return
		}

		if errors.Is(err, ErrUserNotVerified) {
			web.RespondForbidden(w, err, message.UserNotVerified, nil)
			return
		}

		web.RespondInternalServerError(w, err)
		return
	}

	refreshCookieCfg := h.cfg.Cookie
	refreshCookie := security.HardenedCookie(refreshCookieCfg.Name, result.RefreshToken, refreshCookieCfg.MaxAge.Duration)
	http.SetCookie(w, refreshCookie)

	csrfCookie, err := h.baker.Bake()
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}
	http.SetCookie(w, csrfCookie)

	msg := message.LoginSuccess
	data := &UserLoginResponse{
		ID:          result.User.ID,
		Username:    result.User.Username,
		AccessToken: result.AccessToken,
		CSRFToken:   csrfCookie.Value,
	}
	web.RespondOK(w, &msg, data)
}

type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	csrfCfg := h.cfg.CSRF
	csrfCookie, err := r.Cookie(csrfCfg.CookieName)
	if err != nil || csrfCookie.Value == "" {
		web.RespondForbidden(w, errors.New("CSRF token missing"), message.InvalidInput, nil)
		return
	}

	if err := h.baker.Check(csrfCookie); err != nil {
		web.RespondForbidden(w, err, message.InvalidInput, nil)
		return
	}

	sentToken := r.Header.Get(csrfCfg.HeaderName)
	if !security.ConstantTimeCompareStr(csrfCookie.Value, sentToken) {
		web.RespondForbidden(w, errors.New("invalid CSRF token"), message.InvalidInput, nil)
		return
	}

	refreshCookie, err := r.Cookie(h.cfg.Cookie.Name)
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	claims, err := h.signer.Verify(refreshCookie.Value)
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	jwtCfg := h.cfg.JWT
	newAccessToken, err := h.signer.Sign(claims.UserID, []string{jwtCfg.Issuer}, jwtCfg.TTL.Duration)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	msg := message.RefreshSuccess
	data := &RefreshTokenResponse{
		AccessToken: newAccessToken,
	}
	web.RespondOK(w, &msg, data)
}

func (h *Handler) LogoutUser(w http.ResponseWriter, r *http.Request) {
	cookieName := h.cfg.Cookie.Name
	if _, err := r.Cookie(cookieName); err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	logoutCookie := security.HardenedCookie(cookieName, "", -1)
	http.SetCookie(w, logoutCookie)

	csrfCookie := security.HardenedCookie(h.cfg.CSRF.CookieName, "", -1)
	csrfCookie.HttpOnly = false
	http.SetCookie(w, csrfCookie)

	msg := message.LogoutSuccess
	web.RespondOK(w, &msg, &struct{}{})
}

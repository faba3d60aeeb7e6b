package user

import (
	"net/http"
	"time"

	"github.com/ferdiebergado/verikit/internal/pkg/web"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type userData struct {
	ID              string     `json:"id,omitempty"`
	Username        string     `json:"username,omitempty"`
	Email           string     `json:"email,omitempty"`
	IsEmailVerified bool       `json:"is_email_verified"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at,omitempty"`
}

type ListUsersResponse struct {
	Users []userData `json:"users,omitempty"`
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	payload := newListUsersResponse(users)
	web.RespondOK(w, nil, payload)
}

func transformUser(u User) userData {
	return userData{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		IsEmailVerified: u.IsEmailVerified,
		EmailVerifiedAt: u.EmailVerifiedAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func newListUsersResponse(users []User) *ListUsersResponse {
	data := make([]userData, 0, len(users))
	for _, u := range users {
		data = append(data, transformUser(u))
	}

	return &ListUsersResponse{
		Users: data,
	}
}

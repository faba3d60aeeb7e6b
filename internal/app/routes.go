package app

import (
	"github.com/ferdiebergado/verikit/internal/auth"
	"github.com/ferdiebergado/verikit/internal/middleware"
	"github.com/ferdiebergado/verikit/internal/platform/jwt"
	"github.com/ferdiebergado/verikit/internal/platform/router"
	"github.com/ferdiebergado/verikit/internal/platform/validation"
	"github.com/ferdiebergado/verikit/internal/user"
)

func mountAuthRoutes(r router.Router, handler *auth.Handler, validator validation.Validator, bodySize int64) {
	r.Post("/api/register", handler.RegisterUser,
		middleware.DecodePayload[auth.RegisterUserRequest](bodySize),
		middleware.ValidateInput[auth.RegisterUserRequest](validator),
	)
	r.Post("/api/login", handler.LoginUser,
		middleware.DecodePayload[auth.UserLoginRequest](bodySize),
		middleware.ValidateInput[auth.UserLoginRequest](validator),
	)

	r.Group("/api/auth", func(gr router.Router) {
		gr.Get("/verify-email", handler.VerifyEmail)
		gr.Post("/resend-verification", handler.ResendVerification,
			middleware.DecodePayload[auth.ResendVerificationRequest](bodySize),
			middleware.ValidateInput[auth.ResendVerificationRequest](validator),
		)
		gr.Post("/refresh", handler.RefreshToken)
		gr.Post("/logout", handler.LogoutUser)
	})
}

func mountUserRoutes(r router.Router, handler *user.Handler, signer jwt.Signer) {
	r.Group("/api/users", func(gr router.Router) {
		gr.Get("/", handler.ListUsers)
	}, auth.RequireToken(signer))
}

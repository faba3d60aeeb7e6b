package message

const (
	InvalidUser      = "Invalid username/password."
	InvalidInput     = "Invalid input."
	UserNotVerified  = "Email not verified. Please verify your email before logging in."
	UserExists       = "Username or email already exists."
	RegisterSuccess  = "Thank you for registering. A verification link was sent to your email."
	VerifySuccess    = "Email verified successfully. You can now log in."
	ResendSuccess    = "A new verification link was sent to your email."
	AlreadyVerified  = "Email is already verified."
	AccountNotFound  = "Account not found."
	TokenMissing     = "Verification token is required."
	TokenInvalid     = "Invalid verification token."
	TokenUsed        = "This verification link was already used. Request a new one."
	TokenExpired     = "This verification link has expired. Request a new one."
	LoginSuccess     = "Logged in."
	LogoutSuccess    = "Logged out."
	RefreshSuccess   = "Token refreshed."
	EnvErrFmt        = "environment variable is not set: %s"
	FmtErrStatusCode = "rec.Code = %d, want: %d"
)

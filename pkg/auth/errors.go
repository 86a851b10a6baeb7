package auth

type authError string

const (
	ErrInvalidCredentials = authError("invalid credentials")
	ErrLoginDisabled      = authError("login disabled: no operator password configured")
	ErrTokenInvalid       = authError("invalid token")
	ErrSessionExpired     = authError("session expired")
)

func (e authError) Error() string {
	return string(e)
}

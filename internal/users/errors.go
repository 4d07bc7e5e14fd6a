package users

import "errors"

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

const (
	EmailTakenMessage         = "user with this email already exists."
	InvalidCredentialsMessage = "No active account found with the given credentials"
	InvalidTokenMessage       = "Given token not valid for any token type"
	InvalidRefreshMessage     = "Token is invalid or expired"
	UserNotFoundMessage       = "User not found"
	UserInactiveMessage       = "User is inactive"
)

package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidUsername    = errors.New("username contains invalid characters")
	ErrReservedUsername   = errors.New("username is reserved")
	ErrUserNotFound       = errors.New("user not found")
)

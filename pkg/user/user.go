package user

import "errors"

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// User is an identity allowed to log in. Passwords are compared as plain text.
type User struct {
	ID       int    `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"-" yaml:"password"`
	IsAdmin  bool   `json:"is_admin" yaml:"-"`
}

type Repository interface {
	FindByUsername(username string) (*User, error)
}

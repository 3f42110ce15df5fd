package engine

import "errors"

// Closed error set of the core. The boundary layer maps these to HTTP
// statuses; the engine itself never encodes transport concerns.
var (
	ErrNotFound           = errors.New("referenced user or post does not exist")
	ErrSelfReference      = errors.New("you can not follow yourself")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("this email is already in use")
)

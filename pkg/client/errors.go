package client

import "errors"

var (
	// ErrNoToken is returned by authenticated calls made before a
	// register, login, or SetToken.
	ErrNoToken = errors.New("client: no token set")

	ErrNotFound       = errors.New("client: not found")
	ErrConflict       = errors.New("client: already exists")
	ErrUnauthorized   = errors.New("client: unauthorized")
	ErrForbidden      = errors.New("client: forbidden")
	ErrInvalidRequest = errors.New("client: invalid request")
)

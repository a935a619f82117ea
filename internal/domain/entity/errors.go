package entity

import "errors"

// Sentinel errors forming the closed domain error taxonomy.
// Layers wrap these with fmt.Errorf("...: %w", err) for context and
// transport adapters classify them with errors.Is. Each adapter owns
// exactly one mapping from this set to its wire status codes.
var (
	// ErrUserNotFound indicates the user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists surfaces the store's uniqueness violation on
	// username or email. It never reveals which field collided.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so callers cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPostNotFound indicates the post does not exist.
	ErrPostNotFound = errors.New("post not found")

	// ErrForbidden indicates the caller is authenticated but is not the
	// owner of the resource it tried to mutate.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation indicates malformed input.
	ErrValidation = errors.New("validation error")

	// ErrDatabase is an opaque store failure. Its message is logged
	// server-side and never echoed verbatim to clients.
	ErrDatabase = errors.New("database error")

	// ErrPasswordHash indicates the password hasher failed.
	ErrPasswordHash = errors.New("password hash error")

	// ErrToken indicates token signing or verification failed,
	// including expiry.
	ErrToken = errors.New("token error")
)

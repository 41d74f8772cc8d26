package domain

import "errors"

var (
	// ErrForbidden indicates a guest or non-admin attempted a gated action.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the referenced post, comment or account is gone.
	ErrNotFound = errors.New("not found")

	// ErrCapacityExceeded indicates the storage quota would be breached by a write.
	// The previously stored value stays authoritative.
	ErrCapacityExceeded = errors.New("storage capacity exceeded")

	// ErrValidation indicates malformed input or malformed stored data.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmptyPost indicates a post with neither title, text nor media.
	ErrEmptyPost = errors.New("post cannot be empty")

	// ErrEmptyComment indicates the user submitted a blank comment.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrTooManyMedia indicates more than one attachment on a post.
	ErrTooManyMedia = errors.New("a post can carry at most one attachment")

	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrBanned indicates the account is serving a timed ban.
	ErrBanned = errors.New("account banned")
)

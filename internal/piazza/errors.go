package piazza

import "errors"

var (
	// ErrInvalidPostID rejects non-numeric IDs and the reserved ID "1",
	// which Piazza uses as a placeholder and never resolves to a real post.
	ErrInvalidPostID = errors.New("piazza: invalid post id")

	// ErrNotFound means the network has no post for the requested ID.
	ErrNotFound = errors.New("piazza: post not found")

	// ErrFetchLimitInvalid rejects non-positive listing limits.
	ErrFetchLimitInvalid = errors.New("piazza: fetch limit must be positive")
)

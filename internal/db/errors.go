package db

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrStoreUnavailable is returned when the document store cannot be
	// reached. It is propagated to the caller; there is no automatic retry.
	ErrStoreUnavailable = errors.New("document store unavailable")
)

// classify wraps a Firestore error with the matching sentinel so callers can
// branch on errors.Is without depending on grpc status codes.
func classify(err error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%s: %s: %w", msg, err, ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"casefold-hq/triage/pkg/casefile"
)

// newToken generates an opaque checkpoint token.
func newToken() string {
	return uuid.NewString()
}

// ErrNotFound is returned by Load when no checkpoint exists for a token.
var ErrNotFound = errors.New("checkpoint not found")

// Store is the persistence boundary used at review suspension. Save failure
// is the one hard error the workflow engine propagates to the host;
// implementations must not swallow it.
type Store interface {
	// Save persists a snapshot of the record and returns an opaque token.
	// Saving the same case again replaces its previous checkpoint but
	// returns a fresh token.
	Save(ctx context.Context, rec *casefile.CaseRecord) (string, error)

	// Load resolves a token to the saved record. The returned record is a
	// private copy the caller may mutate.
	Load(ctx context.Context, token string) (*casefile.CaseRecord, error)

	// Delete removes a checkpoint. Deleting an unknown token is a no-op.
	Delete(ctx context.Context, token string) error

	// List returns the tokens of all live checkpoints saved before cutoff,
	// oldest first. A zero cutoff returns everything.
	List(ctx context.Context, cutoff time.Time) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// StorageError wraps a backend failure with backend and operation context.
type StorageError struct {
	Backend   string
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("checkpoint storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}

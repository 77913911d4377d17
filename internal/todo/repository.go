package todo

import (
	"context"
	"errors"
)

// ErrNotFound is returned by DeleteOne when no row matches the given id.
var ErrNotFound = errors.New("todo not found")

// Repository is the storage gateway for todos. The canonical copy of every
// item lives behind this interface; callers hold no cache.
type Repository interface {
	// ListAll returns every todo ordered by creation time, most recent first.
	ListAll(ctx context.Context) ([]Todo, error)
	// Create inserts a new todo with completed=false and a storage-assigned
	// id and creation timestamp. A nil or empty location is stored as absent.
	Create(ctx context.Context, title string, location *string) (*Todo, error)
	// DeleteOne removes the todo with the given id, or ErrNotFound.
	DeleteOne(ctx context.Context, id int64) error
	// DeleteAll removes every todo. Deleting from an empty table succeeds.
	DeleteAll(ctx context.Context) error
}

// Package cache provides the local key/value cache that mirrors the live
// sheet between sessions.
package cache

import "context"

//go:generate mockgen -destination=mock/mock_repository.go -package=cachemock github.com/sdkfamous/dnd-character-sheet/internal/repositories/cache Repository

// Keys under which the sheet is cached
const (
	KeyDocument       = "sheet:character-definition"
	KeyLayout         = "sheet:sheet-layout"
	KeyRemoteBinding  = "sheet:remote-binding"
	KeyCharacterImage = "sheet:character-image"
)

// GetInput contains parameters for reading a cached value
type GetInput struct {
	Key string
}

// GetOutput contains the cached value
type GetOutput struct {
	Value string
}

// SetInput contains parameters for writing a cached value
type SetInput struct {
	Key   string
	Value string
}

// SetOutput contains the result of writing a cached value
type SetOutput struct{}

// RemoveInput contains parameters for removing a cached value
type RemoveInput struct {
	Key string
}

// RemoveOutput contains the result of removing a cached value
type RemoveOutput struct{}

// Repository defines the interface for the local cache
type Repository interface {
	// Get returns the value for a key, or a not found error
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Set stores a value, replacing any previous one
	Set(ctx context.Context, input SetInput) (*SetOutput, error)

	// Remove deletes a key. Removing a missing key is not an error.
	Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error)
}

const errKeyEmpty = "cache key cannot be empty"

package cache

import (
	"context"
	"sync"

	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
)

// InMemoryRepository implements Repository with a map
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]string
}

// NewInMemory creates an empty in-memory cache
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]string),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Get returns the value for a key
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.store[input.Key]
	if !exists {
		return nil, errors.NotFoundf("cache key %s not found", input.Key)
	}
	return &GetOutput{Value: value}, nil
}

// Set stores a value
func (r *InMemoryRepository) Set(_ context.Context, input SetInput) (*SetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Key] = input.Value
	return &SetOutput{}, nil
}

// Remove deletes a key
func (r *InMemoryRepository) Remove(_ context.Context, input RemoveInput) (*RemoveOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.store, input.Key)
	return &RemoveOutput{}, nil
}

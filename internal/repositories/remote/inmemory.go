package remote

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/clock"
	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/idgen"
)

// InMemoryConfig holds the dependencies of the in-memory store
type InMemoryConfig struct {
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *InMemoryConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type storedFile struct {
	info    FileInfo
	content []byte
}

// InMemoryRepository implements Repository with a map, for development and tests
type InMemoryRepository struct {
	mu    sync.RWMutex
	idGen idgen.Generator
	clock clock.Clock
	files map[string]*storedFile
}

// NewInMemory creates an empty in-memory file store
func NewInMemory(cfg *InMemoryConfig) (*InMemoryRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &InMemoryRepository{
		idGen: cfg.IDGenerator,
		clock: cfg.Clock,
		files: make(map[string]*storedFile),
	}, nil
}

var _ Repository = (*InMemoryRepository)(nil)

// Save creates or updates a file
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	file := &storedFile{info: FileInfo{ID: input.FileID, CreatedTime: now}}
	if input.FileID != "" {
		existing, ok := r.files[input.FileID]
		if !ok {
			return nil, errors.NotFoundf("file %s not found", input.FileID)
		}
		file.info.CreatedTime = existing.info.CreatedTime
	} else {
		file.info.ID = r.idGen.Generate()
	}

	file.info.Name = input.Name
	file.info.ModifiedTime = now
	file.content = slices.Clone(input.Content)
	r.files[file.info.ID] = file

	return &SaveOutput{File: file.info}, nil
}

// Load returns a file's content
func (r *InMemoryRepository) Load(_ context.Context, input LoadInput) (*LoadOutput, error) {
	if input.FileID == "" {
		return nil, errors.InvalidArgument(errFileIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, ok := r.files[input.FileID]
	if !ok {
		return nil, errors.NotFoundf("file %s not found", input.FileID)
	}

	return &LoadOutput{Content: slices.Clone(file.content), File: file.info}, nil
}

// List returns every file, most recently modified first
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	files := make([]FileInfo, 0, len(r.files))
	for _, f := range r.files {
		files = append(files, f.info)
	}
	sortNewestFirst(files)

	return &ListOutput{Files: files}, nil
}

// Delete removes a file
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.FileID == "" {
		return nil, errors.InvalidArgument(errFileIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[input.FileID]; !ok {
		return nil, errors.NotFoundf("file %s not found", input.FileID)
	}
	delete(r.files, input.FileID)

	return &DeleteOutput{}, nil
}

func sortNewestFirst(files []FileInfo) {
	slices.SortStableFunc(files, func(a, b FileInfo) int {
		if c := b.ModifiedTime.Compare(a.ModifiedTime); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

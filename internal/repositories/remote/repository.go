// Package remote provides the per-user file store that sheets are saved to
// and loaded from.
package remote

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=remotemock github.com/sdkfamous/dnd-character-sheet/internal/repositories/remote Repository

// FileInfo describes one stored file
type FileInfo struct {
	ID           string
	Name         string
	ModifiedTime time.Time
	CreatedTime  time.Time
}

// SaveInput contains parameters for saving a file
type SaveInput struct {
	Name    string
	Content []byte
	// FileID updates an existing file in place; empty creates a new one
	FileID string
}

// SaveOutput contains the stored file
type SaveOutput struct {
	File FileInfo
}

// LoadInput contains parameters for loading a file
type LoadInput struct {
	FileID string
}

// LoadOutput contains the file content and metadata
type LoadOutput struct {
	Content []byte
	File    FileInfo
}

// ListInput contains parameters for listing files
type ListInput struct{}

// ListOutput contains every file of the user, most recently modified first
type ListOutput struct {
	Files []FileInfo
}

// DeleteInput contains parameters for deleting a file
type DeleteInput struct {
	FileID string
}

// DeleteOutput contains the result of deleting a file
type DeleteOutput struct{}

// Repository defines the interface for remote file storage. Every call may
// fail; callers do not retry.
type Repository interface {
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)
	List(ctx context.Context, input ListInput) (*ListOutput, error)
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

const (
	errNameEmpty   = "file name cannot be empty"
	errFileIDEmpty = "file ID cannot be empty"
)

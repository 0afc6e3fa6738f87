package persistence

import (
	"github.com/sdkfamous/dnd-character-sheet/internal/entities/sheet"
	"github.com/sdkfamous/dnd-character-sheet/internal/repositories/remote"
)

// StartupOutput reports what was restored from the local cache
type StartupOutput struct {
	// Restored is false when the sheet started from defaults
	Restored bool
	Binding  sheet.RemoteFileBinding
}

// SaveInput defines the request for saving to the remote store
type SaveInput struct {
	// AsNew always creates a new remote file, ignoring the binding
	AsNew bool
}

// SaveOutput defines the response for saving to the remote store
type SaveOutput struct {
	File    remote.FileInfo
	Binding sheet.RemoteFileBinding
}

// LoadInput defines the request for loading a remote file
type LoadInput struct {
	FileID string
}

// LoadOutput defines the response for loading a remote file
type LoadOutput struct {
	Document *sheet.Document
	Binding  sheet.RemoteFileBinding
	// Enveloped is false when the file held a bare document
	Enveloped bool
}

// ListInput defines the request for listing remote files
type ListInput struct{}

// ListOutput defines the response for listing remote files
type ListOutput struct {
	Files []remote.FileInfo
}

// DeleteInput defines the request for deleting a remote file
type DeleteInput struct {
	FileID string
}

// DeleteOutput defines the response for deleting a remote file
type DeleteOutput struct {
	// Unbound is true when the deleted file was the bound one
	Unbound bool
}

// ExportOutput holds the envelope of the live sheet
type ExportOutput struct {
	Content []byte
	// FileName is a suggested name derived from the character name
	FileName string
}

// ImportInput holds a picked file. Nil content means the pick was cancelled.
type ImportInput struct {
	Content []byte
}

// ImportOutput defines the response for importing a file
type ImportOutput struct {
	Document *sheet.Document
}

// SetImageInput defines the request for storing the character portrait
type SetImageInput struct {
	Name    string
	Content []byte
}

// SetImageOutput defines the response for storing the character portrait
type SetImageOutput struct {
	FileID string
}

// ImageOutput holds the character portrait bytes
type ImageOutput struct {
	FileID  string
	Content []byte
}

// cachedImage is the cache representation of the portrait
type cachedImage struct {
	FileID string `json:"fileId"`
	Data   []byte `json:"data"`
}

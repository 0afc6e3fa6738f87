package sheet

import "encoding/json"

// Envelope keys
const (
	EnvelopeDocumentKey = "character-definition"
	EnvelopeLayoutKey   = "sheet-layout"
)

// Envelope is the persisted wrapper around a document and its layout
type Envelope struct {
	Document *Document       `json:"character-definition"`
	Layout   json.RawMessage `json:"sheet-layout"`
}

// DefaultLayout is the layout used when none has been saved
func DefaultLayout() json.RawMessage {
	return json.RawMessage(`{}`)
}

// RemoteFileBinding records which remote file the live document belongs to.
// An empty RemoteID means the document is local only.
type RemoteFileBinding struct {
	RemoteID    string `json:"remoteId"`
	DisplayName string `json:"displayName"`
}

// IsBound reports whether the binding points at a remote file
func (b RemoteFileBinding) IsBound() bool {
	return b.RemoteID != ""
}

package document

import (
	"time"

	"github.com/sdkfamous/dnd-character-sheet/internal/entities/sheet"
)

// DefaultDebounceDelay is how long field edits wait before becoming a snapshot
const DefaultDebounceDelay = 500 * time.Millisecond

// Reason says what produced a Change
type Reason string

// Change reasons
const (
	ReasonEdit      Reason = "edit"
	ReasonStructure Reason = "structure"
	ReasonUndo      Reason = "undo"
	ReasonRedo      Reason = "redo"
	ReasonLoad      Reason = "load"
)

// Change is delivered to listeners whenever a snapshot is recorded or
// history moves
type Change struct {
	Reason   Reason
	Document *sheet.Document
	CanUndo  bool
	CanRedo  bool
}

// Listener receives changes outside the store's lock. The document in a
// Change is shared between listeners and must not be modified.
type Listener func(Change)

// AddEntryOutput is the result of adding a list entry
type AddEntryOutput struct {
	ID string
}

// Package history implements a bounded linear undo/redo stack of document
// snapshots.
//
// A History is not safe for concurrent use; the document store serializes
// access to it.
package history

import "github.com/sdkfamous/dnd-character-sheet/internal/entities/sheet"

// DefaultLimit is the number of snapshots kept before the oldest is evicted
const DefaultLimit = 50

// History is a linear snapshot stack with a cursor
type History struct {
	entries []*sheet.Document
	cursor  int
	limit   int
}

// New returns an empty history holding at most limit snapshots
func New(limit int) *History {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Push records a snapshot of doc, discarding any redo branch. When the
// history is full the oldest snapshot is dropped.
func (h *History) Push(doc *sheet.Document) {
	if len(h.entries) > 0 {
		h.entries = h.entries[:h.cursor+1]
	}
	h.entries = append(h.entries, doc.Clone())

	if len(h.entries) > h.limit {
		h.entries[0] = nil
		h.entries = h.entries[1:]
	}
	h.cursor = len(h.entries) - 1
}

// Undo steps back one snapshot and returns a copy of it
func (h *History) Undo() (*sheet.Document, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor].Clone(), true
}

// Redo steps forward one snapshot and returns a copy of it
func (h *History) Redo() (*sheet.Document, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor].Clone(), true
}

// Reset replaces the whole history with a single snapshot of doc
func (h *History) Reset(doc *sheet.Document) {
	clear(h.entries)
	h.entries = append(h.entries[:0], doc.Clone())
	h.cursor = 0
}

// CanUndo reports whether an earlier snapshot exists
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a later snapshot exists
func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Len returns the number of stored snapshots
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the index of the current snapshot
func (h *History) Cursor() int {
	return h.cursor
}

// Package document owns the live character sheet and its undo history.
package document

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/sdkfamous/dnd-character-sheet/internal/entities/sheet"
	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
	"github.com/sdkfamous/dnd-character-sheet/internal/history"
	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/clock"
)

// Store holds the single live document
type Store interface {
	// Document returns a copy of the live document
	Document() *sheet.Document

	// Replace swaps the live document without touching history
	Replace(doc *sheet.Document)
	// Load installs doc and resets history to it
	Load(doc *sheet.Document)

	// Mutate edits the live document in place. Ability modifiers are
	// recomputed for any changed breakdown and a snapshot is scheduled.
	Mutate(fn func(doc *sheet.Document))
	// SetField sets one field by dotted path, see ApplyField
	SetField(path string, value any) error

	AddSkill(skill sheet.Skill) string
	RemoveSkill(id string) error
	AddWeapon(weapon sheet.Weapon) string
	RemoveWeapon(id string) error
	AddSpell(spell sheet.Spell) string
	RemoveSpell(id string) error
	// AddEntry appends a blank entry to the named list
	AddEntry(kind sheet.ListKind) (*AddEntryOutput, error)
	RemoveEntry(kind sheet.ListKind, id string) error

	Undo() bool
	Redo() bool
	CanUndo() bool
	CanRedo() bool

	// Flush records a pending snapshot immediately
	Flush()

	OnChange(l Listener)
}

// Config holds the dependencies for the document store
type Config struct {
	Clock         clock.Clock
	HistoryLimit  int
	DebounceDelay time.Duration
	// Initial is the starting document, the default sheet when nil
	Initial *sheet.Document
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.HistoryLimit < 0 {
		vb.Field("HistoryLimit", "must not be negative")
	}
	if c.DebounceDelay < 0 {
		vb.Field("DebounceDelay", "must not be negative")
	}

	return vb.Build()
}

type store struct {
	mu        sync.Mutex
	clock     clock.Clock
	debounce  time.Duration
	doc       *sheet.Document
	history   *history.History
	nextIDs   map[sheet.ListKind]int
	timer     clock.Timer
	pending   uint64
	listeners []Listener
}

// New creates a document store seeded with cfg.Initial
func New(cfg *Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	debounce := cfg.DebounceDelay
	if debounce == 0 {
		debounce = DefaultDebounceDelay
	}

	doc := cfg.Initial
	if doc == nil {
		doc = sheet.Default()
	}

	s := &store{
		clock:    cfg.Clock,
		debounce: debounce,
		history:  history.New(cfg.HistoryLimit),
		nextIDs:  map[sheet.ListKind]int{},
	}
	s.loadLocked(doc)

	return s, nil
}

func (s *store) Document() *sheet.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *store) Replace(doc *sheet.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
}

func (s *store) Load(doc *sheet.Document) {
	s.mu.Lock()
	s.loadLocked(doc)
	change := s.changeLocked(ReasonLoad)
	s.mu.Unlock()

	s.notify(change)
}

func (s *store) loadLocked(doc *sheet.Document) {
	s.cancelPendingLocked()
	s.doc = doc.Clone()
	s.history.Reset(s.doc)
	for _, kind := range sheet.ListKinds {
		s.nextIDs[kind] = s.doc.NextEntryID(kind)
	}
}

func (s *store) Mutate(fn func(doc *sheet.Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mutateLocked(fn)
	s.scheduleSnapshotLocked()
}

func (s *store) SetField(path string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := ApplyField(s.doc, path, value)
	if err != nil {
		return err
	}

	s.mutateLocked(func(doc *sheet.Document) { *doc = *updated })
	s.scheduleSnapshotLocked()
	return nil
}

// mutateLocked applies fn and recomputes derived values for whatever it changed
func (s *store) mutateLocked(fn func(doc *sheet.Document)) {
	before := s.doc.AbilityScores
	fn(s.doc)

	for _, a := range sheet.Abilities {
		after := s.doc.AbilityScores.Get(a)
		if after == before.Get(a) {
			continue
		}
		s.doc.AbilityScores.Set(a, after.Clamped())
		s.doc.RecomputeModifier(a)
	}
}

func (s *store) AddSkill(skill sheet.Skill) string {
	return s.addStructural(sheet.ListSkills, func(doc *sheet.Document, id string) {
		skill.ID = id
		doc.Skills = append(doc.Skills, skill)
	})
}

func (s *store) AddWeapon(weapon sheet.Weapon) string {
	return s.addStructural(sheet.ListWeapons, func(doc *sheet.Document, id string) {
		weapon.ID = id
		doc.Weapons = append(doc.Weapons, weapon)
	})
}

func (s *store) AddSpell(spell sheet.Spell) string {
	return s.addStructural(sheet.ListSpells, func(doc *sheet.Document, id string) {
		spell.ID = id
		doc.Spells = append(doc.Spells, spell)
	})
}

func (s *store) AddEntry(kind sheet.ListKind) (*AddEntryOutput, error) {
	var id string
	switch kind {
	case sheet.ListSkills:
		id = s.AddSkill(sheet.Skill{Ability: sheet.AbilityStr, Modifier: sheet.FormatModifier(0)})
	case sheet.ListWeapons:
		id = s.AddWeapon(sheet.Weapon{})
	case sheet.ListSpells:
		id = s.AddSpell(sheet.Spell{})
	default:
		return nil, errors.InvalidArgumentf("unknown list %q", kind)
	}

	return &AddEntryOutput{ID: id}, nil
}

func (s *store) RemoveSkill(id string) error {
	return s.RemoveEntry(sheet.ListSkills, id)
}

func (s *store) RemoveWeapon(id string) error {
	return s.RemoveEntry(sheet.ListWeapons, id)
}

func (s *store) RemoveSpell(id string) error {
	return s.RemoveEntry(sheet.ListSpells, id)
}

func (s *store) RemoveEntry(kind sheet.ListKind, id string) error {
	s.mu.Lock()

	removed := false
	switch kind {
	case sheet.ListSkills:
		s.doc.Skills, removed = removeByID(s.doc.Skills, id, func(e sheet.Skill) string { return e.ID })
	case sheet.ListWeapons:
		s.doc.Weapons, removed = removeByID(s.doc.Weapons, id, func(e sheet.Weapon) string { return e.ID })
	case sheet.ListSpells:
		s.doc.Spells, removed = removeByID(s.doc.Spells, id, func(e sheet.Spell) string { return e.ID })
	default:
		s.mu.Unlock()
		return errors.InvalidArgumentf("unknown list %q", kind)
	}

	if !removed {
		s.mu.Unlock()
		return errors.NotFoundf("no %s entry with id %s", kind, id)
	}

	change := s.pushLocked(ReasonStructure)
	s.mu.Unlock()

	s.notify(change)
	return nil
}

func (s *store) addStructural(kind sheet.ListKind, add func(doc *sheet.Document, id string)) string {
	s.mu.Lock()

	id := strconv.Itoa(s.nextIDs[kind])
	s.nextIDs[kind]++
	add(s.doc, id)

	change := s.pushLocked(ReasonStructure)
	s.mu.Unlock()

	s.notify(change)
	return id
}

func removeByID[T any](list []T, id string, idOf func(T) string) ([]T, bool) {
	for i, e := range list {
		if idOf(e) == id {
			out := make([]T, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...), true
		}
	}
	return list, false
}

func (s *store) Undo() bool {
	return s.step(ReasonUndo, s.history.Undo)
}

func (s *store) Redo() bool {
	return s.step(ReasonRedo, s.history.Redo)
}

func (s *store) step(reason Reason, move func() (*sheet.Document, bool)) bool {
	s.mu.Lock()

	s.cancelPendingLocked()
	doc, ok := move()
	if !ok {
		s.mu.Unlock()
		return false
	}

	s.doc = doc
	// counters never move backwards so ids are not reused within a session
	for _, kind := range sheet.ListKinds {
		s.nextIDs[kind] = max(s.nextIDs[kind], s.doc.NextEntryID(kind))
	}
	change := s.changeLocked(reason)
	s.mu.Unlock()

	s.notify(change)
	return true
}

func (s *store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

func (s *store) Flush() {
	s.mu.Lock()
	if s.timer == nil {
		s.mu.Unlock()
		return
	}
	change := s.pushLocked(ReasonEdit)
	s.mu.Unlock()

	s.notify(change)
}

func (s *store) OnChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// scheduleSnapshotLocked restarts the debounce timer
func (s *store) scheduleSnapshotLocked() {
	s.cancelPendingLocked()

	gen := s.pending
	s.timer = s.clock.AfterFunc(s.debounce, func() { s.fireSnapshot(gen) })
}

func (s *store) fireSnapshot(gen uint64) {
	s.mu.Lock()
	if gen != s.pending || s.timer == nil {
		// superseded by a newer edit or a structural action
		s.mu.Unlock()
		return
	}
	change := s.pushLocked(ReasonEdit)
	s.mu.Unlock()

	s.notify(change)
}

func (s *store) cancelPendingLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending++
}

// pushLocked records the live document and cancels any pending snapshot
func (s *store) pushLocked(reason Reason) Change {
	s.cancelPendingLocked()
	s.history.Push(s.doc)
	return s.changeLocked(reason)
}

func (s *store) changeLocked(reason Reason) Change {
	return Change{
		Reason:   reason,
		Document: s.doc.Clone(),
		CanUndo:  s.history.CanUndo(),
		CanRedo:  s.history.CanRedo(),
	}
}

func (s *store) notify(change Change) {
	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	slog.Debug("document changed",
		"reason", change.Reason,
		"can_undo", change.CanUndo,
		"can_redo", change.CanRedo,
		"listeners", len(listeners))

	for _, l := range listeners {
		l(change)
	}
}

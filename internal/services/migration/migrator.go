// Package migration converts saved character sheets of any historical shape
// into the canonical sheet.Document.
//
// Saved data carries no version tag. Each historical shape is recognized by a
// small structural check (see shapes.go) and folded into the current shape
// before a final merge against the default document fills every gap.
package migration

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/sdkfamous/dnd-character-sheet/internal/entities/sheet"
	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
)

//go:generate mockgen -destination=mock/mock_migrator.go -package=migrationmock github.com/sdkfamous/dnd-character-sheet/internal/services/migration Migrator

// Migrator parses and normalizes saved sheets
type Migrator interface {
	// Decode parses serialized bytes into a generic JSON value.
	// Invalid data returns a parse failure.
	Decode(data []byte) (any, error)

	// Normalize converts a decoded payload into a complete document.
	// A payload that is not an object yields the default document together
	// with a malformed input error.
	Normalize(raw any) (*sheet.Document, error)

	// Parse decodes bytes holding either an envelope or a bare document.
	Parse(data []byte) (*ParseOutput, error)
}

// ParseOutput is the result of Parse
type ParseOutput struct {
	Document *sheet.Document
	Layout   json.RawMessage
	// Enveloped is false for bare documents saved before the layout sidecar existed
	Enveloped bool
}

type migrator struct{}

// New returns the default Migrator
func New() Migrator {
	return &migrator{}
}

func (m *migrator) Decode(data []byte) (any, error) {
	return Decode(data)
}

func (m *migrator) Normalize(raw any) (*sheet.Document, error) {
	return Normalize(raw)
}

func (m *migrator) Parse(data []byte) (*ParseOutput, error) {
	return Parse(data)
}

// Decode parses data keeping numbers as json.Number. A legacy skills map
// keeps the order its keys were written in.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, errors.ParseFailure(err, "saved data is not valid JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.ParseFailure(nil, "unexpected data after JSON value")
	}
	keepSkillOrder(out, data)

	return out, nil
}

// Parse decodes data, unwraps an envelope when present and normalizes the document
func Parse(data []byte) (*ParseOutput, error) {
	raw, err := Decode(data)
	if err != nil {
		return nil, err
	}

	docRaw, layout, enveloped := SplitEnvelope(raw)
	doc, err := Normalize(docRaw)
	if err != nil {
		return nil, err
	}

	return &ParseOutput{Document: doc, Layout: layout, Enveloped: enveloped}, nil
}

// SplitEnvelope separates the document and layout of an enveloped payload.
// Anything without both envelope keys is treated as a bare document with the
// default layout.
func SplitEnvelope(raw any) (doc any, layout json.RawMessage, enveloped bool) {
	m, ok := raw.(map[string]any)
	if !ok || !isEnvelope(m) {
		return raw, sheet.DefaultLayout(), false
	}

	layout = sheet.DefaultLayout()
	if v := m[sheet.EnvelopeLayoutKey]; v != nil {
		if b, err := json.Marshal(v); err == nil {
			layout = b
		}
	}

	return m[sheet.EnvelopeDocumentKey], layout, true
}

// Normalize runs every migration step over raw and returns a complete document
func Normalize(raw any) (*sheet.Document, error) {
	tree, err := toTree(raw)
	if err != nil {
		return sheet.Default(), errors.MalformedInput("saved data could not be read")
	}

	saved, ok := tree.(map[string]any)
	if !ok {
		return sheet.Default(), errors.MalformedInput("saved data is not an object")
	}

	defTree, err := toTree(sheet.Default())
	if err != nil {
		return nil, errors.Wrap(err, "failed to build default document")
	}
	def := defTree.(map[string]any)

	// tree is a private copy, so the steps below may edit it in place
	if isLegacySkillMap(saved["skills"]) {
		saved["skills"] = migrateSkillMap(saved["skills"])
	}
	saved["weapons"] = coerceList(saved["weapons"])
	saved["spells"] = coerceList(saved["spells"])
	for _, spell := range saved["spells"].([]any) {
		if entry, ok := spell.(map[string]any); ok {
			migrateSpell(entry)
		}
	}
	if scores, ok := saved["abilityScores"].(map[string]any); ok {
		migrateAbilityScores(scores)
	}

	lists := map[sheet.ListKind][]any{}
	for _, kind := range sheet.ListKinds {
		entryDef, err := toTree(defaultEntry(kind))
		if err != nil {
			return nil, errors.Wrap(err, "failed to build default entry")
		}

		entries, isList := saved[string(kind)].([]any)
		if !isList {
			entries = def[string(kind)].([]any)
		}
		lists[kind] = repairEntries(entries, entryDef.(map[string]any))

		delete(def, string(kind))
	}

	merged := mergeValue(def, saved).(map[string]any)
	for kind, entries := range lists {
		merged[string(kind)] = entries
	}

	b, err := json.Marshal(merged)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode normalized document")
	}
	doc := &sheet.Document{}
	if err := json.Unmarshal(b, doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode normalized document")
	}

	for _, a := range sheet.Abilities {
		doc.AbilityScores.Set(a, doc.AbilityScores.Get(a).Clamped())
	}

	return doc, nil
}

func defaultEntry(kind sheet.ListKind) any {
	switch kind {
	case sheet.ListSkills:
		return sheet.Skill{Ability: sheet.AbilityStr, Modifier: sheet.FormatModifier(0)}
	case sheet.ListWeapons:
		return sheet.Weapon{}
	default:
		return sheet.Spell{}
	}
}

// toTree round-trips v through JSON so every value is one of map[string]any,
// []any, string, bool, json.Number or nil. A legacy skills map is the one
// exception, see keepSkillOrder.
func toTree(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	keepSkillOrder(out, b)
	return out, nil
}

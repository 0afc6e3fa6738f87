package migration

import (
	"encoding/json"
	"slices"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/sdkfamous/dnd-character-sheet/internal/entities/sheet"
)

// skillMap is a legacy skills object decoded with its key order intact
type skillMap = orderedmap.OrderedMap[string, any]

// Retired spell fields, replaced by the free-text duration
const (
	retiredConcentration = "concentration"
	retiredMaterial      = "material"
)

// isEnvelope reports whether both envelope keys are present
func isEnvelope(m map[string]any) bool {
	_, hasDoc := m[sheet.EnvelopeDocumentKey]
	_, hasLayout := m[sheet.EnvelopeLayoutKey]
	return hasDoc && hasLayout
}

// isLegacySkillMap reports whether skills use the old proficiency-per-key map
func isLegacySkillMap(v any) bool {
	switch v.(type) {
	case map[string]any, *skillMap:
		return true
	}
	return false
}

// keepSkillOrder replaces a legacy skills map in tree with an ordered copy
// read from data, the JSON that tree was decoded from. Both a bare document
// and an envelope are handled.
func keepSkillOrder(tree any, data []byte) {
	root, ok := tree.(map[string]any)
	if !ok {
		return
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return
	}
	orderSkills(root, top)

	doc, ok := root[sheet.EnvelopeDocumentKey].(map[string]any)
	if !ok {
		return
	}
	var inner map[string]json.RawMessage
	if err := json.Unmarshal(top[sheet.EnvelopeDocumentKey], &inner); err != nil {
		return
	}
	orderSkills(doc, inner)
}

func orderSkills(doc map[string]any, raw map[string]json.RawMessage) {
	if _, ok := doc["skills"].(map[string]any); !ok {
		return
	}

	skills := orderedmap.New[string, any]()
	if err := json.Unmarshal(raw["skills"], skills); err != nil {
		return
	}
	doc["skills"] = skills
}

// skillKeys lists the keys of a legacy skills map. An unordered map has no
// written order to follow, so its keys are sorted.
func skillKeys(v any) []string {
	switch m := v.(type) {
	case *skillMap:
		keys := make([]string, 0, m.Len())
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			keys = append(keys, pair.Key)
		}
		return keys
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return keys
	}
	return nil
}

// hasRetiredSpellFields reports whether a spell entry predates the duration field
func hasRetiredSpellFields(spell map[string]any) bool {
	_, concentration := spell[retiredConcentration]
	_, material := spell[retiredMaterial]
	return concentration || material
}

// legacyScore reports whether v is a bare ability score rather than a breakdown
func legacyScore(v any) (int, bool) {
	switch v.(type) {
	case json.Number, string:
		return coerceInt(v)
	}
	return 0, false
}

// migrateSkillMap converts the legacy skills map into list entries, one per
// key in the order the keys were written. Ids are assigned from 1.
func migrateSkillMap(v any) []any {
	keys := skillKeys(v)

	out := make([]any, 0, len(keys))
	for i, k := range keys {
		info := sheet.LookupSkill(k)
		out = append(out, map[string]any{
			"id":       strconv.Itoa(i + 1),
			"name":     info.Label,
			"ability":  string(info.Ability),
			"modifier": sheet.FormatModifier(0),
		})
	}
	return out
}

// coerceList replaces anything that is not a list with an empty list
func coerceList(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	return []any{}
}

// migrateSpell drops retired fields and makes sure duration exists
func migrateSpell(spell map[string]any) {
	if hasRetiredSpellFields(spell) {
		delete(spell, retiredConcentration)
		delete(spell, retiredMaterial)
	}
	if _, ok := spell["duration"]; !ok {
		spell["duration"] = ""
	}
}

// migrateAbilityScores turns bare numbers into breakdown records
func migrateAbilityScores(scores map[string]any) {
	for k, v := range scores {
		n, ok := legacyScore(v)
		if !ok {
			continue
		}
		if n == 0 {
			n = sheet.DefaultScore
		}
		scores[k] = map[string]any{"base": n, "race": 0, "asi": 0, "feat": 0, "magic": 0}
	}
}

package migration

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/sdkfamous/dnd-character-sheet/internal/entities/sheet"
)

// mergeValue overlays saved onto def. Missing or null values take the
// default, keys absent from def are dropped, and scalars are coerced to the
// default's type when that loses nothing.
func mergeValue(def, saved any) any {
	if saved == nil {
		return def
	}

	switch d := def.(type) {
	case map[string]any:
		s, ok := saved.(map[string]any)
		if !ok {
			return d
		}
		out := make(map[string]any, len(d))
		for k, dv := range d {
			out[k] = mergeValue(dv, s[k])
		}
		return out

	case []any:
		s, ok := saved.([]any)
		if !ok {
			return d
		}
		out := make([]any, len(d))
		for i, dv := range d {
			var sv any
			if i < len(s) {
				sv = s[i]
			}
			out[i] = mergeValue(dv, sv)
		}
		return out

	case string, json.Number, bool:
		if v, ok := CoerceScalar(d, saved); ok {
			return v
		}
		return d
	}

	return def
}

// CoerceScalar converts v to the scalar kind of like (a string, a
// json.Number standing for an integer, or a bool). It reports false when the
// conversion would lose information.
func CoerceScalar(like, v any) (any, bool) {
	switch like.(type) {
	case string:
		return coerceString(v)
	case json.Number, int:
		return coerceInt(v)
	case bool:
		b, ok := v.(bool)
		return b, ok
	}
	return nil, false
}

func coerceString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case int:
		return strconv.Itoa(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}

func coerceInt(v any) (int, bool) {
	var s string
	switch t := v.(type) {
	case int:
		return t, true
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return 0, false
	}

	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// repairEntries completes every list entry against def and guarantees each
// has a unique id. Entries that are not objects are dropped.
func repairEntries(entries []any, def map[string]any) []any {
	out := make([]any, 0, len(entries))
	var ids []string
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		merged := mergeValue(def, m).(map[string]any)
		out = append(out, merged)
		ids = append(ids, merged["id"].(string))
	}

	next := sheet.NextFreeID(ids)
	seen := make(map[string]bool, len(out))
	for _, e := range out {
		entry := e.(map[string]any)
		id := entry["id"].(string)
		if id == "" || seen[id] {
			id = strconv.Itoa(next)
			next++
			entry["id"] = id
		}
		seen[id] = true
	}
	return out
}

package document

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/sdkfamous/dnd-character-sheet/internal/entities/sheet"
	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
	"github.com/sdkfamous/dnd-character-sheet/internal/services/migration"
)

// ApplyField returns a copy of doc with the field at path set to value.
//
// Paths use JSON field names joined by dots. List entries are addressed by
// id ("weapons.101.damage"), fixed arrays by index ("deathSaves.failure.2").
// The value is converted to the field's type when that loses nothing.
func ApplyField(doc *sheet.Document, path string, value any) (*sheet.Document, error) {
	if path == "" {
		return nil, errors.InvalidArgument("field path is required")
	}
	if value == nil {
		return nil, errors.InvalidArgumentf("value for %s is required", path)
	}

	tree, err := toTree(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode document")
	}

	if err := setPath(tree, strings.Split(path, "."), value); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "cannot set %s", path)
	}

	b, err := json.Marshal(tree)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode document")
	}
	updated := &sheet.Document{}
	if err := json.Unmarshal(b, updated); err != nil {
		return nil, errors.Wrap(err, "failed to decode document")
	}

	return updated, nil
}

func setPath(tree map[string]any, segs []string, value any) error {
	var cur any = tree
	for i, seg := range segs {
		last := i == len(segs)-1

		switch node := cur.(type) {
		case map[string]any:
			old, ok := node[seg]
			if !ok {
				return errors.NotFoundf("unknown field %q", seg)
			}
			if last {
				v, err := leafValue(old, value)
				if err != nil {
					return err
				}
				node[seg] = v
				return nil
			}
			cur = old

		case []any:
			idx, err := listIndex(node, segs, i)
			if err != nil {
				return err
			}
			if last {
				if isListKind(segs[0]) && i == 1 {
					return errors.InvalidArgument("list entries cannot be replaced as a whole")
				}
				v, err := leafValue(node[idx], value)
				if err != nil {
					return err
				}
				node[idx] = v
				return nil
			}
			cur = node[idx]

		default:
			return errors.InvalidArgumentf("%q is not a container", seg)
		}
	}
	return nil
}

// listIndex resolves segs[i] inside a list. Entry lists are addressed by
// id, everything else by position.
func listIndex(list []any, segs []string, i int) (int, error) {
	seg := segs[i]
	if i == 1 && isListKind(segs[0]) {
		if len(segs) > 2 && segs[2] == "id" {
			return 0, errors.InvalidArgument("entry ids are assigned by the sheet")
		}
		for idx, e := range list {
			if entry, ok := e.(map[string]any); ok && entry["id"] == seg {
				return idx, nil
			}
		}
		return 0, errors.NotFoundf("no %s entry with id %s", segs[0], seg)
	}

	idx, err := strconv.Atoi(seg)
	if err != nil || idx < 0 || idx >= len(list) {
		return 0, errors.InvalidArgumentf("index %q out of range", seg)
	}
	return idx, nil
}

func leafValue(old, value any) (any, error) {
	switch old.(type) {
	case map[string]any, []any:
		return nil, errors.InvalidArgument("only individual fields can be set")
	}

	v, ok := migration.CoerceScalar(old, value)
	if !ok {
		return nil, errors.InvalidArgumentf("value %v does not fit this field", value)
	}
	return v, nil
}

func isListKind(key string) bool {
	return slices.Contains(sheet.ListKinds, sheet.ListKind(key))
}

func toTree(doc *sheet.Document) (map[string]any, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var tree map[string]any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	return tree, nil
}

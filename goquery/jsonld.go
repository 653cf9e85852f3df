package goquery

import (
	"encoding/json"
	"errors"
	"strings"
)

// ldEntry is a single JSON-LD node object.
type ldEntry map[string]any

// ldPayload is the parsed body of one JSON-LD block: either a single
// entry or a graph of entries. The shape is resolved once at parse time
// so scoring only ever sees flat entries.
type ldPayload interface {
	entries() []ldEntry
}

// ldSingle is a block holding one top-level object.
type ldSingle struct {
	entry ldEntry
}

// entries returns the object itself followed by any object nested under
// mainEntity, which is how WebPage wrappers carry their recipe.
func (p ldSingle) entries() []ldEntry {
	out := []ldEntry{p.entry}
	if main, ok := toPayload(p.entry["mainEntity"]); ok {
		out = append(out, main.entries()...)
	}
	return out
}

// ldGraph is a top-level array or an @graph wrapper. Items may themselves
// be graphs.
type ldGraph struct {
	items []ldPayload
}

func (g ldGraph) entries() []ldEntry {
	var out []ldEntry
	for _, item := range g.items {
		out = append(out, item.entries()...)
	}
	return out
}

var errNotJSONLD = errors.New("json-ld block is neither an object nor an array")

// parseLD decodes a JSON-LD block.
func parseLD(raw string) (ldPayload, error) {
	var v any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &v); err != nil {
		return nil, err
	}
	p, ok := toPayload(v)
	if !ok {
		return nil, errNotJSONLD
	}
	return p, nil
}

func toPayload(v any) (ldPayload, bool) {
	switch t := v.(type) {
	case map[string]any:
		if g, ok := t["@graph"]; ok {
			return toGraph(g)
		}
		return ldSingle{entry: t}, true
	case []any:
		return toGraph(t)
	}
	return nil, false
}

func toGraph(v any) (ldPayload, bool) {
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case map[string]any:
		items = []any{t}
	default:
		return nil, false
	}

	var g ldGraph
	for _, item := range items {
		if p, ok := toPayload(item); ok {
			g.items = append(g.items, p)
		}
	}
	return g, true
}

// recipeFields are the fields a complete recipe entry carries. Each
// field lists the keys that satisfy it.
var recipeFields = [][]string{
	{"name"},
	{"description"},
	{"recipeIngredient", "ingredients"},
	{"recipeInstructions"},
	{"totalTime"},
	{"recipeYield"},
}

// isRecipe reports whether the entry's @type, single or list, names a Recipe.
func (e ldEntry) isRecipe() bool {
	switch t := e["@type"].(type) {
	case string:
		return isRecipeType(t)
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && isRecipeType(s) {
				return true
			}
		}
	}
	return false
}

// isRecipeType matches "Recipe" as well as prefixed forms such as
// "schema:Recipe" or "https://schema.org/Recipe".
func isRecipeType(t string) bool {
	t = strings.TrimSpace(t)
	if i := strings.LastIndexAny(t, "/:#"); i >= 0 {
		t = t[i+1:]
	}
	return strings.EqualFold(t, "Recipe")
}

// completeness returns the percentage of recipeFields present and non-empty.
func (e ldEntry) completeness() float64 {
	present := 0
	for _, keys := range recipeFields {
		for _, key := range keys {
			if isPresent(e[key]) {
				present++
				break
			}
		}
	}
	return float64(present) / float64(len(recipeFields)) * 100
}

func isPresent(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case []any:
		for _, item := range t {
			if isPresent(item) {
				return true
			}
		}
		return false
	case map[string]any:
		return len(t) > 0
	}
	return true
}

// compact serializes the entry without insignificant whitespace.
// Keys come out sorted, so the output is deterministic.
func (e ldEntry) compact() (string, error) {
	b, err := json.Marshal(map[string]any(e))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

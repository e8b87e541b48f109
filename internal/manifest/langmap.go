package manifest

import (
	"encoding/json"
	"sort"
)

// LangMap is a localized label: language tag to value list. Exported
// documents always use the "none" language.
//
// Hand-authored and legacy documents are loose about the shape: a label may
// be a bare string, a string list, or a map whose values are single strings
// instead of lists. UnmarshalJSON normalizes all of those to the canonical
// map form so nothing downstream re-checks shape.
type LangMap map[string][]string

// NewLangMap wraps a plain string as a "none"-language label.
func NewLangMap(value string) LangMap {
	return LangMap{"none": {value}}
}

// First returns a display value: the first "none" entry, then the first "en"
// entry, then the first entry of the lexically first language. Empty when the
// label is absent. Cross-language fallback policy beyond this is a caller
// concern.
func (l LangMap) First() string {
	if l == nil {
		return ""
	}
	for _, lang := range []string{"none", "en"} {
		if vals := l[lang]; len(vals) > 0 {
			return vals[0]
		}
	}
	langs := make([]string, 0, len(l))
	for lang := range l {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if vals := l[lang]; len(vals) > 0 {
			return vals[0]
		}
	}
	return ""
}

func (l *LangMap) UnmarshalJSON(data []byte) error {
	// Canonical shape.
	var canonical map[string][]string
	if err := json.Unmarshal(data, &canonical); err == nil {
		*l = canonical
		return nil
	}

	// Map of single strings.
	var singles map[string]string
	if err := json.Unmarshal(data, &singles); err == nil {
		out := make(LangMap, len(singles))
		for lang, v := range singles {
			out[lang] = []string{v}
		}
		*l = out
		return nil
	}

	// Bare string.
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = NewLangMap(s)
		return nil
	}

	// Bare string list.
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = LangMap{"none": list}
		return nil
	}

	// Unknown shape: treat as absent.
	*l = nil
	return nil
}

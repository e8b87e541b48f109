package manifest

import (
	"encoding/json"
	"testing"
)

func TestLangMapUnmarshalShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "canonical map of lists", input: `{"none": ["Board"]}`, want: "Board"},
		{name: "map of single strings", input: `{"en": "Board"}`, want: "Board"},
		{name: "bare string", input: `"Board"`, want: "Board"},
		{name: "bare list", input: `["Board", "Second"]`, want: "Board"},
		{name: "number treated as absent", input: `42`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l LangMap
			if err := json.Unmarshal([]byte(tt.input), &l); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := l.First(); got != tt.want {
				t.Errorf("First() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLangMapFirstPreference(t *testing.T) {
	tests := []struct {
		name string
		l    LangMap
		want string
	}{
		{name: "nil map", l: nil, want: ""},
		{name: "none wins", l: LangMap{"none": {"a"}, "en": {"b"}}, want: "a"},
		{name: "en before other languages", l: LangMap{"fr": {"c"}, "en": {"b"}}, want: "b"},
		{name: "lexically first language", l: LangMap{"fr": {"c"}, "de": {"d"}}, want: "d"},
		{name: "empty value lists skipped", l: LangMap{"none": {}, "en": {"b"}}, want: "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.l.First(); got != tt.want {
				t.Errorf("First() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMotivationUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Motivation
	}{
		{name: "string", input: `"painting"`, want: "painting"},
		{name: "array takes first", input: `["linking", "tagging"]`, want: "linking"},
		{name: "empty array", input: `[]`, want: ""},
		{name: "object treated as absent", input: `{"x": 1}`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Motivation
			if err := json.Unmarshal([]byte(tt.input), &m); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if m != tt.want {
				t.Errorf("motivation = %q, want %q", m, tt.want)
			}
		})
	}
}

package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name: "with location and suggestions",
			err: ValidationError{
				File:        "verbs.yml",
				Location:    "entry[0]: run",
				Message:     "duplicate verb",
				Suggestions: []string{"remove one", "rename one"},
			},
			expected: "verbs.yml (entry[0]: run): duplicate verb [Suggestion: remove one; rename one]",
		},
		{
			name:     "without location",
			err:      ValidationError{File: "verbs.yml", Message: "file not found"},
			expected: "verbs.yml: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    []string
	}{
		{
			name: "valid",
			entries: []Entry{
				{ID: 1, Verb: "run", Translation: "koşmak"},
				{ID: 2, Verb: "eat", Translation: "yemek"},
			},
		},
		{
			name: "missing fields",
			entries: []Entry{
				{ID: 0, Verb: "run"},
			},
			want: []string{
				"verbs.yml (entry[0]: run): id must be greater than 0",
				"verbs.yml (entry[0]: run): translation is empty",
			},
		},
		{
			name: "duplicates",
			entries: []Entry{
				{ID: 1, Verb: "run", Translation: "koşmak"},
				{ID: 1, Verb: "Run", Translation: "koşmak"},
			},
			want: []string{
				"verbs.yml (entry[1]: Run): duplicate id 1, first used by entry[0] [Suggestion: give every entry a unique id]",
				`verbs.yml (entry[1]: Run): duplicate verb "Run", first used by entry[0] [Suggestion: remove one of the entries]`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, err := range Validate("verbs.yml", tt.entries) {
				got = append(got, err.Error())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

package vocabulary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "verbs.yml")

	entries, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, entries)

	want := []Entry{
		{ID: 1, Verb: "run", Translation: "koşmak", Category: "Motion", ExampleSentence: "I run fast."},
		{ID: 2, Verb: "eat", Translation: "yemek", Category: DefaultCategory},
	}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	broken := filepath.Join(dir, "broken.yml")
	require.NoError(t, os.WriteFile(broken, []byte("id: [unclosed"), 0644))
	_, err = Load(broken)
	assert.Error(t, err)
}

func TestAddWord(t *testing.T) {
	existing := []Entry{
		{ID: 1, Verb: "run", Translation: "koşmak", Category: "Motion"},
		{ID: 5, Verb: "eat", Translation: "yemek", Category: "Daily"},
	}

	tests := []struct {
		name            string
		entries         []Entry
		verb            string
		translation     string
		category        string
		exampleSentence string
		want            Entry
		wantErr         error
	}{
		{
			name:            "next id after the maximum",
			entries:         existing,
			verb:            "  write ",
			translation:     "yazmak",
			category:        "School",
			exampleSentence: "I write letters.",
			want:            Entry{ID: 6, Verb: "write", Translation: "yazmak", Category: "School", ExampleSentence: "I write letters."},
		},
		{
			name:        "default category",
			entries:     existing,
			verb:        "sleep",
			translation: "uyumak",
			want:        Entry{ID: 6, Verb: "sleep", Translation: "uyumak", Category: DefaultCategory},
		},
		{
			name:        "first entry",
			verb:        "run",
			translation: "koşmak",
			want:        Entry{ID: 1, Verb: "run", Translation: "koşmak", Category: DefaultCategory},
		},
		{
			name:        "duplicate verb ignoring case",
			entries:     existing,
			verb:        "RUN",
			translation: "koşmak",
			wantErr:     ErrDuplicateVerb,
		},
		{
			name:        "empty verb",
			entries:     existing,
			verb:        "  ",
			translation: "koşmak",
			wantErr:     ErrEmptyField,
		},
		{
			name:    "empty translation",
			entries: existing,
			verb:    "walk",
			wantErr: ErrEmptyField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := append([]Entry(nil), tt.entries...)
			got, added, err := AddWord(entries, tt.verb, tt.translation, tt.category, tt.exampleSentence)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, got, len(tt.entries))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, added)
			assert.Len(t, got, len(tt.entries)+1)
			assert.Equal(t, tt.want, got[len(got)-1])
		})
	}
}

func TestImport(t *testing.T) {
	existing := []Entry{
		{ID: 3, Verb: "run", Translation: "koşmak", Category: "Motion"},
	}
	incoming := []Entry{
		{ID: 1, Verb: "Run", Translation: "koşmak"},
		{ID: 1, Verb: "eat", Translation: "yemek", Category: "Daily"},
		{ID: 2, Verb: "EAT", Translation: "yemek"},
		{Verb: "drink", Translation: ""},
		{Verb: "sleep", Translation: "uyumak"},
	}

	got, result := Import(existing, incoming)

	assert.Equal(t, []Entry{
		{ID: 3, Verb: "run", Translation: "koşmak", Category: "Motion"},
		{ID: 4, Verb: "eat", Translation: "yemek", Category: "Daily"},
		{ID: 5, Verb: "sleep", Translation: "uyumak", Category: DefaultCategory},
	}, got)
	assert.Equal(t, got[1:], result.Added)
	assert.Equal(t, []string{"Run", "EAT", "drink"}, result.Skipped)
}

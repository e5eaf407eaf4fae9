// Package vocabulary reads and maintains the static list of verbs the drill is built from.
package vocabulary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/at-ishikawa/verbdrill/internal/yamlfile"
)

const DefaultCategory = "General"

var (
	ErrDuplicateVerb = errors.New("verb already exists")
	ErrEmptyField    = errors.New("required field is empty")
)

// Entry is the static content of one card.
type Entry struct {
	ID              int    `yaml:"id" json:"id" validate:"gt=0"`
	Verb            string `yaml:"verb" json:"verb" validate:"required"`
	Translation     string `yaml:"translation" json:"translation" validate:"required"`
	Category        string `yaml:"category,omitempty" json:"category,omitempty"`
	ExampleSentence string `yaml:"example_sentence,omitempty" json:"example_sentence,omitempty"`
}

// Load reads the vocabulary file at path. A missing or empty file is an empty vocabulary.
func Load(path string) ([]Entry, error) {
	entries, err := yamlfile.ReadOptional[[]Entry](path)
	if err != nil {
		return nil, fmt.Errorf("yamlfile.ReadOptional(%s) > %w", path, err)
	}
	return entries, nil
}

// Save writes entries to path, creating the parent directory if needed.
func Save(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	if err := yamlfile.Write(path, entries); err != nil {
		return fmt.Errorf("yamlfile.Write(%s) > %w", path, err)
	}
	return nil
}

// AddWord appends a new entry with the next free id.
// Verb and translation are required, verbs are unique ignoring case, and an empty category
// becomes DefaultCategory.
func AddWord(entries []Entry, verb, translation, category, exampleSentence string) ([]Entry, Entry, error) {
	entry := Entry{
		Verb:            strings.TrimSpace(verb),
		Translation:     strings.TrimSpace(translation),
		Category:        strings.TrimSpace(category),
		ExampleSentence: strings.TrimSpace(exampleSentence),
	}
	if entry.Verb == "" {
		return entries, Entry{}, fmt.Errorf("verb: %w", ErrEmptyField)
	}
	if entry.Translation == "" {
		return entries, Entry{}, fmt.Errorf("translation: %w", ErrEmptyField)
	}
	if entry.Category == "" {
		entry.Category = DefaultCategory
	}

	for _, existing := range entries {
		if strings.EqualFold(existing.Verb, entry.Verb) {
			return entries, Entry{}, fmt.Errorf("%s: %w", entry.Verb, ErrDuplicateVerb)
		}
	}

	entry.ID = maxID(entries) + 1
	return append(entries, entry), entry, nil
}

// ImportResult counts the outcome of Import.
type ImportResult struct {
	Added   []Entry
	Skipped []string
}

// Import appends incoming entries whose verb is not present yet, ignoring case.
// Incoming ids are discarded and re-assigned after the current maximum id.
func Import(entries []Entry, incoming []Entry) ([]Entry, ImportResult) {
	var result ImportResult
	seen := make(map[string]struct{}, len(entries)+len(incoming))
	for _, entry := range entries {
		seen[strings.ToLower(entry.Verb)] = struct{}{}
	}

	nextID := maxID(entries) + 1
	for _, entry := range incoming {
		entry.Verb = strings.TrimSpace(entry.Verb)
		entry.Translation = strings.TrimSpace(entry.Translation)
		if entry.Verb == "" || entry.Translation == "" {
			result.Skipped = append(result.Skipped, entry.Verb)
			continue
		}
		key := strings.ToLower(entry.Verb)
		if _, ok := seen[key]; ok {
			result.Skipped = append(result.Skipped, entry.Verb)
			continue
		}
		seen[key] = struct{}{}

		if entry.Category == "" {
			entry.Category = DefaultCategory
		}
		entry.ID = nextID
		nextID++
		entries = append(entries, entry)
		result.Added = append(result.Added, entry)
	}
	return entries, result
}

func maxID(entries []Entry) int {
	result := 0
	for _, entry := range entries {
		result = max(result, entry.ID)
	}
	return result
}

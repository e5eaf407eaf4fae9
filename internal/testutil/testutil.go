// Package testutil provides shared test helpers for creating config and vocabulary fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/verbdrill/internal/vocabulary"
)

// SetupTestConfig writes a config file keeping every file of the drill under tmpDir.
// Progress is stored in a YAML file and the database backend uses SQLite.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := fmt.Sprintf(`vocabulary:
  file: %s
progress:
  backend: file
  file: %s
database:
  driver: sqlite
  path: %s
  connect_attempts: 1
drill:
  selection: uniform
  seed: 1
`,
		VocabularyPath(tmpDir),
		ProgressPath(tmpDir),
		filepath.Join(tmpDir, "verbdrill.db"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// VocabularyPath is the vocabulary file SetupTestConfig points to.
func VocabularyPath(tmpDir string) string {
	return filepath.Join(tmpDir, "vocabulary", "verbs.yml")
}

// ProgressPath is the progress file SetupTestConfig points to.
func ProgressPath(tmpDir string) string {
	return filepath.Join(tmpDir, "progress", "progress.yml")
}

// SampleEntries returns a small vocabulary with distinct translations.
func SampleEntries() []vocabulary.Entry {
	return []vocabulary.Entry{
		{ID: 1, Verb: "run", Translation: "koşmak", Category: "Motion", ExampleSentence: "I run fast."},
		{ID: 2, Verb: "eat", Translation: "yemek", Category: "Daily", ExampleSentence: "We eat at noon."},
		{ID: 3, Verb: "sleep", Translation: "uyumak", Category: "Daily"},
		{ID: 4, Verb: "write", Translation: "yazmak", Category: "School"},
		{ID: 5, Verb: "read", Translation: "okumak", Category: "School"},
	}
}

// CreateVocabulary writes entries to the vocabulary file of the config under tmpDir.
func CreateVocabulary(t *testing.T, tmpDir string, entries []vocabulary.Entry) {
	t.Helper()
	require.NoError(t, vocabulary.Save(VocabularyPath(tmpDir), entries))
}

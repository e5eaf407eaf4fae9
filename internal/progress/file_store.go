package progress

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/verbdrill/internal/yamlfile"
)

// FileStore keeps the whole Blob in one YAML file keyed by card id.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for path. The file is created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load implements Store.
// Entries that cannot be decoded or miss a required field are skipped.
func (s *FileStore) Load(ctx context.Context) (Blob, error) {
	entries, err := s.readEntries()
	if err != nil {
		return nil, err
	}

	blob := make(Blob, len(entries))
	for key, node := range entries {
		id, err := strconv.Atoi(key)
		if err != nil {
			slog.Default().Warn("skip progress entry with non numeric id", "path", s.path, "id", key)
			continue
		}

		var raw rawRecord
		if err := node.Decode(&raw); err != nil {
			slog.Default().Warn("skip undecodable progress entry", "path", s.path, "id", id, "error", err)
			continue
		}
		record, ok := raw.toRecord()
		if !ok {
			slog.Default().Warn("skip malformed progress entry", "path", s.path, "id", id)
			continue
		}
		blob[id] = record
	}
	slog.Default().Debug("loaded progress file", "path", s.path, "records", len(blob))
	return blob, nil
}

// Save implements Store.
// The file is re-read before writing so that entries of other cards, including ones Load
// skipped, are written back unchanged.
func (s *FileStore) Save(ctx context.Context, cardID int, record Record) error {
	entries, err := s.readEntries()
	if err != nil {
		return err
	}

	var node yaml.Node
	if err := node.Encode(record); err != nil {
		return fmt.Errorf("node.Encode(%d) > %w", cardID, err)
	}
	entries[strconv.Itoa(cardID)] = node

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}
	if err := yamlfile.Write(s.path, entries); err != nil {
		return fmt.Errorf("yamlfile.Write(%s) > %w", s.path, err)
	}
	slog.Default().Debug("saved progress", "path", s.path, "card_id", cardID)
	return nil
}

func (s *FileStore) readEntries() (map[string]yaml.Node, error) {
	entries, err := yamlfile.ReadOptional[map[string]yaml.Node](s.path)
	if err != nil {
		return nil, fmt.Errorf("yamlfile.ReadOptional(%s) > %w", s.path, err)
	}
	if entries == nil {
		entries = make(map[string]yaml.Node)
	}
	return entries, nil
}

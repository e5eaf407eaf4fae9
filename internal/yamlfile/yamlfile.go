// Package yamlfile reads and writes single YAML documents on disk.
package yamlfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Read decodes the YAML document at path.
// A missing file wraps os.ErrNotExist and an empty file wraps io.EOF.
func Read[T any](path string) (T, error) {
	var result T

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("os.Open(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil {
		return result, fmt.Errorf("yaml.NewDecoder().Decode()> %w", err)
	}
	return result, nil
}

// ReadOptional is Read for documents that may not exist yet.
// It returns the zero value without an error when the file is missing or empty.
func ReadOptional[T any](path string) (T, error) {
	result, err := Read[T](path)
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, io.EOF) {
		var zero T
		return zero, nil
	}
	return result, err
}

// Write encodes data as YAML into path, replacing any previous contents.
func Write[T any](path string, data T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s)> %w", path, err)
	}

	if err := yaml.NewEncoder(file).Encode(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("yaml.NewEncoder().Encode()> %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close(%s)> %w", path, err)
	}
	return nil
}

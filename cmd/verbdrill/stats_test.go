package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/verbdrill/internal/testutil"
)

func TestNewStatsCommand_RunE(t *testing.T) {
	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))
	testutil.CreateVocabulary(t, tmpDir, testutil.SampleEntries())

	var stdout bytes.Buffer
	cmd := newStatsCommand()
	cmd.SetArgs([]string{})
	cmd.SetOut(&stdout)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "Total words:  5")
	assert.Contains(t, stdout.String(), "School")
}

func TestNewStatsCommand_RunE_EmptyVocabulary(t *testing.T) {
	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))

	var stdout bytes.Buffer
	cmd := newStatsCommand()
	cmd.SetArgs([]string{})
	cmd.SetOut(&stdout)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "No words in the vocabulary yet.")
}

func TestNewStatsCommand_RunE_PDF(t *testing.T) {
	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))
	testutil.CreateVocabulary(t, tmpDir, testutil.SampleEntries())

	reportPath := filepath.Join(tmpDir, "reports", "stats.md")
	var stdout bytes.Buffer
	cmd := newStatsCommand()
	cmd.SetArgs([]string{"--pdf", reportPath})
	cmd.SetOut(&stdout)

	require.NoError(t, cmd.Execute())
	assert.FileExists(t, reportPath)
	assert.FileExists(t, filepath.Join(tmpDir, "reports", "stats.pdf"))
	assert.Contains(t, stdout.String(), "Report written to")
}

func TestNewStatsCommand_RunE_InvalidReportPath(t *testing.T) {
	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))

	cmd := newStatsCommand()
	cmd.SetArgs([]string{"--pdf", filepath.Join(tmpDir, "stats.txt")})
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to export the report")
}

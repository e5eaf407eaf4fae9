package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/verbdrill/internal/statistics"
)

var sampleResult = statistics.StatisticsResult{
	Summary: statistics.Summary{Total: 4, Learned: 1, InProgress: 2, New: 1, Due: 3},
	Categories: []statistics.CategoryStatistics{
		{Category: "", Summary: statistics.Summary{Total: 1, New: 1, Due: 1}},
		{Category: "Motion", Summary: statistics.Summary{Total: 3, Learned: 1, InProgress: 2, Due: 2}},
	},
}

func TestWriteStatisticsReport(t *testing.T) {
	tests := []struct {
		name   string
		result statistics.StatisticsResult
		want   []string
	}{
		{
			name:   "empty deck",
			result: statistics.StatisticsResult{},
			want:   []string{"No words in the vocabulary yet."},
		},
		{
			name:   "summary and categories",
			result: sampleResult,
			want: []string{
				"Total words:  4",
				"Learned:      1",
				"In progress:  2",
				"New:          1",
				"Due now:      3",
				"Mastery:      25.0%",
				"(none)",
				"Motion                 3         1            2     0     2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			WriteStatisticsReport(&out, tt.result)
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestMarkdownStatisticsReport(t *testing.T) {
	generatedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("embedded template", func(t *testing.T) {
		content, err := MarkdownStatisticsReport("", sampleResult, generatedAt)
		require.NoError(t, err)
		got := string(content)

		assert.True(t, strings.HasPrefix(got, "# Verb Drill Statistics\n"))
		assert.Contains(t, got, "Generated at 2026-01-02 03:04:05")
		assert.Contains(t, got, "| Learned | 1 |")
		assert.Contains(t, got, "Mastery: **25.0%**")
		assert.Contains(t, got, "| (none) | 1 | 0 | 0 | 1 | 1 |")
		assert.Contains(t, got, "| Motion | 3 | 1 | 2 | 0 | 2 |")
	})

	t.Run("custom template", func(t *testing.T) {
		templatePath := filepath.Join(t.TempDir(), "report.md.go.tmpl")
		require.NoError(t, os.WriteFile(templatePath, []byte(`{{ .GeneratedAt }} {{ .Summary.Due }} due`), 0644))

		content, err := MarkdownStatisticsReport(templatePath, sampleResult, generatedAt)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-02 03:04:05 3 due", string(content))
	})

	t.Run("template execution error", func(t *testing.T) {
		templatePath := filepath.Join(t.TempDir(), "report.md.go.tmpl")
		require.NoError(t, os.WriteFile(templatePath, []byte(`{{ .Unknown }}`), 0644))

		_, err := MarkdownStatisticsReport(templatePath, sampleResult, generatedAt)
		assert.Error(t, err)
	})
}

func TestExportStatisticsPDF(t *testing.T) {
	markdownPath := filepath.Join(t.TempDir(), "stats.md")

	pdfPath, err := ExportStatisticsPDF("", markdownPath, sampleResult, time.Now())
	require.NoError(t, err)
	assert.FileExists(t, markdownPath)
	info, err := os.Stat(pdfPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = ExportStatisticsPDF("", filepath.Join(t.TempDir(), "stats.txt"), sampleResult, time.Now())
	assert.Error(t, err)
}

package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCategory struct {
	Category   string
	Total      int
	Learned    int
	InProgress int
	New        int
	Due        int
}

type testSummary struct {
	Total      int
	Learned    int
	InProgress int
	New        int
	Due        int
}

type testReport struct {
	GeneratedAt string
	Summary     testSummary
	Mastery     float64
	Categories  []testCategory
}

func TestParseStatisticsTemplate(t *testing.T) {
	tests := []struct {
		name         string
		templatePath string

		wantTemplateName string
		templateData     any
		wantContents     string
	}{
		{
			name: "uses filesystem template when available",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "custom.md.go.tmpl")
				content := `Words: {{ .Summary.Total }}{{ range .Categories }} {{ orNone .Category }}{{ end }}`
				require.NoError(t, os.WriteFile(templatePath, []byte(content), 0644))
				return templatePath
			}(t),
			wantTemplateName: "custom.md.go.tmpl",
			templateData: testReport{
				Summary:    testSummary{Total: 2},
				Categories: []testCategory{{Category: "Motion"}, {Category: ""}},
			},
			wantContents: "Words: 2 Motion (none)",
		},
		{
			name:             "uses embedded template when file doesn't exist",
			templatePath:     "/non/existent/invalid.md.go.tmpl",
			wantTemplateName: statisticsTemplateName,
			templateData: testReport{
				GeneratedAt: "2026-01-02 03:04:05",
				Summary:     testSummary{Total: 1, New: 1, Due: 1},
			},
			wantContents: `# Verb Drill Statistics

Generated at 2026-01-02 03:04:05

| Bucket | Words |
|---|---|
| Total | 1 |
| Learned | 0 |
| In progress | 0 |
| New | 1 |
| Due now | 1 |

Mastery: **0.0%**
`,
		},
		{
			name:             "uses embedded template when path is empty",
			templatePath:     "",
			wantTemplateName: statisticsTemplateName,
			templateData: testReport{
				Summary:    testSummary{Total: 4, Learned: 1, InProgress: 3},
				Mastery:    25,
				Categories: []testCategory{{Category: "Motion", Total: 4, Learned: 1, InProgress: 3}},
			},
			wantContents: "Mastery: **25.0%**\n\n## Categories\n\n" +
				"| Category | Total | Learned | In progress | New | Due |\n" +
				"|---|---|---|---|---|---|\n" +
				"| Motion | 4 | 1 | 3 | 0 | 0 |\n",
		},
		{
			name: "falls back when filesystem template is invalid",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "broken.md.go.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte("{{ .Summary"), 0644))
				return templatePath
			}(t),
			wantTemplateName: statisticsTemplateName,
			templateData:     testReport{Summary: testSummary{Total: 3}},
			wantContents:     "| Total | 3 |",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatisticsTemplate(tt.templatePath)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTemplateName, got.Name())

			var buf bytes.Buffer
			require.NoError(t, got.Execute(&buf, tt.templateData))
			assert.Contains(t, buf.String(), tt.wantContents)
		})
	}
}

// Package assets holds the embedded report templates.
package assets

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const statisticsTemplateName = "statistics-report.md.go.tmpl"

//go:embed templates/statistics-report.md.go.tmpl
var fallbackStatisticsTemplate string

// ParseStatisticsTemplate parses the markdown statistics template at templatePath, or the
// embedded one when templatePath is empty or cannot be parsed.
func ParseStatisticsTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, statisticsTemplateName, fallbackStatisticsTemplate)
}

func parseTemplateWithFallback(templatePath string, fallbackName string, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join":   strings.Join,
		"orNone": orNone,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

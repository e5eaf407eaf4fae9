package cli

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/verbdrill/internal/assets"
	"github.com/at-ishikawa/verbdrill/internal/pdf"
	"github.com/at-ishikawa/verbdrill/internal/statistics"
)

// WriteStatisticsReport prints the deck summary and the per category breakdown as a table.
func WriteStatisticsReport(w io.Writer, result statistics.StatisticsResult) {
	summary := result.Summary
	if summary.Total == 0 {
		_, _ = fmt.Fprintln(w, "No words in the vocabulary yet.")
		return
	}

	_, _ = fmt.Fprintln(w, "Learning Statistics")
	_, _ = fmt.Fprintln(w, "===================")
	_, _ = fmt.Fprintf(w, "Total words:  %d\n", summary.Total)
	_, _ = fmt.Fprintf(w, "Learned:      %d\n", summary.Learned)
	_, _ = fmt.Fprintf(w, "In progress:  %d\n", summary.InProgress)
	_, _ = fmt.Fprintf(w, "New:          %d\n", summary.New)
	_, _ = fmt.Fprintf(w, "Due now:      %d\n", summary.Due)
	_, _ = fmt.Fprintf(w, "Mastery:      %.1f%%\n", summary.MasteryPercentage())
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "%-16s  %6s  %8s  %11s  %4s  %4s\n", "Category", "Total", "Learned", "In progress", "New", "Due")
	_, _ = fmt.Fprintf(w, "%-16s  %6s  %8s  %11s  %4s  %4s\n", "--------", "-----", "-------", "-----------", "---", "---")
	for _, c := range result.Categories {
		_, _ = fmt.Fprintf(w, "%-16s  %6d  %8d  %11d  %4d  %4d\n",
			categoryName(c.Category), c.Total, c.Learned, c.InProgress, c.New, c.Due)
	}
}

type statisticsReportData struct {
	GeneratedAt string
	Summary     statistics.Summary
	Mastery     float64
	Categories  []statistics.CategoryStatistics
}

// MarkdownStatisticsReport renders result with the markdown template at templatePath, the
// embedded template when templatePath is empty.
func MarkdownStatisticsReport(templatePath string, result statistics.StatisticsResult, generatedAt time.Time) ([]byte, error) {
	tmpl, err := assets.ParseStatisticsTemplate(templatePath)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseStatisticsTemplate() > %w", err)
	}

	var b bytes.Buffer
	if err := tmpl.Execute(&b, statisticsReportData{
		GeneratedAt: generatedAt.Format(time.DateTime),
		Summary:     result.Summary,
		Mastery:     result.Summary.MasteryPercentage(),
		Categories:  result.Categories,
	}); err != nil {
		return nil, fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return b.Bytes(), nil
}

// ExportStatisticsPDF writes the markdown report to markdownPath and converts it to PDF.
func ExportStatisticsPDF(templatePath, markdownPath string, result statistics.StatisticsResult, generatedAt time.Time) (string, error) {
	content, err := MarkdownStatisticsReport(templatePath, result, generatedAt)
	if err != nil {
		return "", err
	}
	pdfPath, err := pdf.WriteReport(markdownPath, content)
	if err != nil {
		return "", fmt.Errorf("pdf.WriteReport() > %w", err)
	}
	return pdfPath, nil
}

func categoryName(category string) string {
	if category == "" {
		return "(none)"
	}
	return category
}

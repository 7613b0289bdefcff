// Package renderer turns a statement report into markdown and HTML.
package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dpenev/statement"
)

//go:embed *.md
var templates embed.FS

// ReportMarkdown renders the report to a markdown string.
func ReportMarkdown(r *statement.Result) string {
	partials := map[string]string{
		"report_summary":     "report_summary.md",
		"report_totals":      "report_totals.md",
		"report_conversions": "report_conversions.md",
	}
	return renderTemplate("report", "report.md", partials, r)
}

// ReportHTML renders the report to a standalone HTML fragment, for
// pasting into whatever the accountant wants it in.
func ReportHTML(r *statement.Result) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var b bytes.Buffer
	if err := md.Convert([]byte(ReportMarkdown(r)), &b); err != nil {
		return "", fmt.Errorf("converting report to HTML: %w", err)
	}
	return b.String(), nil
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

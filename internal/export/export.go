// Package export serializes article collections to the supported file
// formats. Writers carry no business logic: they render the articles
// they are given in a fixed column order.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dongbanlab/newswatch/internal/domain"
)

// Supported format identifiers.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Columns render localized headers plus the value of one tabular
// column, in deterministic order. CSV and XLSX share this schema.
var columns = []struct {
	Header string
	Value  func(a domain.Article) string
}{
	{"제목", func(a domain.Article) string { return a.Title }},
	{"출처", func(a domain.Article) string { return a.Source }},
	{"게시일", func(a domain.Article) string { return a.PublishedDate }},
	{"요약", func(a domain.Article) string { return a.Summary }},
	{"링크", func(a domain.Article) string { return a.Link }},
}

// Exporter renders a sequence of articles to a byte stream.
type Exporter interface {
	Format() string
	Write(w io.Writer, articles []domain.Article) error
}

// Registry resolves exporters by format id.
type Registry struct {
	exporters map[string]Exporter
}

// NewRegistry builds a registry over the given exporters. Later
// entries with a duplicate format id replace earlier ones.
func NewRegistry(exporters ...Exporter) *Registry {
	reg := &Registry{exporters: make(map[string]Exporter, len(exporters))}
	for _, e := range exporters {
		if e == nil {
			continue
		}
		reg.exporters[strings.ToLower(strings.TrimSpace(e.Format()))] = e
	}
	return reg
}

// DefaultRegistry wires up the JSON, CSV and XLSX exporters.
func DefaultRegistry() *Registry {
	return NewRegistry(NewJSONExporter(), NewCSVExporter(), NewXLSXExporter())
}

// For selects the exporter for a format id.
func (r *Registry) For(format string) (Exporter, error) {
	key := strings.ToLower(strings.TrimSpace(format))
	if key == "" {
		return nil, fmt.Errorf("export format is empty")
	}
	if e, ok := r.exporters[key]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("no exporter registered for format %q", format)
}

// Formats lists the registered format ids in sorted order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.exporters))
	for f := range r.exporters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// FileName returns a timestamped export file name, matching the
// newswatch_articles_YYYYMMDD_HHMMSS.<ext> pattern.
func FileName(format string, t time.Time) string {
	return fmt.Sprintf("newswatch_articles_%s.%s",
		t.Format("20060102_150405"), strings.ToLower(strings.TrimSpace(format)))
}

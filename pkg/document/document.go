// Package document renders self-contained printable HTML documents
// (receipts, statements and reports) with the temple letterhead.
package document

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/sangkips/temple-api/pkg/format"
)

// Align is the horizontal alignment of a table column.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Column describes one table column.
type Column struct {
	Label string
	Align Align
}

// Config parameterizes a document.
type Config struct {
	Title          string
	Subtitle       string
	Columns        []Column
	CurrencySymbol string
	ShowControls   bool
	// GeneratedAt is printed in the footer only when set, so identical
	// inputs always render identical output.
	GeneratedAt *time.Time
}

// Branding is the letterhead shown at the top of every document.
type Branding struct {
	Name    string
	Address []string
	Phone   string
	Email   string
	// LogoURL must be an absolute http(s) URL or a data:image URL. Anything
	// else falls back to the placeholder.
	LogoURL string
}

// Field is a label/value pair.
type Field struct {
	Label string
	Value string
}

// Section is a titled group of fields rendered before the table.
type Section struct {
	Title  string
	Fields []Field
}

// Row is a table row. Cells are positional against Config.Columns.
type Row struct {
	Cells []string
	// Class is an optional CSS class: "opening", "closing", "muted", "total".
	Class string
}

// Body is the variable content of a document.
type Body struct {
	Meta          []Field
	Sections      []Section
	Rows          []Row
	EmptyText     string
	AmountInWords string
	Notes         []string
}

// Total is a summary line shown below the table.
type Total struct {
	Label    string
	Value    string
	Emphasis bool
}

type view struct {
	Config   Config
	Header   Branding
	Body     Body
	Totals   []Total
	Aligns   []Align
	Colspan  int
	Footer   string
	Initials string
	Logo     template.URL
}

var tpl = template.Must(template.New("document").Funcs(template.FuncMap{
	"cellAlign": cellAlign,
}).Parse(documentTemplate))

// Build renders the complete HTML document. It is a pure function of its
// arguments.
func Build(cfg Config, header Branding, body Body, totals []Total) (string, error) {
	if strings.TrimSpace(cfg.Title) == "" {
		return "", fmt.Errorf("document: title is required")
	}
	for i, r := range body.Rows {
		if len(cfg.Columns) > 0 && len(r.Cells) > len(cfg.Columns) {
			return "", fmt.Errorf("document: row %d has %d cells for %d columns", i, len(r.Cells), len(cfg.Columns))
		}
	}
	if strings.TrimSpace(header.Name) == "" {
		header.Name = "Temple"
	}
	if body.EmptyText == "" {
		body.EmptyText = "No records found"
	}

	v := view{
		Config:   cfg,
		Header:   header,
		Body:     body,
		Totals:   totals,
		Colspan:  len(cfg.Columns),
		Initials: initials(header.Name),
		Logo:     logoSource(header.LogoURL),
	}
	v.Aligns = make([]Align, len(cfg.Columns))
	for i, c := range cfg.Columns {
		v.Aligns[i] = c.Align
	}
	if v.Colspan == 0 {
		v.Colspan = 1
	}
	if cfg.GeneratedAt != nil {
		v.Footer = "Generated on " + format.PrintDate(*cfg.GeneratedAt) + " " + cfg.GeneratedAt.Format("15:04")
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("document: render %q: %w", cfg.Title, err)
	}
	return buf.String(), nil
}

func cellAlign(aligns []Align, i int) string {
	if i < len(aligns) && aligns[i] != "" {
		return string(aligns[i])
	}
	return string(AlignLeft)
}

// logoSource accepts http, https and data:image URLs. html/template would
// rewrite a data URL in src to #ZgotmplZ, so accepted values are marked safe.
func logoSource(raw string) template.URL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if len(raw) > len("data:image/") && strings.EqualFold(raw[:len("data:image/")], "data:image/") {
		return template.URL(raw)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return template.URL(u.String())
	}
	return ""
}

func initials(name string) string {
	var b strings.Builder
	for _, w := range strings.Fields(name) {
		r := []rune(w)
		b.WriteRune(r[0])
		if b.Len() >= 2 {
			break
		}
	}
	return strings.ToUpper(b.String())
}

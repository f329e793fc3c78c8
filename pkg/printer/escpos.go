package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command bytes.
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment.
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size.
const (
	FontNormal = 0x00
	FontDouble = 0x11 // double width + double height
	FontWide   = 0x10
	FontTall   = 0x01
)

// Document builds an ESC/POS byte stream.
type Document struct {
	buf   bytes.Buffer
	width int // characters per line: 32 for 58mm paper, 48 for 80mm
}

// NewDocument creates a document for a printer with charWidth columns.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Width returns the line width in characters.
func (d *Document) Width() int { return d.width }

// Init sends ESC @.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// LineFeed sends one line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets AlignLeft, AlignCenter or AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold toggles emphasized text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes s wrapped to the line width.
func (d *Document) Text(s string) *Document {
	for _, line := range Wrap(s, d.width) {
		d.buf.WriteString(line)
		d.buf.WriteByte(LF)
	}
	return d
}

// TextF writes a formatted, wrapped line.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints a full-width rule.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints key left-aligned and value right-aligned on one line.
// When both do not fit, the value moves to its own right-aligned line.
func (d *Document) KeyValue(key, value string) *Document {
	kw, vw := utf8.RuneCountInString(key), utf8.RuneCountInString(value)
	if kw+vw+1 > d.width {
		d.Text(key)
		pad := d.width - vw
		if pad < 0 {
			pad = 0
		}
		d.buf.WriteString(strings.Repeat(" ", pad))
		d.buf.WriteString(value)
		d.buf.WriteByte(LF)
		return d
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", d.width-kw-vw))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// Cut sends a full paper cut.
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

// PartialCut sends a partial paper cut.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Wrap splits s into lines of at most width runes, breaking on spaces
// where possible.
func Wrap(s string, width int) []string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return []string{s}
	}
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, w...)
		case len(cur)+1+len(w) <= width:
			cur = append(cur, ' ')
			cur = append(cur, w...)
		default:
			lines = append(lines, string(cur))
			cur = append([]rune{}, w...)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
	FontWide   = 0x10 // Double width only
	FontTall   = 0x01 // Double height only
)

// replacements maps the non-ASCII runes that appear in bill details to printable ASCII
var replacements = map[rune]string{
	'×': "x",
	'₹': "Rs",
	'–': "-",
	'—': "-",
}

// Document builds an ESC/POS byte stream for thermal printers.
// Text is folded to ASCII since most printers run a single-byte code page.
type Document struct {
	buf   bytes.Buffer
	width int // print width in characters (32 for 58mm, 48 for 80mm)
}

// NewDocument creates a new ESC/POS document with the given character width.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Width is the line width in characters
func (d *Document) Width() int {
	return d.width
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// LineFeed sends a line feed.
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

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
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

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(Fold(s))
	d.buf.WriteByte(LF)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Wrap writes s over as many lines as it needs, breaking on spaces where possible.
func (d *Document) Wrap(s string) *Document {
	for _, line := range wrap(Fold(s), d.width) {
		d.buf.WriteString(line)
		d.buf.WriteByte(LF)
	}
	return d
}

// Separator prints a full-width separator line.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
func (d *Document) KeyValue(key, value string) *Document {
	d.padded(Fold(key), Fold(value))
	return d
}

// ItemLine prints "2x Repair Kit" with the line total right-aligned.
// Names too long for the line are wrapped above the total.
func (d *Document) ItemLine(qty int, name, total string) *Document {
	prefix := Fold(fmt.Sprintf("%dx %s", qty, name))
	total = Fold(total)

	if len(prefix)+1+len(total) > d.width {
		lines := wrap(prefix, d.width-len(total)-1)
		for _, l := range lines[:len(lines)-1] {
			d.buf.WriteString(l)
			d.buf.WriteByte(LF)
		}
		prefix = lines[len(lines)-1]
	}
	d.padded(prefix, total)
	return d
}

// Cut sends the paper cut command (full cut).
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset clears the buffer and reinitializes the document.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.Init()
	return d
}

func (d *Document) padded(left, right string) {
	spaces := d.width - len(left) - len(right)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(left)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(right)
	d.buf.WriteByte(LF)
}

// Fold replaces non-ASCII runes with printable ASCII; unknown runes become '?'
func Fold(s string) string {
	if isASCII(s) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		case replacements[r] != "":
			b.WriteString(replacements[r])
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// wrap splits an ASCII string into lines of at most width bytes
func wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for len(s) > width {
		cut := strings.LastIndexByte(s[:width+1], ' ')
		if cut <= 0 {
			cut = width
		}
		lines = append(lines, strings.TrimRight(s[:cut], " "))
		s = strings.TrimLeft(s[cut:], " ")
	}
	return append(lines, s)
}

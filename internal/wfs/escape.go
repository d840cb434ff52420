package wfs

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// EscapeXML makes s safe for XML text and attribute values. The five markup
// characters become entities and every non-ASCII rune a numeric character
// reference, so the output is plain ASCII whatever encoding the client
// assumes. Runes XML 1.0 cannot carry at all are dropped.
func EscapeXML(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i, w := 0, 0; i < len(s); i += w {
		r, width := utf8.DecodeRuneInString(s[i:])
		w = width

		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '"':
			b.WriteString("&quot;")
		case r == '\'':
			b.WriteString("&apos;")
		case !isXMLChar(r) || (r == utf8.RuneError && width == 1):
			// not representable
		case r > unicode.MaxASCII:
			b.WriteString("&#")
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteByte(';')
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// isXMLChar reports whether r is in the XML 1.0 Char production
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ElementName derives an ASCII XML element name from an attribute name:
// diacritics are folded ("Rocío" -> "Rocio"), whitespace becomes '_' and
// anything outside [A-Za-z0-9_.-] is dropped.
func ElementName(name string) string {
	folded, _, err := transform.String(foldDiacritics, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	for _, r := range strings.TrimSpace(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == '-' || r == '.':
			if b.Len() > 0 {
				b.WriteRune(r)
			}
		case unicode.IsSpace(r):
			b.WriteByte('_')
		}
	}

	out := b.String()
	if out == "" {
		return "attribute"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

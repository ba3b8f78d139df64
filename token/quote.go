package token

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Quote renders s as a JSON string literal. With ascii set, every rune
// outside the printable ASCII range is escaped as \uXXXX (surrogate pairs
// beyond the BMP).
func Quote(s string, ascii bool) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
			continue
		case '\\':
			b.WriteString(`\\`)
			continue
		case '\b':
			b.WriteString(`\b`)
			continue
		case '\f':
			b.WriteString(`\f`)
			continue
		case '\n':
			b.WriteString(`\n`)
			continue
		case '\r':
			b.WriteString(`\r`)
			continue
		case '\t':
			b.WriteString(`\t`)
			continue
		}
		switch {
		case r < 0x20:
			writeHex(&b, uint16(r))
		case r < utf8.RuneSelf || !ascii:
			b.WriteRune(r)
		case r <= 0xffff:
			writeHex(&b, uint16(r))
		default:
			hi, lo := utf16.EncodeRune(r)
			writeHex(&b, uint16(hi))
			writeHex(&b, uint16(lo))
		}
	}
	b.WriteByte('"')
	return b.String()
}

func writeHex(b *strings.Builder, v uint16) {
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[v>>12&0xf])
	b.WriteByte(hexDigits[v>>8&0xf])
	b.WriteByte(hexDigits[v>>4&0xf])
	b.WriteByte(hexDigits[v&0xf])
}

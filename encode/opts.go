package encode

type EncodeOption func(*EncState)

// WithIndent sets the number of spaces per nesting level.
func WithIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// Wire produces compact single-line output.
func Wire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

// SortKeys writes object fields in sorted key order instead of insertion
// order.
func SortKeys(v bool) EncodeOption {
	return func(es *EncState) { es.sortKeys = v }
}

// ASCII escapes all non-ASCII runes in strings and keys.
func ASCII(v bool) EncodeOption {
	return func(es *EncState) { es.ascii = v }
}

// AllowInfinity permits the Infinity, -Infinity and NaN tokens for
// non-finite floats instead of failing.
func AllowInfinity(v bool) EncodeOption {
	return func(es *EncState) { es.infinity = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

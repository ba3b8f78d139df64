package parse

import (
	"github.com/nineteendo/json0/ir"
	"github.com/nineteendo/json0/token"
)

type parseOpts struct {
	filename  string
	decimal   bool
	infinity  bool
	positions map[*ir.Node]*token.Pos
}

type ParseOption func(*parseOpts)

// ParseFilename sets the filename reported in syntax errors.
func ParseFilename(name string) ParseOption {
	return func(o *parseOpts) { o.filename = name }
}

// ParseDecimal decodes non-integer numbers as arbitrary-precision decimals
// instead of float64.
func ParseDecimal(v bool) ParseOption {
	return func(o *parseOpts) { o.decimal = v }
}

// ParseInfinity permits .inf/.nan style non-finite numbers.
func ParseInfinity(v bool) ParseOption {
	return func(o *parseOpts) { o.infinity = v }
}

// ParsePositions records the source position of every decoded node in m.
func ParsePositions(m map[*ir.Node]*token.Pos) ParseOption {
	return func(o *parseOpts) { o.positions = m }
}

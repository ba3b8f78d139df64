package query

import (
	"github.com/nineteendo/json0/ir"
)

// Engine holds query-language configuration. The zero value matches the
// defaults: no Infinity literals, float64 number semantics, optional
// marker disabled.
type Engine struct {
	infinity       bool
	decimal        bool
	optionalMarker bool
}

type Option func(*Engine)

// WithInfinity permits the Infinity and -Infinity literals in filter
// comparisons and query values.
func WithInfinity(v bool) Option {
	return func(e *Engine) { e.infinity = v }
}

// WithDecimal switches number literals to arbitrary-precision decimal
// semantics instead of float64.
func WithDecimal(v bool) Option {
	return func(e *Engine) { e.decimal = v }
}

// WithOptionalMarker permits the `?` marker after entry symbols, turning
// missing keys into empty results instead of errors.
func WithOptionalMarker(v bool) Option {
	return func(e *Engine) { e.optionalMarker = v }
}

func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var std = New()

// SelectOpt configures a single Select call.
type SelectOpt func(*selectMode)

// AllowSlice permits slice keys in the final node list.
func AllowSlice(v bool) SelectOpt {
	return func(m *selectMode) { m.allowSlice = v }
}

// Relative makes the query start at `@` instead of `$`.
func Relative(v bool) SelectOpt {
	return func(m *selectMode) { m.relative = v }
}

// SingleResult restricts the query to steps that address exactly one node
// per input node: no filters, no optional marker, and slices only as the
// final key when AllowSlice is also set.
func SingleResult(v bool) SelectOpt {
	return func(m *selectMode) { m.single = v }
}

// Select resolves a whole query string against nodes and returns the
// addressed nodes. Trailing text after the query is a syntax error.
func (e *Engine) Select(nodes []Node, q string, opts ...SelectOpt) ([]Node, error) {
	var m selectMode
	for _, opt := range opts {
		opt(&m)
	}
	res, end, err := e.runSelect(nodes, q, 0, m)
	if err != nil {
		return nil, err
	}
	if end < len(q) {
		return nil, errmsg("Expecting end of file", q, end, 0)
	}
	return res, nil
}

// Filter evaluates a whole predicate string against nodes and returns the
// candidates it keeps.
func (e *Engine) Filter(nodes []Node, q string) ([]Node, error) {
	res, end, err := e.runFilter(nodes, q, 0)
	if err != nil {
		return nil, err
	}
	if end < len(q) {
		return nil, errmsg("Expecting end of file", q, end, 0)
	}
	return res, nil
}

// Value parses a whole string as a single query literal.
func (e *Engine) Value(s string) (*ir.Node, error) {
	v, end, err := e.scanValue(s, 0)
	if err != nil {
		return nil, err
	}
	if end < len(s) {
		return nil, errmsg("Expecting end of file", s, end, 0)
	}
	return v, nil
}

// Select resolves q with the default engine configuration.
func Select(nodes []Node, q string, opts ...SelectOpt) ([]Node, error) {
	return std.Select(nodes, q, opts...)
}

// Filter evaluates q with the default engine configuration.
func Filter(nodes []Node, q string) ([]Node, error) {
	return std.Filter(nodes, q)
}

// Value parses s with the default engine configuration.
func Value(s string) (*ir.Node, error) {
	return std.Value(s)
}

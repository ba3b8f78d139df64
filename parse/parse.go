package parse

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/shopspring/decimal"

	"github.com/nineteendo/json0/debug"
	"github.com/nineteendo/json0/ir"
	"github.com/nineteendo/json0/token"
)

var ErrParse = errors.New("parse error")

// Parse decodes one JSON or YAML document into an IR tree. Object fields
// keep their document order.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	o := &parseOpts{filename: "<string>"}
	for _, opt := range opts {
		opt(o)
	}
	if debug.Parse() {
		debug.Logf("parse %d byte(s) from %s\n", len(d), o.filename)
	}
	f, err := parser.ParseBytes(d, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, yaml.FormatError(err, false, false))
	}
	if len(f.Docs) == 0 || f.Docs[0].Body == nil {
		return nil, token.NewSyntaxError("Expecting value", o.filename, string(d), 0, 0)
	}
	if len(f.Docs) > 1 {
		off := tokenOffset(f.Docs[1])
		return nil, token.NewSyntaxError("Expecting end of file", o.filename, string(d), off, 0)
	}
	dec := &decoder{opts: o}
	if o.positions != nil {
		dec.pd = token.NewPosDoc(string(d))
	}
	return dec.node(f.Docs[0].Body)
}

type decoder struct {
	opts *parseOpts
	pd   *token.PosDoc
}

// track records the source position of a decoded node when requested.
func (dec *decoder) track(res *ir.Node, n ast.Node) *ir.Node {
	if dec.pd != nil {
		dec.opts.positions[res] = dec.pd.Pos(tokenOffset(n))
	}
	return res
}

func tokenOffset(n ast.Node) int {
	tk := n.GetToken()
	if tk == nil {
		return 0
	}
	if tk.Position.Offset > 0 {
		return tk.Position.Offset - 1
	}
	return 0
}

func (dec *decoder) node(n ast.Node) (*ir.Node, error) {
	switch n := n.(type) {
	case *ast.NullNode:
		return dec.track(ir.Null(), n), nil
	case *ast.BoolNode:
		return dec.track(ir.FromBool(n.Value), n), nil
	case *ast.IntegerNode:
		return dec.integer(n)
	case *ast.FloatNode:
		return dec.float(n)
	case *ast.InfinityNode:
		if !dec.opts.infinity {
			return nil, fmt.Errorf("%w: Infinity is not allowed", ErrParse)
		}
		return dec.track(ir.FromFloat(n.Value), n), nil
	case *ast.NanNode:
		if !dec.opts.infinity {
			return nil, fmt.Errorf("%w: NaN is not allowed", ErrParse)
		}
		return dec.track(ir.FromFloat(math.NaN()), n), nil
	case *ast.StringNode:
		return dec.track(ir.FromString(n.Value), n), nil
	case *ast.LiteralNode:
		return dec.track(ir.FromString(n.Value.Value), n), nil
	case *ast.MappingNode:
		return dec.mapping(n, n.Values)
	case *ast.MappingValueNode:
		return dec.mapping(n, []*ast.MappingValueNode{n})
	case *ast.SequenceNode:
		return dec.sequence(n)
	case *ast.TagNode:
		return dec.node(n.Value)
	case *ast.AnchorNode:
		return dec.node(n.Value)
	default:
		return nil, fmt.Errorf("%w: unsupported %s node", ErrParse, n.Type())
	}
}

func (dec *decoder) mapping(n ast.Node, values []*ast.MappingValueNode) (*ir.Node, error) {
	res := &ir.Node{Type: ir.ObjectType}
	for _, kv := range values {
		key, err := dec.key(kv.Key)
		if err != nil {
			return nil, err
		}
		val, err := dec.node(kv.Value)
		if err != nil {
			return nil, err
		}
		res.Fields = append(res.Fields, key)
		res.Values = append(res.Values, val)
	}
	return dec.track(res, n), nil
}

func (dec *decoder) key(n ast.MapKeyNode) (*ir.Node, error) {
	switch n := n.(type) {
	case *ast.StringNode:
		return dec.track(ir.FromString(n.Value), n), nil
	case *ast.MergeKeyNode:
		return nil, fmt.Errorf("%w: merge keys are not supported", ErrParse)
	default:
		tk := n.GetToken()
		if tk == nil {
			return nil, fmt.Errorf("%w: unsupported key node", ErrParse)
		}
		return dec.track(ir.FromString(tk.Value), n), nil
	}
}

func (dec *decoder) sequence(n *ast.SequenceNode) (*ir.Node, error) {
	res := &ir.Node{Type: ir.ArrayType}
	for _, v := range n.Values {
		val, err := dec.node(v)
		if err != nil {
			return nil, err
		}
		res.Values = append(res.Values, val)
	}
	return dec.track(res, n), nil
}

func (dec *decoder) integer(n *ast.IntegerNode) (*ir.Node, error) {
	res := &ir.Node{Type: ir.NumberType}
	if tk := n.GetToken(); tk != nil {
		res.Number = tk.Value
	}
	switch v := n.Value.(type) {
	case int64:
		res.Int64 = &v
	case uint64:
		if v <= math.MaxInt64 {
			i := int64(v)
			res.Int64 = &i
		} else {
			d := decimal.NewFromUint64(v)
			res.Dec = &d
		}
	case int:
		i := int64(v)
		res.Int64 = &i
	case uint:
		if uint64(v) <= math.MaxInt64 {
			i := int64(v)
			res.Int64 = &i
		} else {
			d := decimal.NewFromUint64(uint64(v))
			res.Dec = &d
		}
	default:
		return nil, fmt.Errorf("%w: unsupported integer representation %T", ErrParse, n.Value)
	}
	return dec.track(res, n), nil
}

func (dec *decoder) float(n *ast.FloatNode) (*ir.Node, error) {
	res := &ir.Node{Type: ir.NumberType}
	tk := n.GetToken()
	if tk != nil {
		res.Number = tk.Value
	}
	if dec.opts.decimal && tk != nil {
		if d, err := decimal.NewFromString(tk.Value); err == nil {
			res.Dec = &d
			return dec.track(res, n), nil
		}
	}
	if dec.opts.decimal {
		d := decimal.NewFromFloat(n.Value)
		res.Dec = &d
		return dec.track(res, n), nil
	}
	f := n.Value
	res.Float64 = &f
	return dec.track(res, n), nil
}

package patch

import (
	"fmt"

	"github.com/nineteendo/json0/ir"
	"github.com/nineteendo/json0/parse"
)

// Operation is one patch step. Op selects the action; the remaining fields
// are per-op payload. Path defaults to "$" except for del and insert, which
// always name their target explicitly.
type Operation struct {
	Op      string
	Path    string
	Value   *ir.Node
	Expr    string
	From    string
	To      string
	Mode    string
	Reverse bool
	Msg     string
}

var opNames = map[string]bool{
	"append":  true,
	"assert":  true,
	"clear":   true,
	"copy":    true,
	"del":     true,
	"extend":  true,
	"insert":  true,
	"move":    true,
	"reverse": true,
	"set":     true,
	"sort":    true,
	"update":  true,
}

// DecodeOps reads a single operation object or an array of them.
func DecodeOps(n *ir.Node) ([]Operation, error) {
	switch n.Type {
	case ir.ObjectType:
		op, err := decodeOp(n)
		if err != nil {
			return nil, err
		}
		return []Operation{op}, nil
	case ir.ArrayType:
		res := make([]Operation, 0, len(n.Values))
		for _, v := range n.Values {
			op, err := decodeOp(v)
			if err != nil {
				return nil, err
			}
			res = append(res, op)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: patch must be an object or array, not %s", ir.ErrValue, n.Type)
	}
}

// Decode parses JSON or YAML text into operations.
func Decode(d []byte, opts ...parse.ParseOption) ([]Operation, error) {
	n, err := parse.Parse(d, opts...)
	if err != nil {
		return nil, err
	}
	return DecodeOps(n)
}

func decodeOp(n *ir.Node) (Operation, error) {
	var res Operation
	if n.Type != ir.ObjectType {
		return res, fmt.Errorf("%w: operation must be an object, not %s", ir.ErrValue, n.Type)
	}
	for i, f := range n.Fields {
		v := n.Values[i]
		var err error
		switch f.String {
		case "op":
			res.Op, err = stringField(f.String, v)
		case "path":
			res.Path, err = stringField(f.String, v)
		case "value":
			res.Value = v
		case "expr":
			res.Expr, err = stringField(f.String, v)
		case "from":
			res.From, err = stringField(f.String, v)
		case "to":
			res.To, err = stringField(f.String, v)
		case "mode":
			res.Mode, err = stringField(f.String, v)
		case "msg":
			res.Msg, err = stringField(f.String, v)
		case "reverse":
			if v.Type != ir.BoolType {
				err = fmt.Errorf("%w: reverse must be a bool, not %s", ir.ErrValue, v.Type)
			} else {
				res.Reverse = v.Bool
			}
		}
		if err != nil {
			return res, err
		}
	}
	if res.Op == "" {
		return res, fmt.Errorf("%w: operation without an op", ir.ErrValue)
	}
	if !opNames[res.Op] {
		return res, fmt.Errorf("%w: unknown operation %q", ir.ErrValue, res.Op)
	}
	return res, nil
}

func stringField(name string, v *ir.Node) (string, error) {
	if v.Type != ir.StringType {
		return "", fmt.Errorf("%w: %s must be a string, not %s", ir.ErrValue, name, v.Type)
	}
	return v.String, nil
}

package patch

import (
	"fmt"
	"sort"

	"github.com/nineteendo/json0/debug"
	"github.com/nineteendo/json0/ir"
	"github.com/nineteendo/json0/query"
)

// Applier runs patch operations with a fixed query-language configuration.
type Applier struct {
	engine *query.Engine
}

func NewApplier(opts ...query.Option) *Applier {
	return &Applier{engine: query.New(opts...)}
}

var std = NewApplier()

// Apply runs operations in order against doc with the default configuration
// and returns the resulting root value, which may differ from doc when an
// operation replaces the root.
func Apply(doc *ir.Node, ops ...Operation) (*ir.Node, error) {
	return std.Apply(doc, ops...)
}

func (a *Applier) Apply(doc *ir.Node, ops ...Operation) (*ir.Node, error) {
	rootNode := query.Root(doc)
	root := rootNode.Target
	for i := range ops {
		if debug.Patch() {
			debug.Logf("patch op %s path %q\n", ops[i].Op, ops[i].Path)
		}
		if err := a.applyOp(root, rootNode, &ops[i]); err != nil {
			return nil, fmt.Errorf("op %d (%s): %w", i, ops[i].Op, err)
		}
	}
	return root.Values[0], nil
}

func (a *Applier) applyOp(root *ir.Node, rootNode query.Node, op *Operation) error {
	path := op.Path
	if path == "" {
		path = "$"
	}
	resolve := func(opts ...query.SelectOpt) ([]query.Node, error) {
		return a.engine.Select([]query.Node{rootNode}, path, opts...)
	}
	switch op.Op {
	case "append":
		if op.Value == nil {
			return fmt.Errorf("%w: append without a value", ir.ErrValue)
		}
		ns, err := resolve()
		if err != nil {
			return err
		}
		for _, n := range ns {
			v, err := requireArray(n, "append to")
			if err != nil {
				return err
			}
			v.Values = append(v.Values, op.Value.Clone())
		}
	case "assert":
		if op.Expr == "" {
			return fmt.Errorf("%w: assert without an expr", ir.ErrValue)
		}
		ns, err := resolve()
		if err != nil {
			return err
		}
		kept, err := a.engine.Filter(ns, op.Expr)
		if err != nil {
			return err
		}
		if len(kept) != len(ns) {
			msg := op.Msg
			if msg == "" {
				msg = op.Expr
			}
			return fmt.Errorf("%w: assertion failed: %s", ir.ErrValue, msg)
		}
	case "clear":
		ns, err := resolve()
		if err != nil {
			return err
		}
		for _, n := range ns {
			v, err := n.Value()
			if err != nil {
				return err
			}
			if v.Type.IsLeaf() {
				return fmt.Errorf("%w: target must be an object or array, not %s", ir.ErrType, v.Type)
			}
			v.Clear()
		}
	case "copy":
		cur, err := resolve()
		if err != nil {
			return err
		}
		src, err := a.fromNodes(cur, op)
		if err != nil {
			return err
		}
		values := make([]*ir.Node, len(src))
		for i, sn := range src {
			v, err := materialize(sn)
			if err != nil {
				return err
			}
			values[i] = v.Clone()
		}
		return a.pasteValues(cur, op, values)
	case "del":
		if op.Path == "" {
			return fmt.Errorf("%w: del without a path", ir.ErrValue)
		}
		ns, err := resolve(query.AllowSlice(true))
		if err != nil {
			return err
		}
		// Reverse to preserve indices of the remaining matches.
		for i := len(ns) - 1; i >= 0; i-- {
			if ns[i].Target == root {
				return fmt.Errorf("%w: Can not delete the root", ir.ErrValue)
			}
			if err := ns[i].Delete(); err != nil {
				return err
			}
		}
	case "extend":
		ns, err := resolve()
		if err != nil {
			return err
		}
		if op.Value == nil || op.Value.Type != ir.ArrayType {
			return fmt.Errorf("%w: extend value must be an array", ir.ErrValue)
		}
		for _, n := range ns {
			v, err := requireArray(n, "extend")
			if err != nil {
				return err
			}
			for _, el := range op.Value.Values {
				v.Values = append(v.Values, el.Clone())
			}
		}
	case "insert":
		if op.Path == "" {
			return fmt.Errorf("%w: insert without a path", ir.ErrValue)
		}
		if op.Value == nil {
			return fmt.Errorf("%w: insert without a value", ir.ErrValue)
		}
		ns, err := resolve()
		if err != nil {
			return err
		}
		// Reverse to preserve indices of the remaining matches.
		for i := len(ns) - 1; i >= 0; i-- {
			if ns[i].Target == root {
				return fmt.Errorf("%w: Can not insert at the root", ir.ErrValue)
			}
			if err := ns[i].Insert(op.Value.Clone()); err != nil {
				return err
			}
		}
	case "move":
		cur, err := resolve()
		if err != nil {
			return err
		}
		src, err := a.fromNodes(cur, op)
		if err != nil {
			return err
		}
		values := make([]*ir.Node, len(src))
		// Reverse to preserve indices of the remaining matches.
		for i := len(src) - 1; i >= 0; i-- {
			if src[i].Target == cur[i].Target {
				return fmt.Errorf("%w: can not move a value into itself", ir.ErrValue)
			}
			v, err := materialize(src[i])
			if err != nil {
				return err
			}
			values[i] = v
			if err := src[i].Delete(); err != nil {
				return err
			}
		}
		return a.pasteValues(cur, op, values)
	case "reverse":
		ns, err := resolve()
		if err != nil {
			return err
		}
		for _, n := range ns {
			v, err := requireArray(n, "reverse")
			if err != nil {
				return err
			}
			v.Reverse()
		}
	case "set":
		if op.Value == nil {
			return fmt.Errorf("%w: set without a value", ir.ErrValue)
		}
		ns, err := resolve(query.AllowSlice(true))
		if err != nil {
			return err
		}
		for _, n := range ns {
			if err := n.Assign(op.Value.Clone()); err != nil {
				return err
			}
		}
	case "sort":
		ns, err := resolve(query.AllowSlice(true))
		if err != nil {
			return err
		}
		for _, n := range ns {
			if err := sortNode(n, op.Reverse); err != nil {
				return err
			}
		}
	case "update":
		ns, err := resolve()
		if err != nil {
			return err
		}
		if op.Value == nil || op.Value.Type != ir.ObjectType {
			return fmt.Errorf("%w: update value must be an object", ir.ErrValue)
		}
		for _, n := range ns {
			v, err := n.Value()
			if err != nil {
				return err
			}
			if v.Type != ir.ObjectType {
				return fmt.Errorf("%w: can only update an object, not %s", ir.ErrType, v.Type)
			}
			for i, f := range op.Value.Fields {
				v.SetField(f.String, op.Value.Values[i].Clone())
			}
		}
	default:
		return fmt.Errorf("%w: unknown operation %q", ir.ErrValue, op.Op)
	}
	return nil
}

// fromNodes resolves an operation's from query relative to each resolved
// path node, one result per node. A slice key counts as one node.
func (a *Applier) fromNodes(cur []query.Node, op *Operation) ([]query.Node, error) {
	src := op.From
	if src == "" {
		src = "@"
	}
	return a.engine.Select(cur, src, query.Relative(true), query.SingleResult(true), query.AllowSlice(true))
}

// materialize dereferences a source node, wrapping the selected elements
// of a slice key in a fresh array.
func materialize(n query.Node) (*ir.Node, error) {
	if n.Key.Slice != nil {
		vals, err := n.Values()
		if err != nil {
			return nil, err
		}
		return ir.FromSlice(vals), nil
	}
	return n.Value()
}

func requireArray(n query.Node, action string) (*ir.Node, error) {
	v, err := n.Value()
	if err != nil {
		return nil, err
	}
	if v.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: can only %s an array, not %s", ir.ErrType, action, v.Type)
	}
	return v, nil
}

// sortNode orders the addressed array, or the addressed sub-sequence when
// the key is a slice, with the ir comparison.
func sortNode(n query.Node, reverse bool) error {
	if n.Key.Slice != nil {
		vals, err := n.Values()
		if err != nil {
			return err
		}
		sorted := make([]*ir.Node, len(vals))
		copy(sorted, vals)
		if err := sortNodes(sorted, reverse); err != nil {
			return err
		}
		return n.Assign(ir.FromSlice(sorted))
	}
	v, err := n.Value()
	if err != nil {
		return err
	}
	if v.Type != ir.ArrayType {
		return fmt.Errorf("%w: can only sort an array, not %s", ir.ErrType, v.Type)
	}
	return sortNodes(v.Values, reverse)
}

func sortNodes(vals []*ir.Node, reverse bool) error {
	var sortErr error
	sort.SliceStable(vals, func(i, j int) bool {
		c, err := ir.Compare(vals[i], vals[j])
		if err != nil && sortErr == nil {
			sortErr = err
		}
		if reverse {
			return c > 0
		}
		return c < 0
	})
	return sortErr
}

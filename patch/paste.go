package patch

import (
	"fmt"

	"github.com/nineteendo/json0/ir"
	"github.com/nineteendo/json0/query"
)

// pasteValues places one value per path node at the operation's to query,
// resolved relative to each node. values pairs index for index with cur.
func (a *Applier) pasteValues(cur []query.Node, op *Operation, values []*ir.Node) error {
	to := op.To
	if to == "" {
		to = "@"
	}
	switch op.Mode {
	case "append":
		dst, err := a.engine.Select(cur, to, query.Relative(true), query.SingleResult(true))
		if err != nil {
			return err
		}
		for i, n := range dst {
			v, err := requireArray(n, "append to")
			if err != nil {
				return err
			}
			v.Values = append(v.Values, values[i])
		}
	case "extend":
		dst, err := a.engine.Select(cur, to, query.Relative(true), query.SingleResult(true))
		if err != nil {
			return err
		}
		for i, n := range dst {
			v, err := requireArray(n, "extend")
			if err != nil {
				return err
			}
			if values[i].Type != ir.ArrayType {
				return fmt.Errorf("%w: can only extend with an array, not %s", ir.ErrType, values[i].Type)
			}
			v.Values = append(v.Values, values[i].Values...)
		}
	case "insert":
		if op.To == "" {
			return fmt.Errorf("%w: insert mode without a to", ir.ErrValue)
		}
		dst, err := a.engine.Select(cur, to, query.Relative(true), query.SingleResult(true))
		if err != nil {
			return err
		}
		// Reverse to preserve indices of the remaining matches.
		for i := len(dst) - 1; i >= 0; i-- {
			if dst[i].Target == cur[i].Target {
				return fmt.Errorf("%w: can not insert a value into itself", ir.ErrValue)
			}
			if err := dst[i].Insert(values[i]); err != nil {
				return err
			}
		}
	case "set":
		dst, err := a.engine.Select(cur, to, query.Relative(true), query.SingleResult(true), query.AllowSlice(true))
		if err != nil {
			return err
		}
		for i, n := range dst {
			if err := n.Assign(values[i]); err != nil {
				return err
			}
		}
	case "update":
		dst, err := a.engine.Select(cur, to, query.Relative(true), query.SingleResult(true))
		if err != nil {
			return err
		}
		for i, n := range dst {
			v, err := n.Value()
			if err != nil {
				return err
			}
			if v.Type != ir.ObjectType {
				return fmt.Errorf("%w: can only update an object, not %s", ir.ErrType, v.Type)
			}
			if values[i].Type != ir.ObjectType {
				return fmt.Errorf("%w: can only update with an object, not %s", ir.ErrType, values[i].Type)
			}
			for j, f := range values[i].Fields {
				v.SetField(f.String, values[i].Values[j])
			}
		}
	default:
		return fmt.Errorf("%w: unknown paste mode %q", ir.ErrValue, op.Mode)
	}
	return nil
}

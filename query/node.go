package query

import (
	"fmt"
	"slices"

	"github.com/nineteendo/json0/ir"
)

// Node is an addressable location in a document: a container plus one of its
// keys. It aliases into the document, so writing through it mutates the
// document in place. Nodes are only valid until the next mutation of the
// same document.
type Node struct {
	Target *ir.Node
	Key    Key
}

// Root wraps a document in a synthetic single-element array so the whole
// document is addressable at index 0. The wrapper itself may never be the
// target of a delete or insert.
func Root(doc *ir.Node) Node {
	return Node{Target: ir.FromSlice([]*ir.Node{doc}), Key: IndexKey(0)}
}

// Exists reports whether the node's key is present in its container.
// Objects test field membership; arrays accept -len <= i < len.
func (n Node) Exists() bool {
	switch n.Target.Type {
	case ir.ObjectType:
		return n.Key.Name != nil && n.Target.FieldIndex(*n.Key.Name) >= 0
	case ir.ArrayType:
		if n.Key.Index == nil {
			return false
		}
		l := int64(n.Target.Len())
		return -l <= *n.Key.Index && *n.Key.Index < l
	}
	return false
}

// Value dereferences the node. Slice keys have no single value; use Values.
func (n Node) Value() (*ir.Node, error) {
	switch {
	case n.Key.Name != nil:
		if err := checkKey(n.Target, n.Key, false); err != nil {
			return nil, err
		}
		v := ir.Get(n.Target, *n.Key.Name)
		if v == nil {
			return nil, fmt.Errorf("%w: no field %q in object", ir.ErrValue, *n.Key.Name)
		}
		return v, nil
	case n.Key.Index != nil:
		if err := checkKey(n.Target, n.Key, false); err != nil {
			return nil, err
		}
		i, err := n.normIndex()
		if err != nil {
			return nil, err
		}
		return n.Target.Values[i], nil
	}
	return nil, fmt.Errorf("%w: a slice has no single value", ir.ErrValue)
}

// Values dereferences the node, yielding the selected elements for a slice
// key and a single-element list otherwise.
func (n Node) Values() ([]*ir.Node, error) {
	if n.Key.Slice == nil {
		v, err := n.Value()
		if err != nil {
			return nil, err
		}
		return []*ir.Node{v}, nil
	}
	if err := checkKey(n.Target, n.Key, true); err != nil {
		return nil, err
	}
	idx, err := n.Key.Slice.elems(int64(n.Target.Len()))
	if err != nil {
		return nil, err
	}
	res := make([]*ir.Node, len(idx))
	for i, j := range idx {
		res[i] = n.Target.Values[j]
	}
	return res, nil
}

// Assign replaces the addressed value. A slice key replaces the selected
// range: a unit step splices the assigned array in, an extended step
// requires matching lengths.
func (n Node) Assign(v *ir.Node) error {
	switch {
	case n.Key.Name != nil:
		if err := checkKey(n.Target, n.Key, false); err != nil {
			return err
		}
		n.Target.SetField(*n.Key.Name, v)
		return nil
	case n.Key.Index != nil:
		if err := checkKey(n.Target, n.Key, false); err != nil {
			return err
		}
		i, err := n.normIndex()
		if err != nil {
			return err
		}
		n.Target.Values[i] = v
		return nil
	}
	if err := checkKey(n.Target, n.Key, true); err != nil {
		return err
	}
	if v.Type != ir.ArrayType {
		return fmt.Errorf("%w: can only assign an array to a slice, not %s", ir.ErrType, v.Type)
	}
	s := n.Key.Slice
	if s.Step == nil || *s.Step == 1 {
		start, stop, _, err := s.indices(int64(n.Target.Len()))
		if err != nil {
			return err
		}
		if stop < start {
			stop = start
		}
		res := make([]*ir.Node, 0, int64(n.Target.Len())-(stop-start)+int64(v.Len()))
		res = append(res, n.Target.Values[:start]...)
		res = append(res, v.Values...)
		res = append(res, n.Target.Values[stop:]...)
		n.Target.Values = res
		return nil
	}
	idx, err := s.elems(int64(n.Target.Len()))
	if err != nil {
		return err
	}
	if len(idx) != v.Len() {
		return fmt.Errorf(
			"%w: attempt to assign array of size %d to extended slice of size %d",
			ir.ErrValue, v.Len(), len(idx),
		)
	}
	for i, j := range idx {
		n.Target.Values[j] = v.Values[i]
	}
	return nil
}

// Delete removes the addressed entry or, for a slice key, entries.
func (n Node) Delete() error {
	switch {
	case n.Key.Name != nil:
		if err := checkKey(n.Target, n.Key, false); err != nil {
			return err
		}
		if !n.Target.DeleteField(*n.Key.Name) {
			return fmt.Errorf("%w: no field %q in object", ir.ErrValue, *n.Key.Name)
		}
		return nil
	case n.Key.Index != nil:
		if err := checkKey(n.Target, n.Key, false); err != nil {
			return err
		}
		i, err := n.normIndex()
		if err != nil {
			return err
		}
		n.Target.RemoveValue(i)
		return nil
	}
	if err := checkKey(n.Target, n.Key, true); err != nil {
		return err
	}
	idx, err := n.Key.Slice.elems(int64(n.Target.Len()))
	if err != nil {
		return err
	}
	// highest index first so removals don't shift pending ones
	slices.Sort(idx)
	for i := len(idx) - 1; i >= 0; i-- {
		n.Target.RemoveValue(idx[i])
	}
	return nil
}

// Insert inserts v at the node's index. Out-of-range indices clamp to the
// nearest end instead of erroring. Only integer keys on arrays insert.
func (n Node) Insert(v *ir.Node) error {
	if n.Target.Type != ir.ArrayType || n.Key.Index == nil {
		if err := checkKey(n.Target, n.Key, false); err != nil {
			return err
		}
		return fmt.Errorf("%w: can only insert into an array, not %s", ir.ErrType, n.Target.Type)
	}
	l := int64(n.Target.Len())
	i := *n.Key.Index
	if i < 0 {
		i += l
		if i < 0 {
			i = 0
		}
	} else if i > l {
		i = l
	}
	n.Target.InsertValue(int(i), v)
	return nil
}

// normIndex resolves a possibly negative index against the array length.
func (n Node) normIndex() (int, error) {
	l := int64(n.Target.Len())
	i := *n.Key.Index
	if i < 0 {
		i += l
	}
	if i < 0 || i >= l {
		return 0, fmt.Errorf("%w: index %d out of range", ir.ErrValue, *n.Key.Index)
	}
	return int(i), nil
}

// derefTargets dereferences a node into its container values, one for a
// plain key, several for a slice. Every result must itself be a container.
func derefTargets(n Node, single bool) ([]*ir.Node, error) {
	if err := checkKey(n.Target, n.Key, !single); err != nil {
		return nil, err
	}
	targets, err := n.Values()
	if err != nil {
		return nil, err
	}
	for _, t := range targets {
		if t.Type.IsLeaf() {
			return nil, fmt.Errorf("%w: target must be an object or array, not %s", ir.ErrType, t.Type)
		}
	}
	return targets, nil
}

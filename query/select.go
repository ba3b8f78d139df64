package query

import (
	"github.com/nineteendo/json0/debug"
	"github.com/nineteendo/json0/ir"
)

type selectMode struct {
	allowSlice bool
	relative   bool
	single     bool
}

// runSelect consumes query text step by step from end, expanding and
// narrowing the node list. It returns the nodes together with the cursor
// after the last consumed step; callers reject trailing text.
func (e *Engine) runSelect(nodes []Node, q string, end int, m selectMode) ([]Node, int, error) {
	if debug.Select() {
		debug.Logf("select %q at %d over %d node(s)\n", q, end, len(nodes))
	}
	if m.relative {
		if end >= len(q) || q[end] != '@' {
			return nil, 0, errmsg("Expecting a relative query", q, end, 0)
		}
	} else if end >= len(q) || q[end] != '$' {
		return nil, 0, errmsg("Expecting an absolute query", q, end, 0)
	}
	end++
steps:
	for {
		if end < len(q) && q[end] == '?' {
			if m.single || !e.optionalMarker {
				return nil, 0, errmsg("Optional marker is not allowed", q, end, end+1)
			}
			end++
			var kept []Node
			for _, n := range nodes {
				if n.Key.Slice != nil || n.Exists() {
					kept = append(kept, n)
				}
			}
			nodes = kept
		}
		if end >= len(q) {
			break
		}
		switch q[end] {
		case '.':
			end++
			name, nend, err := scanKey(q, end)
			if err != nil {
				return nil, 0, err
			}
			if name == "" {
				return nil, 0, errmsg("Expecting property", q, end, 0)
			}
			end = nend
			nodes, err = e.stepKey(nodes, NameKey(name), m)
			if err != nil {
				return nil, 0, err
			}
		case '[':
			end++
			var err error
			nodes, end, err = e.stepBracket(nodes, q, end, m)
			if err != nil {
				return nil, 0, err
			}
			if end >= len(q) || q[end] != ']' {
				return nil, 0, errmsg("Expecting a closing bracket", q, end, 0)
			}
			end++
		default:
			break steps
		}
	}
	for _, n := range nodes {
		if err := checkKey(n.Target, n.Key, m.allowSlice); err != nil {
			return nil, 0, err
		}
	}
	return nodes, end, nil
}

// stepKey dereferences every node and re-addresses the results at key.
func (e *Engine) stepKey(nodes []Node, key Key, m selectMode) ([]Node, error) {
	next := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		targets, err := derefTargets(n, m.single)
		if err != nil {
			return nil, err
		}
		for _, t := range targets {
			next = append(next, Node{Target: t, Key: key})
		}
	}
	return next, nil
}

// stepBracket handles one bracket group: an index, a slice, or a filter
// expression. The returned cursor sits on the closing bracket.
func (e *Engine) stepBracket(nodes []Node, q string, end int, m selectMode) ([]Node, int, error) {
	tok := matchIdx(q, end)
	afterTok := end
	if tok != nil {
		afterTok = tok.end
	}
	if afterTok < len(q) && q[afterTok] == ':' {
		if m.single && !m.allowSlice {
			return nil, 0, errmsg("Slice is not allowed", q, end, 0)
		}
		var sl Slice
		if tok != nil {
			v, err := tok.parse(q, "Start")
			if err != nil {
				return nil, 0, err
			}
			sl.Start = &v
		}
		end = afterTok + 1
		if tok2 := matchIdx(q, end); tok2 != nil {
			v, err := tok2.parse(q, "Stop")
			if err != nil {
				return nil, 0, err
			}
			sl.Stop = &v
			end = tok2.end
		}
		if end < len(q) && q[end] == ':' {
			end++
			if tok3 := matchIdx(q, end); tok3 != nil {
				v, err := tok3.parse(q, "Step")
				if err != nil {
					return nil, 0, err
				}
				sl.Step = &v
				end = tok3.end
			}
		}
		nodes, err := e.stepKey(nodes, SliceKey(sl), m)
		return nodes, end, err
	}
	if tok != nil {
		v, err := tok.parse(q, "Index")
		if err != nil {
			return nil, 0, err
		}
		nodes, err := e.stepKey(nodes, IndexKey(v), m)
		return nodes, tok.end, err
	}
	if m.single {
		return nil, 0, errmsg("Filter is not allowed", q, end, 0)
	}
	expanded, err := expandKeys(nodes)
	if err != nil {
		return nil, 0, err
	}
	return e.runFilter(expanded, q, end)
}

// expandKeys turns every node into one child node per key of its
// dereferenced container: object fields in insertion order, array indices
// in order.
func expandKeys(nodes []Node) ([]Node, error) {
	var expanded []Node
	for _, n := range nodes {
		targets, err := derefTargets(n, true)
		if err != nil {
			return nil, err
		}
		for _, t := range targets {
			switch t.Type {
			case ir.ObjectType:
				for _, f := range t.Fields {
					expanded = append(expanded, Node{Target: t, Key: NameKey(f.String)})
				}
			case ir.ArrayType:
				for i := range t.Values {
					expanded = append(expanded, Node{Target: t, Key: IndexKey(int64(i))})
				}
			}
		}
	}
	return expanded, nil
}

package query

import (
	"github.com/nineteendo/json0/debug"
	"github.com/nineteendo/json0/ir"
)

// runFilter evaluates a predicate over candidate nodes, one clause at a
// time, each clause narrowing the set left by the previous one. A clause is
// a relative key chain, optionally negated, optionally compared against a
// literal or a second relative chain. Surviving candidates keep their
// original order.
func (e *Engine) runFilter(nodes []Node, q string, end int) ([]Node, int, error) {
	if debug.Filter() {
		debug.Logf("filter %q at %d over %d node(s)\n", q, end, len(nodes))
	}
	for {
		negate := end < len(q) && q[end] == '!'
		if negate {
			end++
		}
		chain, nend, err := e.runSelect(nodes, q, end, selectMode{relative: true, single: true})
		if err != nil {
			return nil, 0, err
		}
		oldEnd := nend
		nend = skipSpaces(q, nend)
		op, opEnd := scanOperator(q, nend)
		switch {
		case op == OpNone:
			var kept []Node
			for i, c := range chain {
				if c.Exists() != negate {
					kept = append(kept, nodes[i])
				}
			}
			nodes = kept
			end = oldEnd
		case negate:
			return nil, 0, errmsg("Unexpected operator", q, nend, opEnd)
		default:
			end = skipSpaces(q, opEnd)
			var survivors, lhs []Node
			for i, c := range chain {
				if c.Exists() {
					survivors = append(survivors, nodes[i])
					lhs = append(lhs, c)
				}
			}
			nodes, end, err = e.filterCompare(survivors, lhs, op, q, end)
			if err != nil {
				return nil, 0, err
			}
		}
		oldEnd = end
		end = skipSpaces(q, end)
		if end+1 < len(q) && q[end] == '&' && q[end+1] == '&' {
			end = skipSpaces(q, end+2)
			continue
		}
		return nodes, oldEnd, nil
	}
}

// filterCompare applies one comparison clause. lhs[i] is the resolved key
// chain of nodes[i]; both slices pair index for index.
func (e *Engine) filterCompare(nodes, lhs []Node, op Operator, q string, end int) ([]Node, int, error) {
	var rhs []*ir.Node
	if end < len(q) && q[end] == '@' {
		chain, nend, err := e.runSelect(nodes, q, end, selectMode{relative: true, single: true})
		if err != nil {
			return nil, 0, err
		}
		end = nend
		var keptNodes, keptLHS []Node
		for i, c := range chain {
			if !c.Exists() {
				continue
			}
			v, err := c.Value()
			if err != nil {
				return nil, 0, err
			}
			keptNodes = append(keptNodes, nodes[i])
			keptLHS = append(keptLHS, lhs[i])
			rhs = append(rhs, v)
		}
		nodes, lhs = keptNodes, keptLHS
	} else {
		v, nend, err := e.scanValue(q, end)
		if err != nil {
			return nil, 0, err
		}
		end = nend
		rhs = make([]*ir.Node, len(nodes))
		for i := range rhs {
			rhs[i] = v
		}
	}
	var kept []Node
	for i := range nodes {
		lv, err := lhs[i].Value()
		if err != nil {
			return nil, 0, err
		}
		ok, err := op.eval(lv, rhs[i])
		if err != nil {
			return nil, 0, err
		}
		if ok {
			kept = append(kept, nodes[i])
		}
	}
	return kept, end, nil
}

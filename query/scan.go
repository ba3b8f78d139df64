package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nineteendo/json0/ir"
	"github.com/nineteendo/json0/token"
)

const queryFilename = "<query>"

func errmsg(msg, q string, start, end int) *token.SyntaxError {
	return token.NewSyntaxError(msg, queryFilename, q, start, end)
}

// stringEscapes are the characters a tilde may introduce inside a quoted
// string; keyEscapes the ones inside an unquoted key.
const (
	stringEscapes = "'~!&.<=>[]"
	keyEscapes    = "!&.<=>[]~"
	keyControls   = "!&.<=>[]~ "
)

// skipSpaces advances past a run of spaces.
func skipSpaces(q string, end int) int {
	for end < len(q) && q[end] == ' ' {
		end++
	}
	return end
}

// scanString reads a quoted string. end points just past the opening quote.
func scanString(q string, end int) (string, int, error) {
	var b strings.Builder
	strIdx := end - 1
	for {
		chunk := end
		for chunk < len(q) && q[chunk] != '\'' && q[chunk] != '~' {
			chunk++
		}
		b.WriteString(q[end:chunk])
		end = chunk
		if end >= len(q) {
			return "", 0, errmsg("Unterminated string", q, strIdx, end)
		}
		if q[end] == '\'' {
			return b.String(), end + 1, nil
		}
		// tilde escape
		end++
		if end >= len(q) {
			return "", 0, errmsg("Truncated escape", q, end, 0)
		}
		esc := q[end]
		if !strings.ContainsRune(stringEscapes, rune(esc)) {
			return "", 0, errmsg("Invalid tilde escape", q, end-1, end+1)
		}
		end++
		b.WriteByte(esc)
	}
}

// scanKey reads an unquoted property name, ending at the first unescaped
// control character or space.
func scanKey(q string, end int) (string, int, error) {
	var b strings.Builder
	for end < len(q) {
		c := q[end]
		if c == '~' {
			end++
			if end >= len(q) {
				return "", 0, errmsg("Truncated escape", q, end, 0)
			}
			esc := q[end]
			if !strings.ContainsRune(keyEscapes, rune(esc)) {
				return "", 0, errmsg("Invalid tilde escape", q, end-1, end+1)
			}
			end++
			b.WriteByte(esc)
			continue
		}
		if strings.ContainsRune(keyControls, rune(c)) {
			break
		}
		end++
		b.WriteByte(c)
	}
	return b.String(), end, nil
}

// idxToken is one index token inside a bracket group: a signed decimal or
// one of the start/end sentinels. Parsing into an int64 is deferred until
// the caller knows whether it is an index, start, stop or step, since the
// overflow message names that role.
type idxToken struct {
	text     string
	start    int
	end      int
	sentinel *int64
}

var (
	sentinelStart = int64(math.MinInt64)
	sentinelEnd   = int64(math.MaxInt64)
)

// matchIdx matches an index token at end, or returns nil.
func matchIdx(q string, end int) *idxToken {
	if strings.HasPrefix(q[end:], "start") {
		return &idxToken{text: "start", start: end, end: end + 5, sentinel: &sentinelStart}
	}
	if strings.HasPrefix(q[end:], "end") {
		return &idxToken{text: "end", start: end, end: end + 3, sentinel: &sentinelEnd}
	}
	i := end
	if i < len(q) && q[i] == '-' {
		i++
	}
	if i >= len(q) || q[i] < '0' || q[i] > '9' {
		return nil
	}
	if q[i] == '0' {
		// no leading zeros
		i++
	} else {
		for i < len(q) && q[i] >= '0' && q[i] <= '9' {
			i++
		}
	}
	return &idxToken{text: q[end:i], start: end, end: i}
}

// parse converts the token, reporting oversized values against the given
// role name, positioned exactly over the numeral.
func (t *idxToken) parse(q, what string) (int64, error) {
	if t.sentinel != nil {
		return *t.sentinel, nil
	}
	v, err := strconv.ParseInt(t.text, 10, 64)
	if err != nil {
		return 0, errmsg(what+" is too big", q, t.start, t.end)
	}
	return v, nil
}

// Operator is one of the six comparison operators of the filter grammar.
// Equality is total across value kinds; ordering fails on incomparable
// kinds.
type Operator int

const (
	OpNone Operator = iota
	OpLE
	OpLT
	OpEQ
	OpNE
	OpGE
	OpGT
)

func (op Operator) String() string {
	switch op {
	case OpLE:
		return "<="
	case OpLT:
		return "<"
	case OpEQ:
		return "=="
	case OpNE:
		return "!="
	case OpGE:
		return ">="
	case OpGT:
		return ">"
	}
	return "<none>"
}

// eval applies the operator to two values.
func (op Operator) eval(a, b *ir.Node) (bool, error) {
	switch op {
	case OpEQ:
		return ir.Equal(a, b), nil
	case OpNE:
		return !ir.Equal(a, b), nil
	}
	c, err := ir.Compare(a, b)
	if err != nil {
		return false, err
	}
	switch op {
	case OpLE:
		return c <= 0, nil
	case OpLT:
		return c < 0, nil
	case OpGE:
		return c >= 0, nil
	case OpGT:
		return c > 0, nil
	}
	return false, fmt.Errorf("%w: no operator", ir.ErrValue)
}

// scanOperator matches a comparison operator, longest first.
func scanOperator(q string, end int) (Operator, int) {
	switch {
	case strings.HasPrefix(q[end:], "<="):
		return OpLE, end + 2
	case strings.HasPrefix(q[end:], "<"):
		return OpLT, end + 1
	case strings.HasPrefix(q[end:], "=="):
		return OpEQ, end + 2
	case strings.HasPrefix(q[end:], "!="):
		return OpNE, end + 2
	case strings.HasPrefix(q[end:], ">="):
		return OpGE, end + 2
	case strings.HasPrefix(q[end:], ">"):
		return OpGT, end + 1
	}
	return OpNone, end
}

package query

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nineteendo/json0/ir"
)

// scanValue parses a literal at idx: a quoted string, true/false/null, a
// number, or (when allowed) Infinity / -Infinity.
func (e *Engine) scanValue(s string, idx int) (*ir.Node, int, error) {
	if idx >= len(s) {
		return nil, 0, errmsg("Expecting value", s, idx, 0)
	}
	switch {
	case s[idx] == '\'':
		v, end, err := scanString(s, idx+1)
		if err != nil {
			return nil, 0, err
		}
		return ir.FromString(v), end, nil
	case strings.HasPrefix(s[idx:], "null"):
		return ir.Null(), idx + 4, nil
	case strings.HasPrefix(s[idx:], "true"):
		return ir.FromBool(true), idx + 4, nil
	case strings.HasPrefix(s[idx:], "false"):
		return ir.FromBool(false), idx + 5, nil
	}
	if tok, isFloat := matchNumber(s, idx); tok != "" {
		v, err := e.parseNumber(s, tok, idx, isFloat)
		if err != nil {
			return nil, 0, err
		}
		return v, idx + len(tok), nil
	}
	if strings.HasPrefix(s[idx:], "Infinity") {
		if !e.infinity {
			return nil, 0, errmsg("Infinity is not allowed", s, idx, idx+8)
		}
		return ir.FromFloat(math.Inf(1)), idx + 8, nil
	}
	if strings.HasPrefix(s[idx:], "-Infinity") {
		if !e.infinity {
			return nil, 0, errmsg("-Infinity is not allowed", s, idx, idx+9)
		}
		return ir.FromFloat(math.Inf(-1)), idx + 9, nil
	}
	return nil, 0, errmsg("Expecting value", s, idx, 0)
}

// matchNumber matches (-?0|-?[1-9]\d*)(\.\d+)?([eE][-+]?\d+)? at idx,
// returning the token and whether a fraction or exponent forces float
// semantics.
func matchNumber(s string, idx int) (string, bool) {
	i := idx
	if i < len(s) && s[i] == '-' {
		i++
	}
	if i >= len(s) || s[i] < '0' || s[i] > '9' {
		return "", false
	}
	if s[i] == '0' {
		i++
	} else {
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	isFloat := false
	if i+1 < len(s) && s[i] == '.' && s[i+1] >= '0' && s[i+1] <= '9' {
		isFloat = true
		i += 2
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			isFloat = true
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			i = j
		}
	}
	return s[idx:i], isFloat
}

func (e *Engine) parseNumber(s, tok string, idx int, isFloat bool) (*ir.Node, error) {
	end := idx + len(tok)
	if !isFloat {
		i, err := strconv.ParseInt(tok, 10, 64)
		if err == nil {
			return ir.FromInt(i), nil
		}
		// beyond int64: fall back to exact decimal in either mode
		d, derr := decimal.NewFromString(tok)
		if derr != nil {
			return nil, errmsg("Number is too big", s, idx, end)
		}
		return ir.FromDecimal(d), nil
	}
	if e.decimal {
		d, err := decimal.NewFromString(tok)
		if err != nil {
			return nil, errmsg("Number is too big", s, idx, end)
		}
		return ir.FromDecimal(d), nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if math.IsInf(f, 0) {
		return nil, errmsg("Big numbers require decimal", s, idx, end)
	}
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, errmsg("Expecting value", s, idx, 0)
	}
	return ir.FromFloat(f), nil
}

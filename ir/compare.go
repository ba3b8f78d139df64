package ir

import (
	"cmp"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Equal reports deep value equality. It is total: values of different kinds
// are unequal, never an error. Numbers compare by value across the integer,
// float and decimal representations; object fields compare regardless of
// their order.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case NumberType:
		return numCompare(a, b) == 0
	case StringType:
		return a.String == b.String
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i, field := range a.Fields {
			j := b.FieldIndex(field.String)
			if j < 0 {
				return false
			}
			if !Equal(a.Values[i], b.Values[j]) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare returns an integer comparing two nodes, -1 if a < b, 0 if a == b
// and +1 if a > b. Only numbers, strings, bools and arrays have an order;
// any other pairing is a type error.
func Compare(a, b *Node) (int, error) {
	if a.Type != b.Type && !(a.Type == NumberType && b.Type == NumberType) {
		return 0, incomparable(a, b)
	}
	switch a.Type {
	case NumberType:
		return numCompare(a, b), nil
	case StringType:
		return strings.Compare(a.String, b.String), nil
	case BoolType:
		if a.Bool == b.Bool {
			return 0, nil
		}
		if !a.Bool {
			return -1, nil
		}
		return 1, nil
	case ArrayType:
		n := min(len(a.Values), len(b.Values))
		for i := range n {
			c, err := Compare(a.Values[i], b.Values[i])
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
		return cmp.Compare(len(a.Values), len(b.Values)), nil
	}
	return 0, incomparable(a, b)
}

func incomparable(a, b *Node) error {
	return fmt.Errorf("%w: %s is not comparable with %s", ErrType, a.Type, b.Type)
}

func numCompare(a, b *Node) int {
	ai, aOK := infSign(a)
	bi, bOK := infSign(b)
	if aOK || bOK {
		return cmp.Compare(ai, bi)
	}
	if a.Dec != nil || b.Dec != nil {
		return asDecimal(a).Cmp(asDecimal(b))
	}
	if a.Int64 != nil && b.Int64 != nil {
		return cmp.Compare(*a.Int64, *b.Int64)
	}
	return cmp.Compare(asFloat(a), asFloat(b))
}

// infSign classifies infinite floats, which the decimal representation can
// not hold: -1, +1 for the two infinities, 0 for finite numbers.
func infSign(n *Node) (int, bool) {
	if n.Float64 == nil || !math.IsInf(*n.Float64, 0) {
		return 0, false
	}
	if math.IsInf(*n.Float64, -1) {
		return -1, true
	}
	return 1, true
}

func asDecimal(n *Node) decimal.Decimal {
	switch {
	case n.Dec != nil:
		return *n.Dec
	case n.Int64 != nil:
		return decimal.NewFromInt(*n.Int64)
	case n.Float64 != nil:
		return decimal.NewFromFloat(*n.Float64)
	}
	return decimal.Decimal{}
}

func asFloat(n *Node) float64 {
	switch {
	case n.Float64 != nil:
		return *n.Float64
	case n.Int64 != nil:
		return float64(*n.Int64)
	case n.Dec != nil:
		f, _ := n.Dec.Float64()
		return f
	}
	return 0
}

package ir

import (
	"maps"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
)

// Node is one value in a document tree. Object nodes keep their fields in
// insertion order as the parallel slices Fields (string keys) and Values;
// array nodes use Values alone. A Number carries exactly one of Int64,
// Float64 or Dec, plus the source text in Number when it came from a parser.
type Node struct {
	Type Type

	String  string
	Bool    bool
	Number  string
	Int64   *int64
	Float64 *float64
	Dec     *decimal.Decimal

	Fields []*Node
	Values []*Node
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

func FromDecimal(d decimal.Decimal) *Node {
	return &Node{Type: NumberType, Dec: &d}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromSlice(ys []*Node) *Node {
	return &Node{Type: ArrayType, Values: ys}
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   ObjectType,
		Fields: make([]*Node, len(kvs)),
		Values: make([]*Node, len(kvs)),
	}
	for i := range kvs {
		res.Fields[i] = FromString(kvs[i].Key)
		res.Values[i] = kvs[i].Val
	}
	return res
}

// FromMap builds an object with the keys in sorted order, since Go map
// iteration order is not stable.
func FromMap(yMap map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(yMap))
	kvs := make([]KeyVal, len(keys))
	for i, key := range keys {
		kvs[i] = KeyVal{Key: key, Val: yMap[key]}
	}
	return FromKeyVals(kvs)
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Number = y.Number
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Dec != nil {
		d := *y.Dec
		dst.Dec = &d
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dst.Fields[i] = yf.Clone()
		}
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	return dst
}

// FieldIndex returns the position of a field in an object, or -1.
func (y *Node) FieldIndex(field string) int {
	for i := range y.Fields {
		if y.Fields[i].String == field {
			return i
		}
	}
	return -1
}

func Get(y *Node, field string) *Node {
	i := y.FieldIndex(field)
	if i < 0 {
		return nil
	}
	return y.Values[i]
}

// SetField replaces the value of an existing field in place, keeping its
// position, or appends a new field.
func (y *Node) SetField(field string, v *Node) {
	if i := y.FieldIndex(field); i >= 0 {
		y.Values[i] = v
		return
	}
	y.Fields = append(y.Fields, FromString(field))
	y.Values = append(y.Values, v)
}

// DeleteField removes a field from an object, reporting whether it existed.
func (y *Node) DeleteField(field string) bool {
	i := y.FieldIndex(field)
	if i < 0 {
		return false
	}
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	return true
}

// InsertValue inserts v at index i of an array node.
func (y *Node) InsertValue(i int, v *Node) {
	y.Values = slices.Insert(y.Values, i, v)
}

// RemoveValue removes index i of an array node.
func (y *Node) RemoveValue(i int) {
	y.Values = slices.Delete(y.Values, i, i+1)
}

// Clear removes all entries of an object or array, keeping identity.
func (y *Node) Clear() {
	y.Fields = nil
	y.Values = nil
}

func (y *Node) Reverse() {
	slices.Reverse(y.Values)
}

// Len is the number of entries of a container node.
func (y *Node) Len() int {
	return len(y.Values)
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// Info gives a one-line description of a node for error messages.
func (y *Node) Info() string {
	switch y.Type {
	case StringType:
		return strconv.Quote(y.String)
	case NumberType:
		if y.Number != "" {
			return y.Number
		}
		if y.Int64 != nil {
			return strconv.FormatInt(*y.Int64, 10)
		}
		if y.Dec != nil {
			return y.Dec.String()
		}
		if y.Float64 != nil {
			return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
		}
		return "0"
	case BoolType:
		return strconv.FormatBool(y.Bool)
	case NullType:
		return "null"
	default:
		return y.Type.String()
	}
}

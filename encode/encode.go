package encode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/nineteendo/json0/ir"
	"github.com/nineteendo/json0/token"
)

var ErrEncoding = errors.New("encode error")

type EncState struct {
	col, depth, indent int

	wire     bool
	sortKeys bool
	ascii    bool
	infinity bool

	colorType ir.Type
	Color     func(ir.Type, ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	if es.wire {
		return nil
	}
	return writeString(w, "\n")
}

// Bytes encodes node into a buffer.
func Bytes(node *ir.Node, opts ...EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Helper functions for writing

func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	indentString := strings.Repeat(strings.Repeat(" ", es.indent), es.depth)
	if err := writeString(w, "\n"+indentString); err != nil {
		return err
	}
	es.col = len(indentString)
	return nil
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

// Color application helpers

func applyColor(es *EncState, nodeType ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(nodeType, attr, v)
}

func applyValueColor(es *EncState, nodeType ir.Type, v string) string {
	return applyColor(es, nodeType, ValueColor, v)
}

// Main encode function

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	es.colorType = node.Type
	switch node.Type {
	case ir.ObjectType:
		return encodeObject(node, w, es)
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.StringType:
		return encodeString(node, w, es)
	case ir.NumberType:
		return encodeNumber(node, w, es)
	case ir.BoolType:
		return encodeBool(node, w, es)
	case ir.NullType:
		return encodeNull(node, w, es)
	default:
		panic("type")
	}
}

// Object encoding

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	order := make([]int, len(node.Fields))
	for i := range order {
		order[i] = i
	}
	if es.sortKeys {
		sort.SliceStable(order, func(a, b int) bool {
			return node.Fields[order[a]].String < node.Fields[order[b]].String
		})
	}
	es.col++
	if err := writeString(w, "{"); err != nil {
		return err
	}
	es.depth++
	for i, fi := range order {
		if i > 0 {
			if err := writeCommaSeparator(w, es, ir.ObjectType); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeField(w, node.Fields[fi].String, es); err != nil {
			return err
		}
		if err := encode(node.Values[fi], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if len(order) > 0 {
		if err := writeNL(w, es); err != nil {
			return err
		}
	}
	es.col++
	return writeString(w, "}")
}

func writeField(w io.Writer, f string, es *EncState) error {
	f = token.Quote(f, es.ascii)
	sep := ":"
	if !es.wire {
		sep = ": "
	}
	es.col += len(f) + len(sep)
	if es.Color != nil {
		f = applyColor(es, ir.ObjectType, FieldColor, f)
		sep = applyColor(es, ir.ObjectType, SepColor, sep)
	}
	return writeString(w, f+sep)
}

// Array encoding

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	es.col++
	if err := writeString(w, "["); err != nil {
		return err
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeCommaSeparator(w, es, ir.ArrayType); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if len(node.Values) > 0 {
		if err := writeNL(w, es); err != nil {
			return err
		}
	}
	es.col++
	return writeString(w, "]")
}

func writeCommaSeparator(w io.Writer, es *EncState, cType ir.Type) error {
	sep := ","
	es.col += len(sep)
	if es.Color != nil {
		sep = es.Color(cType, SepColor, sep)
	}
	return writeString(w, sep)
}

// Leaf encoding

func encodeString(node *ir.Node, w io.Writer, es *EncState) error {
	v := token.Quote(node.String, es.ascii)
	es.col += len(v)
	v = applyValueColor(es, ir.StringType, v)
	return writeString(w, v)
}

func encodeNumber(node *ir.Node, w io.Writer, es *EncState) error {
	var v string
	switch {
	case node.Int64 != nil:
		v = strconv.FormatInt(*node.Int64, 10)
	case node.Dec != nil:
		v = node.Dec.String()
		if !strings.ContainsAny(v, ".eE") {
			v += ".0"
		}
	case node.Float64 != nil:
		var err error
		v, err = formatFloat(*node.Float64, es)
		if err != nil {
			return err
		}
	default:
		v = "0"
	}
	es.col += len(v)
	v = applyValueColor(es, ir.NumberType, v)
	return writeString(w, v)
}

func formatFloat(f float64, es *EncState) (string, error) {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		if !es.infinity {
			return "", fmt.Errorf("%w: %v is not allowed", ErrEncoding, f)
		}
		if math.IsNaN(f) {
			return "NaN", nil
		}
		if f > 0 {
			return "Infinity", nil
		}
		return "-Infinity", nil
	case math.Abs(f) >= 1e21:
		return strconv.FormatFloat(f, 'e', -1, 64), nil
	}
	v := strconv.FormatFloat(f, 'f', -1, 64)
	// Zero and integral floats keep a decimal point, "0.0" not "0".
	if !strings.Contains(v, ".") {
		v += ".0"
	}
	return v, nil
}

func encodeBool(node *ir.Node, w io.Writer, es *EncState) error {
	v := strconv.FormatBool(node.Bool)
	es.col += len(v)
	v = applyValueColor(es, ir.BoolType, v)
	return writeString(w, v)
}

func encodeNull(node *ir.Node, w io.Writer, es *EncState) error {
	v := "null"
	es.col += len(v)
	v = applyValueColor(es, ir.NullType, v)
	return writeString(w, v)
}

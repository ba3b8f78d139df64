package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/nineteendo/json0/ir"
	"github.com/nineteendo/json0/token"
)

func mustParse(t *testing.T, src string, opts ...ParseOption) *ir.Node {
	t.Helper()
	n, err := Parse([]byte(src), opts...)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return n
}

func TestParseScalars(t *testing.T) {
	cases := []struct {
		src  string
		want *ir.Node
	}{
		{`null`, ir.Null()},
		{`true`, ir.FromBool(true)},
		{`false`, ir.FromBool(false)},
		{`0`, ir.FromInt(0)},
		{`-1`, ir.FromInt(-1)},
		{`1.5`, ir.FromFloat(1.5)},
		{`"abc"`, ir.FromString("abc")},
		{`abc`, ir.FromString("abc")},
	}
	for _, tst := range cases {
		if got := mustParse(t, tst.src); !ir.Equal(got, tst.want) {
			t.Errorf("Parse(%q) = %s, want %s", tst.src, got.Info(), tst.want.Info())
		}
	}
}

func TestParseObjectOrder(t *testing.T) {
	got := mustParse(t, `{"b": 1, "a": 2, "c": 3}`)
	if got.Type != ir.ObjectType {
		t.Fatalf("got %s", got.Type)
	}
	fields := make([]string, len(got.Fields))
	for i, f := range got.Fields {
		fields[i] = f.String
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, fields); diff != "" {
		t.Errorf("field order (-want +got):\n%s", diff)
	}
}

func TestParseNested(t *testing.T) {
	got := mustParse(t, `{"a": [1, {"b": null}]}`)
	inner := ir.Get(got, "a")
	if inner == nil || inner.Type != ir.ArrayType || inner.Len() != 2 {
		t.Fatalf("a = %v", inner)
	}
	if b := ir.Get(inner.Values[1], "b"); b == nil || b.Type != ir.NullType {
		t.Errorf("b = %v", b)
	}
}

func TestParseYAML(t *testing.T) {
	got := mustParse(t, "a: 1\nb:\n- x\n- y\n")
	if got.Type != ir.ObjectType {
		t.Fatalf("got %s", got.Type)
	}
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromInt(1)},
		{Key: "b", Val: ir.FromSlice([]*ir.Node{ir.FromString("x"), ir.FromString("y")})},
	})
	if !ir.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseDecimalMode(t *testing.T) {
	got := mustParse(t, `1.5`, ParseDecimal(true))
	want, _ := decimal.NewFromString("1.5")
	if got.Dec == nil || got.Dec.Cmp(want) != 0 {
		t.Errorf("got %s, want decimal 1.5", got.Info())
	}

	// floats stay floats without the option
	if got := mustParse(t, `1.5`); got.Dec != nil || got.Float64 == nil {
		t.Errorf("got %s, want float 1.5", got.Info())
	}
}

func TestParseBigInteger(t *testing.T) {
	got := mustParse(t, `18446744073709551615`)
	if got.Type != ir.NumberType || got.Dec == nil {
		t.Fatalf("got %s, want decimal", got.Info())
	}
	want := decimal.NewFromUint64(18446744073709551615)
	if got.Dec.Cmp(want) != 0 {
		t.Errorf("got %s, want %s", got.Dec, want)
	}
}

func TestParseNumberSourceText(t *testing.T) {
	got := mustParse(t, `1.50`)
	if got.Number != "1.50" {
		t.Errorf("Number = %q, want %q", got.Number, "1.50")
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(nil)
	var se *token.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *token.SyntaxError", err)
	}
	if se.Msg != "Expecting value" || se.Filename != "<string>" {
		t.Errorf("error = %v", se)
	}

	_, err = Parse(nil, ParseFilename("empty.json"))
	if err == nil || !strings.Contains(err.Error(), "empty.json") {
		t.Errorf("error = %v, want it to name empty.json", err)
	}
}

func TestParseMultipleDocuments(t *testing.T) {
	_, err := Parse([]byte("--- 1\n--- 2\n"))
	var se *token.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *token.SyntaxError", err)
	}
	if se.Msg != "Expecting end of file" {
		t.Errorf("msg = %q", se.Msg)
	}
}

func TestParseInfinityGate(t *testing.T) {
	if _, err := Parse([]byte(".inf")); !errors.Is(err, ErrParse) {
		t.Errorf("error = %v, want ErrParse", err)
	}
	got := mustParse(t, ".inf", ParseInfinity(true))
	if got.Float64 == nil {
		t.Errorf("got %s, want infinity", got.Info())
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("{a: [")); !errors.Is(err, ErrParse) {
		t.Errorf("error = %v, want ErrParse", err)
	}
}

func TestParsePositions(t *testing.T) {
	positions := map[*ir.Node]*token.Pos{}
	got := mustParse(t, `{"a": 1}`, ParsePositions(positions))
	if len(positions) == 0 {
		t.Fatal("no positions recorded")
	}
	pos, ok := positions[got]
	if !ok {
		t.Fatal("no position for the root node")
	}
	if line := pos.Line(); line != 1 {
		t.Errorf("root line = %d, want 1", line)
	}
	if _, ok := positions[ir.Get(got, "a")]; !ok {
		t.Error("no position for a leaf node")
	}
}

package patch

import (
	"errors"
	"strings"
	"testing"

	"github.com/nineteendo/json0/encode"
	"github.com/nineteendo/json0/ir"
	"github.com/nineteendo/json0/parse"
)

func doc(t *testing.T, src string) *ir.Node {
	t.Helper()
	n, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return n
}

func decodeOps(t *testing.T, src string) []Operation {
	t.Helper()
	ops, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("decode %q: %v", src, err)
	}
	return ops
}

// applyText runs a patch given as JSON text and checks the result.
func applyText(t *testing.T, docSrc, patchSrc, wantSrc string) {
	t.Helper()
	got, err := Apply(doc(t, docSrc), decodeOps(t, patchSrc)...)
	if err != nil {
		t.Fatalf("apply %s to %s: %v", patchSrc, docSrc, err)
	}
	want := doc(t, wantSrc)
	if !ir.Equal(got, want) {
		t.Errorf("apply %s to %s = %s, want %s",
			patchSrc, docSrc, encode.MustString(got), encode.MustString(want))
	}
}

// applyErr runs a patch expected to fail and checks the error.
func applyErr(t *testing.T, docSrc, patchSrc string, sentinel error, msg string) {
	t.Helper()
	_, err := Apply(doc(t, docSrc), decodeOps(t, patchSrc)...)
	if err == nil {
		t.Fatalf("apply %s to %s: expected error %q", patchSrc, docSrc, msg)
	}
	if sentinel != nil && !errors.Is(err, sentinel) {
		t.Errorf("error = %v, want %v", err, sentinel)
	}
	if !strings.Contains(err.Error(), msg) {
		t.Errorf("error = %q, want it to contain %q", err, msg)
	}
}

func TestAppend(t *testing.T) {
	applyText(t, `[1, 2, 3]`, `{"op": "append", "value": 4}`, `[1, 2, 3, 4]`)
	applyText(t, `[[1, 2, 3]]`, `{"op": "append", "value": 4, "path": "$[0]"}`, `[[1, 2, 3, 4]]`)
}

func TestAppendCopy(t *testing.T) {
	value := doc(t, `[4]`)
	got, err := Apply(doc(t, `[[1], [2], [3]]`), Operation{Op: "append", Value: value})
	if err != nil {
		t.Fatal(err)
	}
	appended := got.Values[3]
	if !ir.Equal(appended, value) {
		t.Fatalf("appended %s, want %s", encode.MustString(appended), encode.MustString(value))
	}
	if appended == value {
		t.Error("appended value aliases the operation payload")
	}
}

func TestAssert(t *testing.T) {
	applyText(t, `0`, `{"op": "assert", "expr": "@ == 0"}`, `0`)
	applyText(t, `[0]`, `{"op": "assert", "expr": "@ == 0", "path": "$[0]"}`, `[0]`)
}

func TestFailedAssert(t *testing.T) {
	applyErr(t, `1`, `{"op": "assert", "expr": "@ == 0"}`,
		ir.ErrValue, "assertion failed: @ == 0")
	applyErr(t, `[1]`, `{"op": "assert", "expr": "@ == 0", "path": "$[0]"}`,
		ir.ErrValue, "assertion failed: @ == 0")
	applyErr(t, `1`, `{"op": "assert", "expr": "@ == 0", "msg": "msg"}`,
		ir.ErrValue, "assertion failed: msg")
}

func TestClear(t *testing.T) {
	applyText(t, `[1, 2, 3]`, `{"op": "clear"}`, `[]`)
	applyText(t, `{"a": 1, "b": 2, "c": 3}`, `{"op": "clear"}`, `{}`)
	applyText(t, `[[1, 2, 3]]`, `{"op": "clear", "path": "$[0]"}`, `[[]]`)
	applyText(t, `[{"a": 1}]`, `{"op": "clear", "path": "$[0]"}`, `[{}]`)
}

func TestInvalidClear(t *testing.T) {
	applyErr(t, `0`, `{"op": "clear"}`, ir.ErrType, "target must be an object or array")
}

func TestDel(t *testing.T) {
	applyText(t, `[1, 2, 3, 4]`, `{"op": "del", "path": "$[3]"}`, `[1, 2, 3]`)
	applyText(t, `{"a": 1, "b": 2, "c": 3, "d": 4}`, `{"op": "del", "path": "$.d"}`,
		`{"a": 1, "b": 2, "c": 3}`)

	// slice target
	applyText(t, `[1, 2, 3]`, `{"op": "del", "path": "$[:]"}`, `[]`)

	// matches are deleted from the highest index down
	applyText(t, `[1, 0, 2, 0, 3]`, `{"op": "del", "path": "$[@ == 0]"}`, `[1, 2, 3]`)
}

func TestDelRoot(t *testing.T) {
	applyErr(t, `0`, `{"op": "del", "path": "$"}`, ir.ErrValue, "Can not delete the root")
}

func TestExtend(t *testing.T) {
	applyText(t, `[1, 2, 3]`, `{"op": "extend", "value": [4, 5, 6]}`, `[1, 2, 3, 4, 5, 6]`)
	applyText(t, `[[1, 2, 3]]`, `{"op": "extend", "value": [4, 5, 6], "path": "$[0]"}`,
		`[[1, 2, 3, 4, 5, 6]]`)
}

func TestExtendCopy(t *testing.T) {
	value := doc(t, `[4]`)
	got, err := Apply(doc(t, `[[1], [2], [3]]`),
		Operation{Op: "extend", Value: ir.FromSlice([]*ir.Node{value})})
	if err != nil {
		t.Fatal(err)
	}
	if extended := got.Values[3]; extended == value {
		t.Error("extended value aliases the operation payload")
	}
}

func TestInsert(t *testing.T) {
	applyText(t, `[1, 2, 3]`, `{"op": "insert", "path": "$[0]", "value": 0}`, `[0, 1, 2, 3]`)

	// insertions run from the highest index down
	applyText(t, `[1, 2, 3]`, `{"op": "insert", "path": "$[@]", "value": 0}`, `[0, 1, 0, 2, 0, 3]`)
}

func TestInsertCopy(t *testing.T) {
	value := doc(t, `[0]`)
	got, err := Apply(doc(t, `[[1], [2], [3]]`),
		Operation{Op: "insert", Path: "$[0]", Value: value})
	if err != nil {
		t.Fatal(err)
	}
	if inserted := got.Values[0]; inserted == value {
		t.Error("inserted value aliases the operation payload")
	}
}

func TestInsertRoot(t *testing.T) {
	applyErr(t, `0`, `{"op": "insert", "path": "$", "value": 0}`,
		ir.ErrValue, "Can not insert at the root")
}

func TestReverse(t *testing.T) {
	applyText(t, `[1, 2, 3]`, `{"op": "reverse"}`, `[3, 2, 1]`)
	applyText(t, `[[1, 2, 3]]`, `{"op": "reverse", "path": "$[0]"}`, `[[3, 2, 1]]`)
}

func TestSet(t *testing.T) {
	applyText(t, `0`, `{"op": "set", "value": 1}`, `1`)
	applyText(t, `[0]`, `{"op": "set", "value": 1, "path": "$[0]"}`, `[1]`)
	applyText(t, `{"a": 0}`, `{"op": "set", "value": 1, "path": "$.a"}`, `{"a": 1}`)

	// slice target splices the array in
	applyText(t, `[1, 2, 3]`, `{"op": "set", "value": [3, 4, 5], "path": "$[:]"}`, `[3, 4, 5]`)
}

func TestSetCopy(t *testing.T) {
	value := doc(t, `[1]`)
	got, err := Apply(doc(t, `[0]`), Operation{Op: "set", Value: value})
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(got, value) {
		t.Fatalf("result %s, want %s", encode.MustString(got), encode.MustString(value))
	}
	if got == value {
		t.Error("result aliases the operation payload")
	}
}

func TestSort(t *testing.T) {
	applyText(t, `[3, 1, 2]`, `{"op": "sort"}`, `[1, 2, 3]`)
	applyText(t, `[[3, 1, 2]]`, `{"op": "sort", "path": "$[0]"}`, `[[1, 2, 3]]`)
	applyText(t, `[3, 1, 2]`, `{"op": "sort", "reverse": true}`, `[3, 2, 1]`)

	// a slice target sorts only the addressed sub-sequence
	applyText(t, `[3, 2, 1, 0]`, `{"op": "sort", "path": "$[1:]"}`, `[3, 0, 1, 2]`)
}

func TestSortIncomparable(t *testing.T) {
	applyErr(t, `[1, "a"]`, `{"op": "sort"}`, ir.ErrType, "not comparable")
}

func TestUpdate(t *testing.T) {
	applyText(t, `{"a": 1, "b": 2, "c": 3}`,
		`{"op": "update", "value": {"a": 4, "b": 5, "c": 6}}`,
		`{"a": 4, "b": 5, "c": 6}`)
	applyText(t, `[{"a": 1, "b": 2, "c": 3}]`,
		`{"op": "update", "value": {"a": 4, "b": 5, "c": 6}, "path": "$[0]"}`,
		`[{"a": 4, "b": 5, "c": 6}]`)
}

func TestUpdateKeyOrder(t *testing.T) {
	got, err := Apply(doc(t, `{"b": 1, "a": 2}`),
		decodeOps(t, `{"op": "update", "value": {"a": 9, "c": 3}}`)...)
	if err != nil {
		t.Fatal(err)
	}
	// existing keys keep their position, new keys append in value order
	want := []string{"b", "a", "c"}
	if len(got.Fields) != len(want) {
		t.Fatalf("got %d field(s), want %d", len(got.Fields), len(want))
	}
	for i, f := range got.Fields {
		if f.String != want[i] {
			t.Errorf("field %d = %q, want %q", i, f.String, want[i])
		}
	}
	if !ir.Equal(got, doc(t, `{"b": 1, "a": 9, "c": 3}`)) {
		t.Errorf("updated document = %s", encode.MustString(got))
	}
}

func TestUpdateCopy(t *testing.T) {
	inner := doc(t, `[4]`)
	value := ir.FromKeyVals([]ir.KeyVal{{Key: "d", Val: inner}})
	got, err := Apply(doc(t, `{"a": [1], "b": [2], "c": [3]}`),
		Operation{Op: "update", Value: value})
	if err != nil {
		t.Fatal(err)
	}
	if ir.Get(got, "d") == inner {
		t.Error("updated value aliases the operation payload")
	}
}

func TestCopyOp(t *testing.T) {
	applyText(t, `{"a": 1}`,
		`{"op": "copy", "from": "@.a", "mode": "set", "to": "@.b"}`,
		`{"a": 1, "b": 1}`)
	applyText(t, `[[1], [2]]`,
		`{"op": "copy", "path": "$[0]", "from": "@[0]", "mode": "append"}`,
		`[[1, 1], [2]]`)
}

func TestCopySliceFrom(t *testing.T) {
	applyText(t, `{"a": [1, 2, 3]}`,
		`{"op": "copy", "from": "@.a[1:]", "mode": "set", "to": "@.b"}`,
		`{"a": [1, 2, 3], "b": [2, 3]}`)
	applyText(t, `{"a": [1, 2, 3, 4]}`,
		`{"op": "copy", "from": "@.a[::2]", "mode": "set", "to": "@.b"}`,
		`{"a": [1, 2, 3, 4], "b": [1, 3]}`)
}

func TestCopySliceTo(t *testing.T) {
	applyText(t, `{"a": [7, 8], "b": [9, 9, 9]}`,
		`{"op": "copy", "from": "@.a", "mode": "set", "to": "@.b[0:1]"}`,
		`{"a": [7, 8], "b": [7, 8, 9, 9]}`)
}

func TestMoveSliceFrom(t *testing.T) {
	applyText(t, `{"a": [1, 2, 3], "b": 0}`,
		`{"op": "move", "from": "@.a[1:]", "mode": "set", "to": "@.b"}`,
		`{"a": [1], "b": [2, 3]}`)
}

func TestMoveOp(t *testing.T) {
	applyText(t, `{"a": {"b": 1}, "c": {}}`,
		`{"op": "move", "from": "@.a", "mode": "set", "to": "@.c"}`,
		`{"c": {"b": 1}}`)
}

func TestMoveRename(t *testing.T) {
	applyText(t, `{"a": 1}`,
		`{"op": "move", "from": "@.a", "mode": "set", "to": "@.b"}`,
		`{"b": 1}`)
}

func TestMoveIntoItself(t *testing.T) {
	applyErr(t, `[0]`, `{"op": "move", "path": "$[0]", "from": "@", "mode": "set"}`,
		ir.ErrValue, "can not move a value into itself")
}

func TestPasteModes(t *testing.T) {
	// extend concatenates the copied array
	applyText(t, `{"a": [1, 2], "b": [3]}`,
		`{"op": "copy", "from": "@.a", "mode": "extend", "to": "@.b"}`,
		`{"a": [1, 2], "b": [3, 1, 2]}`)

	// insert requires an explicit to query
	applyErr(t, `{"a": 1}`, `{"op": "copy", "from": "@.a", "mode": "insert"}`,
		ir.ErrValue, "insert mode without a to")

	// update merges the copied object
	applyText(t, `{"a": {"x": 1}, "b": {"y": 2}}`,
		`{"op": "copy", "from": "@.a", "mode": "update", "to": "@.b"}`,
		`{"a": {"x": 1}, "b": {"y": 2, "x": 1}}`)

	// unknown mode
	applyErr(t, `{"a": 1}`, `{"op": "copy", "from": "@.a", "mode": "overwrite"}`,
		ir.ErrValue, `unknown paste mode "overwrite"`)
}

func TestOperations(t *testing.T) {
	applyText(t, `{"a": 1, "b": 2, "c": 3}`, `[]`, `{"a": 1, "b": 2, "c": 3}`)
	applyText(t, `{"a": 1, "b": 2, "c": 3}`,
		`[{"op": "del", "path": "$.a"}, {"op": "del", "path": "$.b"}, {"op": "del", "path": "$.c"}]`,
		`{}`)
}

func TestNoRollback(t *testing.T) {
	d := doc(t, `{"a": 1}`)
	ops := decodeOps(t, `[{"op": "set", "value": 2, "path": "$.a"}, {"op": "del", "path": "$"}]`)
	_, err := Apply(d, ops...)
	if err == nil {
		t.Fatal("expected error from the second operation")
	}
	// the first operation stays applied
	if got := ir.Get(d, "a"); got == nil || !ir.Equal(got, ir.FromInt(2)) {
		t.Errorf("doc after failed batch = %s", encode.MustString(d))
	}
}

func TestOpErrorNamesOperation(t *testing.T) {
	_, err := Apply(doc(t, `0`), decodeOps(t, `{"op": "del", "path": "$"}`)...)
	if err == nil || !strings.Contains(err.Error(), "op 0 (del)") {
		t.Errorf("error = %v, want it to name op 0 (del)", err)
	}
}

func TestRFC6902(t *testing.T) {
	got, err := RFC6902(doc(t, `{"a": 1}`),
		[]byte(`[{"op": "add", "path": "/b", "value": 2}, {"op": "remove", "path": "/a"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if want := doc(t, `{"b": 2}`); !ir.Equal(got, want) {
		t.Errorf("result = %s, want %s", encode.MustString(got), encode.MustString(want))
	}
}

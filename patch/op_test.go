package patch

import (
	"errors"
	"strings"
	"testing"

	"github.com/nineteendo/json0/ir"
)

func TestDecodeSingleOp(t *testing.T) {
	ops := decodeOps(t, `{"op": "set", "path": "$.a", "value": 1, "reverse": true}`)
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want 1", len(ops))
	}
	op := ops[0]
	if op.Op != "set" || op.Path != "$.a" || !op.Reverse {
		t.Errorf("op = %+v", op)
	}
	if op.Value == nil || !ir.Equal(op.Value, ir.FromInt(1)) {
		t.Errorf("value = %v", op.Value)
	}
}

func TestDecodeOpList(t *testing.T) {
	ops := decodeOps(t, `[{"op": "clear"}, {"op": "reverse"}]`)
	if len(ops) != 2 || ops[0].Op != "clear" || ops[1].Op != "reverse" {
		t.Errorf("ops = %+v", ops)
	}
}

func TestDecodeNullValueIsPresent(t *testing.T) {
	ops := decodeOps(t, `{"op": "set", "value": null}`)
	if ops[0].Value == nil || ops[0].Value.Type != ir.NullType {
		t.Errorf("value = %v, want explicit null", ops[0].Value)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		msg  string
	}{
		{name: "missing op", src: `{"path": "$"}`, msg: "operation without an op"},
		{name: "unknown op", src: `{"op": "frobnicate"}`, msg: `unknown operation "frobnicate"`},
		{name: "non-object op", src: `[0]`, msg: "operation must be an object"},
		{name: "scalar patch", src: `0`, msg: "patch must be an object or array"},
		{name: "non-string path", src: `{"op": "del", "path": 0}`, msg: "path must be a string"},
		{name: "non-bool reverse", src: `{"op": "sort", "reverse": 1}`, msg: "reverse must be a bool"},
	}
	for _, tst := range cases {
		t.Run(tst.name, func(t *testing.T) {
			_, err := Decode([]byte(tst.src))
			if !errors.Is(err, ir.ErrValue) {
				t.Fatalf("error = %v, want ErrValue", err)
			}
			if !strings.Contains(err.Error(), tst.msg) {
				t.Errorf("error = %q, want it to contain %q", err, tst.msg)
			}
		})
	}
}

func TestApplyUnknownOp(t *testing.T) {
	_, err := Apply(doc(t, `0`), Operation{Op: "frobnicate"})
	if !errors.Is(err, ir.ErrValue) {
		t.Errorf("error = %v, want ErrValue", err)
	}
}

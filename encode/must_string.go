package encode

import (
	"bytes"
	"strings"

	"github.com/nineteendo/json0/ir"
)

func MustString(node *ir.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, Wire(true), AllowInfinity(true)); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

package patch

import (
	jsonpatch "github.com/evanphx/json-patch"

	"github.com/nineteendo/json0/encode"
	"github.com/nineteendo/json0/ir"
	"github.com/nineteendo/json0/parse"
)

// RFC6902 applies a standard JSON Patch document to doc by encoding to
// JSON, applying the patch, and decoding the result.
func RFC6902(doc *ir.Node, patchDoc []byte) (*ir.Node, error) {
	ops, err := jsonpatch.DecodePatch(patchDoc)
	if err != nil {
		return nil, err
	}
	d, err := encode.Bytes(doc, encode.Wire(true))
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, err
	}
	return parse.Parse(out)
}

// Package encode renders IR nodes as JSON text.
//
// # Usage
//
//	node := ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("alice"),
//	    "age":  ir.FromInt(30),
//	})
//	err := encode.Encode(node, os.Stdout)
//
//	// Compact, single line
//	err := encode.Encode(node, os.Stdout, encode.Wire(true))
//
// # Related Packages
//
//   - github.com/nineteendo/json0/ir - IR representation
//   - github.com/nineteendo/json0/parse - Parse text to IR
package encode

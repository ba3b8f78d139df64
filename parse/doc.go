// Package parse decodes JSON or YAML text into IR nodes, keeping object
// fields in document order.
//
// # Usage
//
//	node, err := parse.Parse([]byte(`{"a": 1}`))
//
//	// With node positions
//	positions := map[*ir.Node]*token.Pos{}
//	node, err := parse.Parse(data, parse.ParsePositions(positions))
//
// # Related Packages
//
//   - github.com/nineteendo/json0/ir - IR representation
//   - github.com/nineteendo/json0/encode - Encode IR to JSON text
package parse

// Package patch applies ordered mutation operations to IR documents,
// addressing targets with query strings.
//
// # Usage
//
//	doc, _ := parse.Parse([]byte(`[1, 2, 3]`))
//	doc, err := patch.Apply(doc, patch.Operation{Op: "del", Path: "$[1]"})
//
// Operations are applied in order and are not atomic: a failing operation
// leaves the effects of earlier ones in place.
//
// # Related Packages
//
//   - github.com/nineteendo/json0/query - Query resolution
//   - github.com/nineteendo/json0/ir - IR representation
package patch

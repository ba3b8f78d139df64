// Package query implements the select and filter query language over ir
// document trees. A query addresses locations in a document as (target, key)
// Nodes; reading a Node dereferences the target, writing one mutates the
// document in place.
//
// The grammar, informally:
//
//	query      := ("$" | "@") step*
//	step       := "." name | "[" bracket "]"
//	bracket    := index [":" index [":" index]]
//	            | index
//	            | filter-expr
//	index      := "start" | "end" | signed-int
//	filter-expr:= "!"? key-chain [op (literal|key-chain)] ("&&" filter-expr)?
//
// Filters are rejected in single-result mode, which is used for the
// relative sub-queries inside filters and patch operations. Slices are too,
// unless the caller allows them, and then only as the final key.
package query

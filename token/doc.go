// Package token carries source positioning: offset to line/column mapping
// and the positioned syntax error shared by queries and the decoder.
package token

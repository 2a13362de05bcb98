// Package serializer renders document trees back to CDL text and scaffolds
// new documents. Serialized output round-trips through the parser.
package serializer

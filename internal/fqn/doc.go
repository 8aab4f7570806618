// internal/fqn/doc.go

/*
Package fqn provides a structured representation of field paths (fully
qualified names) inside a parsed pipeline tree.

The canonical format is a dot-separated sequence of segments where a segment
may carry an array index, e.g. `pipeline.stages[0].stage.spec.execution`.

Paths are diagnostic identifiers: the engine keys its work by node UUID, and
uses the path only to report where a field lives.
*/
package fqn

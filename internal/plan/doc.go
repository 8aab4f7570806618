// Package plan defines the output of plan creation: plan nodes and the
// Response accumulator that creators return and the engine merges.
//
// A Response keeps two disjoint maps. Nodes holds fully resolved plan nodes;
// Dependencies holds YAML fields that still have to be expanded. Adding a
// node always removes the same id from Dependencies, and a dependency is
// never recorded for an id that is already a node.
package plan

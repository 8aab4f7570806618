// Package dag holds the directed graph a plan describes. Nodes are plan node
// ids; an edge runs from a node to each of its children and to every node it
// advises towards.
//
// FromPlan builds the graph and Validate checks that a plan is a usable
// graph: every reference resolves, the starting node exists and there are
// no cycles.
package dag

package dag

import "sync"

// Graph is a collection of nodes and their edges.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
}

// node is a single vertex. It is un-exported so that callers work with
// string IDs only.
type node struct {
	id string
	// deps holds the nodes with an edge into this node (predecessors).
	deps map[string]*node
	// dependents holds the nodes this node has an edge to (successors).
	dependents map[string]*node
}

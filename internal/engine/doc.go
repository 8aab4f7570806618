// Package engine expands pipeline fields into a plan graph.
//
// The Service runs a breadth-first fixed point over a worklist of fields. In
// every round each pending field is handed to the first registered creator
// that supports it. The creator returns the nodes the field resolved into
// and the child fields still to expand. Children go into the next round, and
// fields no creator supports are reported in the final response instead of
// being retried. The loop stops when a round discovers nothing new.
//
// Rounds run on a bounded work pool. Only the goroutine driving CreatePlan
// touches the accumulated response, so creators never share mutable state.
package engine

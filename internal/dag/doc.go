// Package dag holds the workflow graph of a scheduling problem: an arena of
// tasks addressed by model.TaskRef, with ordered parent and child lists.
//
// The graph is built once per problem instance (see Build), validated to be
// acyclic, and then only read by the planners. Insertion order is preserved
// everywhere; it is the "discovery order" used to break ties between tasks.
//
// A Graph is not safe for concurrent mutation. Concurrent reads after
// construction are fine.
package dag

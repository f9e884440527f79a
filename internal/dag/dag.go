// Package dag provides the directed graph used to order token reference
// resolution. An edge from A to B means B refers to A, so A must be
// resolved first. Insertion order is preserved so that resolution order,
// and any error it reports, is stable across runs.
package dag

import (
	"fmt"
	"strings"
)

// Node is a vertex of the graph.
type Node[T any] struct {
	// ID is the dotted token path.
	ID   string
	Data T
}

// Graph is a directed graph keyed by string IDs.
type Graph[T any] struct {
	order   []string
	nodes   map[string]*Node[T]
	edges   map[string][]string // dependency -> dependents
	parents map[string][]string // dependent -> dependencies
}

// NewGraph creates an empty graph.
func NewGraph[T any]() *Graph[T] {
	return &Graph[T]{
		nodes:   make(map[string]*Node[T]),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
	}
}

// AddNode adds a node, or replaces the data of an existing one.
func (g *Graph[T]) AddNode(id string, data T) {
	if n, exists := g.nodes[id]; exists {
		n.Data = data
		return
	}
	g.order = append(g.order, id)
	g.nodes[id] = &Node[T]{ID: id, Data: data}
}

// AddEdge records that child depends on parent. Self edges are kept so
// that FindCycle reports a token referring to itself.
func (g *Graph[T]) AddEdge(parentID, childID string) error {
	if _, exists := g.nodes[parentID]; !exists {
		return fmt.Errorf("parent node %q does not exist", parentID)
	}
	if _, exists := g.nodes[childID]; !exists {
		return fmt.Errorf("child node %q does not exist", childID)
	}

	if !contains(g.edges[parentID], childID) {
		g.edges[parentID] = append(g.edges[parentID], childID)
	}
	if !contains(g.parents[childID], parentID) {
		g.parents[childID] = append(g.parents[childID], parentID)
	}
	return nil
}

// Node returns a node by ID.
func (g *Graph[T]) Node(id string) (*Node[T], bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Dependencies returns the direct dependencies of id.
func (g *Graph[T]) Dependencies(id string) []string {
	return g.parents[id]
}

// Dependents returns the direct dependents of id.
func (g *Graph[T]) Dependents(id string) []string {
	return g.edges[id]
}

// Len returns the number of nodes.
func (g *Graph[T]) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph[T]) EdgeCount() int {
	count := 0
	for _, children := range g.edges {
		count += len(children)
	}
	return count
}

// CycleError reports a dependency cycle. Path starts and ends on the
// same node.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "cycle detected: " + strings.Join(e.Path, " -> ")
}

// FindCycle returns the first cycle found walking nodes in insertion
// order, or nil.
func (g *Graph[T]) FindCycle() []string {
	const (
		unvisited = iota
		inStack
		done
	)
	state := make(map[string]int, len(g.nodes))
	var stack []string
	var cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		state[id] = inStack
		stack = append(stack, id)

		for _, dep := range g.parents[id] {
			switch state[dep] {
			case unvisited:
				if dfs(dep) {
					return true
				}
			case inStack:
				start := indexOf(stack, dep)
				cycle = append(cycle, stack[start:]...)
				cycle = append(cycle, dep)
				return true
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = done
		return false
	}

	for _, id := range g.order {
		if state[id] == unvisited && dfs(id) {
			return cycle
		}
	}
	return nil
}

// Sort returns nodes with every dependency before its dependents. Among
// independent nodes insertion order is kept.
func (g *Graph[T]) Sort() ([]*Node[T], error) {
	if cycle := g.FindCycle(); cycle != nil {
		return nil, &CycleError{Path: cycle}
	}

	visited := make(map[string]bool, len(g.nodes))
	result := make([]*Node[T], 0, len(g.nodes))

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, dep := range g.parents[id] {
			visit(dep)
		}
		result = append(result, g.nodes[id])
	}

	for _, id := range g.order {
		visit(id)
	}
	return result, nil
}

// Downstream returns every node that transitively depends on id, in
// insertion order.
func (g *Graph[T]) Downstream(id string) []string {
	seen := make(map[string]bool)

	var mark func(nodeID string)
	mark = func(nodeID string) {
		for _, child := range g.edges[nodeID] {
			if !seen[child] {
				seen[child] = true
				mark(child)
			}
		}
	}
	mark(id)

	result := make([]string, 0, len(seen))
	for _, nodeID := range g.order {
		if seen[nodeID] {
			result = append(result, nodeID)
		}
	}
	return result
}

func contains(slice []string, str string) bool {
	return indexOf(slice, str) >= 0
}

func indexOf(slice []string, str string) int {
	for i, s := range slice {
		if s == str {
			return i
		}
	}
	return -1
}

// Package domain contains the core domain models and business logic for the target graph.
package domain

import (
	"iter"
	"sort"
)

// Graph represents a dependency graph of targets.
type Graph struct {
	targets        map[InternedString]Target
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		targets: make(map[InternedString]Target),
	}
}

// AddTarget adds a target to the graph.
// It returns ErrDuplicateTarget if a target with the same name already exists.
func (g *Graph) AddTarget(t *Target) error {
	if _, exists := g.targets[t.Name]; exists {
		return Annotate(ErrDuplicateTarget, "target", t.Name.String())
	}
	g.targets[t.Name] = *t
	return nil
}

// Target resolves a target by name.
// It returns ErrUnknownTarget if no target with that name is declared.
func (g *Graph) Target(name InternedString) (Target, error) {
	t, exists := g.targets[name]
	if !exists {
		return Target{}, Annotate(ErrUnknownTarget, "target", name.String())
	}
	return t, nil
}

// TargetCount returns the number of declared targets.
func (g *Graph) TargetCount() int {
	return len(g.targets)
}

// Validate checks for cycles and dangling prerequisites using a depth-first
// traversal, and populates the execution order on success.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.targets))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		target, exists := g.targets[u]
		if !exists {
			return Annotate(ErrMissingPrerequisite, "prerequisite", u.String())
		}

		for _, dep := range target.Prerequisites {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	// Sort roots so that disconnected components validate in a stable order.
	names := make([]string, 0, len(g.targets))
	for name := range g.targets {
		names = append(names, name.String())
	}
	sort.Strings(names)

	for _, name := range names {
		interned := NewInternedString(name)
		if visited[interned] == 0 {
			if err := visit(interned); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return Annotate(ErrCycleDetected, "cycle", cyclePath)
}

// Walk returns an iterator that yields targets in execution order
// (prerequisites before dependents).
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Target] {
	return func(yield func(Target) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.targets[name]) {
				return
			}
		}
	}
}

// Dependents returns the names of targets that list name as a prerequisite.
func (g *Graph) Dependents(name InternedString) []InternedString {
	var out []InternedString
	for _, t := range g.targets {
		for _, dep := range t.Prerequisites {
			if dep == name {
				out = append(out, t.Name)
				break
			}
		}
	}
	return out
}

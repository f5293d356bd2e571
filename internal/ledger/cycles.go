package ledger

import "fmt"

// DetectCycles checks the blocked-type dependency graph for cycles and
// returns a non-nil error naming the first type found on one. Only
// edges between two blocked types can participate in a cycle: an edge
// from a pending or already-built blocker always resolves.
//
// Schemas arrive from untrusted wire messages, so the check runs after
// seeding rather than trusting the graph to be acyclic.
func (l *Ledger) DetectCycles() error {
	// Classic depth-first search with three node sets:
	// permanent: fully visited, known not to be on a cycle.
	// temporary: on the recursion stack of the current traversal.
	// unvisited: everything else.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(name string) error
	visit = func(name string) error {
		if permanent[name] {
			return nil
		}
		if temporary[name] {
			// Back on the recursion stack: a cycle.
			return fmt.Errorf("dependency cycle detected involving type %q", name)
		}

		temporary[name] = true

		for _, dep := range l.dependents[name] {
			if _, blocked := l.blocked[dep]; !blocked {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		delete(temporary, name)
		permanent[name] = true

		return nil
	}

	for name := range l.blocked {
		if !permanent[name] {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

package ledger

import (
	"fmt"
	"sort"

	"github.com/containerd/errdefs"
	"github.com/specialistvlad/typesmith/internal/schema"
)

// ErrCorrupted reports a violation of the ledger's bidirectional
// consistency invariant: a dependents entry named a type that was not
// in fact waiting on the resolved blocker. It indicates a bookkeeping
// defect and the session must be abandoned.
var ErrCorrupted = fmt.Errorf("dependency ledger corrupted: %w", errdefs.ErrInternal)

// blockedType pairs a descriptor with the multiset of blocker names it
// is still waiting on. Counts track how many referencing sites named
// each blocker, so repeated recordings of the same pair need the same
// number of resolutions to clear.
type blockedType struct {
	desc      *schema.Descriptor
	waitingOn map[string]int
}

// Ledger is the mutable bookkeeping for one synthesis session. It
// tracks three disjoint populations: descriptors ready to build (the
// pending queue), descriptors blocked on other not-yet-built types,
// and, by omission, everything already handed to the carpenter. A name
// is in at most one population at a time.
//
// The Ledger is not safe for concurrent use; a session is
// single-threaded by contract.
type Ledger struct {
	// pending is a FIFO queue of descriptors whose dependencies are
	// all satisfied. Insertion order carries no semantic meaning.
	pending []*schema.Descriptor
	// dependents maps a not-yet-built blocker name to the names
	// waiting on it, one entry per recorded referencing site.
	dependents map[string][]string
	// blocked maps a waiting type name to its descriptor and
	// outstanding blocker multiset.
	blocked map[string]*blockedType
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{
		dependents: make(map[string][]string),
		blocked:    make(map[string]*blockedType),
	}
}

// Enqueue adds a descriptor with no outstanding blockers to the
// pending queue.
func (l *Ledger) Enqueue(desc *schema.Descriptor) {
	l.pending = append(l.pending, desc)
}

// Dequeue removes and returns the oldest pending descriptor. The
// second return is false when the queue is empty.
func (l *Ledger) Dequeue() (*schema.Descriptor, bool) {
	if len(l.pending) == 0 {
		return nil, false
	}
	desc := l.pending[0]
	l.pending = l.pending[1:]
	return desc, true
}

// IsEmpty reports whether the pending queue is empty. Blocked types do
// not count until promoted.
func (l *Ledger) IsEmpty() bool {
	return len(l.pending) == 0
}

// Size returns the number of pending descriptors.
func (l *Ledger) Size() int {
	return len(l.pending)
}

// RecordDependency declares that dependent cannot be built until
// blocker has been built. Both sides of the bookkeeping are updated:
// dependent is appended under blocker's dependents entry, and blocker's
// count in dependent's outstanding multiset is incremented. The
// descriptor is attached the first time dependent is recorded;
// subsequent calls may pass the same descriptor or nil.
//
// Repeated calls with the same pair are counted, not deduplicated:
// each recorded site must be individually resolved before dependent is
// promoted.
func (l *Ledger) RecordDependency(dependent, blocker string, desc *schema.Descriptor) {
	l.dependents[blocker] = append(l.dependents[blocker], dependent)

	bt, ok := l.blocked[dependent]
	if !ok {
		bt = &blockedType{
			desc:      desc,
			waitingOn: make(map[string]int),
		}
		l.blocked[dependent] = bt
	}
	bt.waitingOn[blocker]++
}

// Resolve marks name as built and cascades: every recorded dependent
// has one outstanding count for name removed, and dependents whose
// outstanding multiset empties are taken out of the blocked population
// and returned for promotion. The dependents entry for name is removed
// before the walk, so promotions triggered by the caller cannot mutate
// the collection being iterated.
//
// Returns ErrCorrupted (wrapped) if a dependent was not actually
// waiting on name.
func (l *Ledger) Resolve(name string) ([]*schema.Descriptor, error) {
	waiters, ok := l.dependents[name]
	if !ok {
		return nil, nil
	}
	delete(l.dependents, name)

	var promoted []*schema.Descriptor
	for _, dep := range waiters {
		bt, ok := l.blocked[dep]
		if !ok || bt.waitingOn[name] == 0 {
			return nil, fmt.Errorf("type %q was recorded as a dependent of %q but is not waiting on it: %w", dep, name, ErrCorrupted)
		}
		bt.waitingOn[name]--
		if bt.waitingOn[name] == 0 {
			delete(bt.waitingOn, name)
		}
		if len(bt.waitingOn) == 0 {
			delete(l.blocked, dep)
			promoted = append(promoted, bt.desc)
		}
	}
	return promoted, nil
}

// Blocked returns the names still waiting on unresolved dependencies,
// in lexical order, for residual-error reporting.
func (l *Ledger) Blocked() []string {
	names := make([]string, 0, len(l.blocked))
	for name := range l.blocked {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BlockedOn returns the outstanding blocker names for dep, in lexical
// order, or nil if dep is not blocked.
func (l *Ledger) BlockedOn(dep string) []string {
	bt, ok := l.blocked[dep]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(bt.waitingOn))
	for name := range bt.waitingOn {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/specialistvlad/typesmith/internal/carpenter"
	"github.com/specialistvlad/typesmith/internal/ctxlog"
	"github.com/specialistvlad/typesmith/internal/ledger"
	"github.com/specialistvlad/typesmith/internal/registry"
	"github.com/specialistvlad/typesmith/internal/schema"
)

// ErrUnresolvable reports that the pending queue drained while types
// remained blocked: the dependency graph contains a cycle, or depends
// on a type the schema never supplies.
var ErrUnresolvable = fmt.Errorf("unresolvable dependency graph: %w", errdefs.ErrFailedPrecondition)

// Builder materializes one fully-resolved descriptor into a runtime
// type handle. carpenter.Carpenter is the production implementation;
// tests substitute their own.
type Builder interface {
	Build(ctx context.Context, desc *schema.Descriptor) (*carpenter.Handle, error)
}

// Driver runs the synthesis algorithm: it takes descriptors whose
// dependencies are satisfied off the ledger, has the builder
// materialize them, registers the results, and cascades each
// resolution to the types that were waiting on it.
type Driver struct {
	ledger  *ledger.Ledger
	reg     *registry.Registry
	builder Builder
}

// New wires a Driver to the session's ledger, registry and builder.
func New(l *ledger.Ledger, reg *registry.Registry, builder Builder) *Driver {
	return &Driver{ledger: l, reg: reg, builder: builder}
}

// ResolveOne materializes a single resolved descriptor and propagates
// the resolution. Types whose last outstanding blocker this build
// clears are re-admitted to the ledger: directly onto the pending
// queue when nothing else they reference is missing, or back into the
// blocked population otherwise (resolution can fan out).
//
// A builder failure aborts the session; the registry keeps whatever
// was built before the failure, and no rollback is attempted.
func (d *Driver) ResolveOne(ctx context.Context, desc *schema.Descriptor) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving descriptor.", "type", desc.Name)

	handle, err := d.builder.Build(ctx, desc)
	if err != nil {
		return fmt.Errorf("cannot materialize remote type %q: %w", desc.Name, err)
	}
	if err := d.reg.Register(desc.Name, handle); err != nil {
		return err
	}

	promoted, err := d.ledger.Resolve(desc.Name)
	if err != nil {
		return err
	}
	for _, dep := range promoted {
		d.admit(ctx, dep)
	}
	logger.Debug("Descriptor resolved.", "type", desc.Name, "promoted", len(promoted))
	return nil
}

// admit re-classifies a promoted descriptor against the registry. Any
// referencing site still naming an unbuilt type becomes a fresh
// dependency recording; otherwise the descriptor joins the pending
// queue.
func (d *Driver) admit(ctx context.Context, desc *schema.Descriptor) {
	logger := ctxlog.FromContext(ctx)
	sites := desc.ReferenceSites(d.reg.Contains)
	if len(sites) == 0 {
		logger.Debug("Promoting unblocked descriptor to pending.", "type", desc.Name)
		d.ledger.Enqueue(desc)
		return
	}
	logger.Debug("Promoted descriptor still has unresolved references.", "type", desc.Name, "count", len(sites))
	for _, blocker := range sites {
		d.ledger.RecordDependency(desc.Name, blocker, desc)
	}
}

// Step performs at most one resolution: the single-step driving
// policy. It returns false without error when nothing is pending, so
// stepping an already-drained session is a no-op. Ledger and registry
// state persist across calls.
func (d *Driver) Step(ctx context.Context) (bool, error) {
	desc, ok := d.ledger.Dequeue()
	if !ok {
		return false, nil
	}
	if err := d.ResolveOne(ctx, desc); err != nil {
		return false, err
	}
	return true, nil
}

// Drain is the exhaustive driving policy: it resolves pending
// descriptors until none remain. Each iteration registers exactly one
// new name and no name is ever built twice, so the loop is bounded by
// the number of distinct types the schema supplies. If types remain
// blocked once the queue drains, the graph was unresolvable (a cycle,
// or a dependency never supplied) and Drain fails rather than spin.
func (d *Driver) Drain(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	built := 0
	for {
		progressed, err := d.Step(ctx)
		if err != nil {
			return err
		}
		if !progressed {
			break
		}
		built++
	}
	logger.Debug("Pending queue drained.", "built", built)

	if blocked := d.ledger.Blocked(); len(blocked) > 0 {
		return fmt.Errorf("%w: no progress possible with %s still blocked", ErrUnresolvable, strings.Join(blocked, ", "))
	}
	return nil
}

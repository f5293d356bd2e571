package session

import (
	"context"

	"github.com/specialistvlad/typesmith/internal/carpenter"
	"github.com/specialistvlad/typesmith/internal/decode"
	"github.com/specialistvlad/typesmith/internal/driver"
	"github.com/specialistvlad/typesmith/internal/extract"
	"github.com/specialistvlad/typesmith/internal/ledger"
	"github.com/specialistvlad/typesmith/internal/registry"
)

// Session bundles the ledger, registry, carpenter and driver for one
// deserialization attempt. Sessions are single-threaded and disposable:
// a caller abandons one simply by dropping it, and retries start from
// a fresh Session since internal state is not rollback-safe.
type Session struct {
	ledger  *ledger.Ledger
	reg     *registry.Registry
	driver  *driver.Driver
	decoder *decode.Decoder
}

// New creates a fully-wired empty Session.
func New() *Session {
	l := ledger.New()
	reg := registry.New()
	c := carpenter.New(reg.Lookup)
	return &Session{
		ledger:  l,
		reg:     reg,
		driver:  driver.New(l, reg, c),
		decoder: decode.New(reg),
	}
}

// Seed parses an HCL schema document and loads its descriptors into
// the session's ledger.
func (s *Session) Seed(ctx context.Context, filename string, src []byte) error {
	descs, err := extract.Parse(ctx, filename, src)
	if err != nil {
		return err
	}
	return extract.Seed(ctx, s.ledger, descs, s.reg.Contains)
}

// Synthesize drains the pending queue, building every type the seeded
// schema supplies.
func (s *Session) Synthesize(ctx context.Context) error {
	return s.driver.Drain(ctx)
}

// Step builds at most one type, returning false when nothing is
// pending. Useful for observing resolution progress incrementally.
func (s *Session) Step(ctx context.Context) (bool, error) {
	return s.driver.Step(ctx)
}

// Decode instantiates a record of a synthesized type from JSON payload
// bytes.
func (s *Session) Decode(ctx context.Context, typeName string, payload []byte) (*carpenter.Record, error) {
	return s.decoder.Decode(ctx, typeName, payload)
}

// Registry exposes the session's synthesized types read-only.
func (s *Session) Registry() *registry.Registry {
	return s.reg
}

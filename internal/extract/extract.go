package extract

import (
	"context"
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/typesmith/internal/ctxlog"
	"github.com/specialistvlad/typesmith/internal/ledger"
	"github.com/specialistvlad/typesmith/internal/notation"
	"github.com/specialistvlad/typesmith/internal/schema"
)

// fieldBlock is one `field "name" { type = ... }` block. The type
// expression stays unevaluated so the notation parser can inspect it.
type fieldBlock struct {
	Name string         `hcl:"name,label"`
	Type hcl.Expression `hcl:"type"`
}

// typeBlock is one `type "name" { ... }` block. Field blocks decode in
// declaration order, which the descriptor preserves.
type typeBlock struct {
	Name    string        `hcl:"name,label"`
	Extends string        `hcl:"extends,optional"`
	Fields  []*fieldBlock `hcl:"field,block"`
}

// document is the top-level schema document.
type document struct {
	Types []*typeBlock `hcl:"type,block"`
}

// Parse reads an HCL schema document and returns one descriptor per
// type block, in declaration order. Duplicate type names are rejected
// here so the session fails before any bookkeeping is seeded.
func Parse(ctx context.Context, filename string, src []byte) ([]*schema.Descriptor, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing schema document.", "filename", filename, "bytes", len(src))

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing schema document %q: %w", filename, diags)
	}

	var doc document
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("decoding schema document %q: %w", filename, diags)
	}

	seen := make(map[string]bool, len(doc.Types))
	descs := make([]*schema.Descriptor, 0, len(doc.Types))
	for _, tb := range doc.Types {
		if seen[tb.Name] {
			return nil, fmt.Errorf("duplicate type %q in schema document %q: %w", tb.Name, filename, errdefs.ErrAlreadyExists)
		}
		seen[tb.Name] = true

		desc := &schema.Descriptor{
			Name:      tb.Name,
			Supertype: tb.Extends,
			Fields:    make([]schema.Field, 0, len(tb.Fields)),
		}
		for _, fb := range tb.Fields {
			ref, err := notation.ParseTypeExpr(ctx, fb.Type)
			if err != nil {
				return nil, fmt.Errorf("type %q, field %q: %w", tb.Name, fb.Name, err)
			}
			desc.Fields = append(desc.Fields, schema.Field{Name: fb.Name, Type: ref})
		}
		descs = append(descs, desc)
	}

	logger.Debug("Schema document parsed.", "type_count", len(descs))
	return descs, nil
}

// Seed classifies descriptors into a ledger: those whose composite
// references are all already known go straight onto the pending queue,
// and the rest are recorded blocked, one dependency per referencing
// site. A cycle check runs after seeding since schemas arrive from
// untrusted wire messages.
func Seed(ctx context.Context, l *ledger.Ledger, descs []*schema.Descriptor, known func(string) bool) error {
	logger := ctxlog.FromContext(ctx)

	pending, blocked := 0, 0
	for _, desc := range descs {
		sites := desc.ReferenceSites(known)
		if len(sites) == 0 {
			l.Enqueue(desc)
			pending++
			continue
		}
		for _, blocker := range sites {
			l.RecordDependency(desc.Name, blocker, desc)
		}
		blocked++
	}
	logger.Debug("Ledger seeded.", "pending", pending, "blocked", blocked)

	if err := l.DetectCycles(); err != nil {
		return fmt.Errorf("schema dependency graph is invalid: %w", err)
	}
	return nil
}

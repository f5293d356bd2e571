package carpenter

import (
	"context"
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/specialistvlad/typesmith/internal/ctxlog"
	"github.com/specialistvlad/typesmith/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// Resolver looks up the handle of an already-synthesized composite
// type by name. The registry's Lookup method satisfies it.
type Resolver func(name string) (*Handle, bool)

// reservedFieldNames are identifiers that collide with the schema
// notation's own keywords and therefore cannot be field names.
var reservedFieldNames = map[string]bool{
	"type":    true,
	"field":   true,
	"extends": true,
}

// typeKeywords are identifiers with a fixed meaning in type notation;
// a composite type cannot shadow them.
var typeKeywords = map[string]bool{
	"string": true,
	"number": true,
	"bool":   true,
	"any":    true,
	"list":   true,
	"map":    true,
	"set":    true,
	"object": true,
}

// Carpenter materializes fully-resolved descriptors into runtime type
// handles. It holds no per-build state; one instance serves a whole
// session.
type Carpenter struct {
	resolve Resolver
}

// New creates a Carpenter that resolves named references through the
// given resolver.
func New(resolve Resolver) *Carpenter {
	return &Carpenter{resolve: resolve}
}

// Build turns a descriptor whose dependencies have all been synthesized
// into a Handle. Fields inherited from the supertype are flattened
// ahead of the descriptor's own fields. Construction failures (reserved
// or duplicate field names, keyword-shadowing type names, references to
// types that are not actually built) are fatal to the session.
func (c *Carpenter) Build(ctx context.Context, desc *schema.Descriptor) (*Handle, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building runtime type.", "type", desc.Name, "field_count", len(desc.Fields))

	if desc.Name == "" {
		return nil, fmt.Errorf("descriptor has no type name: %w", errdefs.ErrInvalidArgument)
	}
	if typeKeywords[desc.Name] {
		return nil, fmt.Errorf("type name %q shadows a type keyword: %w", desc.Name, errdefs.ErrInvalidArgument)
	}

	var fields []ResolvedField
	if desc.Supertype != "" {
		super, ok := c.resolve(desc.Supertype)
		if !ok {
			return nil, fmt.Errorf("supertype %q of %q has not been synthesized: %w", desc.Supertype, desc.Name, errdefs.ErrFailedPrecondition)
		}
		fields = append(fields, super.fields...)
	}

	seen := make(map[string]bool, len(fields)+len(desc.Fields))
	for _, f := range fields {
		seen[f.Name] = true
	}

	for _, f := range desc.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("type %q has a field with an empty name: %w", desc.Name, errdefs.ErrInvalidArgument)
		}
		if reservedFieldNames[f.Name] {
			return nil, fmt.Errorf("field name %q in type %q is reserved: %w", f.Name, desc.Name, errdefs.ErrInvalidArgument)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("duplicate field %q in type %q: %w", f.Name, desc.Name, errdefs.ErrAlreadyExists)
		}
		seen[f.Name] = true

		ft, err := c.resolveRef(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q of type %q: %w", f.Name, desc.Name, err)
		}
		fields = append(fields, ResolvedField{Name: f.Name, Type: ft})
	}

	attrTypes := make(map[string]cty.Type, len(fields))
	for _, f := range fields {
		attrTypes[f.Name] = f.Type
	}

	handle := &Handle{
		name:      desc.Name,
		supertype: desc.Supertype,
		fields:    fields,
		objType:   cty.Object(attrTypes),
	}
	logger.Debug("Runtime type built.", "type", desc.Name, "shape", handle.objType.FriendlyName())
	return handle, nil
}

// resolveRef reduces a type reference to a concrete cty.Type, looking
// named composites up through the resolver.
func (c *Carpenter) resolveRef(r *schema.Ref) (cty.Type, error) {
	if r == nil {
		return cty.NilType, fmt.Errorf("missing type reference: %w", errdefs.ErrInvalidArgument)
	}
	switch r.Kind {
	case schema.RefConcrete:
		return r.Type, nil
	case schema.RefNamed:
		h, ok := c.resolve(r.Name)
		if !ok {
			return cty.NilType, fmt.Errorf("referenced type %q has not been synthesized: %w", r.Name, errdefs.ErrFailedPrecondition)
		}
		return h.Type(), nil
	case schema.RefList:
		elem, err := c.resolveRef(r.Elem)
		if err != nil {
			return cty.NilType, err
		}
		return cty.List(elem), nil
	case schema.RefMap:
		elem, err := c.resolveRef(r.Elem)
		if err != nil {
			return cty.NilType, err
		}
		return cty.Map(elem), nil
	case schema.RefSet:
		elem, err := c.resolveRef(r.Elem)
		if err != nil {
			return cty.NilType, err
		}
		return cty.Set(elem), nil
	case schema.RefObject:
		attrs := make(map[string]cty.Type, len(r.Attrs))
		for name, attr := range r.Attrs {
			at, err := c.resolveRef(attr)
			if err != nil {
				return cty.NilType, fmt.Errorf("in object attribute %q: %w", name, err)
			}
			attrs[name] = at
		}
		return cty.Object(attrs), nil
	default:
		return cty.NilType, fmt.Errorf("unknown reference kind %d: %w", r.Kind, errdefs.ErrInvalidArgument)
	}
}

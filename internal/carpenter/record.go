package carpenter

import (
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// ResolvedField is one slot of a synthesized type: the field name and
// its fully-resolved semantic type.
type ResolvedField struct {
	Name string
	Type cty.Type
}

// Handle is the runtime type produced for one descriptor: an ordered
// field table, the derived object type, and a factory for instances of
// that shape. Handles are immutable once built.
type Handle struct {
	name      string
	supertype string
	fields    []ResolvedField
	objType   cty.Type
}

// Name returns the synthesized type's name.
func (h *Handle) Name() string { return h.name }

// Supertype returns the name of the inherited composite, or "" if the
// type has none.
func (h *Handle) Supertype() string { return h.supertype }

// Fields returns a copy of the ordered field table, inherited fields
// first.
func (h *Handle) Fields() []ResolvedField {
	out := make([]ResolvedField, len(h.fields))
	copy(out, h.fields)
	return out
}

// Type returns the cty object type describing instances of this handle.
func (h *Handle) Type() cty.Type { return h.objType }

// Instantiate produces a record of this handle's shape from raw field
// values. Each supplied value is converted to the field's semantic
// type; fields not supplied become null of their type. A value keyed
// by a name the type does not declare is rejected.
func (h *Handle) Instantiate(values map[string]cty.Value) (*Record, error) {
	declared := make(map[string]bool, len(h.fields))
	for _, f := range h.fields {
		declared[f.Name] = true
	}
	for name := range values {
		if !declared[name] {
			return nil, fmt.Errorf("type %q has no field %q: %w", h.name, name, errdefs.ErrInvalidArgument)
		}
	}

	populated := make(map[string]cty.Value, len(h.fields))
	for _, f := range h.fields {
		raw, ok := values[f.Name]
		if !ok || raw.IsNull() {
			populated[f.Name] = cty.NullVal(f.Type)
			continue
		}
		converted, err := convert.Convert(raw, f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q of type %q: %w: %w", f.Name, h.name, err, errdefs.ErrInvalidArgument)
		}
		populated[f.Name] = converted
	}

	return &Record{handle: h, values: populated}, nil
}

// Record is one instance of a synthesized type: a generic name-indexed
// value container accessed through Get rather than per-type accessors.
type Record struct {
	handle *Handle
	values map[string]cty.Value
}

// Handle returns the runtime type this record was instantiated from.
func (r *Record) Handle() *Handle { return r.handle }

// Get returns the value of the named field. The second return is false
// when the record's type declares no such field.
func (r *Record) Get(name string) (cty.Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Value returns the record as a single cty object value, suitable for
// re-encoding.
func (r *Record) Value() cty.Value {
	return cty.ObjectVal(r.values)
}

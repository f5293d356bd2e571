package schema

import (
	"github.com/zclconf/go-cty/cty"
)

// RefKind discriminates the variants of a type reference.
type RefKind int

const (
	// RefConcrete is a fully-resolved semantic type (primitive, or a
	// composite shape that contains no named references).
	RefConcrete RefKind = iota
	// RefNamed is a reference to a composite type by name. The named
	// type may not have been synthesized yet.
	RefNamed
	// RefList is a list whose element type is another reference.
	RefList
	// RefMap is a map whose element type is another reference.
	RefMap
	// RefSet is a set whose element type is another reference.
	RefSet
	// RefObject is an inline object whose attributes are references.
	RefObject
)

// Ref is a semantic type reference appearing in a field or supertype
// position. It either carries a concrete cty.Type directly or points,
// possibly through collection wrappers, at composite types by name.
type Ref struct {
	// Kind selects which of the remaining fields are meaningful.
	Kind RefKind
	// Type is the resolved semantic type. Set only for RefConcrete.
	Type cty.Type
	// Name is the referenced composite type name. Set only for RefNamed.
	Name string
	// Elem is the element reference for RefList, RefMap and RefSet.
	Elem *Ref
	// Attrs are the attribute references for RefObject.
	Attrs map[string]*Ref
}

// ConcreteRef wraps an already-resolved cty.Type as a reference.
func ConcreteRef(t cty.Type) *Ref {
	return &Ref{Kind: RefConcrete, Type: t}
}

// NamedRef builds a reference to the composite type with the given name.
func NamedRef(name string) *Ref {
	return &Ref{Kind: RefNamed, Name: name}
}

// namedRefs appends, in reference order, every named composite this
// reference transitively mentions for which known reports false. One
// entry is appended per referencing site, so a type mentioned twice
// appears twice.
func (r *Ref) namedRefs(known func(string) bool, acc []string) []string {
	if r == nil {
		return acc
	}
	switch r.Kind {
	case RefNamed:
		if !known(r.Name) {
			acc = append(acc, r.Name)
		}
	case RefList, RefMap, RefSet:
		acc = r.Elem.namedRefs(known, acc)
	case RefObject:
		for _, attr := range sortedKeys(r.Attrs) {
			acc = r.Attrs[attr].namedRefs(known, acc)
		}
	}
	return acc
}

// Field is one named, typed slot of a composite record.
type Field struct {
	// Name is the field name, unique within its descriptor.
	Name string
	// Type is the semantic type reference for the field's values.
	Type *Ref
}

// Descriptor is the immutable description of one composite record to be
// synthesized: its name, its ordered fields, and an optional supertype
// whose fields it inherits. Descriptors are produced by the schema
// extractor and consumed opaquely by the ledger and the carpenter.
type Descriptor struct {
	// Name is globally unique within one synthesis session.
	Name string
	// Fields are ordered; order is preserved through synthesis.
	Fields []Field
	// Supertype optionally names a composite whose fields are
	// flattened ahead of this descriptor's own fields.
	Supertype string
}

// ReferenceSites returns one entry per site at which this descriptor
// references a composite type for which known reports false: the
// supertype position plus every field reference, in declaration order.
// Duplicates are preserved so callers can apply multiset accounting.
func (d *Descriptor) ReferenceSites(known func(string) bool) []string {
	var sites []string
	if d.Supertype != "" && !known(d.Supertype) {
		sites = append(sites, d.Supertype)
	}
	for _, f := range d.Fields {
		sites = f.Type.namedRefs(known, sites)
	}
	return sites
}

// Dependencies returns the distinct composite names this descriptor is
// blocked on, in first-reference order.
func (d *Descriptor) Dependencies(known func(string) bool) []string {
	seen := make(map[string]bool)
	var deps []string
	for _, name := range d.ReferenceSites(known) {
		if !seen[name] {
			seen[name] = true
			deps = append(deps, name)
		}
	}
	return deps
}

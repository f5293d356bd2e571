package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func noneKnown(string) bool { return false }

func knownSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestReferenceSites(t *testing.T) {
	t.Run("concrete fields reference nothing", func(t *testing.T) {
		d := &Descriptor{
			Name: "account",
			Fields: []Field{
				{Name: "id", Type: ConcreteRef(cty.String)},
				{Name: "balance", Type: ConcreteRef(cty.Number)},
			},
		}
		assert.Empty(t, d.ReferenceSites(noneKnown))
	})

	t.Run("one site per referencing field", func(t *testing.T) {
		d := &Descriptor{
			Name: "trade",
			Fields: []Field{
				{Name: "buyer", Type: NamedRef("party")},
				{Name: "seller", Type: NamedRef("party")},
			},
		}
		assert.Equal(t, []string{"party", "party"}, d.ReferenceSites(noneKnown))
	})

	t.Run("supertype is a referencing site", func(t *testing.T) {
		d := &Descriptor{
			Name:      "limit_order",
			Supertype: "order",
			Fields: []Field{
				{Name: "limit", Type: ConcreteRef(cty.Number)},
			},
		}
		assert.Equal(t, []string{"order"}, d.ReferenceSites(noneKnown))
	})

	t.Run("references inside collections and objects are found", func(t *testing.T) {
		d := &Descriptor{
			Name: "portfolio",
			Fields: []Field{
				{Name: "positions", Type: &Ref{Kind: RefList, Elem: NamedRef("position")}},
				{Name: "index", Type: &Ref{Kind: RefMap, Elem: &Ref{Kind: RefSet, Elem: NamedRef("tag")}}},
				{Name: "meta", Type: &Ref{Kind: RefObject, Attrs: map[string]*Ref{
					"owner":   NamedRef("party"),
					"created": ConcreteRef(cty.String),
				}}},
			},
		}
		assert.Equal(t, []string{"position", "tag", "party"}, d.ReferenceSites(noneKnown))
	})

	t.Run("known names are not sites", func(t *testing.T) {
		d := &Descriptor{
			Name:      "trade",
			Supertype: "contract",
			Fields: []Field{
				{Name: "buyer", Type: NamedRef("party")},
				{Name: "venue", Type: NamedRef("venue")},
			},
		}
		assert.Equal(t, []string{"venue"}, d.ReferenceSites(knownSet("contract", "party")))
	})
}

func TestDependencies(t *testing.T) {
	d := &Descriptor{
		Name:      "trade",
		Supertype: "contract",
		Fields: []Field{
			{Name: "buyer", Type: NamedRef("party")},
			{Name: "seller", Type: NamedRef("party")},
			{Name: "venue", Type: NamedRef("venue")},
		},
	}

	assert.Equal(t, []string{"contract", "party", "venue"}, d.Dependencies(noneKnown),
		"dependencies must be distinct and in first-reference order")
	assert.Empty(t, d.Dependencies(knownSet("contract", "party", "venue")))
}

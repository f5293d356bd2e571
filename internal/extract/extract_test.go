package extract

import (
	"context"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/specialistvlad/typesmith/internal/ledger"
	"github.com/specialistvlad/typesmith/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func noneKnown(string) bool { return false }

func TestParse(t *testing.T) {
	ctx := context.Background()

	t.Run("parses types and fields in declaration order", func(t *testing.T) {
		src := `
type "party" {
  field "name"    { type = string }
  field "balance" { type = number }
}

type "trade" {
  extends = "contract"
  field "buyer"  { type = party }
  field "legs"   { type = list(object({ id = string })) }
}
`
		descs, err := Parse(ctx, "test.hcl", []byte(src))
		require.NoError(t, err)
		require.Len(t, descs, 2)

		party := descs[0]
		assert.Equal(t, "party", party.Name)
		assert.Empty(t, party.Supertype)
		require.Len(t, party.Fields, 2)
		assert.Equal(t, "name", party.Fields[0].Name)
		assert.Equal(t, "balance", party.Fields[1].Name)
		assert.True(t, party.Fields[0].Type.Type.Equals(cty.String))

		trade := descs[1]
		assert.Equal(t, "trade", trade.Name)
		assert.Equal(t, "contract", trade.Supertype)
		require.Len(t, trade.Fields, 2)
		assert.Equal(t, schema.RefNamed, trade.Fields[0].Type.Kind)
		assert.Equal(t, "party", trade.Fields[0].Type.Name)
		assert.Equal(t, schema.RefList, trade.Fields[1].Type.Kind)
	})

	t.Run("rejects duplicate type names", func(t *testing.T) {
		src := `
type "party" {
  field "a" { type = string }
}
type "party" {
  field "b" { type = string }
}
`
		_, err := Parse(ctx, "test.hcl", []byte(src))
		require.Error(t, err)
		assert.ErrorIs(t, err, errdefs.ErrAlreadyExists)
	})

	t.Run("rejects malformed notation", func(t *testing.T) {
		src := `
type "party" {
  field "a" { type = frob(string) }
}
`
		_, err := Parse(ctx, "test.hcl", []byte(src))
		require.Error(t, err)
		assert.ErrorContains(t, err, `type "party", field "a"`)
	})

	t.Run("rejects invalid hcl", func(t *testing.T) {
		_, err := Parse(ctx, "test.hcl", []byte(`type "party" {`))
		assert.Error(t, err)
	})
}

func TestSeed(t *testing.T) {
	ctx := context.Background()

	parse := func(t *testing.T, src string) []*schema.Descriptor {
		t.Helper()
		descs, err := Parse(ctx, "test.hcl", []byte(src))
		require.NoError(t, err)
		return descs
	}

	t.Run("classifies descriptors as pending or blocked", func(t *testing.T) {
		descs := parse(t, `
type "party" {
  field "name" { type = string }
}
type "trade" {
  field "buyer"  { type = party }
  field "seller" { type = party }
}
`)
		l := ledger.New()
		require.NoError(t, Seed(ctx, l, descs, noneKnown))

		assert.Equal(t, 1, l.Size(), "party has no unresolved references")
		assert.Equal(t, []string{"trade"}, l.Blocked())
		assert.Equal(t, []string{"party"}, l.BlockedOn("trade"))
	})

	t.Run("already-known types do not block", func(t *testing.T) {
		descs := parse(t, `
type "trade" {
  field "buyer" { type = party }
}
`)
		l := ledger.New()
		known := func(name string) bool { return name == "party" }
		require.NoError(t, Seed(ctx, l, descs, known))

		assert.Equal(t, 1, l.Size())
		assert.Empty(t, l.Blocked())
	})

	t.Run("supertype references block like field references", func(t *testing.T) {
		descs := parse(t, `
type "limit_order" {
  extends = "order"
  field "limit" { type = number }
}
`)
		l := ledger.New()
		require.NoError(t, Seed(ctx, l, descs, noneKnown))
		assert.Equal(t, []string{"order"}, l.BlockedOn("limit_order"))
	})

	t.Run("rejects cyclic schemas", func(t *testing.T) {
		descs := parse(t, `
type "a" {
  field "peer" { type = b }
}
type "b" {
  field "peer" { type = a }
}
`)
		l := ledger.New()
		err := Seed(ctx, l, descs, noneKnown)
		require.Error(t, err)
		assert.ErrorContains(t, err, "cycle")
	})
}

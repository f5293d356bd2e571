// Package decode is the consumer side of a synthesis session: it looks
// synthesized runtime types up by name and populates instances of them
// from raw JSON payload bytes.
package decode

import (
	"context"
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/specialistvlad/typesmith/internal/carpenter"
	"github.com/specialistvlad/typesmith/internal/ctxlog"
	"github.com/specialistvlad/typesmith/internal/registry"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Decoder instantiates records of synthesized types from payload
// bytes. It only reads the registry; a decoder never triggers
// synthesis itself.
type Decoder struct {
	reg *registry.Registry
}

// New creates a Decoder over the given registry.
func New(reg *registry.Registry) *Decoder {
	return &Decoder{reg: reg}
}

// Decode parses a JSON payload and instantiates a record of the named
// synthesized type. Field values are converted to the type's declared
// field types; fields the payload omits come back null. Requesting a
// name the driver has not resolved is a usage error and reported as
// such.
func (d *Decoder) Decode(ctx context.Context, typeName string, payload []byte) (*carpenter.Record, error) {
	logger := ctxlog.FromContext(ctx)

	handle, ok := d.reg.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("cannot materialize remote type %q: not synthesized in this session: %w", typeName, errdefs.ErrNotFound)
	}

	impliedType, err := ctyjson.ImpliedType(payload)
	if err != nil {
		return nil, fmt.Errorf("payload for type %q is not valid JSON: %w", typeName, err)
	}
	if !impliedType.IsObjectType() {
		return nil, fmt.Errorf("payload for type %q must be a JSON object, got %s: %w", typeName, impliedType.FriendlyName(), errdefs.ErrInvalidArgument)
	}

	raw, err := ctyjson.Unmarshal(payload, impliedType)
	if err != nil {
		return nil, fmt.Errorf("decoding payload for type %q: %w", typeName, err)
	}

	logger.Debug("Instantiating record from payload.", "type", typeName, "attributes", len(raw.Type().AttributeTypes()))
	record, err := handle.Instantiate(raw.AsValueMap())
	if err != nil {
		return nil, err
	}
	return record, nil
}

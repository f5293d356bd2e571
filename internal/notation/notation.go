// Package notation parses HCL type expressions (e.g. `string`,
// `list(number)`, `object({ id = string })`) into schema type
// references. Bare identifiers that are not type keywords are taken as
// named references to composite types, which may not exist yet when
// the expression is parsed.
package notation

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/typesmith/internal/ctxlog"
	"github.com/specialistvlad/typesmith/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// ParseTypeExpr converts an HCL type expression into a schema
// reference.
func ParseTypeExpr(ctx context.Context, expr hcl.Expression) (*schema.Ref, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		return nil, fmt.Errorf("missing type expression")
	}

	// A type switch over the concrete hclsyntax expression types is the
	// supported way to inspect an unevaluated hcl.Expression.
	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type expression as a constructor call.", "call", v.Name)

		if v.Name == "object" {
			if len(v.Args) != 1 {
				return nil, fmt.Errorf("the object() type constructor requires exactly one argument (the object definition), got %d", len(v.Args))
			}

			objExpr, ok := v.Args[0].(*hclsyntax.ObjectConsExpr)
			if !ok {
				return nil, fmt.Errorf("the argument to object() must be an object literal like { key = type, ... }, got %T", v.Args[0])
			}

			attrs := make(map[string]*schema.Ref, len(objExpr.Items))
			for _, item := range objExpr.Items {
				key := objectKeyName(item.KeyExpr)
				if key == "" {
					return nil, fmt.Errorf("invalid key in object type definition: keys must be simple identifiers or quoted strings")
				}
				attrRef, err := ParseTypeExpr(ctx, item.ValueExpr)
				if err != nil {
					return nil, fmt.Errorf("in object attribute %q: %w", key, err)
				}
				attrs[key] = attrRef
			}
			return &schema.Ref{Kind: schema.RefObject, Attrs: attrs}, nil
		}

		if len(v.Args) != 1 {
			return nil, fmt.Errorf("type constructors (list, map, set) require exactly one argument, got %d", len(v.Args))
		}

		elem, err := ParseTypeExpr(ctx, v.Args[0])
		if err != nil {
			return nil, err
		}
		if elem.Kind == schema.RefConcrete && elem.Type == cty.DynamicPseudoType {
			return nil, fmt.Errorf("collection types cannot contain type 'any'")
		}

		switch v.Name {
		case "list":
			return &schema.Ref{Kind: schema.RefList, Elem: elem}, nil
		case "map":
			return &schema.Ref{Kind: schema.RefMap, Elem: elem}, nil
		case "set":
			return &schema.Ref{Kind: schema.RefSet, Elem: elem}, nil
		default:
			return nil, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return nil, fmt.Errorf("invalid type reference: traversal path is not a single identifier")
		}
		rootName := v.Traversal.RootName()
		switch rootName {
		case "string":
			return schema.ConcreteRef(cty.String), nil
		case "number":
			return schema.ConcreteRef(cty.Number), nil
		case "bool":
			return schema.ConcreteRef(cty.Bool), nil
		case "any":
			return schema.ConcreteRef(cty.DynamicPseudoType), nil
		case "list", "map", "set", "object":
			return nil, fmt.Errorf("type constructor %q used without arguments", rootName)
		default:
			logger.Debug("Parsing type expression as a named composite reference.", "name", rootName)
			return schema.NamedRef(rootName), nil
		}

	default:
		return nil, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

// objectKeyName extracts the attribute name from an object literal key
// expression, accepting bare identifiers and single-part quoted
// strings.
func objectKeyName(expr hclsyntax.Expression) string {
	keyExpr, ok := expr.(*hclsyntax.ObjectConsKeyExpr)
	if !ok {
		return ""
	}
	switch kexpr := keyExpr.Wrapped.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(kexpr.Traversal) == 1 {
			return kexpr.Traversal.RootName()
		}
	case *hclsyntax.TemplateExpr:
		if len(kexpr.Parts) == 1 {
			if lit, isLit := kexpr.Parts[0].(*hclsyntax.LiteralValueExpr); isLit && lit.Val.Type().Equals(cty.String) {
				return lit.Val.AsString()
			}
		}
	}
	return ""
}

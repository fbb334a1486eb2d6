// This file contains the logic for parsing HCL type expressions (e.g., `int`,
// `list(string)`, `map(string, Point)`) into descriptor names.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/dynrefl/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// typeAliases maps HCL-flavored keywords onto Go descriptor names.
var typeAliases = map[string]string{
	"number": "float64",
	"byte":   "uint8",
	"rune":   "int32",
}

// typeExprToName converts an HCL type expression into the name of the
// descriptor it denotes. Bare identifiers name a type directly, quoted
// strings are taken verbatim, and the constructors list(T), set(T), map(V),
// map(K, V) and ptr(T) build composite names.
func typeExprToName(ctx context.Context, expr hcl.Expression) (string, error) {
	logger := ctxlog.FromContext(ctx)

	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return "", fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		name := v.Traversal.RootName()
		if name == "any" {
			return "", fmt.Errorf("type 'any' has no descriptor")
		}
		if alias, ok := typeAliases[name]; ok {
			name = alias
		}
		logger.Debug("Parsed type keyword.", "keyword", v.Traversal.RootName(), "type", name)
		return name, nil

	case *hclsyntax.TemplateExpr:
		if len(v.Parts) == 1 {
			if lit, ok := v.Parts[0].(*hclsyntax.LiteralValueExpr); ok && lit.Val.Type().Equals(cty.String) {
				return lit.Val.AsString(), nil
			}
		}
		return "", fmt.Errorf("quoted type names must be plain strings without interpolation")

	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type expression as a function call.", "call", v.Name)
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			name, err := typeExprToName(ctx, a)
			if err != nil {
				return "", fmt.Errorf("in %s(): %w", v.Name, err)
			}
			args[i] = name
		}

		switch {
		case v.Name == "map" && len(args) == 2:
			return args[0] + ":" + args[1] + "{}", nil
		case len(args) != 1:
			return "", fmt.Errorf("type constructor %s() requires exactly one argument, got %d", v.Name, len(args))
		}

		switch v.Name {
		case "list":
			return args[0] + "[]", nil
		case "set":
			return args[0] + "{}", nil
		case "map":
			return "string:" + args[0] + "{}", nil
		case "ptr":
			return args[0] + "*", nil
		default:
			return "", fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	default:
		return "", fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

// typeListToNames converts a tuple of type expressions, as used by the
// `params` attribute.
func typeListToNames(ctx context.Context, expr hcl.Expression) ([]string, error) {
	exprs, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, fmt.Errorf("params must be a list of types: %w", diags)
	}
	names := make([]string, 0, len(exprs))
	for i, e := range exprs {
		name, err := typeExprToName(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("in parameter %d: %w", i, err)
		}
		names = append(names, name)
	}
	return names, nil
}

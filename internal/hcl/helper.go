package hcl

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/dynrefl/internal/ctxlog"
)

// isExprDefined reports whether an optional attribute was written in the
// source. gohcl fills omitted hcl.Expression fields with zero-width
// expressions rather than nil.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	if rng.End.Byte > rng.Start.Byte {
		return true
	}
	ctxlog.FromContext(ctx).Debug("Optional attribute omitted.", "attribute", attrName, "hcl_range", rng.String())
	return false
}

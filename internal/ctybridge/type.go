package ctybridge

import (
	"fmt"

	"github.com/vk/dynrefl/internal/refl"
	"github.com/zclconf/go-cty/cty"
)

// maxDepth bounds the expansion of self-referential shapes.
const maxDepth = 32

// CtyType returns the cty type values of t convert to.
func CtyType(t *refl.Type) (cty.Type, error) {
	return ctyType(t, 0)
}

func ctyType(t *refl.Type, depth int) (cty.Type, error) {
	if depth > maxDepth {
		return cty.NilType, unsupported(t, "type nests too deeply")
	}
	switch t.Kind() {
	case refl.KindArithmetic:
		a, _ := t.AsArithmetic()
		if a.Kind() == refl.ArithBool {
			return cty.Bool, nil
		}
		return cty.Number, nil

	case refl.KindEnum:
		return cty.String, nil

	case refl.KindPointer:
		p, _ := t.AsPointer()
		return ctyType(p.Elem(), depth+1)

	case refl.KindVector, refl.KindSet:
		c, _ := t.AsContainer()
		et, err := ctyType(c.Elem(), depth+1)
		if err != nil {
			return cty.NilType, err
		}
		if t.Kind() == refl.KindSet {
			return cty.Set(et), nil
		}
		return cty.List(et), nil

	case refl.KindMap:
		c, _ := t.AsContainer()
		if !isString(c.Key()) {
			return cty.NilType, unsupported(t, "map keys must be string")
		}
		et, err := ctyType(c.Elem(), depth+1)
		if err != nil {
			return cty.NilType, err
		}
		return cty.Map(et), nil

	case refl.KindClass:
		if isString(t) {
			return cty.String, nil
		}
		cls, _ := t.AsClass()
		vars, conts := cls.VisibleVariables(), cls.VisibleContainers()
		if len(vars) == 0 && len(conts) == 0 {
			return cty.NilType, unsupported(t, "class has no data members")
		}
		attrs := make(map[string]cty.Type, len(vars)+len(conts))
		for _, v := range vars {
			at, err := ctyType(v.Type(), depth+1)
			if err != nil {
				return cty.NilType, fmt.Errorf("in member %q: %w", v.Name(), err)
			}
			attrs[v.Name()] = at
		}
		for _, m := range conts {
			at, err := ctyType(m.Type(), depth+1)
			if err != nil {
				return cty.NilType, fmt.Errorf("in container %q: %w", m.Name(), err)
			}
			attrs[m.Name()] = at
		}
		return cty.Object(attrs), nil
	}
	return cty.NilType, unsupported(t, "no cty form")
}

var stringType = refl.TypeOf[string]()

func isString(t *refl.Type) bool { return t == stringType }

func unsupported(t *refl.Type, detail string) error {
	return refl.Errorf("cty", t, "", refl.ErrUnsupportedOperation, "%s", detail)
}

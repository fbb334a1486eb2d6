package ctybridge

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/dynrefl/internal/ctxlog"
	"github.com/vk/dynrefl/internal/refl"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ToCty converts the value held by a into a cty.Value of type CtyType(a.Type()).
func ToCty(ctx context.Context, a *refl.Any) (cty.Value, error) {
	if a.Empty() {
		return cty.NilVal, refl.Errorf("cty", nil, "", refl.ErrEmpty, "")
	}
	ty, err := CtyType(a.Type())
	if err != nil {
		return cty.NilVal, err
	}
	ctxlog.FromContext(ctx).Debug("Converting value to cty.", "type", a.Type().Name(), "cty_type", ty.FriendlyName())
	return encode(a.Type(), ty, a.Value())
}

func encode(t *refl.Type, ty cty.Type, v reflect.Value) (cty.Value, error) {
	switch t.Kind() {
	case refl.KindArithmetic:
		return gocty.ToCtyValue(v.Interface(), ty)

	case refl.KindEnum:
		e, _ := t.AsEnum()
		n := intOf(v)
		name, ok := e.NameOf(n)
		if !ok {
			return cty.NilVal, refl.Errorf("cty", t, "", refl.ErrMemberNotFound, "no item with value %d", n)
		}
		return cty.StringVal(name), nil

	case refl.KindPointer:
		if v.IsNil() {
			return cty.NullVal(ty), nil
		}
		p, _ := t.AsPointer()
		return encode(p.Elem(), ty, v.Elem())

	case refl.KindVector, refl.KindSet:
		c, _ := t.AsContainer()
		ety := ty.ElementType()
		if v.Len() == 0 {
			if ty.IsSetType() {
				return cty.SetValEmpty(ety), nil
			}
			return cty.ListValEmpty(ety), nil
		}
		elems := make([]cty.Value, 0, v.Len())
		if t.Kind() == refl.KindVector {
			for i := 0; i < v.Len(); i++ {
				ev, err := encode(c.Elem(), ety, v.Index(i))
				if err != nil {
					return cty.NilVal, fmt.Errorf("in element %d: %w", i, err)
				}
				elems = append(elems, ev)
			}
			return cty.ListVal(elems), nil
		}
		it := v.MapRange()
		for it.Next() {
			ev, err := encode(c.Elem(), ety, it.Key())
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, ev)
		}
		return cty.SetVal(elems), nil

	case refl.KindMap:
		c, _ := t.AsContainer()
		ety := ty.ElementType()
		if v.Len() == 0 {
			return cty.MapValEmpty(ety), nil
		}
		out := make(map[string]cty.Value, v.Len())
		it := v.MapRange()
		for it.Next() {
			k := it.Key().String()
			ev, err := encode(c.Elem(), ety, it.Value())
			if err != nil {
				return cty.NilVal, fmt.Errorf("in key %q: %w", k, err)
			}
			out[k] = ev
		}
		return cty.MapVal(out), nil

	case refl.KindClass:
		if isString(t) {
			return cty.StringVal(v.String()), nil
		}
		return encodeObject(t, ty, v)
	}
	return cty.NilVal, unsupported(t, "no cty form")
}

func encodeObject(t *refl.Type, ty cty.Type, v reflect.Value) (cty.Value, error) {
	cls, _ := t.AsClass()
	inst := refl.RefValue(addressable(v), true)
	attrs := make(map[string]cty.Value)

	for _, mv := range cls.VisibleVariables() {
		ref, err := mv.Ref(inst)
		if err != nil {
			return cty.NilVal, err
		}
		av, err := encode(mv.Type(), ty.AttributeType(mv.Name()), ref.Value())
		if err != nil {
			return cty.NilVal, fmt.Errorf("in member %q: %w", mv.Name(), err)
		}
		attrs[mv.Name()] = av
	}
	for _, mc := range cls.VisibleContainers() {
		ref, err := mc.Ref(inst)
		if err != nil {
			return cty.NilVal, err
		}
		av, err := encode(mc.Type(), ty.AttributeType(mc.Name()), ref.Value())
		if err != nil {
			return cty.NilVal, fmt.Errorf("in container %q: %w", mc.Name(), err)
		}
		attrs[mc.Name()] = av
	}
	return cty.ObjectVal(attrs), nil
}

// addressable returns a pointer to v, copying v when it is not addressable.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p
}

func intOf(v reflect.Value) int64 {
	if v.CanInt() {
		return v.Int()
	}
	return int64(v.Uint())
}

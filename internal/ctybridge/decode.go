package ctybridge

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/dynrefl/internal/ctxlog"
	"github.com/vk/dynrefl/internal/refl"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// FromCty builds an Any of descriptor t from val, owning fresh storage in
// Move mode. val is converted to
// CtyType(t) first, so a tuple literal decodes into a vector and an object
// literal into a map. Objects must carry every member attribute; null
// attributes leave zero values.
func FromCty(ctx context.Context, val cty.Value, t *refl.Type) (*refl.Any, error) {
	if t.GoType() == nil {
		return nil, refl.Errorf("cty", t, "", refl.ErrCapabilityMissing, "descriptor has no Go type")
	}
	ty, err := CtyType(t)
	if err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx).With("type", t.Name())
	logger.Debug("Decoding cty value.", "from", val.Type().FriendlyName(), "to", ty.FriendlyName())

	conv, err := convert.Convert(val, ty)
	if err != nil {
		return nil, refl.Errorf("cty", t, "", refl.ErrTypeMismatch, "cannot convert %s to %s: %v", val.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	p := reflect.New(t.GoType())
	if err := decode(conv, t, p.Elem()); err != nil {
		return nil, err
	}
	return refl.AdoptValue(p), nil
}

// DecodeInto overwrites the value held by dst with val.
func DecodeInto(ctx context.Context, val cty.Value, dst *refl.Any) error {
	ptr, err := dst.Pointer()
	if err != nil {
		return err
	}
	a, err := FromCty(ctx, val, dst.Type())
	if err != nil {
		return err
	}
	ptr.Elem().Set(a.Value())
	return nil
}

func decode(val cty.Value, t *refl.Type, dst reflect.Value) error {
	if val.IsNull() || !val.IsKnown() {
		return nil
	}
	switch t.Kind() {
	case refl.KindArithmetic:
		return gocty.FromCtyValue(val, dst.Addr().Interface())

	case refl.KindEnum:
		e, _ := t.AsEnum()
		n, ok := e.Lookup(val.AsString())
		if !ok {
			return refl.Errorf("cty", t, val.AsString(), refl.ErrMemberNotFound, "")
		}
		if dst.CanInt() {
			dst.SetInt(n)
		} else {
			dst.SetUint(uint64(n))
		}
		return nil

	case refl.KindPointer:
		p, _ := t.AsPointer()
		elem := reflect.New(dst.Type().Elem())
		if err := decode(val, p.Elem(), elem.Elem()); err != nil {
			return err
		}
		dst.Set(elem)
		return nil

	case refl.KindVector:
		c, _ := t.AsContainer()
		out := reflect.MakeSlice(dst.Type(), 0, val.LengthInt())
		it := val.ElementIterator()
		for i := 0; it.Next(); i++ {
			_, ev := it.Element()
			e := reflect.New(dst.Type().Elem()).Elem()
			if err := decode(ev, c.Elem(), e); err != nil {
				return fmt.Errorf("in element %d: %w", i, err)
			}
			out = reflect.Append(out, e)
		}
		dst.Set(out)
		return nil

	case refl.KindSet:
		c, _ := t.AsContainer()
		out := reflect.MakeMapWithSize(dst.Type(), val.LengthInt())
		present := reflect.Zero(dst.Type().Elem())
		it := val.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			k := reflect.New(dst.Type().Key()).Elem()
			if err := decode(ev, c.Elem(), k); err != nil {
				return err
			}
			out.SetMapIndex(k, present)
		}
		dst.Set(out)
		return nil

	case refl.KindMap:
		c, _ := t.AsContainer()
		out := reflect.MakeMapWithSize(dst.Type(), val.LengthInt())
		for k, ev := range val.AsValueMap() {
			e := reflect.New(dst.Type().Elem()).Elem()
			if err := decode(ev, c.Elem(), e); err != nil {
				return fmt.Errorf("in key %q: %w", k, err)
			}
			kv := reflect.New(dst.Type().Key()).Elem()
			kv.SetString(k)
			out.SetMapIndex(kv, e)
		}
		dst.Set(out)
		return nil

	case refl.KindClass:
		if isString(t) {
			dst.SetString(val.AsString())
			return nil
		}
		return decodeObject(val, t, dst)
	}
	return unsupported(t, "no cty form")
}

func decodeObject(val cty.Value, t *refl.Type, dst reflect.Value) error {
	cls, _ := t.AsClass()
	inst := refl.RefValue(dst.Addr(), false)
	attrs := val.AsValueMap()

	for _, mv := range cls.VisibleVariables() {
		av, ok := attrs[mv.Name()]
		if !ok {
			continue
		}
		if err := decodeMember(inst, mv.Name(), mv.Type(), av, mv.Ref); err != nil {
			return err
		}
	}
	for _, mc := range cls.VisibleContainers() {
		av, ok := attrs[mc.Name()]
		if !ok {
			continue
		}
		if err := decodeMember(inst, mc.Name(), mc.Type(), av, mc.Ref); err != nil {
			return err
		}
	}
	return nil
}

func decodeMember(inst *refl.Any, name string, t *refl.Type, val cty.Value, ref func(*refl.Any) (*refl.Any, error)) error {
	r, err := ref(inst)
	if err != nil {
		return err
	}
	ptr, err := r.Pointer()
	if err != nil {
		return err
	}
	if err := decode(val, t, ptr.Elem()); err != nil {
		return fmt.Errorf("in member %q: %w", name, err)
	}
	return nil
}

package ctybridge

import (
	"context"
	"sort"

	"github.com/vk/dynrefl/internal/refl"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// MarshalJSON renders the value held by a as JSON through its cty form.
func MarshalJSON(ctx context.Context, a *refl.Any) ([]byte, error) {
	v, err := ToCty(ctx, a)
	if err != nil {
		return nil, err
	}
	return ctyjson.Marshal(v, v.Type())
}

// UnmarshalJSON decodes JSON into a new owned Any of descriptor t.
func UnmarshalJSON(ctx context.Context, data []byte, t *refl.Type) (*refl.Any, error) {
	ty, err := CtyType(t)
	if err != nil {
		return nil, err
	}
	v, err := ctyjson.Unmarshal(data, ty)
	if err != nil {
		return nil, refl.Errorf("cty", t, "", refl.ErrTypeMismatch, "%v", err)
	}
	return FromCty(ctx, v, t)
}

// Describe summarizes a descriptor as a cty object: its name and kind plus
// kind-specific detail (enum items, class members, container element types).
func Describe(t *refl.Type) cty.Value {
	attrs := map[string]cty.Value{
		"name": cty.StringVal(t.Name()),
		"kind": cty.StringVal(t.Kind().String()),
	}
	switch t.Kind() {
	case refl.KindArithmetic:
		a, _ := t.AsArithmetic()
		attrs["arithmetic"] = cty.StringVal(a.Kind().String())
		attrs["signed"] = cty.BoolVal(a.Signed())

	case refl.KindEnum:
		e, _ := t.AsEnum()
		attrs["width"] = cty.NumberIntVal(int64(e.Width()))
		items := make(map[string]cty.Value)
		for _, it := range e.Items() {
			if _, dup := items[it.Name]; !dup {
				items[it.Name] = cty.NumberIntVal(it.Value)
			}
		}
		attrs["items"] = mapOrEmpty(items, cty.Number)

	case refl.KindPointer:
		p, _ := t.AsPointer()
		attrs["elem"] = cty.StringVal(p.Elem().Name())

	case refl.KindVector, refl.KindSet, refl.KindMap:
		c, _ := t.AsContainer()
		attrs["elem"] = cty.StringVal(c.Elem().Name())
		if c.Key() != nil {
			attrs["key"] = cty.StringVal(c.Key().Name())
		}

	case refl.KindClass:
		cls, _ := t.AsClass()
		bases := make([]cty.Value, 0)
		for _, b := range cls.Bases() {
			bases = append(bases, cty.StringVal(b.Name()))
		}
		attrs["bases"] = listOrEmpty(bases, cty.String)

		vars := make(map[string]cty.Value)
		for _, v := range cls.Variables() {
			vars[v.Name()] = cty.StringVal(v.Type().Name())
		}
		attrs["variables"] = mapOrEmpty(vars, cty.String)

		conts := make(map[string]cty.Value)
		for _, c := range cls.Containers() {
			conts[c.Name()] = cty.StringVal(c.Type().Name())
		}
		attrs["containers"] = mapOrEmpty(conts, cty.String)

		fns := make([]cty.Value, 0)
		for _, f := range cls.Functions() {
			params := make([]cty.Value, 0, f.Arity())
			for _, p := range f.Params() {
				params = append(params, cty.StringVal(p.Name()))
			}
			fns = append(fns, cty.ObjectVal(map[string]cty.Value{
				"name":    cty.StringVal(f.Name()),
				"returns": cty.StringVal(f.Return().Name()),
				"params":  listOrEmpty(params, cty.String),
				"const":   cty.BoolVal(f.Const()),
			}))
		}
		attrs["functions"] = cty.TupleVal(fns)
	}
	return cty.ObjectVal(attrs)
}

// DumpJSON renders Describe for each type, ordered by name, as a JSON array.
func DumpJSON(types []*refl.Type) ([]byte, error) {
	sorted := append([]*refl.Type(nil), types...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })

	vals := make([]cty.Value, len(sorted))
	for i, t := range sorted {
		vals[i] = Describe(t)
	}
	v := cty.TupleVal(vals)
	return ctyjson.Marshal(v, v.Type())
}

func mapOrEmpty(m map[string]cty.Value, elem cty.Type) cty.Value {
	if len(m) == 0 {
		return cty.MapValEmpty(elem)
	}
	return cty.MapVal(m)
}

func listOrEmpty(l []cty.Value, elem cty.Type) cty.Value {
	if len(l) == 0 {
		return cty.ListValEmpty(elem)
	}
	return cty.ListVal(l)
}

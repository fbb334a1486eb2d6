package app

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/vk/dynrefl/internal/ctybridge"
	"github.com/vk/dynrefl/internal/refl"
	"golang.org/x/exp/maps"
)

// Report writes every registered type to the app's output in the
// configured format.
func (a *App) Report() error {
	types := maps.Values(refl.AllTypes())
	if a.config.OutputFormat == "json" {
		data, err := ctybridge.DumpJSON(types)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.outW, string(data))
		return err
	}

	w := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "NAME\tKIND\tDETAIL"); err != nil {
		return err
	}
	for _, name := range refl.TypeNames() {
		t := refl.TypeByName(name)
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", name, t.Kind(), detail(t)); err != nil {
			return err
		}
	}
	return w.Flush()
}

// detail renders the kind-specific part of a type as a single line.
func detail(t *refl.Type) string {
	switch t.Kind() {
	case refl.KindArithmetic:
		ar, _ := t.AsArithmetic()
		if ar.Signed() {
			return ar.Kind().String() + " signed"
		}
		return ar.Kind().String()

	case refl.KindEnum:
		e, _ := t.AsEnum()
		items := make([]string, 0, len(e.Items()))
		for _, it := range e.Items() {
			items = append(items, fmt.Sprintf("%s=%d", it.Name, it.Value))
		}
		return fmt.Sprintf("width=%d items=%s", e.Width(), strings.Join(items, ","))

	case refl.KindPointer:
		p, _ := t.AsPointer()
		return "-> " + p.Elem().Name()

	case refl.KindVector, refl.KindSet, refl.KindMap:
		c, _ := t.AsContainer()
		if c.Key() != nil {
			return fmt.Sprintf("key=%s elem=%s", c.Key().Name(), c.Elem().Name())
		}
		return "elem=" + c.Elem().Name()

	case refl.KindClass:
		cls, _ := t.AsClass()
		var parts []string
		if bases := cls.Bases(); len(bases) > 0 {
			names := make([]string, len(bases))
			for i, b := range bases {
				names[i] = b.Name()
			}
			parts = append(parts, "bases="+strings.Join(names, ","))
		}
		for _, v := range cls.Variables() {
			parts = append(parts, fmt.Sprintf("%s:%s", v.Name(), v.Type().Name()))
		}
		for _, c := range cls.Containers() {
			parts = append(parts, fmt.Sprintf("%s:%s", c.Name(), c.Type().Name()))
		}
		for _, f := range cls.Functions() {
			parts = append(parts, signature(f))
		}
		return strings.Join(parts, " ")
	}
	return ""
}

func signature(f *refl.MemberFunction) string {
	params := make([]string, 0, f.Arity())
	for _, p := range f.Params() {
		params = append(params, p.Name())
	}
	s := fmt.Sprintf("%s(%s) %s", f.Name(), strings.Join(params, ","), f.Return().Name())
	if f.Const() {
		s += " const"
	}
	return s
}

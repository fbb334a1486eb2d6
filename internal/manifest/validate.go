package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/dynrefl/internal/config"
	"github.com/vk/dynrefl/internal/ctxlog"
	"github.com/vk/dynrefl/internal/refl"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Options tunes Validate.
type Options struct {
	// Strict also reports members registered from Go code that the
	// manifest does not declare.
	Strict bool
}

// Validate checks every class and enum declaration of m against the
// registry. It checks the presence of declared bases and members and the
// equality of declared and registered type names. All problems are reported
// together in one error.
func Validate(ctx context.Context, m *config.Model, opts Options) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	enumNames := maps.Keys(m.Enums)
	slices.Sort(enumNames)
	for _, name := range enumNames {
		errs = append(errs, validateEnum(m.Enums[name])...)
	}

	classNames := maps.Keys(m.Classes)
	slices.Sort(classNames)
	for _, name := range classNames {
		def := m.Classes[name]
		logger.Debug("Validating class declaration.", "class", name, "source", def.Source)
		errs = append(errs, validateClass(def, opts)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("manifest validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func validateEnum(def *config.Enum) []string {
	t := refl.TypeByName(def.Name)
	if t == nil {
		return []string{fmt.Sprintf("enum '%s': not registered", def.Name)}
	}
	e, ok := t.AsEnum()
	if !ok {
		return []string{fmt.Sprintf("enum '%s': registered as %s", def.Name, t.Kind())}
	}

	var errs []string
	if e.Width() != def.Width {
		errs = append(errs, fmt.Sprintf("enum '%s': width mismatch. Manifest declares %d but registered width is %d", def.Name, def.Width, e.Width()))
	}
	for _, it := range def.Items {
		v, ok := e.Lookup(it.Name)
		switch {
		case !ok:
			errs = append(errs, fmt.Sprintf("enum '%s': manifest declares item '%s' which is not registered", def.Name, it.Name))
		case v != it.Value:
			errs = append(errs, fmt.Sprintf("enum '%s', item '%s': value mismatch. Manifest declares %d but registered value is %d", def.Name, it.Name, it.Value, v))
		}
	}
	return errs
}

func validateClass(def *config.Class, opts Options) []string {
	t := refl.TypeByName(def.Name)
	if t == nil {
		return []string{fmt.Sprintf("class '%s': not registered", def.Name)}
	}
	cls, ok := t.AsClass()
	if !ok {
		return []string{fmt.Sprintf("class '%s': registered as %s", def.Name, t.Kind())}
	}

	var errs []string
	for _, b := range def.Bases {
		bt := refl.TypeByName(b)
		if bt == nil || !slices.Contains(cls.Bases(), bt) {
			errs = append(errs, fmt.Sprintf("class '%s': manifest declares base '%s' which is not a registered base", def.Name, b))
		}
	}

	for _, v := range def.Variables {
		mv, ok := cls.FindVariable(v.Name)
		if !ok {
			errs = append(errs, fmt.Sprintf("class '%s': manifest declares variable '%s' which is not registered", def.Name, v.Name))
			continue
		}
		if got := mv.Type().Name(); got != v.Type {
			errs = append(errs, typeMismatch(def.Name, "variable", v.Name, v.Type, got))
		}
	}

	for _, c := range def.Containers {
		mc, ok := cls.FindContainer(c.Name)
		if !ok {
			errs = append(errs, fmt.Sprintf("class '%s': manifest declares container '%s' which is not registered", def.Name, c.Name))
			continue
		}
		if got := mc.Type().Name(); got != c.Type {
			errs = append(errs, typeMismatch(def.Name, "container", c.Name, c.Type, got))
		}
	}

	for _, f := range def.Functions {
		errs = append(errs, validateFunction(def.Name, cls, f)...)
	}

	if opts.Strict {
		errs = append(errs, undeclared(def, cls)...)
	}
	return errs
}

func validateFunction(class string, cls *refl.Class, f *config.Function) []string {
	mf, ok := cls.FindFunction(f.Name)
	if !ok {
		return []string{fmt.Sprintf("class '%s': manifest declares function '%s' which is not registered", class, f.Name)}
	}

	var errs []string
	if f.Returns != "" && mf.Return().Name() != f.Returns {
		errs = append(errs, typeMismatch(class, "function", f.Name+" return", f.Returns, mf.Return().Name()))
	}
	if f.Params != nil {
		got := make([]string, mf.Arity())
		for i, p := range mf.Params() {
			got[i] = p.Name()
		}
		if !slices.Equal(got, f.Params) {
			errs = append(errs, fmt.Sprintf("class '%s', function '%s': parameter mismatch. Manifest declares (%s) but registered function takes (%s)",
				class, f.Name, strings.Join(f.Params, ", "), strings.Join(got, ", ")))
		}
	}
	if f.Const != nil && *f.Const != mf.Const() {
		errs = append(errs, fmt.Sprintf("class '%s', function '%s': manifest declares const=%t but registered function has const=%t", class, f.Name, *f.Const, mf.Const()))
	}
	return errs
}

func undeclared(def *config.Class, cls *refl.Class) []string {
	declared := make(map[string]bool)
	for _, v := range def.Variables {
		declared["variable "+v.Name] = true
	}
	for _, c := range def.Containers {
		declared["container "+c.Name] = true
	}
	for _, f := range def.Functions {
		declared["function "+f.Name] = true
	}

	var errs []string
	report := func(key string) {
		if !declared[key] {
			errs = append(errs, fmt.Sprintf("class '%s': Go registration has %s which is not declared in manifest", def.Name, key))
		}
	}
	for _, v := range cls.Variables() {
		report("variable " + v.Name())
	}
	for _, c := range cls.Containers() {
		report("container " + c.Name())
	}
	for _, f := range cls.Functions() {
		report("function " + f.Name())
	}
	return errs
}

func typeMismatch(class, what, name, want, got string) string {
	return fmt.Sprintf("class '%s', %s '%s': type mismatch. Manifest requires '%s' but registered type is '%s'", class, what, name, want, got)
}

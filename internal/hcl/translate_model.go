// This file contains the logic for translating decoded HCL blocks into the
// format-agnostic manifest model defined in the config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/vk/dynrefl/internal/config"
	"github.com/vk/dynrefl/internal/ctxlog"
)

// defaultEnumWidth is the storage width of enums that do not declare one.
const defaultEnumWidth = 4

func (l *Loader) translateFile(ctx context.Context, file string, root *fileRoot) (*config.Model, error) {
	model := config.NewModel()
	for _, e := range root.Enums {
		def, err := l.translateEnum(ctx, e)
		if err != nil {
			return nil, err
		}
		def.Source = file
		if _, dup := model.Enums[def.Name]; dup {
			return nil, fmt.Errorf("enum %q declared twice", def.Name)
		}
		model.Enums[def.Name] = def
	}
	for _, c := range root.Classes {
		def, err := l.translateClass(ctx, c)
		if err != nil {
			return nil, err
		}
		def.Source = file
		if _, dup := model.Classes[def.Name]; dup {
			return nil, fmt.Errorf("class %q declared twice", def.Name)
		}
		model.Classes[def.Name] = def
	}
	return model, nil
}

func (l *Loader) translateEnum(ctx context.Context, e *enumBlock) (*config.Enum, error) {
	logger := ctxlog.FromContext(ctx).With("enum", e.Name)
	logger.Debug("Translating HCL enum to internal config model.", "items", len(e.Items))

	width := defaultEnumWidth
	if e.Width != nil {
		width = *e.Width
	}
	switch width {
	case 1, 2, 4, 8:
	default:
		return nil, fmt.Errorf("enum %q: width must be 1, 2, 4 or 8, got %d", e.Name, width)
	}

	def := &config.Enum{Name: e.Name, Width: width}
	for _, it := range e.Items {
		def.Items = append(def.Items, config.EnumItem{Name: it.Name, Value: it.Value})
	}
	return def, nil
}

func (l *Loader) translateClass(ctx context.Context, c *classBlock) (*config.Class, error) {
	logger := ctxlog.FromContext(ctx).With("class", c.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL class to internal config model.")

	def := &config.Class{Name: c.Name, Bases: c.Bases}

	for _, v := range c.Variables {
		m, err := l.translateMember(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("class %q variable %q: %w", c.Name, v.Name, err)
		}
		def.Variables = append(def.Variables, m)
	}
	for _, v := range c.Containers {
		m, err := l.translateMember(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("class %q container %q: %w", c.Name, v.Name, err)
		}
		def.Containers = append(def.Containers, m)
	}
	for _, f := range c.Functions {
		fn, err := l.translateFunction(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("class %q function %q: %w", c.Name, f.Name, err)
		}
		def.Functions = append(def.Functions, fn)
	}
	return def, nil
}

func (l *Loader) translateMember(ctx context.Context, m *memberBlock) (*config.Member, error) {
	name, err := typeExprToName(ctx, m.Type)
	if err != nil {
		return nil, err
	}
	return &config.Member{Name: m.Name, Type: name}, nil
}

func (l *Loader) translateFunction(ctx context.Context, f *functionBlock) (*config.Function, error) {
	fn := &config.Function{Name: f.Name, Const: f.Const}
	if isExprDefined(ctx, f.Returns, "returns") {
		name, err := typeExprToName(ctx, f.Returns)
		if err != nil {
			return nil, fmt.Errorf("in returns: %w", err)
		}
		fn.Returns = name
	}
	if isExprDefined(ctx, f.Params, "params") {
		params, err := typeListToNames(ctx, f.Params)
		if err != nil {
			return nil, err
		}
		fn.Params = params
	}
	return fn, nil
}

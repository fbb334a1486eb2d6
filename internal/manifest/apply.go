package manifest

import (
	"context"
	"fmt"

	"github.com/vk/dynrefl/internal/config"
	"github.com/vk/dynrefl/internal/ctxlog"
	"github.com/vk/dynrefl/internal/refl"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Apply registers a dynamic enum descriptor for every declared enum whose
// name is still free. Enums already registered are left alone and checked by
// Validate instead; a name bound to a non-enum descriptor is an error.
// It returns the descriptors it created, ordered by name.
func Apply(ctx context.Context, m *config.Model) ([]*refl.Type, error) {
	logger := ctxlog.FromContext(ctx)

	names := maps.Keys(m.Enums)
	slices.Sort(names)

	var created []*refl.Type
	for _, name := range names {
		def := m.Enums[name]
		if existing := refl.TypeByName(name); existing != nil {
			if existing.Kind() != refl.KindEnum {
				return created, fmt.Errorf("enum %q (%s): name is bound to a %s", name, def.Source, existing.Kind())
			}
			logger.Warn("Enum already registered, skipping manifest declaration.", "enum", name, "source", def.Source)
			continue
		}

		items := make([]refl.EnumItem, len(def.Items))
		for i, it := range def.Items {
			items[i] = refl.EnumItem{Name: it.Name, Value: it.Value}
		}
		t, err := refl.NewDynamicEnum(name, def.Width, items...)
		if err != nil {
			return created, fmt.Errorf("enum %q (%s): %w", name, def.Source, err)
		}
		logger.Debug("Registered enum from manifest.", "enum", name, "items", len(items))
		created = append(created, t)
	}
	return created, nil
}

package manifest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dynrefl/internal/config"
	"github.com/vk/dynrefl/internal/hcl"
	"github.com/vk/dynrefl/internal/manifest"
	"github.com/vk/dynrefl/internal/refl"
	"github.com/vk/dynrefl/internal/testutil"
)

func boolPtr(b bool) *bool { return &b }

func personDecl() *config.Class {
	return &config.Class{
		Name: "Person",
		Variables: []*config.Member{
			{Name: "name", Type: "string"},
			{Name: "age", Type: "int"},
		},
		Containers: []*config.Member{
			{Name: "tags", Type: "string[]"},
			{Name: "friends", Type: "string{}"},
			{Name: "scores", Type: "string:int{}"},
		},
		Functions: []*config.Function{
			{Name: "Greet", Returns: "string", Params: []string{"string"}, Const: boolPtr(true)},
			{Name: "Birthday", Returns: "int", Params: []string{}},
			{Name: "Rename", Returns: "void"},
			{Name: "CopyAgeTo", Params: []string{"int*"}},
		},
	}
}

func TestApply_RegistersDynamicEnums(t *testing.T) {
	logs := testutil.CaptureLogs(t)
	testutil.RegisterFixtures()
	m := config.NewModel()
	m.Enums["ManifestSuit"] = &config.Enum{
		Name:  "ManifestSuit",
		Width: 2,
		Items: []config.EnumItem{{Name: "hearts", Value: 1}, {Name: "spades", Value: 4}},
	}
	m.Enums["Color"] = &config.Enum{Name: "Color", Width: 4}

	created, err := manifest.Apply(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, created, 1)

	suit := refl.TypeByName("ManifestSuit")
	require.NotNil(t, suit)
	assert.Same(t, suit, created[0])
	e, ok := suit.AsEnum()
	require.True(t, ok)
	assert.Equal(t, 2, e.Width())
	v, ok := e.Lookup("spades")
	require.True(t, ok)
	assert.Equal(t, int64(4), v)
	assert.Contains(t, logs.String(), "Enum already registered")
}

func TestApply_NameBoundToNonEnum(t *testing.T) {
	testutil.RegisterFixtures()
	m := config.NewModel()
	m.Enums["Person"] = &config.Enum{Name: "Person", Width: 4}

	_, err := manifest.Apply(context.Background(), m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bound to a class")
}

func TestValidate_Parity(t *testing.T) {
	testutil.RegisterFixtures()
	m := config.NewModel()
	m.Classes["Person"] = personDecl()
	m.Classes["Student"] = &config.Class{
		Name:      "Student",
		Bases:     []string{"Person"},
		Variables: []*config.Member{{Name: "school", Type: "string"}, {Name: "name", Type: "string"}},
		Functions: []*config.Function{{Name: "Enroll"}, {Name: "Greet"}},
	}
	m.Enums["Color"] = &config.Enum{
		Name:  "Color",
		Width: 4,
		Items: []config.EnumItem{{Name: "Red", Value: 0}, {Name: "Blue", Value: 2}},
	}

	require.NoError(t, manifest.Validate(context.Background(), m, manifest.Options{}))
}

func TestValidate_ReportsAllMismatches(t *testing.T) {
	testutil.RegisterFixtures()
	m := config.NewModel()
	decl := personDecl()
	decl.Bases = []string{"Student"}
	decl.Variables[1].Type = "int64"
	decl.Variables = append(decl.Variables, &config.Member{Name: "height", Type: "float64"})
	decl.Containers[0].Type = "int[]"
	decl.Functions[0].Params = []string{"int"}
	decl.Functions[1].Const = boolPtr(true)
	decl.Functions = append(decl.Functions, &config.Function{Name: "Fly"})
	m.Classes["Person"] = decl
	m.Classes["Ghost"] = &config.Class{Name: "Ghost"}
	m.Classes["int"] = &config.Class{Name: "int"}
	m.Enums["Color"] = &config.Enum{
		Name:  "Color",
		Width: 1,
		Items: []config.EnumItem{{Name: "Red", Value: 5}, {Name: "Purple", Value: 3}},
	}

	err := manifest.Validate(context.Background(), m, manifest.Options{})
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{
		"manifest validation failed:",
		"enum 'Color': width mismatch",
		"enum 'Color', item 'Red': value mismatch",
		"item 'Purple' which is not registered",
		"class 'Ghost': not registered",
		"class 'int': registered as arithmetic",
		"base 'Student' which is not a registered base",
		"variable 'age': type mismatch. Manifest requires 'int64' but registered type is 'int'",
		"variable 'height' which is not registered",
		"container 'tags': type mismatch",
		"function 'Greet': parameter mismatch",
		"function 'Birthday': manifest declares const=true",
		"function 'Fly' which is not registered",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestValidate_Strict(t *testing.T) {
	testutil.RegisterFixtures()
	m := config.NewModel()
	m.Classes["Person"] = &config.Class{
		Name:      "Person",
		Variables: []*config.Member{{Name: "name", Type: "string"}},
	}

	require.NoError(t, manifest.Validate(context.Background(), m, manifest.Options{}))

	err := manifest.Validate(context.Background(), m, manifest.Options{Strict: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Go registration has variable age which is not declared")
	assert.Contains(t, err.Error(), "Go registration has function Greet which is not declared")
	assert.NotContains(t, err.Error(), "variable name which")

	m.Classes["Person"] = personDecl()
	require.NoError(t, manifest.Validate(context.Background(), m, manifest.Options{Strict: true}))
}

func TestLoadApplyValidate(t *testing.T) {
	testutil.RegisterFixtures()
	dir := t.TempDir()
	content := `
enum "ManifestLevel" {
  width = 1
  item "low" { value = 0 }
}

class "Person" {
  variable "age" { type = int }
  container "scores" { type = map(int) }
  container "friends" { type = set(string) }
  function "CopyAgeTo" { params = [ptr(int)] }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.hcl"), []byte(content), 0644))

	ctx := context.Background()
	m, err := hcl.NewLoader().Load(ctx, dir)
	require.NoError(t, err)
	_, err = manifest.Apply(ctx, m)
	require.NoError(t, err)
	require.NoError(t, manifest.Validate(ctx, m, manifest.Options{}))
}

package geometry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dynrefl/internal/hcl"
	"github.com/vk/dynrefl/internal/manifest"
	"github.com/vk/dynrefl/internal/refl"
	"github.com/vk/dynrefl/internal/refl/containerops"
	"github.com/vk/dynrefl/modules/geometry"
)

func register(t *testing.T) {
	t.Helper()
	require.NoError(t, (&geometry.Module{}).Register(context.Background()))
}

func TestRegister_Idempotent(t *testing.T) {
	register(t)
	register(t)

	for _, name := range []string{"Hue", "Point", "Shape", "Polygon", "Canvas", "Point[]", "Polygon[]", "Hue{}", "string:int{}"} {
		assert.NotNil(t, refl.TypeByName(name), name)
	}
	assert.Same(t, refl.TypeOf[geometry.Point](), refl.TypeByName("Point"))
}

func TestPoint_Invoke(t *testing.T) {
	register(t)
	p := geometry.Point{X: 3, Y: 4}
	a := refl.MakeRef(&p)

	res, err := a.Invoke("Len")
	require.NoError(t, err)
	l, _ := refl.Get[float64](res)
	assert.InDelta(t, 5.0, l, 1e-9)

	_, err = a.Invoke("Translate", 1.0, 1.0)
	require.NoError(t, err)
	assert.Equal(t, geometry.Point{X: 4, Y: 5}, p)

	sum, err := a.Invoke("Add", geometry.Point{X: 1})
	require.NoError(t, err)
	got, _ := refl.Get[geometry.Point](sum)
	assert.Equal(t, geometry.Point{X: 5, Y: 5}, got)

	_, err = a.Invoke("Translate", 1, 1)
	require.ErrorIs(t, err, refl.ErrTypeMismatch)
}

func TestPolygon_InheritsShape(t *testing.T) {
	register(t)
	poly := geometry.Polygon{
		Shape:    geometry.Shape{Name: "tri"},
		Vertices: []geometry.Point{{0, 0}, {3, 0}, {0, 4}},
	}
	a := refl.MakeRef(&poly)

	res, err := a.Invoke("Label")
	require.NoError(t, err)
	label, _ := refl.Get[string](res)
	assert.Equal(t, "tri", label)

	_, err = a.Invoke("Paint", geometry.HueBlue)
	require.NoError(t, err)
	assert.Equal(t, geometry.HueBlue, poly.Fill)

	fill, err := a.FieldRef("fill")
	require.NoError(t, err)
	name, err := refl.EnumName(fill)
	require.NoError(t, err)
	assert.Equal(t, "blue", name)

	res, err = a.Invoke("Perimeter")
	require.NoError(t, err)
	per, _ := refl.Get[float64](res)
	assert.InDelta(t, 12.0, per, 1e-9)
}

func TestCanvas_ContainersAndErrors(t *testing.T) {
	register(t)
	var c geometry.Canvas
	a := refl.MakeRef(&c)

	_, err := a.Invoke("Add", geometry.Polygon{})
	require.ErrorIs(t, err, geometry.ErrDegenerate)

	tri := geometry.Polygon{
		Shape:    geometry.Shape{Fill: geometry.HueRed},
		Vertices: []geometry.Point{{0, 0}, {1, 0}, {0, 1}},
	}
	res, err := a.Invoke("Add", tri)
	require.NoError(t, err)
	idx, _ := refl.Get[int](res)
	assert.Equal(t, 0, idx)

	cls, _ := refl.TypeOf[geometry.Canvas]().AsClass()
	palette, _ := cls.FindContainer("palette")
	ref, err := a.ContainerRef("palette")
	require.NoError(t, err)
	has, err := containerops.ContainsKey(palette, ref, refl.MakeCopy(geometry.HueRed))
	require.NoError(t, err)
	assert.True(t, has)

	layers, _ := cls.FindContainer("layers")
	lref, err := a.ContainerRef("layers")
	require.NoError(t, err)
	_, err = containerops.InsertKV(layers, lref, refl.MakeCopy("bg"), refl.MakeCopy(0))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"bg": 0}, c.Layers)

	count, err := a.Invoke("Count")
	require.NoError(t, err)
	n, _ := refl.Get[int](count)
	assert.Equal(t, 1, n)
}

func TestManifest_MatchesRegistration(t *testing.T) {
	register(t)
	ctx := context.Background()
	m, err := hcl.NewLoader().Load(ctx, "manifest.hcl")
	require.NoError(t, err)

	_, err = manifest.Apply(ctx, m)
	require.NoError(t, err)
	require.NoError(t, manifest.Validate(ctx, m, manifest.Options{Strict: true}))

	compass := refl.TypeByName("Compass")
	require.NotNil(t, compass)
	assert.Nil(t, compass.GoType())
}

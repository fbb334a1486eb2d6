package ctybridge_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dynrefl/internal/ctxlog"
	"github.com/vk/dynrefl/internal/ctybridge"
	"github.com/vk/dynrefl/internal/refl"
	"github.com/vk/dynrefl/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	buf := &testutil.SafeBuffer{}
	return ctxlog.WithLogger(context.Background(), testutil.NewLogger(buf))
}

func TestCtyType(t *testing.T) {
	fx := testutil.RegisterFixtures()

	testCases := []struct {
		name string
		typ  *refl.Type
		want cty.Type
	}{
		{"bool", refl.TypeOf[bool](), cty.Bool},
		{"int", refl.TypeOf[int](), cty.Number},
		{"float", refl.TypeOf[float32](), cty.Number},
		{"string", refl.TypeOf[string](), cty.String},
		{"enum", fx.Color, cty.String},
		{"pointer", refl.TypeOf[*int](), cty.Number},
		{"vector", refl.TypeOf[[]string](), cty.List(cty.String)},
		{"set", refl.TypeOf[map[int]struct{}](), cty.Set(cty.Number)},
		{"map", refl.TypeOf[map[string]bool](), cty.Map(cty.Bool)},
		{"class", fx.Person, cty.Object(map[string]cty.Type{
			"name":    cty.String,
			"age":     cty.Number,
			"tags":    cty.List(cty.String),
			"friends": cty.Set(cty.String),
			"scores":  cty.Map(cty.Number),
		})},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ctybridge.CtyType(tc.typ)
			require.NoError(t, err)
			assert.True(t, tc.want.Equals(got), "want %s, got %s", tc.want.FriendlyName(), got.FriendlyName())
		})
	}
}

func TestCtyType_Unsupported(t *testing.T) {
	fx := testutil.RegisterFixtures()
	for _, typ := range []*refl.Type{refl.TypeOf[map[int]string](), refl.Void(), refl.TypeOf[chan int]()} {
		_, err := ctybridge.CtyType(typ)
		require.ErrorIs(t, err, refl.ErrUnsupportedOperation, typ.Name())
	}

	// Handle has a data member; a class without any has no cty form.
	_, err := ctybridge.CtyType(fx.Handle)
	require.NoError(t, err)
}

func TestToCty_Student(t *testing.T) {
	testutil.RegisterFixtures()
	ctx := testContext(t)
	s := testutil.Student{
		Person: testutil.Person{
			Name:    "Ada",
			Age:     36,
			Tags:    []string{"math"},
			Friends: map[string]struct{}{"Charles": {}},
		},
		School: "Home",
		Grades: []int{1, 2},
	}

	v, err := ctybridge.ToCty(ctx, refl.MakeCref(&s))
	require.NoError(t, err)
	attrs := v.AsValueMap()
	assert.Equal(t, "Ada", attrs["name"].AsString())
	assert.Equal(t, "Home", attrs["school"].AsString())
	assert.True(t, attrs["age"].Equals(cty.NumberIntVal(36)).True())
	assert.Equal(t, 2, attrs["grades"].LengthInt())
	assert.True(t, attrs["friends"].HasElement(cty.StringVal("Charles")).True())
	assert.Equal(t, 0, attrs["scores"].LengthInt())
}

func TestToCty_Enum(t *testing.T) {
	testutil.RegisterFixtures()
	v, err := ctybridge.ToCty(testContext(t), refl.MakeCopy(testutil.ColorBlue))
	require.NoError(t, err)
	assert.Equal(t, "Blue", v.AsString())

	_, err = ctybridge.ToCty(testContext(t), refl.MakeCopy(testutil.Color(42)))
	require.ErrorIs(t, err, refl.ErrMemberNotFound)
}

func TestToCty_NilPointer(t *testing.T) {
	var p *int
	v, err := ctybridge.ToCty(testContext(t), refl.MakeCopy(p))
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestFromCty_RoundTrip(t *testing.T) {
	fx := testutil.RegisterFixtures()
	ctx := testContext(t)
	in := testutil.Person{
		Name:    "Grace",
		Age:     85,
		Tags:    []string{"navy", "cobol"},
		Friends: map[string]struct{}{"Ada": {}},
		Scores:  map[string]int{"math": 99},
	}
	v, err := ctybridge.ToCty(ctx, refl.MakeCopy(in))
	require.NoError(t, err)

	a, err := ctybridge.FromCty(ctx, v, fx.Person)
	require.NoError(t, err)
	assert.Equal(t, refl.ModeMove, a.Mode())
	out, ok := refl.Get[testutil.Person](a)
	require.True(t, ok)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromCty_ConvertsLiterals(t *testing.T) {
	fx := testutil.RegisterFixtures()
	ctx := testContext(t)
	v := cty.ObjectVal(map[string]cty.Value{
		"name":    cty.StringVal("Ada"),
		"age":     cty.StringVal("36"),
		"tags":    cty.TupleVal([]cty.Value{cty.StringVal("a")}),
		"friends": cty.NullVal(cty.Set(cty.String)),
		"scores":  cty.NullVal(cty.Map(cty.Number)),
	})
	a, err := ctybridge.FromCty(ctx, v, fx.Person)
	require.NoError(t, err)
	p, _ := refl.Get[testutil.Person](a)
	assert.Equal(t, 36, p.Age)
	assert.Equal(t, []string{"a"}, p.Tags)
	assert.Nil(t, p.Scores)

	_, err = ctybridge.FromCty(ctx, cty.ObjectVal(map[string]cty.Value{"name": cty.StringVal("x")}), fx.Person)
	require.ErrorIs(t, err, refl.ErrTypeMismatch)

	_, err = ctybridge.FromCty(ctx, cty.StringVal("x"), refl.TypeOf[int]())
	require.ErrorIs(t, err, refl.ErrTypeMismatch)

	c, err := ctybridge.FromCty(ctx, cty.StringVal("Green"), fx.Color)
	require.NoError(t, err)
	got, _ := refl.Get[testutil.Color](c)
	assert.Equal(t, testutil.ColorGreen, got)
}

func TestDecodeInto(t *testing.T) {
	ctx := testContext(t)
	n := 1
	require.NoError(t, ctybridge.DecodeInto(ctx, cty.NumberIntVal(7), refl.MakeRef(&n)))
	assert.Equal(t, 7, n)

	err := ctybridge.DecodeInto(ctx, cty.NumberIntVal(8), refl.MakeCref(&n))
	require.ErrorIs(t, err, refl.ErrConstViolation)
	assert.Equal(t, 7, n)
}

func TestJSON(t *testing.T) {
	testutil.RegisterFixtures()
	ctx := testContext(t)
	data, err := ctybridge.MarshalJSON(ctx, refl.MakeCopy(map[string]int{"a": 1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))

	a, err := ctybridge.UnmarshalJSON(ctx, []byte(`["x","y"]`), refl.TypeOf[[]string]())
	require.NoError(t, err)
	got, _ := refl.Get[[]string](a)
	assert.Equal(t, []string{"x", "y"}, got)
}

func TestDumpJSON(t *testing.T) {
	fx := testutil.RegisterFixtures()
	data, err := ctybridge.DumpJSON([]*refl.Type{fx.Student, fx.Color, refl.TypeOf[int]()})
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 3)
	assert.Equal(t, "Color", out[0]["name"])
	assert.Equal(t, map[string]any{"Red": 0.0, "Green": 1.0, "Blue": 2.0}, out[0]["items"])
	assert.Equal(t, "Student", out[1]["name"])
	assert.Equal(t, []any{"Person"}, out[1]["bases"])
	assert.Equal(t, "int", out[2]["name"])
	assert.Equal(t, "arithmetic", out[2]["kind"])
}

type timer struct {
	Label string
	Every time.Duration
}

func TestToCty_NamedIntegerField(t *testing.T) {
	ctx := testContext(t)
	refl.RegisterClass[timer]("Timer").
		Field("label", func(x *timer) *string { return &x.Label }).
		Field("every", func(x *timer) *time.Duration { return &x.Every }).
		MustRegister()

	v, err := ctybridge.ToCty(ctx, refl.MakeCopy(timer{Label: "tick", Every: 2 * time.Second}))
	require.NoError(t, err)
	assert.True(t, v.GetAttr("every").Equals(cty.NumberIntVal(int64(2*time.Second))).True())
	assert.Equal(t, "tick", v.GetAttr("label").AsString())

	back, err := ctybridge.FromCty(ctx, v, refl.TypeOf[timer]())
	require.NoError(t, err)
	got, ok := refl.Get[timer](back)
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, got.Every)
}

func TestFromCty_UncopyableIsOwnedOnce(t *testing.T) {
	fx := testutil.RegisterFixtures()
	ctx := testContext(t)

	a, err := ctybridge.FromCty(ctx, cty.ObjectVal(map[string]cty.Value{"id": cty.NumberIntVal(3)}), fx.Handle)
	require.NoError(t, err)
	assert.Equal(t, refl.ModeMove, a.Mode())
	id, err := a.Field("id")
	require.NoError(t, err)
	n, _ := refl.Get[int](id)
	assert.Equal(t, 3, n)
}

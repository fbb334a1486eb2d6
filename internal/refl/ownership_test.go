package refl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dynrefl/internal/refl"
	"github.com/vk/dynrefl/internal/testutil"
)

type bagInner struct {
	vals []int
}

type bag struct {
	items  []int
	lookup map[string][]int
	inner  bagInner
	Label  string
}

func TestMakeCopy_UnexportedFieldsIndependent(t *testing.T) {
	b := bag{
		items:  []int{1, 2},
		lookup: map[string][]int{"a": {7}},
		inner:  bagInner{vals: []int{5}},
		Label:  "x",
	}
	a := refl.MakeCopy(b)

	b.items[0] = 99
	b.lookup["a"][0] = 99
	b.lookup["b"] = nil
	b.inner.vals[0] = 99

	got, ok := refl.Get[bag](a)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, got.items)
	assert.Equal(t, map[string][]int{"a": {7}}, got.lookup)
	assert.Equal(t, []int{5}, got.inner.vals)
	assert.Equal(t, "x", got.Label)
}

func TestClone_UnexportedFieldsIndependent(t *testing.T) {
	b := bag{items: []int{1}}
	c, err := refl.MakeRef(&b).Clone()
	require.NoError(t, err)

	p, ok := refl.Cast[bag](c)
	require.True(t, ok)
	p.items[0] = 42
	assert.Equal(t, []int{1}, b.items)
}

func TestOwnedSnapshots_UncopyableFail(t *testing.T) {
	destroyed := 0
	h := testutil.Handle{ID: 1, Destroyed: &destroyed}

	hs := []testutil.Handle{h}
	vc, ok := refl.TypeOf[[]testutil.Handle]().AsContainer()
	require.True(t, ok)
	_, err := vc.Ops().At(refl.MakeRef(&hs), 0)
	require.ErrorIs(t, err, refl.ErrCapabilityMissing)

	_, err = vc.Ops().Push(refl.MakeRef(&hs), refl.MakeRef(&h))
	require.ErrorIs(t, err, refl.ErrCapabilityMissing)
	assert.Len(t, hs, 1)

	m := map[string]testutil.Handle{"a": h}
	mc, ok := refl.TypeOf[map[string]testutil.Handle]().AsContainer()
	require.True(t, ok)
	_, err = mc.Ops().GetValue(refl.MakeRef(&m), refl.MakeCopy("a"))
	require.ErrorIs(t, err, refl.ErrCapabilityMissing)

	_, err = refl.MakeRef(&h).Invoke("Twin")
	require.ErrorIs(t, err, refl.ErrCapabilityMissing)

	assert.Equal(t, 0, destroyed)
}

func TestMakeCopy_UncopyableIsEmpty(t *testing.T) {
	destroyed := 0
	h := testutil.Handle{ID: 1, Destroyed: &destroyed}

	c := refl.MakeCopy(h)
	assert.True(t, c.Empty())
	c.Release()
	assert.Equal(t, 0, destroyed)

	m := refl.MakeMove(&h)
	m.Release()
	assert.Equal(t, 1, destroyed)
}

func TestSetField_UncopyableFails(t *testing.T) {
	type holder struct{ H testutil.Handle }
	ht := refl.RegisterClass[holder]("HandleHolder").
		Field("h", func(x *holder) *testutil.Handle { return &x.H }).
		MustRegister()
	require.NotNil(t, ht)

	destroyed := 0
	x := holder{}
	src := testutil.Handle{ID: 4, Destroyed: &destroyed}
	err := refl.MakeRef(&x).SetField("h", refl.MakeRef(&src))
	require.ErrorIs(t, err, refl.ErrCapabilityMissing)
	assert.Equal(t, 0, x.H.ID)
}

package registry_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dynrefl/internal/registry"
)

type desc struct{ id int }

func TestRegister_FirstWins(t *testing.T) {
	r := registry.New[*desc]()
	d1 := &desc{id: 1}
	d2 := &desc{id: 2}

	require.NoError(t, r.Register("X", d1))
	err := r.Register("X", d2)
	require.ErrorIs(t, err, registry.ErrDuplicate)

	got, ok := r.Lookup("X")
	require.True(t, ok)
	assert.Same(t, d1, got)
	assert.Equal(t, 1, r.Len())
}

func TestLookup_Missing(t *testing.T) {
	r := registry.New[*desc]()
	got, ok := r.Lookup("missing")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestAll_IsSnapshot(t *testing.T) {
	r := registry.New[*desc]()
	require.NoError(t, r.Register("a", &desc{id: 1}))

	all := r.All()
	delete(all, "a")
	all["b"] = &desc{id: 2}

	_, ok := r.Lookup("a")
	assert.True(t, ok)
	_, ok = r.Lookup("b")
	assert.False(t, ok)
}

func TestRebind(t *testing.T) {
	r := registry.New[*desc]()
	d := &desc{id: 1}
	require.NoError(t, r.Register("pkg.node[]", d))
	require.NoError(t, r.Register("taken", &desc{id: 2}))

	require.NoError(t, r.Rebind("pkg.node[]", "Node[]"))
	got, ok := r.Lookup("Node[]")
	require.True(t, ok)
	assert.Same(t, d, got)
	_, ok = r.Lookup("pkg.node[]")
	assert.False(t, ok)

	err := r.Rebind("Node[]", "taken")
	require.ErrorIs(t, err, registry.ErrDuplicate)
	got, _ = r.Lookup("Node[]")
	assert.Same(t, d, got)

	err = r.Rebind("missing", "other")
	require.ErrorIs(t, err, registry.ErrNotFound)
	assert.Equal(t, 2, r.Len())
}

func TestNames_Sorted(t *testing.T) {
	r := registry.New[*desc]()
	for _, n := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, r.Register(n, &desc{}))
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names())
}

func TestRegister_Concurrent(t *testing.T) {
	r := registry.New[*desc]()
	var wg sync.WaitGroup
	numGoroutines := 50
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			_ = r.Register(fmt.Sprintf("t%d", i%10), &desc{id: i})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, r.Len())
}

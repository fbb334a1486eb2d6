package refl_test

import (
	"os"
	"testing"

	"github.com/vk/dynrefl/internal/refl"
	"github.com/vk/dynrefl/internal/testutil"
)

type point struct{ X, Y int }

var (
	fx        testutil.Fixture
	pointType *refl.Type
)

func TestMain(m *testing.M) {
	fx = testutil.RegisterFixtures()
	pointType = refl.RegisterClass[point]("Point").
		Field("x", func(p *point) *int { return &p.X }).
		Field("y", func(p *point) *int { return &p.Y }).
		MustRegister()
	os.Exit(m.Run())
}

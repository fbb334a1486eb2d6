// Package geometry registers a small set of 2D geometry types with the
// type registry. It is compiled into the dynrefl binary and serves as the
// reference registration module.
package geometry

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/vk/dynrefl/internal/ctxlog"
	"github.com/vk/dynrefl/internal/refl"
)

// Hue is the fill color of a shape.
type Hue uint8

const (
	HueNone Hue = iota
	HueRed
	HueGreen
	HueBlue
)

// Point is a position in the plane.
type Point struct {
	X, Y float64
}

// Len returns the distance from the origin.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

func (p *Point) Translate(dx, dy float64) {
	p.X += dx
	p.Y += dy
}

// Shape holds what every figure has in common.
type Shape struct {
	Name   string
	Origin Point
	Fill   Hue
}

func (s Shape) Label() string { return s.Name }

func (s *Shape) Paint(h Hue) { s.Fill = h }

// Polygon is a closed figure with vertices relative to its origin.
type Polygon struct {
	Shape
	Vertices []Point
}

// Perimeter returns the length of the closed outline.
func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	var sum float64
	for i := range p.Vertices {
		a, b := p.Vertices[i], p.Vertices[(i+1)%n]
		sum += math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	return sum
}

// ErrDegenerate is returned when a polygon has fewer than three vertices.
var ErrDegenerate = errors.New("polygon needs at least three vertices")

// Canvas is a collection of polygons arranged in named layers.
type Canvas struct {
	Title    string
	Polygons []Polygon
	Layers   map[string]int
	Palette  map[Hue]struct{}
}

// Add places p on the canvas and returns its index.
func (c *Canvas) Add(p Polygon) (int, error) {
	if len(p.Vertices) < 3 {
		return 0, ErrDegenerate
	}
	c.Polygons = append(c.Polygons, p)
	if c.Palette == nil {
		c.Palette = make(map[Hue]struct{})
	}
	c.Palette[p.Fill] = struct{}{}
	return len(c.Polygons) - 1, nil
}

func (c Canvas) Count() int { return len(c.Polygons) }

// Module implements the app.Module interface for this package.
type Module struct{}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register registers the geometry types. Registration happens once per
// process; later calls return the first outcome.
func (m *Module) Register(ctx context.Context) error {
	registerOnce.Do(func() {
		registerErr = register()
	})
	if registerErr == nil {
		ctxlog.FromContext(ctx).Debug("Geometry module registered.")
	}
	return registerErr
}

func register() error {
	if _, err := refl.RegisterEnum[Hue]("Hue").
		Add("none", HueNone).
		Add("red", HueRed).
		Add("green", HueGreen).
		Add("blue", HueBlue).
		Register(); err != nil {
		return err
	}

	if _, err := refl.RegisterClass[Point]("Point").
		Field("x", func(p *Point) *float64 { return &p.X }).
		Field("y", func(p *Point) *float64 { return &p.Y }).
		Method("Len", Point.Len).
		Method("Add", Point.Add).
		Method("Translate", (*Point).Translate).
		Register(); err != nil {
		return err
	}

	if _, err := refl.RegisterClass[Shape]("Shape").
		Field("name", func(s *Shape) *string { return &s.Name }).
		Field("origin", func(s *Shape) *Point { return &s.Origin }).
		Field("fill", func(s *Shape) *Hue { return &s.Fill }).
		Method("Label", Shape.Label).
		Method("Paint", (*Shape).Paint).
		Register(); err != nil {
		return err
	}

	if _, err := refl.RegisterClass[Polygon]("Polygon").
		Base(func(p *Polygon) *Shape { return &p.Shape }).
		Container("vertices", func(p *Polygon) *[]Point { return &p.Vertices }).
		Method("Perimeter", Polygon.Perimeter).
		Register(); err != nil {
		return err
	}

	_, err := refl.RegisterClass[Canvas]("Canvas").
		Field("title", func(c *Canvas) *string { return &c.Title }).
		Container("polygons", func(c *Canvas) *[]Polygon { return &c.Polygons }).
		Container("layers", func(c *Canvas) *map[string]int { return &c.Layers }).
		Container("palette", func(c *Canvas) *map[Hue]struct{} { return &c.Palette }).
		Method("Add", (*Canvas).Add).
		Method("Count", Canvas.Count).
		Register()
	return err
}

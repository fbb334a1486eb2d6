package testutil

import (
	"errors"
	"sync"

	"github.com/vk/dynrefl/internal/refl"
)

// Color is a fixture enumeration.
type Color int32

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
)

// Person is the fixture class used across the test suites.
type Person struct {
	Name    string
	Age     int
	Tags    []string
	Friends map[string]struct{}
	Scores  map[string]int
}

func (p Person) Greet(greeting string) string { return greeting + ", " + p.Name }

func (p *Person) Birthday() int {
	p.Age++
	return p.Age
}

// ErrEmptyName is returned by Rename.
var ErrEmptyName = errors.New("name must not be empty")

func (p *Person) Rename(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// CopyAgeTo writes the age through dst, exercising by-address arguments.
func (p Person) CopyAgeTo(dst *int) { *dst = p.Age }

// Student derives from Person through embedding.
type Student struct {
	Person
	School string
	Grades []int
}

func (s *Student) Enroll(school string) { s.School = school }

// Handle is neither copyable nor silently droppable: it counts its Destroy
// calls.
type Handle struct {
	ID        int
	Destroyed *int
}

func (Handle) NoCopy() {}

func (h *Handle) Destroy() {
	if h.Destroyed != nil {
		*h.Destroyed++
	}
}

// Twin returns h by value, sharing its resource.
func (h Handle) Twin() Handle { return h }

// Fixture holds the descriptors registered by RegisterFixtures.
type Fixture struct {
	Color   *refl.Type
	Person  *refl.Type
	Student *refl.Type
	Handle  *refl.Type
}

var (
	fixtureOnce sync.Once
	fixture     Fixture
)

// RegisterFixtures registers the fixture types once per test binary and
// returns their descriptors.
func RegisterFixtures() Fixture {
	fixtureOnce.Do(func() {
		fixture.Color = refl.RegisterEnum[Color]("Color").
			Add("Red", ColorRed).
			Add("Green", ColorGreen).
			Add("Blue", ColorBlue).
			MustRegister()

		fixture.Person = refl.RegisterClass[Person]("Person").
			Field("name", func(p *Person) *string { return &p.Name }).
			Field("age", func(p *Person) *int { return &p.Age }).
			Container("tags", func(p *Person) *[]string { return &p.Tags }).
			Container("friends", func(p *Person) *map[string]struct{} { return &p.Friends }).
			Container("scores", func(p *Person) *map[string]int { return &p.Scores }).
			Method("Greet", Person.Greet).
			Method("Birthday", (*Person).Birthday).
			Method("Rename", (*Person).Rename).
			Method("CopyAgeTo", Person.CopyAgeTo).
			MustRegister()

		fixture.Student = refl.RegisterClass[Student]("Student").
			Base(func(s *Student) *Person { return &s.Person }).
			Field("school", func(s *Student) *string { return &s.School }).
			Container("grades", func(s *Student) *[]int { return &s.Grades }).
			Method("Enroll", (*Student).Enroll).
			MustRegister()

		fixture.Handle = refl.RegisterClass[Handle]("Handle").
			Field("id", func(h *Handle) *int { return &h.ID }).
			Method("Twin", Handle.Twin).
			MustRegister()
	})
	return fixture
}

package config

import "fmt"

// Model is the merged content of all loaded manifest files.
type Model struct {
	Enums   map[string]*Enum
	Classes map[string]*Class
}

// NewModel returns an empty Model.
func NewModel() *Model {
	return &Model{
		Enums:   make(map[string]*Enum),
		Classes: make(map[string]*Class),
	}
}

// Merge adds the declarations of other to m. Declaring the same enum or
// class name twice is an error.
func (m *Model) Merge(other *Model) error {
	for name, e := range other.Enums {
		if prev, ok := m.Enums[name]; ok {
			return fmt.Errorf("enum %q declared twice (%s and %s)", name, prev.Source, e.Source)
		}
		m.Enums[name] = e
	}
	for name, c := range other.Classes {
		if prev, ok := m.Classes[name]; ok {
			return fmt.Errorf("class %q declared twice (%s and %s)", name, prev.Source, c.Source)
		}
		m.Classes[name] = c
	}
	return nil
}

// Enum declares an enumeration. Enums not backed by a Go type are created
// from this declaration.
type Enum struct {
	Name   string
	Width  int
	Items  []EnumItem
	Source string
}

// EnumItem is one named value of an Enum.
type EnumItem struct {
	Name  string
	Value int64
}

// Class describes the expected shape of a registered class. Type fields
// hold descriptor names such as "int", "string[]" or "string:int{}".
type Class struct {
	Name       string
	Bases      []string
	Variables  []*Member
	Functions  []*Function
	Containers []*Member
	Source     string
}

// Member is a data or container member declaration.
type Member struct {
	Name string
	Type string
}

// Function is a method declaration. A nil Params or empty Returns leaves
// that part of the signature unchecked.
type Function struct {
	Name    string
	Returns string
	Params  []string
	Const   *bool
}

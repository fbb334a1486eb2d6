package refl

// BaseLink connects a class to one of its registered bases.
type BaseLink struct {
	typ *Type
	// upcast maps an instance of the derived class to a reference to its
	// base part. It yields an empty Any when the base part is absent.
	upcast func(inst *Any) *Any
}

// Type returns the base class descriptor.
func (b *BaseLink) Type() *Type { return b.typ }

// Class is the payload of class descriptors: the ordered members a builder
// attached and the bases they may be inherited from.
type Class struct {
	self  *Type
	bases []*BaseLink
	vars  []*MemberVariable
	funcs []*MemberFunction
	conts []*MemberContainer
}

// Bases returns the direct base descriptors in registration order.
func (c *Class) Bases() []*Type {
	out := make([]*Type, len(c.bases))
	for i, b := range c.bases {
		out[i] = b.typ
	}
	return out
}

// Variables returns the class's own data members in registration order.
func (c *Class) Variables() []*MemberVariable {
	return append([]*MemberVariable(nil), c.vars...)
}

// Functions returns the class's own methods in registration order.
func (c *Class) Functions() []*MemberFunction {
	return append([]*MemberFunction(nil), c.funcs...)
}

// Containers returns the class's own container members in registration
// order.
func (c *Class) Containers() []*MemberContainer {
	return append([]*MemberContainer(nil), c.conts...)
}

// FunctionAt returns the i-th own method.
func (c *Class) FunctionAt(i int) (*MemberFunction, error) {
	if i < 0 || i >= len(c.funcs) {
		return nil, Errorf("function", c.self, "", ErrMemberNotFound, "index %d, %d functions", i, len(c.funcs))
	}
	return c.funcs[i], nil
}

// IsA reports whether the class is t or reaches t through its bases.
func (c *Class) IsA(t *Type) bool {
	found := false
	c.walk(0, func(k *Class) bool {
		found = k.self == t
		return found
	})
	return found
}

// FindFunction looks name up among the class's own methods first and then
// through its bases, depth first in registration order. Within one class
// the first method registered under a name wins.
func (c *Class) FindFunction(name string) (*MemberFunction, bool) {
	var out *MemberFunction
	c.walk(0, func(k *Class) bool {
		for _, f := range k.funcs {
			if f.name == name {
				out = f
				return true
			}
		}
		return false
	})
	return out, out != nil
}

// FindVariable looks name up the way FindFunction does.
func (c *Class) FindVariable(name string) (*MemberVariable, bool) {
	var out *MemberVariable
	c.walk(0, func(k *Class) bool {
		for _, v := range k.vars {
			if v.name == name {
				out = v
				return true
			}
		}
		return false
	})
	return out, out != nil
}

// FindContainer looks name up the way FindFunction does.
func (c *Class) FindContainer(name string) (*MemberContainer, bool) {
	var out *MemberContainer
	c.walk(0, func(k *Class) bool {
		for _, m := range k.conts {
			if m.name == name {
				out = m
				return true
			}
		}
		return false
	})
	return out, out != nil
}

// walk visits c and then its bases depth first until visit returns true.
func (c *Class) walk(depth int, visit func(*Class) bool) bool {
	if visit(c) {
		return true
	}
	if depth >= maxBaseDepth {
		return false
	}
	for _, b := range c.bases {
		if bc, ok := b.typ.AsClass(); ok && bc.walk(depth+1, visit) {
			return true
		}
	}
	return false
}

// GetMemberValue returns a copy of the data member name of inst.
func (c *Class) GetMemberValue(inst *Any, name string) (*Any, error) {
	v, ok := c.FindVariable(name)
	if !ok {
		return nil, Errorf("get", c.self, name, ErrMemberNotFound, "")
	}
	return v.Get(inst)
}

// SetMemberValue overwrites the data member name of inst with a copy of val.
func (c *Class) SetMemberValue(inst *Any, name string, val *Any) error {
	v, ok := c.FindVariable(name)
	if !ok {
		return Errorf("set", c.self, name, ErrMemberNotFound, "")
	}
	return v.Set(inst, val)
}

// MemberRef returns a reference to the data member name of inst.
func (c *Class) MemberRef(inst *Any, name string) (*Any, error) {
	v, ok := c.FindVariable(name)
	if !ok {
		return nil, Errorf("ref", c.self, name, ErrMemberNotFound, "")
	}
	return v.Ref(inst)
}

// ContainerRef returns a reference to the container member name of inst.
func (c *Class) ContainerRef(inst *Any, name string) (*Any, error) {
	m, ok := c.FindContainer(name)
	if !ok {
		return nil, Errorf("ref", c.self, name, ErrMemberNotFound, "")
	}
	return m.Ref(inst)
}

// VisibleVariables returns the data members reachable by name from c: its
// own first, then those of its bases in lookup order. A member hidden by an
// earlier one with the same name is omitted.
func (c *Class) VisibleVariables() []*MemberVariable {
	var out []*MemberVariable
	seen := make(map[string]bool)
	c.walk(0, func(k *Class) bool {
		for _, v := range k.vars {
			if !seen[v.name] {
				seen[v.name] = true
				out = append(out, v)
			}
		}
		return false
	})
	return out
}

// VisibleContainers is the container counterpart of VisibleVariables.
func (c *Class) VisibleContainers() []*MemberContainer {
	var out []*MemberContainer
	seen := make(map[string]bool)
	c.walk(0, func(k *Class) bool {
		for _, m := range k.conts {
			if !seen[m.name] {
				seen[m.name] = true
				out = append(out, m)
			}
		}
		return false
	})
	return out
}

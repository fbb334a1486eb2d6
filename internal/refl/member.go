package refl

import "reflect"

// MemberVariable describes a data member of a class. Its accessor closures
// are bound to the owning Go type when the class is registered.
type MemberVariable struct {
	name  string
	owner *Type
	typ   *Type

	ref func(self *Any) *Any
	get func(self *Any) (*Any, error)
	set func(self, v *Any) error
}

func (v *MemberVariable) Name() string { return v.name }
func (v *MemberVariable) Owner() *Type { return v.owner }
func (v *MemberVariable) Type() *Type  { return v.typ }

// Get returns a copy of the member's value in inst.
func (v *MemberVariable) Get(inst *Any) (*Any, error) {
	self, err := memberInstance("get", v.owner, v.name, inst)
	if err != nil {
		return nil, err
	}
	return v.get(self)
}

// Set overwrites the member's value in inst with a copy of val.
func (v *MemberVariable) Set(inst, val *Any) error {
	self, err := memberInstance("set", v.owner, v.name, inst)
	if err != nil {
		return err
	}
	return v.set(self, val)
}

// Ref returns a reference to the member's storage in inst. The reference is
// ConstRef when inst is.
func (v *MemberVariable) Ref(inst *Any) (*Any, error) {
	self, err := memberInstance("ref", v.owner, v.name, inst)
	if err != nil {
		return nil, err
	}
	return v.ref(self), nil
}

// MemberContainer describes a vector, set or map data member.
type MemberContainer struct {
	name  string
	owner *Type
	typ   *Type

	ref func(self *Any) *Any
}

func (c *MemberContainer) Name() string { return c.name }
func (c *MemberContainer) Owner() *Type { return c.owner }

// Type returns the descriptor of the container type itself.
func (c *MemberContainer) Type() *Type { return c.typ }

func (c *MemberContainer) Kind() Kind         { return c.typ.container.kind }
func (c *MemberContainer) Elem() *Type        { return c.typ.container.elem }
func (c *MemberContainer) Key() *Type         { return c.typ.container.key }
func (c *MemberContainer) Ops() *ContainerOps { return c.typ.container.ops }

// Ref returns a reference to the container's storage in inst, suitable as
// the operand of the container operations.
func (c *MemberContainer) Ref(inst *Any) (*Any, error) {
	self, err := memberInstance("ref", c.owner, c.name, inst)
	if err != nil {
		return nil, err
	}
	return c.ref(self), nil
}

// MemberFunction describes a method of a class. The invoker is bound to the
// owning Go type and the method signature at registration.
type MemberFunction struct {
	name    string
	owner   *Type
	ret     *Type
	params  []*Type
	isConst bool

	invoker func(self *Any, args []*Any) (*Any, error)
}

func (f *MemberFunction) Name() string  { return f.name }
func (f *MemberFunction) Owner() *Type  { return f.owner }
func (f *MemberFunction) Return() *Type { return f.ret }
func (f *MemberFunction) Arity() int    { return len(f.params) }

// Const reports whether the method takes its receiver by value and may
// therefore be called through a ConstRef.
func (f *MemberFunction) Const() bool { return f.isConst }

// Params returns the declared parameter descriptors in order.
func (f *MemberFunction) Params() []*Type {
	out := make([]*Type, len(f.params))
	copy(out, f.params)
	return out
}

// Invoke calls the method on inst. inst must hold the owning class or a
// class that reaches it through registered bases, the argument count must
// match exactly and every argument must carry the declared parameter
// descriptor. Nothing is called when a check fails. A void method yields an
// empty Any; otherwise the result is owned (ModeCopy).
func (f *MemberFunction) Invoke(inst *Any, args ...*Any) (*Any, error) {
	if f.invoker == nil {
		return nil, Errorf("invoke", f.owner, f.name, ErrCapabilityMissing, "no invoker bound")
	}
	self, err := memberInstance("invoke", f.owner, f.name, inst)
	if err != nil {
		return nil, err
	}
	if !f.isConst && self.mode == ModeConstRef {
		return nil, Errorf("invoke", f.owner, f.name, ErrConstViolation, "method mutates its receiver")
	}
	if len(args) != len(f.params) {
		return nil, Errorf("invoke", f.owner, f.name, ErrArityMismatch, "want %d arguments, got %d", len(f.params), len(args))
	}
	return f.invoker(self, args)
}

// bindArg extracts the reflect value passed for parameter i. An argument
// matches when its descriptor is the parameter's; a pointer parameter *P also
// binds, by address, to a mutable argument holding a P.
func (f *MemberFunction) bindArg(i int, a *Any) (reflect.Value, error) {
	want := f.params[i]
	if a.Empty() {
		return reflect.Value{}, Errorf("invoke", f.owner, f.name, ErrTypeMismatch, "argument %d is empty", i)
	}
	if a.typ == want {
		if a.mode == ModeConstRef {
			return a.readValue(), nil
		}
		return a.ptr.Elem(), nil
	}
	if p, ok := want.AsPointer(); ok && a.typ == p.elem {
		if a.mode == ModeConstRef {
			return reflect.Value{}, Errorf("invoke", f.owner, f.name, ErrConstViolation, "argument %d is bound by address", i)
		}
		return a.ptr, nil
	}
	return reflect.Value{}, Errorf("invoke", f.owner, f.name, ErrTypeMismatch, "argument %d: want %s, got %s", i, want.Name(), a.typ.Name())
}

// memberInstance resolves inst to the part of it that has descriptor owner,
// following registered base links.
func memberInstance(op string, owner *Type, member string, inst *Any) (*Any, error) {
	if inst.Empty() {
		return nil, Errorf(op, owner, member, ErrTypeMismatch, "instance is empty")
	}
	self, ok := upcastTo(inst, owner, 0)
	if !ok {
		return nil, Errorf(op, owner, member, ErrTypeMismatch, "instance is %s", inst.typ.Name())
	}
	return self, nil
}

// maxBaseDepth bounds base traversal so that a malformed hierarchy cannot
// recurse forever.
const maxBaseDepth = 32

func upcastTo(inst *Any, owner *Type, depth int) (*Any, bool) {
	if inst.typ == owner {
		return inst, true
	}
	cls, ok := inst.typ.AsClass()
	if !ok || depth >= maxBaseDepth {
		return nil, false
	}
	for _, b := range cls.bases {
		up := b.upcast(inst)
		if up.Empty() {
			continue
		}
		if r, ok := upcastTo(up, owner, depth+1); ok {
			return r, true
		}
	}
	return nil, false
}

func refMode(inst *Any) Mode {
	if inst.mode == ModeConstRef {
		return ModeConstRef
	}
	return ModeRef
}

package refl

import "reflect"

func (a *Any) class(op string) (*Class, error) {
	if a.Empty() {
		return nil, Errorf(op, nil, "", ErrEmpty, "instance is empty")
	}
	cls, ok := a.typ.AsClass()
	if !ok {
		return nil, Errorf(op, a.typ, "", ErrTypeMismatch, "%s is not a class", a.typ.Kind())
	}
	return cls, nil
}

// Invoke calls the method name on the class instance held by a. Arguments
// that are already *Any are passed as they are; use MakeRef to let the method
// mutate a caller's variable. Any other argument is copied into a new Any.
func (a *Any) Invoke(name string, args ...any) (*Any, error) {
	cls, err := a.class("invoke")
	if err != nil {
		return nil, err
	}
	f, ok := cls.FindFunction(name)
	if !ok {
		return nil, Errorf("invoke", a.typ, name, ErrMemberNotFound, "")
	}
	return f.Invoke(a, packArgs(args)...)
}

// InvokeAt calls the index-th method of the instance's own class.
func (a *Any) InvokeAt(index int, args ...any) (*Any, error) {
	cls, err := a.class("invoke")
	if err != nil {
		return nil, err
	}
	f, err := cls.FunctionAt(index)
	if err != nil {
		return nil, err
	}
	return f.Invoke(a, packArgs(args)...)
}

// Field returns a copy of the data member name.
func (a *Any) Field(name string) (*Any, error) {
	cls, err := a.class("get")
	if err != nil {
		return nil, err
	}
	return cls.GetMemberValue(a, name)
}

// SetField overwrites the data member name. v is packed like an Invoke
// argument.
func (a *Any) SetField(name string, v any) error {
	cls, err := a.class("set")
	if err != nil {
		return err
	}
	return cls.SetMemberValue(a, name, pack(v))
}

// FieldRef returns a reference to the data member name.
func (a *Any) FieldRef(name string) (*Any, error) {
	cls, err := a.class("ref")
	if err != nil {
		return nil, err
	}
	return cls.MemberRef(a, name)
}

// ContainerRef returns a reference to the container member name.
func (a *Any) ContainerRef(name string) (*Any, error) {
	cls, err := a.class("ref")
	if err != nil {
		return nil, err
	}
	return cls.ContainerRef(a, name)
}

func packArgs(args []any) []*Any {
	out := make([]*Any, len(args))
	for i, v := range args {
		out[i] = pack(v)
	}
	return out
}

func pack(v any) *Any {
	if a, ok := v.(*Any); ok {
		return a
	}
	return FromValue(reflect.ValueOf(v))
}

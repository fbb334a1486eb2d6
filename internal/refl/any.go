package refl

import (
	"fmt"
	"reflect"
)

// Any is a type-erased value. It records the descriptor of the value it
// holds, a pointer to the value's storage, its ownership Mode and the value
// operation table of the erased type.
//
// Anys are handled through pointers. Use Clone and Take to duplicate or
// transfer one; copying the struct itself would alias owned storage.
type Any struct {
	typ  *Type
	ptr  reflect.Value
	mode Mode
	ops  *ValueOps
}

// MakeCopy stores a deep copy of v in freshly owned storage. For a type
// without a copy operation the result is empty; take ownership with
// MakeMove instead.
func MakeCopy[T any](v T) *Any {
	a, err := newOwned("copy", TypeOf[T](), reflect.ValueOf(&v).Elem())
	if err != nil {
		return &Any{}
	}
	return a
}

// MakeMove transfers *p into freshly owned storage, leaving *p zeroed.
func MakeMove[T any](p *T) *Any {
	if p == nil {
		return &Any{}
	}
	t := TypeOf[T]()
	return &Any{typ: t, ptr: t.ops.Move(reflect.ValueOf(p)), mode: ModeMove, ops: t.ops}
}

// MakeRef binds to the storage at p without copying. Mutation through the
// Any is visible through p and vice versa.
func MakeRef[T any](p *T) *Any {
	return bind(TypeOf[T](), reflect.ValueOf(p), ModeRef)
}

// MakeCref binds to the storage at p read-only.
func MakeCref[T any](p *T) *Any {
	return bind(TypeOf[T](), reflect.ValueOf(p), ModeConstRef)
}

// FromValue stores a deep copy of v in freshly owned storage. An invalid v,
// or a v whose type has no copy operation, yields an empty Any.
func FromValue(v reflect.Value) *Any {
	if !v.IsValid() {
		return &Any{}
	}
	a, err := newOwned("copy", TypeFor(v.Type()), v)
	if err != nil {
		return &Any{}
	}
	return a
}

// AdoptValue takes ownership of the storage ptr points at, in Move mode.
// The caller must not use ptr afterwards. ptr must be a non-nil pointer.
func AdoptValue(ptr reflect.Value) *Any {
	if !ptr.IsValid() || ptr.Kind() != reflect.Pointer {
		return &Any{}
	}
	return bind(TypeFor(ptr.Type().Elem()), ptr, ModeMove)
}

// RefValue binds to the storage ptr points at. ptr must be a non-nil pointer.
func RefValue(ptr reflect.Value, readOnly bool) *Any {
	if !ptr.IsValid() || ptr.Kind() != reflect.Pointer {
		return &Any{}
	}
	mode := ModeRef
	if readOnly {
		mode = ModeConstRef
	}
	return bind(TypeFor(ptr.Type().Elem()), ptr, mode)
}

func bind(t *Type, ptr reflect.Value, mode Mode) *Any {
	if ptr.IsNil() {
		return &Any{}
	}
	return &Any{typ: t, ptr: ptr, mode: mode, ops: t.ops}
}

// newOwned deep-copies v into Copy-mode storage. A type without a copy
// operation fails with ErrCapabilityMissing: a shallow copy would share the
// resources Destroy releases.
func newOwned(op string, t *Type, v reflect.Value) (*Any, error) {
	if t.ops == nil || t.ops.Copy == nil {
		return nil, Errorf(op, t, "", ErrCapabilityMissing, "type is not copyable")
	}
	tmp := reflect.New(t.rtype)
	tmp.Elem().Set(v)
	return &Any{typ: t, ptr: t.ops.Copy(tmp), mode: ModeCopy, ops: t.ops}, nil
}

// Type returns the descriptor of the held value, nil when empty.
func (a *Any) Type() *Type {
	if a == nil {
		return nil
	}
	return a.typ
}

func (a *Any) Mode() Mode {
	if a == nil {
		return ModeEmpty
	}
	return a.mode
}

func (a *Any) Empty() bool { return a.Mode() == ModeEmpty }

// Clone copy-constructs a new Any. The result always owns its storage
// (ModeCopy), whatever the source mode. Cloning an empty Any yields an empty
// Any; cloning a value whose type has no copy operation fails with
// ErrCapabilityMissing.
func (a *Any) Clone() (*Any, error) {
	if a.Empty() {
		return &Any{}, nil
	}
	if a.ops == nil || a.ops.Copy == nil {
		return nil, Errorf("copy", a.typ, "", ErrCapabilityMissing, "type is not copyable")
	}
	return &Any{typ: a.typ, ptr: a.ops.Copy(a.ptr), mode: ModeCopy, ops: a.ops}, nil
}

// Take move-constructs a new Any from a. All fields are transferred and a is
// left empty. No storage is allocated.
func (a *Any) Take() *Any {
	if a == nil {
		return &Any{}
	}
	out := &Any{typ: a.typ, ptr: a.ptr, mode: a.mode, ops: a.ops}
	*a = Any{}
	return out
}

// Assign releases the current payload and then copy-constructs from src.
// On error a is left empty.
func (a *Any) Assign(src *Any) error {
	if a == src {
		return nil
	}
	a.Release()
	c, err := src.Clone()
	if err != nil {
		return err
	}
	*a = *c
	return nil
}

// AssignMove releases the current payload and then takes src's fields,
// leaving src empty.
func (a *Any) AssignMove(src *Any) {
	if a == src {
		return
	}
	a.Release()
	*a = *src.Take()
}

// Release destroys owned storage (Copy and Move modes) and empties a. For
// Ref and ConstRef only a's own bookkeeping is cleared. Release is
// idempotent.
func (a *Any) Release() {
	if a == nil {
		return
	}
	if a.mode.Owns() && a.ops != nil && a.ops.Destroy != nil {
		a.ops.Destroy(a.ptr)
	}
	*a = Any{}
}

// Interface returns a copy of the held value as an interface, nil when
// empty.
func (a *Any) Interface() any {
	if a.Empty() {
		return nil
	}
	return a.readValue().Interface()
}

// Value returns the held value. For mutable modes the result is addressable
// and aliases the storage; for ConstRef it is a private copy.
func (a *Any) Value() reflect.Value {
	if a.Empty() {
		return reflect.Value{}
	}
	if a.mode == ModeConstRef {
		return a.readValue()
	}
	return a.ptr.Elem()
}

// Pointer returns the pointer to mutable storage. It fails for empty and
// ConstRef values.
func (a *Any) Pointer() (reflect.Value, error) {
	if err := a.writable("pointer"); err != nil {
		return reflect.Value{}, err
	}
	return a.ptr, nil
}

// SetFrom overwrites the held value with a copy of src's value. Both must
// have the same descriptor.
func (a *Any) SetFrom(src *Any) error {
	if err := a.writable("set"); err != nil {
		return err
	}
	if src.Empty() {
		return Errorf("set", a.typ, "", ErrEmpty, "source is empty")
	}
	if src.typ != a.typ {
		return Errorf("set", a.typ, "", ErrTypeMismatch, "got %s", src.typ.Name())
	}
	if a.ops == nil || a.ops.Copy == nil {
		return Errorf("set", a.typ, "", ErrCapabilityMissing, "type is not copyable")
	}
	a.ptr.Elem().Set(src.readValue())
	return nil
}

func (a *Any) String() string {
	if a.Empty() {
		return "Any(empty)"
	}
	return fmt.Sprintf("Any(%s %s)", a.typ.Name(), a.mode)
}

// readValue returns a deep copy of the payload when the type is copyable,
// the payload itself otherwise.
func (a *Any) readValue() reflect.Value {
	if a.ops != nil && a.ops.Copy != nil {
		return a.ops.Copy(a.ptr).Elem()
	}
	return a.ptr.Elem()
}

func (a *Any) writable(op string) error {
	switch a.Mode() {
	case ModeEmpty:
		return Errorf(op, nil, "", ErrEmpty, "")
	case ModeConstRef:
		return Errorf(op, a.typ, "", ErrConstViolation, "")
	}
	return nil
}

// Cast returns a writable pointer to the payload when a holds a T. It
// reports false for a different type, an empty value, or a ConstRef value;
// use Get to read through a ConstRef.
func Cast[T any](a *Any) (*T, bool) {
	if a.Empty() || a.mode == ModeConstRef || a.typ != TypeOf[T]() {
		return nil, false
	}
	p, ok := a.ptr.Interface().(*T)
	return p, ok
}

// Get returns a copy of the payload when a holds a T.
func Get[T any](a *Any) (T, bool) {
	var zero T
	if a.Empty() || a.typ != TypeOf[T]() {
		return zero, false
	}
	out := reflect.New(a.typ.rtype)
	out.Elem().Set(a.readValue())
	return *out.Interface().(*T), true
}

// Set stores a copy of v in a. It fails with ErrConstViolation for ConstRef
// values and ErrTypeMismatch when a does not hold a T; a is left unchanged
// on failure.
func Set[T any](a *Any, v T) error {
	if err := a.writable("set"); err != nil {
		return err
	}
	t := TypeOf[T]()
	if a.typ != t {
		return Errorf("set", a.typ, "", ErrTypeMismatch, "got %s", t.Name())
	}
	return a.SetFrom(MakeCopy(v))
}

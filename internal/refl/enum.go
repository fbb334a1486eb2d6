package refl

import (
	"fmt"
	"reflect"

	"golang.org/x/exp/constraints"
)

// EnumItem is one named value of an enumeration.
type EnumItem struct {
	Name  string
	Value int64
}

// Enum is the payload of enum descriptors. Items keep registration order;
// duplicate names and values are accepted.
type Enum struct {
	width int
	items []EnumItem
}

// Width returns the storage width in bytes.
func (e *Enum) Width() int { return e.width }

// Items returns the items in registration order.
func (e *Enum) Items() []EnumItem {
	out := make([]EnumItem, len(e.items))
	copy(out, e.items)
	return out
}

// Lookup returns the value of the first item named name.
func (e *Enum) Lookup(name string) (int64, bool) {
	for _, it := range e.items {
		if it.Name == name {
			return it.Value, true
		}
	}
	return 0, false
}

// NameOf returns the name of the item holding v. When several items share a
// value the most recently registered one wins.
func (e *Enum) NameOf(v int64) (string, bool) {
	for i := len(e.items) - 1; i >= 0; i-- {
		if e.items[i].Value == v {
			return e.items[i].Name, true
		}
	}
	return "", false
}

// EnumBuilder collects the items of an enumeration before it is registered.
type EnumBuilder[E constraints.Integer] struct {
	t     *Type
	name  string
	items []EnumItem
}

// RegisterEnum starts the registration of E under name. E must be a named
// integer type. Until Register commits, E is described as arithmetic.
func RegisterEnum[E constraints.Integer](name string) *EnumBuilder[E] {
	t := TypeOf[E]()
	if t.rtype.PkgPath() == "" {
		panic(fmt.Sprintf("refl: cannot register %s as enum %q: not a named integer type", t.rtype, name))
	}
	return &EnumBuilder[E]{t: t, name: name}
}

// Add appends an item.
func (b *EnumBuilder[E]) Add(name string, v E) *EnumBuilder[E] {
	b.items = append(b.items, EnumItem{Name: name, Value: int64(v)})
	return b
}

// Register names the descriptor, binds it in the registry and attaches the
// items. It fails with ErrDuplicateType, leaving the descriptor untouched,
// when the descriptor or the name is already registered.
func (b *EnumBuilder[E]) Register() (*Type, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if b.t.sealed {
		return nil, Errorf("register", b.t, "", ErrDuplicateType, "enum already registered")
	}
	if err := types.Register(b.name, b.t); err != nil {
		return nil, Errorf("register", b.t, "", err, "")
	}
	b.t.name = b.name
	b.t.kind = KindEnum
	b.t.arith = nil
	b.t.enum = &Enum{width: int(b.t.rtype.Size()), items: append([]EnumItem(nil), b.items...)}
	b.t.sealed = true
	rebindDerivedLocked()
	return b.t, nil
}

// MustRegister is like Register but panics on failure.
func (b *EnumBuilder[E]) MustRegister() *Type {
	t, err := b.Register()
	if err != nil {
		panic(err)
	}
	return t
}

// NewDynamicEnum builds and registers an enum descriptor that has no Go type
// behind it. Values of such an enum cannot be held in an Any; the descriptor
// serves tooling that only inspects items.
func NewDynamicEnum(name string, width int, items ...EnumItem) (*Type, error) {
	t := &Type{
		name:   name,
		kind:   KindEnum,
		sealed: true,
		enum:   &Enum{width: width, items: append([]EnumItem(nil), items...)},
	}
	if err := Register(name, t); err != nil {
		return nil, err
	}
	return t, nil
}

func enumOf(op string, a *Any) (*Enum, error) {
	if a.Empty() {
		return nil, Errorf(op, nil, "", ErrEmpty, "")
	}
	e, ok := a.typ.AsEnum()
	if !ok {
		return nil, Errorf(op, a.typ, "", ErrTypeMismatch, "not an enum")
	}
	return e, nil
}

func intOf(v reflect.Value) int64 {
	if v.CanInt() {
		return v.Int()
	}
	return int64(v.Uint())
}

// EnumValue returns the integer value held by an enum Any.
func EnumValue(a *Any) (int64, error) {
	if _, err := enumOf("enum value", a); err != nil {
		return 0, err
	}
	return intOf(a.ptr.Elem()), nil
}

// EnumName returns the item name of the value held by an enum Any.
func EnumName(a *Any) (string, error) {
	e, err := enumOf("enum name", a)
	if err != nil {
		return "", err
	}
	v := intOf(a.ptr.Elem())
	name, ok := e.NameOf(v)
	if !ok {
		return "", Errorf("enum name", a.typ, "", ErrMemberNotFound, "no item with value %d", v)
	}
	return name, nil
}

// EnumSetByName stores the value of item name into an enum Any.
func EnumSetByName(a *Any, name string) error {
	e, err := enumOf("enum set", a)
	if err != nil {
		return err
	}
	if err := a.writable("enum set"); err != nil {
		return err
	}
	v, ok := e.Lookup(name)
	if !ok {
		return Errorf("enum set", a.typ, name, ErrMemberNotFound, "")
	}
	dst := a.ptr.Elem()
	if dst.CanInt() {
		dst.SetInt(v)
	} else {
		dst.SetUint(uint64(v))
	}
	return nil
}

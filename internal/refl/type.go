package refl

import "reflect"

// Type is the descriptor of a participating type. Descriptors are created
// once and compared by pointer.
type Type struct {
	name  string
	kind  Kind
	rtype reflect.Type
	ops   *ValueOps

	// sealed is set once an enum or class descriptor has been named and
	// bound in the registry by its builder.
	sealed bool
	// derived marks unnamed pointer and container types, whose name follows
	// their element names. bound is the name the registry holds for them.
	derived bool
	bound   string

	arith     *Arithmetic
	enum      *Enum
	class     *Class
	pointer   *Pointer
	container *Container
}

// Name returns the display name of the descriptor. Unnamed composites
// derive it from their elements on every call ("E*", "E[]", "E{}",
// "K:V{}"), so they follow a class or enum that is named after them.
func (t *Type) Name() string {
	if t == nil {
		return "<nil>"
	}
	if !t.derived {
		return t.name
	}
	switch t.kind {
	case KindPointer:
		return t.pointer.elem.Name() + "*"
	case KindVector:
		return t.container.elem.Name() + "[]"
	case KindSet:
		return t.container.elem.Name() + "{}"
	case KindMap:
		return t.container.key.Name() + ":" + t.container.elem.Name() + "{}"
	}
	return t.name
}

func (t *Type) String() string { return t.Name() }

func (t *Type) Kind() Kind { return t.kind }

// GoType returns the Go type backing the descriptor. It is nil for void and
// for descriptors declared without a Go type (see NewDynamicEnum).
func (t *Type) GoType() reflect.Type { return t.rtype }

// Ops returns the value operation table for the descriptor's Go type, or nil
// when the descriptor has no Go type.
func (t *Type) Ops() *ValueOps { return t.ops }

func (t *Type) AsArithmetic() (*Arithmetic, bool) {
	if t == nil || t.kind != KindArithmetic {
		return nil, false
	}
	return t.arith, true
}

func (t *Type) AsEnum() (*Enum, bool) {
	if t == nil || t.kind != KindEnum {
		return nil, false
	}
	return t.enum, true
}

func (t *Type) AsClass() (*Class, bool) {
	if t == nil || t.kind != KindClass {
		return nil, false
	}
	return t.class, true
}

func (t *Type) AsPointer() (*Pointer, bool) {
	if t == nil || t.kind != KindPointer {
		return nil, false
	}
	return t.pointer, true
}

// AsContainer returns the container payload of vector, set and map
// descriptors.
func (t *Type) AsContainer() (*Container, bool) {
	if t == nil || !t.kind.IsContainer() {
		return nil, false
	}
	return t.container, true
}

// Arithmetic is the payload of arithmetic descriptors.
type Arithmetic struct {
	kind   ArithKind
	signed bool
}

func (a *Arithmetic) Kind() ArithKind { return a.kind }
func (a *Arithmetic) Signed() bool    { return a.signed }

// Pointer is the payload of pointer descriptors.
type Pointer struct {
	elem *Type
}

// Elem returns the pointee descriptor.
func (p *Pointer) Elem() *Type { return p.elem }

// Container is the payload of vector, set and map descriptors.
type Container struct {
	kind Kind
	elem *Type
	key  *Type
	ops  *ContainerOps
}

func (c *Container) Kind() Kind { return c.kind }

// Elem returns the element descriptor: the value type of a map, the member
// type of a vector or set.
func (c *Container) Elem() *Type { return c.elem }

// Key returns the key descriptor of a map, nil otherwise.
func (c *Container) Key() *Type { return c.key }

func (c *Container) Ops() *ContainerOps { return c.ops }

func arithKindOf(k reflect.Kind) (ArithKind, bool) {
	switch k {
	case reflect.Bool:
		return ArithBool, false
	case reflect.Int8:
		return ArithChar, true
	case reflect.Uint8:
		return ArithChar, false
	case reflect.Int16:
		return ArithShort, true
	case reflect.Uint16:
		return ArithShort, false
	case reflect.Int32:
		return ArithInt, true
	case reflect.Uint32:
		return ArithInt, false
	case reflect.Int:
		return ArithLong, true
	case reflect.Uint, reflect.Uintptr:
		return ArithLong, false
	case reflect.Int64:
		return ArithLongLong, true
	case reflect.Uint64:
		return ArithLongLong, false
	case reflect.Float32:
		return ArithFloat, true
	case reflect.Float64:
		return ArithDouble, true
	}
	return ArithUnknown, false
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isSetShape(rt reflect.Type) bool {
	elem := rt.Elem()
	return elem.Kind() == reflect.Struct && elem.NumField() == 0
}

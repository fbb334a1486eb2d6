// Package containerops dispatches the generic container operations of a
// container member to the operation table of its concrete type.
//
// Each operation first checks that the container kind supports it
// (ErrUnsupportedOperation), then rejects writes through a const reference
// (ErrConstViolation), and only then calls the table entry.
package containerops

import "github.com/vk/dynrefl/internal/refl"

func table(op string, t *refl.Type, supported func(*refl.ContainerOps) bool) (*refl.ContainerOps, error) {
	c, ok := t.AsContainer()
	if !ok {
		return nil, refl.Errorf(op, t, "", refl.ErrTypeMismatch, "%s is not a container", t.Kind())
	}
	if !supported(c.Ops()) {
		return nil, refl.Errorf(op, t, "", refl.ErrUnsupportedOperation, "%s has no %s", c.Kind(), op)
	}
	return c.Ops(), nil
}

func checkWrite(op string, t *refl.Type, c *refl.Any) error {
	if c.Mode() == refl.ModeConstRef {
		return refl.Errorf(op, t, "", refl.ErrConstViolation, "")
	}
	return nil
}

// SizeForType returns the number of elements in c, a value of container
// type t.
func SizeForType(t *refl.Type, c *refl.Any) (int, error) {
	ops, err := table("size", t, func(o *refl.ContainerOps) bool { return o.Size != nil })
	if err != nil {
		return 0, err
	}
	return ops.Size(c)
}

// ClearForType removes every element of c.
func ClearForType(t *refl.Type, c *refl.Any) error {
	ops, err := table("clear", t, func(o *refl.ContainerOps) bool { return o.Clear != nil })
	if err != nil {
		return err
	}
	if err := checkWrite("clear", t, c); err != nil {
		return err
	}
	return ops.Clear(c)
}

// PushForType appends v to a vector or inserts it into a set. It reports
// whether the container grew.
func PushForType(t *refl.Type, c, v *refl.Any) (bool, error) {
	ops, err := table("push", t, func(o *refl.ContainerOps) bool { return o.Push != nil })
	if err != nil {
		return false, err
	}
	if err := checkWrite("push", t, c); err != nil {
		return false, err
	}
	return ops.Push(c, v)
}

// AtForType returns a copy of the i-th element of a vector.
func AtForType(t *refl.Type, c *refl.Any, i int) (*refl.Any, error) {
	ops, err := table("at", t, func(o *refl.ContainerOps) bool { return o.At != nil })
	if err != nil {
		return nil, err
	}
	return ops.At(c, i)
}

// InsertKVForType stores v under k in a map. It reports whether k was new.
func InsertKVForType(t *refl.Type, c, k, v *refl.Any) (bool, error) {
	ops, err := table("insert", t, func(o *refl.ContainerOps) bool { return o.InsertKV != nil })
	if err != nil {
		return false, err
	}
	if err := checkWrite("insert", t, c); err != nil {
		return false, err
	}
	return ops.InsertKV(c, k, v)
}

// GetValueForType returns a copy of the map value stored under k.
func GetValueForType(t *refl.Type, c, k *refl.Any) (*refl.Any, error) {
	ops, err := table("get", t, func(o *refl.ContainerOps) bool { return o.GetValue != nil })
	if err != nil {
		return nil, err
	}
	return ops.GetValue(c, k)
}

// ContainsKeyForType reports whether a map holds k or a set holds the
// element k.
func ContainsKeyForType(t *refl.Type, c, k *refl.Any) (bool, error) {
	ops, err := table("contains", t, func(o *refl.ContainerOps) bool { return o.ContainsKey != nil })
	if err != nil {
		return false, err
	}
	return ops.ContainsKey(c, k)
}

func Size(m *refl.MemberContainer, c *refl.Any) (int, error) {
	return SizeForType(m.Type(), c)
}

func Clear(m *refl.MemberContainer, c *refl.Any) error {
	return ClearForType(m.Type(), c)
}

func Push(m *refl.MemberContainer, c, v *refl.Any) (bool, error) {
	return PushForType(m.Type(), c, v)
}

func At(m *refl.MemberContainer, c *refl.Any, i int) (*refl.Any, error) {
	return AtForType(m.Type(), c, i)
}

func InsertKV(m *refl.MemberContainer, c, k, v *refl.Any) (bool, error) {
	return InsertKVForType(m.Type(), c, k, v)
}

func GetValue(m *refl.MemberContainer, c, k *refl.Any) (*refl.Any, error) {
	return GetValueForType(m.Type(), c, k)
}

func ContainsKey(m *refl.MemberContainer, c, k *refl.Any) (bool, error) {
	return ContainsKeyForType(m.Type(), c, k)
}

package refl

import "reflect"

// ContainerOps is the operation table of one concrete container type. A
// slot is nil when the operation has no meaning for the container kind:
//
//	vector: Size Clear Push At
//	set:    Size Clear Push ContainsKey
//	map:    Size Clear InsertKV GetValue ContainsKey
//
// Every closure checks that its operands carry the container's element and
// key descriptors and fails with ErrTypeMismatch otherwise.
type ContainerOps struct {
	Size  func(c *Any) (int, error)
	Clear func(c *Any) error
	// Push appends to a vector or inserts into a set. It reports whether
	// the container grew; pushing a value already in a set is a no-op.
	Push func(c *Any, v *Any) (bool, error)
	// At returns a copy of the element at index i. Elements without a copy
	// operation fail with ErrCapabilityMissing.
	At func(c *Any, i int) (*Any, error)
	// InsertKV stores v under k, overwriting an existing entry. It reports
	// whether k was new.
	InsertKV func(c *Any, k, v *Any) (bool, error)
	// GetValue returns a copy of the value stored under k, under the same
	// rule as At.
	GetValue    func(c *Any, k *Any) (*Any, error)
	ContainsKey func(c *Any, k *Any) (bool, error)
}

func containerValue(op string, t *Type, c *Any, write bool) (reflect.Value, error) {
	if c.Empty() {
		return reflect.Value{}, Errorf(op, t, "", ErrEmpty, "container is empty")
	}
	if c.typ != t {
		return reflect.Value{}, Errorf(op, t, "", ErrTypeMismatch, "got container %s", c.typ.Name())
	}
	if write && c.mode == ModeConstRef {
		return reflect.Value{}, Errorf(op, t, "", ErrConstViolation, "")
	}
	return c.ptr.Elem(), nil
}

func operand(op string, t *Type, role string, want *Type, v *Any) (reflect.Value, error) {
	if v.Empty() {
		return reflect.Value{}, Errorf(op, t, "", ErrEmpty, "%s is empty", role)
	}
	if v.typ != want {
		return reflect.Value{}, Errorf(op, t, "", ErrTypeMismatch, "wrong %s type: want %s, got %s", role, want.Name(), v.typ.Name())
	}
	if want.ops == nil || want.ops.Copy == nil {
		return reflect.Value{}, Errorf(op, t, "", ErrCapabilityMissing, "%s type %s is not copyable", role, want.Name())
	}
	return v.readValue(), nil
}

func sizeOp(t *Type) func(*Any) (int, error) {
	return func(c *Any) (int, error) {
		cv, err := containerValue("size", t, c, false)
		if err != nil {
			return 0, err
		}
		return cv.Len(), nil
	}
}

func clearOp(t *Type) func(*Any) error {
	return func(c *Any) error {
		cv, err := containerValue("clear", t, c, true)
		if err != nil {
			return err
		}
		if cv.IsNil() {
			return nil
		}
		cv.Clear()
		if cv.Kind() == reflect.Slice {
			cv.SetLen(0)
		}
		return nil
	}
}

func containsOp(t *Type, key *Type) func(*Any, *Any) (bool, error) {
	return func(c *Any, k *Any) (bool, error) {
		cv, err := containerValue("contains", t, c, false)
		if err != nil {
			return false, err
		}
		kv, err := operand("contains", t, "key", key, k)
		if err != nil {
			return false, err
		}
		return cv.MapIndex(kv).IsValid(), nil
	}
}

func newVectorOps(t *Type) *ContainerOps {
	elem := t.container.elem
	return &ContainerOps{
		Size:  sizeOp(t),
		Clear: clearOp(t),
		Push: func(c *Any, v *Any) (bool, error) {
			cv, err := containerValue("push", t, c, true)
			if err != nil {
				return false, err
			}
			ev, err := operand("push", t, "element", elem, v)
			if err != nil {
				return false, err
			}
			cv.Set(reflect.Append(cv, ev))
			return true, nil
		},
		At: func(c *Any, i int) (*Any, error) {
			cv, err := containerValue("at", t, c, false)
			if err != nil {
				return nil, err
			}
			if i < 0 || i >= cv.Len() {
				return nil, Errorf("at", t, "", ErrOutOfRange, "index %d, size %d", i, cv.Len())
			}
			return newOwned("at", elem, cv.Index(i))
		},
	}
}

func newSetOps(t *Type) *ContainerOps {
	elem := t.container.elem
	present := reflect.Zero(t.rtype.Elem())
	return &ContainerOps{
		Size:  sizeOp(t),
		Clear: clearOp(t),
		Push: func(c *Any, v *Any) (bool, error) {
			cv, err := containerValue("push", t, c, true)
			if err != nil {
				return false, err
			}
			ev, err := operand("push", t, "element", elem, v)
			if err != nil {
				return false, err
			}
			if cv.IsNil() {
				cv.Set(reflect.MakeMap(t.rtype))
			}
			if cv.MapIndex(ev).IsValid() {
				return false, nil
			}
			cv.SetMapIndex(ev, present)
			return true, nil
		},
		ContainsKey: containsOp(t, elem),
	}
}

func newMapOps(t *Type) *ContainerOps {
	key, elem := t.container.key, t.container.elem
	return &ContainerOps{
		Size:  sizeOp(t),
		Clear: clearOp(t),
		InsertKV: func(c *Any, k, v *Any) (bool, error) {
			cv, err := containerValue("insert", t, c, true)
			if err != nil {
				return false, err
			}
			kv, err := operand("insert", t, "key", key, k)
			if err != nil {
				return false, err
			}
			ev, err := operand("insert", t, "value", elem, v)
			if err != nil {
				return false, err
			}
			if cv.IsNil() {
				cv.Set(reflect.MakeMap(t.rtype))
			}
			isNew := !cv.MapIndex(kv).IsValid()
			cv.SetMapIndex(kv, ev)
			return isNew, nil
		},
		GetValue: func(c *Any, k *Any) (*Any, error) {
			cv, err := containerValue("get", t, c, false)
			if err != nil {
				return nil, err
			}
			kv, err := operand("get", t, "key", key, k)
			if err != nil {
				return nil, err
			}
			ev := cv.MapIndex(kv)
			if !ev.IsValid() {
				return nil, Errorf("get", t, "", ErrKeyNotFound, "")
			}
			return newOwned("get", elem, ev)
		},
		ContainsKey: containsOp(t, key),
	}
}

package refl

import (
	"reflect"
	"unsafe"
)

// ValueOps is the erased-value operation table of one concrete Go type. Each
// slot takes and returns pointers to storage of that type. A nil slot means
// the type lacks the capability.
type ValueOps struct {
	// Copy allocates fresh storage holding a deep copy of *src.
	Copy func(src reflect.Value) reflect.Value
	// Move allocates fresh storage holding *src and zeroes *src.
	Move func(src reflect.Value) reflect.Value
	// Destroy releases *p: it calls Destroy on payloads implementing
	// Destroyer and zeroes the storage.
	Destroy func(p reflect.Value)
}

// Uncopyable is implemented by types whose values must not be duplicated.
// Their descriptors carry no Copy operation.
type Uncopyable interface {
	NoCopy()
}

// Destroyer is implemented by payloads that hold resources to release when
// an owning Any is released.
type Destroyer interface {
	Destroy()
}

var (
	uncopyableType = reflect.TypeOf((*Uncopyable)(nil)).Elem()
	destroyerType  = reflect.TypeOf((*Destroyer)(nil)).Elem()
)

func newValueOps(rt reflect.Type) *ValueOps {
	ops := &ValueOps{
		Move: func(src reflect.Value) reflect.Value {
			dst := reflect.New(rt)
			dst.Elem().Set(src.Elem())
			src.Elem().SetZero()
			return dst
		},
		Destroy: func(p reflect.Value) {
			if d, ok := p.Interface().(Destroyer); ok {
				d.Destroy()
			}
			p.Elem().SetZero()
		},
	}

	if rt.Implements(uncopyableType) || reflect.PointerTo(rt).Implements(uncopyableType) {
		return ops
	}

	if clone, ok := cloneMethod(rt); ok {
		ops.Copy = func(src reflect.Value) reflect.Value {
			dst := reflect.New(rt)
			dst.Elem().Set(clone.Call([]reflect.Value{src})[0])
			return dst
		}
		return ops
	}

	ops.Copy = func(src reflect.Value) reflect.Value {
		dst := reflect.New(rt)
		deepCopy(dst.Elem(), src.Elem())
		return dst
	}
	return ops
}

// cloneMethod finds a `Clone() T` method on *T or T.
func cloneMethod(rt reflect.Type) (reflect.Value, bool) {
	m, ok := reflect.PointerTo(rt).MethodByName("Clone")
	if !ok {
		return reflect.Value{}, false
	}
	mt := m.Type
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.Out(0) != rt {
		return reflect.Value{}, false
	}
	return m.Func, true
}

// deepCopy copies src into the settable dst, duplicating slice, map and
// array contents, in exported and unexported struct fields alike, so that
// the copy shares no container storage with src. Pointers, interfaces,
// funcs and chans are copied shallowly.
func deepCopy(dst, src reflect.Value) {
	switch src.Kind() {
	case reflect.Slice:
		if src.IsNil() {
			dst.SetZero()
			return
		}
		n := src.Len()
		out := reflect.MakeSlice(src.Type(), n, n)
		for i := 0; i < n; i++ {
			deepCopy(out.Index(i), src.Index(i))
		}
		dst.Set(out)

	case reflect.Map:
		if src.IsNil() {
			dst.SetZero()
			return
		}
		out := reflect.MakeMapWithSize(src.Type(), src.Len())
		elemType := src.Type().Elem()
		it := src.MapRange()
		for it.Next() {
			v := reflect.New(elemType).Elem()
			deepCopy(v, it.Value())
			out.SetMapIndex(it.Key(), v)
		}
		dst.Set(out)

	case reflect.Array:
		for i := 0; i < src.Len(); i++ {
			deepCopy(dst.Index(i), src.Index(i))
		}

	case reflect.Struct:
		if !src.CanAddr() {
			tmp := reflect.New(src.Type()).Elem()
			tmp.Set(src)
			src = tmp
		}
		dst.Set(src)
		for i := 0; i < src.NumField(); i++ {
			deepCopy(exposed(dst.Field(i)), exposed(src.Field(i)))
		}

	default:
		dst.Set(src)
	}
}

// exposed returns a settable view of the addressable field f, lifting the
// read-only flag reflect puts on unexported fields.
func exposed(f reflect.Value) reflect.Value {
	if f.CanSet() {
		return f
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}

package refl

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/vk/dynrefl/internal/registry"
)

var (
	types = registry.New[*Type]()

	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]*Type)

	voidOnce sync.Once
	voidType = &Type{name: "void", kind: KindVoid}
)

// TypeOf returns the descriptor for T, creating it on first request.
func TypeOf[T any]() *Type {
	return TypeFor(reflect.TypeOf((*T)(nil)).Elem())
}

// TypeFor returns the descriptor for rt, creating it on first request. A nil
// rt yields the void descriptor.
func TypeFor(rt reflect.Type) *Type {
	if rt == nil {
		return Void()
	}
	cacheMu.Lock()
	defer cacheMu.Unlock()
	return typeForLocked(rt)
}

// Void returns the descriptor of "no value".
func Void() *Type {
	voidOnce.Do(func() {
		_ = types.Register(voidType.name, voidType)
	})
	return voidType
}

// TypeByName returns the descriptor bound to name, or nil.
func TypeByName(name string) *Type {
	t, _ := types.Lookup(name)
	return t
}

// AllTypes returns a snapshot of every name binding.
func AllTypes() map[string]*Type { return types.All() }

// TypeNames returns every bound name in lexical order.
func TypeNames() []string { return types.Names() }

// Register binds name to t. The first binding of a name wins; later attempts
// return ErrDuplicateType and leave the registry unchanged.
func Register(name string, t *Type) error {
	if err := types.Register(name, t); err != nil {
		return Errorf("register", t, "", err, "")
	}
	return nil
}

func typeForLocked(rt reflect.Type) *Type {
	if t, ok := cache[rt]; ok {
		return t
	}

	t := &Type{rtype: rt, name: rt.String(), ops: newValueOps(rt)}
	// Cached before the payload is filled so that self-referential shapes
	// (type L []L) resolve to the same descriptor.
	cache[rt] = t

	// Named composites keep their Go name; only the unnamed shapes derive
	// a name from their elements.
	t.derived = rt.Name() == ""

	k := rt.Kind()
	switch {
	case k == reflect.Bool || isInteger(k) || k == reflect.Float32 || k == reflect.Float64:
		ak, signed := arithKindOf(k)
		t.kind = KindArithmetic
		t.arith = &Arithmetic{kind: ak, signed: signed}
		if isInteger(k) && rt.PkgPath() != "" {
			// Named integers stay unbound until RegisterEnum names them.
			return t
		}

	case k == reflect.Pointer:
		t.kind = KindPointer
		t.pointer = &Pointer{elem: typeForLocked(rt.Elem())}

	case k == reflect.Slice:
		t.kind = KindVector
		t.container = &Container{kind: KindVector, elem: typeForLocked(rt.Elem())}
		t.container.ops = newVectorOps(t)

	case k == reflect.Map && isSetShape(rt):
		t.kind = KindSet
		t.container = &Container{kind: KindSet, elem: typeForLocked(rt.Key())}
		t.container.ops = newSetOps(t)

	case k == reflect.Map:
		t.kind = KindMap
		t.container = &Container{kind: KindMap, key: typeForLocked(rt.Key()), elem: typeForLocked(rt.Elem())}
		t.container.ops = newMapOps(t)

	case k == reflect.String:
		t.kind = KindClass
		t.class = &Class{self: t}
		t.sealed = true

	default:
		// Structs, interfaces, arrays, funcs and chans are opaque classes
		// until a builder names them and attaches members.
		t.derived = false
		t.kind = KindClass
		t.class = &Class{self: t}
		return t
	}

	bindLocked(t)
	return t
}

// bindLocked binds t under its current name. A name already held by
// another descriptor leaves t unbound.
func bindLocked(t *Type) {
	name := t.Name()
	if err := types.Register(name, t); err != nil {
		slog.Debug("Type name already bound, descriptor left unbound.", "name", name, "go_type", t.rtype.String())
		return
	}
	t.bound = name
}

// rebindDerivedLocked moves the binding of every unnamed composite whose
// derived name changed since it was bound, after a class or enum has been
// named.
func rebindDerivedLocked() {
	for _, t := range cache {
		if !t.derived || t.bound == t.Name() {
			continue
		}
		if t.bound == "" {
			bindLocked(t)
			continue
		}
		name := t.Name()
		if err := types.Rebind(t.bound, name); err != nil {
			slog.Debug("Derived name already bound, keeping previous binding.", "name", name, "bound", t.bound)
			continue
		}
		t.bound = name
	}
}

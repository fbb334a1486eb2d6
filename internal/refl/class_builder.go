package refl

import (
	"fmt"
	"log/slog"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// ClassBuilder collects the bases and members of a class before it is
// registered. Accessors and methods are plain Go funcs; a malformed func is a
// programming error and panics.
type ClassBuilder[T any] struct {
	t     *Type
	name  string
	bases []*BaseLink
	vars  []*MemberVariable
	funcs []*MemberFunction
	conts []*MemberContainer
}

// RegisterClass starts the registration of T under name.
func RegisterClass[T any](name string) *ClassBuilder[T] {
	t := TypeOf[T]()
	if t.kind != KindClass {
		panic(fmt.Sprintf("refl: cannot register %s as class %q: kind is %s", t.rtype, name, t.kind))
	}
	return &ClassBuilder[T]{t: t, name: name}
}

func (b *ClassBuilder[T]) ptrType() reflect.Type { return reflect.PointerTo(b.t.rtype) }

func (b *ClassBuilder[T]) panicf(format string, args ...any) {
	panic(fmt.Sprintf("refl: class %q: %s", b.name, fmt.Sprintf(format, args...)))
}

// accessor validates fn as func(*T) *V and returns it with the descriptor of
// V.
func (b *ClassBuilder[T]) accessor(what, name string, fn any) (reflect.Value, *Type) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		b.panicf("%s %q: accessor is not a func", what, name)
	}
	ft := fv.Type()
	if ft.NumIn() != 1 || ft.In(0) != b.ptrType() || ft.NumOut() != 1 || ft.Out(0).Kind() != reflect.Pointer {
		b.panicf("%s %q: accessor must be func(%s) *V, got %s", what, name, b.ptrType(), ft)
	}
	return fv, TypeFor(ft.Out(0).Elem())
}

// refThrough returns a closure binding the pointer fv yields for an
// instance of T as a reference of type vt.
func refThrough(fv reflect.Value, vt *Type) func(*Any) *Any {
	return func(self *Any) *Any {
		out := fv.Call([]reflect.Value{self.ptr})[0]
		return bind(vt, out, refMode(self))
	}
}

// Base declares B as a base of T. upcast must be a func(*T) *B returning the
// embedded base part, typically `func(s *Student) *Person { return &s.Person }`.
func (b *ClassBuilder[T]) Base(upcast any) *ClassBuilder[T] {
	fv, bt := b.accessor("base", "", upcast)
	if bt.kind != KindClass {
		b.panicf("base %s is not a class", bt.Name())
	}
	if bt == b.t {
		b.panicf("class cannot be its own base")
	}
	b.bases = append(b.bases, &BaseLink{typ: bt, upcast: refThrough(fv, bt)})
	return b
}

// Field declares a data member reached through accessor, a func(*T) *V.
func (b *ClassBuilder[T]) Field(name string, accessor any) *ClassBuilder[T] {
	fv, vt := b.accessor("field", name, accessor)
	ref := refThrough(fv, vt)
	b.vars = append(b.vars, &MemberVariable{
		name:  name,
		owner: b.t,
		typ:   vt,
		ref:   ref,
		get: func(self *Any) (*Any, error) {
			return ref(self).Clone()
		},
		set: func(self, v *Any) error {
			return ref(self).SetFrom(v)
		},
	})
	return b
}

// Container declares a vector, set or map member reached through accessor,
// a func(*T) *C.
func (b *ClassBuilder[T]) Container(name string, accessor any) *ClassBuilder[T] {
	fv, ct := b.accessor("container", name, accessor)
	if !ct.kind.IsContainer() {
		b.panicf("container %q: %s is not a container type", name, ct.Name())
	}
	b.conts = append(b.conts, &MemberContainer{
		name:  name,
		owner: b.t,
		typ:   ct,
		ref:   refThrough(fv, ct),
	})
	return b
}

// Method declares a method. fn's first parameter is the receiver: *T for a
// mutating method or T for a const one. It may return nothing, one value, a
// value and an error, or an error alone.
func (b *ClassBuilder[T]) Method(name string, fn any) *ClassBuilder[T] {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		b.panicf("method %q: not a func", name)
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		b.panicf("method %q: variadic methods are not supported", name)
	}
	if ft.NumIn() < 1 || (ft.In(0) != b.ptrType() && ft.In(0) != b.t.rtype) {
		b.panicf("method %q: first parameter must be %s or %s, got %s", name, b.ptrType(), b.t.rtype, ft)
	}
	isConst := ft.In(0) == b.t.rtype

	params := make([]*Type, ft.NumIn()-1)
	for i := range params {
		params[i] = TypeFor(ft.In(i + 1))
	}

	ret := Void()
	var hasValue, hasErr bool
	switch {
	case ft.NumOut() == 0:
	case ft.NumOut() == 1 && ft.Out(0) == errorType:
		hasErr = true
	case ft.NumOut() == 1:
		hasValue = true
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
		hasValue, hasErr = true, true
	default:
		b.panicf("method %q: results must be (), R, error or (R, error), got %s", name, ft)
	}
	if hasValue {
		ret = TypeFor(ft.Out(0))
	}

	f := &MemberFunction{
		name:    name,
		owner:   b.t,
		ret:     ret,
		params:  params,
		isConst: isConst,
	}
	f.invoker = func(self *Any, args []*Any) (*Any, error) {
		// The result is snapshotted as a Copy; refuse before any side effect.
		if hasValue && ret.ops.Copy == nil {
			return nil, &Error{Op: "invoke", Type: f.owner.Name(), Member: f.name, Err: ErrCapabilityMissing,
				Detail: "result type " + ret.Name() + " is not copyable"}
		}
		in := make([]reflect.Value, 0, len(args)+1)
		if isConst {
			in = append(in, self.readValue())
		} else {
			in = append(in, self.ptr)
		}
		for i, a := range args {
			v, err := f.bindArg(i, a)
			if err != nil {
				return nil, err
			}
			in = append(in, v)
		}

		out := fv.Call(in)
		if hasErr {
			if e := out[len(out)-1]; !e.IsNil() {
				return nil, &Error{Op: "invoke", Type: f.owner.Name(), Member: f.name, Err: e.Interface().(error)}
			}
		}
		if !hasValue {
			return &Any{}, nil
		}
		return newOwned("invoke", ret, out[0])
	}
	b.funcs = append(b.funcs, f)
	return b
}

// Register names the descriptor, binds it in the registry and attaches the
// collected bases and members. It fails with ErrDuplicateType, leaving the
// descriptor untouched, when the descriptor or the name is already
// registered.
func (b *ClassBuilder[T]) Register() (*Type, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if b.t.sealed {
		return nil, Errorf("register", b.t, "", ErrDuplicateType, "class already registered")
	}
	if err := types.Register(b.name, b.t); err != nil {
		return nil, Errorf("register", b.t, "", err, "")
	}
	slog.Debug("Registering class.",
		"name", b.name,
		"bases", len(b.bases),
		"variables", len(b.vars),
		"functions", len(b.funcs),
		"containers", len(b.conts),
	)
	b.t.name = b.name
	cls := b.t.class
	cls.bases = append(cls.bases, b.bases...)
	cls.vars = append(cls.vars, b.vars...)
	cls.funcs = append(cls.funcs, b.funcs...)
	cls.conts = append(cls.conts, b.conts...)
	b.t.sealed = true
	rebindDerivedLocked()
	return b.t, nil
}

// MustRegister is like Register but panics on failure. It suits package
// init functions.
func (b *ClassBuilder[T]) MustRegister() *Type {
	t, err := b.Register()
	if err != nil {
		panic(err)
	}
	return t
}

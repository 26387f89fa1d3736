package native

import (
	"fmt"
	"reflect"
	"strings"
)

// Bind associates a Go type with a class of the universe. Later FromReflect calls
// resolve rt to c. Several Go types may be bound to one class explicitly, but a
// named type FromReflect defines on demand owns its class: another Go type with
// the same package path and name is rejected with ErrConflict.
func (u *Universe) Bind(rt reflect.Type, c *Class) error {
	if rt == nil {
		return ErrNilType
	}
	if c == nil || c.universe != u {
		return fmt.Errorf("%w: binding for %s", ErrForeignClass, rt)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if prev, ok := u.bound[rt]; ok && prev != c {
		return fmt.Errorf("%w: %s is bound to %s", ErrConflict, rt, prev.name)
	}
	u.bound[rt] = c
	if _, ok := u.owners[c]; !ok {
		u.owners[c] = rt
	}
	return nil
}

// FromReflect describes a Go type in terms of the universe:
//
//   - predeclared types map to their classes, and interface{} to the root;
//   - []T, map[K]V and chan T become Sequence<T>, Map<K, V> and Iterator<T>;
//   - iter.Seq[T] becomes LazySequence<T>;
//   - [N]T becomes the array class of T, or a generic array if T is parameterized;
//   - bound types resolve to their class, other named types are defined on demand;
//   - instantiations of unbound generic types are Opaque.
func (u *Universe) FromReflect(rt reflect.Type) (Type, error) {
	if rt == nil {
		return nil, ErrNilType
	}
	u.mu.RLock()
	c, ok := u.bound[rt]
	u.mu.RUnlock()
	if ok {
		return c, nil
	}
	if name := rt.Name(); name != "" {
		return u.fromNamed(rt, name)
	}
	switch rt.Kind() {
	case reflect.Slice:
		return u.container(SequenceName, rt.Elem())
	case reflect.Map:
		return u.container(MapName, rt.Key(), rt.Elem())
	case reflect.Chan:
		return u.container(IteratorName, rt.Elem())
	case reflect.Array:
		elem, err := u.FromReflect(rt.Elem())
		if err != nil {
			return nil, err
		}
		if c, ok := elem.(*Class); ok {
			return u.ArrayOf(c)
		}
		return ArrayOfType(elem), nil
	case reflect.Interface:
		if rt.NumMethod() == 0 {
			return u.root, nil
		}
	}
	return &Opaque{rt: rt}, nil
}

func (u *Universe) fromNamed(rt reflect.Type, name string) (Type, error) {
	if rt.PkgPath() == "" {
		if c, ok := u.Lookup(name); ok {
			return c, nil
		}
		return &Opaque{rt: rt}, nil
	}
	if strings.ContainsRune(name, '[') {
		if rt.PkgPath() == "iter" && strings.HasPrefix(name, "Seq[") {
			// iter.Seq[V] is func(yield func(V) bool).
			return u.container(LazySequenceName, rt.In(0).In(0))
		}
		return &Opaque{rt: rt}, nil
	}
	c, err := u.Define(ClassSpec{Name: rt.PkgPath() + "." + name})
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if owner, ok := u.owners[c]; ok && owner != rt {
		return nil, fmt.Errorf("%w: %s is already described by another Go type", ErrConflict, c.name)
	}
	u.bound[rt] = c
	u.owners[c] = rt
	return c, nil
}

func (u *Universe) container(name string, elems ...reflect.Type) (Type, error) {
	raw, ok := u.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	args := make([]Type, len(elems))
	for i, e := range elems {
		t, err := u.FromReflect(e)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return Parameterize(raw, args, nil), nil
}

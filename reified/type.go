package reified

import (
	"reify/native"
)

// Type is a reified type: a nominal class or a canonical composite. It is a small
// comparable value; == compares structurally because composites are interned.
// The zero Type denotes no type.
type Type struct {
	ref native.Type // *native.Class or *Composite
}

// Of wraps a class. Generic classes are accepted as their erasure.
func Of(c *native.Class) (Type, error) {
	if c == nil {
		return Type{}, Missing("type")
	}
	return Type{ref: c}, nil
}

// MustOf is Of that panics on a nil class.
func MustOf(c *native.Class) Type {
	t, err := Of(c)
	if err != nil {
		panic(err)
	}
	return t
}

// OfType wraps any native type reference. Type variables, wildcards, generic
// arrays and unrecognized shapes are rejected with the matching error kind.
func OfType(t native.Type) (Type, error) {
	cl := Classify(t)
	if err := cl.Err(); err != nil {
		return Type{}, err
	}
	if cl.Shape == ShapeNominal {
		return Type{ref: cl.Raw}, nil
	}
	return Type{ref: cl.Composite}, nil
}

// MustOfType is OfType that panics on error.
func MustOfType(t native.Type) Type {
	r, err := OfType(t)
	if err != nil {
		panic(err)
	}
	return r
}

// Ref returns the underlying *native.Class or *Composite.
func (t Type) Ref() native.Type { return t.ref }

// IsZero reports whether t is the zero Type.
func (t Type) IsZero() bool { return t.ref == nil }

// Composite returns the composite behind a parameterized type.
func (t Type) Composite() (*Composite, bool) {
	c, ok := t.ref.(*Composite)
	return c, ok
}

// Raw returns the erased class: the base of a composite, or the class itself.
func (t Type) Raw() *native.Class {
	switch x := t.ref.(type) {
	case *native.Class:
		return x
	case *Composite:
		return x.base
	}
	return nil
}

// Args returns the type arguments as reified types. Arguments that cannot be
// reified on their own, such as wildcards, are reported through the error.
func (t Type) Args() ([]Type, error) {
	c, ok := t.Composite()
	if !ok {
		return nil, nil
	}
	out := make([]Type, len(c.args))
	for i, a := range c.args {
		r, err := OfType(a)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// SameAs reports whether t and other denote the same type.
func (t Type) SameAs(other Type) bool { return t == other }

// Hash passes through to the underlying type.
func (t Type) Hash() uint64 { return native.Hash(t.ref) }

// IsSupertypeOf reports whether the erasure of t is c or a supertype of c.
func (t Type) IsSupertypeOf(c *native.Class) bool {
	return t.Raw().IsAssignableFrom(c)
}

// IsSubtypeOf reports whether the erasure of t is c or a subtype of c.
func (t Type) IsSubtypeOf(c *native.Class) bool {
	return c.IsAssignableFrom(t.Raw())
}

// Narrow returns t unchanged when it is a subtype of c, so that callers can treat
// it as bound by c.
func (t Type) Narrow(c *native.Class) (Type, error) {
	if t.IsZero() {
		return Type{}, Missing("type")
	}
	if c == nil {
		return Type{}, Missing("base")
	}
	if !t.IsSubtypeOf(c) {
		return Type{}, newError(KindNotNarrowable, t.TypeName()+" is not a "+c.Name())
	}
	return t, nil
}

// TypeName renders the underlying type.
func (t Type) TypeName() string {
	if t.ref == nil {
		return "<nil>"
	}
	return t.ref.TypeName()
}

// String renders ReifiedType<...>.
func (t Type) String() string {
	return "ReifiedType<" + t.TypeName() + ">"
}

package reified

import (
	"fmt"

	"reify/native"
)

// Shape is the classification of a native type reference.
type Shape uint8

const (
	ShapeInvalid Shape = iota
	ShapeNominal
	ShapeParameterized
	ShapeTypeVariable
	ShapeWildcard
	ShapeGenericArray
	ShapeUnrecognized
)

func (s Shape) String() string {
	switch s {
	case ShapeNominal:
		return "nominal"
	case ShapeParameterized:
		return "parameterized"
	case ShapeTypeVariable:
		return "type-variable"
	case ShapeWildcard:
		return "wildcard"
	case ShapeGenericArray:
		return "generic-array"
	case ShapeUnrecognized:
		return "unrecognized"
	default:
		return "invalid"
	}
}

// Rejected reports whether the shape cannot be reified.
func (s Shape) Rejected() bool {
	return s >= ShapeTypeVariable
}

// Classification is the verdict of Classify.
type Classification struct {
	Shape Shape
	// Raw is set for nominal types.
	Raw *native.Class
	// Composite is set for well-formed parameterized types.
	Composite *Composite
	err       error
}

// Err returns the failure for rejected or malformed types.
func (c Classification) Err() error { return c.err }

// Classify sorts t into nominal, parameterized or one of the rejected shapes. The
// checks run in a fixed order (class, parameterized, wildcard, generic array,
// type variable) because one implementation may satisfy several shape interfaces.
func Classify(t native.Type) Classification {
	if t == nil {
		return Classification{Shape: ShapeInvalid, err: Missing("type")}
	}
	if c, ok := t.(*native.Class); ok {
		return Classification{Shape: ShapeNominal, Raw: c}
	}
	if p, ok := t.(native.ParameterizedType); ok {
		comp, err := parameterized(p)
		return Classification{Shape: ShapeParameterized, Composite: comp, err: err}
	}
	if _, ok := t.(native.WildcardType); ok {
		return rejected(ShapeWildcard, KindWildcard, t)
	}
	if _, ok := t.(native.GenericArrayType); ok {
		return rejected(ShapeGenericArray, KindGenericArray, t)
	}
	if _, ok := t.(native.TypeVariable); ok {
		return rejected(ShapeTypeVariable, KindTypeVariable, t)
	}
	return Classification{
		Shape: ShapeUnrecognized,
		err:   newError(KindUnrecognized, fmt.Sprintf("%s (%T)", t.TypeName(), t)),
	}
}

func parameterized(p native.ParameterizedType) (*Composite, error) {
	if c, ok := p.(*Composite); ok {
		return c, nil
	}
	return NewComposite(p.RawType(), p.ActualTypeArguments(), p.OwnerType())
}

func rejected(shape Shape, kind Kind, t native.Type) Classification {
	return Classification{Shape: shape, err: newError(kind, t.TypeName())}
}

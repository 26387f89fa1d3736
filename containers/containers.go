// Package containers composes reified types into generic container types and
// takes them apart again.
//
//	seq, _ := containers.Sequence(str)      // Sequence<string>
//	elem, _ := containers.Unwrap(containers.ShapeSequence, seq) // string
//
// Container classes are looked up in the universe of the element types, so every
// universe created by package native works.
package containers

import (
	"fmt"
	"strings"

	"reify/native"
	"reify/reified"
)

// Shape is a generic container pattern.
type Shape uint8

const (
	ShapeInvalid Shape = iota
	ShapeIterable
	ShapeCollection
	ShapeSequence
	ShapeSet
	ShapeOrderedSet
	ShapeNavigableSet
	ShapeIterator
	ShapeLazySequence
	ShapeMap
	ShapeOrderedMap
	ShapeNavigableMap
	ShapePair
)

var shapeClasses = [...]string{
	ShapeIterable:     native.IterableName,
	ShapeCollection:   native.CollectionName,
	ShapeSequence:     native.SequenceName,
	ShapeSet:          native.SetName,
	ShapeOrderedSet:   native.OrderedSetName,
	ShapeNavigableSet: native.NavigableSetName,
	ShapeIterator:     native.IteratorName,
	ShapeLazySequence: native.LazySequenceName,
	ShapeMap:          native.MapName,
	ShapeOrderedMap:   native.OrderedMapName,
	ShapeNavigableMap: native.NavigableMapName,
	ShapePair:         native.PairName,
}

// Shapes lists every valid shape.
func Shapes() []Shape {
	out := make([]Shape, 0, len(shapeClasses)-1)
	for s := ShapeIterable; s <= ShapePair; s++ {
		out = append(out, s)
	}
	return out
}

// ClassName names the container class of the shape.
func (s Shape) ClassName() string {
	if s == ShapeInvalid || int(s) >= len(shapeClasses) {
		return ""
	}
	return shapeClasses[s]
}

func (s Shape) String() string {
	if name := s.ClassName(); name != "" {
		return name
	}
	return fmt.Sprintf("Shape(%d)", s)
}

// Arity is the number of type arguments of the shape.
func (s Shape) Arity() int {
	switch s {
	case ShapeMap, ShapeOrderedMap, ShapeNavigableMap, ShapePair:
		return 2
	case ShapeInvalid:
		return 0
	default:
		return 1
	}
}

// ParseShape finds a shape by class name, ignoring case.
func ParseShape(name string) (Shape, error) {
	for _, s := range Shapes() {
		if strings.EqualFold(s.ClassName(), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return ShapeInvalid, fmt.Errorf("unknown container shape %q", name)
}

func (s Shape) class(u *native.Universe) (*native.Class, error) {
	name := s.ClassName()
	if name == "" {
		return nil, &reified.Error{Kind: reified.KindNotOfShape, Detail: s.String()}
	}
	c, ok := u.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", native.ErrUnknownClass, name)
	}
	return c, nil
}

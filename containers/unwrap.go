package containers

import (
	"fmt"

	"reify/reified"
)

const (
	elemIndex  = 0
	keyIndex   = 0
	valueIndex = 1
)

// Unwrap returns the first type argument of target, which must be assignable to
// the shape: the element of single-argument shapes, the key of two-argument ones.
func Unwrap(shape Shape, target reified.Type) (reified.Type, error) {
	return unwrapAt(shape, target, elemIndex)
}

// UnwrapElement returns E from any Iterable<E> subtype.
func UnwrapElement(target reified.Type) (reified.Type, error) {
	return unwrapAt(ShapeIterable, target, elemIndex)
}

// UnwrapIterator returns E from Iterator<E>.
func UnwrapIterator(target reified.Type) (reified.Type, error) {
	return unwrapAt(ShapeIterator, target, elemIndex)
}

// UnwrapLazySequence returns E from LazySequence<E>.
func UnwrapLazySequence(target reified.Type) (reified.Type, error) {
	return unwrapAt(ShapeLazySequence, target, elemIndex)
}

// UnwrapKey returns K from any Map<K, V> subtype.
func UnwrapKey(target reified.Type) (reified.Type, error) {
	return unwrapAt(ShapeMap, target, keyIndex)
}

// UnwrapValue returns V from any Map<K, V> subtype.
func UnwrapValue(target reified.Type) (reified.Type, error) {
	return unwrapAt(ShapeMap, target, valueIndex)
}

// UnwrapPairKey returns K from Pair<K, V>.
func UnwrapPairKey(target reified.Type) (reified.Type, error) {
	return unwrapAt(ShapePair, target, keyIndex)
}

// UnwrapPairValue returns V from Pair<K, V>.
func UnwrapPairValue(target reified.Type) (reified.Type, error) {
	return unwrapAt(ShapePair, target, valueIndex)
}

// UnwrapAt returns the type argument at index of target, which must be assignable
// to the shape.
func UnwrapAt(shape Shape, target reified.Type, index int) (reified.Type, error) {
	if index < 0 || index >= shape.Arity() {
		return reified.Type{}, notOfShape(fmt.Sprintf("%s has no type argument #%d", shape, index))
	}
	return unwrapAt(shape, target, index)
}

func unwrapAt(shape Shape, target reified.Type, index int) (reified.Type, error) {
	if target.IsZero() {
		return reified.Type{}, reified.Missing("target")
	}
	raw := target.Raw()
	want, err := shape.class(raw.Universe())
	if err != nil {
		return reified.Type{}, err
	}
	if !want.IsAssignableFrom(raw) {
		return reified.Type{}, notOfShape(fmt.Sprintf("%s is not a %s", raw.Name(), want.Name()))
	}
	comp, ok := target.Composite()
	if !ok {
		return reified.Type{}, notOfShape(fmt.Sprintf("%s is used raw, without type arguments", raw.Name()))
	}
	if index >= comp.NumArgs() {
		return reified.Type{}, notOfShape(fmt.Sprintf("%s has no type argument #%d", comp.TypeName(), index))
	}
	return reified.OfType(comp.Arg(index))
}

func notOfShape(detail string) error {
	return &reified.Error{Kind: reified.KindNotOfShape, Detail: detail}
}

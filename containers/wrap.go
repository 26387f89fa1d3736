package containers

import (
	"fmt"

	"reify/native"
	"reify/reified"
)

// Wrap builds shape<elems...>. It needs exactly Arity() element types.
func Wrap(shape Shape, elems ...reified.Type) (reified.Type, error) {
	if len(elems) != shape.Arity() || shape == ShapeInvalid {
		return reified.Type{}, &reified.Error{
			Kind:   reified.KindMalformedArity,
			Detail: fmt.Sprintf("%s takes %d type arguments, got %d", shape, shape.Arity(), len(elems)),
		}
	}
	args := make([]native.Type, len(elems))
	for i, e := range elems {
		if e.IsZero() {
			return reified.Type{}, reified.Missing(paramName(shape, i))
		}
		args[i] = e.Ref()
	}
	base, err := shape.class(elems[0].Raw().Universe())
	if err != nil {
		return reified.Type{}, err
	}
	comp, err := reified.NewComposite(base, args, nil)
	if err != nil {
		return reified.Type{}, err
	}
	return reified.OfType(comp)
}

func paramName(shape Shape, i int) string {
	if shape.Arity() == 2 {
		if i == 0 {
			return "key"
		}
		return "value"
	}
	return "base"
}

// Iterable returns Iterable<E>.
func Iterable(elem reified.Type) (reified.Type, error) { return Wrap(ShapeIterable, elem) }

// Collection returns Collection<E>.
func Collection(elem reified.Type) (reified.Type, error) { return Wrap(ShapeCollection, elem) }

// Sequence returns Sequence<E>.
func Sequence(elem reified.Type) (reified.Type, error) { return Wrap(ShapeSequence, elem) }

// Set returns Set<E>.
func Set(elem reified.Type) (reified.Type, error) { return Wrap(ShapeSet, elem) }

// OrderedSet returns OrderedSet<E>.
func OrderedSet(elem reified.Type) (reified.Type, error) { return Wrap(ShapeOrderedSet, elem) }

// NavigableSet returns NavigableSet<E>.
func NavigableSet(elem reified.Type) (reified.Type, error) { return Wrap(ShapeNavigableSet, elem) }

// Iterator returns Iterator<E>.
func Iterator(elem reified.Type) (reified.Type, error) { return Wrap(ShapeIterator, elem) }

// LazySequence returns LazySequence<E>.
func LazySequence(elem reified.Type) (reified.Type, error) { return Wrap(ShapeLazySequence, elem) }

// Map returns Map<K, V>.
func Map(key, value reified.Type) (reified.Type, error) { return Wrap(ShapeMap, key, value) }

// OrderedMap returns OrderedMap<K, V>.
func OrderedMap(key, value reified.Type) (reified.Type, error) {
	return Wrap(ShapeOrderedMap, key, value)
}

// NavigableMap returns NavigableMap<K, V>.
func NavigableMap(key, value reified.Type) (reified.Type, error) {
	return Wrap(ShapeNavigableMap, key, value)
}

// Pair returns Pair<K, V>.
func Pair(key, value reified.Type) (reified.Type, error) { return Wrap(ShapePair, key, value) }

package native

import (
	"iter"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct{ X, Y int }

type box[T any] struct{ v T }

func TestFromReflect(t *testing.T) {
	u := NewUniverse()
	tests := []struct {
		rt   reflect.Type
		want string
	}{
		{reflect.TypeFor[string](), "string"},
		{reflect.TypeFor[[]string](), "Sequence<string>"},
		{reflect.TypeFor[map[string][]int](), "Map<string, Sequence<int>>"},
		{reflect.TypeFor[chan bool](), "Iterator<bool>"},
		{reflect.TypeFor[iter.Seq[int]](), "LazySequence<int>"},
		{reflect.TypeFor[[4]byte](), "uint8[]"},
		{reflect.TypeFor[[2][]int](), "Sequence<int>[]"},
		{reflect.TypeFor[any](), RootName},
		{reflect.TypeFor[point](), "reify/native.point"},
	}
	for _, tt := range tests {
		t.Run(tt.rt.String(), func(t *testing.T) {
			got, err := u.FromReflect(tt.rt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.TypeName())
		})
	}
}

func TestFromReflectOpaque(t *testing.T) {
	u := NewUniverse()
	for _, rt := range []reflect.Type{
		reflect.TypeFor[box[int]](),
		reflect.TypeFor[*int](),
		reflect.TypeFor[func()](),
		reflect.TypeFor[interface{ M() }](),
	} {
		got, err := u.FromReflect(rt)
		require.NoError(t, err)
		o, ok := got.(*Opaque)
		require.True(t, ok, rt.String())
		assert.Equal(t, rt, o.Reflect())
	}
}

func TestBind(t *testing.T) {
	u := NewUniverse()
	c := u.MustDefine(ClassSpec{Name: "geo.Point"})
	require.NoError(t, u.Bind(reflect.TypeFor[point](), c))

	got, err := u.FromReflect(reflect.TypeFor[[]point]())
	require.NoError(t, err)
	assert.Equal(t, "Sequence<geo.Point>", got.TypeName())

	other := u.MustDefine(ClassSpec{Name: "geo.Other"})
	assert.ErrorIs(t, u.Bind(reflect.TypeFor[point](), other), ErrConflict)
	assert.ErrorIs(t, u.Bind(nil, c), ErrNilType)
	assert.ErrorIs(t, NewUniverse().Bind(reflect.TypeFor[point](), c), ErrForeignClass)

	_, err = u.FromReflect(nil)
	assert.ErrorIs(t, err, ErrNilType)
}

func localNamedA() reflect.Type {
	type N struct{ A int }
	return reflect.TypeFor[N]()
}

func localNamedB() reflect.Type {
	type N struct{ B string }
	return reflect.TypeFor[N]()
}

func TestFromReflectNamedOwnership(t *testing.T) {
	u := NewUniverse()
	a, b := localNamedA(), localNamedB()

	first, err := u.FromReflect(a)
	require.NoError(t, err)
	assert.Equal(t, "reify/native.N", first.TypeName())

	again, err := u.FromReflect(a)
	require.NoError(t, err)
	assert.Same(t, first, again)

	_, err = u.FromReflect(b)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = u.FromReflect(reflect.SliceOf(b))
	assert.ErrorIs(t, err, ErrConflict)
}

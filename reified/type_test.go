package reified

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reify/native"
)

func TestTypeIdentity(t *testing.T) {
	u := native.NewUniverse()
	a, err := OfType(mustParse(t, u, "Map<string, Sequence<int>>"))
	require.NoError(t, err)

	seqInt, err := NewComposite(u.MustLookup(native.SequenceName), []native.Type{u.MustLookup("int")}, nil)
	require.NoError(t, err)
	comp, err := NewComposite(u.MustLookup(native.MapName), []native.Type{u.MustLookup("string"), seqInt}, nil)
	require.NoError(t, err)
	b, err := OfType(comp)
	require.NoError(t, err)

	assert.True(t, a == b)
	assert.True(t, a.SameAs(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, "ReifiedType<Map<string, Sequence<int>>>", a.String())

	set := map[Type]int{a: 1}
	set[b]++
	assert.Len(t, set, 1)
	assert.Equal(t, 2, set[a])
}

func TestTypeNominal(t *testing.T) {
	u := native.NewUniverse()
	str := u.MustLookup("string")

	a, err := Of(str)
	require.NoError(t, err)
	b := MustOfType(str)
	assert.Equal(t, a, b)
	assert.Same(t, str, a.Raw())
	assert.Equal(t, str.Hash(), a.Hash())

	_, ok := a.Composite()
	assert.False(t, ok)
	args, err := a.Args()
	assert.NoError(t, err)
	assert.Nil(t, args)

	raw := MustOf(u.MustLookup(native.SequenceName))
	assert.Equal(t, "Sequence", raw.TypeName())

	_, err = Of(nil)
	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.Panics(t, func() { MustOf(nil) })
}

func TestTypeRejectsShapes(t *testing.T) {
	u := native.NewUniverse()
	_, err := OfType(mustParse(t, u, "T", "T"))
	assert.ErrorIs(t, err, ErrTypeVariable)
	_, err = OfType(mustParse(t, u, "?"))
	assert.ErrorIs(t, err, ErrWildcard)
	_, err = OfType(nil)
	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.Panics(t, func() { MustOfType(mustParse(t, u, "T[]", "T")) })
}

func TestTypeArgs(t *testing.T) {
	u := native.NewUniverse()
	m := MustOfType(mustParse(t, u, "Map<string, Sequence<int>>"))
	args, err := m.Args()
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Equal(t, "string", args[0].TypeName())
	assert.Equal(t, MustOfType(mustParse(t, u, "Sequence<int>")), args[1])

	w := MustOfType(mustParse(t, u, "Sequence<?>"))
	_, err = w.Args()
	assert.ErrorIs(t, err, ErrWildcard)
}

func TestTypeSubtyping(t *testing.T) {
	u := native.NewUniverse()
	seq := MustOfType(mustParse(t, u, "Sequence<string>"))
	coll := u.MustLookup(native.CollectionName)
	set := u.MustLookup(native.SetName)

	assert.True(t, seq.IsSubtypeOf(coll))
	assert.False(t, seq.IsSubtypeOf(set))
	assert.True(t, MustOf(coll).IsSupertypeOf(u.MustLookup(native.SequenceName)))

	n, err := seq.Narrow(coll)
	require.NoError(t, err)
	assert.Equal(t, seq, n)

	_, err = seq.Narrow(set)
	require.ErrorIs(t, err, ErrNotNarrowable)
	assert.Contains(t, err.Error(), "Sequence<string> is not a Set")

	_, err = Type{}.Narrow(coll)
	assert.ErrorIs(t, err, ErrMissingArgument)
	_, err = seq.Narrow(nil)
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestZeroType(t *testing.T) {
	var z Type
	assert.True(t, z.IsZero())
	assert.Nil(t, z.Raw())
	assert.Equal(t, "<nil>", z.TypeName())
	assert.Zero(t, z.Hash())
}

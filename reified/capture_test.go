package reified

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reify/native"
)

type mapHolder struct {
	Token `reify:"<V> Map<string, V>"`
}

func TestCaptureMatchesParsed(t *testing.T) {
	u := native.NewUniverse()
	got, err := Capture(u, &struct {
		Token `reify:"Map<string, Sequence<int>>"`
	}{})
	require.NoError(t, err)

	want := MustOfType(mustParse(t, u, "Map<string, Sequence<int>>"))
	assert.Equal(t, want, got)
	assert.Equal(t, want.Hash(), got.Hash())
}

func TestCaptureMatchesDirect(t *testing.T) {
	u := native.NewUniverse()
	str, integer := u.MustLookup("string"), u.MustLookup("int")
	seqOf := func(elem native.Type) native.Type {
		return native.Parameterize(u.MustLookup(native.SequenceName), []native.Type{elem}, nil)
	}
	tests := []struct {
		name   string
		marker any
		direct native.Type
	}{
		{"map of sequences", &struct {
			Token `reify:"Map<string, Sequence<int>>"`
		}{}, native.Parameterize(u.MustLookup(native.MapName), []native.Type{str, seqOf(integer)}, nil)},
		{"pair with bounded wildcard", &struct {
			Token `reify:"Pair<int, ? extends Sequence<string>>"`
		}{}, native.Parameterize(u.MustLookup(native.PairName), []native.Type{integer, native.Extends(seqOf(str))}, nil)},
		{"unbounded and root bound", &struct {
			Token `reify:"Sequence<? extends any>"`
		}{}, seqOf(native.Unbounded())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Capture(u, tt.marker)
			require.NoError(t, err)
			want, err := OfType(tt.direct)
			require.NoError(t, err)
			assert.True(t, got.SameAs(want))
			assert.Equal(t, want.Hash(), got.Hash())
		})
	}
}

func TestCaptureNestedVariable(t *testing.T) {
	u := native.NewUniverse()
	got, err := Capture(u, &mapHolder{})
	require.NoError(t, err)
	assert.Equal(t, "Map<string, V>", got.TypeName())

	comp, ok := got.Composite()
	require.True(t, ok)
	v, ok := comp.Arg(1).(native.TypeVariable)
	require.True(t, ok)
	assert.Equal(t, "mapHolder", v.Declarer())
}

func TestCaptureIsMemoized(t *testing.T) {
	u := native.NewUniverse()
	marker := &struct {
		Token `reify:"Set<rune>"`
	}{}
	assert.Equal(t, "Token<?>", marker.String())

	var wg sync.WaitGroup
	got := make([]Type, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = MustCapture(u, marker)
		}()
	}
	wg.Wait()
	for _, g := range got {
		assert.Equal(t, got[0], g)
	}
	assert.Equal(t, "Token<Set<rune>>", marker.String())
}

func TestCaptureStringDuringCapture(t *testing.T) {
	u := native.NewUniverse()
	marker := &struct {
		Token `reify:"Pair<string, int>"`
	}{}

	var wg sync.WaitGroup
	names := make([]string, 8)
	for i := range names {
		wg.Add(2)
		go func() {
			defer wg.Done()
			MustCapture(u, marker)
		}()
		go func() {
			defer wg.Done()
			names[i] = marker.String()
		}()
	}
	wg.Wait()
	for _, name := range names {
		assert.Contains(t, []string{"Token<?>", "Token<Pair<string, int>>"}, name)
	}
	assert.Equal(t, "Token<Pair<string, int>>", marker.String())
}

func TestCaptureErrors(t *testing.T) {
	u := native.NewUniverse()
	tests := []struct {
		name   string
		marker any
		want   error
	}{
		{"untagged", &struct{ Token }{}, ErrRawType},
		{"empty tag", &struct {
			Token `reify:" "`
		}{}, ErrRawType},
		{"bare declaration", &struct {
			Token `reify:"<T>"`
		}{}, ErrRawType},
		{"type variable", &struct {
			Token `reify:"<T> T"`
		}{}, ErrTypeVariable},
		{"generic array", &struct {
			Token `reify:"<T> T[]"`
		}{}, ErrGenericArray},
		{"wildcard", &struct {
			Token `reify:"?"`
		}{}, ErrWildcard},
		{"two arguments", &struct {
			Token `reify:"string, int"`
		}{}, ErrIllDefined},
		{"syntax", &struct {
			Token `reify:"Sequence<"`
		}{}, ErrIllDefined},
		{"not a pointer", struct{ Token }{}, ErrIllDefined},
		{"no token", &struct{ X int }{}, ErrIllDefined},
		{"named token field", &struct {
			T Token `reify:"string"`
		}{}, ErrIllDefined},
		{"nil marker", nil, ErrMissingArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Capture(u, tt.marker)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCaptureSyntaxCause(t *testing.T) {
	_, err := Capture(native.NewUniverse(), &struct {
		Token `reify:"Sequence<"`
	}{})
	assert.ErrorIs(t, err, native.ErrSyntax)
	assert.Equal(t, KindIllDefined, KindOf(err))
}

func TestCaptureMemoizesErrors(t *testing.T) {
	u := native.NewUniverse()
	marker := &struct {
		Token `reify:"<T> T"`
	}{}
	_, first := Capture(u, marker)
	_, second := Capture(u, marker)
	assert.Same(t, first, second)
}

func TestCaptureNilUniverse(t *testing.T) {
	_, err := Capture(nil, &struct{ Token }{})
	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.Panics(t, func() { MustCapture(nil, nil) })
}

func TestForMatchesParsed(t *testing.T) {
	u := native.NewUniverse()
	got, err := For[[]string](u)
	require.NoError(t, err)
	assert.Equal(t, MustOfType(mustParse(t, u, "Sequence<string>")), got)

	again, err := For[[]string](u)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	m, err := For[map[string][]int](u)
	require.NoError(t, err)
	assert.Equal(t, "Map<string, Sequence<int>>", m.TypeName())

	_, err = For[func()](u)
	assert.ErrorIs(t, err, ErrUnrecognized)

	a, err := forLocalA(u)
	require.NoError(t, err)
	b, err := forLocalB(u)
	require.NoError(t, err)
	assert.Equal(t, a.TypeName(), b.TypeName())
	assert.False(t, a.SameAs(b))

	_, err = For[int](nil)
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func forLocalA(u *native.Universe) (Type, error) {
	type T struct{ A int }
	return For[[]*T](u)
}

func forLocalB(u *native.Universe) (Type, error) {
	type T struct{ B string }
	return For[[]*T](u)
}

package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRendersCanonically(t *testing.T) {
	u := NewUniverse()
	u.MustDefine(ClassSpec{Name: "com.acme.Outer", Params: []string{"A"}})
	u.MustDefine(ClassSpec{Name: "com.acme.Outer$Middle", Params: []string{"B"}})
	u.MustDefine(ClassSpec{Name: "com.acme.Outer$Middle$Inner", Params: []string{"C"}})

	tests := []struct {
		sig  string
		vars []string
		want string
	}{
		{"string", nil, "string"},
		{"Map<string,Sequence<int>>", nil, "Map<string, Sequence<int>>"},
		{"Sequence<?>", nil, "Sequence<?>"},
		{"Sequence<? extends Collection<int>>", nil, "Sequence<? extends Collection<int>>"},
		{"Sequence<? super int>", nil, "Sequence<? super int>"},
		{"int[][]", nil, "int[][]"},
		{"Sequence<int>[]", nil, "Sequence<int>[]"},
		{"Map<K, V>", []string{"K", "V"}, "Map<K, V>"},
		{"T[]", []string{"T"}, "T[]"},
		{"com.acme.Outer<string>.Middle<int>.Inner<bool>", nil,
			"com.acme.Outer<string>$Middle<int>$Inner<bool>"},
		{"com.acme.Outer$Middle<int>", nil, "com.acme.Outer$Middle<int>"},
	}
	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			got, err := u.Parse(tt.sig, tt.vars...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.TypeName())
		})
	}
}

func TestParseShapes(t *testing.T) {
	u := NewUniverse()

	v, err := u.Parse("T", "T")
	require.NoError(t, err)
	assert.Implements(t, (*TypeVariable)(nil), v)

	w, err := u.Parse("?")
	require.NoError(t, err)
	assert.Implements(t, (*WildcardType)(nil), w)

	ga, err := u.Parse("T[]", "T")
	require.NoError(t, err)
	assert.Implements(t, (*GenericArrayType)(nil), ga)

	arr, err := u.Parse("string[]")
	require.NoError(t, err)
	c, ok := arr.(*Class)
	require.True(t, ok)
	assert.True(t, c.IsArray())
}

func TestParseErrors(t *testing.T) {
	u := NewUniverse()
	tests := []struct {
		sig  string
		want error
	}{
		{"Sequence<int", ErrSyntax},
		{"Map<int>", ErrArity},
		{"Nope<int>", ErrUnknownClass},
		{"int>", ErrSyntax},
		{"", ErrSyntax},
		{"Sequence<int> extra", ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			_, err := u.Parse(tt.sig)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseDecl(t *testing.T) {
	u := NewUniverse()

	args, err := u.ParseDecl("<K, V> Map<K, Sequence<V>>", "acme.Holder")
	require.NoError(t, err)
	require.Len(t, args, 1)
	p, ok := args[0].(ParameterizedType)
	require.True(t, ok)
	k, ok := p.ActualTypeArguments()[0].(TypeVariable)
	require.True(t, ok)
	assert.Equal(t, "acme.Holder", k.Declarer())

	args, err = u.ParseDecl("string, int", "x")
	require.NoError(t, err)
	assert.Len(t, args, 2)

	args, err = u.ParseDecl("", "x")
	require.NoError(t, err)
	assert.Empty(t, args)

	_, err = u.ParseDecl("<T, T> T", "x")
	assert.ErrorIs(t, err, ErrDuplicateParam)
}

func TestParseList(t *testing.T) {
	u := NewUniverse()
	ts, err := u.ParseList("string, Pair<int, bool>")
	require.NoError(t, err)
	require.Len(t, ts, 2)
	assert.Equal(t, "Pair<int, bool>", ts[1].TypeName())
}

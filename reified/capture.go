package reified

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"reify/native"
)

// TagKey is the struct tag read from an embedded Token.
const TagKey = "reify"

// Token marks a struct as a capture marker. Embed it in an anonymous struct and
// declare the captured type in the reify tag:
//
//	marker := &struct {
//		reified.Token `reify:"Map<int, ? extends Sequence<string>>"`
//	}{}
//	t, err := reified.Capture(native.Std(), marker)
//
// A "<T, ...>" prefix in the tag declares type variables, the way a generic
// subclass would pass its own parameter through.
//
// The first Capture resolves the tag and stores the result in the Token; every
// later Capture of the same marker returns that result.
type Token struct {
	once sync.Once
	done atomic.Pointer[captured]
}

type captured struct {
	typ Type
	err error
}

var tokenType = reflect.TypeFor[Token]()

// String renders Token<...> once the token has been captured.
func (t *Token) String() string {
	c := t.done.Load()
	if c == nil || c.typ.IsZero() {
		return "Token<?>"
	}
	return "Token<" + c.typ.TypeName() + ">"
}

// Capture extracts the type declared by marker, a pointer to a struct embedding a
// tagged Token. Safe for concurrent use; the tag is resolved at most once.
func Capture(u *native.Universe, marker any) (Type, error) {
	if marker == nil {
		return Type{}, Missing("marker")
	}
	if u == nil {
		return Type{}, Missing("universe")
	}
	tok, field, name, err := locateToken(marker)
	if err != nil {
		return Type{}, err
	}
	tok.once.Do(func() {
		typ, err := resolveToken(u, field, name)
		tok.done.Store(&captured{typ: typ, err: err})
	})
	c := tok.done.Load()
	return c.typ, c.err
}

// MustCapture is Capture that panics on error.
func MustCapture(u *native.Universe, marker any) Type {
	t, err := Capture(u, marker)
	if err != nil {
		panic(err)
	}
	return t
}

func locateToken(marker any) (*Token, reflect.StructField, string, error) {
	rv := reflect.ValueOf(marker)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, reflect.StructField{}, "", illDefined(
			fmt.Sprintf("marker %T", marker),
			fmt.Errorf("marker must be a non-nil pointer to a struct"))
	}
	elem := rv.Elem()
	rt := elem.Type()
	name := rt.Name()
	if name == "" {
		name = "marker"
	}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Anonymous && f.Type == tokenType {
			tok, ok := elem.Field(i).Addr().Interface().(*Token)
			if !ok {
				break
			}
			return tok, f, name, nil
		}
	}
	return nil, reflect.StructField{}, "", illDefined(
		fmt.Sprintf("marker %s", rt),
		fmt.Errorf("no embedded reified.Token"))
}

// resolveToken reads the tag as the type argument list of the marker's supertype.
func resolveToken(u *native.Universe, field reflect.StructField, declarer string) (Type, error) {
	tag, ok := field.Tag.Lookup(TagKey)
	if !ok || strings.TrimSpace(tag) == "" {
		return Type{}, newError(KindRawType, declarer)
	}
	args, err := u.ParseDecl(tag, declarer)
	if err != nil {
		return Type{}, illDefined(fmt.Sprintf("%q", tag), err)
	}
	switch len(args) {
	case 0:
		return Type{}, newError(KindRawType, declarer)
	case 1:
	default:
		return Type{}, illDefined(fmt.Sprintf("%q", tag),
			fmt.Errorf("token takes 1 type argument, got %d", len(args)))
	}
	arg, err := Normalize(args[0])
	if err != nil {
		return Type{}, illDefined(fmt.Sprintf("%q", tag), err)
	}
	return OfType(arg)
}

type forKey struct {
	u  *native.Universe
	rt reflect.Type
}

var forCache sync.Map // forKey -> Type

// For reifies the Go type X through the universe's reflection bridge. Results are
// cached per universe and Go type.
func For[X any](u *native.Universe) (Type, error) {
	if u == nil {
		return Type{}, Missing("universe")
	}
	rt := reflect.TypeFor[X]()
	key := forKey{u: u, rt: rt}
	if v, ok := forCache.Load(key); ok {
		return v.(Type), nil
	}
	nt, err := u.FromReflect(rt)
	if err != nil {
		return Type{}, illDefined(rt.String(), err)
	}
	t, err := OfType(nt)
	if err != nil {
		return Type{}, err
	}
	v, _ := forCache.LoadOrStore(key, t)
	return v.(Type), nil
}

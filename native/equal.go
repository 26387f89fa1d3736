package native

import (
	"fmt"
	"strings"
)

// Hasher is implemented by types that memoize their structural hash.
type Hasher interface {
	Hash() uint64
}

// Keyer is implemented by types that memoize their structural key.
type Keyer interface {
	Key() string
}

// Equal reports whether a and b denote the same type. Parameterized types compare
// by owner, raw class and arguments regardless of which implementation built them.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Class:
		y, ok := b.(*Class)
		return ok && x == y
	case ParameterizedType:
		y, ok := b.(ParameterizedType)
		if !ok {
			return false
		}
		return x.RawType() == y.RawType() &&
			Equal(x.OwnerType(), y.OwnerType()) &&
			equalLists(x.ActualTypeArguments(), y.ActualTypeArguments())
	case TypeVariable:
		y, ok := b.(TypeVariable)
		return ok && x.Name() == y.Name() && x.Declarer() == y.Declarer()
	case WildcardType:
		y, ok := b.(WildcardType)
		return ok && equalLists(effectiveUpper(x.UpperBounds()), effectiveUpper(y.UpperBounds())) &&
			equalLists(x.LowerBounds(), y.LowerBounds())
	case GenericArrayType:
		y, ok := b.(GenericArrayType)
		return ok && Equal(x.GenericComponentType(), y.GenericComponentType())
	case *Opaque:
		y, ok := b.(*Opaque)
		return ok && x.rt == y.rt
	default:
		return false
	}
}

func equalLists(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Hash returns a structural hash consistent with Equal.
func Hash(t Type) uint64 {
	switch x := t.(type) {
	case nil:
		return 0
	case *Class:
		return x.hash
	case Hasher:
		return x.Hash()
	case ParameterizedType:
		return HashParameterized(x.RawType(), x.OwnerType(), x.ActualTypeArguments())
	case TypeVariable:
		return hashString(x.Name()) ^ hashString(x.Declarer())
	case WildcardType:
		return HashList(x.LowerBounds()) ^ HashList(effectiveUpper(x.UpperBounds()))
	case GenericArrayType:
		return Hash(x.GenericComponentType())
	default:
		return hashString(x.TypeName())
	}
}

// HashParameterized combines hash(raw) ^ hash(owner) ^ HashList(args).
func HashParameterized(raw *Class, owner Type, args []Type) uint64 {
	var h uint64
	if raw != nil {
		h = raw.hash
	}
	return h ^ Hash(owner) ^ HashList(args)
}

// HashList folds element hashes with a 31 multiplier, starting from 1.
func HashList(ts []Type) uint64 {
	h := uint64(1)
	for _, t := range ts {
		h = 31*h + Hash(t)
	}
	return h
}

// Key returns a canonical string that is equal for two types exactly when Equal
// reports them equal.
func Key(t Type) string {
	var sb strings.Builder
	writeKey(&sb, t)
	return sb.String()
}

func writeKey(sb *strings.Builder, t Type) {
	switch x := t.(type) {
	case nil:
		sb.WriteByte('-')
	case *Class:
		sb.WriteString(x.key())
	case Keyer:
		sb.WriteString(x.Key())
	case ParameterizedType:
		WriteParameterizedKey(sb, x.RawType(), x.OwnerType(), x.ActualTypeArguments())
	case TypeVariable:
		sb.WriteString("v(")
		sb.WriteString(x.Declarer())
		sb.WriteByte(':')
		sb.WriteString(x.Name())
		sb.WriteByte(')')
	case WildcardType:
		sb.WriteString("w(")
		writeKeys(sb, effectiveUpper(x.UpperBounds()))
		sb.WriteByte(';')
		writeKeys(sb, x.LowerBounds())
		sb.WriteByte(')')
	case GenericArrayType:
		sb.WriteString("a(")
		writeKey(sb, x.GenericComponentType())
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "u(%T:%s)", x, x.TypeName())
	}
}

// WriteParameterizedKey writes the key of raw applied to args under owner.
func WriteParameterizedKey(sb *strings.Builder, raw *Class, owner Type, args []Type) {
	sb.WriteString("p(")
	if raw != nil {
		sb.WriteString(raw.key())
	}
	sb.WriteByte('|')
	writeKey(sb, owner)
	sb.WriteByte('|')
	writeKeys(sb, args)
	sb.WriteByte(')')
}

func writeKeys(sb *strings.Builder, ts []Type) {
	for i, t := range ts {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeKey(sb, t)
	}
}

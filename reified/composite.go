package reified

import (
	"fmt"
	"slices"
	"strings"

	"reify/native"
)

// Composite is the canonical representation of a parameterized type: a base
// class applied to ordered arguments, under an optional owner.
//
// Composites are hash-consed: two structurally equal composites are the same
// pointer, so == is structural equality and composites can key maps. Arguments and
// owner are themselves canonical.
type Composite struct {
	base  *native.Class
	args  []native.Type
	owner native.Type
	id    CompositeID
	key   string
	hash  uint64
}

// NewComposite builds (or finds) the canonical composite for base applied to args.
// A nil owner defaults to the class enclosing base.
func NewComposite(base *native.Class, args []native.Type, owner native.Type) (*Composite, error) {
	if base == nil {
		return nil, Missing("base")
	}
	if len(args) != base.Arity() {
		return nil, newError(KindMalformedArity,
			fmt.Sprintf("%s declares %d, got %d", base.Name(), base.Arity(), len(args)))
	}
	canon := make([]native.Type, len(args))
	for i, a := range args {
		if a == nil {
			return nil, Missing(fmt.Sprintf("args[%d]", i))
		}
		n, err := Normalize(a)
		if err != nil {
			return nil, err
		}
		canon[i] = n
	}
	if owner == nil {
		owner = base.DeclaringType()
	} else {
		n, err := Normalize(owner)
		if err != nil {
			return nil, err
		}
		owner = n
	}
	return interner.intern(base, canon, owner)
}

// Normalize re-expresses t canonically: foreign parameterized types become
// composites, recursively through arguments, owners, wildcard bounds and generic
// array components. Canonical values are returned unchanged.
func Normalize(t native.Type) (native.Type, error) {
	switch x := t.(type) {
	case nil:
		return nil, Missing("type")
	case *native.Class, *Composite:
		return x, nil
	case native.ParameterizedType:
		return NewComposite(x.RawType(), x.ActualTypeArguments(), x.OwnerType())
	case native.WildcardType:
		if canonical(x) {
			return x, nil
		}
		upper, err := normalizeList(x.UpperBounds())
		if err != nil {
			return nil, err
		}
		lower, err := normalizeList(x.LowerBounds())
		if err != nil {
			return nil, err
		}
		return native.NewWildcard(upper, lower), nil
	case native.GenericArrayType:
		if canonical(x) {
			return x, nil
		}
		n, err := Normalize(x.GenericComponentType())
		if err != nil {
			return nil, err
		}
		return native.ArrayOfType(n), nil
	default:
		return t, nil
	}
}

func normalizeList(ts []native.Type) ([]native.Type, error) {
	out := make([]native.Type, len(ts))
	for i, t := range ts {
		n, err := Normalize(t)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// canonical reports whether t contains no foreign parameterized type.
func canonical(t native.Type) bool {
	switch x := t.(type) {
	case nil, *native.Class, *Composite:
		return true
	case native.ParameterizedType:
		return false
	case native.WildcardType:
		return allCanonical(x.UpperBounds()) && allCanonical(x.LowerBounds())
	case native.GenericArrayType:
		return canonical(x.GenericComponentType())
	default:
		return true
	}
}

func allCanonical(ts []native.Type) bool {
	for _, t := range ts {
		if !canonical(t) {
			return false
		}
	}
	return true
}

// RawType returns the base class.
func (c *Composite) RawType() *native.Class { return c.base }

// ActualTypeArguments returns a copy of the canonical arguments.
func (c *Composite) ActualTypeArguments() []native.Type { return slices.Clone(c.args) }

// OwnerType returns the owner, or nil.
func (c *Composite) OwnerType() native.Type { return c.owner }

// NumArgs returns the number of type arguments.
func (c *Composite) NumArgs() int { return len(c.args) }

// Arg returns the i-th type argument.
func (c *Composite) Arg(i int) native.Type { return c.args[i] }

// ID returns the interner slot of the composite.
func (c *Composite) ID() CompositeID { return c.id }

// Hash returns hash(base) ^ hash(owner) ^ combined hash of the arguments, computed
// once at construction.
func (c *Composite) Hash() uint64 { return c.hash }

// Key returns the structural key the composite is interned under.
func (c *Composite) Key() string { return c.key }

// Equal reports structural equality. Any native.ParameterizedType with the same
// owner, base and arguments is equal to c, whichever implementation built it.
func (c *Composite) Equal(other native.Type) bool {
	if o, ok := other.(*Composite); ok {
		return c == o
	}
	return native.Equal(c, other)
}

// TypeName renders [owner$]base<arg1, arg2, ...>. A parameterized owner is
// rendered recursively and the owner's raw name is stripped from the base name.
func (c *Composite) TypeName() string {
	var sb strings.Builder
	sb.Grow(64)
	if c.owner != nil {
		if oc, ok := c.owner.(*native.Class); ok {
			sb.WriteString(oc.Name())
		} else {
			sb.WriteString(c.owner.TypeName())
		}
		sb.WriteByte('$')
		sb.WriteString(stripOwner(c.base.Name(), c.owner))
	} else {
		sb.WriteString(c.base.Name())
	}
	if len(c.args) > 0 {
		sb.WriteByte('<')
		for i, a := range c.args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.TypeName())
		}
		sb.WriteByte('>')
	}
	return sb.String()
}

func (c *Composite) String() string { return c.TypeName() }

func stripOwner(name string, owner native.Type) string {
	var ownerName string
	switch o := owner.(type) {
	case *native.Class:
		ownerName = o.Name()
	case native.ParameterizedType:
		ownerName = o.RawType().Name()
	default:
		return name
	}
	if rest, ok := strings.CutPrefix(name, ownerName+"$"); ok {
		return rest
	}
	return name
}

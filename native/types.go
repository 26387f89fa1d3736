package native

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Type is any type reference the host can describe.
type Type interface {
	// TypeName renders the type the way the host prints it.
	TypeName() string
}

// ParameterizedType is a generic class applied to type arguments.
type ParameterizedType interface {
	Type
	RawType() *Class
	ActualTypeArguments() []Type
	// OwnerType is the type this one is a member of, or nil for top-level types.
	OwnerType() Type
}

// TypeVariable is a generic parameter that has not been bound to a type.
type TypeVariable interface {
	Type
	Name() string
	// Declarer names the generic declaration introducing the variable.
	Declarer() string
}

// WildcardType is a bounded or unbounded wildcard argument.
type WildcardType interface {
	Type
	UpperBounds() []Type
	LowerBounds() []Type
}

// GenericArrayType is an array whose component type is a type variable or a
// parameterized type.
type GenericArrayType interface {
	Type
	GenericComponentType() Type
}

// Parameterized is the host's own ParameterizedType. It does not validate the
// argument count against the raw class arity; that is left to consumers.
type Parameterized struct {
	raw   *Class
	args  []Type
	owner Type
}

// Parameterize builds a parameterized reference. A nil owner defaults to the
// declaring class of raw.
func Parameterize(raw *Class, args []Type, owner Type) *Parameterized {
	if owner == nil && raw != nil {
		owner = raw.DeclaringType()
	}
	return &Parameterized{raw: raw, args: slices.Clone(args), owner: owner}
}

// RawType returns the generic class being applied.
func (p *Parameterized) RawType() *Class { return p.raw }

// ActualTypeArguments returns a copy of the type arguments.
func (p *Parameterized) ActualTypeArguments() []Type { return slices.Clone(p.args) }

// OwnerType returns the enclosing type, if any.
func (p *Parameterized) OwnerType() Type { return p.owner }

// TypeName renders owner$Simple<args>.
func (p *Parameterized) TypeName() string {
	var sb strings.Builder
	if p.owner != nil {
		if oc, ok := p.owner.(*Class); ok {
			sb.WriteString(oc.Name())
		} else {
			sb.WriteString(p.owner.TypeName())
		}
		sb.WriteByte('$')
		sb.WriteString(p.raw.SimpleName())
	} else if p.raw != nil {
		sb.WriteString(p.raw.Name())
	}
	if len(p.args) > 0 {
		sb.WriteByte('<')
		writeTypeNames(&sb, p.args)
		sb.WriteByte('>')
	}
	return sb.String()
}

func (p *Parameterized) String() string { return p.TypeName() }

// Var is the host's own TypeVariable.
type Var struct {
	name     string
	declarer string
}

// NewVar declares a type variable named name on declarer.
func NewVar(name, declarer string) *Var {
	return &Var{name: normalizeName(name), declarer: declarer}
}

func (v *Var) Name() string { return v.name }
func (v *Var) Declarer() string { return v.declarer }
func (v *Var) TypeName() string { return v.name }
func (v *Var) String() string { return v.name }

// Wildcard is the host's own WildcardType.
type Wildcard struct {
	upper []Type
	lower []Type
}

// Unbounded returns the wildcard "?".
func Unbounded() *Wildcard { return &Wildcard{} }

// Extends returns the wildcard "? extends bound". Extending the root class is the
// same as "?".
func Extends(bound Type) *Wildcard { return NewWildcard([]Type{bound}, nil) }

// Super returns the wildcard "? super bound".
func Super(bound Type) *Wildcard { return &Wildcard{lower: []Type{bound}} }

// NewWildcard builds a wildcard from explicit bound lists.
func NewWildcard(upper, lower []Type) *Wildcard {
	return &Wildcard{upper: slices.Clone(effectiveUpper(upper)), lower: slices.Clone(lower)}
}

// effectiveUpper drops a lone root bound, which every type satisfies.
func effectiveUpper(upper []Type) []Type {
	if len(upper) == 1 {
		if c, ok := upper[0].(*Class); ok && c.IsRoot() {
			return nil
		}
	}
	return upper
}

func (w *Wildcard) UpperBounds() []Type { return slices.Clone(w.upper) }
func (w *Wildcard) LowerBounds() []Type { return slices.Clone(w.lower) }

func (w *Wildcard) TypeName() string {
	var sb strings.Builder
	sb.WriteByte('?')
	switch {
	case len(w.lower) > 0:
		sb.WriteString(" super ")
		writeBounds(&sb, w.lower)
	case len(w.upper) > 0:
		sb.WriteString(" extends ")
		writeBounds(&sb, w.upper)
	}
	return sb.String()
}

func (w *Wildcard) String() string { return w.TypeName() }

// GenericArray is the host's own GenericArrayType.
type GenericArray struct {
	component Type
}

// ArrayOfType returns an array of a type variable or parameterized component.
func ArrayOfType(component Type) *GenericArray {
	return &GenericArray{component: component}
}

func (a *GenericArray) GenericComponentType() Type { return a.component }
func (a *GenericArray) TypeName() string { return a.component.TypeName() + "[]" }
func (a *GenericArray) String() string { return a.TypeName() }

// Opaque wraps a Go type the host cannot decompose, such as an instantiation of a
// user-declared generic type. It matches none of the recognized shapes.
type Opaque struct {
	rt reflect.Type
}

// Reflect returns the wrapped Go type.
func (o *Opaque) Reflect() reflect.Type { return o.rt }
func (o *Opaque) TypeName() string { return o.rt.String() }
func (o *Opaque) String() string { return o.TypeName() }

var (
	opaqueSerials sync.Map // reflect.Type -> uint64
	opaqueNext    atomic.Uint64
)

// Key identifies the wrapped Go type. Distinct Go types that print alike get
// distinct keys.
func (o *Opaque) Key() string {
	v, ok := opaqueSerials.Load(o.rt)
	if !ok {
		v, _ = opaqueSerials.LoadOrStore(o.rt, opaqueNext.Add(1))
	}
	return "o(" + strconv.FormatUint(v.(uint64), 10) + ")"
}

func writeTypeNames(sb *strings.Builder, ts []Type) {
	for i, t := range ts {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(typeName(t))
	}
}

func writeBounds(sb *strings.Builder, ts []Type) {
	for i, t := range ts {
		if i > 0 {
			sb.WriteString(" & ")
		}
		sb.WriteString(typeName(t))
	}
}

func typeName(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.TypeName()
}

package native

import (
	"hash/fnv"
	"slices"
	"strconv"
	"strings"
)

// Class is a raw type identity: a nominal type, or the erasure of a generic one.
// Classes are created by a Universe and compared by pointer.
type Class struct {
	name      string
	params    []string
	enclosing *Class
	supers    []*Class
	component *Class // array classes only
	universe  *Universe
	slot      uint32
	hash      uint64
}

// Name returns the fully-qualified name, with nested classes joined by '$'.
func (c *Class) Name() string { return c.name }

// TypeName is the same as Name.
func (c *Class) TypeName() string { return c.name }

func (c *Class) String() string { return c.name }

// SimpleName strips the package qualifier and any enclosing class names.
func (c *Class) SimpleName() string {
	if c.component != nil {
		return c.component.SimpleName() + "[]"
	}
	name := c.name
	if c.enclosing != nil && strings.HasPrefix(name, c.enclosing.name+"$") {
		return name[len(c.enclosing.name)+1:]
	}
	if i := strings.LastIndexByte(name, '$'); i >= 0 {
		return name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Arity is the number of declared type parameters.
func (c *Class) Arity() int { return len(c.params) }

// TypeParameters returns the declared type parameters as variables.
func (c *Class) TypeParameters() []*Var {
	out := make([]*Var, len(c.params))
	for i, p := range c.params {
		out[i] = &Var{name: p, declarer: c.name}
	}
	return out
}

// Enclosing returns the lexically enclosing class, or nil.
func (c *Class) Enclosing() *Class { return c.enclosing }

// DeclaringType returns the enclosing class as a Type, or a nil interface when
// the class is top-level.
func (c *Class) DeclaringType() Type {
	if c.enclosing == nil {
		return nil
	}
	return c.enclosing
}

// Supertypes returns the direct supertypes.
func (c *Class) Supertypes() []*Class { return slices.Clone(c.supers) }

// Universe returns the class table that declared c.
func (c *Class) Universe() *Universe { return c.universe }

// IsRoot reports whether c is the root class of its universe.
func (c *Class) IsRoot() bool { return c.universe != nil && c.universe.root == c }

// IsArray reports whether c is a nominal array class.
func (c *Class) IsArray() bool { return c.component != nil }

// Component returns the element class of an array class, or nil.
func (c *Class) Component() *Class { return c.component }

// Hash returns a hash of the class name.
func (c *Class) Hash() uint64 { return c.hash }

// IsAssignableFrom reports whether a value of class other can be used where c is
// expected: other is c, inherits from c, or c is the universe root.
func (c *Class) IsAssignableFrom(other *Class) bool {
	if c == nil || other == nil {
		return false
	}
	if c == other || c == c.universe.root {
		return true
	}
	if c.component != nil && other.component != nil {
		return c.component.IsAssignableFrom(other.component)
	}
	seen := map[*Class]bool{other: true}
	stack := slices.Clone(other.supers)
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if next == c {
			return true
		}
		if seen[next] {
			continue
		}
		seen[next] = true
		stack = append(stack, next.supers...)
	}
	return false
}

func (c *Class) key() string {
	return "c" + strconv.FormatUint(uint64(c.universe.serial), 10) + "." + strconv.FormatUint(uint64(c.slot), 10)
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

package native

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// RootName names the class every other class is assignable to.
const RootName = "any"

// Names of the generic container classes every universe is seeded with.
const (
	IterableName     = "Iterable"
	CollectionName   = "Collection"
	SequenceName     = "Sequence"
	SetName          = "Set"
	OrderedSetName   = "OrderedSet"
	NavigableSetName = "NavigableSet"
	IteratorName     = "Iterator"
	LazySequenceName = "LazySequence"
	MapName          = "Map"
	OrderedMapName   = "OrderedMap"
	NavigableMapName = "NavigableMap"
	PairName         = "Pair"
)

var predeclared = []string{
	"bool", "string", "error",
	"int", "int8", "int16", "int32", "int64",
	"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
	"float32", "float64", "complex64", "complex128",
	"byte", "rune",
}

// ClassSpec describes a class to define.
type ClassSpec struct {
	Name string
	// Params are the declared type parameter names; empty for non-generic classes.
	Params []string
	// Supers are the direct supertypes, which must belong to the same universe.
	Supers []*Class
	// Enclosing defaults to the class named by the prefix before the last '$'.
	Enclosing *Class
}

var universeSerial atomic.Uint32

// Universe is a class table. It is safe for concurrent use.
type Universe struct {
	mu      sync.RWMutex
	serial  uint32
	classes []*Class // slot 0 is reserved
	index   map[string]*Class
	bound   map[reflect.Type]*Class
	owners  map[*Class]reflect.Type // first Go type bound to each class
	root    *Class
}

// NewUniverse returns a universe seeded with the root, the predeclared Go names
// and the container shapes.
func NewUniverse() *Universe {
	u := &Universe{
		serial:  universeSerial.Add(1),
		classes: make([]*Class, 1, 64),
		index:   make(map[string]*Class, 64),
		bound:   make(map[reflect.Type]*Class),
		owners:  make(map[*Class]reflect.Type),
	}
	u.root = u.MustDefine(ClassSpec{Name: RootName})
	for _, name := range predeclared {
		u.MustDefine(ClassSpec{Name: name})
	}
	u.seedContainers()
	return u
}

func (u *Universe) seedContainers() {
	one := []string{"E"}
	two := []string{"K", "V"}
	iterable := u.MustDefine(ClassSpec{Name: IterableName, Params: one})
	collection := u.MustDefine(ClassSpec{Name: CollectionName, Params: one, Supers: []*Class{iterable}})
	u.MustDefine(ClassSpec{Name: SequenceName, Params: one, Supers: []*Class{collection}})
	set := u.MustDefine(ClassSpec{Name: SetName, Params: one, Supers: []*Class{collection}})
	ordered := u.MustDefine(ClassSpec{Name: OrderedSetName, Params: one, Supers: []*Class{set}})
	u.MustDefine(ClassSpec{Name: NavigableSetName, Params: one, Supers: []*Class{ordered}})
	u.MustDefine(ClassSpec{Name: IteratorName, Params: one})
	u.MustDefine(ClassSpec{Name: LazySequenceName, Params: one})
	m := u.MustDefine(ClassSpec{Name: MapName, Params: two})
	om := u.MustDefine(ClassSpec{Name: OrderedMapName, Params: two, Supers: []*Class{m}})
	u.MustDefine(ClassSpec{Name: NavigableMapName, Params: two, Supers: []*Class{om}})
	u.MustDefine(ClassSpec{Name: PairName, Params: two})
}

var (
	stdOnce sync.Once
	std     *Universe
)

// Std returns the process-wide standard universe.
func Std() *Universe {
	stdOnce.Do(func() { std = NewUniverse() })
	return std
}

// Root returns the class every class is assignable to.
func (u *Universe) Root() *Class { return u.root }

// Define registers a class. Redefining a class with an identical shape returns the
// existing class.
func (u *Universe) Define(spec ClassSpec) (*Class, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.defineLocked(spec)
}

// MustDefine is Define that panics on error.
func (u *Universe) MustDefine(spec ClassSpec) *Class {
	c, err := u.Define(spec)
	if err != nil {
		panic(err)
	}
	return c
}

func (u *Universe) defineLocked(spec ClassSpec) (*Class, error) {
	name := normalizeName(spec.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	params := make([]string, 0, len(spec.Params))
	for _, p := range spec.Params {
		p = normalizeName(p)
		if p == "" || slices.Contains(params, p) {
			return nil, fmt.Errorf("%w: %q on %s", ErrDuplicateParam, p, name)
		}
		params = append(params, p)
	}
	for _, s := range spec.Supers {
		if s == nil || s.universe != u {
			return nil, fmt.Errorf("%w: supertype of %s", ErrForeignClass, name)
		}
	}
	enclosing := spec.Enclosing
	if enclosing != nil && enclosing.universe != u {
		return nil, fmt.Errorf("%w: enclosing class of %s", ErrForeignClass, name)
	}
	if enclosing == nil {
		if i := strings.LastIndexByte(name, '$'); i > 0 {
			enclosing = u.index[name[:i]]
		}
	}
	if existing, ok := u.index[name]; ok {
		if slices.Equal(existing.params, params) && existing.enclosing == enclosing && sameSupers(existing.supers, spec.Supers) {
			return existing, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrConflict, name)
	}
	return u.insertLocked(&Class{
		name:      name,
		params:    params,
		enclosing: enclosing,
		supers:    slices.Clone(spec.Supers),
	})
}

func (u *Universe) insertLocked(c *Class) (*Class, error) {
	slot, err := safecast.Conv[uint32](len(u.classes))
	if err != nil {
		return nil, fmt.Errorf("class table overflow: %w", err)
	}
	c.universe = u
	c.slot = slot
	c.hash = hashString(c.name)
	u.classes = append(u.classes, c)
	u.index[c.name] = c
	return c, nil
}

// ArrayOf returns the nominal array class whose elements are of class elem.
func (u *Universe) ArrayOf(elem *Class) (*Class, error) {
	if elem == nil || elem.universe != u {
		return nil, fmt.Errorf("%w: array component", ErrForeignClass)
	}
	name := elem.name + "[]"
	u.mu.RLock()
	c, ok := u.index[name]
	u.mu.RUnlock()
	if ok {
		return c, nil
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if c, ok := u.index[name]; ok {
		return c, nil
	}
	return u.insertLocked(&Class{name: name, component: elem})
}

// Lookup finds a class by name.
func (u *Universe) Lookup(name string) (*Class, bool) {
	name = normalizeName(name)
	u.mu.RLock()
	defer u.mu.RUnlock()
	c, ok := u.index[name]
	return c, ok
}

// MustLookup panics when name is not defined.
func (u *Universe) MustLookup(name string) *Class {
	c, ok := u.Lookup(name)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrUnknownClass, name))
	}
	return c
}

// Classes returns the defined classes in definition order.
func (u *Universe) Classes() []*Class {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return slices.Clone(u.classes[1:])
}

// Len returns the number of defined classes.
func (u *Universe) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.classes) - 1
}

func sameSupers(a, b []*Class) bool {
	if len(a) != len(b) {
		return false
	}
	for _, s := range b {
		if !slices.Contains(a, s) {
			return false
		}
	}
	return true
}

func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

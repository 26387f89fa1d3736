package reified

import (
	"fmt"
	"strings"
	"sync"

	"fortio.org/safecast"

	"reify/native"
)

// CompositeID identifies a composite inside the interner.
type CompositeID uint32

// NoCompositeID marks the absence of a composite.
const NoCompositeID CompositeID = 0

// compositeInterner hands out one *Composite per structural key.
type compositeInterner struct {
	mu    sync.RWMutex
	items []*Composite // slot 0 is reserved
	index map[string]*Composite
}

var interner = newCompositeInterner()

func newCompositeInterner() *compositeInterner {
	return &compositeInterner{
		items: make([]*Composite, 1, 64),
		index: make(map[string]*Composite, 64),
	}
}

// intern expects canonical args and owner.
func (in *compositeInterner) intern(base *native.Class, args []native.Type, owner native.Type) (*Composite, error) {
	var sb strings.Builder
	native.WriteParameterizedKey(&sb, base, owner, args)
	key := sb.String()

	in.mu.RLock()
	c, ok := in.index[key]
	in.mu.RUnlock()
	if ok {
		return c, nil
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if c, ok := in.index[key]; ok {
		return c, nil
	}
	slot, err := safecast.Conv[uint32](len(in.items))
	if err != nil {
		return nil, fmt.Errorf("composite table overflow: %w", err)
	}
	c = &Composite{
		base:  base,
		args:  args,
		owner: owner,
		id:    CompositeID(slot),
		key:   key,
		hash:  native.HashParameterized(base, owner, args),
	}
	in.items = append(in.items, c)
	in.index[key] = c
	return c, nil
}

// Lookup returns the composite stored under id.
func Lookup(id CompositeID) (*Composite, bool) {
	interner.mu.RLock()
	defer interner.mu.RUnlock()
	if id == NoCompositeID || int(id) >= len(interner.items) {
		return nil, false
	}
	return interner.items[id], true
}

// Interned returns the number of distinct composites built so far.
func Interned() int {
	interner.mu.RLock()
	defer interner.mu.RUnlock()
	return len(interner.items) - 1
}

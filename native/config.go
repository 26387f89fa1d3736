package native

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"reify/internal/trace"
)

// universeFile is the TOML layout of a universe file:
//
//	[[class]]
//	name = "com.acme.Outer"
//	params = ["A"]
//
//	[[class]]
//	name = "com.acme.Outer$Inner"
//	params = ["B"]
//	supers = ["Collection"]
type universeFile struct {
	Classes []classEntry `toml:"class"`
}

type classEntry struct {
	Name      string   `toml:"name"`
	Params    []string `toml:"params"`
	Supers    []string `toml:"supers"`
	Enclosing string   `toml:"enclosing"`
}

// LoadUniverse reads a TOML universe file and defines its classes on top of a
// freshly seeded universe.
func LoadUniverse(ctx context.Context, path string) (*Universe, error) {
	ctx, span := trace.Start(ctx, trace.ScopeLoad, "load-universe")
	span.WithExtra("path", path)
	defer span.End("")

	var file universeFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	u, err := buildUniverse(ctx, meta, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	span.WithExtra("classes", strconv.Itoa(u.Len()))
	return u, nil
}

// DecodeUniverse is LoadUniverse for in-memory TOML.
func DecodeUniverse(ctx context.Context, data string) (*Universe, error) {
	var file universeFile
	meta, err := toml.Decode(data, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return buildUniverse(ctx, meta, file)
}

func buildUniverse(ctx context.Context, meta toml.MetaData, file universeFile) (*Universe, error) {
	if !meta.IsDefined("class") {
		return nil, fmt.Errorf("%w: missing [[class]]", ErrUniverseFile)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %s", ErrUniverseFile, undecoded[0])
	}
	declared := make(map[string]bool, len(file.Classes))
	for i, entry := range file.Classes {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("%w: [[class]] #%d missing name", ErrUniverseFile, i+1)
		}
		declared[normalizeName(entry.Name)] = true
	}

	u := NewUniverse()
	pending := file.Classes
	// Entries may reference classes declared later in the file; define whatever is
	// resolvable until a pass makes no progress.
	for len(pending) > 0 {
		var deferred []classEntry
		for _, entry := range pending {
			spec, ready, err := resolveEntry(u, declared, entry)
			if err != nil {
				return nil, err
			}
			if !ready {
				deferred = append(deferred, entry)
				continue
			}
			c, err := u.Define(spec)
			if err != nil {
				return nil, err
			}
			trace.Point(ctx, trace.ScopeType, "define", c.Name())
		}
		if len(deferred) == len(pending) {
			return nil, fmt.Errorf("%w: %s references a cyclic class", ErrUniverseFile, deferred[0].Name)
		}
		pending = deferred
	}
	return u, nil
}

// resolveEntry builds the spec of entry. It is not ready while a referenced class
// is declared in the file but not defined yet. An implicit enclosing class named
// only by the '$' prefix is optional, as it is for Universe.Define.
func resolveEntry(u *Universe, declared map[string]bool, entry classEntry) (ClassSpec, bool, error) {
	spec := ClassSpec{Name: entry.Name, Params: entry.Params}
	for _, name := range entry.Supers {
		s, ready, err := lookupEntry(u, declared, entry.Name, name)
		if !ready || err != nil {
			return ClassSpec{}, ready, err
		}
		spec.Supers = append(spec.Supers, s)
	}
	if entry.Enclosing != "" {
		e, ready, err := lookupEntry(u, declared, entry.Name, entry.Enclosing)
		if !ready || err != nil {
			return ClassSpec{}, ready, err
		}
		spec.Enclosing = e
		return spec, true, nil
	}
	if i := strings.LastIndexByte(entry.Name, '$'); i > 0 {
		prefix := entry.Name[:i]
		if e, ok := u.Lookup(prefix); ok {
			spec.Enclosing = e
		} else if declared[normalizeName(prefix)] {
			return ClassSpec{}, false, nil
		}
	}
	return spec, true, nil
}

func lookupEntry(u *Universe, declared map[string]bool, owner, name string) (*Class, bool, error) {
	if c, ok := u.Lookup(name); ok {
		return c, true, nil
	}
	if declared[normalizeName(name)] {
		return nil, false, nil
	}
	return nil, true, fmt.Errorf("%w: %s references %s: %w", ErrUniverseFile, owner, name, ErrUnknownClass)
}

// Package reified turns generic type references into runtime values that can be
// compared, hashed and printed.
//
// A Type wraps either a nominal class or a Composite, the canonical form of a
// parameterized type. Composites are interned, so two Types built independently
// from the same structure are == to each other and share a hash:
//
//	ref, _ := u.Parse("Map<string, Sequence<int>>")
//	a, _ := reified.OfType(ref)
//	b, _ := reified.Capture(u, &struct {
//		reified.Token `reify:"Map<string, Sequence<int>>"`
//	}{})
//	a == b // true
//
// Types that cannot exist at runtime (type variables, wildcards and generic arrays
// at the top level) are rejected by Classify with an *Error whose Kind tells them
// apart.
package reified

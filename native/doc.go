// Package native models the host type system that reified types are read from.
//
// Go's reflect package describes only fully instantiated types: it has no notion of
// an unbound type parameter, a wildcard, or a generic declaration whose arity can be
// queried. This package supplies that missing metadata layer in the shape of a
// classic reflective type API:
//
//   - *Class is a raw (erased) type identity declared in a Universe.
//   - ParameterizedType is a class applied to type arguments, with an owner.
//   - TypeVariable, WildcardType and GenericArrayType are the shapes that cannot be
//     realized at runtime.
//
// A Universe is the class table. It is seeded with the predeclared Go names and the
// generic container shapes, can be extended with Define, loaded from a TOML file with
// LoadUniverse, and bridged to Go types with Bind and FromReflect.
//
// Values produced here are the "external" representations: they are structurally
// comparable through Equal, Hash and Key, but are not canonical. Package reified
// normalizes them into interned values.
//
// # Signatures
//
// Parse accepts the familiar generic signature notation:
//
//	Map<string, ? extends Sequence<int>>
//	com.acme.Outer<string>.Inner<int64>
//	T[]            // with T declared as a type variable
package native

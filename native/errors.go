package native

import "errors"

var (
	// ErrEmptyName reports a class definition without a name.
	ErrEmptyName = errors.New("native: class name must not be empty")
	// ErrConflict reports a redefinition of a class with a different shape.
	ErrConflict = errors.New("native: class already defined with a different shape")
	// ErrUnknownClass reports a reference to a class missing from the universe.
	ErrUnknownClass = errors.New("native: unknown class")
	// ErrForeignClass reports a class that belongs to another universe.
	ErrForeignClass = errors.New("native: class belongs to another universe")
	// ErrDuplicateParam reports a repeated type parameter name.
	ErrDuplicateParam = errors.New("native: duplicate type parameter")
	// ErrArity reports a parameterized reference with the wrong number of arguments.
	ErrArity = errors.New("native: wrong number of type arguments")
	// ErrSyntax reports a malformed type signature.
	ErrSyntax = errors.New("native: malformed type signature")
	// ErrNilType reports a nil reflect.Type.
	ErrNilType = errors.New("native: nil reflect type")
	// ErrUniverseFile reports an invalid universe file.
	ErrUniverseFile = errors.New("native: invalid universe file")
)

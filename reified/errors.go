package reified

import (
	"errors"
	"fmt"
)

// Kind classifies a reification failure.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindTypeVariable
	KindWildcard
	KindGenericArray
	KindUnrecognized
	KindRawType
	KindIllDefined
	KindMalformedArity
	KindNotOfShape
	KindMissingArgument
	KindNotNarrowable
)

var kindMessages = [...]string{
	KindUnknown:         "unknown failure",
	KindTypeVariable:    "the generic type should be instantiable, but a type variable was found",
	KindWildcard:        "the generic type should be instantiable, but a wildcard was found",
	KindGenericArray:    "the generic type should be instantiable, but a generic array was found",
	KindUnrecognized:    "the generic type has an unrecognized shape",
	KindRawType:         "the generic type was used raw, without a type argument",
	KindIllDefined:      "the generic type is ill-defined",
	KindMalformedArity:  "the parameterized type has the wrong number of type arguments",
	KindNotOfShape:      "the argument is not of the expected container shape",
	KindMissingArgument: "a required argument is missing",
	KindNotNarrowable:   "the type cannot be narrowed to the requested class",
}

// String returns the fixed message of the kind.
func (k Kind) String() string {
	if int(k) < len(kindMessages) {
		return kindMessages[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Error is the single error type of the package. Callers match on Kind, either
// through errors.Is against the Err* sentinels or through KindOf.
type Error struct {
	Kind Kind
	// Detail names the offending type or parameter.
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrTypeVariable    = &Error{Kind: KindTypeVariable}
	ErrWildcard        = &Error{Kind: KindWildcard}
	ErrGenericArray    = &Error{Kind: KindGenericArray}
	ErrUnrecognized    = &Error{Kind: KindUnrecognized}
	ErrRawType         = &Error{Kind: KindRawType}
	ErrIllDefined      = &Error{Kind: KindIllDefined}
	ErrMalformedArity  = &Error{Kind: KindMalformedArity}
	ErrNotOfShape      = &Error{Kind: KindNotOfShape}
	ErrMissingArgument = &Error{Kind: KindMissingArgument}
	ErrNotNarrowable   = &Error{Kind: KindNotNarrowable}
)

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Missing reports an absent required parameter.
func Missing(param string) *Error {
	return &Error{Kind: KindMissingArgument, Detail: param}
}

func illDefined(detail string, cause error) *Error {
	return &Error{Kind: KindIllDefined, Detail: detail, Cause: cause}
}

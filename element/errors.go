package element

import "fmt"

// UnresolvedTypeError reports a type reference that names no known
// declaration.
type UnresolvedTypeError struct {
	Type string
}

func (e *UnresolvedTypeError) Error() string {
	return "unresolved type " + e.Type
}

// TypeResolutionError reports a parameterized type whose argument count
// does not match its declaration.
type TypeResolutionError struct {
	Type string
	Want int
	Got  int
}

func (e *TypeResolutionError) Error() string {
	return fmt.Sprintf("type %s: want %d type arguments, got %d", e.Type, e.Want, e.Got)
}

// IncompletePropertyError reports a property whose type can be taken
// neither from its getter nor from its field.
type IncompletePropertyError struct {
	Owner    string
	Property string
	Err      error
}

func (e *IncompletePropertyError) Error() string {
	msg := fmt.Sprintf("property %s.%s has no resolvable type", e.Owner, e.Property)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *IncompletePropertyError) Unwrap() error { return e.Err }

// UnsupportedElementError reports a query for an element kind the query
// does not know.
type UnsupportedElementError struct {
	Kind QueryKind
}

func (e *UnsupportedElementError) Error() string {
	return fmt.Sprintf("unsupported element kind %d", int(e.Kind))
}

// Package format renders element reports for the command line.
package format

import (
	"encoding"
	"strings"

	"github.com/dhamidi/jel/element"
)

// Report is a class element and the enclosed elements selected from it.
type Report struct {
	Class    element.ClassElement
	Elements []element.Element
}

type Encoder interface {
	encoding.TextMarshaler
	Encode(r Report) error
}

func classKind(c element.ClassElement) string {
	switch {
	case c.IsPrimitive():
		return "primitive"
	case c.IsAnnotation():
		return "annotation"
	case c.IsEnum():
		return "enum"
	case c.IsRecord():
		return "record"
	case c.IsInterface():
		return "interface"
	default:
		return "class"
	}
}

// elementKind names the element variant.
func elementKind(e element.Element) string {
	switch e := e.(type) {
	case *element.Field:
		return "field"
	case *element.Constructor:
		return "constructor"
	case *element.Method:
		return "method"
	case *element.Property:
		return "property"
	case *element.Placeholder:
		return "placeholder"
	case *element.Wildcard:
		return "wildcard"
	case *element.Parameter:
		return "parameter"
	case element.ClassElement:
		return classKind(e)
	}
	return "unknown"
}

func modifiers(e element.Element) []string {
	var mods []string
	for _, m := range e.Modifiers() {
		mods = append(mods, string(m))
	}
	return mods
}

// memberType is the type an element has: a field's or property's type, a
// method's return type.
func memberType(e element.Element) (element.ClassElement, error) {
	switch e := e.(type) {
	case *element.Field:
		return e.Type()
	case *element.Property:
		return e.Type(), nil
	case *element.Constructor:
		return e.ReturnType()
	case *element.Method:
		return e.ReturnType()
	case *element.Parameter:
		return e.Type()
	}
	return nil, nil
}

func parameters(e element.Element) []*element.Parameter {
	switch e := e.(type) {
	case *element.Constructor:
		return e.Parameters()
	case *element.Method:
		return e.Parameters()
	}
	return nil
}

func joinOrDash(parts []string) string {
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/jel/element"
)

type JSONEncoder struct {
	w      io.Writer
	report Report
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(r Report) error {
	e.report = r
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := buildClass(e.report.Class)
	if err != nil {
		return nil, err
	}
	for _, el := range e.report.Elements {
		je, err := buildElement(el)
		if err != nil {
			return nil, err
		}
		data.Elements = append(data.Elements, je)
	}
	return json.MarshalIndent(data, "", "  ")
}

type jsonClass struct {
	Name          string           `json:"name"`
	Type          string           `json:"type"`
	Kind          string           `json:"kind"`
	Package       string           `json:"package,omitempty"`
	Modifiers     []string         `json:"modifiers,omitempty"`
	ArrayDepth    int              `json:"arrayDepth,omitempty"`
	TypeArguments []jsonTypeArg    `json:"typeArguments,omitempty"`
	SuperType     string           `json:"superType,omitempty"`
	Interfaces    []string         `json:"interfaces,omitempty"`
	Annotations   []jsonAnnotation `json:"annotations,omitempty"`
	Elements      []jsonElement    `json:"elements,omitempty"`
}

type jsonTypeArg struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Type     string   `json:"type"`
	Resolved string   `json:"resolved,omitempty"`
	Upper    []string `json:"upperBounds,omitempty"`
	Lower    []string `json:"lowerBounds,omitempty"`
}

type jsonAnnotation struct {
	Name   string         `json:"name"`
	Values map[string]any `json:"values,omitempty"`
}

type jsonElement struct {
	Kind          string           `json:"kind"`
	Name          string           `json:"name"`
	Type          string           `json:"type,omitempty"`
	DeclaringType string           `json:"declaringType,omitempty"`
	Modifiers     []string         `json:"modifiers,omitempty"`
	Parameters    []jsonParameter  `json:"parameters,omitempty"`
	Annotations   []jsonAnnotation `json:"annotations,omitempty"`
	ReadOnly      bool             `json:"readOnly,omitempty"`
	Doc           string           `json:"doc,omitempty"`
}

type jsonParameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func buildClass(c element.ClassElement) (jsonClass, error) {
	data := jsonClass{
		Name:        c.Name(),
		Type:        element.TypeString(c),
		Kind:        classKind(c),
		Package:     c.PackageName(),
		Modifiers:   modifiers(c),
		ArrayDepth:  c.ArrayDimensions(),
		Annotations: buildAnnotations(c),
	}
	args, err := c.TypeArguments()
	if err != nil {
		return data, fmt.Errorf("type arguments of %s: %w", c.Name(), err)
	}
	for name, arg := range args.All() {
		data.TypeArguments = append(data.TypeArguments, buildTypeArg(name, arg))
	}
	super, err := c.SuperType()
	if err != nil {
		return data, fmt.Errorf("supertype of %s: %w", c.Name(), err)
	}
	if super != nil {
		data.SuperType = element.TypeString(super)
	}
	ifaces, err := c.Interfaces()
	if err != nil {
		return data, fmt.Errorf("interfaces of %s: %w", c.Name(), err)
	}
	for _, iface := range ifaces {
		data.Interfaces = append(data.Interfaces, element.TypeString(iface))
	}
	return data, nil
}

func buildTypeArg(name string, arg element.ClassElement) jsonTypeArg {
	ta := jsonTypeArg{
		Name: name,
		Kind: elementKind(arg),
		Type: element.TypeString(arg),
	}
	switch arg := arg.(type) {
	case *element.Placeholder:
		if resolved, ok := arg.Resolved(); ok {
			ta.Resolved = element.TypeString(resolved)
		}
		ta.Upper = typeStrings(arg.Bounds())
	case *element.Wildcard:
		ta.Upper = typeStrings(arg.UpperBounds())
		ta.Lower = typeStrings(arg.LowerBounds())
	}
	return ta
}

func buildElement(e element.Element) (jsonElement, error) {
	je := jsonElement{
		Kind:        elementKind(e),
		Name:        e.Name(),
		Modifiers:   modifiers(e),
		Annotations: buildAnnotations(e),
		Doc:         e.Doc(),
	}
	t, err := memberType(e)
	if err != nil {
		return je, fmt.Errorf("type of %s: %w", e.Name(), err)
	}
	if t != nil {
		je.Type = element.TypeString(t)
	}
	for _, p := range parameters(e) {
		pt, err := p.Type()
		if err != nil {
			return je, fmt.Errorf("parameter %s of %s: %w", p.Name(), e.Name(), err)
		}
		je.Parameters = append(je.Parameters, jsonParameter{Name: p.Name(), Type: element.TypeString(pt)})
	}
	switch e := e.(type) {
	case *element.Field:
		je.DeclaringType = e.DeclaringType().Name()
	case *element.Method:
		je.DeclaringType = e.DeclaringType().Name()
	case *element.Constructor:
		je.DeclaringType = e.DeclaringType().Name()
	case *element.Property:
		je.DeclaringType = e.DeclaringType().Name()
		je.ReadOnly = e.IsReadOnly()
	}
	return je, nil
}

func buildAnnotations(e element.Element) []jsonAnnotation {
	meta := e.AnnotationMetadata()
	var out []jsonAnnotation
	for _, name := range meta.AnnotationNames() {
		a, _ := meta.Annotation(name)
		out = append(out, jsonAnnotation{Name: a.Name, Values: a.Values})
	}
	return out
}

func typeStrings(types []element.ClassElement) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = element.TypeString(t)
	}
	return out
}

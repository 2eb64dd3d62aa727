package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jel/element"
)

// LineEncoder writes one tab-separated line per fact: the class, its type
// arguments, supertypes and then every reported element.
type LineEncoder struct {
	w      io.Writer
	report Report
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(r Report) error {
	e.report = r
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.report.Class

	fmt.Fprintf(&sb, "%s\t%s\t%s\n", classKind(c), element.TypeString(c), joinOrDash(modifiers(c)))

	args, err := c.TypeArguments()
	if err != nil {
		return nil, fmt.Errorf("type arguments of %s: %w", c.Name(), err)
	}
	for name, arg := range args.All() {
		fmt.Fprintf(&sb, "typearg\t%s\t%s\t%s\n", name, elementKind(arg), typeArgDetail(arg))
	}

	super, err := c.SuperType()
	if err != nil {
		return nil, fmt.Errorf("supertype of %s: %w", c.Name(), err)
	}
	if super != nil {
		fmt.Fprintf(&sb, "extends\t%s\n", element.TypeString(super))
	}
	ifaces, err := c.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("interfaces of %s: %w", c.Name(), err)
	}
	for _, iface := range ifaces {
		fmt.Fprintf(&sb, "implements\t%s\n", element.TypeString(iface))
	}

	for _, el := range e.report.Elements {
		line, err := elementLine(el)
		if err != nil {
			return nil, err
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	return []byte(sb.String()), nil
}

// typeArgDetail renders what a type argument stands for. A placeholder
// shows its binding or its bounds.
func typeArgDetail(arg element.ClassElement) string {
	switch arg := arg.(type) {
	case *element.Placeholder:
		if resolved, ok := arg.Resolved(); ok {
			return "= " + element.TypeString(resolved)
		}
		return "extends " + strings.Join(typeStrings(arg.Bounds()), " & ")
	}
	return element.TypeString(arg)
}

func elementLine(e element.Element) (string, error) {
	t, err := memberType(e)
	if err != nil {
		return "", fmt.Errorf("type of %s: %w", e.Name(), err)
	}
	typ := "-"
	if t != nil {
		typ = element.TypeString(t)
	}
	fields := []string{elementKind(e), e.Name(), typ}

	switch e.(type) {
	case *element.Method, *element.Constructor:
		var params []string
		for _, p := range parameters(e) {
			pt, err := p.Type()
			if err != nil {
				return "", fmt.Errorf("parameter %s of %s: %w", p.Name(), e.Name(), err)
			}
			params = append(params, element.TypeString(pt))
		}
		fields = append(fields, joinOrDash(params))
	}

	fields = append(fields, joinOrDash(modifiers(e)), joinOrDash(e.AnnotationMetadata().AnnotationNames()))
	return strings.Join(fields, "\t"), nil
}

package element

import (
	"fmt"

	"github.com/dhamidi/jel/annotation"
	"github.com/dhamidi/jel/symbol"
)

// Factory is the entry point for code outside the engine. Each call starts
// a fresh resolution with an empty substitution context; meta, when not
// nil, becomes the element's annotation metadata.
type Factory struct {
	r *Resolver
}

func NewFactory(oracle symbol.Oracle, opts ...Option) (*Factory, error) {
	r, err := NewResolver(oracle, opts...)
	if err != nil {
		return nil, err
	}
	return &Factory{r: r}, nil
}

func (f *Factory) Resolver() *Resolver { return f.r }

func (f *Factory) NewClassElement(t *symbol.Type, meta annotation.Metadata) (ClassElement, error) {
	c, err := f.r.Resolve(t, nil, true)
	if err != nil {
		return nil, err
	}
	if meta != nil {
		c = c.WithAnnotationMetadata(meta).(ClassElement)
	}
	return c, nil
}

// ClassElementByName returns the declaration element of a class, with its
// own type variables as type arguments.
func (f *Factory) ClassElementByName(name string) (ClassElement, error) {
	sym, ok := f.r.oracle.LookupClass(name)
	if !ok {
		return nil, &UnresolvedTypeError{Type: name}
	}
	return f.r.declaredClass(sym), nil
}

// NewMethodElement wraps m as seen from owner. owner may be nil, in which
// case the declaring class is used.
func (f *Factory) NewMethodElement(owner ClassElement, m *symbol.Method, meta annotation.Metadata) (*Method, error) {
	if m.Constructor {
		return nil, fmt.Errorf("%s is a constructor", m.Ref())
	}
	owner, declaring, err := f.owners(owner, m.Owner)
	if err != nil {
		return nil, err
	}
	method := f.r.method(m, owner, declaring)
	if meta != nil {
		method = method.WithAnnotationMetadata(meta).(*Method)
	}
	return method, nil
}

func (f *Factory) NewConstructorElement(owner ClassElement, m *symbol.Method, meta annotation.Metadata) (*Constructor, error) {
	if !m.Constructor {
		return nil, fmt.Errorf("%s is not a constructor", m.Ref())
	}
	owner, declaring, err := f.owners(owner, m.Owner)
	if err != nil {
		return nil, err
	}
	ctor := f.r.newMethod(m, owner, declaring).(*Constructor)
	if meta != nil {
		ctor = ctor.WithAnnotationMetadata(meta).(*Constructor)
	}
	return ctor, nil
}

func (f *Factory) NewFieldElement(owner ClassElement, field *symbol.Field, meta annotation.Metadata) (*Field, error) {
	owner, declaring, err := f.owners(owner, field.Owner)
	if err != nil {
		return nil, err
	}
	fe := f.r.newField(field, owner, declaring)
	if meta != nil {
		fe = fe.WithAnnotationMetadata(meta).(*Field)
	}
	return fe, nil
}

func (f *Factory) owners(owner ClassElement, decl *symbol.Class) (ClassElement, ClassElement, error) {
	declaring, err := f.r.declaringType(owner, decl)
	if err != nil {
		return nil, nil, err
	}
	if owner == nil {
		owner = declaring
	}
	return owner, declaring, nil
}

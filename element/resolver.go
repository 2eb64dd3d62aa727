package element

import (
	"errors"

	"github.com/dhamidi/jel/annotation"
	"github.com/dhamidi/jel/symbol"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jel.element")

// DefaultExcludedRoots are the types whose members the enclosed-member
// query never reports: the top type, the bottom type, the unit type and
// the enum base class.
var DefaultExcludedRoots = []string{"java.lang.Object", "java.lang.Void", "void", "java.lang.Enum"}

// DefaultPropertyBypass marks a field that is exposed as a field even
// though it backs a property.
const DefaultPropertyBypass = "kotlin.jvm.JvmField"

var boxes = map[string]string{
	"boolean": "java.lang.Boolean",
	"byte":    "java.lang.Byte",
	"short":   "java.lang.Short",
	"char":    "java.lang.Character",
	"int":     "java.lang.Integer",
	"long":    "java.lang.Long",
	"float":   "java.lang.Float",
	"double":  "java.lang.Double",
	"void":    "java.lang.Void",
}

// Resolver is the type resolution engine. It turns symbol-level types
// into class elements, threading the substitution context of enclosing
// declarations through every step.
type Resolver struct {
	oracle      symbol.Oracle
	annotations annotation.Factory
	top         *symbol.Class
	topClass    *Class
	excluded    map[string]bool
	bypass      string
	primitives  map[symbol.Ref]*Class
}

type Option func(*Resolver)

// WithAnnotationFactory replaces the default caching metadata factory.
func WithAnnotationFactory(f annotation.Factory) Option {
	return func(r *Resolver) { r.annotations = f }
}

// WithExcludedRoots replaces DefaultExcludedRoots. The top type is always
// excluded.
func WithExcludedRoots(names ...string) Option {
	return func(r *Resolver) {
		r.excluded = make(map[string]bool, len(names))
		for _, name := range names {
			r.excluded[name] = true
		}
	}
}

// WithPropertyBypass names the annotation that turns a property back into
// a plain field. An empty name disables the bypass.
func WithPropertyBypass(name string) Option {
	return func(r *Resolver) { r.bypass = name }
}

func NewResolver(oracle symbol.Oracle, opts ...Option) (*Resolver, error) {
	top := oracle.TopType()
	if top == nil {
		return nil, errors.New("element: the symbol oracle has no top type")
	}
	r := &Resolver{
		oracle:     oracle,
		top:        top,
		bypass:     DefaultPropertyBypass,
		primitives: make(map[symbol.Ref]*Class),
	}
	WithExcludedRoots(DefaultExcludedRoots...)(r)
	for _, opt := range opts {
		opt(r)
	}
	if r.annotations == nil {
		r.annotations = annotation.NewCachingFactory(oracle)
	}
	r.excluded[top.Name] = true
	r.topClass = r.declaredClass(top)
	return r, nil
}

func (r *Resolver) Oracle() symbol.Oracle { return r.oracle }

func (r *Resolver) AnnotationFactory() annotation.Factory { return r.annotations }

// Top returns the element of the top type.
func (r *Resolver) Top() ClassElement { return r.topClass }

// Resolve turns t into a class element. parent binds the type variables
// of the enclosing declarations and may be nil. When allowPrimitive is
// false a primitive is replaced by its box class.
func (r *Resolver) Resolve(t *symbol.Type, parent *Bindings, allowPrimitive bool) (ClassElement, error) {
	return r.resolve(t, parent, allowPrimitive, nil)
}

// ResolveTypeParameter resolves a type variable: to a placeholder bound to
// its entry in parent when there is one, and otherwise to a placeholder
// over its resolved bounds.
func (r *Resolver) ResolveTypeParameter(p *symbol.TypeParam, parent *Bindings) (ClassElement, error) {
	return r.resolveTypeParameter(p, parent, nil)
}

// ResolveTypeArguments resolves the type arguments of t against the type
// parameters of decl. A nil t, or one without arguments, yields a
// placeholder for every declared parameter.
func (r *Resolver) ResolveTypeArguments(t *symbol.Type, decl *symbol.Class, parent *Bindings) (*Bindings, error) {
	return r.resolveTypeArguments(t, decl, parent, nil)
}

// visited is the set of type parameters whose bounds are being resolved
// on the current path. It is copied on descent, so sibling bounds do not
// see each other.
type visited map[symbol.Ref]bool

func (v visited) has(ref symbol.Ref) bool { return v[ref] }

func (v visited) with(ref symbol.Ref) visited {
	out := make(visited, len(v)+1)
	for k := range v {
		out[k] = true
	}
	out[ref] = true
	return out
}

func (r *Resolver) resolve(t *symbol.Type, parent *Bindings, allowPrimitive bool, seen visited) (ClassElement, error) {
	if t == nil {
		return nil, &UnresolvedTypeError{Type: "<nil>"}
	}
	if t.IsPrimitive() {
		if t.Dims == 0 && !allowPrimitive {
			if box, ok := r.oracle.LookupClass(boxes[t.Name]); ok {
				return r.resolve(&symbol.Type{Name: box.Name, Annotations: t.Annotations}, parent, false, seen)
			}
		}
		if len(t.Annotations) == 0 {
			return r.primitive(t.Name, t.Dims), nil
		}
		c := r.newPrimitive(t.Name, t.Dims)
		c.preset = annotation.New(t.Annotations)
		return c, nil
	}
	if t.Dims > 0 {
		component := *t
		component.Dims = 0
		e, err := r.resolve(&component, parent, allowPrimitive, seen)
		if err != nil {
			return nil, err
		}
		return e.WithArrayDimensions(e.ArrayDimensions() + t.Dims), nil
	}
	if t.Var != nil {
		return r.resolveTypeParameter(t.Var, parent, seen)
	}
	sym, ok := r.oracle.ResolveType(t)
	if !ok {
		log.Debugf("unresolved type %s", t)
		return nil, &UnresolvedTypeError{Type: t.String()}
	}
	args, err := r.resolveTypeArguments(t, sym, parent, seen)
	if err != nil {
		return nil, err
	}
	c := r.declaredClass(sym)
	c.args.set(args)
	if len(t.Annotations) > 0 {
		c.preset = annotation.NewInherited(t.Annotations, sym.Annotations)
	}
	return c, nil
}

func (r *Resolver) resolveTypeParameter(p *symbol.TypeParam, parent *Bindings, seen visited) (ClassElement, error) {
	if _, ok := bindingOf(p, parent); !ok && seen.has(p.Ref()) {
		log.Debugf("recursive bound on %s, erasing to %s", p.Ref(), r.top.Name)
		return r.topClass, nil
	}
	return r.placeholder(p, parent, seen)
}

// placeholder builds the placeholder for p. A binding in parent is taken
// as is; otherwise the bounds are resolved with p marked as visited, and
// an unbounded parameter gets the top type as its only bound.
func (r *Resolver) placeholder(p *symbol.TypeParam, parent *Bindings, seen visited) (*Placeholder, error) {
	if bound, ok := bindingOf(p, parent); ok {
		return r.newPlaceholder(p, []ClassElement{bound}, bound), nil
	}
	seen = seen.with(p.Ref())
	bounds := make([]ClassElement, 0, len(p.Bounds))
	for _, b := range p.Bounds {
		e, err := r.resolve(b, parent, false, seen)
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, e)
	}
	if len(bounds) == 0 {
		bounds = append(bounds, r.topClass)
	}
	return r.newPlaceholder(p, bounds, nil), nil
}

// bindingOf looks p up in parent. The type variables of a method are
// never bound by the arguments of its class, even when the names clash,
// and a binding to p's own free placeholder leaves p unbound.
func bindingOf(p *symbol.TypeParam, parent *Bindings) (ClassElement, bool) {
	if p.Method != nil {
		return nil, false
	}
	bound, ok := parent.Get(p.Name)
	if !ok {
		return nil, false
	}
	if self, isPlaceholder := bound.(*Placeholder); isPlaceholder && self.resolved == nil && self.param.Ref() == p.Ref() {
		return nil, false
	}
	return bound, true
}

func (r *Resolver) resolveTypeArguments(t *symbol.Type, decl *symbol.Class, parent *Bindings, seen visited) (*Bindings, error) {
	var out *Bindings
	if t == nil || len(t.Args) == 0 {
		for _, tp := range decl.TypeParams {
			e, err := r.resolveTypeParameter(tp, parent, seen)
			if err != nil {
				return nil, err
			}
			out = out.With(tp.Name, e)
		}
		return out, nil
	}
	if len(t.Args) != len(decl.TypeParams) {
		return nil, &TypeResolutionError{Type: t.String(), Want: len(decl.TypeParams), Got: len(t.Args)}
	}
	for i, tp := range decl.TypeParams {
		if bound, ok := parent.Get(tp.Name); ok {
			out = out.With(tp.Name, bound)
			continue
		}
		e, err := r.resolveArgument(t.Args[i], parent, seen)
		if err != nil {
			return nil, err
		}
		out = out.With(tp.Name, e)
	}
	return out, nil
}

func (r *Resolver) resolveArgument(arg *symbol.TypeArg, parent *Bindings, seen visited) (ClassElement, error) {
	switch arg.Variance {
	case symbol.Star:
		return r.newWildcard([]ClassElement{r.topClass}, nil, true), nil
	case symbol.Covariant:
		upper, err := r.resolve(arg.Type, parent, false, seen)
		if err != nil {
			return nil, err
		}
		return r.newWildcard([]ClassElement{upper}, nil, false), nil
	case symbol.Contravariant:
		lower, err := r.resolve(arg.Type, parent, false, seen)
		if err != nil {
			return nil, err
		}
		return r.newWildcard([]ClassElement{r.topClass}, []ClassElement{lower}, false), nil
	}
	return r.resolve(arg.Type, parent, false, seen)
}

// declaredClass returns the element of a class declaration. Its type
// arguments are the class's own placeholders until bound.
func (r *Resolver) declaredClass(sym *symbol.Class) *Class {
	return &Class{
		base: base{
			ref:    sym.Ref(),
			r:      r,
			source: sym,
			mods:   sym.Modifiers,
			doc:    sym.Doc,
		},
		sym: sym,
	}
}

// primitive returns the shared element for a primitive or primitive
// array type.
func (r *Resolver) primitive(name string, dims int) *Class {
	ref := symbol.Ref{Kind: symbol.KindPrimitive, Owner: name, Dims: dims}
	if c, ok := r.primitives[ref]; ok {
		return c
	}
	c := r.newPrimitive(name, dims)
	r.primitives[ref] = c
	return c
}

func (r *Resolver) newPrimitive(name string, dims int) *Class {
	c := &Class{
		base:      base{ref: symbol.Ref{Kind: symbol.KindPrimitive, Owner: name, Dims: dims}, r: r},
		primitive: name,
		dims:      dims,
	}
	c.args.set(nil)
	return c
}

func (r *Resolver) newPlaceholder(p *symbol.TypeParam, bounds []ClassElement, resolved ClassElement) *Placeholder {
	to := bounds[0]
	if resolved != nil {
		to = resolved
	}
	return &Placeholder{
		base:     base{ref: p.Ref(), r: r, source: p},
		proxy:    proxy{to: to},
		param:    p,
		bounds:   bounds,
		resolved: resolved,
	}
}

func (r *Resolver) newWildcard(upper, lower []ClassElement, raw bool) *Wildcard {
	return &Wildcard{
		base: base{
			ref: symbol.Ref{Kind: symbol.KindWildcard, Owner: wildcardText(upper, lower, raw)},
			r:   r,
		},
		proxy: proxy{to: upper[0]},
		upper: upper,
		lower: lower,
		raw:   raw,
	}
}

// supertypes returns c and every class and interface it extends, each
// once, classes before interfaces.
func (r *Resolver) supertypes(c ClassElement) ([]ClassElement, error) {
	var out []ClassElement
	seen := make(map[string]bool)
	for cur := c; cur != nil && !seen[cur.Name()]; {
		seen[cur.Name()] = true
		out = append(out, cur)
		next, err := cur.SuperType()
		if err != nil {
			return nil, err
		}
		cur = next
	}
	queue := append([]ClassElement(nil), out...)
	for len(queue) > 0 {
		ifaces, err := queue[0].Interfaces()
		if err != nil {
			return nil, err
		}
		queue = queue[1:]
		for _, iface := range ifaces {
			if seen[iface.Name()] {
				continue
			}
			seen[iface.Name()] = true
			out = append(out, iface)
			queue = append(queue, iface)
		}
	}
	return out, nil
}

func (r *Resolver) isAssignable(c ClassElement, name string) (bool, error) {
	if c.IsPrimitive() || c.IsArray() {
		return c.Name() == name && !c.IsArray(), nil
	}
	if name == r.top.Name {
		return true, nil
	}
	types, err := r.supertypes(c)
	if err != nil {
		return false, err
	}
	for _, t := range types {
		if t.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

// declaringType finds decl among the supertypes of owner, so that the
// element carries the type arguments owner passes up to it.
func (r *Resolver) declaringType(owner ClassElement, decl *symbol.Class) (ClassElement, error) {
	if owner == nil {
		return r.declaredClass(decl), nil
	}
	types, err := r.supertypes(owner)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		if t.Name() == decl.Name {
			return t, nil
		}
	}
	return r.declaredClass(decl), nil
}

// classSymbol returns the class symbol whose members e has, or nil for
// primitives and arrays.
func classSymbol(e ClassElement) *symbol.Class {
	switch t := e.(type) {
	case *Class:
		if t.dims > 0 {
			return nil
		}
		return t.sym
	case *Placeholder:
		return classSymbol(t.to)
	case *Wildcard:
		return classSymbol(t.to)
	}
	return nil
}

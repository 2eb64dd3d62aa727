package element

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/iancoleman/strcase"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("schema"), ",")
		return name
	})
}

// QuerySpec is the query-string form of a Query, for example
// "kind=method&modifier=public&annotation=javax.inject.Inject".
type QuerySpec struct {
	Kind              string   `schema:"kind" validate:"required,oneof=field method property constructor class member"`
	Names             []string `schema:"name" validate:"dive,required"`
	Pattern           string   `schema:"pattern"`
	Modifiers         []string `schema:"modifier" validate:"dive,oneof=public protected private abstract static final default synchronized native transient volatile sealed"`
	Annotations       []string `schema:"annotation" validate:"dive,required"`
	ExcludeProperties bool     `schema:"excludeProperties"`
	OnlyDeclared      bool     `schema:"onlyDeclared"`
}

var kindAliases = map[string]string{
	"fields":       "field",
	"methods":      "method",
	"properties":   "property",
	"constructors": "constructor",
	"ctor":         "constructor",
	"nested-class": "class",
	"classes":      "class",
	"members":      "member",
}

// ParseQueryKind reads a kind name. Names are matched case-insensitively
// and in any of the usual spellings: "nestedClass", "NESTED_CLASS" and
// "nested-class" are the same kind.
func ParseQueryKind(s string) (QueryKind, error) {
	name := normalizeKind(s)
	for kind, kindName := range queryKindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown element kind %q", s)
}

func normalizeKind(s string) string {
	name := strcase.ToKebab(strings.TrimSpace(s))
	if alias, ok := kindAliases[name]; ok {
		return alias
	}
	return name
}

// DecodeQuery decodes and validates a query string into a Query.
func DecodeQuery(values url.Values) (Query, error) {
	var spec QuerySpec
	if err := schemaDecoder.Decode(&spec, values); err != nil {
		return Query{}, fmt.Errorf("decode query: %w", err)
	}
	return spec.Query()
}

// Query validates s and builds the Query it describes.
func (s QuerySpec) Query() (Query, error) {
	s.Kind = normalizeKind(s.Kind)
	for i, m := range s.Modifiers {
		s.Modifiers[i] = strings.ToLower(m)
	}
	if err := validate.Struct(s); err != nil {
		return Query{}, queryError(err)
	}
	kind, err := ParseQueryKind(s.Kind)
	if err != nil {
		return Query{}, err
	}
	q := NewQuery(kind)
	if len(s.Names) > 0 {
		q = q.Named(s.Names...)
	}
	if s.Pattern != "" {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return Query{}, fmt.Errorf("invalid query: pattern: %w", err)
		}
		q = q.NameMatches(re.MatchString)
	}
	for _, m := range s.Modifiers {
		q = q.Modifiers(Modifier(m))
	}
	if len(s.Annotations) > 0 {
		q = q.Annotated(s.Annotations...)
	}
	if s.ExcludeProperties {
		q = q.ExcludePropertyElements()
	}
	if s.OnlyDeclared {
		q = q.OnlyDeclared()
	}
	return q, nil
}

func queryError(err error) error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fmt.Errorf("invalid query: %w", err)
	}
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Field()+": "+formatValidationError(ve))
	}
	return fmt.Errorf("invalid query: %s", strings.Join(messages, "; "))
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

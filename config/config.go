// Package config loads the jel.yaml settings that shape resolution: the
// top type, the roots excluded from member queries, the property bypass
// marker and where Java sources live.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/dhamidi/jel/element"
	"github.com/dhamidi/jel/symbol"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no file is
// given.
const DefaultFile = "jel.yaml"

type Config struct {
	TopType                  string   `yaml:"topType" validate:"required,javaname"`
	ExcludedRoots            []string `yaml:"excludedRoots" validate:"dive,javaname"`
	PropertyBypassAnnotation string   `yaml:"propertyBypassAnnotation" validate:"omitempty,javaname"`
	SourceRoots              []string `yaml:"sourceRoots" validate:"dive,required"`
	AllowPrimitive           bool     `yaml:"allowPrimitive"`
	Prelude                  bool     `yaml:"prelude"`
}

func Default() Config {
	return Config{
		TopType:                  "java.lang.Object",
		ExcludedRoots:            slices.Clone(element.DefaultExcludedRoots),
		PropertyBypassAnnotation: element.DefaultPropertyBypass,
		AllowPrimitive:           true,
		Prelude:                  true,
	}
}

var (
	validate = validator.New()
	javaName = regexp.MustCompile(`^[\p{L}_$][\p{L}\p{N}_$]*(\.[\p{L}_$][\p{L}\p{N}_$]*)*$`)
)

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		return name
	})
	validate.RegisterValidation("javaname", func(fl validator.FieldLevel) bool {
		return javaName.MatchString(fl.Field().String())
	})
}

// Parse reads YAML on top of the defaults. Keys that are not settings are
// rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the file at path. Relative source roots are taken relative
// to the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i, root := range cfg.SourceRoots {
		if !filepath.IsAbs(root) {
			cfg.SourceRoots[i] = filepath.Join(dir, root)
		}
	}
	return cfg, nil
}

// Discover loads DefaultFile from dir, or returns the defaults when there
// is none. The path of the loaded file is empty in that case.
func Discover(dir string) (Config, string, error) {
	path := filepath.Join(dir, DefaultFile)
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), "", nil
	}
	if err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Field()+": "+formatValidationError(ve))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(messages, "; "))
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "javaname":
		return fmt.Sprintf("%q is not a qualified Java name", ve.Value())
	default:
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c Config) TableOptions() []symbol.Option {
	return []symbol.Option{symbol.WithTopType(c.TopType), symbol.WithPrelude(c.Prelude)}
}

func (c Config) ElementOptions() []element.Option {
	return []element.Option{
		element.WithExcludedRoots(c.ExcludedRoots...),
		element.WithPropertyBypass(c.PropertyBypassAnnotation),
	}
}

// NewTable builds a symbol table and loads every source root into it.
func (c Config) NewTable() (*symbol.Table, error) {
	table := symbol.NewTable(c.TableOptions()...)
	var errs []error
	for _, root := range c.SourceRoots {
		if err := table.LoadDir(root); err != nil {
			errs = append(errs, err)
		}
	}
	return table, errors.Join(errs...)
}

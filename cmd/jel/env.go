package main

import (
	"fmt"
	"io"

	"github.com/dhamidi/jel/config"
	"github.com/dhamidi/jel/element"
	"github.com/dhamidi/jel/format"
	"github.com/dhamidi/jel/symbol"
)

type envOptions struct {
	sources    []string
	configPath string
	format     string
}

// env is everything a command needs to resolve types.
type env struct {
	cfg     config.Config
	table   *symbol.Table
	factory *element.Factory
}

func (o *envOptions) loadConfig() (config.Config, error) {
	var (
		cfg  config.Config
		path string
		err  error
	)
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
		path = o.configPath
	} else {
		cfg, path, err = config.Discover(".")
	}
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		log.Debugf("config: %s", path)
	}
	cfg.SourceRoots = append(cfg.SourceRoots, o.sources...)
	return cfg, nil
}

func (o *envOptions) load() (*env, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	table, err := cfg.NewTable()
	if err != nil {
		// Files that failed to parse are skipped; the rest is usable.
		log.Warningf("load sources: %s", err)
	}
	factory, err := element.NewFactory(table, cfg.ElementOptions()...)
	if err != nil {
		return nil, fmt.Errorf("create factory: %w", err)
	}
	return &env{cfg: cfg, table: table, factory: factory}, nil
}

// resolve turns a type expression such as java.util.Map<String, ?> into
// a class element.
func (e *env) resolve(expr string) (element.ClassElement, error) {
	typ, err := e.table.ParseType(expr)
	if err != nil {
		return nil, fmt.Errorf("parse type %q: %w", expr, err)
	}
	c, err := e.factory.Resolver().Resolve(typ, nil, e.cfg.AllowPrimitive)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (o *envOptions) encoder(w io.Writer) (format.Encoder, error) {
	switch o.format {
	case "line", "":
		return format.NewLineEncoder(w), nil
	case "json":
		return format.NewJSONEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", o.format)
	}
}

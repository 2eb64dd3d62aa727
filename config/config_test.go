package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/dhamidi/jel/element"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, c Config)
	}{
		{"empty", "", func(t *testing.T, c Config) {
			if c.TopType != "java.lang.Object" {
				t.Errorf("TopType = %q, want java.lang.Object", c.TopType)
			}
			if !slices.Equal(c.ExcludedRoots, element.DefaultExcludedRoots) {
				t.Errorf("ExcludedRoots = %v, want %v", c.ExcludedRoots, element.DefaultExcludedRoots)
			}
			if !c.AllowPrimitive || !c.Prelude {
				t.Error("AllowPrimitive and Prelude should default to true")
			}
		}},
		{"overrides", "topType: com.acme.Base\nexcludedRoots: [com.acme.Base]\nprelude: false\n", func(t *testing.T, c Config) {
			if c.TopType != "com.acme.Base" {
				t.Errorf("TopType = %q, want com.acme.Base", c.TopType)
			}
			if !slices.Equal(c.ExcludedRoots, []string{"com.acme.Base"}) {
				t.Errorf("ExcludedRoots = %v", c.ExcludedRoots)
			}
			if c.Prelude {
				t.Error("Prelude = true, want false")
			}
			if c.PropertyBypassAnnotation != element.DefaultPropertyBypass {
				t.Errorf("PropertyBypassAnnotation = %q, want default", c.PropertyBypassAnnotation)
			}
		}},
		{"bypass disabled", "propertyBypassAnnotation: \"\"\n", func(t *testing.T, c Config) {
			if c.PropertyBypassAnnotation != "" {
				t.Errorf("PropertyBypassAnnotation = %q, want empty", c.PropertyBypassAnnotation)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown key", "topTipe: x\n", "topTipe"},
		{"missing top type", "topType: \"\"\n", "topType: required"},
		{"bad top type", "topType: \"java..Object\"\n", "is not a qualified Java name"},
		{"bad excluded root", "excludedRoots: [\"a b\"]\n", "excludedRoots[0]"},
		{"empty source root", "sourceRoots: [\"\"]\n", "sourceRoots[0]: required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		c, path, err := Discover(t.TempDir())
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		if path != "" || c.TopType != "java.lang.Object" {
			t.Errorf("Discover() = %q, %q, want defaults", path, c.TopType)
		}
	})
	t.Run("relative roots", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte("sourceRoots: [src, /abs]\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		c, path, err := Discover(dir)
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		if path != filepath.Join(dir, DefaultFile) {
			t.Errorf("path = %q", path)
		}
		want := []string{filepath.Join(dir, "src"), "/abs"}
		if !slices.Equal(c.SourceRoots, want) {
			t.Errorf("SourceRoots = %v, want %v", c.SourceRoots, want)
		}
	})
}

func TestMarshalRoundTrip(t *testing.T) {
	c := Default()
	c.SourceRoots = []string{"src/main/java"}
	data, err := c.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), "topType: java.lang.Object") {
		t.Errorf("Marshal() = %s, want topType key", data)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !slices.Equal(back.SourceRoots, c.SourceRoots) || back.TopType != c.TopType {
		t.Errorf("Parse(Marshal()) = %+v, want %+v", back, c)
	}
}

func TestNewTable(t *testing.T) {
	dir := t.TempDir()
	src := "package acme;\n\npublic class Widget {\n    private int size;\n    public int getSize() { return size; }\n}\n"
	if err := os.MkdirAll(filepath.Join(dir, "acme"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "acme", "Widget.java"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	c := Default()
	c.SourceRoots = []string{dir}
	table, err := c.NewTable()
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	f, err := element.NewFactory(table, c.ElementOptions()...)
	if err != nil {
		t.Fatalf("NewFactory() error = %v", err)
	}
	widget, err := f.ClassElementByName("acme.Widget")
	if err != nil {
		t.Fatalf("ClassElementByName() error = %v", err)
	}
	props, err := widget.Properties()
	if err != nil {
		t.Fatalf("Properties() error = %v", err)
	}
	if len(props) != 1 || props[0].Name() != "size" {
		t.Errorf("Properties() = %v, want [size]", props)
	}
}

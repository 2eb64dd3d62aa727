package annotation

import (
	"testing"

	"github.com/dhamidi/jel/symbol"
)

const factorySource = `package app;

import java.lang.annotation.Inherited;

@Inherited
public @interface Marked {}

public @interface Bean {}

@Bean
public @interface Service {}

@Service
public @interface Repository {}

@Marked
@Repository
public class Base {
    public void run() {}
}

public class Derived extends Base {
    @Deprecated
    public void stop() {}
}
`

func newFactory(t *testing.T) (*CachingFactory, *symbol.Table) {
	t.Helper()
	table := symbol.NewTable()
	if err := table.LoadSource("app/Base.java", []byte(factorySource)); err != nil {
		t.Fatalf("LoadSource() error = %v", err)
	}
	return NewCachingFactory(table), table
}

func lookup(t *testing.T, table *symbol.Table, name string) *symbol.Class {
	t.Helper()
	c, ok := table.LookupClass(name)
	if !ok {
		t.Fatalf("LookupClass(%q) not found", name)
	}
	return c
}

func TestCachingFactoryCachesPerRef(t *testing.T) {
	f, table := newFactory(t)
	base := lookup(t, table, "app.Base")
	f.Build(base).Annotate("app.Extra", nil)

	again := lookup(t, table, "app.Base")
	if !f.Build(again).HasAnnotation("app.Extra") {
		t.Error("metadata built for the same symbol did not observe the mutation")
	}

	preset := New(nil)
	if got := f.BuildPreset(base, preset); got != Metadata(preset) {
		t.Error("BuildPreset ignored the preset")
	}
	if got := f.BuildPreset(base, nil); !got.HasAnnotation("app.Extra") {
		t.Error("BuildPreset without a preset should fall back to Build")
	}
}

func TestCachingFactoryStereotypes(t *testing.T) {
	f, table := newFactory(t)
	m := f.Build(lookup(t, table, "app.Base"))

	tests := []struct {
		name string
		want bool
	}{
		{"app.Repository", true},
		{"app.Service", true},
		{"app.Bean", true},
		{"java.lang.annotation.Inherited", false},
	}
	for _, tt := range tests {
		if got := m.HasStereotype(tt.name); got != tt.want {
			t.Errorf("HasStereotype(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCachingFactoryInheritance(t *testing.T) {
	f, table := newFactory(t)
	derived := lookup(t, table, "app.Derived")

	m := f.Build(derived)
	if !m.HasAnnotation("app.Marked") {
		t.Error("@Inherited annotation of the superclass is missing")
	}
	if m.HasAnnotation("app.Repository") {
		t.Error("a non-inherited superclass annotation leaked into the subclass")
	}
	if m.HasDeclaredAnnotation("app.Marked") {
		t.Error("inherited annotation reported as declared")
	}

	run, ok := lookup(t, table, "app.Base").Method("run()")
	if !ok {
		t.Fatal("method run() missing")
	}
	rm := f.Build(run)
	if !rm.HasAnnotation("app.Repository") {
		t.Error("method metadata should include its class annotations")
	}
	if rm.Declared().HasAnnotation("app.Repository") {
		t.Error("declared method view includes class annotations")
	}

	stop, _ := derived.Method("stop()")
	if !f.Build(stop).Declared().HasAnnotation("java.lang.Deprecated") {
		t.Error("declared method annotation missing")
	}
}

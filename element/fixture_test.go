package element

import (
	"testing"

	"github.com/dhamidi/jel/symbol"
)

const fixtureSource = `package demo;

import java.util.List;
import kotlin.jvm.JvmField;

public @interface Column {
    String name() default "";
}

public @interface Marked {}

public @interface Inject {}

public class Box<T> {
    private T value;
    public Box() {}
    public T getValue() { return value; }
    public void setValue(T value) { this.value = value; }
}

public class StringBox extends Box<String> {}

public class Pair<K, V> {
    public K first;
    public V second;
}

public class Node<P extends Node<P>> {}

public enum Color { RED, GREEN }

public record Point(int x, int y) {}

public class Odd implements Object, Runnable {
    public void run() {}
}

public class Repo {}

@Marked
public class Person {
    @Column(name = "field")
    private String name;

    @Inject
    private Repo repo;

    @Column(name = "getter")
    public String getName() { return name; }

    @Column(name = "setter")
    public void setName(String name) { this.name = name; }

    public int getAge() { return 0; }
    public boolean isActive() { return true; }
    private String getSecret() { return null; }
    public void setNickname(String nickname) {}
}

public class Settings {
    @JvmField
    public String mode;

    public String getMode() { return mode; }
}

public class Animal {
    public String sound() { return ""; }
}

public class Dog extends Animal {
    @Override
    public String sound() { return "woof"; }
}

public class Broken {
    public Missing thing;
}

public class Gauge {
    public int weight;
    private int hidden;
}

public class Wrapper<E> {
    public List<String> names;
}
`

func newTestFactory(t *testing.T, opts ...Option) (*Factory, *symbol.Table) {
	t.Helper()
	table := symbol.NewTable()
	if err := table.LoadSource("demo/Fixtures.java", []byte(fixtureSource)); err != nil {
		t.Fatalf("LoadSource() error = %v", err)
	}
	f, err := NewFactory(table, opts...)
	if err != nil {
		t.Fatalf("NewFactory() error = %v", err)
	}
	return f, table
}

func classElement(t *testing.T, f *Factory, name string) ClassElement {
	t.Helper()
	c, err := f.ClassElementByName(name)
	if err != nil {
		t.Fatalf("ClassElementByName(%q) error = %v", name, err)
	}
	return c
}

func parseElement(t *testing.T, f *Factory, table *symbol.Table, expr string) ClassElement {
	t.Helper()
	typ, err := table.ParseType(expr)
	if err != nil {
		t.Fatalf("ParseType(%q) error = %v", expr, err)
	}
	c, err := f.NewClassElement(typ, nil)
	if err != nil {
		t.Fatalf("NewClassElement(%s) error = %v", typ, err)
	}
	return c
}

func enclosed(t *testing.T, c ClassElement, q Query) []Element {
	t.Helper()
	elems, err := c.EnclosedElements(q)
	if err != nil {
		t.Fatalf("%s.EnclosedElements(%s) error = %v", c.Name(), q.Kind(), err)
	}
	return elems
}

func elementNames(elems []Element) []string {
	names := make([]string, len(elems))
	for i, e := range elems {
		names[i] = e.Name()
	}
	return names
}

func methodSymbol(t *testing.T, c *symbol.Class, name string) *symbol.Method {
	t.Helper()
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("%s has no method %s", c.Name, name)
	return nil
}

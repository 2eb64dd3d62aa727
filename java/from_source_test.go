package java

import (
	"testing"

	"github.com/dhamidi/jel/java/parser"
)

func parseOne(t *testing.T, source string) []*ClassModel {
	t.Helper()
	models, err := ClassModelsFromSource([]byte(source), parser.WithFile("Test.java"))
	if err != nil {
		t.Fatalf("ClassModelsFromSource() error = %v", err)
	}
	return models
}

func findModel(t *testing.T, models []*ClassModel, name string) *ClassModel {
	t.Helper()
	for _, m := range models {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("no model named %q", name)
	return nil
}

func TestJavadocExtraction(t *testing.T) {
	models := parseOne(t, `package com.example;

/** A single-line javadoc */ public class Test {
    /**
     * Field doc.
     */
    private String name;

    /** Method doc */
    public void test() {}
}
`)
	cls := models[0]

	if cls.Javadoc != "/** A single-line javadoc */" {
		t.Errorf("class Javadoc = %q, want %q", cls.Javadoc, "/** A single-line javadoc */")
	}
	field, ok := cls.Field("name")
	if !ok {
		t.Fatal("field name not found")
	}
	if want := "/**\n     * Field doc.\n     */"; field.Javadoc != want {
		t.Errorf("field Javadoc = %q, want %q", field.Javadoc, want)
	}
	methods := cls.MethodsNamed("test")
	if len(methods) != 1 {
		t.Fatalf("MethodsNamed(test) = %d methods, want 1", len(methods))
	}
	if methods[0].Javadoc != "/** Method doc */" {
		t.Errorf("method Javadoc = %q, want %q", methods[0].Javadoc, "/** Method doc */")
	}
}

func TestTypeNameResolution(t *testing.T) {
	models := parseOne(t, `package com.example;

import java.util.List;
import java.util.Map;

public class Repo<T extends Comparable<T>> extends Base implements Iterable<T> {
    private List<String> names;
    private Map.Entry<String, T> entry;
    private Helper helper;
    private int[] counts;
    private long matrix[][];

    public <T> T shadow(T value) { return value; }

    static class Helper {}
}
`)
	repo := findModel(t, models, "com.example.Repo")

	tests := []struct {
		field    string
		wantName string
		wantDims int
	}{
		{"names", "java.util.List", 0},
		{"entry", "java.util.Map.Entry", 0},
		{"helper", "com.example.Repo.Helper", 0},
		{"counts", "int", 1},
		{"matrix", "long", 2},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f, ok := repo.Field(tt.field)
			if !ok {
				t.Fatalf("field %s not found", tt.field)
			}
			if f.Type.Name != tt.wantName {
				t.Errorf("Type.Name = %q, want %q", f.Type.Name, tt.wantName)
			}
			if f.Type.ArrayDepth != tt.wantDims {
				t.Errorf("Type.ArrayDepth = %d, want %d", f.Type.ArrayDepth, tt.wantDims)
			}
		})
	}

	t.Run("supertypes", func(t *testing.T) {
		if repo.SuperType == nil || repo.SuperType.Name != "com.example.Base" {
			t.Errorf("SuperType = %v, want com.example.Base", repo.SuperType)
		}
		if len(repo.Interfaces) != 1 || repo.Interfaces[0].String() != "java.lang.Iterable<T>" {
			t.Errorf("Interfaces = %v, want [java.lang.Iterable<T>]", repo.Interfaces)
		}
		if !repo.Interfaces[0].TypeArguments[0].Type.IsTypeVariable {
			t.Error("Iterable argument T should be a type variable")
		}
	})

	t.Run("type parameter bound", func(t *testing.T) {
		if len(repo.TypeParameters) != 1 {
			t.Fatalf("TypeParameters = %d, want 1", len(repo.TypeParameters))
		}
		bound := repo.TypeParameters[0].Bounds[0]
		if bound.String() != "java.lang.Comparable<T>" {
			t.Errorf("bound = %q, want %q", bound.String(), "java.lang.Comparable<T>")
		}
	})

	t.Run("method type parameter shadows class", func(t *testing.T) {
		m := repo.MethodsNamed("shadow")[0]
		if len(m.TypeParameters) != 1 || m.TypeParameters[0].Name != "T" {
			t.Fatalf("TypeParameters = %v, want [T]", m.TypeParameters)
		}
		if !m.ReturnType.IsTypeVariable {
			t.Error("return type should be a type variable")
		}
	})

	t.Run("static nested class hides outer variables", func(t *testing.T) {
		helper := findModel(t, models, "com.example.Repo.Helper")
		if !helper.IsStatic || helper.EnclosingClass != "com.example.Repo" {
			t.Errorf("Helper IsStatic = %v, EnclosingClass = %q", helper.IsStatic, helper.EnclosingClass)
		}
	})
}

func TestWildcardArguments(t *testing.T) {
	models := parseOne(t, `package p;
import java.util.*;
class W {
    List<? extends Number> up;
    List<? super Integer> down;
    List<?> any;
}
`)
	w := models[0]
	tests := []struct {
		field string
		want  string
	}{
		{"up", "p.List<? extends java.lang.Number>"},
		{"down", "p.List<? super java.lang.Integer>"},
		{"any", "p.List<?>"},
	}
	for _, tt := range tests {
		f, _ := w.Field(tt.field)
		if got := f.Type.String(); got != tt.want {
			t.Errorf("%s type = %q, want %q", tt.field, got, tt.want)
		}
	}
	if len(w.StarImports) != 1 || w.StarImports[0] != "java.util" {
		t.Errorf("StarImports = %v, want [java.util]", w.StarImports)
	}
}

func TestImplicitSupertypes(t *testing.T) {
	models := parseOne(t, `package p;
class A {}
interface I {}
enum Color { RED, GREEN }
record Point(int x, int y) {}
@interface Marker {}
`)
	tests := []struct {
		name      string
		wantSuper string
	}{
		{"p.A", "java.lang.Object"},
		{"p.Color", "java.lang.Enum<p.Color>"},
		{"p.Point", "java.lang.Record"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := findModel(t, models, tt.name)
			if m.SuperType == nil {
				t.Fatal("SuperType = nil")
			}
			if got := m.SuperType.String(); got != tt.wantSuper {
				t.Errorf("SuperType = %q, want %q", got, tt.wantSuper)
			}
		})
	}

	if i := findModel(t, models, "p.I"); i.SuperType != nil {
		t.Errorf("interface SuperType = %v, want nil", i.SuperType)
	}
	marker := findModel(t, models, "p.Marker")
	if len(marker.Interfaces) != 1 || marker.Interfaces[0].Name != "java.lang.annotation.Annotation" {
		t.Errorf("annotation Interfaces = %v", marker.Interfaces)
	}
}

func TestImplicitMembers(t *testing.T) {
	models := parseOne(t, `package p;
public class Plain {}
enum Color { RED, GREEN; }
record Point(int x, @Deprecated int y) {
    Point {
    }
    public int x() { return x; }
}
`)

	t.Run("default constructor", func(t *testing.T) {
		plain := findModel(t, models, "p.Plain")
		ctors := plain.Constructors()
		if len(ctors) != 1 || !ctors[0].IsImplicit || ctors[0].Visibility != VisibilityPublic {
			t.Fatalf("Constructors() = %+v, want one implicit public constructor", ctors)
		}
	})

	t.Run("enum constants and methods", func(t *testing.T) {
		color := findModel(t, models, "p.Color")
		if len(color.EnumConstants) != 2 {
			t.Fatalf("EnumConstants = %d, want 2", len(color.EnumConstants))
		}
		red, ok := color.Field("RED")
		if !ok || !red.IsEnumConstant || !red.IsStatic || red.Type.Name != "p.Color" {
			t.Errorf("RED field = %+v", red)
		}
		if len(color.MethodsNamed("values")) != 1 || len(color.MethodsNamed("valueOf")) != 1 {
			t.Error("expected synthetic values() and valueOf()")
		}
		ctors := color.Constructors()
		if len(ctors) != 1 || ctors[0].Visibility != VisibilityPrivate {
			t.Errorf("enum constructor = %+v, want one private", ctors)
		}
	})

	t.Run("record members", func(t *testing.T) {
		point := findModel(t, models, "p.Point")
		if len(point.RecordComponents) != 2 {
			t.Fatalf("RecordComponents = %d, want 2", len(point.RecordComponents))
		}
		y, ok := point.Field("y")
		if !ok || !y.IsImplicit || y.Visibility != VisibilityPrivate || !y.IsFinal {
			t.Errorf("field y = %+v", y)
		}
		if len(y.Annotations) != 1 || y.Annotations[0].Type != "java.lang.Deprecated" {
			t.Errorf("field y annotations = %v", y.Annotations)
		}
		xs := point.MethodsNamed("x")
		if len(xs) != 1 || xs[0].IsImplicit {
			t.Errorf("accessor x() = %+v, want the declared one", xs)
		}
		ys := point.MethodsNamed("y")
		if len(ys) != 1 || !ys[0].IsImplicit {
			t.Errorf("accessor y() = %+v, want an implicit one", ys)
		}
		ctors := point.Constructors()
		if len(ctors) != 1 || len(ctors[0].Parameters) != 2 {
			t.Fatalf("compact constructor = %+v, want two parameters", ctors)
		}
		for _, name := range []string{"equals", "hashCode", "toString"} {
			ms := point.MethodsNamed(name)
			if len(ms) != 1 || !ms[0].IsSynthetic {
				t.Errorf("%s() = %+v, want one synthetic", name, ms)
			}
		}
	})
}

func TestInterfaceMembers(t *testing.T) {
	models := parseOne(t, `package p;
interface Shape {
    int SIDES = 0;
    double area();
    default String describe() { return ""; }
    static Shape unit() { return null; }
}
`)
	shape := models[0]
	sides, _ := shape.Field("SIDES")
	if sides.Visibility != VisibilityPublic || !sides.IsStatic || !sides.IsFinal {
		t.Errorf("SIDES = %+v, want public static final", sides)
	}
	tests := []struct {
		name         string
		wantAbstract bool
		wantDefault  bool
	}{
		{"area", true, false},
		{"describe", false, true},
		{"unit", false, false},
	}
	for _, tt := range tests {
		m := shape.MethodsNamed(tt.name)[0]
		if m.IsAbstract != tt.wantAbstract || m.IsDefault != tt.wantDefault {
			t.Errorf("%s: IsAbstract = %v, IsDefault = %v, want %v, %v", tt.name, m.IsAbstract, m.IsDefault, tt.wantAbstract, tt.wantDefault)
		}
		if m.Visibility != VisibilityPublic {
			t.Errorf("%s: Visibility = %s, want public", tt.name, m.Visibility)
		}
	}
	if len(shape.Constructors()) != 0 {
		t.Error("interfaces have no constructors")
	}
}

func TestMethodSignatures(t *testing.T) {
	models := parseOne(t, `package p;
import java.io.IOException;
abstract class Io {
    protected abstract void write(byte[] data, String... parts) throws IOException;
}
@interface Config {
    String name() default "x";
    int[] ports() default {1, 2};
}
`)
	io := findModel(t, models, "p.Io")
	write := io.MethodsNamed("write")[0]
	if !write.IsVarargs || !write.Parameters[1].IsVarargs {
		t.Error("write should be varargs")
	}
	if got := write.ErasedSignature(); got != "write(byte[],java.lang.String[])" {
		t.Errorf("ErasedSignature() = %q, want %q", got, "write(byte[],java.lang.String[])")
	}
	if len(write.Exceptions) != 1 || write.Exceptions[0].Name != "java.io.IOException" {
		t.Errorf("Exceptions = %v", write.Exceptions)
	}

	config := findModel(t, models, "p.Config")
	if got := config.MethodsNamed("name")[0].DefaultValue; got != "x" {
		t.Errorf("name() default = %v, want x", got)
	}
	ports, ok := config.MethodsNamed("ports")[0].DefaultValue.([]interface{})
	if !ok || len(ports) != 2 {
		t.Errorf("ports() default = %v, want two values", config.MethodsNamed("ports")[0].DefaultValue)
	}
}

func TestAnnotationValues(t *testing.T) {
	models := parseOne(t, `package p;
import javax.inject.Named;
@Named("svc")
@SuppressWarnings(value = {"a", "b"})
class Svc {}
`)
	svc := models[0]
	if len(svc.Annotations) != 2 {
		t.Fatalf("Annotations = %d, want 2", len(svc.Annotations))
	}
	named := svc.Annotations[0]
	if named.Type != "javax.inject.Named" || named.Values["value"] != "svc" {
		t.Errorf("Named = %+v", named)
	}
	sw := svc.Annotations[1]
	if sw.Type != "java.lang.SuppressWarnings" {
		t.Errorf("SuppressWarnings type = %q", sw.Type)
	}
	if values, ok := sw.Values["value"].([]interface{}); !ok || len(values) != 2 {
		t.Errorf("SuppressWarnings value = %v", sw.Values["value"])
	}
}

func TestSyntaxErrorReported(t *testing.T) {
	_, err := ClassModelsFromSource([]byte("package p; class { }"))
	if err == nil {
		t.Fatal("ClassModelsFromSource() error = nil, want a syntax error")
	}
}

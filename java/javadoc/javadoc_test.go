package javadoc

import (
	"testing"
)

func TestParseDescription(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"single line", "/** Returns the name. */", "Returns the name."},
		{
			"multi line",
			"/**\n * First line\n * continues here.\n *\n * Second paragraph.\n */",
			"First line continues here.\n\nSecond paragraph.",
		},
		{"code tag", "/** Uses {@code Map<K, V>} internally. */", "Uses Map<K, V> internally."},
		{"nested braces in code", "/** Call {@code run(() -> { })} first. */", "Call run(() -> { }) first."},
		{"link", "/** See {@link java.util.List#add(Object)}. */", "See java.util.List.add(Object)."},
		{"link with label", "/** See {@link #size() the size}. */", "See the size."},
		{"local link", "/** See {@link #size()}. */", "See size()."},
		{"html", "/** <p>A <b>bold</b> claim. */", "A bold claim."},
		{"entities", "/** a &lt; b &amp;&amp; c */", "a < b && c"},
		{"stray ampersand", "/** this & that */", "this & that"},
		{"inheritDoc", "/** {@inheritDoc} */", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.raw).Description; got != tt.want {
				t.Errorf("Description = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseBlockTags(t *testing.T) {
	doc := Parse(`/**
 * Looks up a value.
 *
 * @param <T> the value type
 * @param key the key to look
 *        up, never null
 * @return the value
 * @throws IllegalStateException when closed
 * @deprecated use {@link #get(String)}
 */`)

	if doc.Description != "Looks up a value." {
		t.Errorf("Description = %q, want %q", doc.Description, "Looks up a value.")
	}
	if len(doc.Tags) != 5 {
		t.Fatalf("len(Tags) = %d, want 5: %+v", len(doc.Tags), doc.Tags)
	}

	tests := []struct {
		name string
		want string
	}{
		{"<T>", "the value type"},
		{"key", "the key to look up, never null"},
		{"missing", ""},
	}
	for _, tt := range tests {
		if got := doc.Param(tt.name); got != tt.want {
			t.Errorf("Param(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}

	throws, ok := doc.Tag("throws")
	if !ok || throws.Arg != "IllegalStateException" || throws.Text != "when closed" {
		t.Errorf("Tag(throws) = %+v", throws)
	}
	deprecated, ok := doc.Tag("deprecated")
	if !ok || deprecated.Text != "use get(String)" {
		t.Errorf("Tag(deprecated) = %+v", deprecated)
	}
	if _, ok := doc.Tag("since"); ok {
		t.Error("Tag(since) found, want missing")
	}
}

func TestNilDoc(t *testing.T) {
	var doc *Doc
	if _, ok := doc.Tag("return"); ok {
		t.Error("Tag on nil Doc reported a tag")
	}
	if got := doc.Param("x"); got != "" {
		t.Errorf("Param on nil Doc = %q, want empty", got)
	}
}

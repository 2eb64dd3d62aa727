// Package javadoc reads Javadoc comments into a description and block tags.
package javadoc

import (
	"strings"
)

// Doc is a parsed Javadoc comment. Inline tags are rendered to their text
// and HTML markup is dropped.
type Doc struct {
	Description string
	Tags        []Tag
}

// Tag is one block tag. Arg is set for tags that name something, such as
// the parameter of @param or the exception of @throws.
type Tag struct {
	Name string
	Arg  string
	Text string
}

// Tag returns the first block tag called name.
func (d *Doc) Tag(name string) (Tag, bool) {
	if d == nil {
		return Tag{}, false
	}
	for _, t := range d.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// Param returns the @param text for the named parameter. Type parameters
// are looked up as "<T>".
func (d *Doc) Param(name string) string {
	if d == nil {
		return ""
	}
	for _, t := range d.Tags {
		if t.Name == "param" && t.Arg == name {
			return t.Text
		}
	}
	return ""
}

var namedTags = map[string]bool{
	"param":       true,
	"throws":      true,
	"exception":   true,
	"serialField": true,
}

// Parse reads a raw comment, markers included. An empty comment gives an
// empty Doc.
func Parse(raw string) *Doc {
	text := renderInline(stripMarkers(raw))
	doc := &Doc{}

	var description []string
	var current *Tag
	var body []string
	flush := func() {
		if current != nil {
			current.Text = collapse(body)
			doc.Tags = append(doc.Tags, *current)
		}
		body = nil
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "@") {
			flush()
			name, rest, _ := strings.Cut(trimmed[1:], " ")
			current = &Tag{Name: name}
			rest = strings.TrimSpace(rest)
			if namedTags[name] {
				current.Arg, rest, _ = strings.Cut(rest, " ")
			}
			body = []string{rest}
			continue
		}
		if current != nil {
			body = append(body, line)
		} else {
			description = append(description, line)
		}
	}
	flush()
	doc.Description = collapse(description)
	return doc
}

// stripMarkers removes the comment delimiters and the leading '*' of
// every line.
func stripMarkers(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimSuffix(raw, "*/")
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		line = strings.TrimLeft(line, " \t")
		if strings.HasPrefix(line, "*") {
			line = strings.TrimPrefix(line[1:], " ")
		}
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.Join(lines, "\n")
}

// renderInline replaces inline tags with their text, drops HTML tags and
// decodes the common entities. HTML tags are lower case, which keeps type
// parameters such as <T> intact.
func renderInline(s string) string {
	input := []rune(s)
	var sb strings.Builder
	for i := 0; i < len(input); i++ {
		ch := input[i]
		switch {
		case ch == '{' && i+1 < len(input) && input[i+1] == '@':
			end := matchingBrace(input, i)
			sb.WriteString(inlineTagText(string(input[i+2 : end])))
			i = end
		case ch == '<' && i+1 < len(input) && (isLower(input[i+1]) || input[i+1] == '/'):
			end := i
			for end < len(input) && input[end] != '>' {
				end++
			}
			i = end
		case ch == '&':
			end := i + 1
			for end < len(input) && end-i < 8 && input[end] != ';' {
				end++
			}
			if end < len(input) && input[end] == ';' {
				if decoded, ok := entities[string(input[i+1:end])]; ok {
					sb.WriteString(decoded)
					i = end
					continue
				}
			}
			sb.WriteRune(ch)
		default:
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

func matchingBrace(input []rune, open int) int {
	depth := 0
	for i := open; i < len(input); i++ {
		switch input[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(input) - 1
}

func inlineTagText(tag string) string {
	name, rest, _ := strings.Cut(tag, " ")
	rest = strings.TrimSpace(rest)
	switch name {
	case "link", "linkplain":
		ref, label, found := strings.Cut(rest, " ")
		if found && strings.TrimSpace(label) != "" {
			return strings.TrimSpace(label)
		}
		return formatReference(ref)
	case "inheritDoc", "docRoot":
		return ""
	}
	return rest
}

// formatReference turns "List#add(Object)" into "List.add(Object)" and
// "#size()" into "size()".
func formatReference(ref string) string {
	if strings.HasPrefix(ref, "#") {
		return ref[1:]
	}
	return strings.Replace(ref, "#", ".", 1)
}

var entities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"quot": "\"",
	"apos": "'",
	"nbsp": " ",
}

// collapse joins lines into paragraphs: single line breaks become spaces,
// blank lines separate paragraphs.
func collapse(lines []string) string {
	var paragraphs []string
	var current []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, strings.Join(current, " "))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, " "))
	}
	return strings.Join(paragraphs, "\n\n")
}

func isLower(ch rune) bool {
	return ch >= 'a' && ch <= 'z'
}

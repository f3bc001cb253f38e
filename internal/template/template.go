// Package template implements placeholder substitution for batch job scripts.
//
// Templates are plain text with `{name}` placeholder tokens, following the
// str.format conventions common in cluster submission templates: `{{` and `}}`
// are escapes for literal braces, and placeholder names are restricted to
// [A-Za-z0-9_]. A Template is immutable once parsed; Render is a pure function.
package template

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// placeholderNameRe restricts placeholder names to word characters.
var placeholderNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Template is an ordered sequence of text lines with placeholder tokens.
// Construct via Load or Parse; both validate brace syntax up front so that
// Render never encounters a malformed line.
type Template struct {
	name         string
	lines        []string
	placeholders []string // sorted, unique
}

// Load reads a template file and parses it.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, err
	}
	return Parse(path, string(data))
}

// Parse validates template text and returns an immutable Template.
// name is used for error reporting only (usually the file path).
func Parse(name, text string) (*Template, error) {
	if strings.TrimSpace(text) == "" {
		return nil, NewInvalidTemplateError(name, 0, ErrEmptyTemplate.Error())
	}

	// A trailing newline is a line terminator, not an empty final line.
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")

	seen := make(map[string]struct{})
	for i, line := range lines {
		names, err := scanLine(line)
		if err != nil {
			return nil, NewInvalidTemplateError(name, i+1, err.Error())
		}
		for _, n := range names {
			seen[n] = struct{}{}
		}
	}

	placeholders := make([]string, 0, len(seen))
	for n := range seen {
		placeholders = append(placeholders, n)
	}
	sort.Strings(placeholders)

	return &Template{
		name:         name,
		lines:        lines,
		placeholders: placeholders,
	}, nil
}

// Name returns the template name (file path for Load, caller-supplied for Parse).
func (t *Template) Name() string {
	return t.name
}

// Placeholders returns the sorted unique placeholder names in the template.
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.placeholders))
	copy(out, t.placeholders)
	return out
}

// Render replaces every placeholder occurrence with its value from subs.
// The output always ends with a newline and never contains a placeholder token.
// Keys in subs without a matching placeholder are ignored.
//
// If any placeholder has no entry in subs, Render fails with an
// UnresolvedPlaceholderError naming the complete set of missing keys.
func (t *Template) Render(subs map[string]string) (string, error) {
	missing := make(map[string]struct{})
	out := make([]string, len(t.lines))
	for i, line := range t.lines {
		out[i] = renderLine(line, subs, missing)
	}

	if len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for k := range missing {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", NewUnresolvedPlaceholderError(t.name, keys)
	}

	return strings.Join(out, "\n") + "\n", nil
}

// scanLine validates brace syntax in a single line and returns the
// placeholder names it contains.
func scanLine(line string) ([]string, error) {
	var names []string
	for i := 0; i < len(line); {
		switch line[i] {
		case '{':
			if i+1 < len(line) && line[i+1] == '{' {
				i += 2 // escaped literal "{"
				continue
			}
			end := strings.IndexByte(line[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated placeholder at column %d", i+1)
			}
			name := line[i+1 : i+1+end]
			if name == "" {
				return nil, fmt.Errorf("empty placeholder at column %d", i+1)
			}
			if !placeholderNameRe.MatchString(name) {
				return nil, fmt.Errorf("invalid placeholder name %q at column %d", name, i+1)
			}
			names = append(names, name)
			i += end + 2
		case '}':
			if i+1 < len(line) && line[i+1] == '}' {
				i += 2 // escaped literal "}"
				continue
			}
			return nil, fmt.Errorf("unbalanced '}' at column %d", i+1)
		default:
			i++
		}
	}
	return names, nil
}

// renderLine substitutes placeholders in one validated line.
// Unresolved names are collected into missing; the returned text for those
// positions is unspecified because Render discards it on error.
func renderLine(line string, subs map[string]string, missing map[string]struct{}) string {
	var b strings.Builder
	b.Grow(len(line))
	for i := 0; i < len(line); {
		switch line[i] {
		case '{':
			if i+1 < len(line) && line[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(line[i+1:], '}')
			name := line[i+1 : i+1+end]
			if value, ok := subs[name]; ok {
				b.WriteString(value)
			} else {
				missing[name] = struct{}{}
			}
			i += end + 2
		case '}':
			b.WriteByte('}')
			i += 2
		default:
			b.WriteByte(line[i])
			i++
		}
	}
	return b.String()
}

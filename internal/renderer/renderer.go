// Package renderer fills named placeholders in prompt patterns.
//
// Patterns use {name} placeholder syntax. Doubled braces ({{ and }}) are
// escapes for literal braces, matching the syntax the template files were
// originally authored in.
package renderer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/promptbrush/promptbrush/internal/errors"
)

// Renderer holds a pattern and the result of its most recent render
type Renderer struct {
	pattern string
	latest  string
}

// New creates a renderer for the given pattern
func New(pattern string) (*Renderer, error) {
	if !utf8.ValidString(pattern) {
		return nil, errors.InvalidInputError("pattern", "not a valid UTF-8 string")
	}
	return &Renderer{pattern: pattern}, nil
}

// Pattern returns the stored pattern
func (r *Renderer) Pattern() string {
	return r.pattern
}

// SetPattern replaces the stored pattern and clears the latest render
func (r *Renderer) SetPattern(pattern string) error {
	if !utf8.ValidString(pattern) {
		return errors.InvalidInputError("pattern", "not a valid UTF-8 string")
	}
	r.pattern = pattern
	r.latest = ""
	return nil
}

// Latest returns the most recent successful render, or the empty string if
// the pattern has not been rendered since it was set
func (r *Renderer) Latest() string {
	return r.latest
}

// Render substitutes every placeholder in the pattern with the matching
// value from vars and stores the result as the latest render. A failed
// render leaves the latest render untouched.
func (r *Renderer) Render(vars map[string]interface{}) (string, error) {
	result, err := Fill(r.pattern, vars)
	if err != nil {
		return "", err
	}
	r.latest = result
	return result, nil
}

// Fill substitutes placeholders in a pattern without renderer state
func Fill(pattern string, vars map[string]interface{}) (string, error) {
	var out strings.Builder
	runes := []rune(pattern)

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '{':
			// Doubled brace is an escaped literal
			if i+1 < len(runes) && runes[i+1] == '{' {
				out.WriteRune('{')
				i++
				continue
			}

			end := indexRune(runes, i+1, '}')
			if end < 0 {
				return "", errors.RenderError("single '{' encountered in pattern")
			}

			name := string(runes[i+1 : end])
			if !isIdentifier(name) {
				return "", errors.RenderError(fmt.Sprintf("malformed placeholder '{%s}'", name))
			}

			value, ok := vars[name]
			if !ok {
				return "", errors.MissingKeyError(name)
			}

			out.WriteString(fmt.Sprint(value))
			i = end

		case '}':
			if i+1 < len(runes) && runes[i+1] == '}' {
				out.WriteRune('}')
				i++
				continue
			}
			return "", errors.RenderError("single '}' encountered in pattern")

		default:
			out.WriteRune(runes[i])
		}
	}

	return out.String(), nil
}

// Placeholders returns the placeholder names referenced by a pattern, in
// order of first appearance
func Placeholders(pattern string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	runes := []rune(pattern)

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				i++
				continue
			}

			end := indexRune(runes, i+1, '}')
			if end < 0 {
				return nil, errors.RenderError("single '{' encountered in pattern")
			}

			name := string(runes[i+1 : end])
			if !isIdentifier(name) {
				return nil, errors.RenderError(fmt.Sprintf("malformed placeholder '{%s}'", name))
			}

			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			i = end

		case '}':
			if i+1 < len(runes) && runes[i+1] == '}' {
				i++
				continue
			}
			return nil, errors.RenderError("single '}' encountered in pattern")
		}
	}

	return names, nil
}

// indexRune returns the index of the first occurrence of target at or after
// start, or -1 if it does not occur
func indexRune(runes []rune, start int, target rune) int {
	for i := start; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

// isIdentifier reports whether name is a valid placeholder name: a letter or
// underscore followed by letters, digits, or underscores
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

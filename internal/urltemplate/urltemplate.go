// Package urltemplate expands URL templates with named ":param" placeholders,
// e.g. "http://localhost:1111/api/:id".
//
// A placeholder starts at a colon followed by a letter or underscore and runs
// over letters, digits and underscores. Placeholders are only recognized
// after the authority, so scheme separators, credentials and ports are
// literal text.
package urltemplate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrEmpty is returned by Parse for an empty template.
var ErrEmpty = errors.New("urltemplate: empty template")

type segment struct {
	literal string
	param   string
}

// Template is a parsed URL template. It is immutable and safe for
// concurrent use.
type Template struct {
	raw      string
	segments []segment
	params   []string
}

// Parse splits raw into literal text and placeholders.
func Parse(raw string) (*Template, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmpty
	}

	t := &Template{raw: raw}
	seen := make(map[string]bool)

	var lit strings.Builder
	start := authorityEnd(raw)
	lit.WriteString(raw[:start])
	for i := start; i < len(raw); {
		c := raw[i]
		if c == ':' && i+1 < len(raw) && isNameStart(raw[i+1]) {
			j := i + 2
			for j < len(raw) && isNameChar(raw[j]) {
				j++
			}
			if lit.Len() > 0 {
				t.segments = append(t.segments, segment{literal: lit.String()})
				lit.Reset()
			}
			name := raw[i+1 : j]
			t.segments = append(t.segments, segment{param: name})
			if !seen[name] {
				seen[name] = true
				t.params = append(t.params, name)
			}
			i = j
			continue
		}
		lit.WriteByte(c)
		i++
	}
	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{literal: lit.String()})
	}

	return t, nil
}

// MustParse is like Parse but panics on error.
func MustParse(raw string) *Template {
	t, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Expand substitutes params into the template. Values are formatted with
// fmt.Sprint and path-escaped; a placeholder with no value (or a nil value)
// expands to the empty string.
func (t *Template) Expand(params map[string]any) string {
	var b strings.Builder
	b.Grow(len(t.raw))
	for _, s := range t.segments {
		if s.param == "" {
			b.WriteString(s.literal)
			continue
		}
		v, ok := params[s.param]
		if !ok || v == nil {
			continue
		}
		b.WriteString(url.PathEscape(fmt.Sprint(v)))
	}
	return b.String()
}

// Params lists placeholder names in order of first appearance.
func (t *Template) Params() []string {
	out := make([]string, len(t.params))
	copy(out, t.params)
	return out
}

// String returns the raw template.
func (t *Template) String() string {
	return t.raw
}

// authorityEnd returns the index just past the "scheme://authority" or
// "//authority" prefix of raw, or 0 when raw has none.
func authorityEnd(raw string) int {
	var from int
	switch {
	case strings.HasPrefix(raw, "//"):
		from = 2
	default:
		i := strings.Index(raw, "://")
		if i < 0 || strings.ContainsAny(raw[:i], "/?#") {
			return 0
		}
		from = i + 3
	}
	if end := strings.IndexAny(raw[from:], "/?#"); end >= 0 {
		return from + end
	}
	return len(raw)
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

package icon

import (
	"regexp"
	"sort"
	"strings"
)

var (
	doctypeRe = regexp.MustCompile(`(?s)<!DOCTYPE[^\[>]*(\[(.*?)\])?\s*>`)
	entityRe  = regexp.MustCompile(`<!ENTITY\s+([A-Za-z_][\w.-]*)\s+(?:"([^"]*)"|'([^']*)')\s*>`)
)

// Template is an unmodified vector document split into its body and the
// named entity slots declared in its DOCTYPE. Sugar icons declare their
// colors as entities (fill_color, stroke_color) and reference them
// from the drawing as &fill_color; and &stroke_color;.
type Template struct {
	body     string
	defaults map[string]string
}

// ParseTemplate splits raw document text into a Template.
func ParseTemplate(text string) *Template {
	t := &Template{body: text, defaults: map[string]string{}}

	loc := doctypeRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return t
	}
	if loc[4] >= 0 {
		subset := text[loc[4]:loc[5]]
		for _, m := range entityRe.FindAllStringSubmatch(subset, -1) {
			value := m[2]
			if value == "" {
				value = m[3]
			}
			t.defaults[m[1]] = value
		}
	}
	t.body = text[:loc[0]] + text[loc[1]:]

	return t
}

// Entities returns the declared slot names in sorted order.
func (t *Template) Entities() []string {
	names := make([]string, 0, len(t.defaults))
	for name := range t.defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the declared value of an entity slot.
func (t *Template) Default(name string) (string, bool) {
	v, ok := t.defaults[name]
	return v, ok
}

// Execute expands every declared entity reference in a single pass.
// Overrides replace the declared value of a slot; overrides for names the
// document does not declare have no effect.
func (t *Template) Execute(overrides map[string]string) string {
	if len(t.defaults) == 0 {
		return t.body
	}

	pairs := make([]string, 0, 2*len(t.defaults))
	for name, value := range t.defaults {
		if v, ok := overrides[name]; ok {
			value = v
		}
		pairs = append(pairs, "&"+name+";", value)
	}
	return strings.NewReplacer(pairs...).Replace(t.body)
}

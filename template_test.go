package icon

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplate_ParsesEntities(t *testing.T) {
	assert := assert.New(t)

	tmpl := ParseTemplate(fmt.Sprintf(squareIcon, "#FFFFFF"))
	assert.Equal([]string{"fill_color", "stroke_color"}, tmpl.Entities())

	v, ok := tmpl.Default("fill_color")
	assert.True(ok)
	assert.Equal("#FFFFFF", v)

	_, ok = tmpl.Default("background")
	assert.False(ok)
}

func TestTemplate_Execute(t *testing.T) {
	tmpl := ParseTemplate(fmt.Sprintf(squareIcon, "#FFFFFF"))

	testCases := []struct {
		name      string
		overrides map[string]string
		contains  string
	}{
		{"defaults", nil, `fill="#FFFFFF"`},
		{"override", map[string]string{"fill_color": "#00FF00"}, `fill="#00FF00"`},
		{"undeclared", map[string]string{"background": "#00FF00"}, `fill="#FFFFFF"`},
		{"single pass", map[string]string{"fill_color": "&stroke_color;"}, `fill="&stroke_color;"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := tmpl.Execute(tc.overrides)
			assert.Contains(t, out, tc.contains)
			assert.NotContains(t, out, "<!DOCTYPE")
			assert.NotContains(t, out, "&fill_color;")
		})
	}
}

func TestTemplate_WithoutDoctype(t *testing.T) {
	text := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"/>`
	tmpl := ParseTemplate(text)

	assert.Empty(t, tmpl.Entities())
	assert.Equal(t, text, tmpl.Execute(map[string]string{"fill_color": "#000"}))
}

func TestTemplate_SingleQuotedEntity(t *testing.T) {
	text := "<!DOCTYPE svg [<!ENTITY fill_color '#123456'>]><svg fill=\"&fill_color;\"/>"
	out := ParseTemplate(text).Execute(nil)

	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, `fill="#123456"`)
}

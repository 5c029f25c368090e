package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/gjson"
)

const indentUnit = "  "

// RenderJSON indents a JSON document, styling tokens when color is set.
// Key order and number literals are kept exactly as received. Input that is
// not valid JSON is returned unchanged.
func RenderJSON(body []byte, color bool) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	if !gjson.Valid(trimmed) {
		return trimmed
	}

	r := jsonRenderer{color: color}
	r.value(gjson.Parse(trimmed), 0)
	return r.b.String()
}

type jsonRenderer struct {
	b     strings.Builder
	color bool
}

func (r *jsonRenderer) styled(style lipgloss.Style, s string) {
	if r.color {
		s = style.Render(s)
	}
	r.b.WriteString(s)
}

func (r *jsonRenderer) value(v gjson.Result, depth int) {
	switch {
	case v.IsObject():
		r.object(v, depth)
	case v.IsArray():
		r.array(v, depth)
	case v.Type == gjson.String:
		r.styled(stringStyle, v.Raw)
	case v.Type == gjson.Number:
		r.styled(numberStyle, v.Raw)
	case v.Type == gjson.True, v.Type == gjson.False:
		r.styled(boolStyle, v.Raw)
	default:
		r.styled(nullStyle, "null")
	}
}

func (r *jsonRenderer) object(v gjson.Result, depth int) {
	type member struct {
		key gjson.Result
		val gjson.Result
	}
	var members []member
	v.ForEach(func(key, val gjson.Result) bool {
		members = append(members, member{key, val})
		return true
	})

	if len(members) == 0 {
		r.b.WriteString("{}")
		return
	}

	r.b.WriteString("{\n")
	for i, m := range members {
		r.b.WriteString(strings.Repeat(indentUnit, depth+1))
		r.styled(keyStyle, m.key.Raw)
		r.b.WriteString(": ")
		r.value(m.val, depth+1)
		if i < len(members)-1 {
			r.b.WriteByte(',')
		}
		r.b.WriteByte('\n')
	}
	r.b.WriteString(strings.Repeat(indentUnit, depth))
	r.b.WriteByte('}')
}

func (r *jsonRenderer) array(v gjson.Result, depth int) {
	items := v.Array()
	if len(items) == 0 {
		r.b.WriteString("[]")
		return
	}

	r.b.WriteString("[\n")
	for i, item := range items {
		r.b.WriteString(strings.Repeat(indentUnit, depth+1))
		r.value(item, depth+1)
		if i < len(items)-1 {
			r.b.WriteByte(',')
		}
		r.b.WriteByte('\n')
	}
	r.b.WriteString(strings.Repeat(indentUnit, depth))
	r.b.WriteByte(']')
}

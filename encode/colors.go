package encode

import (
	"strings"

	"github.com/signadot/seedgen/value"

	"github.com/fatih/color"
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[value.Kind]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[value.Kind]func(string, ...any) string{},
	}
	colors.Map[value.NilKind] = color.RGB(168, 0, 196).SprintfFunc()
	colors.Map[value.BoolKind] = color.CyanString
	colors.Map[value.NumberKind] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[value.TextKind] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[value.AtomKind] = color.RGB(196, 96, 16).SprintfFunc()
	colors.Map[value.RawKind] = color.RGB(198, 198, 46).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k value.Kind, s string) string {
	return c.Get(k)(s)
}

func (c *Colors) Get(k value.Kind) func(string, ...any) string {
	f := c.Map[k]
	if f == nil {
		return c.Default
	}
	return f
}

package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// MenusSpec is the content of menus.yaml.
type MenusSpec struct {
	Initial string              `yaml:"initial"`
	InGame  string              `yaml:"in_game"`
	Theme   MenuThemeSpec       `yaml:"theme"`
	Menus   map[string]MenuSpec `yaml:"menus"`
}

type MenuThemeSpec struct {
	Panel      *YAMLColor `yaml:"panel"`
	Button     *YAMLColor `yaml:"button"`
	ButtonText *YAMLColor `yaml:"button_text"`
	Selected   *YAMLColor `yaml:"selected"`
	Title      *YAMLColor `yaml:"title"`
}

type MenuSpec struct {
	Title   string           `yaml:"title"`
	Buttons []MenuButtonSpec `yaml:"buttons"`
}

type MenuButtonSpec struct {
	Label  string `yaml:"label"`
	Action string `yaml:"action"`
}

func LoadMenusSpec() (*MenusSpec, error) {
	spec, err := LoadSpec[MenusSpec]("menus.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// ColorOr returns c's color, or fallback when c is unset.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

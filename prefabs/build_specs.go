package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	MoveSpeed     float64 `yaml:"move_speed"`
	IdleAnimation string  `yaml:"idle_animation"`
	WalkAnimation string  `yaml:"walk_animation"`
	Directional   bool    `yaml:"directional"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image      string  `yaml:"image"`
	OriginX    float64 `yaml:"origin_x"`
	OriginY    float64 `yaml:"origin_y"`
	FacingLeft bool    `yaml:"facing_left"`
	Stretch    bool    `yaml:"stretch"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type AnimationComponentSpec struct {
	Current string               `yaml:"current"`
	Strips  map[string]StripSpec `yaml:"strips"`
}

type StripSpec struct {
	Image string `yaml:"image"`
	Cells int    `yaml:"cells"`
	Speed int    `yaml:"speed"`
}

type ColliderComponentSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Sensor  bool    `yaml:"sensor"`
}

type PickupComponentSpec struct {
	Value int `yaml:"value"`
}

type ScriptComponentSpec struct {
	Path string         `yaml:"path"`
	Vars map[string]any `yaml:"vars"`
}

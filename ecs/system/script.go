package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/spritescene/ecs"
	"github.com/milk9111/spritescene/ecs/component"
	"github.com/milk9111/spritescene/prefabs"
	log "github.com/sirupsen/logrus"
)

const scriptDispatch = `
if __phase == "update" {
	update(__engine)
}
`

// ScriptSystem runs the update(engine) function of each entity's tengo
// script once per tick. Scripts are compiled on first use.
type ScriptSystem struct {
	// Load returns script source by path.
	Load func(path string) ([]byte, error)

	cache map[ecs.Entity]*scriptRuntime
}

type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	err      error
	lastErr  string
}

func NewScriptSystem() *ScriptSystem {
	return &ScriptSystem{
		Load:  prefabs.LoadScript,
		cache: map[ecs.Entity]*scriptRuntime{},
	}
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if s.cache == nil {
		s.cache = map[ecs.Entity]*scriptRuntime{}
	}

	for e := range s.cache {
		if !ecs.Has(w, e, component.ScriptComponent.Kind()) {
			delete(s.cache, e)
		}
	}

	ecs.ForEach(w, component.ScriptComponent.Kind(), func(e ecs.Entity, script *component.Script) {
		if strings.TrimSpace(script.Path) == "" {
			return
		}
		rt := s.runtime(e, script.Path)
		if rt.err != nil {
			return
		}

		engine := buildScriptEngine(w, e, script)
		if err := rt.run("update", engine); err != nil {
			if msg := err.Error(); msg != rt.lastErr {
				log.WithFields(log.Fields{"entity": e, "script": script.Path}).WithError(err).Error("script: update")
				rt.lastErr = msg
			}
			return
		}
		rt.lastErr = ""
	})
}

func (s *ScriptSystem) runtime(e ecs.Entity, path string) *scriptRuntime {
	if rt, ok := s.cache[e]; ok && rt.path == path {
		return rt
	}
	rt := &scriptRuntime{path: path}
	rt.compiled, rt.err = s.compile(path)
	if rt.err != nil {
		log.WithFields(log.Fields{"entity": e, "script": path}).WithError(rt.err).Error("script: load")
	}
	s.cache[e] = rt
	return rt
}

func (s *ScriptSystem) compile(path string) (*tengo.Compiled, error) {
	load := s.Load
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %q: %w", path, err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %q: %w", path, err)
	}
	return compiled, nil
}

func (rt *scriptRuntime) run(phase string, engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildScriptEngine(w *ecs.World, e ecs.Entity, script *component.Script) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return vec2Object(0, 0), nil
		}
		return vec2Object(t.X, t.Y), nil
	}}

	values["get_player_position"] = &tengo.UserFunction{Name: "get_player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
		if !ok {
			return tengo.UndefinedValue, nil
		}
		t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vec2Object(t.X, t.Y), nil
	}}

	values["set_animation"] = &tengo.UserFunction{Name: "set_animation", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		return boolObject(anim.Play(objectAsString(args[0]))), nil
	}}

	values["pause_path"] = &tengo.UserFunction{Name: "pause_path", Value: func(args ...tengo.Object) (tengo.Object, error) {
		path, ok := ecs.Get(w, e, component.PathComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		paused := true
		if len(args) > 0 {
			paused = !args[0].IsFalsy()
		}
		path.Paused = paused
		return tengo.TrueValue, nil
	}}

	values["set_offset"] = &tengo.UserFunction{Name: "set_offset", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		sprite.OffsetX = x
		sprite.OffsetY = y
		return tengo.TrueValue, nil
	}}

	values["tick"] = &tengo.UserFunction{Name: "tick", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(w.Tick())}, nil
	}}

	values["name"] = &tengo.UserFunction{Name: "name", Value: func(args ...tengo.Object) (tengo.Object, error) {
		sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			return &tengo.String{Value: ""}, nil
		}
		return &tengo.String{Value: sprite.Name}, nil
	}}

	values["get_var"] = &tengo.UserFunction{Name: "get_var", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		fallback := tengo.UndefinedValue
		if len(args) > 1 {
			fallback = args[1]
		}
		v, ok := script.Vars[objectAsString(args[0])]
		if !ok {
			return fallback, nil
		}
		obj, err := tengo.FromInterface(v)
		if err != nil {
			return fallback, nil
		}
		return obj, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vec2Object(x, y float64) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

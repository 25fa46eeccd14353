// Package scenes loads the static scene descriptions that drive object
// instantiation.
package scenes

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	log "github.com/sirupsen/logrus"
)

//go:embed scene_data.json
var ScenesFS embed.FS

// DefaultFile is the scene file name looked up on disk and in the embedded FS.
const DefaultFile = "scene_data.json"

var ErrSceneNotFound = errors.New("scenes: scene not found")

// File maps scene names to their description.
type File map[string]Scene

// Scene is one location: a background and the objects placed over it.
type Scene struct {
	Background string   `json:"background1"`
	Objects    []Object `json:"objects"`
}

// Object is a sprite placed in a scene. A single strip can be given inline
// through Image/Cells/AnimationSpeed; further strips go in Animations.
type Object struct {
	Type           string               `json:"type,omitempty"`
	Name           string               `json:"name,omitempty"`
	X              float64              `json:"x"`
	Y              float64              `json:"y"`
	Image          string               `json:"image,omitempty"`
	Cells          int                  `json:"cells,omitempty"`
	AnimationSpeed int                  `json:"animation_speed,omitempty"`
	Animations     map[string]Animation `json:"animations,omitempty"`
	Current        string               `json:"current,omitempty"`
	Movement       *Movement            `json:"movement,omitempty"`
	Script         string               `json:"script,omitempty"`
	Value          int                  `json:"value,omitempty"`
	Layer          *int                 `json:"layer,omitempty"`
}

// Animation is a frame strip reference.
type Animation struct {
	Image          string `json:"image"`
	Cells          int    `json:"cells,omitempty"`
	AnimationSpeed int    `json:"animation_speed,omitempty"`
}

// Movement is the waypoint loop of a moving sprite.
type Movement struct {
	Points []Point `json:"points"`
	// Once stops at the last point instead of looping.
	Once bool `json:"once,omitempty"`
}

// Point is a target (X, Y, Speed) or a wait (Time ticks). Either kind may
// switch the sprite's strip through Image or Animation.
type Point struct {
	X              *float64 `json:"x,omitempty"`
	Y              *float64 `json:"y,omitempty"`
	Speed          float64  `json:"speed,omitempty"`
	Time           int      `json:"time,omitempty"`
	Image          string   `json:"image,omitempty"`
	Cells          int      `json:"cells,omitempty"`
	AnimationSpeed int      `json:"animation_speed,omitempty"`
	Animation      string   `json:"animation,omitempty"`
}

// IsTarget reports whether the point moves the sprite.
func (p Point) IsTarget() bool {
	return p.X != nil && p.Y != nil
}

// Names returns the scene names in sorted order.
func (f File) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse decodes a scene file.
func Parse(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scenes: unmarshal: %w", err)
	}
	return f, nil
}

// LoadFile reads the scene file at path. A missing file is reported and the
// embedded default is used instead.
func LoadFile(path string) (File, error) {
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("scenes: read %q: %w", path, err)
		}
		log.WithField("file", path).Warn("scenes: file not found, using embedded scene data")
		data, err = fs.ReadFile(ScenesFS, DefaultFile)
		if err != nil {
			return nil, fmt.Errorf("scenes: read embedded: %w", err)
		}
	}
	return Parse(data)
}

// Load returns the named scene from the scene file at path.
func Load(path, name string) (*Scene, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	sc, ok := f[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrSceneNotFound, name, f.Names())
	}
	return &sc, nil
}

package scenes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedFallback(t *testing.T) {
	sc, err := Load(filepath.Join(t.TempDir(), "nope.json"), "test")
	if err != nil {
		t.Fatalf("expected embedded fallback, got %v", err)
	}
	if sc.Background == "" {
		t.Fatalf("expected a background")
	}
	if len(sc.Objects) == 0 {
		t.Fatalf("expected objects")
	}
	players := 0
	for _, obj := range sc.Objects {
		if obj.Type == "player" {
			players++
		}
	}
	if players != 1 {
		t.Fatalf("expected one player in the test scene, got %d", players)
	}
}

func TestLoadUnknownScene(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), "castle")
	if !errors.Is(err, ErrSceneNotFound) {
		t.Fatalf("expected ErrSceneNotFound, got %v", err)
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene_data.json")
	data := `{
		"yard": {
			"background1": "bg.png",
			"objects": [
				{"x": 1, "y": 2, "image": "a.png", "cells": 3, "animation_speed": 4},
				{"name": "walker", "x": 0, "y": 0, "movement": {"points": [
					{"x": 10, "y": 0, "speed": 2, "image": "w.png", "cells": 2},
					{"time": 30, "animation": "idle"}
				]}}
			]
		}
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	sc, err := Load(path, "yard")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Background != "bg.png" || len(sc.Objects) != 2 {
		t.Fatalf("unexpected scene %+v", sc)
	}
	first := sc.Objects[0]
	if first.Image != "a.png" || first.Cells != 3 || first.AnimationSpeed != 4 || first.Type != "" {
		t.Fatalf("unexpected first object %+v", first)
	}
	pts := sc.Objects[1].Movement.Points
	if len(pts) != 2 || !pts[0].IsTarget() || pts[1].IsTarget() {
		t.Fatalf("unexpected points %+v", pts)
	}
	if *pts[0].X != 10 || pts[0].Speed != 2 || pts[1].Time != 30 || pts[1].Animation != "idle" {
		t.Fatalf("unexpected point values %+v", pts)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("[")); err == nil {
		t.Fatalf("expected parse error")
	}
}

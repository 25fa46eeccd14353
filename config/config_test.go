package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Fatalf("expected 800x600, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.TPS != 60 || cfg.Scene != "test" || cfg.StateDir != "." {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Log.Level != "info" || cfg.Log.File != "" || cfg.Log.MaxBackups != 3 {
		t.Fatalf("unexpected log defaults %+v", cfg.Log)
	}
}

func TestLoadSources(t *testing.T) {
	cases := []struct {
		name  string
		file  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "file",
			file: "scene: other\ndebug: true\nwindow:\n  title: demo\nlog:\n  level: debug\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Scene != "other" || !cfg.Debug || cfg.Window.Title != "demo" || cfg.Log.Level != "debug" {
					t.Fatalf("file values not applied: %+v", cfg)
				}
				if cfg.Window.Width != 800 {
					t.Fatalf("defaults should fill unset keys, got width %d", cfg.Window.Width)
				}
			},
		},
		{
			name: "env_over_file",
			file: "scene: other\n",
			env:  map[string]string{"SPRITESCENE_SCENE": "fromenv", "SPRITESCENE_LOG_LEVEL": "warn"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Scene != "fromenv" || cfg.Log.Level != "warn" {
					t.Fatalf("env overrides not applied: %+v", cfg)
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(writeFile(t, "config.yaml", c.file))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			c.check(t, cfg)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
	if _, err := Load(writeFile(t, "config.yaml", "tps: 0\n")); err == nil {
		t.Fatalf("expected validation error for tps 0")
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "SPRITESCENE_STATE_DIR"
	t.Setenv(key, "")
	os.Unsetenv(key)

	if err := loadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing .env should be ignored, got %v", err)
	}

	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, DotEnvFile), []byte(key+"=states\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StateDir != "states" {
		t.Fatalf("expected state dir from .env, got %q", cfg.StateDir)
	}
}

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/milk9111/spritescene/config"
)

func TestConfigureLevels(t *testing.T) {
	cases := []struct {
		level   string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{"WARN", log.WarnLevel, false},
		{"loud", 0, true},
	}
	for _, c := range cases {
		t.Run(c.level, func(t *testing.T) {
			logger := log.New()
			_, err := configure(logger, config.LogConfig{Level: c.level}, &bytes.Buffer{})
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for level %q", c.level)
				}
				return
			}
			if err != nil {
				t.Fatalf("configure: %v", err)
			}
			if logger.GetLevel() != c.want {
				t.Fatalf("expected %v, got %v", c.want, logger.GetLevel())
			}
		})
	}
}

func TestConfigureWritesFileAndStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "spritescene.log")
	var stdout bytes.Buffer
	logger := log.New()

	closer, err := configure(logger, config.LogConfig{Level: "info", File: path, MaxSizeMB: 1}, &stdout)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	logger.WithField("scene", "test").Info("scene: loaded")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for _, out := range []string{stdout.String(), string(data)} {
		if !strings.Contains(out, "scene: loaded") || !strings.Contains(out, "scene=test") {
			t.Fatalf("unexpected log output %q", out)
		}
	}
}

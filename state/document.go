// Package state persists the small key-value JSON documents the menu and the
// game use to hand state to each other between frames.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Document is a flat JSON object stored in a single file. Every call goes to
// disk; nothing is kept in memory between calls.
type Document struct {
	path     string
	defaults map[string]any
}

// NewDocument returns a document backed by path. defaults supply the value of
// keys that are absent, and the initial content of a file that does not exist.
func NewDocument(path string, defaults map[string]any) *Document {
	return &Document{path: path, defaults: maps.Clone(defaults)}
}

// Path returns the backing file path.
func (d *Document) Path() string {
	return d.path
}

// Read returns the value stored under key. A missing or unreadable file is
// reported and the default value is returned instead.
func (d *Document) Read(key string) (any, bool) {
	data, err := d.load()
	if err != nil {
		log.WithField("file", d.path).Warnf("state: %v, using default for %q", err, key)
		v, ok := d.defaults[key]
		return v, ok
	}
	if v, ok := data[key]; ok {
		return v, true
	}
	v, ok := d.defaults[key]
	return v, ok
}

// ReadAll returns the whole document merged over the defaults.
func (d *Document) ReadAll() map[string]any {
	out := maps.Clone(d.defaults)
	if out == nil {
		out = map[string]any{}
	}
	data, err := d.load()
	if err != nil {
		log.WithField("file", d.path).Warnf("state: %v, using defaults", err)
		return out
	}
	maps.Copy(out, data)
	return out
}

// Write sets key to value with a read-modify-write of the file. Other keys are
// preserved; a missing file is created from the defaults first.
func (d *Document) Write(key string, value any) error {
	data, err := d.load()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.WithField("file", d.path).Warnf("state: %v, rewriting from defaults", err)
		}
		data = maps.Clone(d.defaults)
		if data == nil {
			data = map[string]any{}
		}
	}
	data[key] = value
	if err := d.save(data); err != nil {
		return err
	}
	log.WithField("file", d.path).Debugf("state updated: %s = %v", key, value)
	return nil
}

// WriteAll replaces several keys in one read-modify-write.
func (d *Document) WriteAll(values map[string]any) error {
	data, err := d.load()
	if err != nil {
		data = maps.Clone(d.defaults)
		if data == nil {
			data = map[string]any{}
		}
	}
	maps.Copy(data, values)
	return d.save(data)
}

// Reset overwrites the file with the defaults.
func (d *Document) Reset() error {
	data := maps.Clone(d.defaults)
	if data == nil {
		data = map[string]any{}
	}
	return d.save(data)
}

func (d *Document) load() (map[string]any, error) {
	b, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file %q not found: %w", filepath.Base(d.path), err)
		}
		return nil, fmt.Errorf("read %q: %w", d.path, err)
	}
	var data map[string]any
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("decode %q: %w", d.path, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

func (d *Document) save(data map[string]any) error {
	b, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("state: encode %q: %w", d.path, err)
	}
	if dir := filepath.Dir(d.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("state: create dir %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(d.path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("state: write %q: %w", d.path, err)
	}
	return nil
}

// Package config reads configuration files for mtattr.
//
// YAML, JSON and CUE are accepted. Everything is parsed with CUE, so a CUE
// file may carry constraints (for example `codec: "0" | "64" | "plain"`)
// that are checked when the file is loaded.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/encoding/yaml"
)

// Load reads path into a T. Field names follow T's json tags.
//
//	cfg, err := config.Load[client.Config]("/etc/mtattr/policy.yaml")
func Load[T any](path string) (*T, error) {
	val, err := LoadValue(path)
	if err != nil {
		return nil, err
	}
	return decode[T](val)
}

// Read parses YAML or JSON from r into a T.
func Read[T any](r io.Reader) (*T, error) {
	val, err := ReadValue(r)
	if err != nil {
		return nil, err
	}
	return decode[T](val)
}

// ReadValue parses YAML (and therefore JSON) from r.
func ReadValue(r io.Reader) (cue.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}
	return fromYAML(cuecontext.New(), "", data)
}

// LoadValue parses the file at path. A .cue file, or a directory of them, is
// loaded as a CUE package so imports between files work; anything else is
// read as YAML or JSON depending on its extension.
func LoadValue(path string) (cue.Value, error) {
	info, err := os.Stat(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to stat config: %w", err)
	}

	ctx := cuecontext.New()
	if info.IsDir() || strings.EqualFold(filepath.Ext(path), ".cue") {
		return fromCUE(ctx, path, info.IsDir())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return check(ctx.CompileBytes(data, cue.Filename(path)))
	}
	return fromYAML(ctx, path, data)
}

func fromCUE(ctx *cue.Context, path string, dir bool) (cue.Value, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to resolve config path: %w", err)
	}

	cfg := &load.Config{Dir: filepath.Dir(abs), DataFiles: true}
	args := []string{abs}
	if dir {
		cfg.Dir = abs
		args = []string{"."}
	}
	instances := load.Instances(args, cfg)
	if len(instances) == 0 {
		return cue.Value{}, fmt.Errorf("no CUE instances in %s", path)
	}
	if err := instances[0].Err; err != nil {
		return cue.Value{}, fmt.Errorf("failed to load config: %w", err)
	}
	return check(ctx.BuildInstance(instances[0]))
}

func fromYAML(ctx *cue.Context, name string, data []byte) (cue.Value, error) {
	file, err := yaml.Extract(name, data)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return check(ctx.BuildFile(file))
}

func check(val cue.Value) (cue.Value, error) {
	if err := val.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("failed to build config: %w", err)
	}
	return val, nil
}

func decode[T any](val cue.Value) (*T, error) {
	var out T
	if err := val.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &out, nil
}

// Package dirbuild interprets a seed build directory: a build.yaml or
// build.json file listing the record sources to render into seed files.
//
//	destDir: seed-files
//	batchSize: 250
//	prune: default
//	rawMarkers: [".where(", ".find_by("]
//	models:
//	  Agency: PersistedObject
//	sources:
//	- type: Agency
//	  file: agencies.yaml
//	  patches: [agency-fixes.json]
//	- type: Report
//	  file: reports.json
//	  mode: create
//	  mergePatch: report-defaults.yaml
package dirbuild

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"

	"github.com/signadot/seedgen/debug"
	"github.com/signadot/seedgen/record"
)

const (
	DefaultDestDir   = "seed-files"
	DefaultBatchSize = 250
)

type Dir struct {
	Root string `json:"-"`

	DestDir string `json:"destDir,omitempty"`
	// BatchSize is the most records per output file. Types with more
	// records are split into numbered files. Negative disables batching.
	BatchSize int `json:"batchSize,omitempty"`
	// Prune names a registered prune rule or is an expression. Records
	// are rendered as they are when it is empty or "none".
	Prune    string `json:"prune,omitempty"`
	TextKeys bool   `json:"textKeys,omitempty"`
	// RawMarkers turn strings containing any of them into Ruby code.
	RawMarkers []string `json:"rawMarkers,omitempty"`
	// Models maps type names to the handler tag they extend, so that
	// their records resolve through a handler of their own.
	Models  map[string]string `json:"models,omitempty"`
	Sources []DirSource       `json:"sources"`
}

type DirSource struct {
	Type string `json:"type"`
	File string `json:"file"`
	// Name replaces the type in output file names.
	Name       string   `json:"name,omitempty"`
	Mode       string   `json:"mode,omitempty"`
	Patches    []string `json:"patches,omitempty"`
	MergePatch string   `json:"mergePatch,omitempty"`
}

func (s *DirSource) OutputName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Type
}

// OpenDir reads the build file at path. overrides, as returned by
// LoadEnv, are applied to it as a JSON merge patch.
func OpenDir(path string, overrides map[string]any) (*Dir, error) {
	extensions := []string{".yaml", ".yml", ".json"}
	var cfgPath string
	var d []byte
	for _, ext := range extensions {
		candidatePath := filepath.Join(path, "build"+ext)
		var err error
		d, err = os.ReadFile(candidatePath)
		if err == nil {
			cfgPath = candidatePath
			break
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read %q: %w", candidatePath, err)
		}
	}
	if cfgPath == "" {
		return nil, fmt.Errorf("%w: could not find build.{yaml,yml,json} in %q", ErrNoBuildFile, path)
	}
	if len(overrides) != 0 {
		var err error
		d, err = applyOverrides(d, overrides)
		if err != nil {
			return nil, fmt.Errorf("could not apply overrides to %s: %w", cfgPath, err)
		}
	}
	dir := &Dir{Root: path}
	if err := yaml.Unmarshal(d, dir); err != nil {
		return nil, fmt.Errorf("%w: could not decode %s: %w", ErrConfig, cfgPath, err)
	}
	if err := dir.init(); err != nil {
		return nil, fmt.Errorf("%s: %w", cfgPath, err)
	}
	if debug.Build() {
		debug.Logf("opened %s: %d sources into %s\n", cfgPath, len(dir.Sources), dir.DestDir)
	}
	return dir, nil
}

func applyOverrides(d []byte, overrides map[string]any) ([]byte, error) {
	cfg, err := yaml.YAMLToJSON(d)
	if err != nil {
		return nil, err
	}
	patch, err := json.Marshal(overrides)
	if err != nil {
		return nil, err
	}
	return jsonpatch.MergePatch(cfg, patch)
}

func (dir *Dir) init() error {
	if dir.DestDir == "" {
		dir.DestDir = DefaultDestDir
	}
	if !filepath.IsAbs(dir.DestDir) {
		dir.DestDir = filepath.Join(dir.Root, dir.DestDir)
	}
	if dir.BatchSize == 0 {
		dir.BatchSize = DefaultBatchSize
	}
	for i := range dir.Sources {
		src := &dir.Sources[i]
		if src.Type == "" || src.File == "" {
			return fmt.Errorf("%w: source %d needs a type and a file", ErrConfig, i)
		}
		if _, err := record.ParseMode(src.Mode); err != nil {
			return fmt.Errorf("%w: source %d: %w", ErrConfig, i, err)
		}
	}
	return nil
}

func (dir *Dir) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir.Root, p)
}

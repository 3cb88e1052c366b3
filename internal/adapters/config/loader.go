// Package config provides the manifest loader for sumake.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/cathywu/sumosims/internal/core/domain"
	"github.com/cathywu/sumosims/internal/core/ports"
)

var _ ports.ConfigLoader = (*FileLoader)(nil)

// manifestCandidates are tried in order when no explicit filename is set.
var manifestCandidates = []string{"sumake.yaml", "sumake.yml", "sumake.hcl"}

// FileLoader implements ports.ConfigLoader. It reads sumake.yaml (or the
// HCL flavor, selected by extension) from the working directory and falls
// back to the built-in scenario when no manifest exists.
type FileLoader struct {
	// Filename overrides manifest discovery when non-empty.
	Filename string

	logger ports.Logger
}

// NewLoader creates a new FileLoader.
func NewLoader(logger ports.Logger) *FileLoader {
	return &FileLoader{logger: logger}
}

// Load reads the manifest from the given working directory.
func (l *FileLoader) Load(cwd string) (*domain.Manifest, error) {
	if l.Filename != "" {
		return loadFile(filepath.Join(cwd, l.Filename))
	}

	for _, candidate := range manifestCandidates {
		path := filepath.Join(cwd, candidate)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return loadFile(path)
	}

	l.logger.Info("no manifest found, using built-in scenario")
	return DefaultManifest()
}

// loadFile parses a single manifest file, choosing the decoder by extension.
func loadFile(path string) (*domain.Manifest, error) {
	load := loadYAML
	if strings.HasSuffix(path, ".hcl") {
		load = loadHCL
	}

	manifest, err := load(path)
	if err != nil {
		return nil, err
	}
	manifest.Path = path
	return manifest, nil
}

func loadYAML(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest")
	}

	return buildManifest(&manifest)
}

// buildManifest converts the parsed DTO into a validated domain manifest.
func buildManifest(manifest *Manifest) (*domain.Manifest, error) {
	g := domain.NewGraph()

	names := make(map[string]bool, len(manifest.Targets))
	for name := range manifest.Targets {
		names[name] = true
	}

	for name, dto := range manifest.Targets {
		if name == "all" || name == "clean" {
			return nil, zerr.With(zerr.New("target name is reserved"), "target", name)
		}

		for _, dep := range dto.DependsOn {
			if !names[dep] {
				return nil, domain.Annotate(domain.ErrMissingPrerequisite, "prerequisite", dep)
			}
		}

		target := &domain.Target{
			Name:          domain.NewInternedString(name),
			Inputs:        canonicalizeStrings(dto.Input),
			Outputs:       canonicalizeStrings(dto.Target),
			Prerequisites: internStrings(dto.DependsOn),
			Phony:         dto.Phony,
			Environment:   dto.Environment,
			WorkingDir:    domain.NewInternedString(dto.WorkingDir),
			Action:        buildAction(dto),
		}

		if err := g.AddTarget(target); err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return &domain.Manifest{
		Graph:         g,
		CleanPatterns: manifest.Clean.Patterns,
	}, nil
}

func buildAction(dto TargetDTO) domain.Action {
	action := domain.Action{Command: dto.Cmd}
	if dto.Guard != nil {
		action.Guard = &domain.Guard{
			File:    domain.NewInternedString(dto.Guard.File),
			Command: dto.Guard.Cmd,
		}
	}
	return action
}

func internStrings(strs []string) []domain.InternedString {
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}

func canonicalizeStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}

	sorted := make([]string, len(strs))
	copy(sorted, strs)
	slices.Sort(sorted)

	deduped := slices.Compact(sorted)
	res := make([]domain.InternedString, len(deduped))
	for i, s := range deduped {
		res[i] = domain.NewInternedString(s)
	}
	return res
}

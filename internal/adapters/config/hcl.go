package config

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.trai.ch/zerr"

	"github.com/cathywu/sumosims/internal/core/domain"
)

// hclManifest mirrors Manifest for the HCL manifest flavor.
type hclManifest struct {
	Version string      `hcl:"version,optional"`
	Targets []hclTarget `hcl:"target,block"`
	Clean   *hclClean   `hcl:"clean,block"`
}

type hclTarget struct {
	Name        string            `hcl:"name,label"`
	Input       []string          `hcl:"input,optional"`
	Cmd         []string          `hcl:"cmd,optional"`
	Target      []string          `hcl:"target,optional"`
	DependsOn   []string          `hcl:"depends_on,optional"`
	Phony       bool              `hcl:"phony,optional"`
	Environment map[string]string `hcl:"environment,optional"`
	WorkingDir  string            `hcl:"working_dir,optional"`
	Guard       *hclGuard         `hcl:"guard,block"`
}

type hclGuard struct {
	File string   `hcl:"file"`
	Cmd  []string `hcl:"cmd"`
}

type hclClean struct {
	Patterns []string `hcl:"patterns"`
}

// loadHCL parses an HCL manifest and funnels it through the same validation
// as the YAML flavor.
func loadHCL(path string) (*domain.Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, zerr.With(zerr.New("failed to parse manifest"), "diagnostics", diags.Error())
	}

	var parsed hclManifest
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, zerr.With(zerr.New("failed to decode manifest"), "diagnostics", diags.Error())
	}

	manifest := &Manifest{
		Version: parsed.Version,
		Targets: make(map[string]TargetDTO, len(parsed.Targets)),
	}
	if parsed.Clean != nil {
		manifest.Clean.Patterns = parsed.Clean.Patterns
	}

	for _, t := range parsed.Targets {
		if _, exists := manifest.Targets[t.Name]; exists {
			return nil, domain.Annotate(domain.ErrDuplicateTarget, "target", t.Name)
		}
		dto := TargetDTO{
			Input:       t.Input,
			Cmd:         t.Cmd,
			Target:      t.Target,
			DependsOn:   t.DependsOn,
			Phony:       t.Phony,
			Environment: t.Environment,
			WorkingDir:  t.WorkingDir,
		}
		if t.Guard != nil {
			dto.Guard = &GuardDTO{File: t.Guard.File, Cmd: t.Guard.Cmd}
		}
		manifest.Targets[t.Name] = dto
	}

	return buildManifest(manifest)
}

package config

// Manifest represents the structure of the sumake.yaml manifest file.
type Manifest struct {
	Version string               `yaml:"version"`
	Targets map[string]TargetDTO `yaml:"targets"`
	Clean   CleanDTO             `yaml:"clean"`
}

// TargetDTO represents a target definition in the manifest.
type TargetDTO struct {
	Input       []string          `yaml:"input"`
	Cmd         []string          `yaml:"cmd"`
	Target      []string          `yaml:"target"`
	DependsOn   []string          `yaml:"dependsOn"`
	Phony       bool              `yaml:"phony"`
	Environment map[string]string `yaml:"environment"`
	WorkingDir  string            `yaml:"workingDir"`
	Guard       *GuardDTO         `yaml:"guard"`
}

// GuardDTO selects an alternative command when a file exists at build time.
type GuardDTO struct {
	File string   `yaml:"file"`
	Cmd  []string `yaml:"cmd"`
}

// CleanDTO declares the glob patterns the clean command deletes.
type CleanDTO struct {
	Patterns []string `yaml:"patterns"`
}

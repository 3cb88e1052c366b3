package config

import "github.com/cathywu/sumosims/internal/core/domain"

// Built-in scenario file names, matching the netconvert/sumo conventions:
// node and edge definitions in, one network file out.
const (
	nodeFile    = "a.nod.xml"
	edgeFile    = "a.edg.xml"
	netFile     = "a.net.xml"
	netcfgFile  = "a.netccfg"
	sumocfgFile = "a.sumocfg"
)

// DefaultManifest returns the built-in scenario graph used when no manifest
// file exists: derive the network from the node/edge definitions (or from an
// explicit netconvert configuration when one is present), then run the
// simulator headless or with the GUI.
func DefaultManifest() (*domain.Manifest, error) {
	manifest := &Manifest{
		Version: "1",
		Targets: map[string]TargetDTO{
			"net": {
				Input:  []string{nodeFile, edgeFile},
				Target: []string{netFile},
				Cmd:    []string{"netconvert", "-n", nodeFile, "-e", edgeFile, "-o", netFile},
				Guard: &GuardDTO{
					File: netcfgFile,
					Cmd:  []string{"netconvert", "-c", netcfgFile},
				},
			},
			"sumo": {
				Phony:     true,
				DependsOn: []string{"net"},
				Input:     []string{sumocfgFile},
				Cmd:       []string{"sumo", "-c", sumocfgFile},
			},
			"gui": {
				Phony:     true,
				DependsOn: []string{"net"},
				Input:     []string{sumocfgFile},
				Cmd:       []string{"sumo-gui", "-c", sumocfgFile},
			},
		},
		Clean: CleanDTO{Patterns: []string{"*.net.xml"}},
	}
	return buildManifest(manifest)
}

package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cathywu/sumosims/internal/core/domain"
)

func TestLoad_HCL(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "sumake.hcl", `
version = "1"

target "net" {
  input  = ["a.nod.xml", "a.edg.xml"]
  target = ["a.net.xml"]
  cmd    = ["netconvert", "-n", "a.nod.xml", "-e", "a.edg.xml", "-o", "a.net.xml"]

  guard {
    file = "a.netccfg"
    cmd  = ["netconvert", "-c", "a.netccfg"]
  }
}

target "sumo" {
  phony      = true
  depends_on = ["net"]
  input      = ["a.sumocfg"]
  cmd        = ["sumo", "-c", "a.sumocfg"]
}

clean {
  patterns = ["*.net.xml"]
}
`)

	manifest, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)
	require.Equal(t, 2, manifest.Graph.TargetCount())
	require.Equal(t, []string{"*.net.xml"}, manifest.CleanPatterns)

	net, err := manifest.Graph.Target(domain.NewInternedString("net"))
	require.NoError(t, err)
	require.True(t, net.Action.Guarded())
	require.Equal(t, []string{"netconvert", "-c", "a.netccfg"}, net.Action.Guard.Command)

	sumo, err := manifest.Graph.Target(domain.NewInternedString("sumo"))
	require.NoError(t, err)
	require.True(t, sumo.Phony)
}

func TestLoad_HCL_Invalid(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "sumake.hcl", `target "net" { cmd = `)

	_, err := newLoader(t).Load(tmpDir)
	require.Error(t, err)
}

func TestLoad_HCL_DuplicateTarget(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "sumake.hcl", `
target "net" {
  cmd = ["echo"]
}

target "net" {
  cmd = ["echo"]
}
`)

	_, err := newLoader(t).Load(tmpDir)
	require.Error(t, err)
}

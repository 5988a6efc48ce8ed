package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robokit/armviz/engine/kinematics"
)

const sixAxisYAML = `
name: bench-arm
angle_units: deg
base_frame: {z: 0.05}
joints:
  - {a: 0,     alpha: 90,  d: 0.1519, theta: 0, min: -180, max: 180}
  - {a: -0.2437, alpha: 0, d: 0,      theta: 0, min: -180, max: 180}
  - {a: -0.2132, alpha: 0, d: 0,      theta: 0, min: -180, max: 180}
  - {a: 0,     alpha: 90,  d: 0.1124, theta: 0, min: -180, max: 180}
  - {a: 0,     alpha: -90, d: 0.0854, theta: 0, min: -180, max: 180}
  - {a: 0,     alpha: 0,   d: 0.0819, theta: 0, min: -180, max: 180}
`

func TestParseConvertsDegrees(t *testing.T) {
	cfg, err := Parse([]byte(sixAxisYAML))
	require.NoError(t, err)

	assert.Equal(t, "bench-arm", cfg.Name)
	assert.Equal(t, UnitsRadians, cfg.AngleUnits)
	require.Len(t, cfg.Joints, 6)
	assert.InDelta(t, math.Pi/2, cfg.Joints[0].Alpha, 1e-12)
	assert.InDelta(t, -math.Pi/2, cfg.Joints[4].Alpha, 1e-12)
	assert.InDelta(t, -math.Pi, *cfg.Joints[0].Min, 1e-12)
	assert.InDelta(t, math.Pi, *cfg.Joints[0].Max, 1e-12)
}

func TestParseRadiansPassThrough(t *testing.T) {
	cfg, err := Parse([]byte(`
joints:
  - {a: 1, alpha: 1.5707963, min: -3.14, max: 3.14}
`))
	require.NoError(t, err)
	assert.InDelta(t, 1.5707963, cfg.Joints[0].Alpha, 1e-12)
}

func TestParseRejectsUnknownUnits(t *testing.T) {
	_, err := Parse([]byte("angle_units: grad\njoints:\n  - {a: 1}\n"))
	var cfgErr *kinematics.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, -1, cfgErr.Joint)
}

func TestParseRejectsEmptyJoints(t *testing.T) {
	_, err := Parse([]byte("name: empty\n"))
	var cfgErr *kinematics.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestParseRejectsInvertedLimits(t *testing.T) {
	_, err := Parse([]byte(`
joints:
  - {a: 1, min: 2, max: -2}
`))
	var cfgErr *kinematics.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, 0, cfgErr.Joint)
}

func TestParseRejectsHalfLimitPair(t *testing.T) {
	_, err := Parse([]byte(`
joints:
  - {a: 1, min: -1}
`))
	var cfgErr *kinematics.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestParseRejectsUnknownJointType(t *testing.T) {
	_, err := Parse([]byte(`
joints:
  - {type: spherical, a: 1}
`))
	var cfgErr *kinematics.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "spherical")
}

func TestPrismaticLimitsStayLinear(t *testing.T) {
	cfg, err := Parse([]byte(`
angle_units: deg
joints:
  - {type: prismatic, d: 0.1, min: -0.5, max: 0.5}
`))
	require.NoError(t, err)
	// Linear limits must not be degree-converted.
	assert.InDelta(t, -0.5, *cfg.Joints[0].Min, 1e-12)
	assert.InDelta(t, 0.5, *cfg.Joints[0].Max, 1e-12)
}

func TestBuildChainSixAxis(t *testing.T) {
	cfg, err := Parse([]byte(sixAxisYAML))
	require.NoError(t, err)

	chain, err := cfg.BuildChain()
	require.NoError(t, err)
	assert.Equal(t, 6, chain.DOF())

	// Base frame lifts the whole arm by 50 mm.
	frames := chain.LinkFrames()
	require.Len(t, frames, 7)
	_, _, z := frames[0].Position()
	assert.InDelta(t, 0.05, z, 1e-12)
}

func TestBuildChainDefaultsLimits(t *testing.T) {
	cfg, err := Parse([]byte(`
joints:
  - {a: 1}
  - {type: prismatic, d: 0.2}
`))
	require.NoError(t, err)

	chain, err := cfg.BuildChain()
	require.NoError(t, err)

	limits := chain.Limits()
	assert.Equal(t, kinematics.Limit{Min: -2 * math.Pi, Max: 2 * math.Pi}, limits[0])
	assert.Equal(t, kinematics.Limit{Min: -1, Max: 1}, limits[1])

	types := chain.JointTypes()
	assert.Equal(t, kinematics.JointRevolute, types[0])
	assert.Equal(t, kinematics.JointPrismatic, types[1])
}

func TestBuildChainAppliesOffsets(t *testing.T) {
	cfg, err := Parse([]byte(`
angle_units: deg
joints:
  - {a: 1, offset: {x: 0.1, rz: 90}}
  - {a: 1}
`))
	require.NoError(t, err)

	chain, err := cfg.BuildChain()
	require.NoError(t, err)

	offsets := chain.LinkOffsets()
	require.Len(t, offsets, 2)

	x, _, _ := offsets[0].Position()
	assert.InDelta(t, 0.1, x, 1e-12)
	assert.Equal(t, kinematics.IdentityFrame(), offsets[1])
}

func TestLoadResolvesMeshPaths(t *testing.T) {
	dir := t.TempDir()
	doc := `
name: meshed
joints:
  - {a: 1, mesh: meshes/link1.stl}
  - {a: 1, mesh: /abs/link2.obj}
  - {a: 1}
`
	path := filepath.Join(dir, "robot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	paths := cfg.MeshPaths()
	assert.Equal(t, filepath.Join(dir, "meshes", "link1.stl"), paths[1])
	assert.Equal(t, "/abs/link2.obj", paths[2])
	_, ok := paths[3]
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

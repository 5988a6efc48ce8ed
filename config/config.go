// Package config loads robot descriptions from YAML files and turns them
// into kinematic chains. Descriptions are plain structs rather than
// interface-wrapped components so they stay trivially serializable.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robokit/armviz/engine/kinematics"
)

// Angle unit tags accepted in the angle_units field.
const (
	UnitsRadians = "rad"
	UnitsDegrees = "deg"
)

// Default soft limits applied when a joint row omits min/max.
const (
	defaultRevoluteLimit  = 2 * math.Pi // radians
	defaultPrismaticLimit = 1.0         // meters
)

// PoseConfig is a translation plus intrinsic z-y-x Euler rotation, used for
// the base frame and per-joint link offsets. Rotations follow angle_units.
type PoseConfig struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	Z  float64 `yaml:"z"`
	RX float64 `yaml:"rx"`
	RY float64 `yaml:"ry"`
	RZ float64 `yaml:"rz"`
}

// JointConfig is one row of the robot's DH table plus its visual attachments.
// Angular fields (alpha, theta, and min/max on revolute joints) follow the
// file's angle_units and are converted to radians during Load/Parse.
type JointConfig struct {
	// Type is "revolute" (default) or "prismatic".
	Type string `yaml:"type"`

	// A is the link length along the common normal, in meters.
	A float64 `yaml:"a"`

	// Alpha is the link twist about the x axis.
	Alpha float64 `yaml:"alpha"`

	// D is the link offset along the previous z axis, in meters.
	D float64 `yaml:"d"`

	// Theta is the joint angle about the previous z axis.
	Theta float64 `yaml:"theta"`

	// Min and Max are the advisory soft limits on the joint variable.
	// Omitting both applies a wide default.
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`

	// Mesh is an optional path to the link's STL or OBJ file, resolved
	// relative to the description file.
	Mesh string `yaml:"mesh"`

	// Offset is an optional physical link offset applied after the pure DH
	// frame.
	Offset *PoseConfig `yaml:"offset"`
}

// RobotConfig is a complete robot description as read from YAML. After
// Load or Parse all angular fields are in radians and AngleUnits is "rad".
type RobotConfig struct {
	// Name identifies the robot; used as the scene name.
	Name string `yaml:"name"`

	// AngleUnits is "rad" (default) or "deg" and governs every angular
	// field in the file.
	AngleUnits string `yaml:"angle_units"`

	// BaseFrame is the pose of joint 0's reference frame relative to the
	// world origin. Omitting it means identity.
	BaseFrame *PoseConfig `yaml:"base_frame"`

	// Joints are the DH rows, base to tip.
	Joints []JointConfig `yaml:"joints"`

	// dir is the description file's directory, for resolving mesh paths.
	dir string
}

// Load reads a robot description file, validates it, and converts all
// angular fields to radians. Relative mesh paths resolve against the file's
// directory.
//
// Parameters:
//   - path: the YAML description file
//
// Returns:
//   - *RobotConfig: the normalized description
//   - error: a read error, a YAML error, or *kinematics.ConfigurationError
//     for semantic problems
func Load(path string) (*RobotConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read robot description: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid robot description %q: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse validates a YAML robot description and converts all angular fields
// to radians.
//
// Parameters:
//   - data: the raw YAML document
//
// Returns:
//   - *RobotConfig: the normalized description
//   - error: a YAML error or *kinematics.ConfigurationError for semantic
//     problems
func Parse(data []byte) (*RobotConfig, error) {
	var cfg RobotConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse robot description: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize validates the description and converts angular fields to
// radians in place.
func (c *RobotConfig) normalize() error {
	if len(c.Joints) == 0 {
		return &kinematics.ConfigurationError{Joint: -1, Reason: "description has no joints"}
	}

	var toRad float64
	switch strings.ToLower(strings.TrimSpace(c.AngleUnits)) {
	case "", UnitsRadians:
		toRad = 1
	case UnitsDegrees:
		toRad = math.Pi / 180
	default:
		return &kinematics.ConfigurationError{
			Joint:  -1,
			Reason: fmt.Sprintf("unknown angle_units %q (want rad or deg)", c.AngleUnits),
		}
	}
	c.AngleUnits = UnitsRadians

	if c.BaseFrame != nil {
		c.BaseFrame.RX *= toRad
		c.BaseFrame.RY *= toRad
		c.BaseFrame.RZ *= toRad
	}

	for i := range c.Joints {
		j := &c.Joints[i]

		angular := false
		switch strings.ToLower(strings.TrimSpace(j.Type)) {
		case "", "revolute":
			j.Type = "revolute"
			angular = true
		case "prismatic":
			j.Type = "prismatic"
		default:
			return &kinematics.ConfigurationError{
				Joint:  i,
				Reason: fmt.Sprintf("unknown joint type %q (want revolute or prismatic)", j.Type),
			}
		}

		j.Alpha *= toRad
		j.Theta *= toRad
		if angular {
			if j.Min != nil {
				*j.Min *= toRad
			}
			if j.Max != nil {
				*j.Max *= toRad
			}
		}

		if (j.Min == nil) != (j.Max == nil) {
			return &kinematics.ConfigurationError{
				Joint:  i,
				Reason: "limit pair is incomplete (set both min and max or neither)",
			}
		}
		if j.Min != nil && *j.Min > *j.Max {
			return &kinematics.ConfigurationError{Joint: i, Reason: "limit pair is inverted (min > max)"}
		}

		if j.Offset != nil {
			j.Offset.RX *= toRad
			j.Offset.RY *= toRad
			j.Offset.RZ *= toRad
		}
	}

	return nil
}

// BuildChain constructs the kinematic chain the description defines.
//
// Returns:
//   - kinematics.Chain: the constructed chain
//   - error: *kinematics.ConfigurationError from chain construction
func (c *RobotConfig) BuildChain() (kinematics.Chain, error) {
	dh := make([]kinematics.DHParameter, len(c.Joints))
	types := make([]kinematics.JointType, len(c.Joints))
	limits := make([]kinematics.Limit, len(c.Joints))

	hasOffsets := false
	offsets := make([]kinematics.Frame, len(c.Joints))

	for i, j := range c.Joints {
		dh[i] = kinematics.DHParameter{A: j.A, Alpha: j.Alpha, D: j.D, Theta: j.Theta}

		if j.Type == "prismatic" {
			types[i] = kinematics.JointPrismatic
		} else {
			types[i] = kinematics.JointRevolute
		}

		if j.Min != nil {
			limits[i] = kinematics.Limit{Min: *j.Min, Max: *j.Max}
		} else if types[i] == kinematics.JointPrismatic {
			limits[i] = kinematics.Limit{Min: -defaultPrismaticLimit, Max: defaultPrismaticLimit}
		} else {
			limits[i] = kinematics.Limit{Min: -defaultRevoluteLimit, Max: defaultRevoluteLimit}
		}

		if j.Offset != nil {
			hasOffsets = true
			offsets[i] = kinematics.FrameFromPose(j.Offset.X, j.Offset.Y, j.Offset.Z, j.Offset.RX, j.Offset.RY, j.Offset.RZ)
		} else {
			offsets[i] = kinematics.IdentityFrame()
		}
	}

	var options []kinematics.ChainBuilderOption
	if c.BaseFrame != nil {
		b := c.BaseFrame
		options = append(options, kinematics.WithBaseFrame(
			kinematics.FrameFromPose(b.X, b.Y, b.Z, b.RX, b.RY, b.RZ),
		))
	}
	if hasOffsets {
		options = append(options, kinematics.WithLinkOffsets(offsets))
	}

	return kinematics.NewChain(dh, types, limits, options...)
}

// MeshPaths returns the configured link mesh files keyed by chain frame
// index (1..DOF). Relative paths are resolved against the description
// file's directory when the config came from Load.
//
// Returns:
//   - map[int]string: frame index to mesh path, empty when no meshes are set
func (c *RobotConfig) MeshPaths() map[int]string {
	paths := make(map[int]string)
	for i, j := range c.Joints {
		if j.Mesh == "" {
			continue
		}
		p := j.Mesh
		if c.dir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(c.dir, p)
		}
		paths[i+1] = p
	}
	return paths
}

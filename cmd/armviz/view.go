package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/robokit/armviz/common"
	"github.com/robokit/armviz/config"
	"github.com/robokit/armviz/engine"
	"github.com/robokit/armviz/engine/kinematics"
	"github.com/robokit/armviz/engine/loader"
	"github.com/robokit/armviz/engine/renderer"
	"github.com/robokit/armviz/engine/scene"
	"github.com/robokit/armviz/engine/window"
	"github.com/robokit/armviz/serial"
)

var (
	viewPort      string
	viewSerial    bool
	viewBaud      int
	viewFrameCap  float64
	viewGizmoSize float32
)

var viewCmd = &cobra.Command{
	Use:   "view <robot.yaml>",
	Short: "Open the interactive arm view",
	Long: `Opens a window rendering the robot described by the YAML file.

Controls:
  1-9          select a joint
  Q / E        jog the selected joint down / up
  R            return to the rest pose
  F            toggle frame gizmos
  G            toggle the ground grid
  scroll       zoom
  middle drag  orbit the camera
  Esc          quit

With --serial or --port the joint vector is streamed to the arm controller
whenever it changes.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runView(args[0]); err != nil {
			fmt.Printf("view failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	viewCmd.Flags().StringVar(&viewPort, "port", "", "serial port of the arm controller")
	viewCmd.Flags().BoolVar(&viewSerial, "serial", false, "auto-detect and drive the arm controller")
	viewCmd.Flags().IntVar(&viewBaud, "baud", 115200, "serial baud rate")
	viewCmd.Flags().Float64Var(&viewFrameCap, "fps", 0, "render frame cap (0 = uncapped)")
	viewCmd.Flags().Float32Var(&viewGizmoSize, "gizmo-size", 0, "frame gizmo axis length in meters (0 = default)")
	rootCmd.AddCommand(viewCmd)
}

// viewState tracks interactive joint jogging between engine ticks.
type viewState struct {
	mu sync.Mutex

	chain    kinematics.Chain
	targets  []float64
	rest     []float64
	limits   []kinematics.Limit
	selected int
	jog      float64 // -1, 0, or +1 while Q/E are held
	dirty    bool
}

// jogSpeed is the joint jog rate in joint units per second (radians for
// revolute joints, meters for prismatic).
const jogSpeed = 1.0

func runView(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	chain, err := cfg.BuildChain()
	if err != nil {
		return err
	}

	win := window.NewWindow(
		window.WithTitle(fmt.Sprintf("armviz - %s", cfg.Name)),
		window.WithWidth(1280),
		window.WithHeight(800),
	)
	rend := renderer.NewRenderer(renderer.BackendTypeWGPU, win)
	assets := loader.NewLoader(loader.WithRenderer(rend))

	// Parse all configured link meshes up front, in parallel.
	meshPaths := cfg.MeshPaths()
	if len(meshPaths) > 0 {
		paths := make([]string, 0, len(meshPaths))
		for _, p := range meshPaths {
			paths = append(paths, p)
		}
		if err := assets.LoadAll(paths...); err != nil {
			return fmt.Errorf("failed to load link meshes: %w", err)
		}
	}

	sceneOptions := []scene.SceneBuilderOption{
		scene.WithName(cfg.Name),
		scene.WithRenderer(rend),
		scene.WithLoader(assets),
	}
	if viewGizmoSize > 0 {
		sceneOptions = append(sceneOptions, scene.WithGizmoLength(viewGizmoSize))
	}
	for frameIndex, meshPath := range meshPaths {
		mdl := assets.Get(meshPath)
		if mdl == nil {
			return fmt.Errorf("mesh %q missing from cache", meshPath)
		}
		sceneOptions = append(sceneOptions, scene.WithLinkMesh(frameIndex, mdl))
	}

	s, err := scene.NewScene(chain, sceneOptions...)
	if err != nil {
		return err
	}
	if err := s.Initialize(); err != nil {
		return err
	}
	s.Resize(win.Width(), win.Height())

	var link serial.Link
	if viewPort != "" || viewSerial {
		linkOptions := []serial.LinkBuilderOption{serial.WithBaudRate(viewBaud)}
		if viewPort != "" {
			linkOptions = append(linkOptions, serial.WithPort(viewPort))
		}
		link = serial.NewLink(linkOptions...)
		if err := link.Connect(); err != nil {
			return fmt.Errorf("failed to connect to arm controller: %w", err)
		}
		defer link.Close()
	}

	e := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(s),
		engine.WithRenderFrameLimit(viewFrameCap),
	)

	state := &viewState{
		chain:   chain,
		targets: chain.JointVariables(),
		rest:    chain.JointVariables(),
		limits:  chain.Limits(),
	}
	wireInput(win, s, e, state)

	e.SetTickCallback(func(dt float32) {
		if values, changed := state.step(float64(dt)); changed {
			s.PostJointTargets(values)
			if link != nil {
				if err := link.SendRadians(values); err != nil {
					slog.Warn("failed to send joint vector", "error", err)
				}
			}
		}
		if link != nil {
			if line, ok, _ := link.ReadFeedback(); ok {
				slog.Info("controller", "message", line)
			}
		}
	})

	e.Run()
	return nil
}

// step advances the jogged joint by dt and reports whether the target vector
// changed this tick.
func (v *viewState) step(dt float64) ([]float64, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.jog != 0 && v.selected < len(v.targets) {
		next := v.targets[v.selected] + v.jog*jogSpeed*dt
		limit := v.limits[v.selected]
		next = math.Max(limit.Min, math.Min(limit.Max, next))
		if next != v.targets[v.selected] {
			v.targets[v.selected] = next
			v.dirty = true
		}
	}

	if !v.dirty {
		return nil, false
	}
	v.dirty = false
	out := make([]float64, len(v.targets))
	copy(out, v.targets)
	return out, true
}

// reset returns the targets to the rest pose.
func (v *viewState) reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	copy(v.targets, v.rest)
	v.dirty = true
}

func (v *viewState) selectJoint(index int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if index >= 0 && index < len(v.targets) {
		v.selected = index
		slog.Info("selected joint", "joint", index+1)
	}
}

func (v *viewState) setJog(direction float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.jog = direction
}

// wireInput connects keyboard and mouse events to the scene, camera, and jog
// state.
func wireInput(win window.Window, s scene.Scene, e engine.Engine, state *viewState) {
	var (
		dragging     bool
		lastX, lastY int32
		haveLast     bool
	)

	win.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyEsc:
			e.Quit()
			win.Close()
		case common.KeyF:
			s.ShowFrameGizmos(!s.FrameGizmosShown())
		case common.KeyG:
			s.ShowGrid(!s.GridShown())
		case common.KeyR:
			state.reset()
		case common.KeyQ:
			state.setJog(-1)
		case common.KeyE:
			state.setJog(1)
		default:
			if keyCode >= common.Key1 && keyCode <= common.Key9 {
				state.selectJoint(int(keyCode - common.Key1))
			}
		}
	})

	win.SetKeyUpCallback(func(keyCode uint32) {
		if keyCode == common.KeyQ || keyCode == common.KeyE {
			state.setJog(0)
		}
	})

	win.SetScrollCallback(func(delta float32) {
		if ctrl := s.Camera().Controller(); ctrl != nil {
			ctrl.Zoom(-delta)
		}
	})

	win.SetMiddleMouseDownCallback(func(x, y int32) {
		dragging = true
		haveLast = false
	})
	win.SetMiddleMouseUpCallback(func(x, y int32) {
		dragging = false
	})
	win.SetMouseMoveCallback(func(x, y int32) {
		if !dragging {
			return
		}
		if !haveLast {
			lastX, lastY = x, y
			haveLast = true
			return
		}
		ctrl := s.Camera().Controller()
		if ctrl == nil {
			return
		}
		sens := ctrl.MouseSensitivity()
		ctrl.SetAzimuth(ctrl.Azimuth() - float32(x-lastX)*sens)
		ctrl.SetElevation(ctrl.Elevation() + float32(y-lastY)*sens)
		lastX, lastY = x, y
	})
}

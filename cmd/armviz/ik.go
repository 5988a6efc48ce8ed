package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robokit/armviz/config"
	"github.com/robokit/armviz/engine/ik"
)

var (
	ikTarget     string
	ikSeed       string
	ikIterations int
	ikTolerance  float64
)

var ikCmd = &cobra.Command{
	Use:   "ik <robot.yaml>",
	Short: "Solve inverse kinematics for a target tip position",
	Long: `Builds the kinematic chain from the robot description and runs the
damped least-squares solver toward the target position, printing the joint
vector it finds.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runIK(args[0]); err != nil {
			fmt.Printf("ik failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	ikCmd.Flags().StringVar(&ikTarget, "target", "", "target tip position as x,y,z in meters (required)")
	ikCmd.Flags().StringVar(&ikSeed, "seed", "", "starting joint vector in radians (defaults to the rest pose)")
	ikCmd.Flags().IntVar(&ikIterations, "max-iterations", 200, "iteration cap")
	ikCmd.Flags().Float64Var(&ikTolerance, "tolerance", 1e-3, "convergence tolerance in meters")
	ikCmd.MarkFlagRequired("target")
	rootCmd.AddCommand(ikCmd)
}

func runIK(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	chain, err := cfg.BuildChain()
	if err != nil {
		return err
	}

	target, err := parseJointVector(ikTarget)
	if err != nil {
		return err
	}
	if len(target) != 3 {
		return fmt.Errorf("target must be x,y,z, got %d values", len(target))
	}

	seed := chain.JointVariables()
	if ikSeed != "" {
		if seed, err = parseJointVector(ikSeed); err != nil {
			return err
		}
	}

	solver, err := ik.NewSolver(chain,
		ik.WithMaxIterations(ikIterations),
		ik.WithTolerance(ikTolerance),
	)
	if err != nil {
		return err
	}

	if ok, reach := solver.Reachable(target[0], target[1], target[2]); !ok {
		fmt.Printf("warning: target is outside the estimated workspace (reach %.4f m)\n", reach)
	}

	res, err := solver.Solve(seed, target[0], target[1], target[2])
	if err != nil {
		return err
	}

	if res.Converged {
		fmt.Printf("converged in %d iterations, final error %.6f m\n", res.Iterations, res.FinalError)
	} else {
		fmt.Printf("did not converge after %d iterations, best error %.6f m\n", res.Iterations, res.FinalError)
	}
	fmt.Print("joints:")
	for _, v := range res.JointVariables {
		fmt.Printf(" %.6f", v)
	}
	fmt.Println()

	if !res.Converged {
		os.Exit(2)
	}
	return nil
}

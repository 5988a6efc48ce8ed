package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robokit/armviz/config"
)

var poseJoints string

var poseCmd = &cobra.Command{
	Use:   "pose <robot.yaml>",
	Short: "Print the forward-kinematics frames for a joint vector",
	Long: `Builds the kinematic chain from the robot description, applies the
given joint vector (radians; the DH table's rest values when omitted), and
prints the world-space position and approach axis of every link frame.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPose(args[0]); err != nil {
			fmt.Printf("pose failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	poseCmd.Flags().StringVar(&poseJoints, "joints", "", "comma-separated joint values in radians")
	rootCmd.AddCommand(poseCmd)
}

func runPose(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	chain, err := cfg.BuildChain()
	if err != nil {
		return err
	}

	if poseJoints != "" {
		values, err := parseJointVector(poseJoints)
		if err != nil {
			return err
		}
		if err := chain.SetJointVariables(values); err != nil {
			return err
		}
	}

	frames := chain.LinkFrames()
	for i, f := range frames {
		x, y, z := f.Position()
		_, _, zAxis := f.Axes()

		label := fmt.Sprintf("link %d", i)
		switch i {
		case 0:
			label = "base"
		case len(frames) - 1:
			label = "tip"
		}
		fmt.Printf("%-7s position (%8.4f, %8.4f, %8.4f)  z-axis (%7.4f, %7.4f, %7.4f)\n",
			label, x, y, z, zAxis[0], zAxis[1], zAxis[2])
	}
	return nil
}

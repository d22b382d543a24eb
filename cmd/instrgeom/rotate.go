package main

import (
	"fmt"

	"github.com/dmsc-instrument/cow-instrument/component"
	"github.com/dmsc-instrument/cow-instrument/flattree"
	"github.com/dmsc-instrument/cow-instrument/geom"
	"github.com/spf13/cobra"
)

var rotateAxisX, rotateAxisY, rotateAxisZ, rotateTheta float64
var rotateComponent int

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate a component about the origin and print the sample's new L1",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, di, err := buildDemoViews()
		if err != nil {
			return err
		}

		axis := geom.V3{X: rotateAxisX, Y: rotateAxisY, Z: rotateAxisZ}
		cmd2 := component.RotateCommand{Axis: axis, Theta: rotateTheta, Center: geom.V3{}}
		if _, err := di.Modify(flattree.ComponentIndex(rotateComponent), cmd2); err != nil {
			return err
		}

		fmt.Printf("L1 after rotate: %.4f\n", di.L1())
		return nil
	},
}

func init() {
	rotateCmd.Flags().Float64Var(&rotateAxisX, "axis-x", 0, "rotation axis x component")
	rotateCmd.Flags().Float64Var(&rotateAxisY, "axis-y", 1, "rotation axis y component")
	rotateCmd.Flags().Float64Var(&rotateAxisZ, "axis-z", 0, "rotation axis z component")
	rotateCmd.Flags().Float64Var(&rotateTheta, "theta", 0, "rotation angle, in radians")
	rotateCmd.Flags().IntVar(&rotateComponent, "component", 0, "component index to rotate")
}

package main

import (
	"fmt"

	"github.com/dmsc-instrument/cow-instrument/component"
	"github.com/dmsc-instrument/cow-instrument/flattree"
	"github.com/dmsc-instrument/cow-instrument/geom"
	"github.com/spf13/cobra"
)

var moveX, moveY, moveZ float64
var moveComponent int

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Translate a component and print the sample's new L1",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, di, err := buildDemoViews()
		if err != nil {
			return err
		}

		offset := geom.V3{X: moveX, Y: moveY, Z: moveZ}
		_, err = di.Modify(flattree.ComponentIndex(moveComponent), component.MoveCommand{Offset: offset})
		if err != nil {
			return err
		}

		fmt.Printf("L1 after move: %.4f\n", di.L1())
		return nil
	},
}

func init() {
	moveCmd.Flags().Float64Var(&moveX, "x", 0, "x offset")
	moveCmd.Flags().Float64Var(&moveY, "y", 0, "y offset")
	moveCmd.Flags().Float64Var(&moveZ, "z", 0, "z offset")
	moveCmd.Flags().IntVar(&moveComponent, "component", 0, "component index to move")
}

package main

import (
	"fmt"

	"github.com/dmsc-instrument/cow-instrument/flattree"
	"github.com/dmsc-instrument/cow-instrument/instrview"
	"github.com/dmsc-instrument/cow-instrument/sample"
	"github.com/spf13/cobra"
)

func buildDemoViews() (*flattree.FlatTree, *instrview.DetectorInfo, error) {
	root := sample.FourSideDetectorArray(n, spacing, 2.0, 10.0, 1)

	tree, err := flattree.BuildFromRoot(root)
	if err != nil {
		return nil, nil, err
	}

	ci := instrview.NewComponentInfo(tree)
	di, err := instrview.NewDetectorInfo(ci)
	if err != nil {
		return nil, nil, err
	}
	return tree, di, nil
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Build the sample instrument and print L1 and per-detector L2",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, di, err := buildDemoViews()
		if err != nil {
			return err
		}

		fmt.Printf("L1: %.4f\n", di.L1())
		for i := 0; i < di.NDetectors(); i++ {
			l2, err := di.L2(flattree.DetectorIndex(i))
			if err != nil {
				return err
			}
			masked, err := di.IsMasked(flattree.DetectorIndex(i))
			if err != nil {
				return err
			}
			monitor, err := di.IsMonitor(flattree.DetectorIndex(i))
			if err != nil {
				return err
			}
			fmt.Printf("detector %d: L2=%.4f masked=%t monitor=%t\n", i, l2, masked, monitor)
		}
		return nil
	},
}

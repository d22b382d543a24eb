package main

import (
	"fmt"

	"github.com/dmsc-instrument/cow-instrument/component"
	"github.com/spf13/cobra"
)

var purgeDetectorIds []int

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove detectors by id and print the detector count before and after",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, di, err := buildDemoViews()
		if err != nil {
			return err
		}

		before := di.NDetectors()

		ids := make([]component.DetectorId, len(purgeDetectorIds))
		for i, v := range purgeDetectorIds {
			ids[i] = component.DetectorId(v)
		}

		changed, err := di.Modify(0, component.DetectorPurgeCommand{DetectorIds: ids})
		if err != nil {
			return err
		}

		fmt.Printf("detectors before=%d after=%d changed=%t\n", before, di.NDetectors(), changed)
		return nil
	},
}

func init() {
	purgeCmd.Flags().IntSliceVar(&purgeDetectorIds, "detector-id", nil, "detector id to remove (repeatable)")
}

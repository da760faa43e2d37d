package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vtmux/vtmux/internal/registry"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize tab and pane counts and activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := registryPath()
			if err != nil {
				return err
			}
			reg, err := registry.Open(path)
			if err != nil {
				return fmt.Errorf("open registry: %w", err)
			}

			tabs, _ := reg.Snapshot()
			paneCount := 0
			counts := map[registry.Activity]int{}
			for _, tab := range tabs {
				paneCount += len(tab.Panes)
				for _, p := range tab.Panes {
					counts[p.Activity]++
				}
			}

			fmt.Printf("%d tabs, %d panes\n", len(tabs), paneCount)
			fmt.Printf("  idle: %d  active: %d  done: %d  needs-input: %d\n",
				counts[registry.ActivityIdle],
				counts[registry.ActivityActive],
				counts[registry.ActivityDone],
				counts[registry.ActivityNeedsInput],
			)
			return nil
		},
	}
}

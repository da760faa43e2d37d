package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vtmux/vtmux/internal/registry"
)

func newSplitCmd() *cobra.Command {
	var tabID int
	var vertical bool

	cmd := &cobra.Command{
		Use:   "split --tab=<id> [--vertical] -- <command> [args...]",
		Short: "Register a new pane alongside an existing tab's panes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tabID == 0 {
				return fmt.Errorf("--tab is required")
			}
			path, err := registryPath()
			if err != nil {
				return err
			}
			reg, err := registry.Open(path)
			if err != nil {
				return fmt.Errorf("open registry: %w", err)
			}

			sessionID := registry.NewSessionID()
			if err := reg.AddPane(tabID, sessionID); err != nil {
				return fmt.Errorf("add pane: %w", err)
			}

			orientation := "horizontal"
			if vertical {
				orientation = "vertical"
			}
			fmt.Printf("split tab %d %s, new session %s\n", tabID, orientation, sessionID)
			return nil
		},
	}

	cmd.Flags().IntVar(&tabID, "tab", 0, "Tab id to split")
	cmd.Flags().BoolVar(&vertical, "vertical", false, "Split top/bottom instead of left/right")

	return cmd
}

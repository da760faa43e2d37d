package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vtmux/vtmux/internal/registry"
)

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List tabs and their panes",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := registryPath()
			if err != nil {
				return err
			}
			reg, err := registry.Open(path)
			if err != nil {
				return fmt.Errorf("open registry: %w", err)
			}

			tabs, active := reg.Snapshot()
			if len(tabs) == 0 {
				fmt.Println("no tabs")
				return nil
			}
			for _, tab := range tabs {
				marker := "  "
				if tab.ID == active {
					marker = "* "
				}
				fmt.Printf("%s[%d] %s  (%s)\n", marker, tab.ID, tab.Name, tab.Dir)
				for _, p := range tab.Panes {
					fmt.Printf("      %s  %s\n", p.SessionID, p.Activity)
				}
			}
			return nil
		},
	}
}

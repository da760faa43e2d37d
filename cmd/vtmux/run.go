package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vtmux/vtmux/internal/config"
	"github.com/vtmux/vtmux/internal/registry"
	"github.com/vtmux/vtmux/internal/termsession"
)

func newRunCmd() *cobra.Command {
	var name string
	var dir string

	cmd := &cobra.Command{
		Use:   "run [--name=<name>] [--dir=<dir>] -- <command> [args...]",
		Short: "Start a new tab running the given command and attach to it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if dir == "" {
				dir = cfg.DefaultDir
			}

			path, err := registryPath()
			if err != nil {
				return err
			}
			reg, err := registry.Open(path)
			if err != nil {
				return fmt.Errorf("open registry: %w", err)
			}

			if name == "" {
				name = args[0]
			}
			tabID, err := reg.AddTab(name, dir)
			if err != nil {
				return fmt.Errorf("add tab: %w", err)
			}

			sessionID := registry.NewSessionID()
			if err := reg.AddPane(tabID, sessionID); err != nil {
				return fmt.Errorf("add pane: %w", err)
			}

			commandLine := args[0]
			for _, a := range args[1:] {
				commandLine += " " + a
			}
			if commandLine == "" && cfg.DefaultShell != "" {
				commandLine = cfg.DefaultShell
			}

			attached, err := termsession.Open(commandLine, dir, nil, cfg.ClipboardPolicyValue())
			if err != nil {
				return fmt.Errorf("attach session: %w", err)
			}
			defer attached.Close()

			if cfg.Theme != "" {
				themes, err := config.LoadThemes()
				if err == nil {
					if theme, ok := themes.Themes[cfg.Theme]; ok {
						theme.ApplyToTerminal(attached.Session.Term)
					}
				}
			}

			return attached.Run(func() {})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Tab name (defaults to the command)")
	cmd.Flags().StringVar(&dir, "dir", "", "Working directory (defaults to the current directory)")

	return cmd
}

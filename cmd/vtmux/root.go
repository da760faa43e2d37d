package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func registryPath() (string, error) {
	if p := os.Getenv("VTMUX_REGISTRY"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".vtmux", "registry.yaml"), nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vtmux",
		Short: "A terminal multiplexer built on a headless VT100/ANSI emulator",
		Long:  "vtmux runs shell commands inside split panes and tabs, each backed by its own headless terminal emulator, and lets you attach to and detach from them like tmux.",
	}

	root.AddCommand(
		newRunCmd(),
		newSplitCmd(),
		newLsCmd(),
		newStatusCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

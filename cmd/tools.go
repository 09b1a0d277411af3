package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"pycheck/internal/config"
)

// toolsCommand constructs the 'tools' subcommand that lists the configured
// checkers and whether their binaries are currently installed.
func toolsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Lists the configured checkers",
		Run: func(cmd *cobra.Command, args []string) {
			for _, chk := range cfg.Checkers {
				line := chk.Name + ": " + chk.Command
				if len(chk.Args) > 0 {
					line += " " + strings.Join(chk.Args, " ")
				}
				if _, err := exec.LookPath(chk.Command); err != nil {
					line += " (not installed)"
				}
				fmt.Println(line) //nolint: forbidigo
			}
		},
	}

	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thesyncim/todomvc-e2e/internal/config"
	"github.com/thesyncim/todomvc-e2e/internal/exitcode"
)

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a " + config.FileName + " holding the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return withCode(exitcode.ConfigError, fmt.Errorf("%s already exists (use --force to overwrite)", path))
			}
			def := config.Default()
			if err := config.Write(path, &def); err != nil {
				return withCode(exitcode.ConfigError, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

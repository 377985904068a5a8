package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thesyncim/todomvc-e2e/cmd/todomvc-fixture/server"
	"github.com/thesyncim/todomvc-e2e/internal/config"
	"github.com/thesyncim/todomvc-e2e/internal/exitcode"
	"github.com/thesyncim/todomvc-e2e/internal/logger"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the bundled TodoMVC fixture until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return withCode(exitcode.ConfigError, err)
			}
			factory, err := logger.NewFactory(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return withCode(exitcode.ConfigError, err)
			}

			scfg := server.DefaultConfig()
			scfg.Addr = addr
			scfg.LoggerFactory = factory
			srv, err := server.NewServer(scfg)
			if err != nil {
				return withCode(exitcode.ConfigError, err)
			}
			if _, err := srv.Start(); err != nil {
				return withCode(exitcode.InfraError, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "TodoMVC fixture ready on %s\n", srv.URL())

			<-cmd.Context().Done()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return withCode(exitcode.InfraError, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().String("log-level", config.Default().LogLevel, "log level (disabled, error, warn, info, debug, trace)")
	return cmd
}

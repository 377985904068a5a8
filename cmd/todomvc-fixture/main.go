// TodoMVC Fixture Server
//
// Serves a self-contained TodoMVC application with the classic markup the
// page object addresses. Point a suite run at it with
//
//	todoe2e run --base-url http://localhost:8080/#/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/thesyncim/todomvc-e2e/cmd/todomvc-fixture/server"
	"github.com/thesyncim/todomvc-e2e/internal/exitcode"
	"github.com/thesyncim/todomvc-e2e/internal/logger"
)

func main() {
	addr := pflag.String("addr", ":8080", "listen address")
	level := pflag.String("log-level", "info", "log level (error, warn, info, debug, trace)")
	pflag.Parse()

	factory, err := logger.NewFactory(os.Stderr, *level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcode.ConfigError)
	}
	log := factory.NewLogger(logger.ScopeCLI)

	cfg := server.DefaultConfig()
	cfg.Addr = *addr
	cfg.LoggerFactory = factory
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Errorf("failed to create server: %v", err)
		os.Exit(exitcode.ConfigError)
	}

	if _, err := srv.Start(); err != nil {
		log.Errorf("failed to start server: %v", err)
		os.Exit(exitcode.InfraError)
	}
	fmt.Printf("TodoMVC fixture ready on %s\n", srv.URL())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
		os.Exit(exitcode.InfraError)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-pass-locker/internal/adapter"
	"github.com/MKhiriev/go-pass-locker/internal/config"
	"github.com/MKhiriev/go-pass-locker/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("go-pass-locker-client")

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	vault, err := adapter.NewHTTPVaultAdapter(*cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating vault adapter")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cli := &commandLine{
		vault:           vault,
		masterPassword:  cfg.MasterPassword,
		accountPassword: cfg.AccountPassword,
		in:              os.Stdin,
		out:             os.Stdout,
	}
	if err = cli.run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

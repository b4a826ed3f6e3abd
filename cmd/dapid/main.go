package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/K0LbAzzeR/dapi/cmd/dapid/commands"
	"github.com/K0LbAzzeR/dapi/config"
)

func main() {
	conf := config.DefaultConfig()

	rootCmd := commands.RootCommand(conf)
	rootCmd.AddCommand(
		commands.NewStartCommand(conf),
		commands.VersionCmd,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

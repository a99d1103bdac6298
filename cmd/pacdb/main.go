package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ralt/pacdb/internal/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	// Setup logging format
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Stop lookups and scans on Ctrl-C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd := cli.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

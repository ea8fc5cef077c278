package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/BartekS5/fdload/internal/cli"
	"github.com/BartekS5/fdload/pkg/fdload"
	"github.com/BartekS5/fdload/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debugf("No .env file found, using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCmd().ExecuteContext(ctx)
	stop()

	os.Exit(fdload.ExitCodeForError(err))
}

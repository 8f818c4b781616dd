package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/dkalachov/filevault/internal/app"
	"github.com/dkalachov/filevault/internal/cli"
	"github.com/dkalachov/filevault/internal/config"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	a, err := app.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	view := cli.NewView(a)
	view.Run(ctx)

}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/matheus3301/qshare/internal/app"
	"github.com/matheus3301/qshare/internal/paths"
	"github.com/matheus3301/qshare/internal/tui"
	"go.uber.org/fx"
)

func main() {
	baseFlag := flag.String("base", "", "data directory (default ~/.qshare)")
	configFlag := flag.String("config", "", "config file (default <base>/config.toml)")
	flag.Parse()

	base := *baseFlag
	if base == "" {
		base = paths.BaseDir()
	}

	var shell *tui.App
	fxApp := fx.New(
		app.Module(app.Params{BaseDir: base, ConfigPath: *configFlag}),
		fx.Provide(tui.New),
		fx.Populate(&shell),
		fx.NopLogger,
	)
	if err := fxApp.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		os.Exit(1)
	}

	runErr := shell.Run()
	shell.Stop()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := fxApp.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "stop: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}

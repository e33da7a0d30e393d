package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"DarkForest/internal/config"
	"DarkForest/internal/engine"
	"DarkForest/internal/logger"
	"DarkForest/internal/notice"

	"go.uber.org/zap"
)

const loadFailureMessage = "An error occurred while loading the application"

// GLFW and fyne both need the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	configDir := flag.String("config", "", "directory holding darkforest.yaml (default: working directory)")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "darkforest: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "darkforest: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if file := cfg.File(); file != "" {
		logger.Log.Info("Using config file", zap.String("file", file))
	}

	session, err := engine.NewSession(cfg)
	if err != nil {
		logger.Log.Error("Could not create session", zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session.Run(ctx); err != nil {
		logger.Log.Error("Dark Forest stopped", zap.Error(err))
		if errors.Is(err, engine.ErrInit) {
			if nerr := notice.Show("Dark Forest", loadFailureMessage); nerr != nil {
				logger.Log.Error("Could not show failure notice", zap.Error(nerr))
			}
		}
		return 1
	}
	return 0
}

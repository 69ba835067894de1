// Terrella - an interactive cube-sphere planet editor.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/mirefield/terrella/internal/config"
	"github.com/mirefield/terrella/internal/editor"
	"github.com/mirefield/terrella/internal/logger"
)

func init() {
	// OpenGL and SDL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Terrella ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := editor.New(cfg)
	if err != nil {
		logger.Error("failed to create editor", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	app.Run()

	logger.Info("editor closed normally")
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"rokuwake/config"
	"rokuwake/internal/infra/script"
)

type commandContext struct {
	configFlag   string
	addressFlag  string
	scriptFlag   string
	logLevelFlag string

	cfg    *config.Config
	logger *slog.Logger
	flavor script.Flavor
}

func (c *commandContext) init(cmd *cobra.Command) error {
	path, required := c.configFlag, true
	if path == "" {
		path, required = config.DefaultPath, false
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}

	if c.addressFlag != "" {
		cfg.Device.Address = c.addressFlag
	}
	if c.scriptFlag != "" {
		cfg.Script.Path = c.scriptFlag
	}
	if c.logLevelFlag != "" {
		cfg.Log.Level = c.logLevelFlag
	}

	c.cfg = cfg
	c.flavor = script.FlavorFor(runtime.GOOS)
	c.logger = setupLogger(cfg.Log, cmd.ErrOrStderr()).With("run", uuid.NewString())
	return nil
}

// scriptPath resolves the trigger script location to an absolute path.
func (c *commandContext) scriptPath() (string, error) {
	path := c.cfg.Script.Path
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		path = filepath.Join(wd, c.flavor.FileName())
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving script path: %w", err)
	}
	return abs, nil
}

func setupLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

package commands

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

// DefaultProject is exported when neither an argument nor the config names a folder.
const DefaultProject = "patch/my-patch"

// Global context passed to subcommands.
type Global struct {
	Logger  *slog.Logger
	Context context.Context
}

func (g *Global) ctx() context.Context {
	if g == nil || g.Context == nil {
		return context.Background()
	}
	return g.Context
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"patchexport.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Export        ExportCmd        `cmd:"" default:"withargs" help:"Run the full export pipeline on a patch folder (default command)"`
	Restore       RestoreCmd       `cmd:"" help:"Restore index.html from its backup"`
	PatchRegistry PatchRegistryCmd `cmd:"" name:"patch-registry" help:"Flip exported defaults in the ops.js node registry"`
	Watch         WatchCmd         `cmd:"" help:"Re-export whenever the patch graph changes"`
	History       HistoryCmd       `cmd:"" help:"List recent export runs"`
	Init          InitCmd          `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel returns debug for --verbose; PATCHEXPORT_LOG_LEVEL overrides.
func parseLogLevel(verbose bool) slog.Level {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PATCHEXPORT_LOG_LEVEL"))) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return level
}

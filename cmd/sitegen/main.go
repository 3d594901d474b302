package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/marcinsydor/sitegen/internal/config"
	sgerrors "github.com/marcinsydor/sitegen/internal/errors"
	"github.com/marcinsydor/sitegen/internal/site"
	"github.com/marcinsydor/sitegen/internal/verify"
	"github.com/marcinsydor/sitegen/internal/version"
	"github.com/marcinsydor/sitegen/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"site.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output          string `short:"o" help:"Output directory for the generated site"`
		SkipInteractive bool   `help:"Generate all pages except the interactive one"`
	} `cmd:"" help:"Generate the full static site"`

	Compose struct {
		Modules string `short:"m" help:"Directory holding the compiled module bundle"`
		Output  string `short:"o" help:"Output directory for the generated site"`
	} `cmd:"" help:"Resolve the module bundle and compose only the interactive page"`

	Publish struct {
		To     string `required:"" help:"Publish directory the output tree is copied into"`
		Output string `short:"o" help:"Output directory to publish from"`
	} `cmd:"" help:"Copy the generated site to a publish directory"`

	Verify struct {
		Output string `short:"o" help:"Output directory to verify"`
	} `cmd:"" help:"Check generated pages for well-formedness and broken internal links"`

	Watch struct {
		Output          string `short:"o" help:"Output directory for the generated site"`
		SkipInteractive bool   `help:"Generate all pages except the interactive one"`
	} `cmd:"" help:"Rebuild the site whenever content or assets change"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch ctx.Command() {
	case "build":
		cfg := loadConfig()
		assembler := site.New(cfg)
		if _, err := assembler.Run(site.Options{
			OutputDir:       CLI.Build.Output,
			SkipInteractive: CLI.Build.SkipInteractive,
		}); err != nil {
			fail("Build", err)
		}

	case "compose":
		cfg := loadConfig()
		if CLI.Compose.Modules != "" {
			cfg.Modules.Dir = CLI.Compose.Modules
		}
		if err := site.New(cfg).ComposeInteractive(site.Options{OutputDir: CLI.Compose.Output}); err != nil {
			fail("Compose", err)
		}

	case "publish":
		cfg := loadConfig()
		if err := site.New(cfg).Publish(site.Options{OutputDir: CLI.Publish.Output}, CLI.Publish.To); err != nil {
			fail("Publish", err)
		}

	case "verify":
		cfg := loadConfig()
		outDir := CLI.Verify.Output
		if outDir == "" {
			outDir = cfg.Output.Directory
		}
		if err := verify.Run(outDir); err != nil {
			fail("Verify", err)
		}
		slog.Info("Verification passed", "output", outDir)

	case "watch":
		cfg := loadConfig()
		if err := runWatch(cfg); err != nil {
			fail("Watch", err)
		}

	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			fail("Init", err)
		}
		slog.Info("Configuration created", "path", CLI.Config)

	case "version":
		fmt.Printf("sitegen %s (built %s, commit %s)\n", version.Version, version.BuildTime, version.GitCommit)
	}
}

// loadConfig loads the configured file, falling back to defaults when the
// file does not exist so a fresh checkout builds without setup.
func loadConfig() *config.Config {
	if _, err := os.Stat(CLI.Config); os.IsNotExist(err) {
		slog.Debug("Configuration file not found, using defaults", "path", CLI.Config)
		return config.Default()
	}
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

func runWatch(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := site.Options{
		OutputDir:       CLI.Watch.Output,
		SkipInteractive: CLI.Watch.SkipInteractive,
	}
	assembler := site.New(cfg)

	rebuild := func() {
		if _, err := assembler.Run(opts); err != nil {
			slog.Error("Rebuild failed", "stage", sgerrors.GetStage(err), "error", err)
		}
	}
	rebuild()

	dirs := []string{cfg.Content.Dir, cfg.Content.Assets}
	if !opts.SkipInteractive {
		dirs = append(dirs, cfg.Modules.Dir)
	}
	return watch.Run(ctx, dirs, watch.DefaultDebounce, rebuild)
}

func fail(command string, err error) {
	slog.Error(command+" failed", "stage", sgerrors.GetStage(err), "error", err)
	os.Exit(1)
}

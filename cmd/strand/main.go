// Package main is the entry point for strand. It replays an op script
// against a text document and prints the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/strand/internal/config"
	"github.com/dshills/strand/internal/engine"
	"github.com/dshills/strand/internal/logging"
	"github.com/dshills/strand/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// inputCheckpoint names the checkpoint taken before the script runs.
const inputCheckpoint = "input"

const diffContext = 3

type options struct {
	ConfigPath string
	ScriptPath string
	InputPath  string
	JSON       bool
	Diff       bool
	Height     int
	LogLevel   string
	ReadOnly   bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Height >= 0 {
		cfg.View.Height = opts.Height
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logging.SetDefault(logger)

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := openDocument(opts, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	e.Checkpoint(inputCheckpoint)

	if opts.ScriptPath != "" {
		steps, err := readScript(opts.ScriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		res, err := script.NewRunner(e, script.WithLogger(logger)).Run(ctx, steps)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: running %s: %v\n", opts.ScriptPath, err)
			return 1
		}
		logger.Info("ran %d steps, %d without effect", res.Applied+res.NoEffect, res.NoEffect)
	}

	if err := writeResult(os.Stdout, e, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func openDocument(opts options, cfg *config.Config, logger *logging.Logger) (*engine.Engine, error) {
	engineOpts := append(cfg.EngineOptions(), engine.WithLogger(logger))
	if opts.ReadOnly {
		engineOpts = append(engineOpts, engine.WithReadOnly())
	}

	switch opts.InputPath {
	case "":
		return engine.New(engineOpts...), nil
	case "-":
		e, err := engine.NewFromReader(os.Stdin, append(engineOpts, engine.WithTitle("<stdin>"))...)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return e, nil
	}

	f, err := os.Open(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	e, err := engine.NewFromReader(f, append(engineOpts, engine.WithTitle(filepath.Base(opts.InputPath)))...)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", opts.InputPath, err)
	}
	return e, nil
}

func readScript(path string) ([]script.Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	steps, err := script.Parse(path, f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return steps, nil
}

func writeResult(w io.Writer, e *engine.Engine, opts options) error {
	if opts.Diff {
		diff, err := e.DiffSince(inputCheckpoint, diffContext)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, diff)
		return err
	}
	if opts.JSON {
		note, err := e.UpdateNotification()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", note)
		return err
	}
	_, err := e.WriteTo(w)
	return err
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Op script to replay (.yaml, .jsonl)")
	flag.StringVar(&opts.ScriptPath, "s", "", "Op script to replay (shorthand)")
	flag.StringVar(&opts.InputPath, "in", "", "Input document, - for stdin")
	flag.BoolVar(&opts.JSON, "json", false, "Print the update notification instead of the text")
	flag.BoolVar(&opts.Diff, "diff", false, "Print a unified diff against the input instead of the text")
	flag.IntVar(&opts.Height, "height", -1, "Viewport height (overrides config)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flag.BoolVar(&opts.ReadOnly, "readonly", false, "Reject edit ops")
	flag.BoolVar(&opts.ReadOnly, "R", false, "Reject edit ops (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "strand - text buffer engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: strand [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  strand -in notes.txt -script edits.yaml\n")
		fmt.Fprintf(os.Stderr, "  strand -in - -script ops.jsonl -json -height 10 < notes.txt\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("strand %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}

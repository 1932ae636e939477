// Package main provides the interactive pagekit runner: it prepares a suite
// (mock server, fixtures, browser session) and shows the run live in the
// terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	appconfig "github.com/entrhq/pagekit/pkg/config"
	"github.com/entrhq/pagekit/pkg/executor"
	"github.com/entrhq/pagekit/pkg/executor/tui"
	"github.com/entrhq/pagekit/pkg/report"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	SuitePath   string
	ConfigPath  string
	Headed      bool
	FailFast    bool
	StepTimeout time.Duration
	Copy        bool
	ShowVersion bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("pagekit v%s\n", version)
		return
	}

	if cfg.SuitePath == "" {
		log.Fatal("a suite file is required: pagekit -suite suite.yaml")
	}

	if err := appconfig.Initialize(cfg.ConfigPath); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Run error: %v", err)
	}
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.SuitePath, "suite", "", "Path to the YAML suite file (required)")
	flag.StringVar(&cfg.ConfigPath, "config", "", "Path to config file (default: ~/.pagekit/config.json)")
	flag.BoolVar(&cfg.Headed, "headed", false, "Run the browser with a visible window")
	flag.BoolVar(&cfg.FailFast, "fail-fast", false, "Abort the run after the first failed scenario")
	flag.DurationVar(&cfg.StepTimeout, "step-timeout", 0, "Per-step timeout (default from config)")
	flag.BoolVar(&cfg.Copy, "copy", false, "Copy the plain report to the clipboard when done")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pagekit - E2E page-object test runner\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pagekit -suite <file> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pagekit -suite suites/login.yaml\n")
		fmt.Fprintf(os.Stderr, "  pagekit -suite suites/login.yaml -headed\n")
		fmt.Fprintf(os.Stderr, "  pagekit -suite suites/login.yaml -fail-fast -copy\n")
	}

	flag.Parse()
	return cfg
}

func run(ctx context.Context, cfg *CLIConfig) error {
	events, onStep := tui.NewEventChannel()

	prepared, err := executor.Prepare(ctx, executor.Options{
		SuitePath:      cfg.SuitePath,
		HeadedOverride: cfg.Headed,
		StepTimeout:    cfg.StepTimeout,
		FailFast:       cfg.FailFast,
		OnStep:         onStep,
	})
	if err != nil {
		return err
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer closeCancel()
	defer prepared.Close(closeCtx)

	model := tui.New(ctx, prepared, events)
	program := tea.NewProgram(model, tea.WithContext(ctx))

	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("UI error: %w", err)
	}

	final, ok := finalModel.(tui.Model)
	if !ok || final.Result() == nil {
		return fmt.Errorf("run aborted before completion")
	}

	result := final.Result()

	if cfg.Copy {
		if err := report.CopyToClipboard(result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	if !result.Passed() {
		os.Exit(1)
	}
	return nil
}

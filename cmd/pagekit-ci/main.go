// Package main provides the headless pagekit runner for CI: no TUI, plain
// report on stdout (or a file), exit code 1 on any failure.
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

	appconfig "github.com/entrhq/pagekit/pkg/config"
	"github.com/entrhq/pagekit/pkg/executor"
	"github.com/entrhq/pagekit/pkg/report"
	"github.com/entrhq/pagekit/pkg/scenario"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	SuitePath   string
	ConfigPath  string
	Headed      bool
	FailFast    bool
	StepTimeout time.Duration
	OutputPath  string
	Requests    bool
	Verbose     bool
	ShowVersion bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("pagekit-ci v%s\n", version)
		return
	}

	if cfg.SuitePath == "" {
		flag.Usage()
		os.Exit(2)
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
		fmt.Fprintln(os.Stderr, "interrupted, shutting down")
		cancel()
	}()

	passed, err := run(ctx, cfg)
	if err != nil {
		log.Fatalf("Run error: %v", err)
	}
	if !passed {
		os.Exit(1)
	}
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.SuitePath, "suite", "", "Path to the YAML suite file (required)")
	flag.StringVar(&cfg.ConfigPath, "config", "", "Path to config file (default: ~/.pagekit/config.json)")
	flag.BoolVar(&cfg.Headed, "headed", false, "Run the browser with a visible window")
	flag.BoolVar(&cfg.FailFast, "fail-fast", false, "Abort the run after the first failed scenario")
	flag.DurationVar(&cfg.StepTimeout, "step-timeout", 0, "Per-step timeout (default from config)")
	flag.StringVar(&cfg.OutputPath, "output", "", "Write the report to a file instead of stdout")
	flag.BoolVar(&cfg.Requests, "requests", false, "Append the recorded mock server requests to the report")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Print each step as it completes")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pagekit-ci - headless E2E suite runner\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pagekit-ci -suite <file> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pagekit-ci -suite suites/login.yaml\n")
		fmt.Fprintf(os.Stderr, "  pagekit-ci -suite suites/login.yaml -fail-fast -output report.txt\n")
		fmt.Fprintf(os.Stderr, "  pagekit-ci -suite suites/login.yaml -requests -verbose\n")
	}

	flag.Parse()
	return cfg
}

func run(ctx context.Context, cfg *CLIConfig) (bool, error) {
	opts := executor.Options{
		SuitePath:      cfg.SuitePath,
		HeadedOverride: cfg.Headed,
		StepTimeout:    cfg.StepTimeout,
		FailFast:       cfg.FailFast,
	}
	if cfg.Verbose {
		opts.OnStep = func(scenarioName string, step scenario.StepResult) {
			fmt.Fprintf(os.Stderr, "[%s] %s / %s\n", step.Status, scenarioName, step.Name)
		}
	}

	prepared, err := executor.Prepare(ctx, opts)
	if err != nil {
		return false, err
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer closeCancel()
	defer prepared.Close(closeCtx)

	result := prepared.Execute(ctx)

	out := report.Render(result, report.FormatPlain)
	if cfg.Requests {
		out += "\n" + report.RenderRequests(prepared.Server.Requests(), report.FormatPlain)
	}

	if cfg.OutputPath != "" {
		if err := os.WriteFile(cfg.OutputPath, []byte(out), 0644); err != nil {
			return false, fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("report written to %s\n", cfg.OutputPath)
	} else {
		fmt.Print(out)
	}

	return result.Passed(), nil
}

// rigrun-agent - headless agent-mode planning and step orchestration
// for local LLMs.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jeranaias/rigrun-agent/internal/agent"
	"github.com/jeranaias/rigrun-agent/internal/config"
	"github.com/jeranaias/rigrun-agent/internal/contextset"
	"github.com/jeranaias/rigrun-agent/internal/history"
	"github.com/jeranaias/rigrun-agent/internal/llm"
	"github.com/jeranaias/rigrun-agent/internal/plan"
	"github.com/jeranaias/rigrun-agent/internal/present"
	"github.com/jeranaias/rigrun-agent/internal/sched"
	"github.com/jeranaias/rigrun-agent/internal/util"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runCmd(os.Args[2:]))
	case "history":
		os.Exit(historyCmd(os.Args[2:]))
	case "version", "--version", "-v":
		fmt.Printf("rigrun-agent %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `rigrun-agent - agent-mode task planning for local LLMs

Usage:
  rigrun-agent run [flags] <task description>
  rigrun-agent history [-n count]
  rigrun-agent version

Run flags:
  -config path   config file (default ~/.rigrun/agent.toml)
  -model name    override the planning model
  -file path     add a file to the planning context (repeatable)
  -yes           auto-confirm the proposed plan
`)
}

// =============================================================================
// RUN COMMAND
// =============================================================================

// stringList collects repeated -file flags.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runCmd(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path")
	model := fs.String("model", "", "override the planning model")
	autoYes := fs.Bool("yes", false, "auto-confirm the proposed plan")
	var files stringList
	fs.Var(&files, "file", "add a file to the planning context (repeatable)")
	fs.Parse(args)

	task := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if task == "" {
		fmt.Fprintln(os.Stderr, "run: a task description is required")
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	if *model != "" {
		cfg.DefaultModel = *model
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	client := llm.NewClientWithConfig(&llm.ClientConfig{
		BaseURL:           cfg.LLM.BaseURL,
		Timeout:           time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		DefaultModel:      cfg.DefaultModel,
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
	})

	requester := plan.NewRequester(client, cfg.DefaultModel)
	requester.SetMaxSteps(cfg.Agent.MaxSteps)

	collector := contextset.NewCollector(contextset.OSFileReader{
		MaxFileSize: int64(cfg.Agent.MaxContextFileKB) * 1024,
	})

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(util.ExpandHome(cfg.History.Path))
		if err != nil {
			// History is best-effort; the run proceeds without it.
			fmt.Fprintf(os.Stderr, "history: %v (continuing without history)\n", err)
		} else {
			defer store.Close()
		}
	}

	queue := sched.NewQueue()
	runner := sched.NewRunner(queue)
	runner.Start()
	defer runner.Stop()

	orch := agent.New(agent.Options{
		Requester: requester,
		Collector: collector,
		Presenter: present.NewTerminalPresenter(os.Stdout, *autoYes),
		Queue:     queue,
		History:   store,
		StepDelay: time.Duration(cfg.Agent.StepDelayMS) * time.Millisecond,
	})

	type outcome struct {
		result string
		err    error
	}
	done := make(chan outcome, 1)

	err = orch.Run(context.Background(), agent.Request{
		Prompt:    task,
		FilePaths: files,
		OnLog: func(line string) {
			fmt.Println(line)
		},
		OnComplete: func(result string, err error) {
			done <- outcome{result: result, err: err}
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		return 1
	}

	// Ctrl-C requests deferred cancellation: the current step finishes and
	// the session reports completion on the next scheduled advance.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-sigCh:
			fmt.Println("Cancellation requested; finishing current step...")
			orch.Cancel()
		case out := <-done:
			if out.err != nil {
				fmt.Fprintln(os.Stderr, out.err)
				return 1
			}
			fmt.Println(out.result)
			return 0
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

// =============================================================================
// HISTORY COMMAND
// =============================================================================

func historyCmd(args []string) int {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("n", 20, "number of runs to show")
	configPath := fs.String("config", "", "config file path")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	if !cfg.History.Enabled {
		fmt.Fprintln(os.Stderr, "history: recording is disabled in config")
		return 1
	}

	store, err := history.Open(util.ExpandHome(cfg.History.Path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "history: %v\n", err)
		return 1
	}
	defer store.Close()

	runs, err := store.List(*limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "history: %v\n", err)
		return 1
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return 0
	}

	for _, r := range runs {
		fmt.Printf("%s  %-9s  %2d steps  %6s  %s\n",
			r.StartedAt.Format("2006-01-02 15:04"),
			r.Outcome,
			r.Steps,
			r.Duration().Round(time.Second),
			util.TruncateRunes(util.FirstLine(r.Task), 60))
	}
	return 0
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/erpforensic/reconstructor/internal/checkpoint"
	"github.com/erpforensic/reconstructor/internal/config"
	"github.com/erpforensic/reconstructor/internal/extraction"
	"github.com/erpforensic/reconstructor/internal/extraction/extractors"
	"github.com/erpforensic/reconstructor/internal/logger"
	"github.com/erpforensic/reconstructor/internal/orchestration"
	"github.com/erpforensic/reconstructor/internal/tui/watch"
	"github.com/erpforensic/reconstructor/internal/wiring"
)

type runOptions struct {
	ConfigPath     string
	NonInteractive bool
	Format         string
	OutputPath     string
}

func newRunCmd(root *rootFlags) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one forensic reconstruction pass against a system",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconstruction(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to the run configuration YAML file")
	cmd.Flags().BoolVar(&opts.NonInteractive, "no-tui", false, "Print plain progress lines instead of the live dashboard")
	cmd.Flags().StringVar(&opts.Format, "format", "markdown", "Report view to render: markdown, json, executive_summary, gap_report, process_map, dependency_graph")
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "", "Write the rendered report here instead of stdout")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func runReconstruction(cmd *cobra.Command, root *rootFlags, opts runOptions) error {
	cfg, err := config.ParseFile(opts.ConfigPath)
	if err != nil {
		return err
	}

	level := cfg.ResolvedLogLevel()
	if root.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, Component: "orchestrator"})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	if cfg.Mode != string(extraction.ModeOffline) {
		return fmt.Errorf("mode %q requires a live transport, which this build does not wire in (see spec §6 external interfaces)", cfg.Mode)
	}

	registry := extraction.NewRegistry()
	if err := extractors.Register(registry); err != nil {
		return fmt.Errorf("register extractors: %w", err)
	}

	var cp extraction.Checkpoint
	if cfg.CheckpointPath != "" {
		store, err := checkpoint.NewJSONStore(cfg.CheckpointPath)
		if err != nil {
			return fmt.Errorf("open checkpoint store: %w", err)
		}
		cp = store
	}

	rc := extraction.NewContext(extraction.Mode(cfg.Mode), nil, cp, log)

	orch := orchestration.New(registry)
	orch.Concurrency = cfg.ResolvedConcurrency()
	orch.ModuleFilter = cfg.Modules
	orch.Logger = log

	stages, acc := wiring.BuildStages(cfg.System, registry, wiring.Options{})
	orch.Stages = stages

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()

	interactive := !opts.NonInteractive
	var program *watch.Program
	if interactive {
		program = watch.Start(orch.Observer)
	} else {
		go watch.Drain(ctx, orch.Observer, cmd.OutOrStdout())
	}

	_, runErr := orch.Run(ctx, rc)

	if interactive {
		program.Stop()
	}

	if runErr != nil {
		return runErr
	}

	rendered, err := renderReport(acc.Report, opts.Format)
	if err != nil {
		return err
	}

	if opts.OutputPath != "" {
		return os.WriteFile(opts.OutputPath, []byte(rendered), 0o644)
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

// renderReport selects one of ForensicReport's serialisations by name,
// matching the report surface named in §6.
func renderReport(report interface {
	ToMarkdown() string
	ToSerializable() map[string]interface{}
	ToExecutiveSummary() map[string]interface{}
	ToGapReport() map[string]interface{}
	ToProcessMap() map[string]interface{}
	ToDependencyGraph() map[string]interface{}
}, format string) (string, error) {
	switch format {
	case "", "markdown":
		return report.ToMarkdown(), nil
	case "json":
		return marshalIndent(report.ToSerializable())
	case "executive_summary":
		return marshalIndent(report.ToExecutiveSummary())
	case "gap_report":
		return marshalIndent(report.ToGapReport())
	case "process_map":
		return marshalIndent(report.ToProcessMap())
	case "dependency_graph":
		return marshalIndent(report.ToDependencyGraph())
	default:
		return "", fmt.Errorf("unknown report format %q", format)
	}
}

func marshalIndent(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data), nil
}

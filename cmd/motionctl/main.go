package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/liquidframes/motioncore/internal/agent"
	"github.com/liquidframes/motioncore/internal/archive"
	"github.com/liquidframes/motioncore/internal/bench"
	"github.com/liquidframes/motioncore/internal/config"
	"github.com/liquidframes/motioncore/internal/logging"
	"github.com/liquidframes/motioncore/internal/quality"
	"github.com/liquidframes/motioncore/internal/tuning"
)

const helpText = `motionctl - motion tuning release checks

Commands:
  check      [--workspace PATH] [--min-runs N] [--require-grade A|B|C|D]
             [--require-quality healthy|caution|unstable] [--allow-attention]
             [--export-markdown PATH] [--pretty]
  benchmark  [--preset balanced|responsive|cinematic] [--pretty]
  help

Exit codes:
  0   success / policy passed
  1   runtime failure (unreadable or malformed workspace)
  2   policy failed
  64  usage error`

// #region main

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, helpText)
		os.Exit(agent.ExitUsage)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(agent.ExitUsage)
	}
	log := logging.New(cfg.LogLevel)

	switch os.Args[1] {
	case "check":
		os.Exit(runCheck(cfg, os.Args[2:]))
	case "benchmark":
		os.Exit(runBenchmark(cfg, os.Args[2:]))
	case "help", "--help", "-h":
		fmt.Println(helpText)
		os.Exit(agent.ExitSuccess)
	default:
		log.Error().Str("command", os.Args[1]).Msg("unknown command")
		fmt.Fprintln(os.Stderr, helpText)
		os.Exit(agent.ExitUsage)
	}
}

// #endregion main

// #region check

func runCheck(cfg config.Config, args []string) int {
	defaults := agent.DefaultCheckOptions(cfg)

	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	workspacePath := fs.String("workspace", defaults.WorkspacePath, "workspace snapshot path")
	minRuns := fs.Int("min-runs", defaults.MinRuns, "minimum recorded runs")
	requireGrade := fs.String("require-grade", string(defaults.RequireGrade), "minimum benchmark grade (A|B|C|D)")
	requireQuality := fs.String("require-quality", string(defaults.RequireQuality), "minimum quality level (healthy|caution|unstable)")
	allowAttention := fs.Bool("allow-attention", defaults.AllowAttention, "treat an attention gate as passing")
	exportMarkdown := fs.String("export-markdown", "", "write the gate report as markdown to PATH")
	pretty := fs.Bool("pretty", false, "indent JSON output")
	if err := fs.Parse(args); err != nil {
		return agent.ExitUsage
	}
	if *minRuns < 0 {
		fmt.Fprintln(os.Stderr, "--min-runs must be a non-negative integer")
		return agent.ExitUsage
	}

	grade, ok := bench.ParseGrade(*requireGrade)
	if !ok {
		fmt.Fprintln(os.Stderr, "--require-grade must be one of: A, B, C, D")
		return agent.ExitUsage
	}
	level, ok := quality.ParseLevel(*requireQuality)
	if !ok {
		fmt.Fprintln(os.Stderr, "--require-quality must be one of: healthy, caution, unstable")
		return agent.ExitUsage
	}

	log := logging.New(cfg.LogLevel)
	opts := agent.CheckOptions{
		WorkspacePath:      *workspacePath,
		MinRuns:            *minRuns,
		RequireGrade:       grade,
		RequireQuality:     level,
		AllowAttention:     *allowAttention,
		ExportMarkdownPath: *exportMarkdown,
	}
	if arc := openArchive(cfg, log); arc != nil {
		defer arc.Close()
		opts.Archive = arc
	}

	result, err := agent.RunCheck(opts, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check: %v\n", err)
		return agent.ExitRuntimeFailure
	}
	if err := emitJSON(result.Payload, *pretty); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		return agent.ExitRuntimeFailure
	}
	return result.ExitCode
}

// #endregion check

// #region benchmark

func runBenchmark(cfg config.Config, args []string) int {
	fs := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	presetRaw := fs.String("preset", string(tuning.PresetBalanced), "preset to score (balanced|responsive|cinematic)")
	pretty := fs.Bool("pretty", false, "indent JSON output")
	if err := fs.Parse(args); err != nil {
		return agent.ExitUsage
	}

	preset, err := tuning.ParsePreset(*presetRaw)
	if err != nil {
		fmt.Fprintln(os.Stderr, "--preset must be one of: balanced, responsive, cinematic")
		return agent.ExitUsage
	}

	log := logging.New(cfg.LogLevel)
	opts := agent.BenchmarkOptions{Preset: preset}
	if arc := openArchive(cfg, log); arc != nil {
		defer arc.Close()
		opts.Archive = arc
	}

	payload := agent.RunBenchmark(opts, log)
	if err := emitJSON(payload, *pretty); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		return agent.ExitRuntimeFailure
	}
	return agent.ExitSuccess
}

// #endregion benchmark

// #region helpers

// openArchive opens the telemetry archive when configured. Failures are
// logged and archiving is skipped; a check never fails because the
// archive is unavailable.
func openArchive(cfg config.Config, log zerolog.Logger) *archive.Archive {
	if cfg.ArchivePath == "" {
		return nil
	}
	arc, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.ArchivePath).Msg("archive unavailable")
		return nil
	}
	return arc
}

func emitJSON(v any, pretty bool) error {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// #endregion helpers

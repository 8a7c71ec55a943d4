// Package agent implements the automation surface behind the check and
// benchmark commands: load a workspace, evaluate quality, benchmark,
// regression, and the release gate, then apply operator policy.
package agent

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/liquidframes/motioncore/internal/bench"
	"github.com/liquidframes/motioncore/internal/config"
	"github.com/liquidframes/motioncore/internal/gate"
	"github.com/liquidframes/motioncore/internal/quality"
	"github.com/liquidframes/motioncore/internal/run"
	"github.com/liquidframes/motioncore/internal/store"
	"github.com/liquidframes/motioncore/internal/tuning"
	"github.com/liquidframes/motioncore/internal/workspace"
)

// Exit codes shared by the CLIs. Runtime failures (an unreadable or
// malformed workspace) are distinct from usage errors so automation can
// tell a corrupt file from a bad flag.
const (
	ExitSuccess        = 0
	ExitRuntimeFailure = 1
	ExitPolicyFailure  = 2
	ExitUsage          = 64
)

// Archiver records outcomes for later inspection. Nil disables
// archiving; archive failures are logged, never fatal.
type Archiver interface {
	RecordBenchmark(r bench.Report, source string) (string, error)
	RecordGate(r gate.Report) error
}

// CheckOptions is the policy a check invocation enforces.
type CheckOptions struct {
	WorkspacePath      string
	MinRuns            int
	RequireGrade       bench.Grade
	RequireQuality     quality.Level
	AllowAttention     bool
	ExportMarkdownPath string
	Archive            Archiver
}

// DefaultCheckOptions derives a policy from configuration, falling back
// to the standard thresholds when values do not parse.
func DefaultCheckOptions(cfg config.Config) CheckOptions {
	opts := CheckOptions{
		WorkspacePath:  cfg.WorkspacePath,
		MinRuns:        cfg.MinRuns,
		RequireGrade:   bench.GradeB,
		RequireQuality: quality.LevelHealthy,
		AllowAttention: cfg.AllowAttention,
	}
	if g, ok := bench.ParseGrade(cfg.RequireGrade); ok {
		opts.RequireGrade = g
	}
	if l, ok := quality.ParseLevel(cfg.RequireQuality); ok {
		opts.RequireQuality = l
	}
	return opts
}

// BenchmarkOptions selects what the benchmark command scores.
type BenchmarkOptions struct {
	Preset  tuning.Preset
	Archive Archiver
}

// CheckResult pairs the payload with the process exit code.
type CheckResult struct {
	Payload  CheckPayload
	ExitCode int
}

// #region check

// RunCheck loads the workspace and applies the release policy. A missing
// workspace is a policy failure with a synthesized payload, not an
// error; only unreadable or malformed files surface as errors.
func RunCheck(opts CheckOptions, log zerolog.Logger) (CheckResult, error) {
	path := opts.WorkspacePath
	if path == "" {
		var err error
		if path, err = store.DefaultPath(); err != nil {
			return CheckResult{}, err
		}
	}

	snap, err := store.Load(path)
	if errors.Is(err, store.ErrSnapshotNotFound) {
		log.Warn().Str("path", path).Msg("workspace snapshot not found")
		return CheckResult{
			Payload:  missingWorkspacePayload(path, opts),
			ExitCode: ExitPolicyFailure,
		}, nil
	}
	if err != nil {
		return CheckResult{}, err
	}

	active, ok := snap.ActiveProfile()
	if !ok {
		return CheckResult{
			Payload:  noProfilePayload(path, snap, opts),
			ExitCode: ExitPolicyFailure,
		}, nil
	}

	runs := snap.Runs
	workspace.SortRuns(runs)
	qualityReport := quality.Evaluate(active.Tuning, runs)

	// Reuse the cached report when present; it was produced by the
	// same deterministic suite.
	var report bench.Report
	if snap.LatestBenchmark != nil {
		report = *snap.LatestBenchmark
	} else {
		report = bench.RunSuite(active.Tuning, time.Now().UTC())
	}

	var regression *bench.Regression
	if active.Baseline != nil {
		reg := bench.Compare(report, *active.Baseline)
		regression = &reg
	}

	var latest *run.Metrics
	if len(runs) > 0 {
		latest = &runs[0]
	}
	gateReport := gate.Evaluate(gate.Input{
		ProfileName:    active.Name,
		ProfileIsDirty: false,
		Quality:        qualityReport,
		Benchmark:      &report,
		Regression:     regression,
		LatestRun:      latest,
		RunCount:       len(runs),
		BenchmarkCount: len(snap.BenchmarkHistory),
	})

	if opts.ExportMarkdownPath != "" {
		markdown := gate.RenderMarkdown(gateReport, time.Now().UTC())
		if err := store.SaveText(markdown, opts.ExportMarkdownPath); err != nil {
			return CheckResult{}, err
		}
	}

	if opts.Archive != nil {
		if _, err := opts.Archive.RecordBenchmark(report, active.Name); err != nil {
			log.Warn().Err(err).Msg("archive benchmark failed")
		}
		if err := opts.Archive.RecordGate(gateReport); err != nil {
			log.Warn().Err(err).Msg("archive gate decision failed")
		}
	}

	failures := policyFailures(gateReport, report, qualityReport, len(runs), opts)
	passed := len(failures) == 0

	payload := CheckPayload{
		SchemaVersion:         payloadSchemaVersion,
		GeneratedAt:           isoNow(),
		WorkspacePath:         path,
		ActiveProfile:         strPtr(active.Name),
		ReleaseGateStatus:     string(gateReport.Status),
		QualityLevel:          string(qualityReport.Level),
		BenchmarkGrade:        strPtr(string(report.Grade)),
		RunCount:              len(runs),
		BenchmarkHistoryCount: len(snap.BenchmarkHistory),
		Passed:                passed,
		PolicyFailures:        failures,
		GateFindings:          findingMessages(gateReport),
		BenchmarkOverall:      floatPtr(report.OverallScore),
		BenchmarkConsistency:  floatPtr(report.ConsistencyScore),
		Thresholds:            thresholdsFrom(opts),
	}
	if regression != nil {
		payload.RegressionStatus = strPtr(string(regression.Status))
	}

	exitCode := ExitSuccess
	if !passed {
		exitCode = ExitPolicyFailure
	}
	log.Info().
		Str("gate", string(gateReport.Status)).
		Bool("passed", passed).
		Int("failures", len(failures)).
		Msg("check complete")
	return CheckResult{Payload: payload, ExitCode: exitCode}, nil
}

// #endregion check

// #region benchmark

// RunBenchmark scores a preset's canonical tuning.
func RunBenchmark(opts BenchmarkOptions, log zerolog.Logger) BenchmarkPayload {
	preset := opts.Preset
	if preset == "" {
		preset = tuning.PresetBalanced
	}
	report := bench.RunSuite(preset.Tuning(), time.Now().UTC())
	if opts.Archive != nil {
		if _, err := opts.Archive.RecordBenchmark(report, string(preset)); err != nil {
			log.Warn().Err(err).Msg("archive benchmark failed")
		}
	}

	payload := BenchmarkPayload{
		SchemaVersion:    payloadSchemaVersion,
		GeneratedAt:      isoNow(),
		Preset:           string(preset),
		Grade:            string(report.Grade),
		OverallScore:     report.OverallScore,
		ConsistencyScore: report.ConsistencyScore,
		QualityLevel:     string(report.Quality.Level),
	}
	for _, sc := range report.Scenarios {
		payload.Scenarios = append(payload.Scenarios, ScenarioPayload{
			Name:              sc.Name,
			Trigger:           string(sc.Trigger),
			EstimatedDuration: sc.EstimatedDuration,
			Score:             sc.Score,
		})
	}
	return payload
}

// #endregion benchmark

// #region policy

func policyFailures(gateReport gate.Report, report bench.Report, q quality.Report, runCount int, opts CheckOptions) []string {
	var failures []string

	if !gateStatusPasses(gateReport.Status, opts.AllowAttention) {
		failures = append(failures, fmt.Sprintf("Release gate status %s is below required status.", gateReport.Status))
	}
	if report.Grade.Rank() < opts.RequireGrade.Rank() {
		failures = append(failures, fmt.Sprintf("Benchmark grade %s is below required %s.", report.Grade, opts.RequireGrade))
	}
	if q.Level.Rank() > opts.RequireQuality.Rank() {
		failures = append(failures, fmt.Sprintf("Quality level %s is below required %s.", q.Level, opts.RequireQuality))
	}
	if runCount < opts.MinRuns {
		failures = append(failures, fmt.Sprintf("Run count %d is below required minimum %d.", runCount, opts.MinRuns))
	}
	return failures
}

func gateStatusPasses(status gate.Status, allowAttention bool) bool {
	switch status {
	case gate.StatusReady:
		return true
	case gate.StatusAttention:
		return allowAttention
	}
	return false
}

// #endregion policy

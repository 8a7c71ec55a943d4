package gate

import (
	"github.com/liquidframes/motioncore/internal/bench"
	"github.com/liquidframes/motioncore/internal/quality"
	"github.com/liquidframes/motioncore/internal/run"
)

// #region status

// Status is the ternary release verdict.
type Status string

const (
	StatusReady     Status = "ready"
	StatusAttention Status = "attention"
	StatusBlocked   Status = "blocked"
)

// #endregion status

// #region finding

// FindingKind enumerates the conditions a gate report can flag.
type FindingKind string

const (
	FindingDirtyProfile     FindingKind = "dirty_profile"
	FindingQuality          FindingKind = "quality"
	FindingGrade            FindingKind = "grade"
	FindingMissingBenchmark FindingKind = "missing_benchmark"
	FindingRegression       FindingKind = "regression"
	FindingLowRunCount      FindingKind = "low_run_count"
)

// Finding is one contributing condition with its operator-facing message.
type Finding struct {
	Kind    FindingKind
	Message string
}

// #endregion finding

// #region input

// MinRunCount is the run-history depth expected before release.
const MinRunCount = 5

// Input collects everything the gate evaluates. Benchmark and Regression
// are optional; their absence is itself a signal.
type Input struct {
	ProfileName    string
	ProfileIsDirty bool
	Quality        quality.Report
	Benchmark      *bench.Report
	Regression     *bench.Regression
	LatestRun      *run.Metrics
	RunCount       int
	BenchmarkCount int
}

// Report is the gate verdict plus the findings that produced it.
// LatestRun is echoed for rendering; it does not affect the verdict.
type Report struct {
	Status      Status
	ProfileName string
	Findings    []Finding
	LatestRun   *run.Metrics
}

// #endregion input

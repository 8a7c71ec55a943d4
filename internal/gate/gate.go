// Package gate composes quality, benchmark, regression, and freshness
// signals into a ternary release verdict with human-readable findings.
package gate

import (
	"fmt"

	"github.com/liquidframes/motioncore/internal/bench"
	"github.com/liquidframes/motioncore/internal/quality"
)

// Evaluate derives the release verdict. Findings are emitted in a fixed
// order so reports stay diffable; conditions that do not apply are
// omitted entirely.
func Evaluate(in Input) Report {
	var findings []Finding
	blocked := false
	attention := false

	// --- Blocking and attention pass, in finding order ---

	if in.ProfileIsDirty {
		blocked = true
		findings = append(findings, Finding{
			Kind:    FindingDirtyProfile,
			Message: "Profile has unsaved tuning changes. Save or revert before release.",
		})
	}

	switch in.Quality.Level {
	case quality.LevelUnstable:
		blocked = true
		findings = append(findings, Finding{
			Kind:    FindingQuality,
			Message: "Quality level is unstable. Motion is not reliable enough to ship.",
		})
	case quality.LevelCaution:
		attention = true
		findings = append(findings, Finding{
			Kind:    FindingQuality,
			Message: "Quality level is caution. Review the quality findings before release.",
		})
	}

	if in.Benchmark != nil {
		if grade := in.Benchmark.Grade; grade.Rank() < bench.GradeB.Rank() {
			blocked = true
			findings = append(findings, Finding{
				Kind:    FindingGrade,
				Message: fmt.Sprintf("Benchmark grade %s is below the release target of B.", grade),
			})
		}
	} else {
		attention = true
		findings = append(findings, Finding{
			Kind:    FindingMissingBenchmark,
			Message: "No benchmark report has been recorded for this tuning.",
		})
	}

	switch {
	case in.Regression == nil:
		attention = true
		findings = append(findings, Finding{
			Kind:    FindingRegression,
			Message: "No baseline comparison is available. Set a baseline to track regressions.",
		})
	case in.Regression.Status == bench.RegressionFail:
		blocked = true
		findings = append(findings, Finding{
			Kind:    FindingRegression,
			Message: "Benchmark regressed versus the profile baseline.",
		})
	case in.Regression.Status == bench.RegressionWarning:
		attention = true
		findings = append(findings, Finding{
			Kind:    FindingRegression,
			Message: "Benchmark shows a mild regression versus the profile baseline.",
		})
	}

	if in.RunCount < MinRunCount {
		attention = true
		findings = append(findings, Finding{
			Kind:    FindingLowRunCount,
			Message: fmt.Sprintf("Only %d runs recorded. Capture at least %d before release.", in.RunCount, MinRunCount),
		})
	}

	status := StatusReady
	if attention {
		status = StatusAttention
	}
	if blocked {
		status = StatusBlocked
	}

	return Report{
		Status:      status,
		ProfileName: in.ProfileName,
		Findings:    findings,
		LatestRun:   in.LatestRun,
	}
}

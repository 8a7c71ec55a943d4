package bench

import (
	"time"

	"github.com/liquidframes/motioncore/internal/gesture"
	"github.com/liquidframes/motioncore/internal/quality"
	"github.com/liquidframes/motioncore/internal/run"
)

// #region grade

// Grade is the letter verdict for a benchmark report.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Rank orders grades for policy comparison: A highest.
func (g Grade) Rank() int {
	switch g {
	case GradeA:
		return 4
	case GradeB:
		return 3
	case GradeC:
		return 2
	case GradeD:
		return 1
	}
	return 0
}

// ParseGrade maps a raw string to a Grade, reporting whether it matched.
func ParseGrade(raw string) (Grade, bool) {
	switch Grade(raw) {
	case GradeA, GradeB, GradeC, GradeD:
		return Grade(raw), true
	}
	return "", false
}

// #endregion grade

// #region report

// Scenario is one synthetic benchmark case. The literals in suite.go are an
// external contract: stored baselines compare per-scenario scores by name,
// so changing a scenario silently invalidates every saved baseline.
type Scenario struct {
	Name           string
	Trigger        run.Trigger
	Translation    gesture.Vec
	PredictedEnd   gesture.Vec
	TargetDuration float64
}

// ScenarioResult is the scored outcome of one scenario.
type ScenarioResult struct {
	Name              string
	Trigger           run.Trigger
	EstimatedDuration float64
	Responsiveness    float64
	Stability         float64
	Score             float64
}

// Report is an immutable benchmark outcome for one tuning.
type Report struct {
	GeneratedAt      time.Time
	OverallScore     float64
	ConsistencyScore float64
	Grade            Grade
	Scenarios        []ScenarioResult
	Quality          quality.Report
}

// MaxHistory bounds how many reports a workspace retains.
const MaxHistory = 24

// #endregion report

// #region baseline

// Baseline is a frozen copy of one report's scores, attached to a profile
// by an explicit operator action and never auto-updated.
type Baseline struct {
	CapturedAt       time.Time
	OverallScore     float64
	ConsistencyScore float64
	Grade            Grade
	ScenarioScores   map[string]float64
}

// NewBaseline freezes the given report's scores.
func NewBaseline(r Report) Baseline {
	scores := make(map[string]float64, len(r.Scenarios))
	for _, s := range r.Scenarios {
		scores[s.Name] = s.Score
	}
	return Baseline{
		CapturedAt:       r.GeneratedAt,
		OverallScore:     r.OverallScore,
		ConsistencyScore: r.ConsistencyScore,
		Grade:            r.Grade,
		ScenarioScores:   scores,
	}
}

// #endregion baseline

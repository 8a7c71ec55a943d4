package bench

import (
	"testing"
	"time"
)

func reportWithScores(overall, consistency float64, scenarios map[string]float64) Report {
	r := Report{
		GeneratedAt:      time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC),
		OverallScore:     overall,
		ConsistencyScore: consistency,
	}
	for name, score := range scenarios {
		r.Scenarios = append(r.Scenarios, ScenarioResult{Name: name, Score: score})
	}
	return r
}

func TestCompareFailsOnLargeDrop(t *testing.T) {
	baseline := NewBaseline(reportWithScores(92, 85, map[string]float64{
		"Gentle Gesture": 94,
		"Button Trigger": 90,
	}))
	report := reportWithScores(80, 70, map[string]float64{
		"Gentle Gesture": 74,
		"Button Trigger": 88,
	})

	reg := Compare(report, baseline)

	if reg.Status != RegressionFail {
		t.Fatalf("expected fail, got %s", reg.Status)
	}
	if reg.OverallDelta >= 0 {
		t.Fatalf("expected negative overall delta, got %f", reg.OverallDelta)
	}
	if reg.WorstScenarioDelta >= -10 {
		t.Fatalf("expected worst scenario delta below -10, got %f", reg.WorstScenarioDelta)
	}
	if len(reg.Messages) == 0 {
		t.Fatalf("expected regression messages")
	}
}

func TestCompareIdenticalScoresPass(t *testing.T) {
	report := reportWithScores(88, 80, map[string]float64{"Gentle Gesture": 90})
	reg := Compare(report, NewBaseline(report))

	if reg.Status != RegressionPass {
		t.Fatalf("expected pass, got %s", reg.Status)
	}
	if reg.OverallDelta != 0 || reg.ConsistencyDelta != 0 || reg.WorstScenarioDelta != 0 {
		t.Fatalf("expected zero deltas, got %f/%f/%f", reg.OverallDelta, reg.ConsistencyDelta, reg.WorstScenarioDelta)
	}
	if len(reg.Messages) != 1 || reg.Messages[0] != "Benchmark scores are within baseline tolerance." {
		t.Fatalf("expected the default message, got %v", reg.Messages)
	}
}

func TestCompareWarningBand(t *testing.T) {
	baseline := NewBaseline(reportWithScores(90, 80, map[string]float64{"Gentle Gesture": 90}))
	report := reportWithScores(86, 75, map[string]float64{"Gentle Gesture": 89})

	reg := Compare(report, baseline)
	if reg.Status != RegressionWarning {
		t.Fatalf("expected warning, got %s", reg.Status)
	}
}

func TestCompareIgnoresScenariosAbsentFromBaseline(t *testing.T) {
	baseline := NewBaseline(reportWithScores(90, 80, nil))
	report := reportWithScores(90, 80, map[string]float64{"Gentle Gesture": 20})

	reg := Compare(report, baseline)
	if reg.WorstScenarioDelta != 0 {
		t.Fatalf("expected absent scenario to contribute zero delta, got %f", reg.WorstScenarioDelta)
	}
	if reg.Status != RegressionPass {
		t.Fatalf("expected pass, got %s", reg.Status)
	}
}

func TestCompareImprovementMessage(t *testing.T) {
	baseline := NewBaseline(reportWithScores(80, 70, nil))
	report := reportWithScores(88, 80, nil)

	reg := Compare(report, baseline)
	if reg.Status != RegressionPass {
		t.Fatalf("expected pass, got %s", reg.Status)
	}
	found := false
	for _, m := range reg.Messages {
		if m == "Overall score improved versus baseline." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected improvement message, got %v", reg.Messages)
	}
}

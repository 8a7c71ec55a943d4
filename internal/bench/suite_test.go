package bench

import (
	"math"
	"testing"
	"time"

	"github.com/liquidframes/motioncore/internal/tuning"
)

func TestRunSuiteIsDeterministic(t *testing.T) {
	at := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)
	base := tuning.PresetBalanced.Tuning()

	first := RunSuite(base, at)
	second := RunSuite(base, at)

	if math.Abs(first.OverallScore-second.OverallScore) > 1e-4 {
		t.Fatalf("overall diverged: %f vs %f", first.OverallScore, second.OverallScore)
	}
	if math.Abs(first.ConsistencyScore-second.ConsistencyScore) > 1e-4 {
		t.Fatalf("consistency diverged: %f vs %f", first.ConsistencyScore, second.ConsistencyScore)
	}
	if first.Grade != second.Grade {
		t.Fatalf("grade diverged: %s vs %s", first.Grade, second.Grade)
	}
	if len(first.Scenarios) != len(second.Scenarios) {
		t.Fatalf("scenario count diverged")
	}
	for i := range first.Scenarios {
		if first.Scenarios[i].Name != second.Scenarios[i].Name {
			t.Fatalf("scenario order diverged at %d: %s vs %s", i, first.Scenarios[i].Name, second.Scenarios[i].Name)
		}
		if math.Abs(first.Scenarios[i].Score-second.Scenarios[i].Score) > 1e-4 {
			t.Fatalf("scenario %q score diverged", first.Scenarios[i].Name)
		}
	}
}

func TestRunSuiteCoversEveryScenarioOnce(t *testing.T) {
	report := RunSuite(tuning.PresetBalanced.Tuning(), time.Now())

	if len(report.Scenarios) != len(Scenarios) {
		t.Fatalf("expected %d scenario results, got %d", len(Scenarios), len(report.Scenarios))
	}
	for i, sc := range Scenarios {
		got := report.Scenarios[i]
		if got.Name != sc.Name {
			t.Fatalf("scenario %d: expected %q, got %q", i, sc.Name, got.Name)
		}
		if got.Trigger != sc.Trigger {
			t.Fatalf("scenario %q: expected trigger %s, got %s", sc.Name, sc.Trigger, got.Trigger)
		}
	}
}

func TestPresetGrades(t *testing.T) {
	cases := []struct {
		preset tuning.Preset
		grade  Grade
	}{
		{tuning.PresetBalanced, GradeB},
		{tuning.PresetResponsive, GradeC},
		{tuning.PresetCinematic, GradeC},
	}
	for _, tc := range cases {
		report := RunSuite(tc.preset.Tuning(), time.Now())
		if report.Grade != tc.grade {
			t.Fatalf("%s: expected grade %s, got %s (overall %.1f consistency %.1f)",
				tc.preset, tc.grade, report.Grade, report.OverallScore, report.ConsistencyScore)
		}
	}
}

func TestRunSuiteScoresStayInRange(t *testing.T) {
	extremes := []tuning.Tuning{
		{},
		{
			SplitStiffness:     1e9,
			SplitDamping:       -50,
			SettleStiffness:    1e9,
			SettleDamping:      -50,
			PreSplitDelay:      100,
			GestureCommitDelay: 100,
			PreSettleDelay:     100,
			PostSettleDelay:    100,
			GestureThreshold:   5,
			PullDistance:       1e6,
			VelocityScale:      1e6,
			VelocityInfluence:  50,
			BiasInfluence:      50,
		},
	}
	for _, in := range extremes {
		report := RunSuite(in, time.Now())
		for _, v := range []float64{report.OverallScore, report.ConsistencyScore} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 100 {
				t.Fatalf("aggregate score out of range: %f", v)
			}
		}
		for _, sc := range report.Scenarios {
			if math.IsNaN(sc.EstimatedDuration) || math.IsInf(sc.EstimatedDuration, 0) {
				t.Fatalf("scenario %q: non-finite duration", sc.Name)
			}
			if sc.Score < 0 || sc.Score > 100 {
				t.Fatalf("scenario %q: score %f out of range", sc.Name, sc.Score)
			}
		}
	}
}

func TestGradeRankOrdering(t *testing.T) {
	if !(GradeA.Rank() > GradeB.Rank() && GradeB.Rank() > GradeC.Rank() && GradeC.Rank() > GradeD.Rank()) {
		t.Fatalf("grade ranks out of order")
	}
	if _, ok := ParseGrade("B"); !ok {
		t.Fatalf("expected B to parse")
	}
	if _, ok := ParseGrade("F"); ok {
		t.Fatalf("expected F to be rejected")
	}
}

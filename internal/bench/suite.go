package bench

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/liquidframes/motioncore/internal/gesture"
	"github.com/liquidframes/motioncore/internal/quality"
	"github.com/liquidframes/motioncore/internal/run"
	"github.com/liquidframes/motioncore/internal/tuning"
)

// #region scenarios

// Scenarios is the fixed suite every benchmark runs. Order and names are
// stable so baselines recorded against older reports keep matching.
var Scenarios = []Scenario{
	{
		Name:           "Gentle Gesture",
		Trigger:        run.TriggerGesture,
		Translation:    gesture.Vec{X: 0, Y: -120},
		PredictedEnd:   gesture.Vec{X: 0, Y: -176},
		TargetDuration: 4.10,
	},
	{
		Name:           "Assertive Gesture",
		Trigger:        run.TriggerGesture,
		Translation:    gesture.Vec{X: -16, Y: -136},
		PredictedEnd:   gesture.Vec{X: -60, Y: -320},
		TargetDuration: 3.80,
	},
	{
		Name:           "Lateral Bias Gesture",
		Trigger:        run.TriggerGesture,
		Translation:    gesture.Vec{X: 96, Y: -96},
		PredictedEnd:   gesture.Vec{X: 150, Y: -150},
		TargetDuration: 4.10,
	},
	{
		Name:           "Button Trigger",
		Trigger:        run.TriggerButton,
		Translation:    gesture.Vec{},
		PredictedEnd:   gesture.Vec{},
		TargetDuration: 4.40,
	},
}

// #endregion scenarios

// #region suite

const (
	idealSpringRatio = 8.2
	consistencySpan  = 0.38
	scoreRespWeight  = 0.56
	combinedWeight   = 0.75
)

// RunSuite scores a tuning against the fixed scenario suite. The result is
// deterministic for a given tuning; generatedAt is the only varying field.
func RunSuite(t tuning.Tuning, generatedAt time.Time) Report {
	t = t.Normalized()

	results := make([]ScenarioResult, 0, len(Scenarios))
	synthetic := make([]run.Metrics, 0, len(Scenarios))
	estimates := make([]float64, 0, len(Scenarios))
	total := 0.0

	for _, sc := range Scenarios {
		sig := gesture.Estimate(gesture.Input{
			Translation:  sc.Translation,
			PredictedEnd: sc.PredictedEnd,
			Tuning:       t,
		})

		splitResponse := 165/t.SplitStiffness + t.SplitDamping/118
		settleResponse := 180/t.SettleStiffness + t.SettleDamping/108
		baseDuration := t.PreSplitDelay + t.PreSettleDelay + t.PostSettleDelay

		readiness := math.Max(0.78, sig.PrepProgress+0.22)
		estimated := (baseDuration + splitResponse + settleResponse) / readiness

		responsiveness := clamp01(1 - math.Abs(estimated-sc.TargetDuration)/sc.TargetDuration)

		springRatio := t.SplitStiffness / math.Max(1, t.SplitDamping)
		ratioStability := clamp01(1 - math.Abs(springRatio-idealSpringRatio)/idealSpringRatio)
		velocityPenalty := math.Max(0, (t.VelocityInfluence-0.9)*0.42)
		stability := clamp01(ratioStability - velocityPenalty)

		score := clamp01(scoreRespWeight*responsiveness+(1-scoreRespWeight)*stability) * 100
		total += score
		estimates = append(estimates, estimated)

		results = append(results, ScenarioResult{
			Name:              sc.Name,
			Trigger:           sc.Trigger,
			EstimatedDuration: estimated,
			Responsiveness:    responsiveness,
			Stability:         stability,
			Score:             score,
		})

		synthetic = append(synthetic, run.Metrics{
			Timestamp:    generatedAt,
			Trigger:      sc.Trigger,
			PrepPeak:     sig.PrepProgress,
			VelocityPeak: 0.35 + 0.5*responsiveness,
			BiasPeak:     sig.Bias,
			Phases: run.PhaseDurations{
				PreSplit:   estimated * 0.28,
				PreSettle:  estimated * 0.44,
				SettleTail: estimated * 0.28,
			},
		})
	}

	overall := total / float64(len(Scenarios))
	consistency := clamp01(1-stat.PopStdDev(estimates, nil)/consistencySpan) * 100
	combined := math.Min(100, math.Max(0, combinedWeight*overall+(1-combinedWeight)*consistency))

	return Report{
		GeneratedAt:      generatedAt,
		OverallScore:     overall,
		ConsistencyScore: consistency,
		Grade:            gradeFor(combined),
		Scenarios:        results,
		Quality:          quality.Evaluate(t, synthetic),
	}
}

func gradeFor(combined float64) Grade {
	switch {
	case combined >= 88:
		return GradeA
	case combined >= 75:
		return GradeB
	case combined >= 62:
		return GradeC
	}
	return GradeD
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// #endregion suite

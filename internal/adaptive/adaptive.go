// Package adaptive nudges a tuning toward the target run duration based on
// the most recent run. One deterministic step per run; no learned state.
package adaptive

import (
	"math"

	"github.com/liquidframes/motioncore/internal/run"
	"github.com/liquidframes/motioncore/internal/tuning"
)

// targetDuration is the total run duration the controller steers toward,
// in seconds.
const targetDuration = 1.35

// #region adapt

// Adapt applies one feedback step to the tuning using the supplied run.
// Rules fire independently on the same working copy, in declaration order;
// only the two duration branches are mutually exclusive. The result is
// normalized before returning.
func Adapt(t tuning.Tuning, m run.Metrics) tuning.Tuning {
	next := t
	total := m.TotalDuration()

	if total > targetDuration+0.18 {
		next.SplitStiffness *= 1.04
		next.SettleStiffness *= 1.05
		next.PreSettleDelay *= 0.93
		next.PostSettleDelay *= 0.90
	} else if total < targetDuration-0.20 {
		next.SplitDamping *= 1.04
		next.SettleDamping *= 1.05
		next.PreSettleDelay *= 1.03
		next.PostSettleDelay *= 1.03
	}

	if m.VelocityPeak > 0.82 {
		next.VelocityInfluence *= 0.96
		next.GestureThreshold += 0.01
	}

	if math.Abs(m.BiasPeak) > 0.82 {
		next.BiasInfluence *= 0.95
	}

	if m.PrepPeak < 0.74 && m.Trigger == run.TriggerGesture {
		next.GestureThreshold -= 0.01
		next.PullDistance *= 0.98
	}

	return next.Normalized()
}

// #endregion adapt

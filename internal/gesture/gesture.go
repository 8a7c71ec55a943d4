// Package gesture maps raw pointer displacement into the normalized signals
// the motion pipeline consumes. Estimate is pure and total: every division
// is guarded with a max(constant, x) floor, so any finite input produces
// finite, bounded output.
package gesture

import (
	"math"

	"github.com/liquidframes/motioncore/internal/tuning"
)

// #region types

// Vec is a 2D displacement in points. Y grows downward, so an upward drag
// has negative Y.
type Vec struct {
	X float64
	Y float64
}

// Input bundles the current drag displacement, the predicted end
// displacement supplied by the pointing device, and the active tuning.
type Input struct {
	Translation  Vec
	PredictedEnd Vec
	Tuning       tuning.Tuning
}

// Output holds the normalized signals extracted from one gesture sample.
// PrepProgress, GlowPulse, Velocity, and Energy are in [0, 1];
// Bias is in [-1, 1].
type Output struct {
	PrepProgress float64
	GlowPulse    float64
	Velocity     float64
	Bias         float64
	Energy       float64
}

// #endregion types

// #region estimate

// Estimate converts one gesture sample into normalized motion signals.
func Estimate(in Input) Output {
	t := in.Translation

	pull := math.Max(0, -t.Y) + math.Abs(t.X)*0.25
	prep := math.Min(1, pull/math.Max(120, in.Tuning.PullDistance))

	deltaX := in.PredictedEnd.X - t.X
	deltaY := in.PredictedEnd.Y - t.Y
	projected := math.Hypot(deltaX, deltaY)
	velocity := math.Min(1, projected/math.Max(80, in.Tuning.VelocityScale))

	horizontalBias := t.X / math.Max(80, in.Tuning.PullDistance*0.8)
	projectedBias := deltaX / math.Max(100, in.Tuning.PullDistance)
	bias := clamp(horizontalBias+projectedBias*in.Tuning.BiasInfluence, -1, 1)

	energy := math.Min(1, prep*0.35+velocity*in.Tuning.VelocityInfluence)
	glow := math.Min(1, prep*1.1+velocity*0.2)

	return Output{
		PrepProgress: prep,
		GlowPulse:    glow,
		Velocity:     velocity,
		Bias:         bias,
		Energy:       energy,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// #endregion estimate

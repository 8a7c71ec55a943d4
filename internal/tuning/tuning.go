// Package tuning defines the motion tuning parameter set and its valid
// ranges. A Tuning is a flat value object; Normalized clamps every field
// into range independently so downstream math never sees wild values.
package tuning

// #region ranges

// Closed valid range for each tuning field. Normalized clamps to these.
const (
	SplitStiffnessMin = 120.0
	SplitStiffnessMax = 280.0

	SplitDampingMin = 10.0
	SplitDampingMax = 34.0

	SettleStiffnessMin = 90.0
	SettleStiffnessMax = 230.0

	SettleDampingMin = 8.0
	SettleDampingMax = 28.0

	PreSplitDelayMin = 0.0
	PreSplitDelayMax = 0.8

	GestureCommitDelayMin = 0.0
	GestureCommitDelayMax = 0.35

	PreSettleDelayMin = 0.2
	PreSettleDelayMax = 1.2

	PostSettleDelayMin = 0.16
	PostSettleDelayMax = 0.9

	GestureThresholdMin = 0.4
	GestureThresholdMax = 0.9

	PullDistanceMin = 120.0
	PullDistanceMax = 320.0

	VelocityScaleMin = 80.0
	VelocityScaleMax = 300.0

	VelocityInfluenceMin = 0.2
	VelocityInfluenceMax = 1.2

	BiasInfluenceMin = 0.1
	BiasInfluenceMax = 1.0
)

// #endregion ranges

// #region tuning

// Tuning is the editable parameter vector controlling a motion profile's
// timing and spring behavior. Stiffness/damping pairs drive the split and
// settle springs; the delay fields sequence the phases; the gesture fields
// scale how pointer input maps to normalized signals.
type Tuning struct {
	SplitStiffness  float64
	SplitDamping    float64
	SettleStiffness float64
	SettleDamping   float64

	PreSplitDelay      float64
	GestureCommitDelay float64
	PreSettleDelay     float64
	PostSettleDelay    float64

	GestureThreshold  float64
	PullDistance      float64
	VelocityScale     float64
	VelocityInfluence float64
	BiasInfluence     float64
}

// Normalized returns a copy with every field clamped to its declared range.
// Idempotent; no cross-field coupling.
func (t Tuning) Normalized() Tuning {
	t.SplitStiffness = clamp(t.SplitStiffness, SplitStiffnessMin, SplitStiffnessMax)
	t.SplitDamping = clamp(t.SplitDamping, SplitDampingMin, SplitDampingMax)
	t.SettleStiffness = clamp(t.SettleStiffness, SettleStiffnessMin, SettleStiffnessMax)
	t.SettleDamping = clamp(t.SettleDamping, SettleDampingMin, SettleDampingMax)
	t.PreSplitDelay = clamp(t.PreSplitDelay, PreSplitDelayMin, PreSplitDelayMax)
	t.GestureCommitDelay = clamp(t.GestureCommitDelay, GestureCommitDelayMin, GestureCommitDelayMax)
	t.PreSettleDelay = clamp(t.PreSettleDelay, PreSettleDelayMin, PreSettleDelayMax)
	t.PostSettleDelay = clamp(t.PostSettleDelay, PostSettleDelayMin, PostSettleDelayMax)
	t.GestureThreshold = clamp(t.GestureThreshold, GestureThresholdMin, GestureThresholdMax)
	t.PullDistance = clamp(t.PullDistance, PullDistanceMin, PullDistanceMax)
	t.VelocityScale = clamp(t.VelocityScale, VelocityScaleMin, VelocityScaleMax)
	t.VelocityInfluence = clamp(t.VelocityInfluence, VelocityInfluenceMin, VelocityInfluenceMax)
	t.BiasInfluence = clamp(t.BiasInfluence, BiasInfluenceMin, BiasInfluenceMax)
	return t
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

// #endregion tuning

package adaptive

import (
	"testing"
	"time"

	"github.com/liquidframes/motioncore/internal/run"
	"github.com/liquidframes/motioncore/internal/tuning"
)

func metricsFor(trigger run.Trigger, prep, velocity, bias float64, phases run.PhaseDurations) run.Metrics {
	return run.Metrics{
		Timestamp:    time.Now(),
		Trigger:      trigger,
		PrepPeak:     prep,
		VelocityPeak: velocity,
		BiasPeak:     bias,
		Phases:       phases,
	}
}

func TestSlowRunStiffensAndShortensDelays(t *testing.T) {
	base := tuning.PresetBalanced.Tuning()
	slow := metricsFor(run.TriggerGesture, 1, 0.65, 0.12, run.PhaseDurations{
		PreSplit: 0.54, PreSettle: 1.05, SettleTail: 0.68, // total 2.27, 0.4+ over target
	})

	adapted := Adapt(base, slow)

	if adapted.SplitStiffness <= base.SplitStiffness {
		t.Errorf("splitStiffness %.2f did not increase from %.2f", adapted.SplitStiffness, base.SplitStiffness)
	}
	if adapted.SettleStiffness <= base.SettleStiffness {
		t.Errorf("settleStiffness %.2f did not increase from %.2f", adapted.SettleStiffness, base.SettleStiffness)
	}
	if adapted.PreSettleDelay >= base.PreSettleDelay {
		t.Errorf("preSettleDelay %.3f did not decrease from %.3f", adapted.PreSettleDelay, base.PreSettleDelay)
	}
	if adapted.PostSettleDelay >= base.PostSettleDelay {
		t.Errorf("postSettleDelay %.3f did not decrease from %.3f", adapted.PostSettleDelay, base.PostSettleDelay)
	}
}

func TestFastRunDampensAndStretchesDelays(t *testing.T) {
	base := tuning.PresetBalanced.Tuning()
	fast := metricsFor(run.TriggerButton, 1, 0.4, 0, run.PhaseDurations{
		PreSplit: 0.2, PreSettle: 0.5, SettleTail: 0.3, // total 1.0, under target-0.2
	})

	adapted := Adapt(base, fast)

	if adapted.SplitDamping <= base.SplitDamping {
		t.Errorf("splitDamping %.2f did not increase from %.2f", adapted.SplitDamping, base.SplitDamping)
	}
	if adapted.PreSettleDelay <= base.PreSettleDelay {
		t.Errorf("preSettleDelay %.3f did not increase from %.3f", adapted.PreSettleDelay, base.PreSettleDelay)
	}
}

func TestOnTargetRunLeavesDurationFieldsAlone(t *testing.T) {
	base := tuning.PresetBalanced.Tuning()
	onTarget := metricsFor(run.TriggerButton, 1, 0.4, 0, run.PhaseDurations{
		PreSplit: 0.38, PreSettle: 0.6, SettleTail: 0.38, // total 1.36
	})

	adapted := Adapt(base, onTarget)

	if adapted != base {
		t.Errorf("tuning changed for on-target calm run: %+v vs %+v", adapted, base)
	}
}

func TestHotVelocityPeakTamesVelocityInfluence(t *testing.T) {
	base := tuning.PresetBalanced.Tuning()
	hot := metricsFor(run.TriggerButton, 1, 0.9, 0, run.PhaseDurations{
		PreSplit: 0.38, PreSettle: 0.6, SettleTail: 0.38,
	})

	adapted := Adapt(base, hot)

	if adapted.VelocityInfluence >= base.VelocityInfluence {
		t.Errorf("velocityInfluence %.3f did not decrease from %.3f", adapted.VelocityInfluence, base.VelocityInfluence)
	}
	if adapted.GestureThreshold <= base.GestureThreshold {
		t.Errorf("gestureThreshold %.3f did not increase from %.3f", adapted.GestureThreshold, base.GestureThreshold)
	}
}

func TestStrongBiasPeakReducesBiasInfluence(t *testing.T) {
	base := tuning.PresetBalanced.Tuning()
	biased := metricsFor(run.TriggerButton, 1, 0.4, -0.9, run.PhaseDurations{
		PreSplit: 0.38, PreSettle: 0.6, SettleTail: 0.38,
	})

	adapted := Adapt(base, biased)

	if adapted.BiasInfluence >= base.BiasInfluence {
		t.Errorf("biasInfluence %.3f did not decrease from %.3f", adapted.BiasInfluence, base.BiasInfluence)
	}
}

func TestWeakGesturePrepLowersThresholdOnlyForGestureRuns(t *testing.T) {
	base := tuning.PresetBalanced.Tuning()
	phases := run.PhaseDurations{PreSplit: 0.38, PreSettle: 0.6, SettleTail: 0.38}

	viaGesture := Adapt(base, metricsFor(run.TriggerGesture, 0.5, 0.4, 0, phases))
	viaButton := Adapt(base, metricsFor(run.TriggerButton, 0.5, 0.4, 0, phases))

	if viaGesture.GestureThreshold >= base.GestureThreshold {
		t.Errorf("gesture run: threshold %.3f did not decrease", viaGesture.GestureThreshold)
	}
	if viaGesture.PullDistance >= base.PullDistance {
		t.Errorf("gesture run: pullDistance %.1f did not decrease", viaGesture.PullDistance)
	}
	if viaButton != base {
		t.Errorf("button run should not trigger the prep rule: %+v", viaButton)
	}
}

func TestAdaptedTuningIsNormalized(t *testing.T) {
	// Drive a boundary tuning with runs that push fields past their ranges.
	base := tuning.PresetBalanced.Tuning()
	base.GestureThreshold = tuning.GestureThresholdMax
	hot := metricsFor(run.TriggerButton, 1, 0.95, 0, run.PhaseDurations{
		PreSplit: 0.38, PreSettle: 0.6, SettleTail: 0.38,
	})

	adapted := Adapt(base, hot)

	if adapted != adapted.Normalized() {
		t.Errorf("adapt result is not normalized: %+v", adapted)
	}
	if adapted.GestureThreshold > tuning.GestureThresholdMax {
		t.Errorf("gestureThreshold %.3f exceeds range max", adapted.GestureThreshold)
	}
}

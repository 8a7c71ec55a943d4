// Package quality scores a tuning plus a window of recent runs for
// heuristic reliability risk. The rules are independent and accumulate an
// integer score; the score maps to a ternary level.
package quality

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/liquidframes/motioncore/internal/run"
	"github.com/liquidframes/motioncore/internal/tuning"
)

// #region types

// Level is the ternary reliability verdict.
type Level string

const (
	LevelHealthy  Level = "healthy"
	LevelCaution  Level = "caution"
	LevelUnstable Level = "unstable"
)

// Rank orders levels for policy comparison: healthy < caution < unstable.
func (l Level) Rank() int {
	switch l {
	case LevelCaution:
		return 1
	case LevelUnstable:
		return 2
	default:
		return 0
	}
}

// ParseLevel maps a raw string to a Level, reporting whether it matched.
func ParseLevel(raw string) (Level, bool) {
	switch Level(raw) {
	case LevelHealthy, LevelCaution, LevelUnstable:
		return Level(raw), true
	}
	return "", false
}

// Report is the evaluator output: a level plus the messages of every rule
// that fired, in rule-declaration order.
type Report struct {
	Level    Level
	Messages []string
}

// #endregion types

// sampleWindow bounds how many recent runs the duration rules consider.
const sampleWindow = 8

// #region evaluate

// Evaluate scores tuning plus up to the 8 most recent runs (newest first).
// Each rule contributes independently; messages keep declaration order.
func Evaluate(t tuning.Tuning, recent []run.Metrics) Report {
	score := 0
	var messages []string

	springRatio := t.SplitStiffness / math.Max(1, t.SplitDamping)
	if springRatio < 5.8 {
		score++
		messages = append(messages, "Split spring ratio is low. Motion may feel heavy or muddy.")
	}

	if t.PreSettleDelay+t.PostSettleDelay > 1.55 {
		score++
		messages = append(messages, "Combined settle delays are high. End-to-end latency may feel slow.")
	}

	if t.GestureThreshold > 0.82 {
		score++
		messages = append(messages, "Gesture threshold is high. Branch initiation may feel unresponsive.")
	}

	if t.VelocityInfluence > 1.0 {
		score++
		messages = append(messages, "Velocity influence is very high. Behavior may become inconsistent.")
	}

	sample := recent
	if len(sample) > sampleWindow {
		sample = sample[:sampleWindow]
	}
	if len(sample) >= 3 {
		durations := make([]float64, len(sample))
		for i, m := range sample {
			durations[i] = m.TotalDuration()
		}
		mean := stat.Mean(durations, nil)
		deviation := stat.PopStdDev(durations, nil)
		if mean > 1.85 {
			score += 2
			messages = append(messages, "Recent runs are too slow on average.")
		}
		if deviation > 0.3 {
			score += 2
			messages = append(messages, "Run timing variance is high. Motion is not yet reliable.")
		}
	}

	level := LevelHealthy
	switch {
	case score >= 3:
		level = LevelUnstable
	case score >= 1:
		level = LevelCaution
	}

	if len(messages) == 0 {
		messages = append(messages, "Motion profile is within target reliability bounds.")
	}

	return Report{Level: level, Messages: messages}
}

// #endregion evaluate

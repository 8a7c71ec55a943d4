// Package run holds the record of one completed motion execution: what
// triggered it, the peak signals observed, and how long each phase took.
// Metrics are created once at run completion and never mutated.
package run

import "time"

// #region trigger

// Trigger identifies what started a run.
type Trigger string

const (
	TriggerGesture Trigger = "gesture"
	TriggerButton  Trigger = "button"
	TriggerReplay  Trigger = "replay"
)

// #endregion trigger

// #region metrics

// PhaseDurations is the time spent in each motion phase, in seconds.
type PhaseDurations struct {
	PreSplit   float64
	PreSettle  float64
	SettleTail float64
}

// Total is the end-to-end run duration.
func (p PhaseDurations) Total() float64 {
	return p.PreSplit + p.PreSettle + p.SettleTail
}

// Metrics captures one completed motion run.
type Metrics struct {
	Timestamp    time.Time
	Trigger      Trigger
	PrepPeak     float64
	VelocityPeak float64
	BiasPeak     float64
	Phases       PhaseDurations
}

// TotalDuration is the sum of the three phase durations.
func (m Metrics) TotalDuration() float64 {
	return m.Phases.Total()
}

// #endregion metrics

// MaxHistory bounds how many runs a workspace retains, oldest dropped first.
const MaxHistory = 40

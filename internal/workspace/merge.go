package workspace

import (
	"fmt"
	"math"

	"github.com/liquidframes/motioncore/internal/bench"
	"github.com/liquidframes/motioncore/internal/run"
)

// Merge reconciles two divergent snapshots: last writer wins for scalar
// state, per-entity reconciliation for collections. Nothing present in
// only one input is ever dropped. Merging a snapshot with itself is a
// no-op up to re-sorting.
func Merge(current, incoming Snapshot) Snapshot {
	// Ties go to incoming, matching the profile tie-break.
	authority := incoming
	if current.SavedAt.After(incoming.SavedAt) {
		authority = current
	}

	merged := Snapshot{
		SelectedPreset: authority.SelectedPreset,
		AutoAdapt:      authority.AutoAdapt,
		Tuning:         authority.Tuning,
		Profiles:       mergeProfiles(current.Profiles, incoming.Profiles),
		Runs:           mergeRuns(current.Runs, incoming.Runs),
	}

	merged.BenchmarkHistory = mergeReports(current.BenchmarkHistory, incoming.BenchmarkHistory)
	merged.LatestBenchmark = latestReport(incoming.LatestBenchmark, current.LatestBenchmark, merged.BenchmarkHistory)
	merged.ActiveProfileID = resolveActive(merged.Profiles, incoming.ActiveProfileID, authority.ActiveProfileID, current.ActiveProfileID)

	merged.SchemaVersion = max(current.SchemaVersion, incoming.SchemaVersion, SchemaVersion)
	merged.SavedAt = current.SavedAt
	if incoming.SavedAt.After(merged.SavedAt) {
		merged.SavedAt = incoming.SavedAt
	}
	return merged
}

// #region profiles

func mergeProfiles(current, incoming []Profile) []Profile {
	byID := make(map[string]Profile, len(current)+len(incoming))
	for _, p := range current {
		byID[p.ID] = p.NormalizedMetadata()
	}
	for _, p := range incoming {
		p = p.NormalizedMetadata()
		// Equal updatedAt keeps the incoming side.
		if existing, ok := byID[p.ID]; ok && existing.UpdatedAt.After(p.UpdatedAt) {
			continue
		}
		byID[p.ID] = p
	}

	merged := make([]Profile, 0, len(byID))
	for _, p := range byID {
		merged = append(merged, p)
	}
	SortProfiles(merged)
	return merged
}

// #endregion profiles

// #region runs

func runKey(m run.Metrics) string {
	return fmt.Sprintf("%d|%s|%.3f|%.3f|%.3f|%.3f|%.3f|%.3f",
		m.Timestamp.UnixMilli(), m.Trigger,
		round3(m.PrepPeak), round3(m.VelocityPeak), round3(m.BiasPeak),
		round3(m.Phases.PreSplit), round3(m.Phases.PreSettle), round3(m.Phases.SettleTail))
}

func mergeRuns(current, incoming []run.Metrics) []run.Metrics {
	seen := make(map[string]struct{}, len(current)+len(incoming))
	merged := make([]run.Metrics, 0, len(current)+len(incoming))
	for _, m := range append(append([]run.Metrics{}, current...), incoming...) {
		key := runKey(m)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, m)
	}
	SortRuns(merged)
	return CapRuns(merged)
}

// #endregion runs

// #region benchmarks

func reportKey(r bench.Report) string {
	return fmt.Sprintf("%d|%.3f|%.3f|%s",
		r.GeneratedAt.UnixMilli(), round3(r.OverallScore), round3(r.ConsistencyScore), r.Grade)
}

func mergeReports(current, incoming []bench.Report) []bench.Report {
	seen := make(map[string]struct{}, len(current)+len(incoming))
	merged := make([]bench.Report, 0, len(current)+len(incoming))
	for _, r := range append(append([]bench.Report{}, current...), incoming...) {
		key := reportKey(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, r)
	}
	SortReports(merged)
	return CapReports(merged)
}

// latestReport picks the most recent candidate; earlier arguments win
// ties, nils are skipped.
func latestReport(incoming, current *bench.Report, history []bench.Report) *bench.Report {
	candidates := []*bench.Report{incoming, current}
	if len(history) > 0 {
		candidates = append(candidates, &history[0])
	}
	var best *bench.Report
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if best == nil || c.GeneratedAt.After(best.GeneratedAt) {
			best = c
		}
	}
	if best == nil {
		return nil
	}
	picked := *best
	return &picked
}

// #endregion benchmarks

func resolveActive(profiles []Profile, candidates ...string) string {
	byID := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = struct{}{}
	}
	for _, id := range candidates {
		if id == "" {
			continue
		}
		if _, ok := byID[id]; ok {
			return id
		}
	}
	if len(profiles) > 0 {
		return profiles[0].ID
	}
	return ""
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

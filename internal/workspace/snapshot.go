package workspace

import (
	"sort"
	"strings"
	"time"

	"github.com/liquidframes/motioncore/internal/bench"
	"github.com/liquidframes/motioncore/internal/run"
	"github.com/liquidframes/motioncore/internal/tuning"
)

// SchemaVersion is the current snapshot schema. Version 1 predates
// profiles, benchmark history, and the active-profile pointer.
const SchemaVersion = 2

// #region snapshot

// Snapshot is the full persisted workspace state.
type Snapshot struct {
	SchemaVersion    int
	SelectedPreset   tuning.Preset
	AutoAdapt        bool
	Tuning           tuning.Tuning
	Runs             []run.Metrics
	Profiles         []Profile
	ActiveProfileID  string
	BenchmarkHistory []bench.Report
	LatestBenchmark  *bench.Report
	SavedAt          time.Time
}

// ProfileByID returns the profile with the given id, if present.
func (s Snapshot) ProfileByID(id string) (Profile, bool) {
	for _, p := range s.Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

// ActiveProfile resolves the active pointer, falling back to the first
// profile when the pointer is empty or dangling.
func (s Snapshot) ActiveProfile() (Profile, bool) {
	if p, ok := s.ProfileByID(s.ActiveProfileID); ok {
		return p, true
	}
	if len(s.Profiles) > 0 {
		return s.Profiles[0], true
	}
	return Profile{}, false
}

// #endregion snapshot

// #region ordering

// SortProfiles orders profiles newest-updated first, ties by
// case-insensitive name ascending.
func SortProfiles(profiles []Profile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		if !profiles[i].UpdatedAt.Equal(profiles[j].UpdatedAt) {
			return profiles[i].UpdatedAt.After(profiles[j].UpdatedAt)
		}
		return strings.ToLower(profiles[i].Name) < strings.ToLower(profiles[j].Name)
	})
}

// SortRuns orders runs newest-first.
func SortRuns(runs []run.Metrics) {
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
}

// SortReports orders benchmark reports newest-first.
func SortReports(reports []bench.Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].GeneratedAt.After(reports[j].GeneratedAt)
	})
}

// CapRuns truncates a newest-first run list to the retention bound.
func CapRuns(runs []run.Metrics) []run.Metrics {
	if len(runs) > run.MaxHistory {
		runs = runs[:run.MaxHistory]
	}
	return runs
}

// CapReports truncates a newest-first report list to the retention bound.
func CapReports(reports []bench.Report) []bench.Report {
	if len(reports) > bench.MaxHistory {
		reports = reports[:bench.MaxHistory]
	}
	return reports
}

// #endregion ordering

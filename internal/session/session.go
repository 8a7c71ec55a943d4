// Package session owns the mutable tool state: the working tuning, run
// and benchmark history, the profile table, and debounced persistence.
// All other packages stay pure; every mutation funnels through here.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/liquidframes/motioncore/internal/adaptive"
	"github.com/liquidframes/motioncore/internal/bench"
	"github.com/liquidframes/motioncore/internal/gate"
	"github.com/liquidframes/motioncore/internal/quality"
	"github.com/liquidframes/motioncore/internal/run"
	"github.com/liquidframes/motioncore/internal/tuning"
	"github.com/liquidframes/motioncore/internal/workspace"
)

var (
	// ErrLastProfile rejects deleting the sole remaining profile.
	ErrLastProfile = errors.New("cannot delete the last profile")

	// ErrProfileNotFound reports an unknown profile id.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNoBenchmark reports a baseline operation without a report.
	ErrNoBenchmark = errors.New("no benchmark report available")
)

const qualityWindow = 8

// #region controller

// Controller is the single writer for one workspace. Methods are safe
// for concurrent use; persistence is debounced so bursts of mutations
// produce one write.
type Controller struct {
	mu  sync.Mutex
	log zerolog.Logger

	path     string
	debounce time.Duration
	timer    *time.Timer
	saveMu   sync.Mutex // at most one write in flight

	now func() time.Time

	tuning        tuning.Tuning
	preset        tuning.Preset
	autoAdapt     bool
	runs          []run.Metrics
	benches       []bench.Report
	latestBench   *bench.Report
	profiles      []workspace.Profile
	activeID      string
	schemaVersion int
	savedAt       time.Time
}

// Options configures a Controller.
type Options struct {
	// Path is the workspace file. Empty disables persistence.
	Path     string
	Debounce time.Duration
	Logger   zerolog.Logger
	Now      func() time.Time
}

// New builds a controller from a loaded snapshot. A snapshot without
// profiles gets a default profile seeded from its tuning, keeping the
// at-least-one-profile invariant from the start.
func New(snap workspace.Snapshot, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 600 * time.Millisecond
	}

	c := &Controller{
		log:           opts.Logger,
		path:          opts.Path,
		debounce:      opts.Debounce,
		now:           opts.Now,
		tuning:        snap.Tuning.Normalized(),
		preset:        snap.SelectedPreset,
		autoAdapt:     snap.AutoAdapt,
		runs:          workspace.CapRuns(snap.Runs),
		benches:       workspace.CapReports(snap.BenchmarkHistory),
		latestBench:   snap.LatestBenchmark,
		profiles:      snap.Profiles,
		activeID:      snap.ActiveProfileID,
		schemaVersion: max(snap.SchemaVersion, workspace.SchemaVersion),
		savedAt:       snap.SavedAt,
	}
	if c.preset == "" {
		c.preset = tuning.PresetBalanced
	}
	if len(c.profiles) == 0 {
		p := workspace.NewProfile("Default", "", nil, c.tuning, c.now())
		c.profiles = []workspace.Profile{p}
		c.activeID = p.ID
	}
	if _, ok := c.profileByID(c.activeID); !ok {
		c.activeID = c.profiles[0].ID
	}
	return c
}

// #endregion controller

// #region accessors

// Tuning returns the working tuning.
func (c *Controller) Tuning() tuning.Tuning {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tuning
}

// Preset returns the selected preset.
func (c *Controller) Preset() tuning.Preset {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preset
}

// AutoAdapt reports whether runs feed the adaptive engine.
func (c *Controller) AutoAdapt() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoAdapt
}

// Runs returns the run history, newest first.
func (c *Controller) Runs() []run.Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]run.Metrics, len(c.runs))
	copy(out, c.runs)
	return out
}

// BenchmarkHistory returns retained reports, newest first.
func (c *Controller) BenchmarkHistory() []bench.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]bench.Report, len(c.benches))
	copy(out, c.benches)
	return out
}

// LatestBenchmark returns the most recent report, if any.
func (c *Controller) LatestBenchmark() *bench.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latestBench == nil {
		return nil
	}
	r := *c.latestBench
	return &r
}

// Profiles returns the profile table, newest-updated first.
func (c *Controller) Profiles() []workspace.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]workspace.Profile, len(c.profiles))
	copy(out, c.profiles)
	workspace.SortProfiles(out)
	return out
}

// ActiveProfile returns the active profile.
func (c *Controller) ActiveProfile() workspace.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, _ := c.profileByID(c.activeID)
	return p
}

// IsDirty reports whether the working tuning differs from the active
// profile's saved tuning.
func (c *Controller) IsDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isDirtyLocked()
}

func (c *Controller) isDirtyLocked() bool {
	p, ok := c.profileByID(c.activeID)
	if !ok {
		return false
	}
	return p.Tuning != c.tuning
}

func (c *Controller) profileByID(id string) (workspace.Profile, bool) {
	for _, p := range c.profiles {
		if p.ID == id {
			return p, true
		}
	}
	return workspace.Profile{}, false
}

// #endregion accessors

// #region tuning-mutations

// UpdateTuning replaces the working tuning, clamped to valid ranges.
func (c *Controller) UpdateTuning(t tuning.Tuning) {
	c.mu.Lock()
	c.tuning = t.Normalized()
	c.mu.Unlock()
	c.scheduleSave()
}

// ApplyPreset selects a preset and adopts its canonical tuning.
func (c *Controller) ApplyPreset(p tuning.Preset) {
	c.mu.Lock()
	c.preset = p
	c.tuning = p.Tuning()
	c.mu.Unlock()
	c.scheduleSave()
	c.log.Info().Str("preset", string(p)).Msg("preset applied")
}

// SetAutoAdapt toggles the adaptive engine.
func (c *Controller) SetAutoAdapt(enabled bool) {
	c.mu.Lock()
	c.autoAdapt = enabled
	c.mu.Unlock()
	c.scheduleSave()
}

// #endregion tuning-mutations

// #region runs

// RecordRun appends a completed run and, when auto-adapt is on, steps
// the working tuning toward the target feel.
func (c *Controller) RecordRun(m run.Metrics) {
	c.mu.Lock()
	c.runs = workspace.CapRuns(append([]run.Metrics{m}, c.runs...))
	adapted := false
	if c.autoAdapt {
		c.tuning = adaptive.Adapt(c.tuning, m)
		adapted = true
	}
	c.mu.Unlock()
	c.scheduleSave()
	c.log.Debug().
		Str("trigger", string(m.Trigger)).
		Float64("duration", m.TotalDuration()).
		Bool("adapted", adapted).
		Msg("run recorded")
}

// ClearRuns drops the run history.
func (c *Controller) ClearRuns() {
	c.mu.Lock()
	c.runs = nil
	c.mu.Unlock()
	c.scheduleSave()
}

// Quality evaluates reliability from the working tuning and the most
// recent runs.
func (c *Controller) Quality() quality.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	sample := c.runs
	if len(sample) > qualityWindow {
		sample = sample[:qualityWindow]
	}
	return quality.Evaluate(c.tuning, sample)
}

// #endregion runs

// #region benchmarks

// RunBenchmark scores the working tuning against the fixed suite.
// recordHistory also appends the report to the retained history.
func (c *Controller) RunBenchmark(recordHistory bool) bench.Report {
	c.mu.Lock()
	report := bench.RunSuite(c.tuning, c.now())
	c.latestBench = &report
	if recordHistory {
		c.benches = workspace.CapReports(append([]bench.Report{report}, c.benches...))
	}
	c.mu.Unlock()
	c.scheduleSave()
	c.log.Info().
		Str("grade", string(report.Grade)).
		Float64("overall", report.OverallScore).
		Msg("benchmark complete")
	return report
}

// ClearBenchmarks drops the report history and the latest report.
func (c *Controller) ClearBenchmarks() {
	c.mu.Lock()
	c.benches = nil
	c.latestBench = nil
	c.mu.Unlock()
	c.scheduleSave()
}

// SetBaseline freezes the latest report onto the active profile.
func (c *Controller) SetBaseline() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latestBench == nil {
		return ErrNoBenchmark
	}
	baseline := bench.NewBaseline(*c.latestBench)
	for i := range c.profiles {
		if c.profiles[i].ID == c.activeID {
			c.profiles[i].Baseline = &baseline
			c.profiles[i].UpdatedAt = c.now()
			c.scheduleSaveLocked()
			return nil
		}
	}
	return ErrProfileNotFound
}

// ClearBaseline removes the active profile's baseline.
func (c *Controller) ClearBaseline() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.profiles {
		if c.profiles[i].ID == c.activeID {
			c.profiles[i].Baseline = nil
			c.profiles[i].UpdatedAt = c.now()
			c.scheduleSaveLocked()
			return nil
		}
	}
	return ErrProfileNotFound
}

// Regression compares the latest report against the active profile's
// baseline. Nil when either side is missing.
func (c *Controller) Regression() *bench.Regression {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.profileByID(c.activeID)
	if !ok || p.Baseline == nil || c.latestBench == nil {
		return nil
	}
	reg := bench.Compare(*c.latestBench, *p.Baseline)
	return &reg
}

// #endregion benchmarks

// #region profiles

// CreateProfile saves the working tuning as a new profile and makes it
// active.
func (c *Controller) CreateProfile(name, notes string, tags []string) workspace.Profile {
	c.mu.Lock()
	p := workspace.NewProfile(name, notes, tags, c.tuning, c.now())
	c.profiles = append(c.profiles, p)
	c.activeID = p.ID
	c.mu.Unlock()
	c.scheduleSave()
	c.log.Info().Str("profile", p.Name).Msg("profile created")
	return p
}

// DuplicateProfile copies an existing profile under a derived name. The
// copy drops the baseline: it has no benchmark history of its own yet.
func (c *Controller) DuplicateProfile(id string) (workspace.Profile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	src, ok := c.profileByID(id)
	if !ok {
		return workspace.Profile{}, ErrProfileNotFound
	}
	copyProfile := workspace.NewProfile(src.Name+" Copy", src.Notes, src.Tags, src.Tuning, c.now())
	c.profiles = append(c.profiles, copyProfile)
	c.scheduleSaveLocked()
	return copyProfile, nil
}

// DeleteProfile removes a profile. The last remaining profile cannot be
// deleted; deleting the active one re-selects the first survivor.
func (c *Controller) DeleteProfile(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.profiles) <= 1 {
		return ErrLastProfile
	}
	idx := -1
	for i, p := range c.profiles {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrProfileNotFound
	}
	c.profiles = append(c.profiles[:idx], c.profiles[idx+1:]...)
	if c.activeID == id {
		c.activeID = c.profiles[0].ID
		c.tuning = c.profiles[0].Tuning
	}
	c.scheduleSaveLocked()
	return nil
}

// SelectProfile makes a profile active and adopts its tuning.
func (c *Controller) SelectProfile(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.profileByID(id)
	if !ok {
		return ErrProfileNotFound
	}
	c.activeID = p.ID
	c.tuning = p.Tuning
	c.scheduleSaveLocked()
	return nil
}

// SaveCurrentToProfile writes the working tuning into the active
// profile, clearing the dirty state.
func (c *Controller) SaveCurrentToProfile() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.profiles {
		if c.profiles[i].ID == c.activeID {
			c.profiles[i].Tuning = c.tuning
			c.profiles[i].UpdatedAt = c.now()
			c.scheduleSaveLocked()
			return nil
		}
	}
	return ErrProfileNotFound
}

// RevertToProfile discards working-tuning edits in favor of the active
// profile's saved tuning.
func (c *Controller) RevertToProfile() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.profileByID(c.activeID)
	if !ok {
		return ErrProfileNotFound
	}
	c.tuning = p.Tuning
	c.scheduleSaveLocked()
	return nil
}

// UpdateProfileMetadata renames and retags a profile.
func (c *Controller) UpdateProfileMetadata(id, name, notes string, tags []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.profiles {
		if c.profiles[i].ID == id {
			c.profiles[i].Name = name
			c.profiles[i].Notes = notes
			c.profiles[i].Tags = tags
			c.profiles[i] = c.profiles[i].NormalizedMetadata()
			c.profiles[i].UpdatedAt = c.now()
			c.scheduleSaveLocked()
			return nil
		}
	}
	return ErrProfileNotFound
}

// #endregion profiles

// #region gate

// Gate evaluates the release verdict for the current state.
func (c *Controller) Gate() gate.Report {
	qualityReport := c.Quality()
	c.mu.Lock()
	defer c.mu.Unlock()
	p, _ := c.profileByID(c.activeID)

	var latestRun *run.Metrics
	if len(c.runs) > 0 {
		r := c.runs[0]
		latestRun = &r
	}
	var regression *bench.Regression
	if p.Baseline != nil && c.latestBench != nil {
		reg := bench.Compare(*c.latestBench, *p.Baseline)
		regression = &reg
	}

	return gate.Evaluate(gate.Input{
		ProfileName:    p.Name,
		ProfileIsDirty: c.isDirtyLocked(),
		Quality:        qualityReport,
		Benchmark:      c.latestBench,
		Regression:     regression,
		LatestRun:      latestRun,
		RunCount:       len(c.runs),
		BenchmarkCount: len(c.benches),
	})
}

// #endregion gate

// #region snapshot

// Snapshot captures the full state for persistence or merging.
func (c *Controller) Snapshot() workspace.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() workspace.Snapshot {
	profiles := make([]workspace.Profile, len(c.profiles))
	copy(profiles, c.profiles)
	workspace.SortProfiles(profiles)
	runs := make([]run.Metrics, len(c.runs))
	copy(runs, c.runs)
	benches := make([]bench.Report, len(c.benches))
	copy(benches, c.benches)

	snap := workspace.Snapshot{
		SchemaVersion:    c.schemaVersion,
		SelectedPreset:   c.preset,
		AutoAdapt:        c.autoAdapt,
		Tuning:           c.tuning,
		Runs:             runs,
		Profiles:         profiles,
		ActiveProfileID:  c.activeID,
		BenchmarkHistory: benches,
		SavedAt:          c.savedAt,
	}
	if c.latestBench != nil {
		r := *c.latestBench
		snap.LatestBenchmark = &r
	}
	return snap
}

// MergeWith reconciles an imported snapshot into the session, adopting
// the merged result wholesale.
func (c *Controller) MergeWith(incoming workspace.Snapshot) {
	c.mu.Lock()
	merged := workspace.Merge(c.snapshotLocked(), incoming)
	c.tuning = merged.Tuning.Normalized()
	c.preset = merged.SelectedPreset
	c.autoAdapt = merged.AutoAdapt
	c.runs = merged.Runs
	c.benches = merged.BenchmarkHistory
	c.latestBench = merged.LatestBenchmark
	c.profiles = merged.Profiles
	c.activeID = merged.ActiveProfileID
	c.schemaVersion = merged.SchemaVersion
	c.mu.Unlock()
	c.scheduleSave()
	c.log.Info().Msg("workspace merged")
}

// #endregion snapshot

package workspace

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/liquidframes/motioncore/internal/bench"
	"github.com/liquidframes/motioncore/internal/quality"
	"github.com/liquidframes/motioncore/internal/run"
	"github.com/liquidframes/motioncore/internal/tuning"
)

// The record types below define the on-disk JSON shape. Field names are
// an interoperability contract with previously written workspace files;
// do not rename them.

// #region records

type tuningRecord struct {
	SplitStiffness     float64 `json:"splitStiffness"`
	SplitDamping       float64 `json:"splitDamping"`
	SettleStiffness    float64 `json:"settleStiffness"`
	SettleDamping      float64 `json:"settleDamping"`
	PreSplitDelay      float64 `json:"preSplitDelay"`
	GestureCommitDelay float64 `json:"gestureCommitDelay"`
	PreSettleDelay     float64 `json:"preSettleDelay"`
	PostSettleDelay    float64 `json:"postSettleDelay"`
	GestureThreshold   float64 `json:"gestureThreshold"`
	PullDistance       float64 `json:"pullDistance"`
	VelocityScale      float64 `json:"velocityScale"`
	VelocityInfluence  float64 `json:"velocityInfluence"`
	BiasInfluence      float64 `json:"biasInfluence"`
}

type runRecord struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Trigger      string    `json:"triggerRawValue"`
	PrepPeak     float64   `json:"prepPeak"`
	VelocityPeak float64   `json:"velocityPeak"`
	BiasPeak     float64   `json:"biasPeak"`
	PreSplit     float64   `json:"preSplit"`
	PreSettle    float64   `json:"preSettle"`
	SettleTail   float64   `json:"settleTail"`
}

type baselineRecord struct {
	OverallScore     float64            `json:"overallScore"`
	ConsistencyScore float64            `json:"consistencyScore"`
	Grade            string             `json:"gradeRawValue"`
	ScenarioScores   map[string]float64 `json:"scenarioScores"`
	CapturedAt       time.Time          `json:"capturedAt"`
}

type profileRecord struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Notes     string          `json:"notes"`
	Tags      []string        `json:"tags"`
	Tuning    tuningRecord    `json:"tuning"`
	Baseline  *baselineRecord `json:"baseline,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type scenarioResultRecord struct {
	Name              string  `json:"scenarioName"`
	Trigger           string  `json:"triggerRawValue"`
	EstimatedDuration float64 `json:"estimatedDuration"`
	Responsiveness    float64 `json:"responsiveness"`
	Stability         float64 `json:"stability"`
	Score             float64 `json:"score"`
}

type qualityRecord struct {
	Level    string   `json:"levelRawValue"`
	Messages []string `json:"messages"`
}

type benchmarkRecord struct {
	GeneratedAt      time.Time              `json:"generatedAt"`
	OverallScore     float64                `json:"overallScore"`
	ConsistencyScore float64                `json:"consistencyScore"`
	Grade            string                 `json:"gradeRawValue"`
	Scenarios        []scenarioResultRecord `json:"scenarios"`
	Quality          qualityRecord          `json:"quality"`
}

// snapshotRecord uses pointers where schema version 1 payloads may omit
// the field entirely; migrate fills the documented defaults.
type snapshotRecord struct {
	SchemaVersion    *int              `json:"schemaVersion,omitempty"`
	SelectedPreset   *string           `json:"selectedPresetRawValue,omitempty"`
	AutoAdapt        *bool             `json:"autoAdaptEnabled,omitempty"`
	Tuning           tuningRecord      `json:"tuning"`
	RunHistory       []runRecord       `json:"runHistory"`
	Profiles         []profileRecord   `json:"profiles"`
	ActiveProfileID  *string           `json:"activeProfileID,omitempty"`
	BenchmarkHistory []benchmarkRecord `json:"benchmarkHistory"`
	LatestBenchmark  *benchmarkRecord  `json:"latestBenchmark,omitempty"`
	SavedAt          time.Time         `json:"savedAt"`
}

// #endregion records

// #region converters

func toTuningRecord(t tuning.Tuning) tuningRecord {
	return tuningRecord(t)
}

func (r tuningRecord) domain() tuning.Tuning {
	return tuning.Tuning(r)
}

func toRunRecord(m run.Metrics) runRecord {
	return runRecord{
		ID:           uuid.NewString(),
		Timestamp:    m.Timestamp,
		Trigger:      string(m.Trigger),
		PrepPeak:     m.PrepPeak,
		VelocityPeak: m.VelocityPeak,
		BiasPeak:     m.BiasPeak,
		PreSplit:     m.Phases.PreSplit,
		PreSettle:    m.Phases.PreSettle,
		SettleTail:   m.Phases.SettleTail,
	}
}

func (r runRecord) domain() run.Metrics {
	return run.Metrics{
		Timestamp:    r.Timestamp,
		Trigger:      run.Trigger(r.Trigger),
		PrepPeak:     r.PrepPeak,
		VelocityPeak: r.VelocityPeak,
		BiasPeak:     r.BiasPeak,
		Phases: run.PhaseDurations{
			PreSplit:   r.PreSplit,
			PreSettle:  r.PreSettle,
			SettleTail: r.SettleTail,
		},
	}
}

func toBaselineRecord(b bench.Baseline) baselineRecord {
	return baselineRecord{
		OverallScore:     b.OverallScore,
		ConsistencyScore: b.ConsistencyScore,
		Grade:            string(b.Grade),
		ScenarioScores:   b.ScenarioScores,
		CapturedAt:       b.CapturedAt,
	}
}

func (r baselineRecord) domain() bench.Baseline {
	scores := r.ScenarioScores
	if scores == nil {
		scores = map[string]float64{}
	}
	return bench.Baseline{
		OverallScore:     r.OverallScore,
		ConsistencyScore: r.ConsistencyScore,
		Grade:            bench.Grade(r.Grade),
		ScenarioScores:   scores,
		CapturedAt:       r.CapturedAt,
	}
}

func toProfileRecord(p Profile) profileRecord {
	rec := profileRecord{
		ID:        p.ID,
		Name:      p.Name,
		Notes:     p.Notes,
		Tags:      p.Tags,
		Tuning:    toTuningRecord(p.Tuning),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Baseline != nil {
		b := toBaselineRecord(*p.Baseline)
		rec.Baseline = &b
	}
	return rec
}

func (r profileRecord) domain() Profile {
	p := Profile{
		ID:        r.ID,
		Name:      r.Name,
		Notes:     r.Notes,
		Tags:      r.Tags,
		Tuning:    r.Tuning.domain(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.ID == "" {
		p.ID = uuid.NewString()
	}
	if r.Baseline != nil {
		b := r.Baseline.domain()
		p.Baseline = &b
	}
	return p.NormalizedMetadata()
}

func toBenchmarkRecord(r bench.Report) benchmarkRecord {
	rec := benchmarkRecord{
		GeneratedAt:      r.GeneratedAt,
		OverallScore:     r.OverallScore,
		ConsistencyScore: r.ConsistencyScore,
		Grade:            string(r.Grade),
		Quality: qualityRecord{
			Level:    string(r.Quality.Level),
			Messages: r.Quality.Messages,
		},
	}
	for _, sc := range r.Scenarios {
		rec.Scenarios = append(rec.Scenarios, scenarioResultRecord{
			Name:              sc.Name,
			Trigger:           string(sc.Trigger),
			EstimatedDuration: sc.EstimatedDuration,
			Responsiveness:    sc.Responsiveness,
			Stability:         sc.Stability,
			Score:             sc.Score,
		})
	}
	return rec
}

func (r benchmarkRecord) domain() bench.Report {
	report := bench.Report{
		GeneratedAt:      r.GeneratedAt,
		OverallScore:     r.OverallScore,
		ConsistencyScore: r.ConsistencyScore,
		Grade:            bench.Grade(r.Grade),
		Quality: quality.Report{
			Level:    quality.Level(r.Quality.Level),
			Messages: r.Quality.Messages,
		},
	}
	for _, sc := range r.Scenarios {
		report.Scenarios = append(report.Scenarios, bench.ScenarioResult{
			Name:              sc.Name,
			Trigger:           run.Trigger(sc.Trigger),
			EstimatedDuration: sc.EstimatedDuration,
			Responsiveness:    sc.Responsiveness,
			Stability:         sc.Stability,
			Score:             sc.Score,
		})
	}
	return report
}

// #endregion converters

// #region codec

// EncodeSnapshot serializes a snapshot to the on-disk JSON form.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	version := s.SchemaVersion
	if version < SchemaVersion {
		version = SchemaVersion
	}
	preset := string(s.SelectedPreset)
	autoAdapt := s.AutoAdapt

	rec := snapshotRecord{
		SchemaVersion:  &version,
		SelectedPreset: &preset,
		AutoAdapt:      &autoAdapt,
		Tuning:         toTuningRecord(s.Tuning),
		SavedAt:        s.SavedAt,
	}
	rec.RunHistory = make([]runRecord, 0, len(s.Runs))
	for _, m := range s.Runs {
		rec.RunHistory = append(rec.RunHistory, toRunRecord(m))
	}
	rec.Profiles = make([]profileRecord, 0, len(s.Profiles))
	for _, p := range s.Profiles {
		rec.Profiles = append(rec.Profiles, toProfileRecord(p))
	}
	rec.BenchmarkHistory = make([]benchmarkRecord, 0, len(s.BenchmarkHistory))
	for _, b := range s.BenchmarkHistory {
		rec.BenchmarkHistory = append(rec.BenchmarkHistory, toBenchmarkRecord(b))
	}
	if s.ActiveProfileID != "" {
		id := s.ActiveProfileID
		rec.ActiveProfileID = &id
	}
	if s.LatestBenchmark != nil {
		b := toBenchmarkRecord(*s.LatestBenchmark)
		rec.LatestBenchmark = &b
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses the on-disk JSON form, migrating older schema
// versions: missing fields take their documented defaults.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var rec snapshotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return migrate(rec), nil
}

// migrate turns a decoded record of any supported schema version into a
// current-version snapshot. Version 1 payloads carry only tuning, run
// history, and savedAt.
func migrate(rec snapshotRecord) Snapshot {
	s := Snapshot{
		SchemaVersion:  1,
		SelectedPreset: tuning.PresetBalanced,
		Tuning:         rec.Tuning.domain(),
		SavedAt:        rec.SavedAt,
	}
	if rec.SchemaVersion != nil {
		s.SchemaVersion = *rec.SchemaVersion
	}
	if rec.SelectedPreset != nil {
		if p, err := tuning.ParsePreset(*rec.SelectedPreset); err == nil {
			s.SelectedPreset = p
		}
	}
	if rec.AutoAdapt != nil {
		s.AutoAdapt = *rec.AutoAdapt
	}
	if rec.ActiveProfileID != nil {
		s.ActiveProfileID = *rec.ActiveProfileID
	}

	s.Runs = make([]run.Metrics, 0, len(rec.RunHistory))
	for _, r := range rec.RunHistory {
		s.Runs = append(s.Runs, r.domain())
	}
	s.Profiles = make([]Profile, 0, len(rec.Profiles))
	for _, p := range rec.Profiles {
		s.Profiles = append(s.Profiles, p.domain())
	}
	s.BenchmarkHistory = make([]bench.Report, 0, len(rec.BenchmarkHistory))
	for _, b := range rec.BenchmarkHistory {
		s.BenchmarkHistory = append(s.BenchmarkHistory, b.domain())
	}
	if rec.LatestBenchmark != nil {
		b := rec.LatestBenchmark.domain()
		s.LatestBenchmark = &b
	}
	if s.SchemaVersion < SchemaVersion {
		s.SchemaVersion = SchemaVersion
	}
	return s
}

// #endregion codec

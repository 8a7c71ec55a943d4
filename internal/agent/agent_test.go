package agent

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liquidframes/motioncore/internal/bench"
	"github.com/liquidframes/motioncore/internal/gate"
	"github.com/liquidframes/motioncore/internal/quality"
	"github.com/liquidframes/motioncore/internal/store"
	"github.com/liquidframes/motioncore/internal/tuning"
	"github.com/liquidframes/motioncore/internal/workspace"
)

func defaultOptions(path string) CheckOptions {
	return CheckOptions{
		WorkspacePath:  path,
		MinRuns:        5,
		RequireGrade:   bench.GradeB,
		RequireQuality: quality.LevelHealthy,
	}
}

func writeWorkspace(t *testing.T, snap workspace.Snapshot) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workspace.json")
	require.NoError(t, store.Save(snap, path))
	return path
}

func balancedWorkspace(at time.Time) workspace.Snapshot {
	p := workspace.NewProfile("Hero Card", "", nil, tuning.PresetBalanced.Tuning(), at)
	return workspace.Snapshot{
		SchemaVersion:   workspace.SchemaVersion,
		SelectedPreset:  tuning.PresetBalanced,
		Tuning:          tuning.PresetBalanced.Tuning(),
		Profiles:        []workspace.Profile{p},
		ActiveProfileID: p.ID,
		SavedAt:         at,
	}
}

func TestCheckMissingWorkspaceFailsWithSynthesizedPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	result, err := RunCheck(defaultOptions(path), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, ExitPolicyFailure, result.ExitCode)
	assert.False(t, result.Payload.Passed)
	assert.Equal(t, "blocked", result.Payload.ReleaseGateStatus)
	assert.Equal(t, "unstable", result.Payload.QualityLevel)
	assert.Zero(t, result.Payload.RunCount)
	assert.Nil(t, result.Payload.ActiveProfile)
	assert.Contains(t, result.Payload.PolicyFailures, "Workspace snapshot not found.")
}

func TestCheckStrictPolicyFailsOnFreshWorkspace(t *testing.T) {
	at := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)
	path := writeWorkspace(t, balancedWorkspace(at))

	result, err := RunCheck(defaultOptions(path), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, ExitPolicyFailure, result.ExitCode)
	assert.False(t, result.Payload.Passed)
	// Attention gate (no baseline, few runs) and the run floor both fail.
	assert.Contains(t, result.Payload.PolicyFailures, "Release gate status attention is below required status.")
	assert.Contains(t, result.Payload.PolicyFailures, "Run count 0 is below required minimum 5.")
	require.NotNil(t, result.Payload.BenchmarkGrade)
	assert.Equal(t, "B", *result.Payload.BenchmarkGrade)
}

func TestCheckRelaxedPolicyPasses(t *testing.T) {
	at := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)
	path := writeWorkspace(t, balancedWorkspace(at))

	opts := defaultOptions(path)
	opts.AllowAttention = true
	opts.MinRuns = 0

	result, err := RunCheck(opts, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, ExitSuccess, result.ExitCode)
	assert.True(t, result.Payload.Passed)
	assert.Empty(t, result.Payload.PolicyFailures)
	require.NotNil(t, result.Payload.ActiveProfile)
	assert.Equal(t, "Hero Card", *result.Payload.ActiveProfile)
}

func TestCheckReusesCachedBenchmark(t *testing.T) {
	at := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)
	snap := balancedWorkspace(at)
	cached := bench.RunSuite(tuning.PresetCinematic.Tuning(), at)
	snap.LatestBenchmark = &cached
	path := writeWorkspace(t, snap)

	result, err := RunCheck(defaultOptions(path), zerolog.Nop())
	require.NoError(t, err)

	require.NotNil(t, result.Payload.BenchmarkGrade)
	assert.Equal(t, string(cached.Grade), *result.Payload.BenchmarkGrade)
	assert.InDelta(t, cached.OverallScore, *result.Payload.BenchmarkOverall, 1e-9)
}

func TestCheckNoProfilesFails(t *testing.T) {
	at := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)
	snap := balancedWorkspace(at)
	snap.Profiles = nil
	snap.ActiveProfileID = ""
	path := writeWorkspace(t, snap)

	result, err := RunCheck(defaultOptions(path), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, ExitPolicyFailure, result.ExitCode)
	assert.Contains(t, result.Payload.PolicyFailures, "No profiles were found in workspace snapshot.")
	assert.Contains(t, result.Payload.GateFindings, "No active profile is available.")
}

func TestCheckExportsMarkdown(t *testing.T) {
	at := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)
	path := writeWorkspace(t, balancedWorkspace(at))
	exportPath := filepath.Join(t.TempDir(), "gate.md")

	opts := defaultOptions(path)
	opts.ExportMarkdownPath = exportPath

	_, err := RunCheck(opts, zerolog.Nop())
	require.NoError(t, err)
	assert.FileExists(t, exportPath)
}

func TestCheckMalformedWorkspaceIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.json")
	require.NoError(t, store.SaveText("{broken", path))

	_, err := RunCheck(defaultOptions(path), zerolog.Nop())
	require.Error(t, err)
}

func TestExitCodesAreDistinct(t *testing.T) {
	// Automation keys off these; a runtime failure must not masquerade
	// as a usage error.
	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitRuntimeFailure)
	assert.Equal(t, 2, ExitPolicyFailure)
	assert.Equal(t, 64, ExitUsage)
}

type fakeArchiver struct {
	benchmarks int
	gates      int
}

func (f *fakeArchiver) RecordBenchmark(r bench.Report, source string) (string, error) {
	f.benchmarks++
	return "fake-id", nil
}

func (f *fakeArchiver) RecordGate(r gate.Report) error {
	f.gates++
	return nil
}

func TestCheckRecordsToArchive(t *testing.T) {
	at := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)
	path := writeWorkspace(t, balancedWorkspace(at))

	arc := &fakeArchiver{}
	opts := defaultOptions(path)
	opts.Archive = arc

	_, err := RunCheck(opts, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, arc.benchmarks)
	assert.Equal(t, 1, arc.gates)
}

func TestRunBenchmarkPayload(t *testing.T) {
	payload := RunBenchmark(BenchmarkOptions{Preset: tuning.PresetBalanced}, zerolog.Nop())

	assert.Equal(t, 1, payload.SchemaVersion)
	assert.Equal(t, "balanced", payload.Preset)
	assert.Equal(t, "B", payload.Grade)
	assert.Len(t, payload.Scenarios, 4)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	for _, key := range []string{"overallScore", "consistencyScore", "qualityLevel", "estimatedDuration"} {
		assert.Contains(t, string(data), key)
	}
}

package agent

import (
	"time"

	"github.com/liquidframes/motioncore/internal/gate"
	"github.com/liquidframes/motioncore/internal/quality"
	"github.com/liquidframes/motioncore/internal/workspace"
)

// payloadSchemaVersion versions the JSON emitted to automation.
const payloadSchemaVersion = 1

// CheckPayload is the machine-readable check output. Field names are a
// contract with downstream automation.
type CheckPayload struct {
	SchemaVersion         int              `json:"schemaVersion"`
	GeneratedAt           string           `json:"generatedAt"`
	WorkspacePath         string           `json:"workspacePath"`
	ActiveProfile         *string          `json:"activeProfile"`
	ReleaseGateStatus     string           `json:"releaseGateStatus"`
	QualityLevel          string           `json:"qualityLevel"`
	BenchmarkGrade        *string          `json:"benchmarkGrade"`
	RunCount              int              `json:"runCount"`
	BenchmarkHistoryCount int              `json:"benchmarkHistoryCount"`
	Passed                bool             `json:"passed"`
	PolicyFailures        []string         `json:"policyFailures"`
	GateFindings          []string         `json:"gateFindings"`
	BenchmarkOverall      *float64         `json:"benchmarkOverallScore"`
	BenchmarkConsistency  *float64         `json:"benchmarkConsistencyScore"`
	RegressionStatus      *string          `json:"regressionStatus"`
	Thresholds            ThresholdPayload `json:"thresholds"`
}

// ThresholdPayload echoes the enforced policy back to the caller.
type ThresholdPayload struct {
	MinRuns        int    `json:"minRuns"`
	RequireGrade   string `json:"requireGrade"`
	RequireQuality string `json:"requireQuality"`
	AllowAttention bool   `json:"allowAttention"`
}

// BenchmarkPayload is the machine-readable benchmark output.
type BenchmarkPayload struct {
	SchemaVersion    int               `json:"schemaVersion"`
	GeneratedAt      string            `json:"generatedAt"`
	Preset           string            `json:"preset"`
	Grade            string            `json:"grade"`
	OverallScore     float64           `json:"overallScore"`
	ConsistencyScore float64           `json:"consistencyScore"`
	QualityLevel     string            `json:"qualityLevel"`
	Scenarios        []ScenarioPayload `json:"scenarios"`
}

// ScenarioPayload is one scenario's scores in benchmark output.
type ScenarioPayload struct {
	Name              string  `json:"name"`
	Trigger           string  `json:"trigger"`
	EstimatedDuration float64 `json:"estimatedDuration"`
	Score             float64 `json:"score"`
}

func missingWorkspacePayload(path string, opts CheckOptions) CheckPayload {
	return CheckPayload{
		SchemaVersion:     payloadSchemaVersion,
		GeneratedAt:       isoNow(),
		WorkspacePath:     path,
		ReleaseGateStatus: string(gate.StatusBlocked),
		QualityLevel:      string(quality.LevelUnstable),
		PolicyFailures:    []string{"Workspace snapshot not found."},
		GateFindings:      []string{"Expected snapshot at " + path + "."},
		Thresholds:        thresholdsFrom(opts),
	}
}

func noProfilePayload(path string, snap workspace.Snapshot, opts CheckOptions) CheckPayload {
	return CheckPayload{
		SchemaVersion:         payloadSchemaVersion,
		GeneratedAt:           isoNow(),
		WorkspacePath:         path,
		ReleaseGateStatus:     string(gate.StatusBlocked),
		QualityLevel:          string(quality.LevelUnstable),
		RunCount:              len(snap.Runs),
		BenchmarkHistoryCount: len(snap.BenchmarkHistory),
		PolicyFailures:        []string{"No profiles were found in workspace snapshot."},
		GateFindings:          []string{"No active profile is available."},
		Thresholds:            thresholdsFrom(opts),
	}
}

func thresholdsFrom(opts CheckOptions) ThresholdPayload {
	return ThresholdPayload{
		MinRuns:        opts.MinRuns,
		RequireGrade:   string(opts.RequireGrade),
		RequireQuality: string(opts.RequireQuality),
		AllowAttention: opts.AllowAttention,
	}
}

func findingMessages(r gate.Report) []string {
	out := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, f.Message)
	}
	return out
}

func isoNow() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

package workspace

import (
	"strings"
	"testing"
	"time"

	"github.com/liquidframes/motioncore/internal/bench"
	"github.com/liquidframes/motioncore/internal/run"
	"github.com/liquidframes/motioncore/internal/tuning"
)

const legacyPayload = `{
  "tuning": {
    "splitStiffness": 190,
    "splitDamping": 21,
    "settleStiffness": 150,
    "settleDamping": 15,
    "preSplitDelay": 0.3,
    "gestureCommitDelay": 0.1,
    "preSettleDelay": 0.5,
    "postSettleDelay": 0.4,
    "gestureThreshold": 0.6,
    "pullDistance": 200,
    "velocityScale": 150,
    "velocityInfluence": 0.7,
    "biasInfluence": 0.45
  },
  "runHistory": [
    {
      "id": "0c9a4e7e-1111-2222-3333-444455556666",
      "timestamp": "2026-03-01T10:00:00Z",
      "triggerRawValue": "gesture",
      "prepPeak": 0.8,
      "velocityPeak": 0.4,
      "biasPeak": 0.1,
      "preSplit": 0.3,
      "preSettle": 0.6,
      "settleTail": 0.4
    }
  ],
  "savedAt": "2026-03-01T10:00:05Z"
}`

func TestDecodeLegacySnapshot(t *testing.T) {
	s, err := DecodeSnapshot([]byte(legacyPayload))
	if err != nil {
		t.Fatalf("decode legacy payload: %v", err)
	}
	if s.SchemaVersion != SchemaVersion {
		t.Fatalf("expected migrated schema version %d, got %d", SchemaVersion, s.SchemaVersion)
	}
	if len(s.Profiles) != 0 {
		t.Fatalf("expected empty profile list, got %d", len(s.Profiles))
	}
	if s.ActiveProfileID != "" {
		t.Fatalf("expected no active profile, got %q", s.ActiveProfileID)
	}
	if len(s.BenchmarkHistory) != 0 || s.LatestBenchmark != nil {
		t.Fatalf("expected empty benchmark state")
	}
	if s.SelectedPreset != tuning.PresetBalanced {
		t.Fatalf("expected default preset, got %s", s.SelectedPreset)
	}
	if s.AutoAdapt {
		t.Fatalf("expected auto-adapt off by default")
	}
	if len(s.Runs) != 1 || s.Runs[0].Trigger != run.TriggerGesture {
		t.Fatalf("expected the single legacy run to survive, got %v", s.Runs)
	}
	if s.Tuning.SplitStiffness != 190 {
		t.Fatalf("expected tuning carried over, got %f", s.Tuning.SplitStiffness)
	}
}

func TestDecodeRejectsMalformedContainer(t *testing.T) {
	if _, err := DecodeSnapshot([]byte("{not json")); err == nil {
		t.Fatalf("expected hard decode failure")
	}
}

func TestEncodeDecodeKeepsProfileAndBaseline(t *testing.T) {
	now := time.Date(2026, 8, 14, 11, 0, 0, 0, time.UTC)
	report := bench.RunSuite(tuning.PresetBalanced.Tuning(), now)
	baseline := bench.NewBaseline(report)

	profile := NewProfile("Hero Card", "launch", []string{"spring"}, tuning.PresetBalanced.Tuning(), now)
	profile.Baseline = &baseline

	in := Snapshot{
		SchemaVersion:    SchemaVersion,
		SelectedPreset:   tuning.PresetBalanced,
		AutoAdapt:        true,
		Tuning:           tuning.PresetBalanced.Tuning(),
		Profiles:         []Profile{profile},
		ActiveProfileID:  profile.ID,
		BenchmarkHistory: []bench.Report{report},
		LatestBenchmark:  &report,
		SavedAt:          now,
	}

	data, err := EncodeSnapshot(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, key := range []string{"schemaVersion", "selectedPresetRawValue", "autoAdaptEnabled", "activeProfileID", "gradeRawValue", "scenarioScores"} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("expected key %q in payload", key)
		}
	}

	out, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.AutoAdapt || out.SelectedPreset != tuning.PresetBalanced {
		t.Fatalf("scalar state lost in round trip")
	}
	if out.ActiveProfileID != profile.ID {
		t.Fatalf("active profile pointer lost")
	}
	if len(out.Profiles) != 1 || out.Profiles[0].Baseline == nil {
		t.Fatalf("profile baseline lost")
	}
	if out.Profiles[0].Baseline.Grade != report.Grade {
		t.Fatalf("baseline grade mismatch: %s vs %s", out.Profiles[0].Baseline.Grade, report.Grade)
	}
	if out.LatestBenchmark == nil || len(out.LatestBenchmark.Scenarios) != len(report.Scenarios) {
		t.Fatalf("latest benchmark lost")
	}
}

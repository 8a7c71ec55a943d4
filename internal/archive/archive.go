// Package archive keeps a local history of benchmark reports and gate
// decisions in SQLite, so past verdicts stay queryable after the
// workspace's bounded in-file history has rolled over.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/liquidframes/motioncore/internal/bench"
	"github.com/liquidframes/motioncore/internal/gate"
)

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS benchmark_reports (
	report_id      TEXT PRIMARY KEY,
	source         TEXT NOT NULL,
	overall        REAL NOT NULL,
	consistency    REAL NOT NULL,
	grade          TEXT NOT NULL,
	scenarios_json TEXT NOT NULL,
	quality_level  TEXT NOT NULL,
	generated_at   TEXT NOT NULL,
	recorded_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS gate_decisions (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	profile_name  TEXT NOT NULL,
	status        TEXT NOT NULL,
	findings_json TEXT NOT NULL,
	recorded_at   TEXT NOT NULL
);
`

// #endregion schema

// #region archive-struct

// Archive manages the telemetry history in SQLite.
type Archive struct {
	db *sql.DB
}

// #endregion archive-struct

// #region constructor

// Open opens the SQLite database and runs migrations.
func Open(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Archive{db: db}, nil
}

// #endregion constructor

// #region close

// Close closes the underlying database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// #endregion close

// #region benchmark-rows

// BenchmarkRow is one archived benchmark report.
type BenchmarkRow struct {
	ReportID     string
	Source       string
	Overall      float64
	Consistency  float64
	Grade        bench.Grade
	Scenarios    []bench.ScenarioResult
	QualityLevel string
	GeneratedAt  time.Time
	RecordedAt   time.Time
}

// RecordBenchmark archives a report. Source names what produced it, for
// example the preset or profile the suite ran against.
func (a *Archive) RecordBenchmark(r bench.Report, source string) (string, error) {
	id := uuid.New().String()
	scenariosJSON, err := json.Marshal(r.Scenarios)
	if err != nil {
		return "", fmt.Errorf("marshal scenarios: %w", err)
	}

	_, err = a.db.Exec(
		`INSERT INTO benchmark_reports (report_id, source, overall, consistency, grade, scenarios_json, quality_level, generated_at, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, source, r.OverallScore, r.ConsistencyScore, string(r.Grade),
		string(scenariosJSON), string(r.Quality.Level),
		r.GeneratedAt.Format(time.RFC3339Nano), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert report: %w", err)
	}
	return id, nil
}

// ListBenchmarks returns the most recently archived reports.
func (a *Archive) ListBenchmarks(limit int) ([]BenchmarkRow, error) {
	rows, err := a.db.Query(
		`SELECT report_id, source, overall, consistency, grade, scenarios_json, quality_level, generated_at, recorded_at
		 FROM benchmark_reports ORDER BY recorded_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []BenchmarkRow
	for rows.Next() {
		var row BenchmarkRow
		var grade, scenariosJSON, generatedStr, recordedStr string

		if err := rows.Scan(&row.ReportID, &row.Source, &row.Overall, &row.Consistency,
			&grade, &scenariosJSON, &row.QualityLevel, &generatedStr, &recordedStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row.Grade = bench.Grade(grade)
		if err := json.Unmarshal([]byte(scenariosJSON), &row.Scenarios); err != nil {
			return nil, fmt.Errorf("unmarshal scenarios: %w", err)
		}
		row.GeneratedAt, _ = time.Parse(time.RFC3339Nano, generatedStr)
		row.RecordedAt, _ = time.Parse(time.RFC3339Nano, recordedStr)
		out = append(out, row)
	}
	return out, rows.Err()
}

// #endregion benchmark-rows

// #region gate-rows

// GateRow is one archived gate decision.
type GateRow struct {
	ProfileName string
	Status      gate.Status
	Findings    []gate.Finding
	RecordedAt  time.Time
}

// RecordGate archives a release gate decision.
func (a *Archive) RecordGate(r gate.Report) error {
	findingsJSON, err := json.Marshal(r.Findings)
	if err != nil {
		return fmt.Errorf("marshal findings: %w", err)
	}
	_, err = a.db.Exec(
		`INSERT INTO gate_decisions (profile_name, status, findings_json, recorded_at)
		 VALUES (?, ?, ?, ?)`,
		r.ProfileName, string(r.Status), string(findingsJSON),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

// ListGates returns the most recently archived gate decisions.
func (a *Archive) ListGates(limit int) ([]GateRow, error) {
	rows, err := a.db.Query(
		`SELECT profile_name, status, findings_json, recorded_at
		 FROM gate_decisions ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var out []GateRow
	for rows.Next() {
		var row GateRow
		var status, findingsJSON, recordedStr string

		if err := rows.Scan(&row.ProfileName, &status, &findingsJSON, &recordedStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row.Status = gate.Status(status)
		if err := json.Unmarshal([]byte(findingsJSON), &row.Findings); err != nil {
			return nil, fmt.Errorf("unmarshal findings: %w", err)
		}
		row.RecordedAt, _ = time.Parse(time.RFC3339Nano, recordedStr)
		out = append(out, row)
	}
	return out, rows.Err()
}

// #endregion gate-rows

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/liquidframes/motioncore/internal/archive"
	"github.com/liquidframes/motioncore/internal/store"
	"github.com/liquidframes/motioncore/internal/workspace"
)

// #region main

func main() {
	workspacePath := flag.String("workspace", "", "path to workspace.json")
	dbPath := flag.String("db", "", "path to telemetry archive (optional)")
	last := flag.Int("last", 10, "show N most recent entries")
	jsonOut := flag.Bool("json", false, "output as JSON instead of tables")
	flag.Parse()

	if *workspacePath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --workspace path/to/workspace.json [--db path/to/archive.db] [--last N] [--json]")
		os.Exit(64)
	}

	snap, err := store.Load(*workspacePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load workspace: %v\n", err)
		os.Exit(1)
	}

	if err := runWorkspaceSummary(snap, *last, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *dbPath != "" {
		if err := runArchiveSummary(*dbPath, *last, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region workspace-summary

type workspaceSummary struct {
	SchemaVersion  int             `json:"schema_version"`
	SelectedPreset string          `json:"selected_preset"`
	AutoAdapt      bool            `json:"auto_adapt"`
	ActiveProfile  string          `json:"active_profile"`
	ProfileCount   int             `json:"profile_count"`
	RunCount       int             `json:"run_count"`
	BenchmarkCount int             `json:"benchmark_count"`
	SavedAt        string          `json:"saved_at"`
	Profiles       []profileRow    `json:"profiles"`
	LatestGrade    string          `json:"latest_grade,omitempty"`
	Benchmarks     []benchmarkLine `json:"benchmarks,omitempty"`
}

type profileRow struct {
	Name        string `json:"name"`
	Tags        int    `json:"tags"`
	HasBaseline bool   `json:"has_baseline"`
	UpdatedAt   string `json:"updated_at"`
}

type benchmarkLine struct {
	GeneratedAt string  `json:"generated_at"`
	Grade       string  `json:"grade"`
	Overall     float64 `json:"overall"`
	Consistency float64 `json:"consistency"`
}

func runWorkspaceSummary(snap workspace.Snapshot, last int, jsonOut bool) error {
	active, _ := snap.ActiveProfile()

	out := workspaceSummary{
		SchemaVersion:  snap.SchemaVersion,
		SelectedPreset: string(snap.SelectedPreset),
		AutoAdapt:      snap.AutoAdapt,
		ActiveProfile:  active.Name,
		ProfileCount:   len(snap.Profiles),
		RunCount:       len(snap.Runs),
		BenchmarkCount: len(snap.BenchmarkHistory),
		SavedAt:        snap.SavedAt.Format(time.RFC3339),
	}
	for _, p := range snap.Profiles {
		out.Profiles = append(out.Profiles, profileRow{
			Name:        p.Name,
			Tags:        len(p.Tags),
			HasBaseline: p.Baseline != nil,
			UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
		})
	}
	if snap.LatestBenchmark != nil {
		out.LatestGrade = string(snap.LatestBenchmark.Grade)
	}
	history := snap.BenchmarkHistory
	if len(history) > last {
		history = history[:last]
	}
	for _, b := range history {
		out.Benchmarks = append(out.Benchmarks, benchmarkLine{
			GeneratedAt: b.GeneratedAt.Format(time.RFC3339),
			Grade:       string(b.Grade),
			Overall:     b.OverallScore,
			Consistency: b.ConsistencyScore,
		})
	}

	if jsonOut {
		return printJSON(out)
	}
	printWorkspaceTable(out)
	return nil
}

func printWorkspaceTable(out workspaceSummary) {
	fmt.Printf("Workspace (schema v%d, saved %s)\n", out.SchemaVersion, out.SavedAt)
	fmt.Printf("Preset: %s  AutoAdapt: %t  Runs: %d  Benchmarks: %d\n\n",
		out.SelectedPreset, out.AutoAdapt, out.RunCount, out.BenchmarkCount)

	fmt.Printf("%-28s  %-8s  %-8s  %s\n", "Profile", "Tags", "Baseline", "Updated")
	fmt.Printf("%-28s+-%-8s+-%-8s+-%s\n",
		"----------------------------", "--------", "--------", "--------------------")
	for _, p := range out.Profiles {
		marker := " "
		if p.Name == out.ActiveProfile {
			marker = "*"
		}
		fmt.Printf("%s%-27s  %-8d  %-8t  %s\n", marker, p.Name, p.Tags, p.HasBaseline, p.UpdatedAt)
	}

	if len(out.Benchmarks) > 0 {
		fmt.Printf("\n%-20s  %-5s  %8s  %11s\n", "Generated", "Grade", "Overall", "Consistency")
		fmt.Printf("%-20s+-%-5s+-%8s+-%11s\n",
			"--------------------", "-----", "--------", "-----------")
		for _, b := range out.Benchmarks {
			fmt.Printf("%-20s  %-5s  %8.1f  %11.1f\n", b.GeneratedAt, b.Grade, b.Overall, b.Consistency)
		}
	}
}

// #endregion workspace-summary

// #region archive-summary

type archiveSummary struct {
	Benchmarks []archiveBenchmarkRow `json:"benchmarks"`
	Gates      []archiveGateRow      `json:"gates"`
}

type archiveBenchmarkRow struct {
	Source     string  `json:"source"`
	Grade      string  `json:"grade"`
	Overall    float64 `json:"overall"`
	RecordedAt string  `json:"recorded_at"`
}

type archiveGateRow struct {
	Profile    string `json:"profile"`
	Status     string `json:"status"`
	Findings   int    `json:"findings"`
	RecordedAt string `json:"recorded_at"`
}

func runArchiveSummary(dbPath string, last int, jsonOut bool) error {
	arc, err := archive.Open(dbPath)
	if err != nil {
		return err
	}
	defer arc.Close()

	benchmarks, err := arc.ListBenchmarks(last)
	if err != nil {
		return err
	}
	gates, err := arc.ListGates(last)
	if err != nil {
		return err
	}

	out := archiveSummary{}
	for _, b := range benchmarks {
		out.Benchmarks = append(out.Benchmarks, archiveBenchmarkRow{
			Source:     b.Source,
			Grade:      string(b.Grade),
			Overall:    b.Overall,
			RecordedAt: b.RecordedAt.Format(time.RFC3339),
		})
	}
	for _, g := range gates {
		out.Gates = append(out.Gates, archiveGateRow{
			Profile:    g.ProfileName,
			Status:     string(g.Status),
			Findings:   len(g.Findings),
			RecordedAt: g.RecordedAt.Format(time.RFC3339),
		})
	}

	if jsonOut {
		return printJSON(out)
	}
	printArchiveTables(out)
	return nil
}

func printArchiveTables(out archiveSummary) {
	fmt.Printf("\nArchived benchmarks:\n")
	fmt.Printf("%-20s  %-5s  %8s  %s\n", "Source", "Grade", "Overall", "Recorded")
	fmt.Printf("%-20s+-%-5s+-%8s+-%s\n", "--------------------", "-----", "--------", "--------------------")
	for _, b := range out.Benchmarks {
		fmt.Printf("%-20s  %-5s  %8.1f  %s\n", b.Source, b.Grade, b.Overall, b.RecordedAt)
	}

	fmt.Printf("\nArchived gate decisions:\n")
	fmt.Printf("%-20s  %-10s  %8s  %s\n", "Profile", "Status", "Findings", "Recorded")
	fmt.Printf("%-20s+-%-10s+-%8s+-%s\n", "--------------------", "----------", "--------", "--------------------")
	for _, g := range out.Gates {
		fmt.Printf("%-20s  %-10s  %8d  %s\n", g.Profile, g.Status, g.Findings, g.RecordedAt)
	}
}

// #endregion archive-summary

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

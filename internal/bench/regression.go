package bench

// #region status

// RegressionStatus summarizes a report/baseline comparison.
type RegressionStatus string

const (
	RegressionPass    RegressionStatus = "pass"
	RegressionWarning RegressionStatus = "warning"
	RegressionFail    RegressionStatus = "fail"
)

// #endregion status

// #region thresholds

const (
	overallFail     = -6.0
	overallWarn     = -2.5
	consistencyFail = -8.0
	consistencyWarn = -4.0
	scenarioFail    = -12.0
	scenarioWarn    = -6.0
)

// #endregion thresholds

// #region regression

// Regression is the outcome of comparing a fresh report against a frozen
// baseline. Deltas are report minus baseline, so negative means worse.
type Regression struct {
	Status             RegressionStatus
	OverallDelta       float64
	ConsistencyDelta   float64
	WorstScenarioDelta float64
	Messages           []string
}

// Compare evaluates a report against a baseline. Scenarios absent from the
// baseline contribute a zero delta rather than counting against the report.
func Compare(report Report, baseline Baseline) Regression {
	overallDelta := report.OverallScore - baseline.OverallScore
	consistencyDelta := report.ConsistencyScore - baseline.ConsistencyScore

	worst := 0.0
	for _, sc := range report.Scenarios {
		base, ok := baseline.ScenarioScores[sc.Name]
		if !ok {
			continue
		}
		if delta := sc.Score - base; delta < worst {
			worst = delta
		}
	}

	status := RegressionPass
	if overallDelta < overallWarn || consistencyDelta < consistencyWarn || worst < scenarioWarn {
		status = RegressionWarning
	}
	if overallDelta < overallFail || consistencyDelta < consistencyFail || worst < scenarioFail {
		status = RegressionFail
	}

	var messages []string
	switch {
	case overallDelta < overallFail:
		messages = append(messages, "Overall score regressed significantly versus baseline.")
	case overallDelta < overallWarn:
		messages = append(messages, "Overall score slipped versus baseline.")
	case overallDelta > -overallWarn:
		messages = append(messages, "Overall score improved versus baseline.")
	}
	switch {
	case consistencyDelta < consistencyWarn:
		messages = append(messages, "Consistency regressed versus baseline.")
	case consistencyDelta > -consistencyWarn:
		messages = append(messages, "Consistency improved versus baseline.")
	}
	switch {
	case worst < scenarioFail:
		messages = append(messages, "A scenario regressed heavily versus baseline.")
	case worst < scenarioWarn:
		messages = append(messages, "A scenario regressed versus baseline.")
	}
	if len(messages) == 0 {
		messages = append(messages, "Benchmark scores are within baseline tolerance.")
	}

	return Regression{
		Status:             status,
		OverallDelta:       overallDelta,
		ConsistencyDelta:   consistencyDelta,
		WorstScenarioDelta: worst,
		Messages:           messages,
	}
}

// #endregion regression

package mux

import "animux/internal/history"

// Result is the outcome of one episode attempt.
type Result struct {
	Episode    int
	Outcome    history.Outcome
	OutputPath string
	Detail     string
}

// Stats aggregates a batch run.
type Stats struct {
	Mode    Mode
	Total   int
	Muxed   int
	DryRun  int
	Skipped int
	Failed  int
	Results []Result
}

func (s *Stats) add(result Result) {
	s.Results = append(s.Results, result)
	switch result.Outcome {
	case history.OutcomeMuxed:
		s.Muxed++
	case history.OutcomeDryRun:
		s.DryRun++
	case history.OutcomeSkipped:
		s.Skipped++
	case history.OutcomeFailed:
		s.Failed++
	}
}

// Succeeded reports whether the batch counts as successful. A dry run
// always is: every planned episode counts as processed, skips included,
// so rehearsing with incomplete assets still exits cleanly. A real run
// needs at least one muxed episode.
func (s Stats) Succeeded() bool {
	if s.Mode == ModeDryRun {
		return true
	}
	return s.Muxed > 0
}

package pipeline

import (
	"fmt"
	"time"

	"tmanalyzer/internal/analytics"
	"tmanalyzer/internal/config"
	"tmanalyzer/internal/dataprocessing"
	"tmanalyzer/internal/report"
	"tmanalyzer/pkg/contracts/domain"
)

// State is shared by the steps of one run. Each step reads what earlier
// steps produced and adds its own results.
type State struct {
	RunID     string
	Kind      Kind
	StartedAt time.Time
	Config    *config.Config
	Paths     *config.Paths

	Load   *dataprocessing.LoadResult
	Table  *domain.FilingTable
	Stats  dataprocessing.NormalizeStats
	Basic  *analytics.BasicResult
	Market *analytics.MarketResult

	// NoData is set when no input file produced a row.
	NoData bool
	// Outputs lists every file written, in order.
	Outputs []string
	// ChartsSkipped lists charts left out for lack of data.
	ChartsSkipped []string

	Steps []*StepState
}

// NewState creates the state of a run
func NewState(runID string, kind Kind, cfg *config.Config, paths *config.Paths) *State {
	return &State{
		RunID:     runID,
		Kind:      kind,
		StartedAt: time.Now(),
		Config:    cfg,
		Paths:     paths,
	}
}

// AddOutput records a written file
func (s *State) AddOutput(path string) {
	s.Outputs = append(s.Outputs, path)
}

// Step returns the state of a step by ID
func (s *State) Step(id string) (*StepState, bool) {
	for _, st := range s.Steps {
		if st.ID == id {
			return st, true
		}
	}
	return nil, false
}

// Meta describes the run for report headers
func (s *State) Meta() report.Meta {
	meta := report.Meta{
		RunID:        s.RunID,
		GeneratedAt:  s.StartedAt,
		Placeholders: s.Stats.PlaceholderNames,
	}
	if s.Paths != nil {
		meta.DataDir = s.Paths.DataDir
	}
	if s.Load != nil {
		meta.Files = len(s.Load.Files)
		for _, f := range s.Load.Failures {
			meta.Failures = append(meta.Failures, fmt.Sprintf("%s (%s)", f.Name, f.Reason))
		}
	}
	return meta
}

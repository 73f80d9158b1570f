package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tmanalyzer/internal/config"
	"tmanalyzer/internal/infrastructure"
	"tmanalyzer/internal/shared/testutil"
)

type fakeStep struct {
	BaseStep
	err   error
	calls *[]string
}

func (s *fakeStep) Execute(ctx context.Context, state *State) error {
	*s.calls = append(*s.calls, s.ID())
	return s.err
}

type noDataStep struct {
	fakeStep
}

func (s *noDataStep) OnNoData(ctx context.Context, state *State) error {
	*s.calls = append(*s.calls, "nodata:"+s.ID())
	return s.err
}

func newFake(id string, calls *[]string, err error) *fakeStep {
	return &fakeStep{BaseStep: NewBaseStep(id, "step "+id), err: err, calls: calls}
}

func noopTelemetry(t *testing.T) *infrastructure.OTelProviders {
	t.Helper()
	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfig{}, nil)
	require.NoError(t, err)
	return providers
}

// writeFilings creates a Korean and a US export spanning 2017 to 2021.
func writeFilings(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	var kr, us [][]interface{}
	seq := 1
	for year := 2017; year <= 2021; year++ {
		for i := 0; i < year-2015; i++ {
			kr = append(kr, testutil.FilingRow(seq, fmt.Sprintf("%d-%02d-10", year, i%12+1),
				"Blue Sky Cafe", "35", "커피, 음료/빵", "S2001|G0301"))
			seq++
		}
		us = append(us, testutil.FilingRow(seq, fmt.Sprintf("%d-07-01", year),
			"GREEN LEAF", "9", "software, computers", "G390802"))
		seq++
	}
	kr = append(kr, testutil.FilingRow(seq, "", "", "", "", ""))

	testutil.WriteFilingWorkbook(t, dir, "KR_DATA.xlsx", kr...)
	testutil.WriteFilingWorkbook(t, dir, "US_DATA.xlsx", us...)
	return dir
}

func newTestService(t *testing.T, dataDir string) (*Service, *testutil.BufferedSlogHandler) {
	t.Helper()

	cfg := config.Default()
	cfg.Input.DataDir = dataDir
	cfg.Output.BaseDir = filepath.Join(t.TempDir(), "outputs")
	cfg.Output.ExportCSV = true
	cfg.Output.ExportWorkbook = true
	cfg.Output.ExportSQLite = true

	paths, err := config.ResolvePaths(cfg)
	require.NoError(t, err)

	logger, handler := testutil.NewTestLogger(t)
	svc, err := NewService(cfg, paths, noopTelemetry(t), logger)
	require.NoError(t, err)
	return svc, handler
}

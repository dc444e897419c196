package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaplan/oncall/core/schedule"
	"github.com/rotaplan/oncall/infra/logger"
)

const serviceYAML = `schedule:
  name: Platform On-Call
  start_date: "2026-01-05"
  duration_months: 1
  layers:
    morning:
      name: Morning
      rotation_team: [Alice, Bob]
      time_windows:
        monday: {start: "08:00", end: "13:00"}
        tuesday: {start: "08:00", end: "13:00"}
    evening:
      name: Evening
      rotation_team: [Carol]
      time_windows:
        monday: {start: "13:00", end: "18:00"}
`

func newService(t *testing.T, yaml string, opts Options) *Service {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "rota.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o644))
	opts.ConfigPath = cfgPath
	if opts.OutputDir == "" {
		opts.OutputDir = filepath.Join(dir, "out")
	}
	if opts.Log == nil {
		opts.Log = logger.NopLogger{}
	}
	svc, err := New(opts)
	require.NoError(t, err)
	return svc
}

func TestServiceRun(t *testing.T) {
	now := time.Date(2026, time.January, 2, 10, 0, 0, 0, time.UTC)
	svc := newService(t, serviceYAML, Options{Now: now, GenerateICS: true})

	res, err := svc.Run()
	require.NoError(t, err)

	assert.Equal(t, "2026-01-05", res.Range.Start.Format("2006-01-02"))
	assert.Equal(t, "2026-02-05", res.Range.End.Format("2006-01-02"))
	assert.Equal(t, 3, res.People)
	assert.Greater(t, res.TotalShifts, 0)

	assert.Equal(t, "rota.xlsx", filepath.Base(res.Workbook))
	assert.FileExists(t, res.Workbook)
	assert.Equal(t, "rota.svg", filepath.Base(res.Timeline))
	assert.FileExists(t, res.Timeline)
	require.Len(t, res.ICSFiles, 3)
	for _, p := range res.ICSFiles {
		assert.FileExists(t, p)
	}
}

func TestServiceRunWithoutICS(t *testing.T) {
	svc := newService(t, serviceYAML, Options{Now: time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)})
	res, err := svc.Run()
	require.NoError(t, err)
	assert.Empty(t, res.ICSFiles)
}

func TestServiceRunDateOverrides(t *testing.T) {
	svc := newService(t, serviceYAML, Options{
		Now:       time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
		StartExpr: "2026-02-02",
		EndExpr:   "+1w",
	})
	res, err := svc.Run()
	require.NoError(t, err)
	// Relative end resolves against the overridden start.
	assert.Equal(t, "2026-02-02", res.Range.Start.Format("2006-01-02"))
	assert.Equal(t, "2026-02-09", res.Range.End.Format("2006-01-02"))
}

func TestServiceRunInvalidDateExpr(t *testing.T) {
	svc := newService(t, serviceYAML, Options{StartExpr: "+3q"})
	_, err := svc.Run()
	var derr *schedule.InvalidDateExprError
	require.True(t, errors.As(err, &derr))
	assert.Contains(t, derr.Error(), "+3q")
}

func TestServiceRunNoShifts(t *testing.T) {
	dummyYAML := `schedule:
  start_date: "2026-01-05"
  layers:
    ghost:
      dummy: true
      rotation_team: [Alice]
      time_windows:
        monday: {start: "08:00", end: "13:00"}
`
	svc := newService(t, dummyYAML, Options{Now: time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)})
	res, err := svc.Run()
	require.ErrorIs(t, err, schedule.ErrNoShifts)
	require.NotNil(t, res)
	assert.Zero(t, res.TotalShifts)
	// The empty workbook is still written; exporters tolerate zero shifts.
	assert.FileExists(t, res.Workbook)
	assert.Empty(t, res.Timeline)
}

func TestServiceRunEmptyRangeWarnsAndContinues(t *testing.T) {
	svc := newService(t, serviceYAML, Options{
		Now:       time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
		StartExpr: "2026-03-01",
		EndExpr:   "2026-02-01",
	})
	res, err := svc.Run()
	require.ErrorIs(t, err, schedule.ErrNoShifts)
	require.NotNil(t, res)
	assert.Zero(t, res.TotalShifts)
}

func TestServiceConfigNotFound(t *testing.T) {
	_, err := New(Options{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml"), Log: logger.NopLogger{}})
	require.Error(t, err)
}

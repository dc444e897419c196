package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `schedule:
  name: Platform On-Call
  description: Weekday coverage
  start_date: "2026-01-05"
  duration_months: 1
  layers:
    late_shift:
      name: Late Shift
      rotation_team: [Alice, Bob]
      time_windows:
        monday: {start: "13:00", end: "18:00"}
        tuesday: {start: "13:00", end: "18:00", dummy: true}
    early_shift:
      name: Early Shift
      rotation_team: [Carol]
      time_windows:
        monday: {start: "08:00", end: "13:00"}
`

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "sched.yaml", sampleYAML))
	require.NoError(t, err)

	sc := cfg.Schedule
	assert.Equal(t, "Platform On-Call", sc.Name)
	assert.Equal(t, "2026-01-05", sc.StartDate)
	assert.Equal(t, 1, sc.DurationMonths)
	require.Len(t, sc.Layers, 2)

	late := sc.Layers["late_shift"]
	assert.Equal(t, "late_shift", late.ID)
	assert.Equal(t, []string{"Alice", "Bob"}, late.RotationTeam)
	assert.True(t, late.TimeWindows["tuesday"].Dummy)
}

func TestLoadPreservesLayerDeclarationOrder(t *testing.T) {
	cfg, err := Load(writeConfig(t, "sched.yaml", sampleYAML))
	require.NoError(t, err)

	layers := cfg.Schedule.OrderedLayers()
	require.Len(t, layers, 2)
	// late_shift is declared first even though early_shift sorts first.
	assert.Equal(t, "late_shift", layers[0].ID)
	assert.Equal(t, "early_shift", layers[1].ID)
}

func TestLoadJSON(t *testing.T) {
	data := `{"schedule":{"name":"JSON Schedule","layers":{"l1":{"rotation_team":["a"],"time_windows":{"monday":{"start":"08:00","end":"10:00"}}}}}}`
	cfg, err := Load(writeConfig(t, "sched.json", data))
	require.NoError(t, err)
	assert.Equal(t, "JSON Schedule", cfg.Schedule.Name)
	layers := cfg.Schedule.OrderedLayers()
	require.Len(t, layers, 1)
	assert.Equal(t, "l1", layers[0].ID)
}

func TestLoadDefaults(t *testing.T) {
	data := `schedule:
  layers:
    l1:
      rotation_team: [a]
      time_windows:
        monday: {start: "08:00", end: "10:00"}
`
	cfg, err := Load(writeConfig(t, "sched.yaml", data))
	require.NoError(t, err)
	assert.Equal(t, "On-Call Schedule", cfg.Schedule.Name)
	assert.Equal(t, 3, cfg.Schedule.DurationMonths)
}

func TestLoadNormalizesLegacyLayerShape(t *testing.T) {
	data := `schedule:
  layers:
    legacy:
      rotation_team: [a]
      days: [Monday, Friday]
      time_window: {start: "08:00", end: "13:00"}
`
	cfg, err := Load(writeConfig(t, "sched.yaml", data))
	require.NoError(t, err)
	layer := cfg.Schedule.Layers["legacy"]
	require.Len(t, layer.TimeWindows, 2)
	assert.Equal(t, "08:00", layer.TimeWindows["friday"].Start)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ONCALL_SCHEDULE__NAME", "Overridden")
	cfg, err := Load(writeConfig(t, "sched.yaml", sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "Overridden", cfg.Schedule.Name)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	var nferr *NotFoundError
	require.True(t, errors.As(err, &nferr))
}

func TestLoadMissingScheduleKey(t *testing.T) {
	_, err := Load(writeConfig(t, "sched.yaml", "other: {}\n"))
	var inv *InvalidError
	require.True(t, errors.As(err, &inv))
}

func TestLoadNoLayers(t *testing.T) {
	_, err := Load(writeConfig(t, "sched.yaml", "schedule:\n  name: Empty\n"))
	var inv *InvalidError
	require.True(t, errors.As(err, &inv))
	assert.Contains(t, inv.Error(), "no layers")
}

func TestLoadRejectsMalformedWindow(t *testing.T) {
	data := `schedule:
  layers:
    l1:
      rotation_team: [a]
      time_windows:
        monday: {start: "8:00", end: "10:00"}
`
	_, err := Load(writeConfig(t, "sched.yaml", data))
	var inv *InvalidError
	require.True(t, errors.As(err, &inv))
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load(writeConfig(t, "sched.toml", "x = 1\n"))
	require.Error(t, err)
}

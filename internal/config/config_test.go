package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brafe/qc/internal/bend"
	"github.com/brafe/qc/internal/loi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("QC_OPERATOR", "")
	t.Setenv("QC_REPORT_DIR", "")
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, Dir), 0755))
	data := []byte("operator: alice\nbend:\n  min_strength: 300\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFile), data, 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "alice", cfg.Operator)
	assert.Equal(t, 300.0, cfg.Bend.MinStrength)
	assert.Equal(t, 100.0, cfg.Bend.SupportSpan)
	assert.Equal(t, bend.UnitKiloNewton, cfg.Bend.ForceUnit)
	assert.Equal(t, 0.45, cfg.Dimensional.Tolerance)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfg := Default()
	cfg.Operator = "bob"
	cfg.Bend.ForceUnit = bend.UnitNewton
	require.NoError(t, Save(dir, cfg))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("QC_OPERATOR", "carol")
	t.Setenv("QC_REPORT_DIR", "/tmp/qc-reports")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "carol", cfg.Operator)
	assert.Equal(t, "carol", cfg.ResolveOperator())
	assert.Equal(t, "/tmp/qc-reports", cfg.ResolveReportDir("/work"))
}

func TestUpdateValidatesAndPersists(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	err := Update(dir, func(c *Config) error { return c.Set("dim.tolerance", "0.5") })
	require.NoError(t, err)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Dimensional.Tolerance)

	err = Update(dir, func(c *Config) error { return c.Set("bend.width", "5") })
	assert.ErrorIs(t, err, bend.ErrInvalidInput)

	cfg, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 22.4, cfg.Bend.Width, "invalid update must not be saved")
}

func TestUpdateRejectsNonFiniteLimits(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	for _, key := range []string{"loi.optimal_max", "loi.optimal_min", "loi.sample_max"} {
		for _, val := range []string{"NaN", "Inf"} {
			err := Update(dir, func(c *Config) error { return c.Set(key, val) })
			assert.ErrorIs(t, err, loi.ErrInvalidInput, "%s=%s", key, val)
		}
	}

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default().LOI, cfg.LOI)
}

func TestGetSetEveryKey(t *testing.T) {
	cfg := Default()
	for _, key := range Keys {
		val, err := cfg.Get(key)
		require.NoError(t, err, key)
		require.NoError(t, cfg.Set(key, val), key)
	}
	assert.Equal(t, Default(), cfg)
}

func TestSetRejectsBadValues(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.Set("nope", "1"), ErrUnknownKey)
	assert.ErrorIs(t, cfg.Set("dim.tolerance", "wide"), ErrInvalidValue)
	assert.ErrorIs(t, cfg.Set("bend.force_unit", "lbf"), bend.ErrInvalidInput)

	_, err := cfg.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.False(t, IsValidKey("nope"))
	assert.True(t, IsValidKey("loi.optimal_max"))
}

func TestDelimiterRune(t *testing.T) {
	tests := map[string]rune{"": ',', ";": ';', "tab": '\t', `\t`: '\t'}
	for in, want := range tests {
		got, err := BendConfig{Delimiter: in}.DelimiterRune()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := BendConfig{Delimiter: ";;"}.DelimiterRune()
	assert.Error(t, err)
}

func TestResolveOperatorFallsBackToLogin(t *testing.T) {
	t.Setenv("USER", "dave")
	cfg := Default()
	assert.Equal(t, "dave", cfg.ResolveOperator())
}

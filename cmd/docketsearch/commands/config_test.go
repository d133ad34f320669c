package commands

import (
	"docketsearch/internal/scrapers/ujs/cp"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadConfigDefaults(t *testing.T) {
	cfg, err := ReadConfig(filepath.Join(t.TempDir(), "docketsearch.json5"))
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)

	opts, err := cfg.Options()
	require.NoError(t, err)
	require.Equal(t, cp.DefaultEndpoint, opts.CPEndpoint)
	require.Equal(t, time.Second*30, opts.Env.Session.Timeout)
	require.Equal(t, time.Duration(0), opts.Env.TimeBudget)
	require.NotNil(t, opts.Counties)
}

func TestReadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docketsearch.json5")
	err := os.WriteFile(path, []byte(`{
		time_budget: "90s",
		max_concurrency: 4,
		county_table: "counties.csv",
	}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "counties.csv"), []byte("County,regex\nAllegheny,^05\\d{3}$\n"), 0600)
	require.NoError(t, err)

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.MaxConcurrency)
	require.Equal(t, 8080, cfg.ListenPort)

	cfg.CountyTable = filepath.Join(dir, cfg.CountyTable)
	opts, err := cfg.Options()
	require.NoError(t, err)
	require.Equal(t, time.Second*90, opts.Env.TimeBudget)
	require.Equal(t, 4, opts.MaxConcurrency)

	county, err := opts.Counties.Lookup("05", "101")
	require.NoError(t, err)
	require.Equal(t, "Allegheny", county)
}

func TestConfigOptionsInvalid(t *testing.T) {
	cfg := defaultConfig()
	cfg.TimeBudget = "soon"
	_, err := cfg.Options()
	require.Error(t, err)

	cfg = defaultConfig()
	cfg.CountyTable = filepath.Join(t.TempDir(), "missing.csv")
	_, err = cfg.Options()
	require.Error(t, err)
}

func TestParseNameArgs(t *testing.T) {
	firstName, lastName, dob, court = "John", "Smith", "1970-01-31", "mdj"
	q, systems, err := parseNameArgs()
	require.NoError(t, err)
	require.Equal(t, "Smith", q.Last)
	require.Equal(t, time.Date(1970, 1, 31, 0, 0, 0, 0, time.UTC), q.DOB)
	require.Len(t, systems, 1)

	dob = "31/01/1970"
	_, _, err = parseNameArgs()
	require.Error(t, err)
}

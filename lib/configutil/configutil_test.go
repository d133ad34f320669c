package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string `json:"name"`
	Port    int    `json:"port"`
	Verbose bool   `json:"verbose"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{
		// comments are allowed
		name: "base",
		port: 8080,
	}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{ port: 9090 }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, "base", cfg.Name)
	require.Equal(t, 9090, cfg.Port)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nothing.json5"))
	require.True(t, os.IsNotExist(err))
}

func TestReadConfigWithDefaults(t *testing.T) {
	dir := t.TempDir()
	defaults := testConfig{Name: "default", Port: 1}

	cfg, err := ReadConfigWithDefaults(filepath.Join(dir, "app.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	writeFile(t, filepath.Join(dir, "app.json5"), `{ port: 2 }`)
	cfg, err = ReadConfigWithDefaults(filepath.Join(dir, "app.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, "default", cfg.Name)
	require.Equal(t, 2, cfg.Port)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{ port: `)

	_, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.Error(t, err)
	require.False(t, os.IsNotExist(err))
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the global config dir and working directory at empty
// temp dirs and clears TODOLIST_* variables. It returns both dirs.
func isolate(t *testing.T) (global, local string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{EnvAPIURL, EnvLogLevel, EnvLogFormat, EnvTheme, EnvGroup} {
		t.Setenv(k, "")
	}

	global = filepath.Join(home, ".config", GlobalConfigDir)
	require.NoError(t, os.MkdirAll(global, 0o755))

	local = t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(local))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return global, local
}

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "classic", cfg.Theme)
	assert.False(t, cfg.Group)
	assert.Empty(t, cfg.Files)
	for _, f := range Fields() {
		assert.Equal(t, SourceDefault, cfg.Sources[f], f)
	}
}

func TestLoad_Precedence(t *testing.T) {
	global, local := isolate(t)

	write(t, filepath.Join(global, "config.yaml"), `
apiUrl: http://global:1
logLevel: info
theme: neon
`)
	write(t, filepath.Join(local, ".todolist.toml"), `
api_url = "http://local:2"
log_level = "debug"
`)
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load("", Overrides{APIURL: ptr("http://flag:3/")})
	require.NoError(t, err)

	assert.Equal(t, "http://flag:3", cfg.APIURL)
	assert.Equal(t, SourceFlag, cfg.Sources["apiUrl"])
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, SourceEnv, cfg.Sources["logLevel"])
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, SourceGlobal, cfg.Sources["theme"])
	assert.Equal(t, SourceDefault, cfg.Sources["logFormat"])
	assert.Len(t, cfg.Files, 2)
}

func TestLoad_ExplicitPathReplacesLocal(t *testing.T) {
	_, local := isolate(t)
	write(t, filepath.Join(local, ".todolistrc.yaml"), "theme: neon\n")

	other := filepath.Join(t.TempDir(), "custom.yml")
	write(t, other, "theme: mono\ngroup: true\n")

	cfg, err := Load(other, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
	assert.True(t, cfg.Group)
	assert.Equal(t, []string{other}, cfg.Files)
}

func TestLoad_EnvGroup(t *testing.T) {
	isolate(t)
	t.Setenv(EnvGroup, "yes")

	cfg, err := Load("", Overrides{})
	require.NoError(t, err)
	assert.True(t, cfg.Group)
	assert.Equal(t, SourceEnv, cfg.Sources["group"])

	cfg, err = Load("", Overrides{Group: ptr(false)})
	require.NoError(t, err)
	assert.False(t, cfg.Group)
	assert.Equal(t, SourceFlag, cfg.Sources["group"])
}

func TestLoad_NormalizesCase(t *testing.T) {
	isolate(t)
	t.Setenv(EnvTheme, "MONO")

	cfg, err := Load("", Overrides{LogFormat: ptr("JSON")})
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EmptyYAMLFile(t *testing.T) {
	_, local := isolate(t)
	write(t, filepath.Join(local, ".todolistrc.yml"), "\n")

	cfg, err := Load("", Overrides{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, cfg.Theme)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), Overrides{})
	var fe *FileError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BrokenFile(t *testing.T) {
	_, local := isolate(t)
	write(t, filepath.Join(local, ".todolist.toml"), "api_url = [")

	_, err := Load("", Overrides{})
	var fe *FileError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Path, ".todolist.toml")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		o     Overrides
		field string
	}{
		{"bad url", Overrides{APIURL: ptr("localhost:8000")}, "apiUrl"},
		{"bad level", Overrides{LogLevel: ptr("loud")}, "logLevel"},
		{"bad format", Overrides{LogFormat: ptr("xml")}, "logFormat"},
		{"bad theme", Overrides{Theme: ptr("pink")}, "theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load("", tt.o)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			require.Len(t, ve.Problems, 1)
			assert.Equal(t, tt.field, ve.Problems[0].Field)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestString_ShowsSources(t *testing.T) {
	isolate(t)
	cfg, err := Load("", Overrides{Theme: ptr("neon")})
	require.NoError(t, err)

	out := cfg.String()
	assert.Contains(t, out, "neon")
	assert.Contains(t, out, "(flag)")
	assert.Contains(t, out, "(default)")
}

func TestSearchPaths(t *testing.T) {
	global, local := isolate(t)
	paths := SearchPaths()
	assert.Contains(t, paths, filepath.Join(global, "config.toml"))
	assert.Contains(t, paths, filepath.Join(local, ".todolistrc.yaml"))
}

func ptr[T any](v T) *T { return &v }

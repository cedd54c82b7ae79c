package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// GlobalConfigDir is the directory under os.UserConfigDir for global config.
const GlobalConfigDir = "todolist"

// LocalConfigFileNames are searched in the working directory, in order.
var LocalConfigFileNames = []string{".todolistrc.yaml", ".todolistrc.yml", ".todolist.toml"}

// GlobalConfigFileNames are searched in the global config dir, in order.
var GlobalConfigFileNames = []string{"config.yaml", "config.yml", "config.toml"}

// FileError is a config file that could not be read or parsed.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }
func (e *FileError) Unwrap() error { return e.Err }

// Load builds the effective configuration. When explicitPath is set it
// replaces the local config file search; the global file still applies.
func Load(explicitPath string, o Overrides) (*Config, error) {
	cfg := Default()

	if p := FindGlobalConfig(); p != "" {
		if err := cfg.loadFile(p, SourceGlobal); err != nil {
			return nil, err
		}
	}

	local := explicitPath
	if local == "" {
		local = FindLocalConfig()
	}
	if local != "" {
		if err := cfg.loadFile(local, SourceLocal); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.applyOverrides(o)
	cfg.normalize()

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path, source string) error {
	fc, err := loadConfigFile(path)
	if err != nil {
		return err
	}
	c.applyFile(fc, source)
	c.Files = append(c.Files, path)
	return nil
}

// loadConfigFile decodes a YAML or TOML file, picked by extension.
func loadConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&fc); err != nil {
			return nil, &FileError{Path: path, Err: err}
		}
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return &fc, nil
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, &FileError{Path: path, Err: err}
		}
	}
	return &fc, nil
}

// FindLocalConfig returns the first local config file in the working
// directory, or "".
func FindLocalConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return firstExisting(cwd, LocalConfigFileNames)
}

// FindGlobalConfig returns the first global config file, or "".
func FindGlobalConfig() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return firstExisting(filepath.Join(dir, GlobalConfigDir), GlobalConfigFileNames)
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		p := filepath.Join(dir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// SearchPaths lists every location Load looks at, global first.
func SearchPaths() []string {
	var out []string
	if dir, err := os.UserConfigDir(); err == nil {
		for _, name := range GlobalConfigFileNames {
			out = append(out, filepath.Join(dir, GlobalConfigDir, name))
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		for _, name := range LocalConfigFileNames {
			out = append(out, filepath.Join(cwd, name))
		}
	}
	return out
}

// String renders the effective configuration with value sources.
func (c *Config) String() string {
	var b strings.Builder
	for _, f := range Fields() {
		fmt.Fprintf(&b, "%-10s %-28s (%s)\n", f, c.Get(f), c.Sources[f])
	}
	return b.String()
}

// Package config loads the todolist client configuration.
//
// Values are layered, lowest priority first:
//  1. Defaults
//  2. Global config file (<user config dir>/todolist/config.yaml|yml|toml)
//  3. Local config file (.todolistrc.yaml|yml or .todolist.toml in the working directory)
//  4. Environment variables (TODOLIST_*)
//  5. Command-line flags
//
// The source of every value is tracked so `todolist config` can explain it.
package config

import (
	"os"
	"strings"

	"github.com/idilsaglam/todolist/internal/apiclient"
)

// Config is the effective client configuration.
type Config struct {
	APIURL    string `yaml:"apiUrl" toml:"api_url" json:"apiUrl"`
	LogLevel  string `yaml:"logLevel" toml:"log_level" json:"logLevel"`
	LogFormat string `yaml:"logFormat" toml:"log_format" json:"logFormat"`
	Theme     string `yaml:"theme" toml:"theme" json:"theme"`
	// Group makes `ls` split pending and done items by default.
	Group bool `yaml:"group" toml:"group" json:"group"`

	// Sources maps field keys (see Fields) to where the value came from.
	Sources map[string]string `yaml:"-" toml:"-" json:"-"`
	// Files lists the config files that were applied, in order.
	Files []string `yaml:"-" toml:"-" json:"-"`
}

// Value sources.
const (
	SourceDefault = "default"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Defaults.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultTheme     = "classic"
)

// Environment variables.
const (
	EnvAPIURL    = "TODOLIST_API_URL"
	EnvLogLevel  = "TODOLIST_LOG_LEVEL"
	EnvLogFormat = "TODOLIST_LOG_FORMAT"
	EnvTheme     = "TODOLIST_THEME"
	EnvGroup     = "TODOLIST_GROUP"
)

// Fields lists the configurable keys in display order.
func Fields() []string {
	return []string{"apiUrl", "logLevel", "logFormat", "theme", "group"}
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		APIURL:    apiclient.DefaultBaseURL,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Theme:     DefaultTheme,
		Sources:   make(map[string]string),
	}
	for _, f := range Fields() {
		cfg.Sources[f] = SourceDefault
	}
	return cfg
}

// Get returns the display value of a field key.
func (c *Config) Get(field string) string {
	switch field {
	case "apiUrl":
		return c.APIURL
	case "logLevel":
		return c.LogLevel
	case "logFormat":
		return c.LogFormat
	case "theme":
		return c.Theme
	case "group":
		if c.Group {
			return "true"
		}
		return "false"
	}
	return ""
}

// fileConfig is what a config file may set. Pointers tell unset from zero.
type fileConfig struct {
	APIURL    *string `yaml:"apiUrl" toml:"api_url"`
	LogLevel  *string `yaml:"logLevel" toml:"log_level"`
	LogFormat *string `yaml:"logFormat" toml:"log_format"`
	Theme     *string `yaml:"theme" toml:"theme"`
	Group     *bool   `yaml:"group" toml:"group"`
}

func (c *Config) applyFile(fc *fileConfig, source string) {
	setStr := func(dst *string, v *string, key string) {
		if v != nil && strings.TrimSpace(*v) != "" {
			*dst = strings.TrimSpace(*v)
			c.Sources[key] = source
		}
	}
	setStr(&c.APIURL, fc.APIURL, "apiUrl")
	setStr(&c.LogLevel, fc.LogLevel, "logLevel")
	setStr(&c.LogFormat, fc.LogFormat, "logFormat")
	setStr(&c.Theme, fc.Theme, "theme")
	if fc.Group != nil {
		c.Group = *fc.Group
		c.Sources["group"] = source
	}
}

func (c *Config) applyEnv() {
	setStr := func(dst *string, env, key string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
			c.Sources[key] = SourceEnv
		}
	}
	setStr(&c.APIURL, EnvAPIURL, "apiUrl")
	setStr(&c.LogLevel, EnvLogLevel, "logLevel")
	setStr(&c.LogFormat, EnvLogFormat, "logFormat")
	setStr(&c.Theme, EnvTheme, "theme")
	if v := strings.TrimSpace(os.Getenv(EnvGroup)); v != "" {
		c.Group = boolFromString(v)
		c.Sources["group"] = SourceEnv
	}
}

// Overrides carries flag values; nil fields were not given.
type Overrides struct {
	APIURL    *string
	LogLevel  *string
	LogFormat *string
	Theme     *string
	Group     *bool
}

func (c *Config) applyOverrides(o Overrides) {
	fc := fileConfig(o)
	c.applyFile(&fc, SourceFlag)
}

// normalize lowercases the enumerated fields.
func (c *Config) normalize() {
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
	c.Theme = strings.ToLower(c.Theme)
}

func boolFromString(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

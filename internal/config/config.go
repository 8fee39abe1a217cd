// Package config provides configuration management for toolrun.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultConfigDir  = ".config/toolrun"
	DefaultConfigFile = "config.yaml"
	DefaultDataDir    = ".local/share/toolrun"
)

// Resolution modes.
const (
	ModeLocator = "locator"
	ModeLegacy  = "legacy"
)

// Sentinel errors for configuration operations.
var (
	ErrInvalidKey   = errors.New("invalid configuration key")
	ErrInvalidMode  = errors.New("invalid resolution mode")
	ErrInvalidValue = errors.New("invalid configuration value")
	ErrUnknownTool  = errors.New("unknown tool")
	ErrNoEditor     = errors.New("$EDITOR environment variable not set")
)

// validModes contains the allowed resolution modes (unexported).
var validModes = map[string]bool{
	ModeLocator: true,
	ModeLegacy:  true,
}

// validKeys is built once from Config struct reflection.
var validKeys = buildValidKeys()

// toolKeys are the field keys of a tools.<name> entry.
var toolKeys = buildToolKeys()

// validate is the shared validator instance.
var validate = validator.New()

// Config represents the full toolrun configuration.
type Config struct {
	Resolution ResolutionConfig      `mapstructure:"resolution" yaml:"resolution" validate:"required"`
	Defaults   DefaultsConfig        `mapstructure:"defaults" yaml:"defaults"`
	Storage    StorageConfig         `mapstructure:"storage" yaml:"storage" validate:"required"`
	Tools      map[string]ToolConfig `mapstructure:"tools" yaml:"tools" validate:"dive,keys,required,endkeys"`
}

// ResolutionConfig controls how executables are found.
type ResolutionConfig struct {
	// Mode selects the locator registry or the legacy tools-dir and PATH
	// search.
	Mode string `mapstructure:"mode" yaml:"mode" validate:"required,oneof=locator legacy"`

	// ToolsDir is the local tools directory searched in legacy mode.
	ToolsDir string `mapstructure:"tools_dir" yaml:"tools_dir"`

	// SearchPaths are directories the locator globs for executables.
	SearchPaths []string `mapstructure:"search_paths" yaml:"search_paths"`

	// Registered are explicit executable paths known to the locator.
	Registered []string `mapstructure:"registered" yaml:"registered"`
}

// DefaultsConfig holds values applied to every invocation.
type DefaultsConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"gte=0"`
}

// StorageConfig holds storage location configuration.
type StorageConfig struct {
	Logs string `mapstructure:"logs" yaml:"logs" validate:"required"`
}

// ToolConfig describes a tool run by the generic runner.
type ToolConfig struct {
	Executables      []string       `mapstructure:"executables" yaml:"executables" validate:"required,min=1,dive,required"`
	AlternativePaths []string       `mapstructure:"alternative_paths" yaml:"alternative_paths,omitempty"`
	WorkingDirectory string         `mapstructure:"working_directory" yaml:"working_directory,omitempty"`
	Env              []string       `mapstructure:"env" yaml:"env,omitempty" validate:"dive,required,contains=="`
	Secrets          []string       `mapstructure:"secrets" yaml:"secrets,omitempty" validate:"dive,required,excludes=="`
	Timeout          time.Duration  `mapstructure:"timeout" yaml:"timeout,omitempty" validate:"gte=0"`
	SuccessCodes     []int          `mapstructure:"success_codes" yaml:"success_codes,omitempty"`
	Args             []string       `mapstructure:"args" yaml:"args,omitempty"`
	Flags            map[string]any `mapstructure:"flags" yaml:"flags,omitempty"`
}

// Validate checks the configuration for errors using struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Tool returns the tool entry called name. Tool names are case-insensitive.
func (c *Config) Tool(name string) (ToolConfig, error) {
	tc, ok := c.Tools[strings.ToLower(name)]
	if !ok {
		return ToolConfig{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return tc, nil
}

// EnvMap parses the KEY=VALUE entries of Env.
func (t ToolConfig) EnvMap() map[string]string {
	out := make(map[string]string, len(t.Env))
	for _, kv := range t.Env {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// Loader provides configuration loading and saving.
type Loader struct {
	v       *viper.Viper
	path    string
	homeDir string
}

// NewLoader creates a new configuration loader.
func NewLoader() (*Loader, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}

	configPath := filepath.Join(home, DefaultConfigDir, DefaultConfigFile)

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Environment variable binding
	v.SetEnvPrefix("TOOLRUN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("resolution.mode", "TOOLRUN_RESOLUTION_MODE")
	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("resolution.tools_dir", "TOOLRUN_TOOLS_DIR")
	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("defaults.timeout", "TOOLRUN_TIMEOUT")
	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("storage.logs", "TOOLRUN_LOGS_DIR")

	l := &Loader{
		v:       v,
		path:    configPath,
		homeDir: home,
	}

	l.setDefaults()

	return l, nil
}

// setDefaults sets all default configuration values using Viper.
func (l *Loader) setDefaults() {
	l.v.SetDefault("resolution.mode", ModeLegacy)
	l.v.SetDefault("resolution.tools_dir", "tools")
	l.v.SetDefault("resolution.search_paths", []string{})
	l.v.SetDefault("resolution.registered", []string{})
	l.v.SetDefault("defaults.timeout", "0s")
	l.v.SetDefault("storage.logs", "~/.local/share/toolrun/logs")
}

// Load reads the configuration file, creating defaults if it doesn't exist.
func (l *Loader) Load() (*Config, error) {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		if err := l.createDefault(); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Expand paths
	cfg.Storage.Logs = l.expandPath(cfg.Storage.Logs)
	for i, p := range cfg.Resolution.SearchPaths {
		cfg.Resolution.SearchPaths[i] = l.expandPath(p)
	}
	for i, p := range cfg.Resolution.Registered {
		cfg.Resolution.Registered[i] = l.expandPath(p)
	}

	return &cfg, nil
}

// Path returns the configuration file path.
func (l *Loader) Path() string {
	return l.path
}

// Get returns a configuration value by dot-notation key.
func (l *Loader) Get(key string) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return l.v.Get(key), nil
}

// AllSettings returns the merged configuration as nested maps.
func (l *Loader) AllSettings() map[string]any {
	return l.v.AllSettings()
}

// Set sets a configuration value by dot-notation key and writes the file.
// List values are given comma separated.
func (l *Loader) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	if key == "resolution.mode" && !validModes[value] {
		return fmt.Errorf("%w: %s (valid: locator, legacy)", ErrInvalidMode, value)
	}

	if key == "defaults.timeout" || strings.HasSuffix(key, ".timeout") {
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: %s: %q is not a duration", ErrInvalidValue, key, value)
		}
	}

	l.v.Set(key, value)
	return l.v.WriteConfig()
}

// createDefault writes the default configuration file using Viper.
func (l *Loader) createDefault() error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	return l.v.SafeWriteConfigAs(l.path)
}

// expandPath replaces ~ with the home directory.
func (l *Loader) expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(l.homeDir, path[2:])
	}
	if path == "~" {
		return l.homeDir
	}
	return path
}

// ValidateKey checks if a key is a valid configuration key.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}

	if validKeys[key] {
		return nil
	}

	// tools.<name> and tools.<name>.<field>
	if strings.HasPrefix(key, "tools.") {
		parts := strings.SplitN(key, ".", 3)
		if parts[1] == "" {
			return fmt.Errorf("%w: %s", ErrInvalidKey, key)
		}
		if len(parts) == 2 || toolKeys[parts[2]] {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrInvalidKey, key)
}

// buildValidKeys builds the set of valid keys from Config struct using reflection.
func buildValidKeys() map[string]bool {
	keys := make(map[string]bool)
	addKeysFromType(reflect.TypeOf(Config{}), "", keys)
	return keys
}

func buildToolKeys() map[string]bool {
	keys := make(map[string]bool)
	addKeysFromType(reflect.TypeOf(ToolConfig{}), "", keys)
	return keys
}

// addKeysFromType recursively adds keys from a struct type.
func addKeysFromType(t reflect.Type, prefix string, keys map[string]bool) {
	for i := range t.NumField() {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		keys[key] = true

		// Recurse into nested structs (but not maps)
		if field.Type.Kind() == reflect.Struct {
			addKeysFromType(field.Type, key, keys)
		}
	}
}

// IsValidMode reports whether name is a resolution mode.
func IsValidMode(name string) bool {
	return validModes[name]
}

// ValidModeNames returns the list of valid resolution modes.
func ValidModeNames() []string {
	return []string{ModeLocator, ModeLegacy}
}

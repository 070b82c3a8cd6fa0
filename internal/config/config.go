package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/juglab/portfolio/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys.
const (
	KeyDataDir     = "data_dir"
	KeyMirror      = "mirror"
	KeyVerify      = "verify"
	KeyHTTPTimeout = "http_timeout"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
	KeyRegistries  = "registries"
)

// ErrUnknownKey is returned by Set for keys outside Keys().
var ErrUnknownKey = errors.New("unknown config key")

var v = newViper()

func newViper() *viper.Viper {
	nv := viper.New()
	nv.SetDefault(KeyDataDir, filepath.Join(Dir(), "data"))
	nv.SetDefault(KeyMirror, "")
	nv.SetDefault(KeyVerify, true)
	nv.SetDefault(KeyHTTPTimeout, time.Duration(0))
	nv.SetDefault(KeyLogLevel, "info")
	nv.SetDefault(KeyLogFormat, "text")
	nv.SetDefault(KeyRegistries, []string{})
	return nv
}

// Keys returns every supported key, sorted.
func Keys() []string {
	return []string{KeyDataDir, KeyHTTPTimeout, KeyLogFormat, KeyLogLevel, KeyMirror, KeyRegistries, KeyVerify}
}

// Dir returns the path to the config directory (~/.portfolio/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the default config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the directory holding path if it does not exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load resets the settings and reads them from path and the environment.
// An empty path selects FilePath(). A missing file is not an error.
func Load(path string) error {
	if path == "" {
		path = FilePath()
	}
	v = newViper()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

// Get returns a config value by key as a string. Lists are joined with
// commas.
func Get(key string) string {
	if key == KeyRegistries {
		return strings.Join(registries(), ",")
	}
	return v.GetString(key)
}

// Set validates value for key, then writes it to the config file that was
// last loaded.
func Set(key, value string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("%w %q (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}

	parsed, err := parseValue(key, value)
	if err != nil {
		return err
	}

	configFile := v.ConfigFileUsed()
	if configFile == "" {
		configFile = FilePath()
	}
	if err := EnsureDir(configFile); err != nil {
		return err
	}

	v.Set(key, parsed)

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func parseValue(key, value string) (any, error) {
	switch key {
	case KeyVerify:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a boolean", key, value)
		}
		return b, nil
	case KeyHTTPTimeout:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return d.String(), nil
	case KeyLogFormat:
		if value != "text" && value != "json" {
			return nil, fmt.Errorf("%s: %q must be text or json", key, value)
		}
		return value, nil
	case KeyRegistries:
		return splitList(value), nil
	default:
		return value, nil
	}
}

// Settings is a typed snapshot of the loaded configuration.
type Settings struct {
	DataDir     string
	Mirror      string
	Verify      bool
	HTTPTimeout time.Duration
	LogLevel    string
	LogFormat   string
	Registries  []string
}

// Current returns the settings as loaded.
func Current() Settings {
	return Settings{
		DataDir:     expandHome(v.GetString(KeyDataDir)),
		Mirror:      v.GetString(KeyMirror),
		Verify:      v.GetBool(KeyVerify),
		HTTPTimeout: v.GetDuration(KeyHTTPTimeout),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		Registries:  registries(),
	}
}

// registries reads the registry list. A single string, as set through
// PORTFOLIO_REGISTRIES, is split on commas like "config set" input.
func registries() []string {
	if s, ok := v.Get(KeyRegistries).(string); ok {
		return splitList(s)
	}
	return v.GetStringSlice(KeyRegistries)
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

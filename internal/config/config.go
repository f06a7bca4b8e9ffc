// Package config loads linkstat settings from defaults, a YAML config file,
// LINKSTAT_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/idelchi/linkstat/internal/linkstat"
	"github.com/idelchi/linkstat/internal/walk"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LINKSTAT"

// Keys shared by flags, the config file and the environment.
const (
	KeyWalker     = "walker"
	KeyWorkers    = "workers"
	KeyPolicy     = "policy"
	KeyOutput     = "output"
	KeyStorageINI = "storage-ini"
	KeyDebug      = "debug"
	KeyPause      = "pause"
)

// Outputs lists the accepted output formats.
var Outputs = []string{"table", "json"} //nolint:gochecknoglobals // Lookup table

// Config holds the resolved settings.
type Config struct {
	// Walker is the traversal strategy.
	Walker string `mapstructure:"walker"`
	// Workers bounds the aggregation goroutines (0 = automatic).
	Workers int `mapstructure:"workers"`
	// Policy is the dedup policy.
	Policy string `mapstructure:"policy"`
	// Output is the report format.
	Output string `mapstructure:"output"`
	// StorageINI is the INI file consulted when no path is given.
	// Empty selects storage.DefaultINIPath.
	StorageINI string `mapstructure:"storage-ini"`
	// Debug enables debug logging.
	Debug bool `mapstructure:"debug"`
	// Pause waits for Enter before exiting.
	Pause bool `mapstructure:"pause"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyWalker, string(walk.Fast))
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyPolicy, string(linkstat.ExcludeShared))
	v.SetDefault(KeyOutput, "table")
	v.SetDefault(KeyStorageINI, "")
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyPause, false)
}

// Load reads the config file and environment into v and returns the merged
// settings together with the config file used, if any.
//
// An explicit file must exist. Without one, config.yaml is looked up in the
// linkstat directory below the user's config directory and may be absent.
func Load(v *viper.Viper, file string) (Config, string, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "linkstat"))
		}

		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("decoding config: %w", err)
	}

	return cfg, v.ConfigFileUsed(), nil
}

// Validate rejects unknown walkers, policies and output formats and
// negative worker counts.
func (c Config) Validate() error {
	if !slices.Contains(walk.Kinds, walk.Kind(c.Walker)) {
		return fmt.Errorf("invalid walker %q: must be one of %v", c.Walker, walk.Kinds)
	}

	if err := linkstat.Policy(c.Policy).Validate(); err != nil {
		return err
	}

	if !slices.Contains(Outputs, c.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", c.Output, Outputs)
	}

	if c.Workers < 0 {
		return errors.New("workers cannot be negative")
	}

	return nil
}

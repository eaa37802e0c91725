package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/thoreinstein/gitlink/internal/errors"
	"github.com/thoreinstein/gitlink/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// EnvPrefix is the prefix of environment variables read by viper.
const EnvPrefix = "GITLINK"

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// ProbeDir is where capability probes create scratch entries.
	// Empty selects the system temp directory.
	ProbeDir string `mapstructure:"probe_dir" yaml:"probe_dir"`

	// CopyFallback writes plain files when links cannot be created.
	CopyFallback bool `mapstructure:"copy_fallback" yaml:"copy_fallback"`

	// Backup snapshots files materialize replaces.
	Backup bool `mapstructure:"backup" yaml:"backup"`

	// BackupKeep is the number of snapshots kept per materialize root.
	BackupKeep int `mapstructure:"backup_keep" yaml:"backup_keep"`

	// LogFormat is "text" or "json".
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("probe_dir", "")
	viper.SetDefault("copy_fallback", true)
	viper.SetDefault("backup", false)
	viper.SetDefault("backup_keep", 5)
	viper.SetDefault("log_format", "text")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case path != "" && (errors.As(err, &notFound) || isNotExist(err)):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		case errors.As(err, &notFound):
			// Implicit search found nothing; defaults apply.
		default:
			return nil, errors.Wrap(errors.Mark(err, errors.ErrInvalidConfig), "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.Mark(err, errors.ErrInvalidConfig), "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrapf(errors.Mark(errs[0], errors.ErrInvalidConfig), "validating config")
	}

	return &cfg, nil
}

// FileUsed returns the config file viper read, or "" when defaults apply.
func FileUsed() string {
	return viper.ConfigFileUsed()
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/csheth/journalscout/internal/journal"
)

const (
	configName     = ".journalscout"
	envPrefix      = "JOURNALSCOUT"
	configPathEnv  = "JOURNALSCOUT_CONFIG_PATH"
	defaultTimeout = 90 * time.Second
)

// Config carries the resolved runtime settings.
type Config struct {
	BaseURL      string
	DownloadsDir string
	PrefsDir     string
	HTTPTimeout  time.Duration
	LogFile      string
}

// Load reads .journalscout.yaml from the working directory (or
// $JOURNALSCOUT_CONFIG_PATH) and applies JOURNALSCOUT_* overrides.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("base_url", journal.DefaultBaseURL)
	v.SetDefault("downloads_dir", "~/Downloads")
	v.SetDefault("prefs_dir", defaultPrefsDir())
	v.SetDefault("http_timeout", defaultTimeout)
	v.SetDefault("log_file", "")
	v.SetConfigName(configName)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(configPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	downloads, err := homedir.Expand(v.GetString("downloads_dir"))
	if err != nil {
		return Config{}, err
	}
	prefsDir, err := homedir.Expand(v.GetString("prefs_dir"))
	if err != nil {
		return Config{}, err
	}
	logFile, err := homedir.Expand(v.GetString("log_file"))
	if err != nil {
		return Config{}, err
	}
	timeout := v.GetDuration("http_timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return Config{
		BaseURL:      v.GetString("base_url"),
		DownloadsDir: downloads,
		PrefsDir:     prefsDir,
		HTTPTimeout:  timeout,
		LogFile:      logFile,
	}, nil
}

func defaultPrefsDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = filepath.Join(os.TempDir(), "journalscout-config")
	}
	return filepath.Join(base, "journalscout")
}

// Package config loads ~/.kmdb/config.toml with KMDB_* environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	Dir        = ".kmdb"
	configName = "config"
	configType = "toml"
	envPrefix  = "KMDB"
)

type Settings struct {
	Server  ServerSettings  `mapstructure:"server"`
	WebSSH  WebSSHSettings  `mapstructure:"webssh"`
	Catalog CatalogSettings `mapstructure:"catalog"`
	Log     LogSettings     `mapstructure:"log"`
	History HistorySettings `mapstructure:"history"`
	Secrets SecretSettings  `mapstructure:"secrets"`
}

type ServerSettings struct {
	URL            string        `mapstructure:"url"`
	Profile        string        `mapstructure:"profile"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type WebSSHSettings struct {
	PrefixKey       string        `mapstructure:"prefix_key"`
	ResizeDebounce  time.Duration `mapstructure:"resize_debounce"`
	ScrollbackBytes int           `mapstructure:"scrollback_bytes"`
	RecordDir       string        `mapstructure:"record_dir"`
	TeardownTimeout time.Duration `mapstructure:"teardown_timeout"`
}

type CatalogSettings struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type LogSettings struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

type HistorySettings struct {
	Path  string `mapstructure:"path"`
	Limit int    `mapstructure:"limit"`
}

type SecretSettings struct {
	Dir     string `mapstructure:"dir"`
	PassDir string `mapstructure:"pass_dir"`
}

// Load reads the config file into v when one exists and returns the
// resolved settings. v stays usable by adapters that read their own keys.
func Load(v *viper.Viper) (Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, fmt.Errorf("resolve home directory: %w", err)
	}
	base := filepath.Join(homeDir, Dir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(base)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.url", "")
	v.SetDefault("server.profile", "default")
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("webssh.prefix_key", "ctrl-]")
	v.SetDefault("webssh.resize_debounce", 150*time.Millisecond)
	v.SetDefault("webssh.scrollback_bytes", 1<<20)
	v.SetDefault("webssh.record_dir", "")
	v.SetDefault("webssh.teardown_timeout", 5*time.Second)
	v.SetDefault("catalog.cache_ttl", time.Minute)
	v.SetDefault("log.path", filepath.Join(base, "kmdb.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("history.path", filepath.Join(base, "history.toml"))
	v.SetDefault("history.limit", 50)
	v.SetDefault("secrets.dir", filepath.Join(base, "secrets"))
	v.SetDefault("secrets.pass_dir", "")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	settings.Server.URL = strings.TrimRight(strings.TrimSpace(settings.Server.URL), "/")
	settings.Server.Profile = strings.TrimSpace(settings.Server.Profile)

	return settings, nil
}

// Package config loads settings from the environment and an optional .env
// file. Every setting has a default, so an empty environment is valid.
package config

import (
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/a-sync/fnf-presets/fetcher"
	"github.com/a-sync/fnf-presets/logger"
)

// EnvPrefix prefixes every environment variable, e.g. PRESETS_SOURCE_BASE.
const EnvPrefix = "PRESETS"

// Config holds all configuration for the application.
type Config struct {
	// Source holds where the manifest and documents are read from.
	Source SourceConfig `mapstructure:"source"`
	// Storage holds credentials for s3:// sources.
	Storage fetcher.ObjectConfig `mapstructure:"storage"`
	// Store holds configuration for the selection store.
	Store StoreConfig `mapstructure:"store"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

type SourceConfig struct {
	// Base is a directory, an http(s) URL or an s3://bucket/prefix URL.
	Base string `mapstructure:"base" default:"servers-and-mods"`
	// Manifest is resolved against Base.
	Manifest string `mapstructure:"manifest" default:"presets.json"`
	// TimeoutSeconds bounds each document retrieval.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Cache keeps copies of remote documents.
	Cache bool `mapstructure:"cache" default:"true"`
	// CacheMaxAgeSeconds is how long a cached copy is used without refetching.
	CacheMaxAgeSeconds int `mapstructure:"cache_max_age_seconds" default:"3600"`
	// UserAgent is sent with HTTP requests.
	UserAgent string `mapstructure:"user_agent" default:"fnf-presets"`
}

func (c SourceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c SourceConfig) CacheMaxAge() time.Duration {
	return time.Duration(c.CacheMaxAgeSeconds) * time.Second
}

type StoreConfig struct {
	// Driver is pogreb, bolt or memory.
	Driver string `mapstructure:"driver" default:"pogreb"`
	// Path is the database location. Empty means the user config directory.
	Path string `mapstructure:"path" default:""`
}

// Load loads configuration from environment variables and the .env file
// in dir, if any.
func Load(dir string) (*Config, error) {
	// Ignore error if file doesn't exist
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)

	bindValues(v, Config{}, "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// bindValues registers the default of every tagged field, so that
// AutomaticEnv knows about the key.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}

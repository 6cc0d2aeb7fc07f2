package config

import (
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/pathkit/pathkit"

	"github.com/spf13/viper"
)

// Config stores all configuration of the library's tooling layers.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Pathkit PathkitConfig `mapstructure:"pathkit"`
}

// PathkitConfig stores pathkit specific configurations.
type PathkitConfig struct {
	Bulk     BulkConfig     `mapstructure:"bulk"`
	Ignore   IgnoreConfig   `mapstructure:"ignore"`
	Database DatabaseConfig `mapstructure:"database"`
}

// BulkConfig tunes the concurrent batch processor.
type BulkConfig struct {
	MaxWorkers int `mapstructure:"maxWorkers"`
	ChunkSize  int `mapstructure:"chunkSize"`
}

// IgnoreConfig stores ignore-pattern sources for the matcher.
type IgnoreConfig struct {
	File     string   `mapstructure:"file"`
	Patterns []string `mapstructure:"patterns"`
}

// DatabaseConfig stores snapshot database connection details.
type DatabaseConfig struct {
	DSN  string `mapstructure:"dsn"`
	Type string `mapstructure:"type"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		viper.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("pathkit.bulk.maxWorkers", 0) // 0 means derive from CPU count
	viper.SetDefault("pathkit.bulk.chunkSize", 1024)
	viper.SetDefault("pathkit.ignore.file", internal.DefaultIgnoreFileName)
	viper.SetDefault("pathkit.database.dsn", internal.DefaultDatabaseDSN)
	viper.SetDefault("pathkit.database.type", internal.DefaultDatabaseType)

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // e.g. pathkit.bulk.maxWorkers becomes PATHKIT_BULK_MAXWORKERS

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults will be used. This is not an
			// error for the application to halt on.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}

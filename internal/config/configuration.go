package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Configuration struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
}

type DatabaseConfig struct {
	// Driver is either "postgres" or "sqlite".
	Driver      string `yaml:"driver"`
	Path        string `yaml:"path"`
	AutoMigrate bool   `yaml:"autoMigrate"`
	Debug       bool   `yaml:"debug"`
}

type ServerConfig struct {
	Port          int             `yaml:"port"`
	Concurrency   int             `yaml:"concurrency"`
	RequestConfig RequestConfig   `yaml:"requestConfig"`
	RateLimit     RateLimitConfig `yaml:"rateLimit"`
	LogConfig     LogConfig       `yaml:"logConfig"`
	CleanConfig   CleanConfig     `yaml:"cleanConfig"`
}

type RequestConfig struct {
	// SizeLimit is the request body limit in megabytes.
	SizeLimit int `yaml:"sizeLimit"`
}

type RateLimitConfig struct {
	Rate  float64 `yaml:"rate"`
	Burst int     `yaml:"burst"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Output  string `yaml:"output"`
	LogPath string `yaml:"logPath"`
}

type CleanConfig struct {
	Schedule  string        `yaml:"schedule"`
	Retention time.Duration `yaml:"retention"`
}

func DefaultConfiguration() *Configuration {
	return &Configuration{
		Database: DatabaseConfig{
			Driver:      "sqlite",
			Path:        "cruder.db",
			AutoMigrate: true,
		},
		Server: ServerConfig{
			Port:          8080,
			Concurrency:   256,
			RequestConfig: RequestConfig{SizeLimit: 4},
			RateLimit:     RateLimitConfig{Rate: 50, Burst: 100},
			LogConfig: LogConfig{
				Level:  "info",
				Format: "text",
				Output: "stdout",
			},
			CleanConfig: CleanConfig{
				Schedule:  "@every 1h",
				Retention: 720 * time.Hour,
			},
		},
	}
}

// LoadConfiguration reads the yaml file on top of the defaults. A missing
// file yields the defaults.
func LoadConfiguration(configurationFilePath string) (*Configuration, error) {
	config := DefaultConfiguration()
	data, err := os.ReadFile(configurationFilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, err
	}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}
	return config, nil
}

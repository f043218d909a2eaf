package config

import (
	"fmt"
	"time"
)

type Config struct {
	Sites               SitesConfig         `yaml:"sites"`
	Rod                 RodConfig           `yaml:"rod"`
	HTTP                HttpConfig          `yaml:"http"`
	RateLimit           RateLimitConfig     `yaml:"rate_limit"`
	RobotsCacheTTLHours int                 `yaml:"robots_cache_ttl_hours"`
	Targets             TargetsConfig       `yaml:"targets"`
	Output              OutputConfig        `yaml:"output"`
	Storage             StorageConfig       `yaml:"storage"`
	Observability       ObservabilityConfig `yaml:"observability"`
}

type SitesConfig struct {
	FrontpagesURL string `yaml:"frontpages_url"`
	ZouglaURL     string `yaml:"zougla_url"`
}

type RodConfig struct {
	// ChromePath is optional; when empty the launcher falls back to a
	// system browser and then to a managed chromium.
	ChromePath       string `yaml:"chrome_path"`
	PageTimeoutS     int    `yaml:"page_timeout_s"`
	WaitLoadTimeoutS int    `yaml:"wait_load_timeout_s"`
}

type HttpConfig struct {
	UserAgent                 string `yaml:"user_agent"`
	DownloadTimeoutMS         int    `yaml:"download_timeout_ms"`
	MaxIdleConnections        int    `yaml:"max_idle_connections"`
	MaxIdleConnectionsPerHost int    `yaml:"max_idle_connections_per_host"`
	IdleConnectionTimeoutS    int    `yaml:"idle_connection_timeout_s"`
}

type RateLimitConfig struct {
	MinDelayMS int `yaml:"min_delay_ms"`
}

type TargetsConfig struct {
	CSVPath    string `yaml:"csv_path"`
	NameColumn string `yaml:"name_column"`
	MaxNameLen int    `yaml:"max_name_len"`
}

type OutputConfig struct {
	RootDir string `yaml:"root_dir"`
}

type StorageConfig struct {
	// Driver empty disables run-history persistence.
	Driver           string `yaml:"driver"`
	DSN              string `yaml:"dsn"`
	CommandTimeoutMS int    `yaml:"command_timeout_ms"`
}

type ObservabilityConfig struct {
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`
}

// Validation
func (c *Config) Validate() error {
	if c.Sites.FrontpagesURL == "" {
		return fmt.Errorf("sites.frontpages_url is required")
	}
	if c.Sites.ZouglaURL == "" {
		return fmt.Errorf("sites.zougla_url is required")
	}
	if c.Rod.PageTimeoutS <= 0 {
		return fmt.Errorf("rod.page_timeout_s must be > 0")
	}
	if c.Rod.WaitLoadTimeoutS <= 0 {
		return fmt.Errorf("rod.wait_load_timeout_s must be > 0")
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent is required")
	}
	if c.HTTP.DownloadTimeoutMS <= 0 {
		return fmt.Errorf("http.download_timeout_ms must be > 0")
	}
	if c.RateLimit.MinDelayMS < 0 {
		return fmt.Errorf("rate_limit.min_delay_ms must be >= 0")
	}
	if c.RobotsCacheTTLHours <= 0 {
		return fmt.Errorf("robots_cache_ttl_hours must be > 0")
	}
	if c.Targets.CSVPath == "" {
		return fmt.Errorf("targets.csv_path is required")
	}
	if c.Targets.NameColumn == "" {
		return fmt.Errorf("targets.name_column is required")
	}
	if c.Targets.MaxNameLen <= 0 {
		return fmt.Errorf("targets.max_name_len must be > 0")
	}
	if c.Output.RootDir == "" {
		return fmt.Errorf("output.root_dir is required")
	}
	if c.Storage.Driver != "" {
		if c.Storage.Driver != "mssql" {
			return fmt.Errorf("storage.driver must be 'mssql' or empty")
		}
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required when storage.driver is set")
		}
		if c.Storage.CommandTimeoutMS <= 0 {
			return fmt.Errorf("storage.command_timeout_ms must be > 0")
		}
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("observability.log_level is required")
	}
	return nil
}

// Getters
func (c *Config) GetDownloadTimeout() time.Duration {
	return time.Duration(c.HTTP.DownloadTimeoutMS) * time.Millisecond
}

func (c *Config) GetIdleConnectionTimeout() time.Duration {
	return time.Duration(c.HTTP.IdleConnectionTimeoutS) * time.Second
}

func (c *Config) GetMinDelay() time.Duration {
	return time.Duration(c.RateLimit.MinDelayMS) * time.Millisecond
}

func (c *Config) GetRobotsCacheTTL() time.Duration {
	return time.Duration(c.RobotsCacheTTLHours) * time.Hour
}

func (c *Config) GetCommandTimeout() time.Duration {
	return time.Duration(c.Storage.CommandTimeoutMS) * time.Millisecond
}

func (c *Config) GetRodPageTimeout() time.Duration {
	return time.Duration(c.Rod.PageTimeoutS) * time.Second
}

func (c *Config) GetRodWaitLoadTimeout() time.Duration {
	return time.Duration(c.Rod.WaitLoadTimeoutS) * time.Second
}

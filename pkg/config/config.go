package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	Server    ServerConfig
	Content   ContentConfig
	Jobs      JobsConfig
	Ranking   RankingConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
}

// DatabaseConfig holds the analytics event log database configuration
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL     string
	Enabled bool
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
	Host string
}

// ContentConfig holds skill catalog configuration
type ContentConfig struct {
	Dir string
}

// JobsConfig holds ranking job configuration
type JobsConfig struct {
	Secret          string
	TrendingLimit   int
	RotatingSlots   int
	VerifiedAuthors string
}

// RankingConfig holds the tunable thresholds of the scoring core
type RankingConfig struct {
	BayesianPrior        float64
	MinBaselineViews     int64
	MinBaselineScore     float64
	HotThreshold         int
	RisingThreshold      int
	CoolingThreshold     int
	BadgeBaselineViews   int64
	CoolingBaselineViews int64
	NewBadgeHours        int
}

// RateLimitConfig holds intake endpoint throttling configuration
type RateLimitConfig struct {
	RequestsPerMinute int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled           bool
	JaegerURL         string
	PrometheusEnabled bool
	PrometheusPort    int
	ServiceName       string
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	// Load from environment
	viper.SetEnvPrefix("SKILLS")
	viper.AutomaticEnv()

	// Load from config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.skillsmarket")
	viper.AddConfigPath("/etc/skillsmarket")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; this is OK if we have env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			URL:     getString("database_url", ""),
			Enabled: getString("database_url", "") != "",
		},
		Redis: RedisConfig{
			URL:     getString("redis_url", "redis://localhost:6379/0"),
			Enabled: getString("redis_url", "redis://localhost:6379/0") != "",
		},
		Server: ServerConfig{
			Port: getInt("http_server_port", 8080),
			Host: getString("http_server_host", "0.0.0.0"),
		},
		Content: ContentConfig{
			Dir: getString("content_dir", "./content/skills"),
		},
		Jobs: JobsConfig{
			Secret:          getString("cron_secret", ""),
			TrendingLimit:   getInt("trending_limit", 5),
			RotatingSlots:   getInt("rotating_slots", 4),
			VerifiedAuthors: getString("verified_authors", "anthropic,claude-team"),
		},
		Ranking: RankingConfig{
			BayesianPrior:        getFloat("bayesian_prior", 5),
			MinBaselineViews:     int64(getInt("min_baseline_views", 50)),
			MinBaselineScore:     getFloat("min_baseline_score", 5),
			HotThreshold:         getInt("hot_threshold", 50),
			RisingThreshold:      getInt("rising_threshold", 15),
			CoolingThreshold:     getInt("cooling_threshold", -25),
			BadgeBaselineViews:   int64(getInt("badge_baseline_views", 50)),
			CoolingBaselineViews: int64(getInt("cooling_baseline_views", 100)),
			NewBadgeHours:        getInt("new_badge_hours", 48),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getInt("rate_limit_per_minute", 60),
		},
		Logging: LoggingConfig{
			Level:  getString("log_level", "INFO"),
			Format: getString("log_format", "json"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           getBool("telemetry_enabled", false),
			JaegerURL:         getString("jaeger_url", ""),
			PrometheusEnabled: getBool("prometheus_enabled", true),
			PrometheusPort:    getInt("prometheus_port", 9090),
			ServiceName:       getString("service_name", "skillsmarket"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("redis_url", "redis://localhost:6379/0")
	viper.SetDefault("http_server_port", 8080)
	viper.SetDefault("http_server_host", "0.0.0.0")
	viper.SetDefault("content_dir", "./content/skills")
	viper.SetDefault("trending_limit", 5)
	viper.SetDefault("rotating_slots", 4)
	viper.SetDefault("verified_authors", "anthropic,claude-team")
	viper.SetDefault("bayesian_prior", 5)
	viper.SetDefault("min_baseline_views", 50)
	viper.SetDefault("min_baseline_score", 5)
	viper.SetDefault("hot_threshold", 50)
	viper.SetDefault("rising_threshold", 15)
	viper.SetDefault("cooling_threshold", -25)
	viper.SetDefault("badge_baseline_views", 50)
	viper.SetDefault("cooling_baseline_views", 100)
	viper.SetDefault("new_badge_hours", 48)
	viper.SetDefault("rate_limit_per_minute", 60)
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("log_format", "json")
	viper.SetDefault("telemetry_enabled", false)
	viper.SetDefault("prometheus_enabled", true)
	viper.SetDefault("prometheus_port", 9090)
	viper.SetDefault("service_name", "skillsmarket")
}

func getString(key, defaultValue string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	// Also check environment variable directly
	if val := os.Getenv("SKILLS_" + toEnvKey(key)); val != "" {
		return val
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	if val := os.Getenv("SKILLS_" + toEnvKey(key)); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	if val := os.Getenv("SKILLS_" + toEnvKey(key)); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	if val := os.Getenv("SKILLS_" + toEnvKey(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultValue
}

func toEnvKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// VerifiedAuthorSet returns the verified author allowlist as a lookup set
func (c *JobsConfig) VerifiedAuthorSet() map[string]bool {
	set := make(map[string]bool)
	for _, a := range strings.Split(c.VerifiedAuthors, ",") {
		a = strings.TrimSpace(strings.ToLower(a))
		if a != "" {
			set[a] = true
		}
	}
	return set
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Redis.URL == "" {
		return fmt.Errorf("redis_url is required")
	}
	if c.Jobs.TrendingLimit <= 0 || c.Jobs.TrendingLimit > 50 {
		return fmt.Errorf("trending_limit must be between 1 and 50")
	}
	if c.Jobs.RotatingSlots <= 0 || c.Jobs.RotatingSlots > 20 {
		return fmt.Errorf("rotating_slots must be between 1 and 20")
	}
	if c.Ranking.BayesianPrior < 0 {
		return fmt.Errorf("bayesian_prior must not be negative")
	}
	if c.Ranking.NewBadgeHours <= 0 {
		return fmt.Errorf("new_badge_hours must be positive")
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit_per_minute must be positive")
	}
	return nil
}

// GetDuration returns a duration from config key, with default
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return defaultValue
}

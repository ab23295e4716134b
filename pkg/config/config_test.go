package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Errorf("redis url = %q", cfg.Redis.URL)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Jobs.TrendingLimit != 5 {
		t.Errorf("trending limit = %d, want 5", cfg.Jobs.TrendingLimit)
	}
	if cfg.Jobs.RotatingSlots != 4 {
		t.Errorf("rotating slots = %d, want 4", cfg.Jobs.RotatingSlots)
	}
	if cfg.Ranking.HotThreshold != 50 || cfg.Ranking.CoolingThreshold != -25 {
		t.Errorf("badge thresholds = %d/%d, want 50/-25",
			cfg.Ranking.HotThreshold, cfg.Ranking.CoolingThreshold)
	}
	if cfg.Database.Enabled {
		t.Error("database enabled with no url set")
	}
	if cfg.RateLimit.RequestsPerMinute != 60 {
		t.Errorf("rate limit = %d, want 60", cfg.RateLimit.RequestsPerMinute)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	os.Setenv("SKILLS_HTTP_SERVER_PORT", "9999")
	os.Setenv("SKILLS_CRON_SECRET", "hunter2")
	os.Setenv("SKILLS_DATABASE_URL", "postgres://localhost/skills")
	defer func() {
		os.Unsetenv("SKILLS_HTTP_SERVER_PORT")
		os.Unsetenv("SKILLS_CRON_SECRET")
		os.Unsetenv("SKILLS_DATABASE_URL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("server port = %d, want 9999 from env", cfg.Server.Port)
	}
	if cfg.Jobs.Secret != "hunter2" {
		t.Errorf("job secret = %q, want value from env", cfg.Jobs.Secret)
	}
	if !cfg.Database.Enabled {
		t.Error("database not enabled despite SKILLS_DATABASE_URL")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Redis:     RedisConfig{URL: "redis://localhost:6379/0"},
			Jobs:      JobsConfig{TrendingLimit: 5, RotatingSlots: 4},
			Ranking:   RankingConfig{BayesianPrior: 5, NewBadgeHours: 48},
			RateLimit: RateLimitConfig{RequestsPerMinute: 60},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing redis url", func(c *Config) { c.Redis.URL = "" }, true},
		{"zero trending limit", func(c *Config) { c.Jobs.TrendingLimit = 0 }, true},
		{"oversized trending limit", func(c *Config) { c.Jobs.TrendingLimit = 51 }, true},
		{"zero rotating slots", func(c *Config) { c.Jobs.RotatingSlots = 0 }, true},
		{"negative prior", func(c *Config) { c.Ranking.BayesianPrior = -1 }, true},
		{"zero new badge window", func(c *Config) { c.Ranking.NewBadgeHours = 0 }, true},
		{"zero rate limit", func(c *Config) { c.RateLimit.RequestsPerMinute = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifiedAuthorSet(t *testing.T) {
	jobs := JobsConfig{VerifiedAuthors: "Anthropic, claude-team , "}
	set := jobs.VerifiedAuthorSet()

	if len(set) != 2 {
		t.Fatalf("set has %d entries, want 2", len(set))
	}
	if !set["anthropic"] || !set["claude-team"] {
		t.Errorf("set = %v, want lowercased trimmed entries", set)
	}
}

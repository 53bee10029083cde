package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	DBPath         string           `json:"db_path"`
	Port           int              `json:"port"`
	LogConfig      logger.LogConfig `json:"log_config"`
	CORSAllowlist  []string         `json:"cors_allowlist"`
	FileStore      FileStoreConfig  `json:"file_store"`
	AI             AIConfig         `json:"ai"`
	Agent          AgentConfig      `json:"agent"`
	Jobs           JobsConfig       `json:"jobs"`
	MaxUploadBytes int64            `json:"max_upload_bytes"`
	AskRateLimit   RateLimitConfig  `json:"ask_rate_limit"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type AIProviderConfig struct {
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
	Data     interface{} `json:"data"`
}

type AIConfig struct {
	Providers      []AIProviderConfig `json:"providers"`
	TimeoutSeconds int                `json:"timeout_seconds"`
	MaxInputChars  int                `json:"max_input_chars"`
	CacheSize      int                `json:"cache_size"`
	CacheTTLSecond int                `json:"cache_ttl_seconds"`
}

type AgentConfig struct {
	QAMaxChunks      int `json:"qa_max_chunks"`
	SummaryMaxChunks int `json:"summary_max_chunks"`
}

type JobsConfig struct {
	ReprocessSpec      string `json:"reprocess_spec"`
	RetentionSpec      string `json:"retention_spec"`
	QARetentionDays    int    `json:"qa_retention_days"`
	StalledAfterSecond int64  `json:"stalled_after_seconds"`
}

type RateLimitConfig struct {
	WindowSeconds int `json:"window_seconds"`
	MaxRequests   int `json:"max_requests"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db_path is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
		cfg.FileStore.Data = map[string]interface{}{"dir": "./data/files"}
	}
	if cfg.AI.TimeoutSeconds <= 0 {
		cfg.AI.TimeoutSeconds = 60
	}
	if cfg.AI.MaxInputChars <= 0 {
		cfg.AI.MaxInputChars = 120000
	}
	if cfg.AI.CacheSize <= 0 {
		cfg.AI.CacheSize = 256
	}
	if cfg.AI.CacheTTLSecond <= 0 {
		cfg.AI.CacheTTLSecond = 600
	}
	if cfg.Agent.QAMaxChunks <= 0 {
		cfg.Agent.QAMaxChunks = 50
	}
	if cfg.Agent.SummaryMaxChunks <= 0 {
		cfg.Agent.SummaryMaxChunks = 25
	}
	if cfg.Jobs.ReprocessSpec == "" {
		cfg.Jobs.ReprocessSpec = "@every 10m"
	}
	if cfg.Jobs.RetentionSpec == "" {
		cfg.Jobs.RetentionSpec = "@daily"
	}
	if cfg.Jobs.StalledAfterSecond <= 0 {
		cfg.Jobs.StalledAfterSecond = 1800
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 64 << 20
	}
	if cfg.AskRateLimit.WindowSeconds <= 0 {
		cfg.AskRateLimit.WindowSeconds = 60
	}
	if cfg.AskRateLimit.MaxRequests <= 0 {
		cfg.AskRateLimit.MaxRequests = 30
	}
	return &cfg, nil
}

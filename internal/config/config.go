// Package config loads the application configuration from
// .todotxt/config.toml with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultTodoFileName   = "todo.txt"
	DefaultHistorySize    = 20
	DefaultLLMBaseURL     = "http://localhost:11434/v1"
	DefaultAIMaxRetries   = 3
	DefaultAIRetryDelayMs = 500
)

// Config holds the application configuration.
type Config struct {
	TodoFile       string
	LogLevel       string
	LogFile        string
	DBPath         string
	ConfigPath     string
	TodotxtDir     string
	VaultRoot      string
	HistorySize    int
	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	AIMaxRetries   int
	AIRetryDelayMs int
}

type fileConfig struct {
	Todo struct {
		File        string `toml:"file"`
		HistorySize int    `toml:"history_size"`
	} `toml:"todo"`
	Logging struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"logging"`
	LLM struct {
		BaseURL      string `toml:"base_url"`
		APIKey       string `toml:"api_key"`
		Model        string `toml:"model"`
		MaxRetries   int    `toml:"max_retries"`
		RetryDelayMs int    `toml:"retry_delay_ms"`
	} `toml:"llm"`
}

// LoadConfig loads configuration from file, environment variables, and
// defaults, in that order of increasing precedence.
func LoadConfig() (*Config, error) {
	vaultRoot, err := FindVaultRoot()
	if err != nil {
		return nil, err
	}

	todotxtDir := DotDir(vaultRoot)
	configPath := filepath.Join(todotxtDir, "config.toml")
	if err := EnsureDirs(todotxtDir); err != nil {
		return nil, err
	}

	cfg := &Config{
		TodoFile:       filepath.Join(vaultRoot, DefaultTodoFileName),
		LogLevel:       "info",
		LogFile:        filepath.Join(todotxtDir, "logs", "todotxt.log"),
		DBPath:         filepath.Join(todotxtDir, "presets.sqlite3"),
		ConfigPath:     configPath,
		TodotxtDir:     todotxtDir,
		VaultRoot:      vaultRoot,
		HistorySize:    DefaultHistorySize,
		LLMBaseURL:     DefaultLLMBaseURL,
		AIMaxRetries:   DefaultAIMaxRetries,
		AIRetryDelayMs: DefaultAIRetryDelayMs,
	}

	if _, err := os.Stat(configPath); err == nil {
		fileData, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		var parsed fileConfig
		if err := toml.Unmarshal(fileData, &parsed); err != nil {
			return nil, err
		}
		if parsed.Todo.File != "" {
			cfg.TodoFile = parsed.Todo.File
			if !filepath.IsAbs(cfg.TodoFile) {
				cfg.TodoFile = filepath.Join(vaultRoot, cfg.TodoFile)
			}
		}
		if parsed.Todo.HistorySize > 0 {
			cfg.HistorySize = parsed.Todo.HistorySize
		}
		if parsed.Logging.Level != "" {
			cfg.LogLevel = parsed.Logging.Level
		}
		if parsed.Logging.File != "" {
			cfg.LogFile = parsed.Logging.File
		}
		if parsed.LLM.BaseURL != "" {
			cfg.LLMBaseURL = parsed.LLM.BaseURL
		}
		if parsed.LLM.APIKey != "" {
			cfg.LLMAPIKey = parsed.LLM.APIKey
		}
		if parsed.LLM.Model != "" {
			cfg.LLMModel = parsed.LLM.Model
		}
		if parsed.LLM.MaxRetries > 0 {
			cfg.AIMaxRetries = parsed.LLM.MaxRetries
		}
		if parsed.LLM.RetryDelayMs > 0 {
			cfg.AIRetryDelayMs = parsed.LLM.RetryDelayMs
		}
	}

	if file := os.Getenv("TODOTXT_FILE"); file != "" {
		cfg.TodoFile = file
	}
	if level := os.Getenv("TODOTXT_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if logFile := os.Getenv("TODOTXT_LOG_FILE"); logFile != "" {
		cfg.LogFile = logFile
	}
	if size := os.Getenv("TODOTXT_HISTORY_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			cfg.HistorySize = n
		}
	}
	if baseURL := os.Getenv("TODOTXT_LLM_BASE_URL"); baseURL != "" {
		cfg.LLMBaseURL = baseURL
	}
	if apiKey := os.Getenv("TODOTXT_LLM_API_KEY"); apiKey != "" {
		cfg.LLMAPIKey = apiKey
	}
	if model := os.Getenv("TODOTXT_LLM_MODEL"); model != "" {
		cfg.LLMModel = model
	}
	if retries := os.Getenv("TODOTXT_AI_MAX_RETRIES"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil {
			cfg.AIMaxRetries = n
		}
	}

	cfg.LLMBaseURL = strings.TrimRight(strings.TrimSpace(cfg.LLMBaseURL), "/")

	return cfg, nil
}

// Validate verifies the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TodoFile) == "" {
		return fmt.Errorf("todo file path is empty")
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("history size must be positive: %d", c.HistorySize)
	}
	if strings.TrimSpace(c.LLMBaseURL) == "" {
		return fmt.Errorf("LLM base URL is empty")
	}
	if c.AIMaxRetries < 0 {
		return fmt.Errorf("AI max retries cannot be negative")
	}
	if c.AIRetryDelayMs <= 0 {
		return fmt.Errorf("AI retry delay must be positive")
	}
	return nil
}

package store

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Terminal struct {
		BridgeURL      string `yaml:"bridge_url"`
		Login          int64  `yaml:"login"`
		Password       string `yaml:"password"`
		Server         string `yaml:"server"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"terminal"`
	Telegram struct {
		Enabled    bool   `yaml:"enabled"`
		BotToken   string `yaml:"bot_token"`
		ChatID     string `yaml:"chat_id"`
		CharBudget int    `yaml:"char_budget"`
	} `yaml:"telegram"`
	LLM struct {
		Provider       string  `yaml:"provider"`
		Model          string  `yaml:"model"`
		BaseURL        string  `yaml:"base_url"`
		Temperature    float32 `yaml:"temperature"`
		System         string  `yaml:"system"`
		MaxOutputChars int     `yaml:"max_output_chars"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"llm"`
	Report struct {
		TopStrategies int `yaml:"top_strategies"`
	} `yaml:"report"`
	Safety struct {
		Enabled    bool    `yaml:"enabled"`
		MaxLossUSD float64 `yaml:"max_loss_usd"`
		MaxLossPct float64 `yaml:"max_loss_pct"`
	} `yaml:"safety"`
	Schedule struct {
		WeekdayCron string `yaml:"weekday_cron"`
		WeekendCron string `yaml:"weekend_cron"`
	} `yaml:"schedule"`
}

func (c *Config) Validate() error {
	if c.Terminal.BridgeURL == "" {
		return errors.New("terminal.bridge_url cannot be empty")
	}
	if c.Terminal.Login <= 0 {
		return fmt.Errorf("terminal.login must be a positive account number, got %d", c.Terminal.Login)
	}
	if c.Terminal.Server == "" {
		return errors.New("terminal.server cannot be empty")
	}
	if c.Telegram.Enabled && (c.Telegram.BotToken == "" || c.Telegram.ChatID == "") {
		return errors.New("telegram enabled but bot_token or chat_id is missing")
	}
	switch c.LLM.Provider {
	case "", "NONE", "OLLAMA", "OPENAI":
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be 'OLLAMA', 'OPENAI', or 'NONE'", c.LLM.Provider)
	}
	if c.Safety.Enabled && c.Safety.MaxLossUSD <= 0 && c.Safety.MaxLossPct <= 0 {
		return errors.New("safety enabled but neither max_loss_usd nor max_loss_pct is set")
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyEnvOverrides()

	if c.Terminal.TimeoutSeconds == 0 {
		c.Terminal.TimeoutSeconds = 30
	}
	if c.Telegram.CharBudget == 0 {
		c.Telegram.CharBudget = 4096
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "llama3.2"
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "http://localhost:11434"
	}
	if c.LLM.System == "" {
		c.LLM.System = "You are an expert trading analyst."
	}
	if c.LLM.MaxOutputChars == 0 {
		c.LLM.MaxOutputChars = 800
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 60
	}
	if c.Report.TopStrategies == 0 {
		c.Report.TopStrategies = 5
	}
	// Weekdays every 4 hours on the hour, weekends once at 23:00.
	if c.Schedule.WeekdayCron == "" {
		c.Schedule.WeekdayCron = "0 0,4,8,12,16,20 * * 1-5"
	}
	if c.Schedule.WeekendCron == "" {
		c.Schedule.WeekendCron = "0 23 * * 0,6"
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

// applyEnvOverrides lets credentials live in the environment instead of the
// config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MT5_LOGIN"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Terminal.Login = n
		}
	}
	if v := os.Getenv("MT5_PASSWORD"); v != "" {
		c.Terminal.Password = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
}

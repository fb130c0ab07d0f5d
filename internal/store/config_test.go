package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

const minimalConfig = `
terminal:
  bridge_url: http://localhost:8000
  login: 12345
  server: Demo-Server
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Terminal.TimeoutSeconds != 30 {
		t.Errorf("expected terminal timeout 30, got %d", cfg.Terminal.TimeoutSeconds)
	}
	if cfg.Telegram.CharBudget != 4096 {
		t.Errorf("expected char budget 4096, got %d", cfg.Telegram.CharBudget)
	}
	if cfg.LLM.Model != "llama3.2" {
		t.Errorf("expected default model llama3.2, got %s", cfg.LLM.Model)
	}
	if cfg.LLM.BaseURL != "http://localhost:11434" {
		t.Errorf("unexpected default base url: %s", cfg.LLM.BaseURL)
	}
	if cfg.LLM.MaxOutputChars != 800 {
		t.Errorf("expected max output chars 800, got %d", cfg.LLM.MaxOutputChars)
	}
	if cfg.LLM.TimeoutSeconds != 60 {
		t.Errorf("expected llm timeout 60, got %d", cfg.LLM.TimeoutSeconds)
	}
	if cfg.Report.TopStrategies != 5 {
		t.Errorf("expected top strategies 5, got %d", cfg.Report.TopStrategies)
	}
	if cfg.Schedule.WeekdayCron != "0 0,4,8,12,16,20 * * 1-5" {
		t.Errorf("unexpected weekday cron: %s", cfg.Schedule.WeekdayCron)
	}
	if cfg.Schedule.WeekendCron != "0 23 * * 0,6" {
		t.Errorf("unexpected weekend cron: %s", cfg.Schedule.WeekendCron)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("MT5_LOGIN", "99999")
	t.Setenv("MT5_PASSWORD", "secret")
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("TELEGRAM_CHAT_ID", "env-chat")

	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Terminal.Login != 99999 {
		t.Errorf("expected env login 99999, got %d", cfg.Terminal.Login)
	}
	if cfg.Terminal.Password != "secret" {
		t.Errorf("expected env password, got %s", cfg.Terminal.Password)
	}
	if cfg.Telegram.BotToken != "env-token" {
		t.Errorf("expected env bot token, got %s", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.ChatID != "env-chat" {
		t.Errorf("expected env chat id, got %s", cfg.Telegram.ChatID)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing bridge url",
			body: "terminal:\n  login: 1\n  server: Demo\n",
			want: "bridge_url",
		},
		{
			name: "missing login",
			body: "terminal:\n  bridge_url: http://x\n  server: Demo\n",
			want: "login",
		},
		{
			name: "missing server",
			body: "terminal:\n  bridge_url: http://x\n  login: 1\n",
			want: "server",
		},
		{
			name: "telegram without credentials",
			body: minimalConfig + "telegram:\n  enabled: true\n",
			want: "bot_token",
		},
		{
			name: "bad llm provider",
			body: minimalConfig + "llm:\n  provider: GEMINI\n",
			want: "llm.provider",
		},
		{
			name: "safety without thresholds",
			body: minimalConfig + "safety:\n  enabled: true\n",
			want: "safety",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.body))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error mentioning %q, got: %v", tc.want, err)
			}
		})
	}
}

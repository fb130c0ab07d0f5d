package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mt5-summary-bot/internal/agent"
	"mt5-summary-bot/internal/agent/agentobs"
	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/llm/llmobs"
	"mt5-summary-bot/internal/llm/noop"
	"mt5-summary-bot/internal/llm/ollama"
	"mt5-summary-bot/internal/llm/openai"
	"mt5-summary-bot/internal/logger"
	"mt5-summary-bot/internal/notify"
	"mt5-summary-bot/internal/reportlog"
	"mt5-summary-bot/internal/store"
	"mt5-summary-bot/internal/terminal/mt5"
	"mt5-summary-bot/internal/terminal/terminalobs"
	"mt5-summary-bot/internal/trace"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	runNow := flag.Bool("now", false, "run one summary cycle immediately and exit")
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()
	must(trace.Init())
	must(logger.Init())

	cfg, err := store.LoadConfig(*configPath)
	must(err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer trace.Shutdown(context.Background())

	if v := os.Getenv("REPORTLOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		_ = reportlog.CompressOlder(n)
	}

	runner := buildRunner(cfg)

	if *runNow {
		result, err := runner.Run(ctx)
		must(err)
		b, _ := json.Marshal(result)
		fmt.Println(string(b))
		return
	}

	c := cron.New()
	runJob := func() {
		if _, err := runner.Run(ctx); err != nil {
			logger.ErrorWithErr(ctx, "Scheduled run failed", err)
		}
	}
	_, err = c.AddFunc(cfg.Schedule.WeekdayCron, runJob)
	must(err)
	_, err = c.AddFunc(cfg.Schedule.WeekendCron, runJob)
	must(err)
	c.Start()

	logger.Info(ctx, "Agent started",
		"weekday_schedule", cfg.Schedule.WeekdayCron,
		"weekend_schedule", cfg.Schedule.WeekendCron)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	logger.Info(ctx, "Shutting down...")
	<-c.Stop().Done()
}

func buildRunner(cfg *store.Config) interfaces.Runner {
	terminal := terminalobs.Wrap(mt5.New(cfg))

	var analyzer interfaces.Analyzer
	switch cfg.LLM.Provider {
	case "OLLAMA":
		analyzer = ollama.NewOllamaAnalyzer(cfg)
	case "OPENAI":
		analyzer = openai.NewOpenAIAnalyzer(cfg)
	default:
		log.Println(">> LLM analysis disabled")
		analyzer = noop.NewNoopAnalyzer()
	}
	analyzer = llmobs.Wrap(analyzer)

	var notifier interfaces.Notifier
	if cfg.Telegram.Enabled {
		notifier = notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	} else {
		log.Println(">> Telegram delivery disabled")
	}

	return agentobs.Wrap(agent.New(cfg, terminal, analyzer, notifier))
}

package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/logger"
	"mt5-summary-bot/internal/report"
	"mt5-summary-bot/internal/reportlog"
	"mt5-summary-bot/internal/store"
	"mt5-summary-bot/internal/summary"
	"mt5-summary-bot/internal/types"
)

// Agent runs one summary cycle: connect, aggregate each period window,
// analyze, format, deliver. Analyzer and notifier failures degrade the run;
// only a failed terminal connection aborts it.
type Agent struct {
	cfg      *store.Config
	terminal interfaces.Terminal
	analyzer interfaces.Analyzer
	notifier interfaces.Notifier

	// Clock is swappable in tests.
	Clock func() time.Time
}

// Compile-time interface check
var _ interfaces.Runner = (*Agent)(nil)

func New(cfg *store.Config, terminal interfaces.Terminal, analyzer interfaces.Analyzer, notifier interfaces.Notifier) *Agent {
	return &Agent{
		cfg:      cfg,
		terminal: terminal,
		analyzer: analyzer,
		notifier: notifier,
		Clock:    time.Now,
	}
}

func (a *Agent) Run(ctx context.Context) (*types.RunResult, error) {
	timer := logger.StartOperation(ctx, "agent.Run")
	ctx = timer.GetContext()

	sess, err := a.terminal.Connect(ctx)
	if err != nil {
		timer.EndWithError(err)
		return nil, fmt.Errorf("connect terminal: %w", err)
	}
	defer func() {
		if cerr := sess.Close(ctx); cerr != nil {
			logger.Warn(ctx, "Failed to close terminal session", "error", cerr)
		}
	}()

	now := a.Clock()
	result := &types.RunResult{Summaries: make(map[string]types.Summary)}

	periods := a.collectPeriods(ctx, sess, now, result)

	positions := a.collectPositions(ctx, sess, result)
	account := a.collectAccount(ctx, sess, result)

	allowClose, policyNote := a.evaluateSafety(positions, account)

	result.Analysis = a.analyze(ctx, now, positions, periods, allowClose, result)

	text := report.NewFormatter(a.cfg.Telegram.CharBudget, a.cfg.Report.TopStrategies).Message(report.Input{
		Now:        now,
		Account:    account,
		Positions:  positions,
		Periods:    periods,
		Analysis:   result.Analysis,
		PolicyNote: policyNote,
	})

	a.deliver(ctx, text, periods, result)

	timer.End("periods", len(periods), "sent", result.Sent, "errors", len(result.Errors))
	return result, nil
}

// collectPeriods aggregates each period window independently. A failed
// history query skips that period without aborting the run.
func (a *Agent) collectPeriods(ctx context.Context, sess interfaces.Session, now time.Time, result *types.RunResult) []report.PeriodSummary {
	var periods []report.PeriodSummary
	for _, p := range summary.Periods() {
		from := summary.WindowStart(p, now)
		deals, err := sess.DealsRange(ctx, from, now)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: deal history query failed: %v", p, err))
			continue
		}

		s := summary.Summarize(deals)
		result.Summaries[string(p)] = s
		periods = append(periods, report.PeriodSummary{Period: p, Summary: s})

		logger.PeriodSummary(ctx, string(p), s.CompletedTrades, s.TotalPnL, s.WinRate)

		if p == summary.PeriodDay {
			if n := s.Strategies[summary.LabelUntagged].Trades; n > 0 {
				logger.Warn(ctx, "Untagged trades detected today", "count", n)
			}
		}
	}
	return periods
}

func (a *Agent) collectPositions(ctx context.Context, sess interfaces.Session, result *types.RunResult) []types.Position {
	positions, err := sess.OpenPositions(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("open positions query failed: %v", err))
		return nil
	}
	return positions
}

func (a *Agent) collectAccount(ctx context.Context, sess interfaces.Session, result *types.RunResult) *types.AccountInfo {
	info, err := sess.AccountInfo(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("account info query failed: %v", err))
		return nil
	}
	return &info
}

// evaluateSafety gates close advice behind the floating-loss policy. With the
// policy disabled the advice is unrestricted and no note is shown.
func (a *Agent) evaluateSafety(positions []types.Position, account *types.AccountInfo) (bool, string) {
	if !a.cfg.Safety.Enabled {
		return true, ""
	}
	balance := 0.0
	if account != nil {
		balance = account.Balance
	}
	return report.Evaluate(positions, balance, report.Thresholds{
		MaxLossUSD: a.cfg.Safety.MaxLossUSD,
		MaxLossPct: a.cfg.Safety.MaxLossPct,
	})
}

func (a *Agent) analyze(ctx context.Context, now time.Time, positions []types.Position, periods []report.PeriodSummary, allowClose bool, result *types.RunResult) string {
	prompt := report.BuildPrompt(report.PromptInput{
		Now:              now,
		Positions:        positions,
		Periods:          periods,
		TopStrategies:    a.cfg.Report.TopStrategies,
		AllowCloseAdvice: allowClose,
		MaxOutputChars:   a.cfg.LLM.MaxOutputChars,
	})

	llmCtx, cancel := context.WithTimeout(ctx, time.Duration(a.cfg.LLM.TimeoutSeconds)*time.Second)
	defer cancel()

	text, err := a.analyzer.Analyze(llmCtx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			result.Errors = append(result.Errors, fmt.Sprintf("analysis timed out after %ds", a.cfg.LLM.TimeoutSeconds))
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("analysis failed: %v", err))
		}
		return ""
	}
	return strings.TrimSpace(text)
}

// deliver sends the rendered message and records the outcome in the report
// audit log. A nil notifier means delivery is disabled.
func (a *Agent) deliver(ctx context.Context, text string, periods []report.PeriodSummary, result *types.RunResult) {
	if a.notifier == nil {
		logger.Info(ctx, "Notification delivery disabled, skipping send")
		return
	}

	names := make([]string, 0, len(periods))
	for _, ps := range periods {
		names = append(names, string(ps.Period))
	}

	err := a.notifier.SendText(ctx, text)
	result.Sent = err == nil
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("notification send failed: %v", err))
	}

	logger.Notification(ctx, "telegram", len([]rune(text)), result.Sent)

	if lerr := reportlog.Append(reportlog.Entry{
		Channel: "telegram",
		Chars:   len([]rune(text)),
		Sent:    result.Sent,
		Periods: names,
	}); lerr != nil {
		logger.Warn(ctx, "Failed to append report log entry", "error", lerr)
	}
}

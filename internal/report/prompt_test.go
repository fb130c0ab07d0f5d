package report

import (
	"strings"
	"testing"
	"time"

	"mt5-summary-bot/internal/summary"
	"mt5-summary-bot/internal/types"
)

func TestBuildPromptWeekendNote(t *testing.T) {
	saturday := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	prompt := BuildPrompt(PromptInput{Now: saturday})
	if !strings.Contains(prompt, "WEEKEND") {
		t.Error("expected weekend context note on Saturday")
	}

	thursday := time.Date(2025, 3, 13, 10, 0, 0, 0, time.UTC)
	prompt = BuildPrompt(PromptInput{Now: thursday})
	if strings.Contains(prompt, "WEEKEND") {
		t.Error("weekend note must not appear on a weekday")
	}
}

func TestBuildPromptUntaggedContext(t *testing.T) {
	prompt := BuildPrompt(PromptInput{Now: testNow})
	if !strings.Contains(prompt, summary.LabelUntagged) {
		t.Error("expected legacy-untagged context note")
	}
	if !strings.Contains(prompt, "LEGACY") {
		t.Error("expected the untagged bucket to be flagged as legacy data")
	}
}

func TestBuildPromptOpenPositions(t *testing.T) {
	in := PromptInput{
		Now: testNow,
		Positions: []types.Position{
			{Symbol: "EURUSD", Volume: 0.2, Profit: 15.5, Comment: "Breakout"},
			{Symbol: "GBPUSD", Volume: 0.1, Profit: -8.25},
		},
		AllowCloseAdvice: true,
		MaxOutputChars:   800,
	}
	prompt := BuildPrompt(in)

	if !strings.Contains(prompt, "OPEN POSITIONS (2)") {
		t.Error("expected open positions header")
	}
	if !strings.Contains(prompt, "EURUSD [WINNING]") || !strings.Contains(prompt, "GBPUSD [LOSING]") {
		t.Errorf("expected WINNING/LOSING status per position:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Total Open Exposure: $7.25") {
		t.Errorf("expected total exposure line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "No strategy") {
		t.Error("expected untagged position to show 'No strategy'")
	}
	if strings.Contains(prompt, "DO NOT recommend closing") {
		t.Error("close advice allowed: no-close instruction must be absent")
	}
}

func TestBuildPromptSuppressesCloseAdvice(t *testing.T) {
	in := PromptInput{
		Now:       testNow,
		Positions: []types.Position{{Symbol: "EURUSD", Profit: -5}},
	}
	prompt := BuildPrompt(in)
	if !strings.Contains(prompt, "DO NOT recommend closing") {
		t.Errorf("expected no-close policy instruction:\n%s", prompt)
	}
}

func TestBuildPromptNoPositions(t *testing.T) {
	prompt := BuildPrompt(PromptInput{Now: testNow, MaxOutputChars: 600})
	if !strings.Contains(prompt, "None (all positions closed)") {
		t.Error("expected explicit no-open-positions line")
	}
	if !strings.Contains(prompt, "MAX 600 CHARS") {
		t.Error("expected output cap instruction with configured size")
	}
	if !strings.Contains(prompt, "Best Performers") {
		t.Error("expected flat-book output template")
	}
}

func TestBuildPromptPeriodLinesAndBreakdown(t *testing.T) {
	in := PromptInput{
		Now: testNow,
		Periods: []PeriodSummary{
			{Period: summary.PeriodDay, Summary: types.Summary{TotalPnL: 12.5, CompletedTrades: 2, WinRate: 50}},
			{Period: summary.PeriodYear, Summary: types.Summary{
				TotalPnL: 210, CompletedTrades: 40, WinRate: 55,
				Strategies: map[string]types.StrategyPerf{
					"Breakout":                     {Trades: 30, PnL: 250, Wins: 20, Losses: 10},
					"Scalp":                        {Trades: 10, PnL: -40, Wins: 2, Losses: 8},
					summary.LabelDepositWithdrawal: {Trades: 2, PnL: 1000},
				},
			}},
		},
		TopStrategies: 5,
	}
	prompt := BuildPrompt(in)

	if !strings.Contains(prompt, "**TODAY** P&L: $12.50") {
		t.Errorf("expected daily period line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "**YEAR** P&L: $210.00") {
		t.Errorf("expected yearly period line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Breakout [PROFITABLE]") || !strings.Contains(prompt, "Scalp [LOSING]") {
		t.Errorf("expected strategy breakdown with status:\n%s", prompt)
	}
	if strings.Contains(prompt, summary.LabelDepositWithdrawal+" [") {
		t.Error("Deposit/Withdrawal must not appear in the breakdown")
	}
}

package report

import (
	"strings"
	"testing"

	"mt5-summary-bot/internal/types"
)

func TestEvaluateNoBreach(t *testing.T) {
	positions := []types.Position{
		{Symbol: "EURUSD", Profit: -10},
		{Symbol: "GBPUSD", Profit: 25},
	}
	allowed, note := Evaluate(positions, 10000, Thresholds{MaxLossUSD: 100, MaxLossPct: 2})
	if allowed {
		t.Error("expected close advice suppressed when no threshold is breached")
	}
	if !strings.Contains(note, "suppressed") {
		t.Errorf("expected suppression note, got %q", note)
	}
}

func TestEvaluateDollarBreach(t *testing.T) {
	positions := []types.Position{{Symbol: "NZDUSD", Profit: -150}}
	allowed, note := Evaluate(positions, 10000, Thresholds{MaxLossUSD: 100})
	if !allowed {
		t.Fatal("expected dollar threshold breach to allow close advice")
	}
	if !strings.Contains(note, "NZDUSD") {
		t.Errorf("expected breaching symbol in note, got %q", note)
	}
}

func TestEvaluatePercentBreach(t *testing.T) {
	positions := []types.Position{{Symbol: "USDJPY", Profit: -250}}
	allowed, note := Evaluate(positions, 10000, Thresholds{MaxLossPct: 2})
	if !allowed {
		t.Fatalf("expected percent threshold breach, note %q", note)
	}
	if !strings.Contains(note, "USDJPY") {
		t.Errorf("expected breaching symbol in note, got %q", note)
	}
}

func TestEvaluateProfitableNeverBreaches(t *testing.T) {
	positions := []types.Position{{Symbol: "EURUSD", Profit: 500}}
	allowed, _ := Evaluate(positions, 100, Thresholds{MaxLossUSD: 1, MaxLossPct: 0.1})
	if allowed {
		t.Error("profitable positions must never trigger the gate")
	}
}

func TestEvaluateZeroThresholdsDisabled(t *testing.T) {
	positions := []types.Position{{Symbol: "EURUSD", Profit: -9999}}
	allowed, _ := Evaluate(positions, 10000, Thresholds{})
	if allowed {
		t.Error("zero thresholds disable both rules")
	}
}

func TestEvaluatePercentRuleNeedsBalance(t *testing.T) {
	positions := []types.Position{{Symbol: "EURUSD", Profit: -50}}
	allowed, _ := Evaluate(positions, 0, Thresholds{MaxLossPct: 1})
	if allowed {
		t.Error("percent rule must be inert without a balance")
	}
}

package mt5

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mt5-summary-bot/internal/store"
	"mt5-summary-bot/internal/types"
)

func testConfig(bridgeURL string) *store.Config {
	cfg := &store.Config{}
	cfg.Terminal.BridgeURL = bridgeURL
	cfg.Terminal.Login = 12345
	cfg.Terminal.Password = "secret"
	cfg.Terminal.Server = "Demo-Server"
	cfg.Terminal.TimeoutSeconds = 5
	return cfg
}

func TestWireDealDefaultsMissingFields(t *testing.T) {
	// Swap, commission, fee and comment omitted: all must default to zero
	// values instead of failing.
	raw := `{"ticket": 7, "position_id": 42, "entry": 1, "profit": 12.5}`
	var w wireDeal
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		t.Fatalf("decode: %v", err)
	}
	d := w.toDeal()
	if d.PositionID != 42 || d.Entry != types.DealEntryOut || d.Profit != 12.5 {
		t.Errorf("unexpected deal: %+v", d)
	}
	if d.Swap != 0 || d.Commission != 0 || d.Fee != 0 || d.Comment != "" {
		t.Errorf("missing optional fields must default to zero: %+v", d)
	}
}

func TestConnectAndQueries(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/connect":
			var cr connectRequest
			_ = json.NewDecoder(r.Body).Decode(&cr)
			if cr.Login != 12345 || cr.Server != "Demo-Server" {
				t.Errorf("unexpected connect payload: %+v", cr)
			}
			_ = json.NewEncoder(w).Encode(connectResponse{Token: "tok-1"})
		case "/history/deals":
			gotAuth = r.Header.Get("Authorization")
			if r.URL.Query().Get("from") == "" || r.URL.Query().Get("to") == "" {
				t.Error("expected from/to query params")
			}
			_ = json.NewEncoder(w).Encode(dealsResponse{Deals: []wireDeal{
				{Ticket: 1, PositionID: 10, Entry: 0, Comment: "Breakout"},
				{Ticket: 2, PositionID: 10, Entry: 1, Profit: 5},
			}})
		case "/positions":
			_ = json.NewEncoder(w).Encode(positionsResponse{Positions: []wirePosition{
				{Symbol: "EURUSD", Volume: 0.1, PriceOpen: 1.08, PriceCurrent: 1.09, Profit: 10},
			}})
		case "/account":
			_ = json.NewEncoder(w).Encode(wireAccount{Balance: 1000, Equity: 990, MarginFree: 800})
		case "/shutdown":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	ctx := context.Background()

	sess, err := c.Connect(ctx)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	deals, err := sess.DealsRange(ctx, time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("deals: %v", err)
	}
	if len(deals) != 2 || deals[0].Comment != "Breakout" {
		t.Errorf("unexpected deals: %+v", deals)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("expected bearer session token, got %q", gotAuth)
	}

	positions, err := sess.OpenPositions(ctx)
	if err != nil {
		t.Fatalf("positions: %v", err)
	}
	if len(positions) != 1 || positions[0].OpenPrice != 1.08 || positions[0].CurrentPrice != 1.09 {
		t.Errorf("unexpected positions: %+v", positions)
	}

	acct, err := sess.AccountInfo(ctx)
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if acct.FreeMargin != 800 {
		t.Errorf("expected free margin mapped from margin_free, got %+v", acct)
	}

	if err := sess.Close(ctx); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestConnectRejectsEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(connectResponse{})
	}))
	defer srv.Close()

	if _, err := New(testConfig(srv.URL)).Connect(context.Background()); err == nil {
		t.Fatal("expected error on empty session token")
	}
}

func TestConnectHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "login failed", http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := New(testConfig(srv.URL)).Connect(context.Background()); err == nil {
		t.Fatal("expected error on http 401")
	}
}

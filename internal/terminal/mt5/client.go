package mt5

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/store"
	"mt5-summary-bot/internal/types"
)

// Client talks to a local REST bridge in front of the MT5 terminal. The
// terminal itself exposes no Go API; the bridge forwards initialize/login,
// history and position queries over HTTP.
type Client struct {
	cfg   *store.Config
	httpc *http.Client
}

var _ interfaces.Terminal = (*Client)(nil)

func New(cfg *store.Config) *Client {
	return &Client{
		cfg: cfg,
		httpc: &http.Client{
			Timeout: time.Duration(cfg.Terminal.TimeoutSeconds) * time.Second,
		},
	}
}

// Connect performs the initialize+login handshake and returns an
// authenticated session. The session token scopes every subsequent query.
func (c *Client) Connect(ctx context.Context) (interfaces.Session, error) {
	body, _ := json.Marshal(connectRequest{
		Login:    c.cfg.Terminal.Login,
		Password: c.cfg.Terminal.Password,
		Server:   c.cfg.Terminal.Server,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/connect"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mt5 connect: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("mt5 connect http %d", resp.StatusCode)
	}

	var cr connectResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("mt5 connect: %w", err)
	}
	if cr.Token == "" {
		return nil, fmt.Errorf("mt5 connect: bridge returned no session token")
	}
	return &Session{client: c, token: cr.Token}, nil
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.cfg.Terminal.BridgeURL, "/") + path
}

// Session is an authenticated bridge connection.
type Session struct {
	client *Client
	token  string
}

var _ interfaces.Session = (*Session)(nil)

// DealsRange fetches the raw deal records for the half-open window [from, to).
func (s *Session) DealsRange(ctx context.Context, from, to time.Time) ([]types.Deal, error) {
	q := url.Values{}
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(to.Unix(), 10))

	var dr dealsResponse
	if err := s.get(ctx, "/history/deals?"+q.Encode(), &dr); err != nil {
		return nil, fmt.Errorf("mt5 deals: %w", err)
	}
	deals := make([]types.Deal, 0, len(dr.Deals))
	for _, d := range dr.Deals {
		deals = append(deals, d.toDeal())
	}
	return deals, nil
}

// OpenPositions fetches the currently open positions.
func (s *Session) OpenPositions(ctx context.Context) ([]types.Position, error) {
	var pr positionsResponse
	if err := s.get(ctx, "/positions", &pr); err != nil {
		return nil, fmt.Errorf("mt5 positions: %w", err)
	}
	positions := make([]types.Position, 0, len(pr.Positions))
	for _, p := range pr.Positions {
		positions = append(positions, p.toPosition())
	}
	return positions, nil
}

// AccountInfo fetches the account snapshot.
func (s *Session) AccountInfo(ctx context.Context) (types.AccountInfo, error) {
	var wa wireAccount
	if err := s.get(ctx, "/account", &wa); err != nil {
		return types.AccountInfo{}, fmt.Errorf("mt5 account: %w", err)
	}
	return wa.toAccountInfo(), nil
}

// Close releases the bridge session. Safe to call after a failed query.
func (s *Session) Close(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.endpoint("/shutdown"), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("mt5 shutdown: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mt5 shutdown http %d", resp.StatusCode)
	}
	return nil
}

func (s *Session) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.endpoint(path), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("http %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

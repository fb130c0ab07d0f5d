package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"mt5-summary-bot/internal/store"
	"mt5-summary-bot/internal/trace"
)

// OllamaAnalyzer sends the analysis prompt to a local Ollama server.
type OllamaAnalyzer struct {
	cfg *store.Config
}

func NewOllamaAnalyzer(cfg *store.Config) *OllamaAnalyzer {
	return &OllamaAnalyzer{cfg: cfg}
}

func (a *OllamaAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "ollama-api-call")
	defer span.End()

	body := map[string]any{
		"model":  a.cfg.LLM.Model,
		"stream": false,
		"messages": []map[string]string{
			{"role": "system", "content": a.cfg.LLM.System},
			{"role": "user", "content": prompt},
		},
		"options": map[string]any{"temperature": a.cfg.LLM.Temperature},
	}
	bb, _ := json.Marshal(body)

	url := strings.TrimRight(a.cfg.LLM.BaseURL, "/") + "/api/chat"
	req, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(bb))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama http %d", resp.StatusCode)
	}

	var r struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}

	return strings.TrimSpace(r.Message.Content), nil
}

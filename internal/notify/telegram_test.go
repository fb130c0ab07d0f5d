package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendText(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier("test-token", "12345").WithBaseURL(server.URL)

	if err := n.SendText(context.Background(), "hello <b>world</b>"); err != nil {
		t.Fatalf("SendText failed: %v", err)
	}

	if !strings.Contains(gotPath, "bottest-token") {
		t.Errorf("expected token in path, got %s", gotPath)
	}
	if gotPayload["chat_id"] != "12345" {
		t.Errorf("expected chat_id 12345, got %v", gotPayload["chat_id"])
	}
	if gotPayload["text"] != "hello <b>world</b>" {
		t.Errorf("unexpected text: %v", gotPayload["text"])
	}
	if gotPayload["parse_mode"] != "HTML" {
		t.Errorf("expected HTML parse mode, got %v", gotPayload["parse_mode"])
	}
}

func TestSendTextRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier("tok", "1").WithBaseURL(server.URL)

	if err := n.SendText(context.Background(), "retry me"); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestSendTextGivesUpAfterThreeAttempts(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := NewTelegramNotifier("tok", "1").WithBaseURL(server.URL)

	err := n.SendText(context.Background(), "doomed")
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSendTextMissingCredentials(t *testing.T) {
	n := NewTelegramNotifier("", "")
	if err := n.SendText(context.Background(), "x"); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

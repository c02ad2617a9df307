package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/pkg/config"
)

func TestSummarize_Success(t *testing.T) {
	// Mock Gemini server
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Fatalf("unexpected api key header %q", got)
		}
		var payload generateRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if len(payload.Contents) != 1 || payload.Contents[0].Parts[0].Text != "summarize this meeting" {
			t.Fatalf("prompt not forwarded: %+v", payload)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": `{"summaryText":"ok"}`}},
				}},
			},
		})
	}))
	defer ts.Close()

	client := NewGeminiClient(&config.AIConfig{APIKey: "test-key", BaseURL: ts.URL})

	reply, err := client.Summarize(context.Background(), "summarize this meeting")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if reply != `{"summaryText":"ok"}` {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestSummarize_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewGeminiClient(&config.AIConfig{APIKey: "test-key", BaseURL: ts.URL})

	if _, err := client.Summarize(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestSummarize_EmptyCandidates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer ts.Close()

	client := NewGeminiClient(&config.AIConfig{APIKey: "test-key", BaseURL: ts.URL})

	if _, err := client.Summarize(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error on empty response")
	}
}

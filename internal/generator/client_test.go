package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func chatCompletion(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
}

func testDay(t *testing.T) time.Time {
	t.Helper()
	day, err := time.Parse("2006-01-02", "2025-08-14")
	if err != nil {
		t.Fatal(err)
	}
	return day
}

func TestGenerateFact(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(chatCompletion("```json\n" + validFactJSON + "\n```"))
	}))
	defer srv.Close()

	client := New(Config{Endpoint: srv.URL, Model: "deepseek-chat", APIKey: "sk-test"})

	fact, err := client.GenerateFact(context.Background(), testDay(t), []Avoid{{Title: "Nacimiento de Grace Hopper", Year: 1906}})
	if err != nil {
		t.Fatalf("GenerateFact() error = %v", err)
	}
	if fact.Year != 1995 {
		t.Errorf("Year = %d, want 1995", fact.Year)
	}

	if gotBody["model"] != "deepseek-chat" {
		t.Errorf("request model = %v", gotBody["model"])
	}
	messages := gotBody["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("messages len = %d, want 2", len(messages))
	}
	user := messages[1].(map[string]any)["content"].(string)
	if !strings.Contains(user, "14 de agosto") {
		t.Errorf("user prompt does not name the date: %q", user)
	}
	if !strings.Contains(user, "400-500") {
		t.Errorf("user prompt does not carry the description length target: %q", user)
	}
	if !strings.Contains(user, "Nacimiento de Grace Hopper (1906)") {
		t.Errorf("user prompt does not carry the avoidance list: %q", user)
	}
}

func TestGenerateFact_NoAvoidClause(t *testing.T) {
	client := New(Config{Endpoint: "http://unused", Model: "m", APIKey: "k"})
	prompt := client.userPrompt(testDay(t), nil)
	if strings.Contains(prompt, "EVITA") {
		t.Errorf("prompt carries avoidance clause with empty list: %q", prompt)
	}
}

func TestGenerateFact_NotConfigured(t *testing.T) {
	client := New(Config{Endpoint: "http://unused", Model: "m"})
	if _, err := client.GenerateFact(context.Background(), testDay(t), nil); err != ErrNotConfigured {
		t.Errorf("GenerateFact() error = %v, want ErrNotConfigured", err)
	}
}

func TestGenerateFact_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := New(Config{Endpoint: srv.URL, Model: "m", APIKey: "k"})
	if _, err := client.GenerateFact(context.Background(), testDay(t), nil); err == nil {
		t.Error("GenerateFact() succeeded on HTTP 429, want error")
	}
}

func TestGenerateFact_MalformedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatCompletion("no soy JSON"))
	}))
	defer srv.Close()

	client := New(Config{Endpoint: srv.URL, Model: "m", APIKey: "k"})
	if _, err := client.GenerateFact(context.Background(), testDay(t), nil); err == nil {
		t.Error("GenerateFact() succeeded on malformed content, want error")
	}
}

func TestGenerateFact_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	client := New(Config{Endpoint: srv.URL, Model: "m", APIKey: "k"})
	if _, err := client.GenerateFact(context.Background(), testDay(t), nil); err == nil {
		t.Error("GenerateFact() succeeded on empty choices, want error")
	}
}

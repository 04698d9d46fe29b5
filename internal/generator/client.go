// Package generator calls an OpenAI-compatible chat-completion API to
// synthesize a historical programming fact for a given date.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned when the client has no API key. Callers treat
// it like any other generation failure and route around the generator.
var ErrNotConfigured = fmt.Errorf("generator not configured")

const systemPrompt = "Eres un experto en historia de la programación y tecnología. Genera efemérides interesantes y precisas."

// spanishMonths maps time.Month to the month name used in the prompt.
var spanishMonths = [...]string{
	"", "enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Config wires all data required to contact the generator API.
type Config struct {
	Endpoint string
	Model    string
	APIKey   string

	// Description length target passed into the prompt.
	DescriptionMinChars int
	DescriptionMaxChars int

	Timeout time.Duration
}

// Avoid is a recently used topic the generator is told to stay away from.
type Avoid struct {
	Title string
	Year  int
}

// Client is a minimal chat-completions client.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	descMin    int
	descMax    int
	httpClient *http.Client
}

// New builds a client from configuration.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	descMin, descMax := cfg.DescriptionMinChars, cfg.DescriptionMaxChars
	if descMin <= 0 {
		descMin = 400
	}
	if descMax <= 0 {
		descMax = 500
	}
	return &Client{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		descMin:  descMin,
		descMax:  descMax,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateFact asks the API for a fact about the given day, avoiding the
// listed recent topics. The raw completion is sanitized and parsed; any
// formatting the model gets wrong surfaces as an error here.
func (c *Client) GenerateFact(ctx context.Context, day time.Time, avoid []Avoid) (*Fact, error) {
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": c.userPrompt(day, avoid)},
		},
		"max_tokens":  500,
		"temperature": 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal generator payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate fact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("generator error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode generator response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("generator returned no content")
	}

	return ParseFact(parsed.Choices[0].Message.Content)
}

func (c *Client) userPrompt(day time.Time, avoid []Avoid) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `Genera una efeméride para el día %d de %s relacionada con programación, tecnología, informática o desarrollo de software. Debe ser un evento real e histórico.

IMPORTANTE: Responde ÚNICAMENTE con un JSON válido, sin markdown, sin bloques de código, sin texto adicional. Solo el JSON:

{
  "title": "Título del evento (máximo 80 caracteres)",
  "description": "Descripción detallada del evento (EXACTAMENTE entre %d-%d caracteres, completa y bien redactada)",
  "year": año_del_evento,
  "category": "Categoría del evento"
}

REQUISITOS ESPECÍFICOS:
- La descripción debe tener entre %d-%d caracteres
- Debe ser informativa y completa en ese espacio
- No uses puntos suspensivos ni cortes abruptos
- Incluye detalles relevantes del evento histórico`,
		day.Day(), spanishMonths[day.Month()], c.descMin, c.descMax, c.descMin, c.descMax)

	if len(avoid) > 0 {
		sb.WriteString("\n\nEVITA repetir estos eventos ya usados recientemente:\n")
		for _, a := range avoid {
			fmt.Fprintf(&sb, "- %s (%d)\n", a.Title, a.Year)
		}
	}

	return sb.String()
}

package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Fact is the structured payload parsed out of a raw completion.
type Fact struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Year        int    `json:"year"`
	Category    string `json:"category"`
}

var (
	fenceOpen  = regexp.MustCompile("^```[a-zA-Z]*[ \t]*\r?\n?")
	fenceClose = regexp.MustCompile("\r?\n?```[ \t]*$")
)

// StripFences removes a leading/trailing markdown code fence (optionally
// tagged with a language name) and surrounding whitespace.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = fenceOpen.ReplaceAllString(s, "")
	s = fenceClose.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ParseFact strips markdown noise from raw text and parses it as a Fact.
// All four fields must be present; partial records are rejected.
func ParseFact(raw string) (*Fact, error) {
	cleaned := StripFences(raw)

	var fact Fact
	if err := json.Unmarshal([]byte(cleaned), &fact); err != nil {
		return nil, fmt.Errorf("parse generated fact: %w", err)
	}

	if fact.Title == "" {
		return nil, fmt.Errorf("generated fact missing title")
	}
	if fact.Description == "" {
		return nil, fmt.Errorf("generated fact missing description")
	}
	if fact.Year == 0 {
		return nil, fmt.Errorf("generated fact missing year")
	}
	if fact.Category == "" {
		return nil, fmt.Errorf("generated fact missing category")
	}

	return &fact, nil
}

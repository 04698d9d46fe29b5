package ephemeris

import (
	"strings"
	"testing"
	"time"

	"terminaltime/internal/config"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatal(err)
	}
	return day
}

func TestCuratedTable_ExactMatch(t *testing.T) {
	table := NewCuratedTable(nil)

	rec, source := table.ForDate(mustDate(t, "2025-08-14"))

	if source != "curated" {
		t.Errorf("source = %q, want curated", source)
	}
	if rec.Title != `Primer uso del término "Debugging"` {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Year != 1947 {
		t.Errorf("Year = %d, want 1947", rec.Year)
	}
	if rec.Category != "Historia de la Depuración" {
		t.Errorf("Category = %q", rec.Category)
	}
	if rec.Date != "2025-08-14" {
		t.Errorf("Date = %q, want rewritten to 2025-08-14", rec.Date)
	}
}

func TestCuratedTable_DateRewrittenAcrossYears(t *testing.T) {
	table := NewCuratedTable(nil)

	rec, _ := table.ForDate(mustDate(t, "2030-12-09"))
	if rec.Date != "2030-12-09" {
		t.Errorf("Date = %q, want 2030-12-09", rec.Date)
	}
	if rec.Year != 1906 {
		t.Errorf("Year = %d, want the historical year 1906", rec.Year)
	}
}

func TestCuratedTable_RandomSubstitution(t *testing.T) {
	table := NewCuratedTable(nil)

	// No curated entry exists for 06-20.
	rec, source := table.ForDate(mustDate(t, "2025-06-20"))

	if source != "random" {
		t.Errorf("source = %q, want random", source)
	}
	if !strings.HasPrefix(rec.ID, "random-") {
		t.Errorf("ID = %q, want random- prefix", rec.ID)
	}
	if !strings.Contains(rec.Title, "(Efeméride Aleatoria)") {
		t.Errorf("Title = %q, want substitution marker", rec.Title)
	}
	if !strings.Contains(rec.Description, "20 de junio") {
		t.Errorf("Description does not name the requested date: %q", rec.Description)
	}
	if rec.Date != "2025-06-20" {
		t.Errorf("Date = %q, want 2025-06-20", rec.Date)
	}
	if rec.Title == "" || rec.Description == "" {
		t.Error("substituted record has empty title or description")
	}
}

func TestCuratedTable_RandomIDsAreFresh(t *testing.T) {
	table := NewCuratedTable(nil)
	day := mustDate(t, "2025-06-20")

	a, _ := table.ForDate(day)
	b, _ := table.ForDate(day)
	if a.ID == b.ID {
		t.Errorf("two substituted records share id %q", a.ID)
	}
}

func TestCuratedTable_Overrides(t *testing.T) {
	table := NewCuratedTable([]config.EphemerideConfig{
		{
			MonthDay:    "03-15",
			Title:       "Nace el dominio .com",
			Description: "Se registró symbolics.com, el primer dominio .com de la historia.",
			Year:        1985,
			Category:    "Internet",
		},
		{MonthDay: "04-01"}, // missing title, ignored
	})

	rec, source := table.ForDate(mustDate(t, "2025-03-15"))
	if source != "curated" {
		t.Fatalf("source = %q, want curated", source)
	}
	if rec.Year != 1985 {
		t.Errorf("Year = %d, want 1985", rec.Year)
	}
	if rec.ID != "curated-03-15" {
		t.Errorf("ID = %q, want generated curated-03-15", rec.ID)
	}

	for _, d := range table.Dates() {
		if d == "04-01" {
			t.Error("override without title must be ignored")
		}
	}
}

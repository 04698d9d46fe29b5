package ephemeris

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"terminaltime/internal/config"
	"terminaltime/internal/models"
)

// curatedEntries maps month-day (MM-DD) to a hand-authored record. The table
// guarantees the resolver can always produce a record with zero external
// dependencies.
var curatedEntries = map[string]models.Ephemeride{
	"08-14": {
		ID:          "aug-14-1",
		Title:       `Primer uso del término "Debugging"`,
		Description: `El 14 de agosto de 1947, Grace Hopper, pionera de la computación, encontró una polilla real atrapada en un relé del Harvard Mark II, causando un mal funcionamiento. Este incidente popularizó el término "debugging" (depuración) en la programación. Hopper pegó la polilla en su bitácora con la nota "First actual case of bug being found". Aunque el término ya se usaba antes, este evento físico lo inmortalizó en la cultura de la programación.`,
		Year:        1947,
		Category:    "Historia de la Depuración",
	},
	"08-13": {
		ID:          "aug-13-1",
		Title:       "Nacimiento de Dan Bricklin",
		Description: `El 13 de agosto de 1951 nació Dan Bricklin, co-creador de VisiCalc, la primera hoja de cálculo electrónica. VisiCalc fue lanzada en 1979 y se considera el "killer app" que impulsó las ventas de computadoras personales Apple II. Su invención revolucionó la forma en que las empresas manejaban datos financieros y se convirtió en el precursor de Microsoft Excel y otras hojas de cálculo modernas.`,
		Year:        1951,
		Category:    "Software de Productividad",
	},
	"08-15": {
		ID:          "aug-15-1",
		Title:       "Lanzamiento de Windows 95",
		Description: `El 15 de agosto de 1995, Microsoft lanzó Windows 95, un sistema operativo que transformó la computación personal. Introdujo el botón Inicio, la barra de tareas y soporte nativo para nombres de archivo largos. Fue el primer Windows en integrar MS-DOS y Windows en un solo producto. Su campaña publicitaria con "Start Me Up" de los Rolling Stones costó 300 millones de dólares. Windows 95 vendió 7 millones de copias en las primeras cinco semanas.`,
		Year:        1995,
		Category:    "Sistemas Operativos",
	},
	"01-01": {
		ID:          "jan-01-1",
		Title:       "El Bug del Año 2000 no colapsa el mundo",
		Description: `El 1 de enero de 2000, millones de programadores celebraron cuando sus esfuerzos por corregir el "Bug Y2K" resultaron exitosos. Durante años, la industria trabajó para actualizar sistemas que usaban solo dos dígitos para el año, temiendo un colapso global. El problema surgía porque muchos sistemas interpretarían "00" como 1900 en lugar de 2000. Aunque algunos sistemas menores fallaron, no ocurrió la catástrofe predicha, demostrando la efectividad de la preparación masiva de la comunidad de desarrollo.`,
		Year:        2000,
		Category:    "Crisis Tecnológica",
	},
	"12-09": {
		ID:          "dec-09-1",
		Title:       "Nacimiento de Grace Hopper",
		Description: `El 9 de diciembre de 1906 nació Grace Murray Hopper, pionera de la programación de computadoras. Desarrolló el primer compilador para un lenguaje de programación y fue instrumental en el desarrollo de COBOL. Popularizó el término "debugging" y creó el concepto de lenguajes de programación independientes de la máquina. Su trabajo sentó las bases para hacer la programación más accesible y comprensible para humanos.`,
		Year:        1906,
		Category:    "Pioneros de la Programación",
	},
}

// CuratedTable is the static, in-process table of hand-authored records
// keyed by month-day.
type CuratedTable struct {
	entries map[string]models.Ephemeride
	keys    []string // sorted month-days
}

// NewCuratedTable builds the table from the built-in entries plus any
// overrides from the optional YAML config.
func NewCuratedTable(overrides []config.EphemerideConfig) *CuratedTable {
	entries := make(map[string]models.Ephemeride, len(curatedEntries)+len(overrides))
	for k, v := range curatedEntries {
		entries[k] = v
	}
	for _, o := range overrides {
		if o.MonthDay == "" || o.Title == "" {
			continue
		}
		id := o.ID
		if id == "" {
			id = "curated-" + o.MonthDay
		}
		entries[o.MonthDay] = models.Ephemeride{
			ID:          id,
			Title:       o.Title,
			Description: o.Description,
			Year:        o.Year,
			Category:    o.Category,
		}
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &CuratedTable{
		entries: entries,
		keys:    keys,
	}
}

// ForDate returns the curated record for the given day with its date rewritten
// to the actual date. When no entry exists for the month-day it selects a
// random entry and annotates it so the substitution stays visible to the
// reader. The second return value is the resolution source.
func (t *CuratedTable) ForDate(now time.Time) (*models.Ephemeride, string) {
	date := now.Format("2006-01-02")
	monthDay := now.Format("01-02")

	if entry, ok := t.entries[monthDay]; ok {
		entry.Date = date
		entry.CreatedAt = now.UTC()
		return &entry, models.SourceCurated
	}

	// Top-level rand is safe for concurrent handlers.
	entry := t.entries[t.keys[rand.Intn(len(t.keys))]]
	entry.ID = "random-" + uuid.NewString()
	entry.Date = date
	entry.CreatedAt = now.UTC()
	entry.Title = entry.Title + " (Efeméride Aleatoria)"
	entry.Description = fmt.Sprintf(
		"%s\n\n[Nota: Esta es una efeméride aleatoria ya que no hay una específica para el %d de %s.]",
		entry.Description, now.Day(), spanishMonth(now.Month()))
	return &entry, models.SourceRandom
}

// Dates lists the month-days that have a curated entry.
func (t *CuratedTable) Dates() []string {
	return append([]string(nil), t.keys...)
}

var spanishMonths = [...]string{
	"", "enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

func spanishMonth(m time.Month) string {
	return spanishMonths[m]
}

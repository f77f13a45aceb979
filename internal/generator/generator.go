package generator

import (
	"log/slog"
	"runtime"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/concordia-labs/concordia/internal/config"
)

// Config holds generator configuration.
type Config struct {
	// Rules drive classification, mapping, and synthesis
	Rules config.ModelRules
	// Looker holds output project configuration
	Looker config.LookerConfig
	// Workers bounds Phase-1 parallelism (default: GOMAXPROCS)
	Workers int
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Generator transforms table metadata into a LookML project. A
// generator is immutable after construction and safe for concurrent
// use; each Generate call owns its own output and diagnostics.
type Generator struct {
	rules      config.ModelRules
	looker     config.LookerConfig
	workers    int
	logger     *slog.Logger
	classifier *Classifier
	types      *TypeMapper
}

// New creates a generator from validated configuration.
func New(cfg Config) *Generator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Generator{
		rules:      cfg.Rules,
		looker:     cfg.Looker,
		workers:    workers,
		logger:     logger,
		classifier: NewClassifier(cfg.Rules.Naming),
		types:      NewTypeMapper(cfg.Rules),
	}
}

// viewName derives a view name from a table name, applying the
// configured prefix and suffix.
func (g *Generator) viewName(table string) string {
	name := strings.ToLower(table)
	return g.rules.Naming.ViewPrefix + name + g.rules.Naming.ViewSuffix
}

// exploreName derives an explore name from a table name.
func (g *Generator) exploreName(table string) string {
	name := strings.ToLower(table)
	return g.rules.Naming.ExplorePrefix + name + g.rules.Naming.ExploreSuffix
}

// labelFor turns a field name into a human label (order_total ->
// Order Total). A cases.Caser is a stateful transformer, so one is
// allocated per call; Phase-1 workers call this concurrently.
func (g *Generator) labelFor(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(strings.ToLower(name), "_", " "))
}

// shouldHide applies the hidden-field policy to a column name.
func (g *Generator) shouldHide(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range g.rules.Defaults.HideFieldsBySuffix {
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

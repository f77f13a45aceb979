package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/concordia-labs/concordia/internal/config"
	"github.com/concordia-labs/concordia/pkg/core"
)

// Writer persists rendered LookML artifacts: one <view>.view.lkml file
// per view plus a single combined explore file.
type Writer struct {
	looker config.LookerConfig
	logger *slog.Logger
}

// NewWriter creates a writer for the configured output paths.
func NewWriter(looker config.LookerConfig, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Writer{looker: looker, logger: logger}
}

// WriteProject writes every artifact and returns the written paths in
// a stable order: views first (project order), explore file last.
func (w *Writer) WriteProject(p *core.Project) ([]string, error) {
	viewsDir := filepath.Join(w.looker.ProjectPath, w.looker.ViewsPath)
	if err := os.MkdirAll(viewsDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create views directory: %w", err)
	}

	var written []string
	for _, v := range p.Views {
		path := filepath.Join(viewsDir, v.Name+".view.lkml")
		if err := os.WriteFile(path, []byte(View(v)), 0644); err != nil {
			return written, fmt.Errorf("failed to write view %s: %w", v.Name, err)
		}
		w.logger.Debug("wrote view", "path", path)
		written = append(written, path)
	}

	explorePath := filepath.Join(w.looker.ProjectPath, w.looker.ExploresPath)
	if err := os.MkdirAll(filepath.Dir(explorePath), 0750); err != nil {
		return written, fmt.Errorf("failed to create explores directory: %w", err)
	}

	content := Explores(p, w.includeGlob())
	if err := os.WriteFile(explorePath, []byte(content), 0644); err != nil {
		return written, fmt.Errorf("failed to write explores: %w", err)
	}
	w.logger.Debug("wrote explores", "path", explorePath)
	written = append(written, explorePath)

	return written, nil
}

// includeGlob derives the include pattern for view files, relative to
// the explore file's directory.
func (w *Writer) includeGlob() string {
	rel, err := filepath.Rel(filepath.Dir(w.looker.ExploresPath), w.looker.ViewsPath)
	if err != nil {
		rel = w.looker.ViewsPath
	}
	return filepath.ToSlash(filepath.Join(rel, "*.view.lkml"))
}

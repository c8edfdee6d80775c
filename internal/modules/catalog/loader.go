package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shinydollop/core/internal/models"
	"gorm.io/gorm"
)

// Loader produces raw source records for the Normalizer. Implementations
// exist per storage backend; the Store does not care which one it holds.
type Loader interface {
	Load(ctx context.Context) ([]SourceRecord, error)
}

// MarkdownLoader reads gallery documents from a data directory laid out as
// data/<model>/<gallery>/index.md (new structure) or data/<model>/<gallery>.md
// (old structure).
type MarkdownLoader struct {
	Dir string
}

func (l *MarkdownLoader) Load(ctx context.Context) ([]SourceRecord, error) {
	modelDirs, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir %s: %w", l.Dir, err)
	}

	var records []SourceRecord
	for _, modelDir := range modelDirs {
		if !modelDir.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modelPath := filepath.Join(l.Dir, modelDir.Name())
		entries, err := os.ReadDir(modelPath)
		if err != nil {
			return nil, fmt.Errorf("read model dir %s: %w", modelPath, err)
		}

		for _, entry := range entries {
			var docPath, name string
			switch {
			case entry.IsDir():
				docPath = filepath.Join(modelPath, entry.Name(), "index.md")
				name = entry.Name()
			case strings.HasSuffix(entry.Name(), ".md"):
				docPath = filepath.Join(modelPath, entry.Name())
				name = strings.TrimSuffix(entry.Name(), ".md")
			default:
				continue
			}

			content, err := os.ReadFile(docPath)
			if err != nil {
				if os.IsNotExist(err) {
					// gallery directory without an index.md
					continue
				}
				return nil, fmt.Errorf("read %s: %w", docPath, err)
			}
			records = append(records, SourceRecord{Markdown: &MarkdownRecord{
				ModelDir: modelDir.Name(),
				Name:     name,
				Content:  content,
			}})
		}
	}
	return records, nil
}

// DatabaseLoader reads gallery rows through GORM.
type DatabaseLoader struct {
	DB *gorm.DB
}

func (l *DatabaseLoader) Load(ctx context.Context) ([]SourceRecord, error) {
	var rows []models.GalleryModel
	if err := l.DB.WithContext(ctx).Order("published_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load galleries: %w", err)
	}

	records := make([]SourceRecord, len(rows))
	for i := range rows {
		records[i] = SourceRecord{Row: &rows[i]}
	}
	return records, nil
}

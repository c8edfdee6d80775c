package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed assets/galleries.json
var bundledGalleryData []byte

type staticBundle struct {
	Posts []StaticRecord `json:"posts"`
}

// StaticLoader serves the bundled dataset. It backs the standalone deployment
// mode and acts as the fallback source when the primary backend is
// unreachable.
type StaticLoader struct {
	// Data overrides the embedded bundle when non-nil (tests, exports).
	Data []byte
}

func (l *StaticLoader) Load(ctx context.Context) ([]SourceRecord, error) {
	data := l.Data
	if data == nil {
		data = bundledGalleryData
	}

	var bundle staticBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parse gallery bundle: %w", err)
	}

	records := make([]SourceRecord, len(bundle.Posts))
	for i := range bundle.Posts {
		records[i] = SourceRecord{Static: &bundle.Posts[i]}
	}
	return records, nil
}

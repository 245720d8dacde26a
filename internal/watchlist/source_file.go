package watchlist

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"swiftscreen/internal/domain"
	strs "swiftscreen/pkg/platform/strings"
)

// FileSource loads the watchlist from a JSON file produced by the list
// ingestion job (an array of entries). Suitable for deployments where the
// refresh job drops a file next to the service.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Load(_ context.Context) ([]domain.WatchlistEntry, error) {
	payload, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist file: %w", err)
	}
	var entries []domain.WatchlistEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("decode watchlist file: %w", err)
	}
	for i := range entries {
		entries[i].Aliases = strs.DedupeAndTrim(entries[i].Aliases)
	}
	return entries, nil
}

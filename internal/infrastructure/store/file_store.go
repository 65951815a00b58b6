package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lensvault/backend/internal/domain"
)

// FileStore persists the raw and enriched datasets as JSON files. The
// on-disk representation round-trips every record field unchanged.
type FileStore struct {
	rawPath      string
	enrichedPath string
}

// NewFileStore creates a file store for the given dataset paths
func NewFileStore(rawPath, enrichedPath string) *FileStore {
	return &FileStore{
		rawPath:      rawPath,
		enrichedPath: enrichedPath,
	}
}

// LoadRaw reads the scraped product dataset
func (s *FileStore) LoadRaw(ctx context.Context) (*domain.RawDataset, error) {
	var dataset domain.RawDataset
	if err := s.readJSON(s.rawPath, &dataset); err != nil {
		return nil, err
	}
	return &dataset, nil
}

// SaveRaw writes the scraped product dataset
func (s *FileStore) SaveRaw(ctx context.Context, dataset *domain.RawDataset) error {
	return s.writeJSON(s.rawPath, dataset)
}

// LoadEnriched reads the enriched product dataset
func (s *FileStore) LoadEnriched(ctx context.Context) (*domain.EnrichedDataset, error) {
	var dataset domain.EnrichedDataset
	if err := s.readJSON(s.enrichedPath, &dataset); err != nil {
		return nil, err
	}
	return &dataset, nil
}

// SaveEnriched writes the enriched product dataset, called once per
// enrichment batch run
func (s *FileStore) SaveEnriched(ctx context.Context, dataset *domain.EnrichedDataset) error {
	return s.writeJSON(s.enrichedPath, dataset)
}

func (s *FileStore) readJSON(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrDatasetNotFound, path)
		}
		return fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) writeJSON(path string, source interface{}) error {
	data, err := json.MarshalIndent(source, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", path, err)
	}
	return nil
}

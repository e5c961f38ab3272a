package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"SmartMoney/internal/domain/models"
	domrepo "SmartMoney/internal/domain/repository"
)

// ErrReadOnly is returned by stores that cannot accept writes.
var ErrReadOnly = errors.New("analysis store is read-only")

// FileSource serves snapshots from a JSON file holding an array of
// OptionAnalysis records. The file is re-read on every call so edits show
// up without a restart.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// LoadAnalysesFile decodes a JSON array of snapshots.
func LoadAnalysesFile(path string) ([]models.OptionAnalysis, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read analyses file: %w", err)
	}
	var out []models.OptionAnalysis
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode analyses file %s: %w", path, err)
	}
	return out, nil
}

func (s *FileSource) LatestAnalyses(ctx context.Context) ([]models.OptionAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := LoadAnalysesFile(s.path)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func (s *FileSource) Store(context.Context, *models.OptionAnalysis) error {
	return ErrReadOnly
}

func (s *FileSource) Health(context.Context) error {
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("analyses file: %w", err)
	}
	return nil
}

func (s *FileSource) Close() error { return nil }

var _ domrepo.AnalysisStore = (*FileSource)(nil)

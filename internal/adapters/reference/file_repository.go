package reference

import (
	"context"
	"encoding/json"
	"fmt"
	"lng-supply-optimizer/internal/domain"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDataset reads a reference dataset from a YAML or JSON file,
// chosen by extension.
func LoadDataset(path string) (domain.ReferenceDataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.ReferenceDataset{}, fmt.Errorf("load dataset: read %q: %w", path, err)
	}

	var data domain.ReferenceDataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(raw, &data)
	default:
		err = yaml.Unmarshal(raw, &data)
	}
	if err != nil {
		return domain.ReferenceDataset{}, fmt.Errorf("load dataset: parse %q: %w", path, err)
	}

	if err := data.Validate(); err != nil {
		return domain.ReferenceDataset{}, fmt.Errorf("load dataset %q: %w", path, err)
	}

	return data, nil
}

// FileRepository re-reads its dataset file on every call, so edits to the
// file apply to the next run without a restart.
type FileRepository struct {
	Path string
}

func NewFileRepository(path string) (*FileRepository, error) {
	if _, err := LoadDataset(path); err != nil {
		return nil, err
	}
	return &FileRepository{Path: path}, nil
}

func (r *FileRepository) ListVessels(ctx context.Context) ([]domain.Vessel, error) {
	data, err := LoadDataset(r.Path)
	if err != nil {
		return nil, fmt.Errorf("list vessels: %w", err)
	}
	return data.Vessels, nil
}

func (r *FileRepository) ListRouteLegs(ctx context.Context) ([]domain.RouteLeg, error) {
	data, err := LoadDataset(r.Path)
	if err != nil {
		return nil, fmt.Errorf("list route legs: %w", err)
	}
	return data.Routes, nil
}

func (r *FileRepository) ListORUCapex(ctx context.Context) ([]domain.ORUCapex, error) {
	data, err := LoadDataset(r.Path)
	if err != nil {
		return nil, fmt.Errorf("list oru capex: %w", err)
	}
	return data.ORU, nil
}

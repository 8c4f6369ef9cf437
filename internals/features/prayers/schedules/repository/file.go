package repository

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
	"jadwalsholat_backend/internals/features/prayers/schedules/service"
	"jadwalsholat_backend/internals/helpers/apperr"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// Format file dataset.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf menebak format dari ekstensi; selain .yaml/.yml dianggap JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// DecodeCities menerima array CityData atau dokumen {"data": [...]}.
func DecodeCities(data []byte, f Format) ([]dto.CityData, error) {
	const op = "DecodeCities"
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, apperr.InvalidInput(op, "empty dataset")
	}

	switch f {
	case FormatYAML:
		var cities []dto.CityData
		if err := yaml.Unmarshal(trimmed, &cities); err == nil {
			return cities, nil
		}
		var doc dto.Document
		if err := yaml.Unmarshal(trimmed, &doc); err != nil {
			return nil, apperr.InvalidInput(op, "yaml: %v", err)
		}
		return doc.Data, nil

	default:
		if trimmed[0] == '[' {
			var cities []dto.CityData
			if err := sonic.Unmarshal(trimmed, &cities); err != nil {
				return nil, apperr.InvalidInput(op, "json: %v", err)
			}
			return cities, nil
		}
		var doc dto.Document
		if err := sonic.Unmarshal(trimmed, &doc); err != nil {
			return nil, apperr.InvalidInput(op, "json: %v", err)
		}
		return doc.Data, nil
	}
}

// LoadCities membaca file dataset apa adanya (belum divalidasi).
func LoadCities(path string) ([]dto.CityData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.InvalidInput("LoadCities", "dataset file %s not found", path)
		}
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return DecodeCities(data, FormatOf(path))
}

// LoadDataset = LoadCities + NewDataset.
func LoadDataset(path string) (*service.Dataset, error) {
	cities, err := LoadCities(path)
	if err != nil {
		return nil, err
	}
	return service.NewDataset(cities)
}

// FileRepository dataset statis dari satu file, dimuat sekali.
type FileRepository struct {
	*service.Dataset
	Path string
}

func NewFileRepository(path string) (*FileRepository, error) {
	ds, err := LoadDataset(path)
	if err != nil {
		return nil, err
	}
	return &FileRepository{Dataset: ds, Path: path}, nil
}

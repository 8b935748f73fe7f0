// Package catalog loads exercise catalogs from YAML seed files.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"alcyxob/adaptive-coach/internal/domain"

	"gopkg.in/yaml.v3"
)

var ErrInvalidCatalog = errors.New("invalid exercise catalog")

type file struct {
	Exercises []entry `yaml:"exercises"`
}

type entry struct {
	Name            string   `yaml:"name"`
	Category        string   `yaml:"category"`
	MuscleGroups    []string `yaml:"muscle_groups"`
	EquipmentNeeded []string `yaml:"equipment_needed"`
	DifficultyBase  int      `yaml:"difficulty_base"`
	Instructions    string   `yaml:"instructions"`
}

// Load reads and parses the catalog file at path.
func Load(path string) ([]domain.Exercise, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a YAML catalog. Names are trimmed and must be unique
// (case-insensitive); a later duplicate replaces the earlier entry in place.
func Parse(r io.Reader) ([]domain.Exercise, error) {
	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Exercise{}, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	exercises := make([]domain.Exercise, 0, len(doc.Exercises))
	index := make(map[string]int, len(doc.Exercises))
	for i, e := range doc.Exercises {
		ex, err := e.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidCatalog, i+1, err)
		}
		key := strings.ToLower(ex.Name)
		if pos, ok := index[key]; ok {
			exercises[pos] = ex
			continue
		}
		index[key] = len(exercises)
		exercises = append(exercises, ex)
	}
	return exercises, nil
}

func (e entry) toDomain() (domain.Exercise, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return domain.Exercise{}, errors.New("name is required")
	}
	category := domain.Category(strings.ToLower(strings.TrimSpace(e.Category)))
	if !category.Valid() {
		return domain.Exercise{}, fmt.Errorf("%q: unknown category %q", name, e.Category)
	}
	if e.DifficultyBase < 1 || e.DifficultyBase > 10 {
		return domain.Exercise{}, fmt.Errorf("%q: difficulty_base must be 1-10, got %d", name, e.DifficultyBase)
	}
	if len(e.MuscleGroups) == 0 {
		return domain.Exercise{}, fmt.Errorf("%q: at least one muscle group is required", name)
	}

	return domain.Exercise{
		Name:            name,
		Category:        category,
		MuscleGroups:    normalize(e.MuscleGroups),
		EquipmentNeeded: normalize(e.EquipmentNeeded),
		DifficultyBase:  e.DifficultyBase,
		Instructions:    strings.TrimSpace(e.Instructions),
	}, nil
}

func normalize(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

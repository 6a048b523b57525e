package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"diet-planner/internal/catalog"
)

// TemplateStore provides file-based storage for clipped meal templates. Each
// template lives in its own JSON file named <slot>_<name>.json so the
// overlay can be inspected and edited by hand.
type TemplateStore struct {
	basePath string
}

// NewTemplateStore creates a new TemplateStore and ensures the base
// directory exists.
func NewTemplateStore(basePath string) (*TemplateStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &TemplateStore{basePath: basePath}, nil
}

// sanitizeName makes a meal name safe for filenames.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", " ", "_")
	return replacer.Replace(name)
}

func (s *TemplateStore) templatePath(slot catalog.Slot, name string) string {
	filename := fmt.Sprintf("%s_%s.json", slot, sanitizeName(name))
	return filepath.Join(s.basePath, filename)
}

// Save stores a meal template under its slot.
func (s *TemplateStore) Save(slot catalog.Slot, tmpl catalog.MealTemplate) error {
	data, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal template: %w", err)
	}

	filePath := s.templatePath(slot, tmpl.Name)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write template file: %w", err)
	}
	return nil
}

// Load retrieves a single stored template.
func (s *TemplateStore) Load(slot catalog.Slot, name string) (*catalog.MealTemplate, error) {
	data, err := os.ReadFile(s.templatePath(slot, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	var tmpl catalog.MealTemplate
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template: %w", err)
	}
	return &tmpl, nil
}

// Exists checks whether a template is already stored for a slot.
func (s *TemplateStore) Exists(slot catalog.Slot, name string) bool {
	_, err := os.Stat(s.templatePath(slot, name))
	return !os.IsNotExist(err)
}

// LoadAll reads every stored template grouped by slot. A missing or empty
// overlay directory yields an empty catalog, not an error.
func (s *TemplateStore) LoadAll() (*catalog.Catalog, error) {
	cat := &catalog.Catalog{}
	for _, slot := range []catalog.Slot{catalog.SlotBreakfast, catalog.SlotLunch, catalog.SlotDinner, catalog.SlotSnack} {
		pattern := filepath.Join(s.basePath, fmt.Sprintf("%s_*.json", slot))
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob templates: %w", err)
		}
		for _, match := range matches {
			data, err := os.ReadFile(match)
			if err != nil {
				return nil, fmt.Errorf("failed to read template file %s: %w", match, err)
			}
			var tmpl catalog.MealTemplate
			if err := json.Unmarshal(data, &tmpl); err != nil {
				return nil, fmt.Errorf("failed to unmarshal template %s: %w", match, err)
			}
			cat.Append(slot, tmpl)
		}
	}
	return cat, nil
}

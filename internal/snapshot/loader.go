package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/wikilens/internal/model"
)

// File names used inside a snapshot directory.
const (
	PagesFileName      = "pages.json"
	NavigationFileName = "navigation.json"
	LinksFileName      = "links.json"
)

// readValidated reads a file and checks it against the schema of kind.
func readValidated(path string, kind Kind) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided export path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	res, err := Validate(kind, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !res.Valid {
		return nil, &SchemaError{Source: path, Kind: kind, Violations: res.Violations}
	}
	return data, nil
}

// LoadPages reads and validates a page export. A missing summary is
// computed from the pages.
func LoadPages(path string) (*model.PageExportData, error) {
	data, err := readValidated(path, KindPages)
	if err != nil {
		return nil, err
	}

	var export model.PageExportData
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if export.Summary == (model.PageSummary{}) && len(export.Pages) > 0 {
		export.Summary = model.NewPageExportData(export.Pages, "", "").Summary
	}
	return &export, nil
}

// LoadNavigation reads and validates a navigation export.
func LoadNavigation(path string) (*model.NavigationExportData, error) {
	data, err := readValidated(path, KindNavigation)
	if err != nil {
		return nil, err
	}

	var export model.NavigationExportData
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &export, nil
}

// LoadLinks reads and validates a page link export.
func LoadLinks(path string) ([]model.PageLinkItem, error) {
	data, err := readValidated(path, KindLinks)
	if err != nil {
		return nil, err
	}

	var items []model.PageLinkItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return items, nil
}

// LoadSnapshot reads a page export and a navigation export. An empty path
// leaves the corresponding half of the snapshot nil.
func LoadSnapshot(pagesPath, navPath string) (model.Snapshot, error) {
	var snap model.Snapshot
	var err error
	if pagesPath != "" {
		if snap.Pages, err = LoadPages(pagesPath); err != nil {
			return model.Snapshot{}, err
		}
	}
	if navPath != "" {
		if snap.Navigation, err = LoadNavigation(navPath); err != nil {
			return model.Snapshot{}, err
		}
	}
	return snap, nil
}

// LoadDir reads pages.json and navigation.json from dir. Both must exist.
func LoadDir(dir string) (model.Snapshot, error) {
	return LoadSnapshot(
		filepath.Join(dir, PagesFileName),
		filepath.Join(dir, NavigationFileName),
	)
}

// ValidateFile checks a file against the schema of kind. When kind is empty
// it is detected from the document.
func ValidateFile(path string, kind Kind) (*Result, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided export path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if kind == "" {
		if kind, err = DetectKind(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return Validate(kind, data)
}

// Save writes v as indented JSON, creating parent directories as needed.
func Save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

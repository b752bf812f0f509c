// Package output exports tool records to files and formats markup for display.
package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/law-makers/toolscout/pkg/models"
)

// Save writes records to path in the format implied by its extension:
// .csv, .json, or .md/.markdown.
func Save(records []models.ToolRecord, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return SaveCSV(records, path)
	case ".json":
		return SaveJSON(records, path)
	case ".md", ".markdown":
		return SaveMarkdown(records, path)
	default:
		return fmt.Errorf("unsupported output format %q (use .csv, .json or .md)", filepath.Ext(path))
	}
}

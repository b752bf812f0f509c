package output

import (
	"encoding/json"
	"os"

	"github.com/law-makers/toolscout/pkg/models"
)

// SaveJSON writes records as an indented JSON array to filepath.
func SaveJSON(records []models.ToolRecord, filepath string) error {
	if records == nil {
		records = []models.ToolRecord{}
	}
	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, append(content, '\n'), 0644)
}

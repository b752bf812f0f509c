package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/law-makers/toolscout/pkg/models"
)

// CSVHeader is the column layout shared by exports and the record cache
var CSVHeader = []string{"name", "description", "categories", "pricing", "url", "scraped_at"}

// WriteCSV writes records with a header row
func WriteCSV(w io.Writer, records []models.ToolRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.Name, r.Description, r.Categories, r.Pricing, r.URL, formatScrapedAt(r.ScrapedAt)}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadCSV parses records written by WriteCSV. Columns are located by header
// name so files with reordered or extra columns still load.
func ReadCSV(r io.Reader) ([]models.ToolRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []models.ToolRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	if _, ok := idx["name"]; !ok {
		return nil, fmt.Errorf("missing name column")
	}
	col := func(row []string, name string) string {
		if i, ok := idx[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	records := []models.ToolRecord{}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec := models.ToolRecord{
			Name:        col(row, "name"),
			Description: col(row, "description"),
			Categories:  col(row, "categories"),
			Pricing:     col(row, "pricing"),
			URL:         col(row, "url"),
		}
		if s := col(row, "scraped_at"); s != "" {
			if t, err := time.ParseInLocation(models.ScrapedAtLayout, s, time.Local); err == nil {
				rec.ScrapedAt = t
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// SaveCSV writes records to a CSV file at filepath
func SaveCSV(records []models.ToolRecord, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCSV(file, records)
}

func formatScrapedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(models.ScrapedAtLayout)
}

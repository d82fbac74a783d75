package province

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
)

//go:embed provinces.csv
var defaultDataset []byte

// Default returns the bundled table of Italian provinces.
func Default() ([]models.Province, error) {
	return Parse(bytes.NewReader(defaultDataset))
}

// LoadCSV reads a province table from a CSV file.
//
// CSV Format: nome,sigla,regione (first row is a header)
// Example: Roma,RM,Lazio
func LoadCSV(filePath string) ([]models.Province, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open province file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads province records from CSV. Rows without exactly three columns or
// without a code are skipped; a table with no usable rows is an error.
func Parse(r io.Reader) ([]models.Province, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read province CSV: %w", err)
	}

	records := make([]models.Province, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) != 3 {
			continue
		}

		p := models.Province{
			Name:   strings.TrimSpace(row[0]),
			Code:   strings.TrimSpace(row[1]),
			Region: strings.TrimSpace(row[2]),
		}
		if p.Code == "" {
			continue
		}
		records = append(records, p)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("province CSV contains no records")
	}
	return records, nil
}

package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
)

// promotionColumns is the expected header of a promotions CSV file.
var promotionColumns = []string{
	"id", "store_id", "name", "description", "image_url",
	"start_date", "end_date", "priority",
}

// promotionDateLayouts are tried in order for start_date and end_date.
// A bare date is read as midnight UTC.
var promotionDateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// readPromotionsCSV loads a promotions file, skipping rows with the wrong
// number of columns, non-numeric ids, an empty name or unparseable dates.
// The result is sorted by id; a repeated id keeps the last row.
func readPromotionsCSV(filePath string) ([]models.Promotion, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open promotions CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read promotions CSV file: %w", err)
	}

	byID := make(map[int64]models.Promotion)
	for i, record := range records {
		if i == 0 {
			continue
		}
		p, ok := parsePromotionRecord(record)
		if !ok {
			continue
		}
		byID[p.ID] = p
	}

	promotions := make([]models.Promotion, 0, len(byID))
	for _, p := range byID {
		promotions = append(promotions, p)
	}
	sortPromotionsByID(promotions)
	return promotions, nil
}

func parsePromotionRecord(record []string) (models.Promotion, bool) {
	if len(record) != len(promotionColumns) {
		return models.Promotion{}, false
	}

	id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return models.Promotion{}, false
	}
	storeID, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
	if err != nil {
		return models.Promotion{}, false
	}
	name := strings.TrimSpace(record[2])
	if name == "" {
		return models.Promotion{}, false
	}

	start, ok := parsePromotionDate(record[5])
	if !ok {
		return models.Promotion{}, false
	}
	end, ok := parsePromotionDate(record[6])
	if !ok {
		return models.Promotion{}, false
	}

	var priority *int
	if raw := strings.TrimSpace(record[7]); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return models.Promotion{}, false
		}
		priority = &n
	}

	return models.Promotion{
		ID:          id,
		StoreID:     storeID,
		Name:        name,
		Description: optional(record[3]),
		ImageURL:    optional(record[4]),
		StartDate:   start,
		EndDate:     end,
		Priority:    priority,
	}, true
}

// parsePromotionDate returns nil for an empty cell and false when no layout fits.
func parsePromotionDate(cell string) (*time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, true
	}
	for _, layout := range promotionDateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return &t, true
		}
	}
	return nil, false
}

func sortPromotionsByID(promotions []models.Promotion) {
	sort.Slice(promotions, func(i, j int) bool { return promotions[i].ID < promotions[j].ID })
}

// promotionsOf keeps the promotions of storeID, preserving order.
func promotionsOf(promotions []models.Promotion, storeID int64) []models.Promotion {
	out := make([]models.Promotion, 0)
	for _, p := range promotions {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out
}

package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
)

// csvColumns is the expected header of a stores CSV file.
var csvColumns = []string{
	"id", "name", "address", "city", "province", "postal_code",
	"phone", "email", "website", "category", "image_url", "description",
}

// CSVStore keeps the whole stores file, and optionally a promotions file,
// in memory.
type CSVStore struct {
	stores     []models.Store
	byID       map[int64]int // id -> index in stores
	promotions []models.Promotion
}

// NewCSVStore reads a stores CSV file.
//
// The first row is the header (see csvColumns). Rows with the wrong number of
// columns, a non-numeric id or an empty name are skipped. Empty cells become
// nil fields. Rows keep file order.
func NewCSVStore(filePath string) (*CSVStore, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	store := &CSVStore{
		stores:     make([]models.Store, 0, len(records)-1),
		byID:       make(map[int64]int, len(records)-1),
		promotions: []models.Promotion{},
	}

	for i, record := range records {
		if i == 0 {
			continue
		}
		s, ok := parseStoreRecord(record)
		if !ok {
			continue
		}
		if idx, dup := store.byID[s.ID]; dup {
			store.stores[idx] = s
			continue
		}
		store.byID[s.ID] = len(store.stores)
		store.stores = append(store.stores, s)
	}

	return store, nil
}

func parseStoreRecord(record []string) (models.Store, bool) {
	if len(record) != len(csvColumns) {
		return models.Store{}, false
	}

	id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return models.Store{}, false
	}
	name := strings.TrimSpace(record[1])
	if name == "" {
		return models.Store{}, false
	}

	return models.Store{
		ID:          id,
		Name:        name,
		Address:     optional(record[2]),
		City:        optional(record[3]),
		Province:    optional(record[4]),
		PostalCode:  optional(record[5]),
		Phone:       optional(record[6]),
		Email:       optional(record[7]),
		Website:     optional(record[8]),
		Category:    optional(record[9]),
		ImageURL:    optional(record[10]),
		Description: optional(record[11]),
	}, true
}

// optional maps an empty cell to nil. Non-empty cells are kept verbatim:
// the search layer is responsible for tolerating untidy values.
func optional(cell string) *string {
	if cell == "" {
		return nil
	}
	return &cell
}

// FindAll returns a copy of the loaded stores, in file order.
func (s *CSVStore) FindAll() ([]models.Store, error) {
	out := make([]models.Store, len(s.stores))
	copy(out, s.stores)
	return out, nil
}

// FindByID looks up a store by id.
func (s *CSVStore) FindByID(id int64) (*models.Store, error) {
	idx, exists := s.byID[id]
	if !exists {
		return nil, ErrStoreNotFound
	}
	found := s.stores[idx]
	return &found, nil
}

// LoadPromotions reads a promotions CSV file (see promotionColumns),
// replacing any promotions loaded before. Without it the store has none.
func (s *CSVStore) LoadPromotions(filePath string) error {
	promotions, err := readPromotionsCSV(filePath)
	if err != nil {
		return err
	}
	s.promotions = promotions
	return nil
}

// FindPromotions returns a copy of the loaded promotions, by id.
func (s *CSVStore) FindPromotions() ([]models.Promotion, error) {
	out := make([]models.Promotion, len(s.promotions))
	copy(out, s.promotions)
	return out, nil
}

// FindPromotionsByStore returns the loaded promotions of one store.
func (s *CSVStore) FindPromotionsByStore(storeID int64) ([]models.Promotion, error) {
	return promotionsOf(s.promotions, storeID), nil
}

// Kind implements Store.
func (s *CSVStore) Kind() string { return "csv" }

// Close is a no-op; everything is in memory.
func (s *CSVStore) Close() error {
	return nil
}

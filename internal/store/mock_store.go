package store

import (
	"time"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
)

// MockStore is a test double for the Store interface.
// It records calls and can be told to fail.
type MockStore struct {
	Stores     []models.Store
	Promotions []models.Promotion

	FindAllCalls        int
	FindByIDCalls       []int64
	FindPromotionsCalls int
	CloseCalled         bool

	FindAllError        error
	FindByIDError       error
	FindPromotionsError error
	CloseError          error
}

// NewMockStore returns a store pre-populated with a few shops.
func NewMockStore() *MockStore {
	return &MockStore{
		Stores: []models.Store{
			{
				ID:         1,
				Name:       "Bar Roma",
				City:       models.StringPtr("roma"),
				Province:   models.StringPtr("RM"),
				PostalCode: models.StringPtr("00100"),
				Category:   models.StringPtr("bar"),
			},
			{
				ID:         2,
				Name:       "Pizzeria Vallo",
				City:       models.StringPtr("vallo della lucania"),
				Province:   models.StringPtr("SA"),
				PostalCode: models.StringPtr("84078"),
				Category:   models.StringPtr("pizzeria"),
			},
			{
				ID:         3,
				Name:       "Emporio Fantasma",
				City:       models.StringPtr("nowhere"),
				Province:   models.StringPtr("ZZ"),
				PostalCode: models.StringPtr("00000"),
				Category:   models.StringPtr("bar"),
			},
		},
		Promotions: []models.Promotion{
			{ID: 1, StoreID: 2, Name: "Margherita 2x1", Priority: intPtr(1)},
			{ID: 2, StoreID: 2, Name: "Menu pranzo", Priority: intPtr(5), EndDate: datePtr(2099, time.December, 31)},
			{ID: 3, StoreID: 2, Name: "Saldi estivi", Priority: intPtr(9), EndDate: datePtr(2020, time.September, 1)},
			{ID: 4, StoreID: 3, Name: "Promo fantasma"},
		},
		FindByIDCalls: []int64{},
	}
}

func intPtr(n int) *int { return &n }

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// NewEmptyMockStore returns a store with no rows.
func NewEmptyMockStore() *MockStore {
	return &MockStore{
		Stores:        []models.Store{},
		Promotions:    []models.Promotion{},
		FindByIDCalls: []int64{},
	}
}

// FindAll implements Store.
func (m *MockStore) FindAll() ([]models.Store, error) {
	m.FindAllCalls++

	if m.FindAllError != nil {
		return nil, m.FindAllError
	}

	out := make([]models.Store, len(m.Stores))
	copy(out, m.Stores)
	return out, nil
}

// FindByID implements Store.
func (m *MockStore) FindByID(id int64) (*models.Store, error) {
	m.FindByIDCalls = append(m.FindByIDCalls, id)

	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}

	for _, s := range m.Stores {
		if s.ID == id {
			found := s
			return &found, nil
		}
	}
	return nil, ErrStoreNotFound
}

// FindPromotions implements Store.
func (m *MockStore) FindPromotions() ([]models.Promotion, error) {
	m.FindPromotionsCalls++

	if m.FindPromotionsError != nil {
		return nil, m.FindPromotionsError
	}

	out := make([]models.Promotion, len(m.Promotions))
	copy(out, m.Promotions)
	return out, nil
}

// FindPromotionsByStore implements Store.
func (m *MockStore) FindPromotionsByStore(storeID int64) ([]models.Promotion, error) {
	m.FindPromotionsCalls++

	if m.FindPromotionsError != nil {
		return nil, m.FindPromotionsError
	}
	return promotionsOf(m.Promotions, storeID), nil
}

// Kind implements Store.
func (m *MockStore) Kind() string { return "mock" }

// Close implements Store.
func (m *MockStore) Close() error {
	m.CloseCalled = true
	return m.CloseError
}

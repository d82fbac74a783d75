package store

import (
	"errors"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
)

// ErrStoreNotFound is returned by FindByID when no store has the given id.
var ErrStoreNotFound = errors.New("store not found")

// Store is the read side of the stores and promotions tables.
// Implementations: CSV file, MySQL (GORM), Redis, and MockStore for tests.
type Store interface {
	// FindAll returns every store: by id for MySQL and Redis, in file order for CSV.
	FindAll() ([]models.Store, error)

	// FindByID returns a single store or ErrStoreNotFound.
	FindByID(id int64) (*models.Store, error)

	// FindPromotions returns every promotion ordered by id.
	FindPromotions() ([]models.Promotion, error)

	// FindPromotionsByStore returns the promotions of one store ordered by id.
	// A store without promotions yields an empty slice, not an error.
	FindPromotionsByStore(storeID int64) ([]models.Promotion, error)

	// Kind names the backend ("csv", "mysql", "redis"), used as a metrics label.
	Kind() string

	// Close releases connections and file handles.
	Close() error
}

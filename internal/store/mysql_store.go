package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// StoreModel is the GORM model for the stores table.
// Column names follow the schema shared with the admin back office.
type StoreModel struct {
	ID          int64   `gorm:"column:id;primaryKey"`
	Name        string  `gorm:"column:name"`
	Address     *string `gorm:"column:address"`
	City        *string `gorm:"column:city"`
	Province    *string `gorm:"column:province"`
	PostalCode  *string `gorm:"column:postalCode"`
	Phone       *string `gorm:"column:phone"`
	Email       *string `gorm:"column:email"`
	Website     *string `gorm:"column:website"`
	Category    *string `gorm:"column:category"`
	ImageURL    *string `gorm:"column:imageUrl"`
	Description *string `gorm:"column:description"`
}

// TableName overrides GORM's pluralized default ("store_models").
func (StoreModel) TableName() string {
	return "stores"
}

func (m StoreModel) toDomain() models.Store {
	return models.Store{
		ID:          m.ID,
		Name:        m.Name,
		Address:     m.Address,
		City:        m.City,
		Province:    m.Province,
		PostalCode:  m.PostalCode,
		Phone:       m.Phone,
		Email:       m.Email,
		Website:     m.Website,
		Category:    m.Category,
		ImageURL:    m.ImageURL,
		Description: m.Description,
	}
}

// PromotionModel is the GORM model for the promotions table.
type PromotionModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	StoreID     int64      `gorm:"column:storeId"`
	Name        string     `gorm:"column:name"`
	Description *string    `gorm:"column:description"`
	ImageURL    *string    `gorm:"column:imageUrl"`
	StartDate   *time.Time `gorm:"column:startDate"`
	EndDate     *time.Time `gorm:"column:endDate"`
	Priority    *int       `gorm:"column:priority"`
}

// TableName overrides GORM's pluralized default ("promotion_models").
func (PromotionModel) TableName() string {
	return "promotions"
}

func (m PromotionModel) toDomain() models.Promotion {
	return models.Promotion{
		ID:          m.ID,
		StoreID:     m.StoreID,
		Name:        m.Name,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Priority:    m.Priority,
	}
}

// MySQLStore reads stores from MySQL through GORM.
type MySQLStore struct {
	db *gorm.DB
}

// NewMySQLStore opens a pooled connection.
//
// dsn format: user:password@tcp(host:port)/dbname?parseTime=true
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(mysql.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL with GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
	}

	return &MySQLStore{db: db}, nil
}

// FindAll runs SELECT * FROM stores ORDER BY id.
func (s *MySQLStore) FindAll() ([]models.Store, error) {
	var rows []StoreModel
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	stores := make([]models.Store, 0, len(rows))
	for _, row := range rows {
		stores = append(stores, row.toDomain())
	}
	return stores, nil
}

// FindByID loads one store by primary key.
func (s *MySQLStore) FindByID(id int64) (*models.Store, error) {
	var row StoreModel

	result := s.db.Where("id = ?", id).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("database query failed: %w", result.Error)
	}

	found := row.toDomain()
	return &found, nil
}

// FindPromotions runs SELECT * FROM promotions ORDER BY id.
func (s *MySQLStore) FindPromotions() ([]models.Promotion, error) {
	return s.findPromotions(s.db)
}

// FindPromotionsByStore runs SELECT * FROM promotions WHERE storeId = ? ORDER BY id.
func (s *MySQLStore) FindPromotionsByStore(storeID int64) ([]models.Promotion, error) {
	return s.findPromotions(s.db.Where("storeId = ?", storeID))
}

func (s *MySQLStore) findPromotions(query *gorm.DB) ([]models.Promotion, error) {
	var rows []PromotionModel
	if err := query.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	promotions := make([]models.Promotion, 0, len(rows))
	for _, row := range rows {
		promotions = append(promotions, row.toDomain())
	}
	return promotions, nil
}

// Kind implements Store.
func (s *MySQLStore) Kind() string { return "mysql" }

// Close closes the database connection pool.
func (s *MySQLStore) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/geocode"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/logger"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/metrics"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/promotion"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/province"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/search"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/store"
)

// ErrInvalidRequest wraps every validation failure returned by the service.
var ErrInvalidRequest = errors.New("invalid request")

// SearchRequest is one search from the store list screen.
//
// PostalCode is the device's postal code when the caller already knows it.
// Otherwise Latitude/Longitude, when both set, are reverse geocoded.
type SearchRequest struct {
	Term       string   `validate:"max=200"`
	Category   string   `validate:"max=100"`
	PostalCode string   `validate:"max=20"`
	Latitude   *float64 `validate:"required_with=Longitude,omitempty,latitude"`
	Longitude  *float64 `validate:"required_with=Latitude,omitempty,longitude"`
}

// StoreService handles business logic for store search.
// It sits between handlers (or the CLI) and the datastore.
//
// Responsibilities:
//   - Validate input
//   - Resolve the user's postal code (explicit value or reverse geocoding)
//   - Load stores and run the search filter
//   - Select the promotions that are still running
//   - Record metrics and logs
type StoreService struct {
	store     store.Store
	lookup    *province.Lookup
	geocoder  geocode.Geocoder
	validator *validator.Validate
	metrics   *metrics.Metrics
	logger    *logger.Logger
	now       func() time.Time
}

// NewStoreService creates a new store service.
//
// The province lookup is built once by the caller and shared by every
// search. geo, m and log may be nil: without a geocoder, coordinates are
// ignored and the location filter stays inactive.
func NewStoreService(st store.Store, lookup *province.Lookup, geo geocode.Geocoder, m *metrics.Metrics, log *logger.Logger) *StoreService {
	if log == nil {
		log = logger.NewDefault()
	}
	if m != nil {
		m.ProvinceRecords.Set(float64(len(lookup.Records())))
	}
	return &StoreService{
		store:     st,
		lookup:    lookup,
		geocoder:  geo,
		validator: validator.New(),
		metrics:   m,
		logger:    log.WithComponent("StoreService").WithDatastore(st.Kind()),
		now:       time.Now,
	}
}

// Search returns the stores matching req, in datastore order.
func (s *StoreService) Search(ctx context.Context, req SearchRequest) (*models.SearchResult, error) {
	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn().Err(err).Msg("Invalid search request")
		s.countError("validation")
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, describeValidation(err))
	}

	postalCode := s.resolvePostalCode(ctx, req)

	stores, err := s.findAll()
	if err != nil {
		s.logger.Error().Err(err).Msg("Store error during search")
		s.countError("store_error")
		return nil, fmt.Errorf("loading stores: %w", err)
	}

	matched := search.Filter(stores, search.Query{
		Term:       req.Term,
		Category:   req.Category,
		PostalCode: postalCode,
	}, s.lookup)

	s.logger.Debug().
		Str("term", req.Term).
		Str("category", req.Category).
		Str("postal_code", postalCode).
		Int("scanned", len(stores)).
		Int("matched", len(matched)).
		Msg("Search completed")

	if s.metrics != nil {
		outcome := "match"
		if len(matched) == 0 {
			outcome = "empty"
		}
		s.metrics.StoreSearchesTotal.WithLabelValues(outcome).Inc()
		s.metrics.SearchResultSize.Observe(float64(len(matched)))
	}

	return &models.SearchResult{
		Stores:     matched,
		Count:      len(matched),
		PostalCode: postalCode,
	}, nil
}

// resolvePostalCode picks the user's postal code for the location filter.
// An explicit code wins over coordinates. Any geocoder failure leaves the
// filter inactive instead of failing the search.
func (s *StoreService) resolvePostalCode(ctx context.Context, req SearchRequest) string {
	if explicit := strings.TrimSpace(req.PostalCode); explicit != "" {
		return explicit
	}
	if req.Latitude == nil || req.Longitude == nil || s.geocoder == nil {
		return ""
	}

	code, err := s.geocoder.ReversePostalCode(ctx, *req.Latitude, *req.Longitude)
	if err != nil {
		result := "error"
		if errors.Is(err, geocode.ErrNoPostalCode) {
			result = "not_found"
		}
		s.logger.Warn().Err(err).
			Float64("lat", *req.Latitude).
			Float64("lon", *req.Longitude).
			Msg("Reverse geocoding failed, location filter disabled")
		s.countGeocode(result)
		return ""
	}

	s.countGeocode("success")
	return code
}

// GetStore returns a single store by id.
func (s *StoreService) GetStore(id int64) (*models.Store, error) {
	if err := s.validator.Var(id, "gt=0"); err != nil {
		s.countError("validation")
		return nil, fmt.Errorf("%w: id must be a positive integer", ErrInvalidRequest)
	}

	start := time.Now()
	found, err := s.store.FindByID(id)
	s.observeQuery("find_by_id", start, err)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			s.logger.Debug().Int64("id", id).Msg("Store not found")
			return nil, err
		}
		s.logger.Error().Err(err).Int64("id", id).Msg("Store error during lookup")
		s.countError("store_error")
		return nil, fmt.Errorf("loading store %d: %w", id, err)
	}
	return found, nil
}

// StorePromotions returns the running promotions of one store, highest
// priority first. An unknown store is ErrStoreNotFound; a store without
// promotions yields an empty list.
func (s *StoreService) StorePromotions(storeID int64) ([]models.Promotion, error) {
	if _, err := s.GetStore(storeID); err != nil {
		return nil, err
	}

	start := time.Now()
	promotions, err := s.store.FindPromotionsByStore(storeID)
	s.observeQuery("find_promotions_by_store", start, err)
	if err != nil {
		s.logger.Error().Err(err).Int64("store_id", storeID).Msg("Store error while loading promotions")
		s.countError("store_error")
		return nil, fmt.Errorf("loading promotions of store %d: %w", storeID, err)
	}

	active := promotion.Active(promotions, s.now())
	s.logger.Debug().
		Int64("store_id", storeID).
		Int("total", len(promotions)).
		Int("active", len(active)).
		Msg("Store promotions loaded")
	return active, nil
}

// ActivePromotions returns every running promotion across all stores,
// highest priority first.
func (s *StoreService) ActivePromotions() ([]models.Promotion, error) {
	start := time.Now()
	promotions, err := s.store.FindPromotions()
	s.observeQuery("find_promotions", start, err)
	if err != nil {
		s.logger.Error().Err(err).Msg("Store error while loading promotions")
		s.countError("store_error")
		return nil, fmt.Errorf("loading promotions: %w", err)
	}
	return promotion.Active(promotions, s.now()), nil
}

// Categories returns the distinct categories present in the datastore.
func (s *StoreService) Categories() ([]string, error) {
	stores, err := s.findAll()
	if err != nil {
		s.logger.Error().Err(err).Msg("Store error while listing categories")
		s.countError("store_error")
		return nil, fmt.Errorf("loading stores: %w", err)
	}
	return search.Categories(stores), nil
}

// Provinces returns the province reference list, optionally limited to one
// region (case-insensitive). An unknown region yields an empty list.
func (s *StoreService) Provinces(region string) []models.Province {
	region = strings.TrimSpace(region)
	if region == "" {
		return s.lookup.Records()
	}
	matched := s.lookup.ByRegion(region)
	if matched == nil {
		matched = []models.Province{}
	}
	return matched
}

// Close releases the underlying datastore
func (s *StoreService) Close() error {
	return s.store.Close()
}

func (s *StoreService) findAll() ([]models.Store, error) {
	start := time.Now()
	stores, err := s.store.FindAll()
	s.observeQuery("find_all", start, err)
	return stores, err
}

func (s *StoreService) observeQuery(operation string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	status := "success"
	switch {
	case errors.Is(err, store.ErrStoreNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	kind := s.store.Kind()
	s.metrics.DatastoreQueriesTotal.WithLabelValues(kind, operation, status).Inc()
	s.metrics.DatastoreQueryDuration.WithLabelValues(kind, operation).Observe(time.Since(start).Seconds())
}

func (s *StoreService) countError(errorType string) {
	if s.metrics != nil {
		s.metrics.SearchErrorsTotal.WithLabelValues(errorType).Inc()
	}
}

func (s *StoreService) countGeocode(result string) {
	if s.metrics != nil {
		s.metrics.GeocodeLookupsTotal.WithLabelValues(result).Inc()
	}
}

// describeValidation flattens validator errors into "Field: tag" pairs.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}

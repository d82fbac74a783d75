package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/service"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/store"
)

// StoreHandler serves the store search API.
// It only deals with HTTP: parsing parameters, calling the service and
// mapping errors to status codes.
type StoreHandler struct {
	service *service.StoreService
}

// NewStoreHandler creates a handler backed by svc
func NewStoreHandler(svc *service.StoreService) *StoreHandler {
	return &StoreHandler{service: svc}
}

// SearchStores handles GET /v1/stores
// @Summary      Search stores
// @Description  Filter stores by free text, category and the user's postal code
// @Tags         Stores
// @Produce      json
// @Param        q         query     string  false  "Free text matched against name, city, postal code and province"
// @Param        category  query     string  false  "Exact category"
// @Param        cap       query     string  false  "User postal code (wins over lat/lon)"
// @Param        lat       query     number  false  "Device latitude"
// @Param        lon       query     number  false  "Device longitude"
// @Success      200  {object}   models.SearchResult
// @Failure      400  {object}   models.ErrorResponse  "Invalid parameters"
// @Failure      429  {object}   models.ErrorResponse  "Rate limit exceeded"
// @Failure      500  {object}   models.ErrorResponse  "Internal server error"
// @Router       /v1/stores [get]
func (h *StoreHandler) SearchStores(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, err := parseCoordinate(query.Get("lat"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid 'lat' query parameter")
		return
	}
	lon, err := parseCoordinate(query.Get("lon"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid 'lon' query parameter")
		return
	}

	result, err := h.service.Search(r.Context(), service.SearchRequest{
		Term:       query.Get("q"),
		Category:   query.Get("category"),
		PostalCode: query.Get("cap"),
		Latitude:   lat,
		Longitude:  lon,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// GetStore handles GET /v1/stores/{id}
// @Summary      Get a store
// @Tags         Stores
// @Produce      json
// @Param        id   path       int  true  "Store id"
// @Success      200  {object}   models.Store
// @Failure      400  {object}   models.ErrorResponse  "Invalid id"
// @Failure      404  {object}   models.ErrorResponse  "Store not found"
// @Failure      500  {object}   models.ErrorResponse  "Internal server error"
// @Router       /v1/stores/{id} [get]
func (h *StoreHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Store id must be an integer")
		return
	}

	found, err := h.service.GetStore(id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, found)
}

// StorePromotions handles GET /v1/stores/{id}/promotions
// @Summary      List a store's promotions
// @Description  Running promotions of one store (no end date, or ending in the future), highest priority first
// @Tags         Promotions
// @Produce      json
// @Param        id   path       int  true  "Store id"
// @Success      200  {object}   models.PromotionList
// @Failure      400  {object}   models.ErrorResponse  "Invalid id"
// @Failure      404  {object}   models.ErrorResponse  "Store not found"
// @Failure      500  {object}   models.ErrorResponse  "Internal server error"
// @Router       /v1/stores/{id}/promotions [get]
func (h *StoreHandler) StorePromotions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Store id must be an integer")
		return
	}

	promotions, err := h.service.StorePromotions(id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.PromotionList{Promotions: promotions, Count: len(promotions)})
}

// ActivePromotions handles GET /v1/promotions/active
// @Summary      List running promotions
// @Tags         Promotions
// @Produce      json
// @Success      200  {object}   models.PromotionList
// @Failure      500  {object}   models.ErrorResponse  "Internal server error"
// @Router       /v1/promotions/active [get]
func (h *StoreHandler) ActivePromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.service.ActivePromotions()
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.PromotionList{Promotions: promotions, Count: len(promotions)})
}

// Categories handles GET /v1/categories
// @Summary      List categories
// @Tags         Stores
// @Produce      json
// @Success      200  {array}    string
// @Failure      500  {object}   models.ErrorResponse  "Internal server error"
// @Router       /v1/categories [get]
func (h *StoreHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories()
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, categories)
}

// Provinces handles GET /v1/provinces
// @Summary      List provinces
// @Tags         Reference
// @Produce      json
// @Param        region  query     string  false  "Region name, case-insensitive"
// @Success      200  {array}    models.Province
// @Router       /v1/provinces [get]
func (h *StoreHandler) Provinces(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.Provinces(r.URL.Query().Get("region")))
}

// parseCoordinate returns nil for an absent parameter.
func parseCoordinate(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// respondServiceError maps service errors to status codes
func (h *StoreHandler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrStoreNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondJSON writes a JSON response with the given status code
func (h *StoreHandler) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// headers are already sent, nothing useful left to do on failure
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error response with consistent formatting
func (h *StoreHandler) respondError(w http.ResponseWriter, statusCode int, message string) {
	h.respondJSON(w, statusCode, models.ErrorResponse{Error: message})
}

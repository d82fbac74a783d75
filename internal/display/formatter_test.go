package display_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/display"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
)

func ptr(s string) *string { return &s }

func sampleResult() *models.SearchResult {
	stores := []models.Store{
		{
			ID:          2,
			Name:        "Pizzeria Il Cilento",
			Address:     ptr("Corso Murat 5"),
			City:        ptr("Vallo della Lucania"),
			Province:    ptr("SA"),
			PostalCode:  ptr("84078"),
			Phone:       ptr("0974 75555"),
			Category:    ptr("pizzeria"),
			Description: ptr("Forno a legna"),
		},
		{ID: 9, Name: "Senza Dati"},
	}
	return &models.SearchResult{Stores: stores, Count: len(stores), PostalCode: "84078"}
}

func TestPrintSearchResult(t *testing.T) {
	var buf bytes.Buffer
	display.PrintSearchResult(&buf, sampleResult())

	out := buf.String()
	assert.Contains(t, out, "Confesercenti Vallo: 2 stores near 84078")
	assert.NotContains(t, out, "\u2014")
	assert.Contains(t, out, "Pizzeria Il Cilento")
	assert.Contains(t, out, "[pizzeria]")
	assert.Contains(t, out, "Corso Murat 5, 84078, Vallo della Lucania (SA)")
	assert.Contains(t, out, "0974 75555")
	assert.Contains(t, out, "Forno a legna")
	assert.Contains(t, out, "Senza Dati")
}

func TestPrintSearchResult_Empty(t *testing.T) {
	var buf bytes.Buffer
	display.PrintSearchResult(&buf, &models.SearchResult{Stores: []models.Store{}})

	assert.Contains(t, buf.String(), "0 stores")
	assert.Contains(t, buf.String(), "No stores match")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, display.PrintJSON(&buf, sampleResult()))

	var decoded models.SearchResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.Count)
	assert.Equal(t, "84078", decoded.PostalCode)
	assert.Nil(t, decoded.Stores[1].City)
}

func TestPrintCategoriesAndProvinces(t *testing.T) {
	var buf bytes.Buffer
	display.PrintCategories(&buf, []string{"bar", "pizzeria"})
	display.PrintProvinces(&buf, []models.Province{{Name: "Salerno", Code: "SA", Region: "Campania"}})

	out := buf.String()
	assert.Contains(t, out, "bar")
	assert.Contains(t, out, "pizzeria")
	assert.Contains(t, out, "1 provinces:")
	assert.Contains(t, out, "SA")
	assert.Contains(t, out, "Salerno")
	assert.Contains(t, out, "(Campania)")
}

func TestPrintPromotions(t *testing.T) {
	end := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	display.PrintPromotions(&buf, []models.Promotion{
		{ID: 2, StoreID: 2, Name: "Margherita 2x1", Description: ptr("Il martedì"), EndDate: &end},
		{ID: 4, StoreID: 3, Name: "Sconto soci"},
	})

	out := buf.String()
	assert.Contains(t, out, "2 active promotions:")
	assert.Contains(t, out, "Margherita 2x1")
	assert.Contains(t, out, "store #2")
	assert.Contains(t, out, "Il martedì")
	assert.Contains(t, out, "until 31/12/2026")
	assert.Contains(t, out, "Sconto soci")
}

func TestPrintPromotions_Empty(t *testing.T) {
	var buf bytes.Buffer
	display.PrintPromotions(&buf, []models.Promotion{})

	assert.Contains(t, buf.String(), "0 active promotions:")
	assert.Contains(t, buf.String(), "No promotions running.")
}

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/province"
	"github.com/MaestroMetty/confesercenti-vallo-app/internal/search"
)

func sampleStores() []models.Store {
	return []models.Store{
		barRoma(),
		{ID: 2, Name: "Pizzeria Da Mario", City: ptr("milano"), Province: ptr("MI"), PostalCode: ptr("20121"), Category: ptr("pizzeria")},
		{ID: 3, Name: "Ferramenta Rossi", City: ptr("monza"), Province: ptr("MB"), PostalCode: ptr("20900"), Category: ptr("ferramenta")},
		{ID: 4, Name: "Negozio Fantasma", City: ptr("roma"), Province: ptr("ZZ"), PostalCode: ptr("00100"), Category: ptr("bar")},
		{ID: 5, Name: "Bottega Senza Dati"},
		{ID: 6, Name: "Caffè Centrale", City: ptr("reggio calabria"), Province: ptr("rc"), PostalCode: ptr("89100"), Category: ptr("bar")},
	}
}

func ids(stores []models.Store) []int64 {
	out := make([]int64, 0, len(stores))
	for _, s := range stores {
		out = append(out, s.ID)
	}
	return out
}

func TestFilter_NoCriteriaHidesInvalidProvinces(t *testing.T) {
	got := search.Filter(sampleStores(), search.Query{}, testLookup())
	assert.Equal(t, []int64{1, 2, 3, 5, 6}, ids(got))
}

func TestFilter_EmptyProvinceStringCountsAsAbsent(t *testing.T) {
	dirty := models.Store{ID: 7, Name: "Bar Senza Provincia", City: ptr("roma"), Province: ptr(""), Category: ptr("bar")}
	blank := models.Store{ID: 8, Name: "Bar Provincia Vuota", City: ptr("roma"), Province: ptr(" "), Category: ptr("bar")}
	stores := []models.Store{dirty, blank}

	assert.Equal(t, []int64{7}, ids(search.Filter(stores, search.Query{}, testLookup())))
	assert.Equal(t, []int64{7}, ids(search.Filter(stores, search.Query{Term: "roma", Category: "bar"}, testLookup())))
	// the empty string is not a province, so it never matches the province text predicate
	assert.Empty(t, search.Filter(stores, search.Query{Term: "lazio"}, testLookup()))
}

func TestFilter_EmptyInput(t *testing.T) {
	got := search.Filter(nil, search.Query{Term: "roma"}, testLookup())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_ScenarioA_NameMatch(t *testing.T) {
	got := search.Filter([]models.Store{barRoma()}, search.Query{Term: "roma"}, testLookup())
	assert.Equal(t, []int64{1}, ids(got))
}

func TestFilter_ScenarioB_CategoryMismatch(t *testing.T) {
	got := search.Filter([]models.Store{barRoma()}, search.Query{Category: "pizzeria"}, testLookup())
	assert.Empty(t, got)
}

func TestFilter_ScenarioC_Location(t *testing.T) {
	stores := []models.Store{barRoma()}

	got := search.Filter(stores, search.Query{PostalCode: "00100"}, testLookup())
	assert.Equal(t, []int64{1}, ids(got))

	got = search.Filter(stores, search.Query{PostalCode: "20100"}, testLookup())
	assert.Empty(t, got)
}

func TestFilter_ScenarioD_InvalidProvinceAlwaysExcluded(t *testing.T) {
	ghost := sampleStores()[3]
	queries := []search.Query{
		{},
		{Term: "fantasma"},
		{Term: "roma"},
		{Category: "bar"},
		{PostalCode: "00100"},
		{Term: "negozio", Category: "bar", PostalCode: "00100"},
	}

	for _, q := range queries {
		assert.Empty(t, search.Filter([]models.Store{ghost}, q, testLookup()), "query %+v", q)
	}
}

func TestFilter_ScenarioE_RegionNameDoesNotMatch(t *testing.T) {
	got := search.Filter(sampleStores(), search.Query{Term: "Lombardia"}, testLookup())
	assert.Empty(t, got)
}

func TestFilter_TextMatchers(t *testing.T) {
	tests := []struct {
		name string
		q    search.Query
		want []int64
	}{
		{"by name", search.Query{Term: "pizzeria"}, []int64{2}},
		{"by city", search.Query{Term: "monza"}, []int64{3}},
		{"by province code", search.Query{Term: "MI"}, []int64{2}},
		{"by partial province name", search.Query{Term: "brianza"}, []int64{3}},
		{"by lower case store province", search.Query{Term: "Reggio Calabria"}, []int64{6}},
		{"by postal code substring", search.Query{Term: "209"}, []int64{3}},
		{"text and category", search.Query{Term: "roma", Category: "bar"}, []int64{1}},
		{"text and location", search.Query{Term: "bar", PostalCode: "00100"}, []int64{1}},
		{"no match", search.Query{Term: "gelateria"}, []int64{}},
		{"blank term ignored", search.Query{Term: "   ", Category: "bar"}, []int64{1, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := search.Filter(sampleStores(), tt.q, testLookup())
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_LocationExcludesStoresWithoutPostalCode(t *testing.T) {
	got := search.Filter(sampleStores(), search.Query{PostalCode: "20121"}, testLookup())
	assert.Equal(t, []int64{2}, ids(got))
}

func TestFilter_Idempotent(t *testing.T) {
	queries := []search.Query{
		{},
		{Term: "roma"},
		{Category: "bar"},
		{Term: "reggio", PostalCode: "89100"},
	}

	for _, q := range queries {
		once := search.Filter(sampleStores(), q, testLookup())
		twice := search.Filter(once, q, testLookup())
		assert.Equal(t, once, twice, "query %+v", q)
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	stores := sampleStores()
	reversed := make([]models.Store, len(stores))
	for i, s := range stores {
		reversed[len(stores)-1-i] = s
	}

	got := search.Filter(reversed, search.Query{Category: "bar"}, testLookup())
	assert.Equal(t, []int64{6, 1}, ids(got))
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	stores := sampleStores()
	before := ids(stores)

	search.Filter(stores, search.Query{Term: "roma"}, testLookup())
	assert.Equal(t, before, ids(stores))
}

func TestFilter_WithDefaultDataset(t *testing.T) {
	records, err := province.Default()
	require.NoError(t, err)
	l := province.BuildLookup(records)

	got := search.Filter(sampleStores(), search.Query{Term: "reggio"}, l)
	assert.Equal(t, []int64{6}, ids(got))
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"bar", "ferramenta", "pizzeria"}, search.Categories(sampleStores()))
	assert.Empty(t, search.Categories(nil))
}

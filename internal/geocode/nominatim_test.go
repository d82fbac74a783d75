package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/geocode"
)

func TestReversePostalCode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "40.2326", r.URL.Query().Get("lat"))
		assert.Equal(t, "15.2659", r.URL.Query().Get("lon"))
		assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"address":{"postcode":"84078","country_code":"it"}}`))
	}))
	defer srv.Close()

	client := geocode.NewNominatimClient(srv.URL, "test-agent", time.Second)
	code, err := client.ReversePostalCode(context.Background(), 40.2326, 15.2659)

	require.NoError(t, err)
	assert.Equal(t, "84078", code)
}

func TestReversePostalCode_MissingPostcode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"country_code":"it"}}`))
	}))
	defer srv.Close()

	client := geocode.NewNominatimClient(srv.URL, "", time.Second)
	_, err := client.ReversePostalCode(context.Background(), 40, 15)

	assert.ErrorIs(t, err, geocode.ErrNoPostalCode)
}

func TestReversePostalCode_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer srv.Close()

	client := geocode.NewNominatimClient(srv.URL, "", time.Second)
	_, err := client.ReversePostalCode(context.Background(), 0, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to geocode")
}

func TestReversePostalCode_HTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := geocode.NewNominatimClient(srv.URL, "", time.Second)
	_, err := client.ReversePostalCode(context.Background(), 40, 15)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestReversePostalCode_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	client := geocode.NewNominatimClient(srv.URL, "", time.Second)
	_, err := client.ReversePostalCode(context.Background(), 40, 15)

	assert.Error(t, err)
}

func TestReversePostalCode_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"postcode":"00100"}}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := geocode.NewNominatimClient(srv.URL, "", time.Second)
	_, err := client.ReversePostalCode(ctx, 41.9, 12.5)

	assert.ErrorIs(t, err, context.Canceled)
}

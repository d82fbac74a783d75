package geocode

import "context"

// MockGeocoder is a test double for Geocoder.
type MockGeocoder struct {
	PostalCode string
	Err        error

	Calls [][2]float64 // lat, lon of every call
}

// ReversePostalCode implements Geocoder.
func (m *MockGeocoder) ReversePostalCode(_ context.Context, lat, lon float64) (string, error) {
	m.Calls = append(m.Calls, [2]float64{lat, lon})
	if m.Err != nil {
		return "", m.Err
	}
	return m.PostalCode, nil
}

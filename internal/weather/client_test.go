package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dinebook/pkg/logger"
	"dinebook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastJSON = `{
  "cod": "200",
  "list": [
    {"dt_txt": "2025-12-05 21:00:00", "main": {"temp": 19.2}, "weather": [{"main": "Rain", "description": "light rain"}]},
    {"dt_txt": "2025-12-06 00:00:00", "main": {"temp": 18.4}, "weather": [{"main": "Clear", "description": "clear sky"}]},
    {"dt_txt": "2025-12-06 03:00:00", "main": {"temp": 21.0}, "weather": [{"main": "Clouds", "description": "scattered clouds"}]}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, apiKey string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		APIKey:      apiKey,
		BaseURL:     srv.URL,
		DefaultCity: "Bangalore,IN",
		Timeout:     2 * time.Second,
	}, logger.Discard())
}

func TestForecast_PicksFirstEntryOnTargetDay(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, forecastPath, r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{"q": q.Get("q"), "appid": q.Get("appid"), "units": q.Get("units")}
		_, _ = w.Write([]byte(forecastJSON))
	}, "secret")

	info, err := c.Forecast(context.Background(), time.Date(2025, 12, 6, 0, 0, 0, 0, time.UTC), "Mangalore, IN")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"q": "Mangalore, IN", "appid": "secret", "units": "metric"}, gotQuery)
	assert.Equal(t, "sunny", info.Condition)
	assert.Equal(t, "clear", info.RawCondition)
	assert.Equal(t, "clear sky", info.Description)
	assert.Equal(t, 18.4, info.Temperature)
	assert.Equal(t, model.SeatingOutdoor, info.SeatingSuggestion)
	assert.Equal(t, "2025-12-06 00:00:00", info.Raw.DtTxt)
}

func TestForecast_FallsBackToFirstEntry(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(forecastJSON))
	}, "secret")

	info, err := c.Forecast(context.Background(), time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)

	assert.Equal(t, "rainy", info.Condition)
	assert.Equal(t, model.SeatingIndoor, info.SeatingSuggestion)
	assert.Equal(t, "2025-12-05 21:00:00", info.Raw.DtTxt)
}

func TestForecast_UsesDefaultCity(t *testing.T) {
	var city string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		city = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(forecastJSON))
	}, "secret")

	_, err := c.Forecast(context.Background(), time.Now(), "  ")
	require.NoError(t, err)
	assert.Equal(t, "Bangalore,IN", city)
}

func TestForecast_Errors(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		called := false
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true }, "")

		_, err := c.Forecast(context.Background(), time.Now(), "Paris")
		assert.ErrorIs(t, err, ErrMissingAPIKey)
		assert.False(t, called)
	})

	t.Run("provider error status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
		}, "secret")

		_, err := c.Forecast(context.Background(), time.Now(), "Atlantis")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "city not found")
	})

	t.Run("empty list", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"list":[]}`))
		}, "secret")

		_, err := c.Forecast(context.Background(), time.Now(), "Paris")
		assert.ErrorIs(t, err, ErrEmptyForecast)
	})

	t.Run("transport error hides api key", func(t *testing.T) {
		c := NewClient(Config{
			APIKey:  "SECRET123",
			BaseURL: "http://127.0.0.1:1",
			Timeout: time.Second,
		}, logger.Discard())

		_, err := c.Forecast(context.Background(), time.Now(), "Paris")
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "SECRET123")
		assert.NotContains(t, err.Error(), "appid")
	})

	t.Run("malformed body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}, "secret")

		_, err := c.Forecast(context.Background(), time.Now(), "Paris")
		assert.Error(t, err)
	})
}

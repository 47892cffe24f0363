// Package weather looks up a day's forecast and turns it into seating advice.
package weather

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"dinebook/pkg/client"
	"dinebook/pkg/datetime"
	"dinebook/pkg/logger"
	"dinebook/pkg/model"
)

const forecastPath = "/data/2.5/forecast"

var ErrMissingAPIKey = errors.New("WEATHER_API_KEY is not set")

type Config struct {
	APIKey      string
	BaseURL     string
	DefaultCity string
	Timeout     time.Duration
}

type Client struct {
	http        *client.HttpClient
	apiKey      string
	defaultCity string
	log         *logger.Logger
}

func NewClient(cfg Config, log *logger.Logger) *Client {
	return &Client{
		http:        client.NewHttpClient(strings.TrimRight(cfg.BaseURL, "/"), cfg.Timeout),
		apiKey:      cfg.APIKey,
		defaultCity: cfg.DefaultCity,
		log:         log,
	}
}

// Forecast returns the weather advice for date at location. An empty
// location falls back to the configured default city.
func (c *Client) Forecast(ctx context.Context, date time.Time, location string) (*model.WeatherInfo, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	city := strings.TrimSpace(location)
	if city == "" {
		city = c.defaultCity
	}

	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	resp, err := c.http.GET(ctx, forecastPath, query)
	if err != nil {
		return nil, fmt.Errorf("forecast request for %q: %w", city, stripURL(err))
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("forecast request for %q: status %d: %s", city, resp.StatusCode, client.GetErrorMessage(resp))
	}

	var payload forecastResponse
	if err := resp.DecodeJSON(&payload); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}

	entry, err := selectEntry(payload.List, date)
	if err != nil {
		return nil, err
	}

	info := summarize(entry)
	c.log.Debug("Forecast resolved",
		"city", city,
		"date", datetime.FormatDate(date),
		"dt_txt", info.Raw.DtTxt,
		"condition", info.Condition,
	)
	return info, nil
}

// stripURL drops the request URL from transport errors. The query carries
// the API key and must not reach logs.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

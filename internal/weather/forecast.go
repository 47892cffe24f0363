package weather

import (
	"errors"
	"strings"
	"time"

	"dinebook/pkg/datetime"
	"dinebook/pkg/model"
)

var ErrEmptyForecast = errors.New("forecast has no entries")

// forecastResponse is the subset of the OpenWeather 5 day / 3 hour payload we read.
type forecastResponse struct {
	List []forecastEntry `json:"list"`
}

type forecastEntry struct {
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// selectEntry returns the first entry stamped on date, or the first entry
// of the forecast when none falls on that day.
func selectEntry(entries []forecastEntry, date time.Time) (forecastEntry, error) {
	if len(entries) == 0 {
		return forecastEntry{}, ErrEmptyForecast
	}
	prefix := datetime.FormatDate(date)
	for _, e := range entries {
		if strings.HasPrefix(e.DtTxt, prefix) {
			return e, nil
		}
	}
	return entries[0], nil
}

func summarize(e forecastEntry) *model.WeatherInfo {
	var rawCondition, description string
	if len(e.Weather) > 0 {
		rawCondition = strings.ToLower(e.Weather[0].Main)
		description = e.Weather[0].Description
	}

	category := Classify(rawCondition)
	advice := AdviceFor(category)

	return &model.WeatherInfo{
		Condition:         string(category),
		RawCondition:      rawCondition,
		Description:       description,
		Temperature:       e.Main.Temp,
		SeatingSuggestion: advice.Seating,
		VoiceSuggestion:   advice.Voice,
		Raw:               model.WeatherRaw{DtTxt: e.DtTxt},
	}
}

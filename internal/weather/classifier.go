package weather

import (
	"strings"

	"dinebook/pkg/model"
)

type Category string

const (
	Rainy  Category = "rainy"
	Snowy  Category = "snowy"
	Cloudy Category = "cloudy"
	Sunny  Category = "sunny"
)

const (
	voiceIndoor  = "It might rain on that day. I'd recommend our cozy indoor area."
	voiceSunny   = "The weather looks great on that day! Would you prefer outdoor seating?"
	voiceCloudy  = "It looks partly cloudy on that day, but still good for outdoor dining if you like."
	voiceDefault = "The weather looks okay on that day. Indoor seating is available."
)

// Classify maps a provider label such as "Rain" or "scattered clouds" to a
// category. Checks run in order and the first hit wins; unmatched labels,
// "clear" included, are sunny.
func Classify(label string) Category {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "rain"), strings.Contains(l, "drizzle"), strings.Contains(l, "thunder"):
		return Rainy
	case strings.Contains(l, "snow"):
		return Snowy
	case strings.Contains(l, "cloud"):
		return Cloudy
	default:
		return Sunny
	}
}

type Advice struct {
	Seating string
	Voice   string
}

func AdviceFor(c Category) Advice {
	switch c {
	case Rainy, Snowy:
		return Advice{Seating: model.SeatingIndoor, Voice: voiceIndoor}
	case Sunny:
		return Advice{Seating: model.SeatingOutdoor, Voice: voiceSunny}
	case Cloudy:
		return Advice{Seating: model.SeatingOutdoor, Voice: voiceCloudy}
	default:
		return Advice{Seating: model.SeatingIndoor, Voice: voiceDefault}
	}
}

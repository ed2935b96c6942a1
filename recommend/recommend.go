// Package recommend maps weather conditions and free-text queries to the
// site's outfit guide pages.
package recommend

import (
	"fmt"
	"math"
)

// Outfit guide pages, keyed by the condition families the site styles for.
const (
	PageCold   = "cold-day.html"
	PageMild   = "mild-day.html"
	PageHot    = "hot-day.html"
	PageSunny  = "sunny-day.html"
	PageCloudy = "cloudy-day.html"
	PageRainy  = "rainy-day.html"
	PageWindy  = "windy-day.html"
)

// Conditions is a normalized weather observation. Condition is the
// lowercase condition group (clear, clouds, rain, drizzle, thunderstorm,
// snow, mist, fog, haze). TemperatureC is in Celsius and WindKPH in km/h.
type Conditions struct {
	Condition    string  `json:"condition"`
	TemperatureC float64 `json:"temperature_c"`
	WindKPH      float64 `json:"wind_kph"`
}

// Recommendation pairs the guide page with its user-facing pitch.
type Recommendation struct {
	Page string `json:"page"`
	Text string `json:"text"`
}

// ForConditions picks the outfit guide page for an observation. Severe
// precipitation wins over everything, then wind, then the temperature
// bands within the sky condition.
func ForConditions(c Conditions) Recommendation {
	return Recommendation{Page: pageFor(c), Text: textFor(c)}
}

func pageFor(c Conditions) string {
	switch c.Condition {
	case "thunderstorm":
		return PageRainy
	case "rain", "drizzle":
		return PageRainy
	case "snow":
		return PageCold
	}

	if c.WindKPH > 25 {
		return PageWindy
	}

	switch c.Condition {
	case "mist", "fog", "haze":
		return PageCloudy
	case "clear":
		switch {
		case c.TemperatureC > 28:
			return PageHot
		case c.TemperatureC < 20:
			return PageCold
		default:
			return PageSunny
		}
	case "clouds":
		switch {
		case c.TemperatureC > 28:
			return PageHot
		case c.TemperatureC < 20:
			return PageCold
		default:
			return PageCloudy
		}
	}

	switch {
	case c.TemperatureC < 20:
		return PageCold
	case c.TemperatureC > 28:
		return PageHot
	default:
		return PageMild
	}
}

func textFor(c Conditions) string {
	switch c.Condition {
	case "thunderstorm":
		return "Stormy weather ahead! Check our rainy day outfit recommendations."
	case "rain", "drizzle":
		return "It's raining! Discover perfect rainy day fashion choices."
	case "snow":
		return "Snow day! Stay warm with our cold weather clothing guide."
	}

	if c.WindKPH > 25 {
		return "It's quite windy! See our wind-resistant outfit suggestions."
	}

	switch c.Condition {
	case "mist", "fog", "haze":
		return "Misty conditions! Check our cloudy day style recommendations."
	case "clear":
		switch {
		case c.TemperatureC > 28:
			return "Hot and sunny! Explore our summer outfit collection."
		case c.TemperatureC < 20:
			return "Clear but chilly! Find warm outfit ideas for cool weather."
		default:
			return "Perfect sunny weather! Discover ideal outfits for beautiful days."
		}
	case "clouds":
		switch {
		case c.TemperatureC > 28:
			return "Cloudy and warm! Check outfit ideas for hot cloudy days."
		case c.TemperatureC < 20:
			return "Cloudy and cool! Find cozy clothing for chilly overcast weather."
		default:
			return "Cloudy but pleasant! See our cloudy day fashion guide."
		}
	}

	rounded := int(math.Round(c.TemperatureC))
	switch {
	case c.TemperatureC < 20:
		return fmt.Sprintf("It's %d°C - quite cool! Explore our cold weather outfit guide.", rounded)
	case c.TemperatureC > 28:
		return fmt.Sprintf("It's %d°C - quite hot! Check our hot weather clothing suggestions.", rounded)
	default:
		return fmt.Sprintf("Pleasant %d°C weather! Discover comfortable outfit ideas for mild weather.", rounded)
	}
}

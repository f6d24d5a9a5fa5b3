package board

import (
	"fmt"
	"strconv"
)

// Location is the geocoding match a reading was resolved from.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// Reading is one resolved current-weather result. City is the query exactly
// as the user typed it, not the geocoded name.
type Reading struct {
	ID          string  `json:"id"`
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Windspeed   float64 `json:"windspeed"`
	Time        string  `json:"time"`

	WindDirection float64  `json:"winddirection"`
	WeatherCode   int      `json:"weathercode"`
	IsDay         bool     `json:"is_day"`
	Interval      int      `json:"interval"`
	Location      Location `json:"location"`
}

// TemperatureText renders the temperature at the provider's precision.
func (r Reading) TemperatureText() string {
	return strconv.FormatFloat(r.Temperature, 'f', -1, 64) + "°C"
}

func (r Reading) WindspeedText() string {
	return strconv.FormatFloat(r.Windspeed, 'f', -1, 64) + " km/h"
}

// Place describes the resolved location as "Name, Admin1, Country",
// skipping empty parts.
func (l Location) Place() string {
	out := l.Name
	for _, part := range []string{l.Admin1, l.Country} {
		if part == "" || part == l.Name {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += part
	}
	return out
}

func (l Location) Coordinates() string {
	return fmt.Sprintf("%.4f, %.4f", l.Latitude, l.Longitude)
}

// WeatherCodeText maps WMO weather interpretation codes to a short label.
func WeatherCodeText(code int) string {
	switch code {
	case 0:
		return "Clear sky"
	case 1:
		return "Mainly clear"
	case 2:
		return "Partly cloudy"
	case 3:
		return "Overcast"
	case 45, 48:
		return "Fog"
	case 51, 53, 55:
		return "Drizzle"
	case 56, 57:
		return "Freezing drizzle"
	case 61, 63, 65:
		return "Rain"
	case 66, 67:
		return "Freezing rain"
	case 71, 73, 75:
		return "Snow fall"
	case 77:
		return "Snow grains"
	case 80, 81, 82:
		return "Rain showers"
	case 85, 86:
		return "Snow showers"
	case 95:
		return "Thunderstorm"
	case 96, 99:
		return "Thunderstorm with hail"
	default:
		return "Unknown"
	}
}

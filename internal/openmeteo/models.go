package openmeteo

// GeocodingResponse is the body of the geocoding search endpoint. Results is
// absent when nothing matched.
type GeocodingResponse struct {
	Results          []Place `json:"results"`
	GenerationTimeMS float64 `json:"generationtime_ms"`
}

type Place struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Elevation   float64 `json:"elevation"`
	Timezone    string  `json:"timezone"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country"`
	Admin1      string  `json:"admin1"`
	Population  int64   `json:"population"`
}

// ForecastResponse is the subset of the forecast endpoint this app reads.
// CurrentWeather is nil when the provider omitted it.
type ForecastResponse struct {
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	Timezone       string          `json:"timezone"`
	CurrentWeather *CurrentWeather `json:"current_weather"`
}

type CurrentWeather struct {
	Time          string  `json:"time"`
	Interval      int     `json:"interval"`
	Temperature   float64 `json:"temperature"`
	Windspeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	IsDay         int     `json:"is_day"`
	WeatherCode   int     `json:"weathercode"`
}

// APIError is the error body open-meteo sends with 4xx responses.
type APIError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

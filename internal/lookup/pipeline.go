// Package lookup chains geocoding and the current-weather call into one
// pipeline run and classifies how a run ended.
package lookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/pders01/weatherboard/internal/board"
	"github.com/pders01/weatherboard/internal/debuglog"
	"github.com/pders01/weatherboard/internal/openmeteo"
)

var (
	// ErrEmptyQuery is returned before any network call for an empty name.
	ErrEmptyQuery = errors.New("empty query")
	// ErrNotFound means geocoding returned no match. It is the only outcome
	// shown to the user.
	ErrNotFound = errors.New("city not found")
	// ErrDataUnavailable means the forecast response had no current weather.
	ErrDataUnavailable = errors.New("weather data not available")
)

// Geocoder resolves a free-text place name.
type Geocoder interface {
	Search(ctx context.Context, name string) (*openmeteo.GeocodingResponse, error)
}

// Forecaster fetches current weather for coordinates.
type Forecaster interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (*openmeteo.ForecastResponse, error)
}

type Pipeline struct {
	geocoder   Geocoder
	forecaster Forecaster
}

func NewPipeline(g Geocoder, f Forecaster) *Pipeline {
	return &Pipeline{geocoder: g, forecaster: f}
}

// New wires a pipeline to a single open-meteo client.
func New(c *openmeteo.Client) *Pipeline {
	return NewPipeline(c, c)
}

// Run resolves city and returns the reading to append. The returned reading
// has no ID; the board assigns one on append. City is kept exactly as given.
func (p *Pipeline) Run(ctx context.Context, city string) (board.Reading, error) {
	if city == "" {
		return board.Reading{}, ErrEmptyQuery
	}

	log := debuglog.WithFields(map[string]interface{}{"city": city})

	geo, err := p.geocoder.Search(ctx, city)
	if err != nil {
		return board.Reading{}, err
	}
	if geo == nil || len(geo.Results) == 0 {
		log.Infof("no geocoding match")
		return board.Reading{}, ErrNotFound
	}

	place := geo.Results[0]
	log.With("lat", place.Latitude).With("lon", place.Longitude).Debugf("geocoded to %s", place.Name)

	fc, err := p.forecaster.CurrentWeather(ctx, place.Latitude, place.Longitude)
	if err != nil {
		return board.Reading{}, err
	}
	if fc == nil || fc.CurrentWeather == nil {
		return board.Reading{}, fmt.Errorf("%s: %w", city, ErrDataUnavailable)
	}

	cw := fc.CurrentWeather
	return board.Reading{
		City:          city,
		Temperature:   cw.Temperature,
		Windspeed:     cw.Windspeed,
		Time:          cw.Time,
		WindDirection: cw.WindDirection,
		WeatherCode:   cw.WeatherCode,
		IsDay:         cw.IsDay == 1,
		Interval:      cw.Interval,
		Location: board.Location{
			Name:      place.Name,
			Country:   place.Country,
			Admin1:    place.Admin1,
			Latitude:  place.Latitude,
			Longitude: place.Longitude,
			Timezone:  place.Timezone,
		},
	}, nil
}

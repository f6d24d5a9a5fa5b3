package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/pders01/weatherboard/internal/config"
	"github.com/pders01/weatherboard/internal/launcher"
	"github.com/pders01/weatherboard/internal/lookup"
	"github.com/pders01/weatherboard/internal/openmeteo"
)

type stubGeocoder struct {
	mu     sync.Mutex
	places map[string]openmeteo.Place
	err    error
	block  chan struct{}
	calls  int
}

func (s *stubGeocoder) Search(ctx context.Context, name string) (*openmeteo.GeocodingResponse, error) {
	s.mu.Lock()
	s.calls++
	block, err := s.block, s.err
	p, ok := s.places[name]
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return &openmeteo.GeocodingResponse{}, nil
	}
	return &openmeteo.GeocodingResponse{Results: []openmeteo.Place{p}}, nil
}

type stubForecaster struct {
	weather *openmeteo.CurrentWeather
}

func (s *stubForecaster) CurrentWeather(ctx context.Context, lat, lon float64) (*openmeteo.ForecastResponse, error) {
	return &openmeteo.ForecastResponse{
		Latitude:       lat,
		Longitude:      lon,
		CurrentWeather: s.weather,
	}, nil
}

func newTestApp(t *testing.T) (*App, *stubGeocoder, *stubForecaster) {
	t.Helper()

	cfg := config.TestConfig()
	geo := &stubGeocoder{places: map[string]openmeteo.Place{
		"Paris": {Name: "Paris", Country: "France", Admin1: "Île-de-France", Latitude: 48.85341, Longitude: 2.3488, Timezone: "Europe/Paris"},
		"Rome":  {Name: "Rome", Country: "Italy", Latitude: 41.89193, Longitude: 12.51133},
	}}
	fc := &stubForecaster{weather: &openmeteo.CurrentWeather{
		Time:          "2024-05-01T12:00",
		Temperature:   18.2,
		Windspeed:     9.4,
		WindDirection: 250,
		IsDay:         1,
	}}

	app := NewApp(cfg, lookup.NewPipeline(geo, fc), launcher.NewLauncher(cfg))
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app, geo, fc
}

func typeText(a *App, s string) {
	for _, r := range s {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(a *App, k tea.KeyType) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: k})
	return cmd
}

func pressRune(a *App, r rune) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

// collect runs cmd and flattens batches. Only use it on commands that do not
// sleep.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func finishedMsg(t *testing.T, cmd tea.Cmd) lookupFinishedMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if m, ok := msg.(lookupFinishedMsg); ok {
			return m
		}
	}
	require.FailNow(t, "no lookupFinishedMsg produced")
	return lookupFinishedMsg{}
}

func cityNames(a *App) []string {
	var out []string
	for _, r := range a.board.Readings() {
		out = append(out, r.City)
	}
	return out
}

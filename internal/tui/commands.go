package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/weatherboard/internal/board"
	"github.com/pders01/weatherboard/internal/launcher"
)

type lookupFinishedMsg struct {
	token   board.Token
	city    string
	reading board.Reading
	err     error
}

type detailRenderedMsg struct {
	id      string
	content string
}

type mapOpenedMsg struct {
	url string
	err error
}

type clearStatusMsg struct {
	seq int
}

// runLookup runs the pipeline off the event loop. The result always comes
// back as a lookupFinishedMsg so the token is released on every outcome.
func (a *App) runLookup(ctx context.Context, tok board.Token, city string) tea.Cmd {
	p := a.pipeline
	return func() tea.Msg {
		r, err := p.Run(ctx, city)
		return lookupFinishedMsg{token: tok, city: city, reading: r, err: err}
	}
}

func (a *App) renderDetail(r board.Reading) tea.Cmd {
	renderer, rerr := a.getRenderer()
	md := detailMarkdown(r)

	return func() tea.Msg {
		if rerr != nil {
			return detailRenderedMsg{id: r.ID, content: "Error initializing renderer: " + rerr.Error()}
		}

		rendered, err := renderer.Render(md)
		if err != nil {
			return detailRenderedMsg{
				id:      r.ID,
				content: fmt.Sprintf("Failed to render reading: %s\n\nPress esc to go back.", err),
			}
		}
		return detailRenderedMsg{id: r.ID, content: rendered}
	}
}

func (a *App) openMap(r board.Reading) tea.Cmd {
	target := launcher.MapURL(r.Location.Latitude, r.Location.Longitude)
	l := a.launcher

	return func() tea.Msg {
		if err := l.Open(target); err != nil {
			return mapOpenedMsg{url: target, err: wrapErr("failed to open map", err)}
		}
		return mapOpenedMsg{url: target}
	}
}

func detailMarkdown(r board.Reading) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.City)
	if place := r.Location.Place(); place != "" {
		fmt.Fprintf(&b, "*%s*\n\n", place)
	}

	daylight := "night"
	if r.IsDay {
		daylight = "day"
	}

	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Temperature | %s |\n", r.TemperatureText())
	fmt.Fprintf(&b, "| Wind speed | %s |\n", r.WindspeedText())
	fmt.Fprintf(&b, "| Wind direction | %g° |\n", r.WindDirection)
	fmt.Fprintf(&b, "| Conditions | %s (code %d) |\n", board.WeatherCodeText(r.WeatherCode), r.WeatherCode)
	fmt.Fprintf(&b, "| Daylight | %s |\n", daylight)
	fmt.Fprintf(&b, "| Time | %s |\n", r.Time)
	if r.Interval > 0 {
		fmt.Fprintf(&b, "| Interval | %d s |\n", r.Interval)
	}
	if r.Location.Timezone != "" {
		fmt.Fprintf(&b, "| Timezone | %s |\n", r.Location.Timezone)
	}

	fmt.Fprintf(&b, "\n**Coordinates:** %s\n\n", r.Location.Coordinates())
	fmt.Fprintf(&b, "[Open in OpenStreetMap](%s)\n",
		launcher.MapURL(r.Location.Latitude, r.Location.Longitude))

	return b.String()
}

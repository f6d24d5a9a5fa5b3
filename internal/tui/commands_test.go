package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pders01/weatherboard/internal/board"
)

func TestDetailMarkdown(t *testing.T) {
	r := board.Reading{
		City:          "  new york ",
		Temperature:   21.5,
		Windspeed:     12,
		Time:          "2024-05-01T12:00",
		WindDirection: 180,
		WeatherCode:   3,
		IsDay:         true,
		Interval:      900,
		Location: board.Location{
			Name:      "New York",
			Admin1:    "New York",
			Country:   "United States",
			Latitude:  40.71427,
			Longitude: -74.00597,
			Timezone:  "America/New_York",
		},
	}

	md := detailMarkdown(r)

	assert.Contains(t, md, "#   new york \n")
	assert.Contains(t, md, "*New York, United States*")
	assert.Contains(t, md, "| Temperature | 21.5°C |")
	assert.Contains(t, md, "| Wind speed | 12 km/h |")
	assert.Contains(t, md, "| Wind direction | 180° |")
	assert.Contains(t, md, "| Conditions | Overcast (code 3) |")
	assert.Contains(t, md, "| Daylight | day |")
	assert.Contains(t, md, "| Interval | 900 s |")
	assert.Contains(t, md, "| Timezone | America/New_York |")
	assert.Contains(t, md, "**Coordinates:** 40.7143, -74.0060")
	assert.Contains(t, md, "https://www.openstreetmap.org/?mlat=40.7143&mlon=-74.0060")
}

func TestDetailMarkdown_SparseReading(t *testing.T) {
	md := detailMarkdown(board.Reading{City: "X", Time: "t"})

	assert.NotContains(t, md, "Interval")
	assert.NotContains(t, md, "Timezone")
	assert.Contains(t, md, "| Daylight | night |")
}

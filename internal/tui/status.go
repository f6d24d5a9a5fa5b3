package tui

import (
	"fmt"
	"strings"
)

// Canonical short status messages used across the app.
const (
	MsgButtonIdle    = "Get temperature"
	MsgButtonLoading = "Loading…"
	MsgCityNotFound  = "City not found"
	MsgClose         = "Close"
	MsgCancelling    = "Cancelling…"
	MsgRendering     = "Rendering…"
	MsgEmptyBoard    = "No readings yet. Type a city and press enter."
	MsgInputHint     = "City name..."
)

func MsgRemoved(city string) string {
	return fmt.Sprintf("Removed '%s'", strings.TrimSpace(city))
}

func MsgOpened(url string) string {
	return "Opened " + url
}

func MsgReadingsCount(n int) string {
	if n == 1 {
		return "1 reading"
	}
	return fmt.Sprintf("%d readings", n)
}

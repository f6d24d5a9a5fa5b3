package tui

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/weatherboard/internal/config"
)

func TestShowBanner(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outC <- buf.String()
	}()

	ShowBanner("1.0.0-test")

	w.Close()
	os.Stdout = old
	out := <-outC

	if !strings.Contains(out, "Current Weather Board") {
		t.Errorf("Expected banner to contain 'Current Weather Board', got: %s", out)
	}
	if !strings.Contains(out, "╔") || !strings.Contains(out, "╝") {
		t.Errorf("Expected banner to contain border characters, got: %s", out)
	}
	if !strings.Contains(out, "v1.0.0-test") {
		t.Errorf("Expected banner to contain version 'v1.0.0-test', got: %s", out)
	}
}

func TestBannerText_DevVersion(t *testing.T) {
	out := BannerText("dev")
	if strings.Contains(out, "vdev") {
		t.Errorf("dev builds should not carry a version tag, got: %s", out)
	}
	if !strings.Contains(out, "☀") {
		t.Errorf("Expected banner to contain separator symbols, got: %s", out)
	}
}

func TestGetCompactBanner(t *testing.T) {
	message := "Test message"
	result := GetCompactBanner(message)

	if !strings.Contains(result, message) {
		t.Errorf("Expected compact banner to contain '%s', got: %s", message, result)
	}
	if !strings.Contains(result, LogoLines[0]) {
		t.Errorf("Expected compact banner to contain logo elements, got: %s", result)
	}
}

func TestGetWelcomeMessage(t *testing.T) {
	result := GetWelcomeMessage()

	if !strings.Contains(result, MsgEmptyBoard) {
		t.Errorf("Expected welcome message to contain the empty board hint, got: %s", result)
	}
}

func TestLogoConstants(t *testing.T) {
	if len(LogoLines) != 4 {
		t.Errorf("Expected 4 logo lines, got %d", len(LogoLines))
	}
	if len(BannerColors) != 4 {
		t.Errorf("Expected 4 banner colors, got %d", len(BannerColors))
	}
}

func TestApplyColors(t *testing.T) {
	saved := []lipgloss.Color{PrimaryColor, SecondaryColor, AccentColor, TextColor, MutedColor, ErrorColor}
	defer func() {
		PrimaryColor, SecondaryColor, AccentColor = saved[0], saved[1], saved[2]
		TextColor, MutedColor, ErrorColor = saved[3], saved[4], saved[5]
		buildStyles()
	}()

	ApplyColors(config.UIColors{Primary: "#000001", Error: ""})

	if PrimaryColor != lipgloss.Color("#000001") {
		t.Errorf("Expected primary color to change, got %s", PrimaryColor)
	}
	if ErrorColor != saved[5] {
		t.Errorf("Expected empty entry to keep the error color, got %s", ErrorColor)
	}
	if CardTitleStyle.GetForeground() != lipgloss.Color("#000001") {
		t.Errorf("Expected styles to be rebuilt with the new palette")
	}
}

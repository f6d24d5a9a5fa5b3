package launcher

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/pders01/weatherboard/internal/config"
)

const mapBaseURL = "https://www.openstreetmap.org/"

type Launcher struct {
	opener string
	goos   string
}

func NewLauncher(cfg *config.Config) *Launcher {
	opener := cfg.Opener
	if opener == "" {
		opener = findCommand("xdg-open", "open")
	}
	return &Launcher{opener: opener, goos: runtime.GOOS}
}

// MapURL points at an OpenStreetMap marker for the coordinates.
func MapURL(lat, lon float64) string {
	q := url.Values{}
	q.Set("mlat", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("mlon", strconv.FormatFloat(lon, 'f', 4, 64))
	return mapBaseURL + "?" + q.Encode() + "#map=11/" +
		strconv.FormatFloat(lat, 'f', 4, 64) + "/" + strconv.FormatFloat(lon, 'f', 4, 64)
}

func (l *Launcher) command(target string) *exec.Cmd {
	if l.goos == "windows" && l.opener == "start" {
		return exec.Command("cmd", "/c", "start", "", target)
	}
	return exec.Command(l.opener, target)
}

// Open hands target to the platform opener without waiting for it.
func (l *Launcher) Open(target string) error {
	if l.opener == "" {
		return fmt.Errorf("no application found to open URL")
	}

	cmd := l.command(target)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", l.opener, err)
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

func findCommand(commands ...string) string {
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}

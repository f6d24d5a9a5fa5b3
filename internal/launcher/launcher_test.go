package launcher

import (
	"net/url"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/weatherboard/internal/config"
)

func TestMapURL(t *testing.T) {
	raw := MapURL(48.8534, 2.3488)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "www.openstreetmap.org", u.Host)
	assert.Equal(t, "48.8534", u.Query().Get("mlat"))
	assert.Equal(t, "2.3488", u.Query().Get("mlon"))
	assert.Equal(t, "map=11/48.8534/2.3488", u.Fragment)
}

func TestNewLauncher_UsesConfiguredOpener(t *testing.T) {
	cfg := config.TestConfig()
	cfg.Opener = "my-opener"

	l := NewLauncher(cfg)
	assert.Equal(t, "my-opener", l.opener)
}

func TestLauncher_OpenMissingOpener(t *testing.T) {
	l := &Launcher{opener: "definitely-not-a-real-opener-binary", goos: runtime.GOOS}
	err := l.Open("https://example.org")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start")

	l = &Launcher{goos: runtime.GOOS}
	assert.Error(t, l.Open("https://example.org"))
}

func TestLauncher_Open(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on the POSIX true command")
	}
	l := NewLauncher(config.TestConfig())
	assert.NoError(t, l.Open(MapURL(0, 0)))
}

func TestLauncher_WindowsStart(t *testing.T) {
	l := &Launcher{opener: "start", goos: "windows"}
	cmd := l.command("https://example.org")
	assert.Equal(t, []string{"cmd", "/c", "start", "", "https://example.org"}, cmd.Args)
}

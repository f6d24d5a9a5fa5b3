package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pders01/weatherboard/internal/board"
	"github.com/pders01/weatherboard/internal/config"
	"github.com/pders01/weatherboard/internal/debuglog"
	"github.com/pders01/weatherboard/internal/launcher"
	"github.com/pders01/weatherboard/internal/lookup"
	"github.com/pders01/weatherboard/internal/openmeteo"
	"github.com/pders01/weatherboard/internal/tui"
	"github.com/pders01/weatherboard/internal/validation"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath string
	logLevel   string
	logFile    string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:          "weatherboard",
	Short:        "Current weather by city, in your terminal",
	SilenceUsage: true,
	RunE:         runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("weatherboard %s\n", Version)
		fmt.Println("Current weather board (open-meteo)")
		fmt.Println("github.com/pders01/weatherboard")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}

		if err := config.GenerateDefaultConfig(path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated default configuration at: %s\n", path)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		data, err := config.MarshalTOML(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <city>...",
	Short: "Print current weather for one or more cities without the UI",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLookup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to configuration file")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, off (overrides config)")
	flags.StringVar(&logFile, "log-file", "", "Log file path (overrides config)")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "Skip startup banner")

	configCmd.AddCommand(configGenCmd, configShowCmd)
	rootCmd.AddCommand(versionCmd, configCmd, lookupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging applies flag overrides on top of the config. Without an
// explicit log file, console output goes to w instead of the log file.
func setupLogging(cfg *config.Config, console io.Writer) error {
	level := debuglog.ParseLogLevel(cfg.Log.Level)
	if logLevel != "" {
		level = debuglog.ParseLogLevel(logLevel)
	}

	path := cfg.Log.File
	if logFile != "" {
		p, err := validation.ValidateLogPath(logFile)
		if err != nil {
			return fmt.Errorf("--log-file: %w", err)
		}
		path = p
	}

	if console != nil && logFile == "" {
		return debuglog.SetupWriter(level, zerolog.ConsoleWriter{Out: console, NoColor: true})
	}
	return debuglog.Setup(level, path)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !quiet {
		tui.ShowBanner(Version)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := setupLogging(cfg, nil); err != nil {
		return err
	}
	defer debuglog.Close()

	debuglog.Infof("weatherboard %s starting", Version)

	app := tui.NewApp(cfg, lookup.New(openmeteo.NewClient(cfg)), launcher.NewLauncher(cfg))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

type lookupResult struct {
	city    string
	reading board.Reading
	err     error
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := setupLogging(cfg, cmd.ErrOrStderr()); err != nil {
		return err
	}
	defer debuglog.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	pipeline := lookup.New(openmeteo.NewClient(cfg))
	results := lookupAll(ctx, pipeline, args)

	out := cmd.OutOrStdout()
	failed := 0
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		writeResult(out, res)

		switch lookup.Classify(res.err) {
		case lookup.Success, lookup.Skipped:
		default:
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d lookups failed", failed, len(args))
	}
	return nil
}

// lookupAll runs one pipeline per city concurrently. Results keep argument
// order and one failure does not cancel the others.
func lookupAll(ctx context.Context, p *lookup.Pipeline, cities []string) []lookupResult {
	results := make([]lookupResult, len(cities))

	// Per-city errors travel in results, not through the group: Wait would
	// keep only the first one and the caller reports every city.
	var g errgroup.Group
	for i, city := range cities {
		i, city := i, city
		g.Go(func() error {
			r, err := p.Run(ctx, city)
			results[i] = lookupResult{city: city, reading: r, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func writeResult(w io.Writer, res lookupResult) {
	switch outcome := lookup.Classify(res.err); outcome {
	case lookup.Success:
		r := res.reading
		fmt.Fprintln(w, tui.CardTitleStyle.Render(r.City))
		if place := r.Location.Place(); place != "" {
			fmt.Fprintf(w, "  %s\n", place)
		}
		fmt.Fprintf(w, "  Temperature: %s\n", r.TemperatureText())
		fmt.Fprintf(w, "  Wind speed: %s\n", r.WindspeedText())
		fmt.Fprintf(w, "  Time: %s\n", r.Time)
	case lookup.NotFound:
		fmt.Fprintf(w, "%s: %s\n", res.city, tui.MsgCityNotFound)
	case lookup.Skipped:
		fmt.Fprintln(w, "(empty): skipped")
	default:
		fmt.Fprintf(w, "%s: %v (%s)\n", res.city, res.err, outcome)
	}
}

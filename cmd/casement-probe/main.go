// casement-probe is a diagnostic tool for the casement windowing library.
// It opens real windows, enumerates monitors, validates configuration,
// and tails the event stream of a live loop.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-casement/casement"
	"github.com/go-casement/casement/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "open":
		os.Exit(runOpen(os.Args[2:]))
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "version":
		fmt.Println("casement-probe " + version)
		os.Exit(0)
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: casement-probe <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  monitors            List connected displays")
	fmt.Fprintln(w, "  open                Open a window and run until it is closed")
	fmt.Fprintln(w, "  watch               Open a window and tail its event stream in a TUI")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  version             Print version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'casement-probe <command> --help' for command-specific options.")
}

// loadConfig reads the config from path, or the standard location when
// path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

// setupLogger builds the process logger from the logging config.
func setupLogger(cfg config.Logging) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// backendName resolves the backend flag against the config: the flag
// wins, config "auto" means platform default.
func backendName(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.Backend == "auto" {
		return ""
	}
	return cfg.Backend
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: casement-probe monitors [--json] [--backend NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List connected displays.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output display details as JSON")
	backend := fs.String("backend", "", "Backend to use (x11, headless; default: platform)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "monitors takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	loop, err := casement.NewEventLoop(
		casement.WithBackend(backendName(*backend, cfg)),
		casement.WithLogger(setupLogger(cfg.Logging)),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	monitors, merr := loop.AvailableMonitors()

	// Drive one cycle so the loop tears down cleanly.
	loop.Run(func(ev casement.Event, cf *casement.ControlFlow) {
		cf.SetExit()
	})

	if merr != nil {
		fmt.Fprintln(os.Stderr, merr)
		return 1
	}

	if *jsonOut {
		type monitorJSON struct {
			Name        string  `json:"name"`
			Width       int     `json:"width"`
			Height      int     `json:"height"`
			X           int     `json:"x"`
			Y           int     `json:"y"`
			ScaleFactor float64 `json:"scale_factor"`
			Primary     bool    `json:"primary"`
		}
		out := make([]monitorJSON, 0, len(monitors))
		for _, m := range monitors {
			out = append(out, monitorJSON{
				Name:        m.Name(),
				Width:       m.Size().Width,
				Height:      m.Size().Height,
				X:           m.Position().X,
				Y:           m.Position().Y,
				ScaleFactor: m.ScaleFactor(),
				Primary:     m.Primary(),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for _, m := range monitors {
		marker := " "
		if m.Primary() {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, m)
	}
	return 0
}

func runOpen(args []string) int {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: casement-probe open [--backend NAME] [--title T] [--width W] [--height H]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open a window and run the loop until the window is closed.")
		fmt.Fprintln(os.Stderr, "Events are logged at debug level.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	backend := fs.String("backend", "", "Backend to use (x11, headless; default: platform)")
	configPath := fs.String("config", "", "Config file path (default: ~/.config/casement/config.yaml)")
	title := fs.String("title", "", "Window title (default: from config)")
	width := fs.Int("width", 0, "Inner width in pixels (default: from config)")
	height := fs.Int("height", 0, "Inner height in pixels (default: from config)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := setupLogger(cfg.Logging)

	loop, err := casement.NewEventLoop(
		casement.WithBackend(backendName(*backend, cfg)),
		casement.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	win, err := buildWindow(loop, cfg, *title, *width, *height)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Info("window opened", "backend", loop.Backend(), "id", win.ID())

	code := loop.Run(func(ev casement.Event, cf *casement.ControlFlow) {
		cf.SetWait()
		switch e := ev.(type) {
		case casement.WindowEvent:
			logger.Debug("window event", "window", e.WindowID, "kind", fmt.Sprintf("%T", e.Kind))
			switch e.Kind.(type) {
			case casement.CloseRequested:
				if err := win.Destroy(); err != nil {
					logger.Warn("destroy failed", "err", err)
					cf.SetExitWithCode(1)
				}
			case casement.Destroyed:
				cf.SetExit()
			}
		case casement.DeviceEvent:
			logger.Debug("device event", "device", e.DeviceID, "kind", fmt.Sprintf("%T", e.Kind))
		}
	})
	return code
}

func buildWindow(loop *casement.EventLoop, cfg *config.Config, title string, width, height int) (*casement.Window, error) {
	if title == "" {
		title = cfg.Window.Title
	}
	if width == 0 {
		width = cfg.Window.Width
	}
	if height == 0 {
		height = cfg.Window.Height
	}
	return casement.NewWindowBuilder().
		WithTitle(title).
		WithInnerSize(casement.PhysicalSize{Width: width, Height: height}).
		WithResizable(cfg.Window.Resizable).
		WithDecorations(cfg.Window.Decorations).
		WithVisible(cfg.Window.Visible).
		WithAlwaysOnTop(cfg.Window.AlwaysOnTop).
		Build(loop)
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  casement-probe config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  casement-probe config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/casement/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/casement/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		if *printDefaults {
			cfg = config.Default()
		} else {
			var err error
			cfg, err = loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

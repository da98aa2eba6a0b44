package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/go-casement/casement"
	"github.com/go-casement/casement/internal/eventview"
)

// viewerClosed is the proxy payload that tells the loop the TUI is gone.
type viewerClosed struct{}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: casement-probe watch [--backend NAME] [--rows N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open a window and tail its event stream in a terminal viewer.")
		fmt.Fprintln(os.Stderr, "Interact with the window to see events; quit the viewer to exit.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	backend := fs.String("backend", "", "Backend to use (x11, headless; default: platform)")
	configPath := fs.String("config", "", "Config file path (default: ~/.config/casement/config.yaml)")
	rows := fs.Int("rows", 512, "Scrollback rows kept by the viewer")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "watch requires an interactive terminal (stdin/stdout must be TTYs)")
		return 1
	}

	cfg, err := loadConfig(*configPath)
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

	win, err := buildWindow(loop, cfg, "", 0, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	program := tea.NewProgram(
		eventview.New(loop.Backend(), *rows),
		tea.WithAltScreen(),
	)

	// The viewer owns the terminal on its own goroutine; the loop owns
	// this one. When the viewer quits, a proxy event unwinds the loop.
	proxy := loop.CreateProxy()
	teaDone := make(chan error, 1)
	go func() {
		_, err := program.Run()
		teaDone <- err
		_ = proxy.SendEvent(viewerClosed{})
	}()

	code := loop.Run(func(ev casement.Event, cf *casement.ControlFlow) {
		cf.SetWait()
		switch e := ev.(type) {
		case casement.UserEvent:
			if _, ok := e.Payload.(viewerClosed); ok {
				cf.SetExit()
				return
			}
		case casement.WindowEvent:
			if _, ok := e.Kind.(casement.CloseRequested); ok {
				_ = win.Destroy()
			}
			if _, ok := e.Kind.(casement.Destroyed); ok {
				cf.SetExit()
			}
		case casement.LoopDestroyed:
			program.Quit()
			return
		}
		program.Send(eventview.EventMsg{Event: ev, Time: time.Now()})
	})

	if err := <-teaDone; err != nil {
		fmt.Fprintln(os.Stderr, err)
		if code == 0 {
			code = 1
		}
	}
	return code
}

// Command session-host is a terminal stand-in for the product session window:
// it feeds keyboard input through the key controller and renders the resulting view
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/lixenwraith/hostkeys/audio"
	"github.com/lixenwraith/hostkeys/config"
	"github.com/lixenwraith/hostkeys/controller"
	"github.com/lixenwraith/hostkeys/keysource"
	"github.com/lixenwraith/hostkeys/session"
	"github.com/lixenwraith/hostkeys/shortcut"
)

const redrawInterval = 100 * time.Millisecond

var (
	configFlag   = flag.StringP("config", "c", "", "Config file (default ~/.hostkeys/config.toml)")
	debugFlag    = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	levelFlag    = flag.String("log-level", "", "Log level override: trace, debug, info, warn, error")
	productsFlag = flag.IntP("products", "n", -1, "Number of sample products, overrides config")
	noAudioFlag  = flag.Bool("no-audio", false, "Disable audio cues")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "session-host: %v\n", err)
		os.Exit(1)
	}

	logger, logFile := setupLogging(*debugFlag, cfg.LogLevel())
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("session host failed")
		fmt.Fprintf(os.Stderr, "session-host: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides
func loadConfig() (config.Config, error) {
	path := *configFlag
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if *levelFlag != "" {
		cfg.Logging.Level = *levelFlag
	}
	if *productsFlag >= 0 {
		cfg.Session.Products = *productsFlag
	}
	if *noAudioFlag {
		cfg.Audio.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(cfg config.Config, logger zerolog.Logger) error {
	keyTable, err := cfg.KeyTable()
	if err != nil {
		return err
	}
	routes, err := cfg.Routes()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()

	// Panic Recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSESSION HOST CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	view := session.NewView(session.SampleCatalogue(cfg.Session.Products), logger)

	var cues *audio.CuePlayer
	if cfg.Audio.Enabled {
		cues = audio.NewCuePlayer()
		if err := cues.Initialize(); err != nil {
			// Non-fatal, host runs silently
			logger.Warn().Err(err).Msg("audio unavailable")
		}
		defer cues.Cleanup()
	}

	jump := &jumpDisplay{
		cues: cues,
		wake: func() { _ = screen.PostEvent(tcell.NewEventInterrupt(nil)) },
	}

	keys := keysource.NewBroadcaster()
	defer keys.Close()

	a := newApp(view, keys, jump)

	routerOpts := []shortcut.Option{
		shortcut.WithRequireShift(cfg.RequireShift()),
		shortcut.WithTypingProbe(view.ModalOpen),
		shortcut.WithLogger(logger),
	}
	if routes != nil {
		routerOpts = append(routerOpts, shortcut.WithRoutes(routes))
	}
	a.router = shortcut.NewRouter(a, routerOpts...)

	ctrl, err := controller.New(controller.Config{
		Source:     keys,
		Dispatcher: view,
		Overlay:    view.ModalOpen,
		Observer:   jump,
		KeyTable:   keyTable,
		Debounce:   cfg.Debounce(),
		Logger:     &logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrlDone := make(chan error, 1)
	go func() {
		ctrlDone <- ctrl.Run(ctx)
	}()

	eventChan := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(redrawInterval)
	defer ticker.Stop()

	logger.Info().
		Int("products", cfg.Session.Products).
		Dur("debounce", cfg.Debounce()).
		Msg("session host started")

	a.draw(screen)
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				cancel()
				<-ctrlDone
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				kev := keysource.FromTcell(ev)
				if kev == nil {
					continue
				}
				if a.handleKey(kev) {
					cancel()
					<-ctrlDone
					logger.Info().Msg("session host stopped")
					return nil
				}
			}

		case err := <-ctrlDone:
			// Key source never closes while the loop runs, so this is unexpected
			if err != nil {
				return fmt.Errorf("controller: %w", err)
			}
			return nil

		case <-ticker.C:
		}

		a.draw(screen)
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mad-mansion/audio"
	"github.com/lixenwraith/mad-mansion/config"
	"github.com/lixenwraith/mad-mansion/engine"
	"github.com/lixenwraith/mad-mansion/game"
	"github.com/lixenwraith/mad-mansion/input"
	"github.com/lixenwraith/mad-mansion/logger"
	"github.com/lixenwraith/mad-mansion/parameter"
)

var (
	configFlag   = flag.String("config", "", "YAML config file")
	scenarioFlag = flag.String("scenario", "", "run a YAML scenario headless and exit")
	debugFlag    = flag.Bool("debug", false, "enable debug logging to the log file")
	muteFlag     = flag.Bool("mute", false, "disable audio output")
	revealFlag   = flag.Bool("reveal", false, "always show the ghost marker")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Log.Enabled = true
		cfg.Log.Level = "debug"
	}
	// The terminal owns stdout and stderr in interactive mode
	if *scenarioFlag == "" && cfg.Log.Dir == "" {
		cfg.Log.Dir = parameter.LogDir
	}

	log, closer, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	sm := audio.NewSoundManager(cfg.AudioConfig(), log)
	if cfg.Audio.Enabled && !*muteFlag {
		if err := sm.Initialize(); err != nil {
			// Non-fatal, game can run without sound
			log.WithError(err).Warn("audio initialization failed")
		}
	}
	defer sm.Cleanup()

	if *scenarioFlag != "" {
		if err := runScenario(cfg, *scenarioFlag, sm, log); err != nil {
			fmt.Fprintf(os.Stderr, "Scenario failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runInteractive(cfg, sm, log); err != nil {
		fmt.Fprintf(os.Stderr, "Game failed: %v\n", err)
		os.Exit(1)
	}
}

func runInteractive(cfg *config.Config, sm *audio.SoundManager, log *logrus.Logger) error {
	w, err := game.New(cfg, game.Deps{Audio: sm, Log: log})
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	hunterKeys := input.NewKeyboardSource(input.HunterLayout(), cfg.Sim.KeyHoldWindow)
	ghostKeys := input.NewKeyboardSource(input.GhostLayout(), cfg.Sim.KeyHoldWindow)
	w.AddDevice(hunterKeys)
	w.AddDevice(ghostKeys)
	if *revealFlag {
		for _, a := range w.Actors() {
			a.SetAlwaysRevealed(true)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	// Panic Recovery: restore the terminal before reporting
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mMAD MANSION CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	provider := engine.NewMonotonicTimeProvider()
	loop := w.NewLoop(provider)
	view := newView(screen, w)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Keys are applied on the loop goroutine so the hold window reads a consistent sim clock
	handle := func(ev tcell.Event) {
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				log.Info("quit requested")
				cancel()
				return
			}
			if ev.Key() == tcell.KeyF1 {
				w.Assigner().Reset()
				return
			}
			now := w.Clock().Now()
			if !hunterKeys.HandleKey(ev, now) {
				ghostKeys.HandleKey(ev, now)
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
	loop.SetFrameHooks(func() {
		for {
			select {
			case ev := <-eventChan:
				handle(ev)
			default:
				return
			}
		}
	}, view.draw)

	log.Info("interactive session started")
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Command pico-mdr runs the macrodata refinement floor in a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	"github.com/akinfelami/pico-mdr/audio"
	"github.com/akinfelami/pico-mdr/config"
	"github.com/akinfelami/pico-mdr/game"
	"github.com/akinfelami/pico-mdr/input"
	"github.com/akinfelami/pico-mdr/parameter"
	"github.com/akinfelami/pico-mdr/render"
	"github.com/akinfelami/pico-mdr/status"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "pico-mdr: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig parses flags and resolves the configuration; printOnly asks for a dump instead of a session
func loadConfig(args []string) (cfg *config.Config, printOnly bool, err error) {
	fs := pflag.NewFlagSet("pico-mdr", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err = fs.Parse(args); err != nil {
		return nil, false, err
	}

	path, _ := fs.GetString(config.FlagConfig)
	if cfg, err = config.Load(path, fs); err != nil {
		return nil, false, err
	}
	printOnly, _ = fs.GetBool(config.FlagPrintConfig)
	return cfg, printOnly, nil
}

func run(args []string) error {
	cfg, printOnly, err := loadConfig(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if printOnly {
		return cfg.Dump(os.Stdout)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	screen.HideCursor()

	crash := func(r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\n\x1b[31mPICO-MDR CRASHED: %v\x1b[0m\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()
	defer screen.Fini()

	reg := status.NewRegistry()
	sound := audio.NewSoundManager(cfg.AudioConfig())
	if err := sound.Initialize(); err != nil {
		log.Printf("audio unavailable, continuing muted: %v", err)
	} else {
		defer sound.Cleanup()
	}
	sound.SetMuted(cfg.Audio.Muted)
	reg.Bools.Get(status.AudioEnabled).Store(sound.Enabled())

	keyboard := input.NewKeyboard(nil)
	systemKeys := make(chan input.Command, parameter.CommandQueueSize)

	g, err := game.New(game.Options{
		Config:   cfg,
		Canvas:   render.NewTerminalCanvas(screen),
		Device:   keyboard,
		Commands: systemKeys,
		Cues:     sound,
		Registry: reg,
		OnCrash:  crash,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go pollEvents(ctx, screen, keyboard, systemKeys, crash)

	log.Printf("pico-mdr: seed=%#x agents=%d observer=%q", g.Session().Seed, cfg.Session.Agents, cfg.Observer.Addr)
	return g.Run(ctx)
}

// pollEvents feeds terminal key events to the keyboard device and forwards system keys
func pollEvents(ctx context.Context, screen tcell.Screen, kb *input.Keyboard, out chan<- input.Command, crash func(any)) {
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
			continue
		}
		cmd := kb.HandleEvent(ev)
		if cmd == input.CmdNone {
			continue
		}
		select {
		case out <- input.Command{Type: cmd}:
		case <-ctx.Done():
			return
		}
	}
}

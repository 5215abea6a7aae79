// Command luminous-term runs the scene navigator in a terminal.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"

	"github.com/idate-tech/luminous/internal/config"
	"github.com/idate-tech/luminous/internal/game"
	"github.com/idate-tech/luminous/internal/layout"
	"github.com/idate-tech/luminous/internal/platform"
	"github.com/idate-tech/luminous/internal/sfx"
	"github.com/idate-tech/luminous/internal/term"
)

func main() {
	logPath := flag.String("log", "", "Write logs to this file (the terminal is busy drawing)")
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("open log: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := platform.Probe(ctx)
	log.Printf("[Host] %s/%s on %s", info.OS, info.Platform, info.Hostname)

	reg, err := cfg.Registry()
	if err != nil {
		log.Fatalf("scenes: %v", err)
	}

	spk, err := sfx.NewSpeaker(beep.SampleRate(cfg.SampleRate), cfg.Volume, cfg.Mute)
	if err != nil {
		// Non-fatal, the navigator runs without sound.
		log.Printf("[!] Audio disabled: %v", err)
	}
	defer spk.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}

	// Pointer input in a terminal is a mouse; touch gestures never arrive.
	var app *term.App
	opts := cfg.ViewOptions(layout.Desktop)
	opts.OnSceneChange = func(prev, next int) {
		if app != nil {
			app.SceneChanged(prev, next)
		}
	}
	view := game.NewView(reg, opts)
	defer view.Close()

	app, err = term.NewApp(view, screen, spk)
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}
	log.Printf("[Term] %s: %d scenes", reg.Name, reg.Len())
	if err := app.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/mission/audio"
	"github.com/lixenwraith/mission/core"
	"github.com/lixenwraith/mission/maze"
	"github.com/lixenwraith/mission/navigation"
	"github.com/lixenwraith/mission/render"
	"github.com/lixenwraith/mission/service"
	"github.com/lixenwraith/mission/status"
	"github.com/lixenwraith/mission/world"
)

var (
	dimFlag   = flag.Int("dim", 30, "Grid side in cells")
	seedFlag  = flag.Uint64("seed", 0, "Maze seed, 0 = time based")
	braidFlag = flag.Float64("braid", 0.2, "Dead-end braiding chance [0.0 - 1.0]")
	debugFlag = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	syncFlag  = flag.Bool("sync", false, "Search inline on the simulation goroutine")
	muteFlag  = flag.Bool("mute", false, "Start without audio")
)

const (
	frameInterval = 16 * time.Millisecond
	maxFrameDt    = 0.1
	minDim        = 5
)

func main() {
	// Terminal is restored by the crash hook once the screen exists
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mission: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dim := max(*dimFlag, minDim)
	layout := maze.Generate(maze.Config{
		Width:      dim,
		Height:     dim,
		Braid:      *braidFlag,
		OpenBorder: true,
		Seed:       *seedFlag,
	})
	log.Printf("maze %dx%d seed=%d braid=%.2f", layout.Width, layout.Height, layout.Seed, *braidFlag)

	field := world.NewField(dim, dim)
	if err := field.LoadWalls(layout.Walls); err != nil {
		return fmt.Errorf("load maze: %w", err)
	}

	// Services
	hub := service.NewHub()
	stat := status.NewService()
	sound := audio.NewService()
	for _, svc := range []service.Service{stat, sound} {
		if err := hub.Register(svc); err != nil {
			return err
		}
	}

	var paths navigation.PathService
	if *syncFlag {
		paths = navigation.NewSyncCoworker(dim, dim, stat.Registry())
	} else {
		coworker := navigation.NewCoworker(dim, dim)
		if err := hub.Register(coworker); err != nil {
			return err
		}
		paths = coworker
	}

	args := []any{stat.Registry()}
	if *muteFlag {
		args = append(args, true)
	}
	if err := hub.InitAll(args...); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer hub.StopAll()
	log.Printf("services started: %v", hub.Order())

	w, err := world.New(field, paths, stat.Registry())
	if err != nil {
		return err
	}

	// Terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	core.SetCrashHook(screen.Fini)
	defer core.SetCrashHook(nil)
	screen.EnableMouse()
	screen.HideCursor()

	view := render.NewView(screen.Size())
	loop(screen, view, w, sound, stat.Registry())

	for _, s := range stat.Registry().Snapshot() {
		log.Printf("%s %s=%v", s.Kind, s.Name, s.Value)
	}
	return nil
}

// loop runs input and fixed-interval simulation until the player quits
func loop(screen tcell.Screen, view *render.View, w *world.World, sound *audio.AudioService, reg *status.Registry) {
	events := make(chan tcell.Event, 256)
	quit := make(chan struct{})
	defer close(quit)

	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	})

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			if !handle(view.Translate(ev), screen, w, sound) {
				return
			}

		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), maxFrameDt)
			last = now

			w.Tick(dt)
			sound.PlayAll(w.DrainSounds())
			view.Draw(w, reg.Snapshot())
			view.Buffer().Flush(screen)
		}
	}
}

// handle applies one action, false on quit
func handle(a render.Action, screen tcell.Screen, w *world.World, sound *audio.AudioService) bool {
	switch a.Kind {
	case render.ActionQuit:
		return false

	case render.ActionMove:
		ok, err := w.RequestWay(a.Cell)
		if err != nil {
			log.Printf("move to %v: %v", a.Cell, err)
		} else if !ok {
			log.Printf("move to %v: search busy", a.Cell)
		}

	case render.ActionToggle:
		ok, err := w.ToggleObstacle(a.Cell)
		if err != nil {
			log.Printf("toggle %v: %v", a.Cell, err)
		} else if !ok {
			log.Printf("toggle %v: refused", a.Cell)
		}

	case render.ActionMute:
		if p := sound.Player(); p != nil {
			log.Printf("audio muted=%v", p.ToggleMute())
		}

	case render.ActionResize:
		screen.Sync()
	}
	return true
}

package main

import (
	"errors"
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"

	"github.com/milk9111/spritescene/config"
	"github.com/milk9111/spritescene/logging"
)

func main() {
	configPath := flag.String("config", "", "config file (default ./config.yaml when present)")
	sceneName := flag.String("scene", "", "scene name in the scene file")
	debug := flag.Bool("debug", false, "enable debug overlay")
	watch := flag.Bool("watch", false, "reload scene, prefab and script files on change")
	stateDir := flag.String("state-dir", "", "directory holding the state documents")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneName
		case "debug":
			cfg.Debug = *debug
		case "watch":
			cfg.Watch = *watch
		case "state-dir":
			cfg.StateDir = *stateDir
		}
	})

	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

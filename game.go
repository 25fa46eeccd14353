package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	log "github.com/sirupsen/logrus"

	"github.com/milk9111/spritescene/config"
	"github.com/milk9111/spritescene/ecs/system"
	"github.com/milk9111/spritescene/menu"
	"github.com/milk9111/spritescene/prefabs"
	"github.com/milk9111/spritescene/scene"
	"github.com/milk9111/spritescene/state"
)

type Game struct {
	cfg   *config.Config
	store *state.Store
	menu  *menu.Manager
	scene *scene.Scene
	mode  state.Mode

	watcher *prefabs.Watcher
	debug   bool

	// escape reports an Escape press this frame.
	escape func() bool
}

func NewGame(cfg *config.Config) (*Game, error) {
	return newGame(cfg, scene.Options{})
}

// newGame wires the store, menus and scene. opts supplies the builder and
// input polling; file, store and size come from cfg.
func newGame(cfg *config.Config, opts scene.Options) (*Game, error) {
	store := state.NewStore(cfg.StateDir)
	if err := store.SetMode(state.ModeMenu); err != nil {
		log.Warnf("game: reset mode: %v", err)
	}

	menus, err := menu.Load(store)
	if err != nil {
		return nil, fmt.Errorf("game: load menus: %w", err)
	}
	if cfg.InitialMenu != "" {
		if err := menus.SetCurrent(cfg.InitialMenu); err != nil {
			return nil, fmt.Errorf("game: initial menu: %w", err)
		}
	}

	opts.File = cfg.SceneFile
	opts.Store = store
	opts.Width = float64(cfg.Window.Width)
	opts.Height = float64(cfg.Window.Height)
	sc, err := scene.Load(cfg.Scene, opts)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:    cfg,
		store:  store,
		menu:   menus,
		scene:  sc,
		mode:   state.ModeMenu,
		debug:  cfg.Debug,
		escape: escapePressed,
	}

	if cfg.Watch {
		g.watcher, err = prefabs.NewWatcher(watchDirs(cfg)...)
		if err != nil {
			log.Warnf("game: hot reload disabled: %v", err)
		}
	}

	return g, nil
}

// watchDirs returns the existing directories holding the scene file, prefabs
// and scripts.
func watchDirs(cfg *config.Config) []string {
	sceneDir := "."
	if cfg.SceneFile != "" {
		sceneDir = filepath.Dir(cfg.SceneFile)
	}
	var dirs []string
	for _, dir := range []string{sceneDir, prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func escapePressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Update() error {
	g.reloadChanged()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		log.Infof("scene %q:\n%s", g.scene.Name(), spew.Sdump(g.scene.Snapshot()))
	}

	g.mode = g.store.Mode()
	switch g.mode {
	case state.ModeGame:
		g.menu.EnterGame()
		g.scene.Update()
		if g.escape() {
			if err := g.store.SetMode(state.ModeMenu); err != nil {
				log.Errorf("game: set mode: %v", err)
			}
		}
	default:
		if err := g.menu.Update(); err != nil {
			log.Warnf("game: menu: %v", err)
		}
	}

	if g.menu.QuitRequested() {
		return ebiten.Termination
	}
	return nil
}

// reloadChanged rebuilds the scene, and the menus when menus.yaml changed,
// after watched files are edited.
func (g *Game) reloadChanged() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Warnf("game: watcher: %v", err)
	default:
	}

	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	log.WithField("files", changed).Info("game: hot reload")

	for _, name := range changed {
		if filepath.Base(name) == "menus.yaml" {
			g.reloadMenus()
			break
		}
	}
	if err := g.scene.Reload(); err != nil {
		log.Errorf("game: reload scene: %v", err)
	}
}

func (g *Game) reloadMenus() {
	menus, err := menu.Load(g.store)
	if err != nil {
		log.Errorf("game: reload menus: %v", err)
		return
	}
	if err := menus.SetCurrent(g.menu.Current()); err != nil {
		log.Warnf("game: reload menus: %v", err)
	}
	g.menu = menus
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if g.mode == state.ModeGame {
		g.scene.Draw(screen)
	} else {
		g.menu.Draw(screen)
	}

	if !g.debug {
		return
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  TPS: %.2f  mode: %s  score: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.mode, g.store.Score()))
	if g.mode == state.ModeGame {
		system.DrawPlayerDebug(g.scene.World(), screen, 0, 16)
		system.DrawPhysicsDebug(g.scene.Physics().Space(), screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.cfg.Window.Width), float64(g.cfg.Window.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

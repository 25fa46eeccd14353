package menu

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/spritescene/common"
	"github.com/milk9111/spritescene/prefabs"
	"github.com/milk9111/spritescene/state"
)

var (
	ErrUnknownMenu   = errors.New("menu: unknown menu")
	ErrUnknownAction = errors.New("menu: unknown action")
)

const (
	ActionStart    = "start"
	ActionResume   = "resume"
	ActionMainMenu = "main_menu"
	ActionQuit     = "quit"

	openPrefix = "open:"
)

// Manager owns the menu definitions and the current menu selection.
type Manager struct {
	spec     *prefabs.MenusSpec
	store    *state.Store
	current  string
	selected int
	quit     bool

	// UIs are built on first use and rebuilt when the selection moves.
	uis  map[string]*ebitenui.UI
	face ebtext.Face
}

// Load reads menus.yaml and returns a manager on its initial menu.
func Load(store *state.Store) (*Manager, error) {
	spec, err := prefabs.LoadMenusSpec()
	if err != nil {
		return nil, err
	}
	return NewManager(spec, store)
}

// NewManager validates spec and returns a manager on spec.Initial.
func NewManager(spec *prefabs.MenusSpec, store *state.Store) (*Manager, error) {
	if spec == nil {
		return nil, fmt.Errorf("menu: nil menus spec")
	}
	if _, ok := spec.Menus[spec.Initial]; !ok {
		return nil, fmt.Errorf("%w: initial %q", ErrUnknownMenu, spec.Initial)
	}
	if spec.InGame != "" {
		if _, ok := spec.Menus[spec.InGame]; !ok {
			return nil, fmt.Errorf("%w: in game %q", ErrUnknownMenu, spec.InGame)
		}
	}
	for name, m := range spec.Menus {
		for _, b := range m.Buttons {
			if err := validateAction(spec, b.Action); err != nil {
				return nil, fmt.Errorf("menu: %q button %q: %w", name, b.Label, err)
			}
		}
	}

	return &Manager{
		spec:    spec,
		store:   store,
		current: spec.Initial,
		uis:     make(map[string]*ebitenui.UI),
	}, nil
}

func validateAction(spec *prefabs.MenusSpec, action string) error {
	switch action {
	case ActionStart, ActionResume, ActionMainMenu, ActionQuit:
		return nil
	}
	if target, ok := strings.CutPrefix(action, openPrefix); ok {
		if _, ok := spec.Menus[target]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownMenu, target)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

func (m *Manager) Current() string {
	return m.current
}

func (m *Manager) Selected() int {
	return m.selected
}

// QuitRequested reports whether a quit action was dispatched.
func (m *Manager) QuitRequested() bool {
	return m.quit
}

// SetCurrent switches to the named menu and resets the selection.
func (m *Manager) SetCurrent(name string) error {
	if _, ok := m.spec.Menus[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMenu, name)
	}
	if name == m.current {
		return nil
	}
	m.current = name
	m.selected = 0
	return nil
}

// EnterGame switches to the in-game menu, used while the scene runs.
func (m *Manager) EnterGame() {
	name := m.spec.InGame
	if name == "" {
		return
	}
	if err := m.SetCurrent(name); err != nil {
		log.Errorf("menu: enter game: %v", err)
	}
}

// Dispatch runs a button action.
func (m *Manager) Dispatch(action string) error {
	switch action {
	case ActionStart, ActionResume:
		return m.setMode(state.ModeGame)
	case ActionMainMenu:
		if err := m.SetCurrent(m.spec.Initial); err != nil {
			return err
		}
		return m.setMode(state.ModeMenu)
	case ActionQuit:
		m.quit = true
		return nil
	}

	if target, ok := strings.CutPrefix(action, openPrefix); ok {
		return m.SetCurrent(target)
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

func (m *Manager) setMode(mode state.Mode) error {
	if m.store == nil {
		return nil
	}
	if err := m.store.SetMode(mode); err != nil {
		return fmt.Errorf("menu: set mode %q: %w", mode, err)
	}
	return nil
}

// Move shifts the keyboard selection by delta, wrapping around.
func (m *Manager) Move(delta int) {
	n := len(m.spec.Menus[m.current].Buttons)
	if n == 0 {
		return
	}
	next := ((m.selected+delta)%n + n) % n
	if next != m.selected {
		m.selected = next
		delete(m.uis, m.current)
	}
}

// Activate dispatches the selected button's action.
func (m *Manager) Activate() error {
	buttons := m.spec.Menus[m.current].Buttons
	if m.selected < 0 || m.selected >= len(buttons) {
		return nil
	}
	return m.Dispatch(buttons[m.selected].Action)
}

// Update handles keyboard navigation and updates the current menu's UI.
func (m *Manager) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp), inpututil.IsKeyJustPressed(ebiten.KeyW):
		m.Move(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown), inpututil.IsKeyJustPressed(ebiten.KeyS):
		m.Move(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if err := m.Activate(); err != nil {
			return err
		}
	}

	m.ui().Update()
	return nil
}

func (m *Manager) Draw(screen *ebiten.Image) {
	m.ui().Draw(screen)
}

func (m *Manager) ui() *ebitenui.UI {
	if ui, ok := m.uis[m.current]; ok {
		return ui
	}
	ui := m.build(m.current)
	m.uis[m.current] = ui
	return ui
}

// build lays out a centered panel with the menu title and one button per entry.
func (m *Manager) build(name string) *ebitenui.UI {
	if m.face == nil {
		m.face = ebtext.NewGoXFace(basicfont.Face7x13)
	}
	face := m.face

	theme := m.spec.Theme
	panelImg := imageui.NewNineSliceColor(theme.Panel.ColorOr(color.NRGBA{A: 200}))
	btnImg := imageui.NewNineSliceColor(theme.Button.ColorOr(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}))
	selImg := imageui.NewNineSliceColor(theme.Selected.ColorOr(color.NRGBA{R: 0x8a, G: 0x5a, B: 0x12, A: 0xff}))
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: theme.ButtonText.ColorOr(white)}

	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	spec := m.spec.Menus[name]
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(spec.Title, &face, theme.Title.ColorOr(white)),
		widget.TextOpts.WidgetOpts(center),
	))

	for i, b := range spec.Buttons {
		img := btnImg
		if i == m.selected {
			img = selImg
		}
		action := b.Action
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: img, Hover: selImg, Pressed: selImg}),
			widget.ButtonOpts.Text(b.Label, &face, btnTextColor),
			widget.ButtonOpts.TextPadding(&widget.Insets{Top: 6, Bottom: 6, Left: 16, Right: 16}),
			widget.ButtonOpts.DisableDefaultKeys(),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if err := m.Dispatch(action); err != nil {
					log.Errorf("menu: dispatch %q: %v", action, err)
				}
			}),
		))
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

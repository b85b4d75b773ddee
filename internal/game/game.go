package game

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/samdwyer/dungeoncrawl/internal/ui"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// Game drives a Session from terminal input.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	cfg      Config
	logger   zerolog.Logger
	session  *Session
	buttons  tcell.ButtonMask
	running  bool
}

// New creates a new game instance on the terminal.
func New(cfg Config, logger zerolog.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, cfg, logger), nil
}

// NewWithScreen creates a game that draws to an existing screen.
func NewWithScreen(screen *ui.Screen, cfg Config, logger zerolog.Logger) *Game {
	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		cfg:      cfg,
		logger:   logger,
		running:  true,
	}
}

// Session returns the current run.
func (g *Game) Session() *Session { return g.session }

// Start begins a new run. Only the first run uses the configured seed.
func (g *Game) Start(ctx context.Context) error {
	s, err := NewSession(ctx, g.cfg, g.logger)
	if err != nil {
		return err
	}
	g.session = s
	g.cfg.Seed = 0
	return nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	if err := g.Start(ctx); err != nil {
		return err
	}

	for g.running {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.Render()
		if err := g.HandleEvent(ctx, g.screen.PollEvent()); err != nil {
			return err
		}
	}
	return nil
}

// Render draws the current session.
func (g *Game) Render() {
	s := g.session
	v := ui.View{
		Dungeon:  s.Dungeon(),
		Explore:  s.Exploration(),
		Player:   s.Player(),
		Messages: s.Messages(),
		Seed:     s.Seed(),
	}
	if enc := s.Encounter(); enc != nil {
		v.Monster = enc.Monster
	}
	switch s.State() {
	case StateWon:
		v.Status = "VICTORY"
	case StateLost:
		v.Status = "YOU HAVE FALLEN"
	}
	g.renderer.Render(v)
}

// HandleEvent processes a single input event. Only failures that end the
// program are returned.
func (g *Game) HandleEvent(ctx context.Context, ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		g.handleMouseEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return nil
}

// Running reports whether the loop should keep going.
func (g *Game) Running() bool { return g.running }

func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	return g.handleKey(ctx, ev.Key(), ev.Rune())
}

func (g *Game) handleKey(ctx context.Context, key tcell.Key, r rune) error {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.tryMove(ctx, world.North)
	case tcell.KeyDown:
		g.tryMove(ctx, world.South)
	case tcell.KeyLeft:
		g.tryMove(ctx, world.West)
	case tcell.KeyRight:
		g.tryMove(ctx, world.East)
	case tcell.KeyEnter:
		g.attack(ctx)

	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			g.running = false
		case 'a', ' ':
			g.attack(ctx)
		case 'r':
			g.report(g.session.Retreat(ctx))
		case 's':
			if !g.session.State().IsOver() && g.session.State() != StateCombat {
				g.session.Search()
			}
		case 'n':
			if g.session.State().IsOver() {
				return g.Start(ctx)
			}
		}
	}
	return nil
}

// handleMouseEvent enters the clicked room on button press.
func (g *Game) handleMouseEvent(ctx context.Context, ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0 && g.buttons&tcell.Button1 == 0
	g.buttons = ev.Buttons()
	if !pressed {
		return
	}

	x, y := ev.Position()
	c, ok := ui.CellAt(g.session.Dungeon().Grid(), x, y)
	if !ok {
		return
	}
	if _, ok := g.session.Dungeon().RoomAt(c); !ok {
		return
	}
	g.enter(ctx, c)
}

func (g *Game) tryMove(ctx context.Context, d world.Direction) {
	target := g.session.Exploration().Current().Add(d)
	if _, ok := g.session.Dungeon().RoomAt(target); !ok {
		return
	}
	g.enter(ctx, target)
}

func (g *Game) enter(ctx context.Context, target world.Coord) {
	_, err := g.session.Enter(ctx, target)
	if errors.Is(err, world.ErrInvalidTransition) {
		return
	}
	g.report(err)
}

func (g *Game) attack(ctx context.Context) {
	_, err := g.session.Attack(ctx)
	g.report(err)
}

// report logs command errors the player should not see as messages.
func (g *Game) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, ErrRunOver), errors.Is(err, ErrInCombat), errors.Is(err, ErrNotInCombat):
		g.logger.Debug().Err(err).Msg("command ignored")
	default:
		g.logger.Error().Err(err).Msg("command failed")
		g.session.say("Something went wrong: " + err.Error())
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}

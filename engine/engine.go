package engine

import (
	"io"
	"log"
	"time"

	"github.com/minaorangina/taboo/deck"
	"github.com/minaorangina/taboo/game"
	"github.com/minaorangina/taboo/protocol"
	"github.com/minaorangina/taboo/random"
)

// screen is what the shell is showing: the menu or a game
type screen interface {
	isScreen()
}

type menu struct {
	parties    int
	mode       game.Mode
	lastScores []int
}

type inGame struct {
	session *game.Session
}

func (*menu) isScreen()  {}
func (inGame) isScreen() {}

// ShellOpts configures a Shell
type ShellOpts struct {
	Pool       *deck.Pool
	NewRand    func() deck.Shuffler
	TurnLength time.Duration
	Logger     *log.Logger
}

// Shell switches between the pre-game menu and a running game
type Shell struct {
	pool       *deck.Pool
	newRand    func() deck.Shuffler
	turnLength time.Duration
	logger     *log.Logger
	clock      time.Duration
	screen     screen
}

// NewShell constructs a Shell showing the menu
func NewShell(opts ShellOpts) *Shell {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.NewRand == nil {
		opts.NewRand = func() deck.Shuffler { return random.New(0) }
	}

	return &Shell{
		pool:       opts.Pool,
		newRand:    opts.NewRand,
		turnLength: opts.TurnLength,
		logger:     opts.Logger,
		screen:     &menu{parties: game.MinParties, mode: game.Teams},
	}
}

// Session returns the running game, if there is one
func (sh *Shell) Session() (*game.Session, bool) {
	g, ok := sh.screen.(inGame)
	if !ok {
		return nil, false
	}
	return g.session, true
}

// Settings returns the party count and mode the next game will use
func (sh *Shell) Settings() (int, game.Mode) {
	if g, ok := sh.screen.(inGame); ok {
		return g.session.Parties(), g.session.Mode()
	}
	m := sh.screen.(*menu)
	return m.parties, m.mode
}

// Tick moves the device clock on by elapsed and updates the current screen
func (sh *Shell) Tick(in protocol.Input, elapsed time.Duration, surf protocol.Surface) {
	if elapsed > 0 {
		sh.clock += elapsed
	}

	switch s := sh.screen.(type) {
	case *menu:
		sh.updateMenu(s, in, surf)
	case inGame:
		if !s.session.Update(in, sh.clock, surf) {
			sh.screen = &menu{
				parties:    s.session.Parties(),
				mode:       s.session.Mode(),
				lastScores: s.session.Scores(),
			}
			drawMenu(surf, sh.screen.(*menu))
		}
	}
}

func (sh *Shell) updateMenu(m *menu, in protocol.Input, surf protocol.Surface) {
	if in.JustPressed(protocol.PovUp) {
		m.parties++
	}
	if in.JustPressed(protocol.PovDown) {
		m.parties--
		if m.parties < game.MinParties {
			m.parties = game.MinParties
		}
	}
	if in.JustPressed(protocol.PovLeft) || in.JustPressed(protocol.PovRight) {
		m.mode = m.mode.Toggle()
	}

	if in.JustPressed(protocol.MenuR) || in.JustPressed(protocol.ActionA) {
		session, err := game.NewSession(game.Options{
			Parties:    m.parties,
			Mode:       m.mode,
			Pool:       sh.pool,
			Rand:       sh.newRand(),
			TurnLength: sh.turnLength,
			Logger:     sh.logger,
		})
		if err != nil {
			sh.logger.Printf("could not start game: %s", err)
		} else {
			sh.screen = inGame{session: session}
			// draw the new game straight away
			session.Update(noInput{}, sh.clock, surf)
			return
		}
	}

	drawMenu(surf, m)
}

type noInput struct{}

func (noInput) Pressed(protocol.Button) bool      { return false }
func (noInput) JustPressed(protocol.Button) bool  { return false }
func (noInput) JustReleased(protocol.Button) bool { return false }

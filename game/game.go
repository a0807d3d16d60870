package game

import (
	"errors"
	"io"
	"log"
	"time"

	"github.com/minaorangina/taboo/deck"
	"github.com/minaorangina/taboo/protocol"
	"github.com/minaorangina/taboo/random"
	uuid "github.com/satori/go.uuid"
)

var (
	ErrTooFewParties = errors.New("minimum of 2 players or teams required")
	ErrNilPool       = errors.New("game needs a card pool")
	ErrUnknownMode   = errors.New("unknown game mode")
)

const (
	MinParties        = 2
	DefaultTurnLength = 60 * time.Second
)

// Options configures a new Session
type Options struct {
	Parties    int
	Mode       Mode
	Pool       *deck.Pool
	Rand       deck.Shuffler
	TurnLength time.Duration
	Logger     *log.Logger
}

// Session is one game, from the first turn until someone ends it
type Session struct {
	id         string
	parties    int
	mode       Mode
	deck       *deck.Deck
	state      TurnState
	turn       Turn
	turnLength time.Duration
	logger     *log.Logger
}

// NewSession starts a game with a fresh deck, waiting for the first turn
func NewSession(opts Options) (*Session, error) {
	if opts.Parties < MinParties {
		return nil, ErrTooFewParties
	}
	if opts.Pool == nil {
		return nil, ErrNilPool
	}
	if !opts.Mode.valid() {
		return nil, ErrUnknownMode
	}
	if opts.Rand == nil {
		opts.Rand = random.New(0)
	}
	if opts.TurnLength <= 0 {
		opts.TurnLength = DefaultTurnLength
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	s := &Session{
		id:         uuid.NewV4().String(),
		parties:    opts.Parties,
		mode:       opts.Mode,
		deck:       deck.New(opts.Pool, opts.Parties, opts.Rand),
		state:      ReadyingUp{},
		turn:       FirstTurn(opts.Mode),
		turnLength: opts.TurnLength,
		logger:     opts.Logger,
	}
	s.logger.Printf("game %s: %d %s, %d cards", s.id, s.parties, s.mode, s.deck.Size())

	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Parties() int {
	return s.parties
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) State() TurnState {
	return s.state
}

func (s *Session) Turn() Turn {
	return s.turn
}

func (s *Session) Deck() *deck.Deck {
	return s.deck
}

func (s *Session) Scores() []int {
	return s.deck.Scores()
}

// Update runs one tick at device time now and draws the result.
// It returns false once the players have ended the game.
func (s *Session) Update(in protocol.Input, now time.Duration, surf protocol.Surface) bool {
	var next TurnState

	switch state := s.state.(type) {
	case ReadyingUp:
		var open bool
		next, open = s.ready(in, now)
		if !open {
			s.logger.Printf("game %s: ended, scores %v", s.id, s.Scores())
			return false
		}
	case Playing:
		next = s.play(state, in, now)
	case TurnEnded:
		next = s.review(state, in)
	default:
		panic("game: unknown turn state")
	}

	s.state = next
	s.draw(surf, now)

	return true
}

func (s *Session) ready(in protocol.Input, now time.Duration) (TurnState, bool) {
	if in.JustPressed(protocol.ActionA) {
		s.logger.Printf("game %s: %s starts", s.id, s.turn)
		return Playing{
			Start:   now,
			Card:    s.deck.Draw(),
			History: []Result{},
		}, true
	}
	if in.JustPressed(protocol.ActionB) {
		return ReadyingUp{}, false
	}
	return ReadyingUp{}, true
}

func (s *Session) play(p Playing, in protocol.Input, now time.Duration) TurnState {
	switch {
	case p.Remaining(now, s.turnLength) <= 0 || in.JustPressed(protocol.MenuR):
		return endTurn(p)
	case in.JustPressed(protocol.ActionA):
		return s.replaceCard(p, Won)
	case in.JustPressed(protocol.ActionB):
		return s.replaceCard(p, Discarded)
	}
	return p
}

// replaceCard takes the card in play, records it, and puts a new one in its
// place. When every card of the pool is already out the turn ends instead.
func (s *Session) replaceCard(p Playing, outcome Outcome) TurnState {
	old := p.Card
	if s.deck.Available() == 0 {
		history := append(p.History, Result{Card: old, Outcome: outcome})
		s.logger.Printf("game %s: out of cards, ending the turn", s.id)
		return TurnEnded{History: history, Cursor: len(history) - 1}
	}

	p.Card = s.deck.Draw()
	p.History = append(p.History, Result{Card: old, Outcome: outcome})
	return p
}

// endTurn always records the card still in play, so the history is never empty
func endTurn(p Playing) TurnEnded {
	history := append(p.History, Result{Card: p.Card, Outcome: Timeout})
	return TurnEnded{
		History: history,
		Cursor:  len(history) - 1,
	}
}

func (s *Session) review(e TurnEnded, in protocol.Input) TurnState {
	if in.JustPressed(protocol.ActionA) {
		s.score(e.History)
		return ReadyingUp{}
	}

	if in.JustPressed(protocol.PovRight) || in.JustPressed(protocol.BumperR) {
		e.Cursor++
	}
	if in.JustPressed(protocol.PovLeft) || in.JustPressed(protocol.BumperL) {
		e.Cursor--
	}
	if e.Cursor >= len(e.History) {
		e.Cursor = len(e.History) - 1
	}
	if e.Cursor < 0 {
		e.Cursor = 0
	}

	return e
}

// score resolves every card of the turn and hands over to the next party
func (s *Session) score(history []Result) {
	credited := s.turn.Credited()
	for _, r := range history {
		if r.Outcome == Won {
			s.deck.Credit(r.Card, credited...)
		} else {
			s.deck.Discard(r.Card)
		}
	}

	s.logger.Printf("game %s: %s got %d of %d cards", s.id, s.turn, Count(history, Won), len(history))
	s.turn = s.turn.Advance(s.parties)
}

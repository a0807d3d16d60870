package game

import (
	"time"

	"github.com/minaorangina/taboo/deck"
)

// Outcome is how a card left play
type Outcome int

const (
	Won Outcome = iota
	Discarded
	Timeout
)

var outcomeNames = []string{"Got", "Discarded", "Time up"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "Unknown"
	}
	return outcomeNames[o]
}

// Result is one card of a turn's history
type Result struct {
	Card    deck.Card
	Outcome Outcome
}

// TurnState is the phase of the current turn:
// ReadyingUp -> Playing -> TurnEnded -> ReadyingUp
type TurnState interface {
	String() string
	isTurnState()
}

// ReadyingUp waits for the next party to start their turn
type ReadyingUp struct{}

// Playing is a running turn with a card in play
type Playing struct {
	Start   time.Duration
	Card    deck.Card
	History []Result
}

// TurnEnded lets the players look back through the turn before scoring it
type TurnEnded struct {
	History []Result
	Cursor  int
}

func (ReadyingUp) String() string { return "readying" }
func (Playing) String() string    { return "playing" }
func (TurnEnded) String() string  { return "reviewing" }

func (ReadyingUp) isTurnState() {}
func (Playing) isTurnState()    {}
func (TurnEnded) isTurnState()  {}

// Remaining is the time left in the turn at now
func (p Playing) Remaining(now, turnLength time.Duration) time.Duration {
	return turnLength - (now - p.Start)
}

// Count returns how many results had the given outcome
func Count(history []Result, outcome Outcome) int {
	n := 0
	for _, r := range history {
		if r.Outcome == outcome {
			n++
		}
	}
	return n
}

package game

import "fmt"

// Mode decides what a party is: a team, or a single player
type Mode int

const (
	Teams Mode = iota
	Players
)

var modeNames = []string{"teams", "players"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// Toggle switches between Teams and Players
func (m Mode) Toggle() Mode {
	if m == Teams {
		return Players
	}
	return Teams
}

func (m Mode) valid() bool {
	return m == Teams || m == Players
}

// Turn says whose turn it is. It is either a TeamTurn or a PlayerTurn.
type Turn interface {
	// Advance returns the turn that follows this one
	Advance(parties int) Turn
	// Credited lists the parties that share a won card
	Credited() []int
	String() string
	isTurn()
}

// TeamTurn is a turn in Teams mode
type TeamTurn struct {
	Team int
}

// PlayerTurn is a turn in Players mode: the asker gives clues, the askee guesses
type PlayerTurn struct {
	Asker int
	Askee int
}

// FirstTurn is the turn a new game starts with
func FirstTurn(mode Mode) Turn {
	if mode == Players {
		return PlayerTurn{Asker: 0, Askee: 1}
	}
	return TeamTurn{Team: 0}
}

func (t TeamTurn) Advance(parties int) Turn {
	return TeamTurn{Team: (t.Team + 1) % parties}
}

func (t TeamTurn) Credited() []int {
	return []int{t.Team}
}

func (t TeamTurn) String() string {
	return fmt.Sprintf("Team %d", t.Team)
}

func (TeamTurn) isTurn() {}

// Advance walks through every ordered pair of players. Pairs are grouped by
// gap, the distance from asker to askee: first every pair with gap 1, asker
// 0 to N-1, then gap 2, and so on up to N-1, then around again.
func (t PlayerTurn) Advance(parties int) Turn {
	gap := (t.Askee + parties - t.Asker) % parties

	asker := (t.Asker + 1) % parties
	askee := (t.Askee + 1) % parties
	if asker == 0 {
		askee = gap + 1
		if askee == parties {
			askee = 1
		}
	}

	return PlayerTurn{Asker: asker, Askee: askee}
}

func (t PlayerTurn) Credited() []int {
	return []int{t.Asker, t.Askee}
}

func (t PlayerTurn) String() string {
	return fmt.Sprintf("Player %d asking Player %d", t.Asker, t.Askee)
}

func (PlayerTurn) isTurn() {}

// partyName labels a party for display
func partyName(mode Mode, party int) string {
	if mode == Players {
		return fmt.Sprintf("Player %d", party)
	}
	return fmt.Sprintf("Team %d", party)
}

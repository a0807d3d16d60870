package game

import (
	"fmt"
	"time"

	"github.com/minaorangina/taboo/deck"
	"github.com/minaorangina/taboo/protocol"
)

const (
	smallText  = 18.0
	scoreText  = 24.0
	tabooText  = 36.0
	largeText  = 48.0
	lineHeight = 20
)

const (
	readyStartText   = "%s: Press A to start"
	readyFinishText  = "B to finish game"
	deckSizeText     = "%d cards in deck"
	playingHelpText  = "A got card, B discard, START end turn"
	countdownText    = "%.1fs (%d)"
	reviewGotText    = "%s got %d cards"
	reviewPassedText = "(discarded %d)"
	reviewHelpText   = "POV change cards, A to continue"
)

// Clear paints the whole surface black
func Clear(surf protocol.Surface) {
	surf.FillRect(0, 0, surf.Width(), surf.Height(), protocol.Black)
}

func (s *Session) draw(surf protocol.Surface, now time.Duration) {
	Clear(surf)

	switch state := s.state.(type) {
	case ReadyingUp:
		s.drawReadyingUp(surf)
	case Playing:
		s.drawPlaying(surf, state, now)
	case TurnEnded:
		s.drawTurnEnded(surf, state)
	}
}

func (s *Session) drawReadyingUp(surf protocol.Surface) {
	surf.Text(50, 50, smallText, protocol.White, fmt.Sprintf(deckSizeText, s.deck.Size()))
	surf.Text(50, 70, smallText, protocol.White, fmt.Sprintf(readyStartText, s.turn))
	surf.Text(50, 90, smallText, protocol.White, readyFinishText)

	active := map[int]bool{}
	for _, p := range s.turn.Credited() {
		active[p] = true
	}
	DrawScores(surf, s.mode, s.Scores(), active)
}

// DrawScores lists every party's score, highlighting the active ones
func DrawScores(surf protocol.Surface, mode Mode, scores []int, active map[int]bool) {
	for party, score := range scores {
		colour := protocol.Red
		if active[party] {
			colour = protocol.White
		}
		text := fmt.Sprintf("%s: %d", partyName(mode, party), score)
		surf.Text(350, 50+party*lineHeight, scoreText, colour, text)
	}
}

func (s *Session) drawPlaying(surf protocol.Surface, p Playing, now time.Duration) {
	remaining := p.Remaining(now, s.turnLength).Seconds()
	surf.Text(50, 50, largeText, protocol.White, fmt.Sprintf(countdownText, remaining, Count(p.History, Won)))
	drawCard(surf, p.Card, 100, 140)
	surf.Text(50, 430, smallText, protocol.White, playingHelpText)
}

func (s *Session) drawTurnEnded(surf protocol.Surface, e TurnEnded) {
	won := Count(e.History, Won)
	surf.Text(50, 50, largeText, protocol.White, fmt.Sprintf(reviewGotText, s.turn, won))
	surf.Text(50, 100, largeText, protocol.White, fmt.Sprintf(reviewPassedText, len(e.History)-won))

	shown := e.History[e.Cursor]
	surf.Text(100, 150, largeText, protocol.White, shown.Outcome.String())
	drawCard(surf, shown.Card, 100, 190)

	surf.Text(50, 410, smallText, protocol.White, fmt.Sprintf("%d/%d", e.Cursor+1, len(e.History)))
	surf.Text(50, 430, smallText, protocol.White, reviewHelpText)
}

func drawCard(surf protocol.Surface, card deck.Card, x, y int) {
	surf.Text(x, y, largeText, protocol.White, card.Word)
	for i, taboo := range card.Taboo {
		surf.Text(x, y+35+i*40, tabooText, protocol.Red, taboo)
	}
}

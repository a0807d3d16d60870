package engine

import (
	"fmt"

	"github.com/minaorangina/taboo/game"
	"github.com/minaorangina/taboo/protocol"
)

const (
	menuPartiesText = "Number of players/teams: %d"
	menuModeText    = "Mode: %s (LEFT/RIGHT to change)"
	menuStartText   = "Press START"
	menuLastText    = "Last game"
	menuTextSize    = 18.0
)

func drawMenu(surf protocol.Surface, m *menu) {
	game.Clear(surf)

	surf.Text(50, 50, menuTextSize, protocol.Red, fmt.Sprintf(menuPartiesText, m.parties))
	surf.Text(50, 70, menuTextSize, protocol.Red, fmt.Sprintf(menuModeText, m.mode))
	surf.Text(50, 90, menuTextSize, protocol.Red, menuStartText)

	if len(m.lastScores) > 0 {
		surf.Text(350, 30, menuTextSize, protocol.White, menuLastText)
		game.DrawScores(surf, m.mode, m.lastScores, nil)
	}
}

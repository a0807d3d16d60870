package deck

import "strings"

// Card is a word to be guessed and the words the clue-giver may not say
type Card struct {
	Word  string
	Taboo []string
}

func (c Card) String() string {
	if len(c.Taboo) == 0 {
		return c.Word
	}
	return c.Word + " (" + strings.Join(c.Taboo, ", ") + ")"
}

package deck

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/minaorangina/taboo/assets"
)

var (
	ErrMissingWord = errors.New("dataset line has no word")
	ErrEmptyPool   = errors.New("dataset has no usable cards")
)

// Pool is the immutable set of cards loaded from the dataset
type Pool struct {
	cards []Card
	index map[string]int
}

// LoadPool reads a dataset: one card per line, the word first and its taboo
// words after it, comma separated. Duplicate and multi-word entries are
// dropped and reported to logger.
func LoadPool(r io.Reader, logger *log.Logger) (*Pool, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	p := &Pool{
		cards: []Card{},
		index: map[string]int{},
	}

	var duplicates, multiWord int
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		card, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		if strings.ContainsAny(card.Word, " -") {
			logger.Printf("line %d: dropping multi-word entry %q", lineNum, card.Word)
			multiWord++
			continue
		}
		if _, seen := p.index[card.Word]; seen {
			logger.Printf("line %d: dropping duplicate %q", lineNum, card.Word)
			duplicates++
			continue
		}

		p.index[card.Word] = len(p.cards)
		p.cards = append(p.cards, card)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	if len(p.cards) == 0 {
		return nil, ErrEmptyPool
	}

	logger.Printf("loaded %d cards (%d duplicates, %d multi-word dropped)", len(p.cards), duplicates, multiWord)

	return p, nil
}

// DefaultPool loads the dataset bundled with the binary
func DefaultPool(logger *log.Logger) (*Pool, error) {
	return LoadPool(bytes.NewReader(assets.Words), logger)
}

func parseLine(line string) (Card, error) {
	fields := strings.Split(line, ",")

	word := strings.TrimSpace(fields[0])
	if word == "" {
		return Card{}, ErrMissingWord
	}

	taboo := []string{}
	for _, f := range fields[1:] {
		if f = strings.TrimSpace(f); f != "" {
			taboo = append(taboo, f)
		}
	}

	return Card{Word: word, Taboo: taboo}, nil
}

// Len is the number of cards in the pool
func (p *Pool) Len() int {
	return len(p.cards)
}

// Cards returns a copy of every card in the pool
func (p *Pool) Cards() []Card {
	cards := make([]Card, len(p.cards))
	copy(cards, p.cards)
	return cards
}

// Card looks up a card by its word
func (p *Pool) Card(word string) (Card, bool) {
	i, ok := p.index[word]
	if !ok {
		return Card{}, false
	}
	return p.cards[i], true
}

package deck

import (
	"errors"
	"fmt"
)

var ErrCardsNotConserved = errors.New("cards not conserved")

// Shuffler is the source of randomness for a Deck. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Deck holds the live piles of a game.
// Every card of the pool is in exactly one of: the draw pile, the discard
// pile, the won piles, or out (drawn and not yet resolved).
type Deck struct {
	pool        *Pool
	rng         Shuffler
	drawPile    []Card
	discardPile []Card
	wonPiles    [][]Card
	banked      []int
	outstanding map[string]int
}

// New creates a deck holding the whole pool in random order,
// with an empty won pile for each party
func New(pool *Pool, parties int, rng Shuffler) *Deck {
	if pool == nil || pool.Len() == 0 {
		panic("deck: empty pool")
	}
	if parties < 1 {
		panic(fmt.Sprintf("deck: invalid number of parties %d", parties))
	}

	d := &Deck{
		pool:        pool,
		rng:         rng,
		drawPile:    pool.Cards(),
		discardPile: []Card{},
		wonPiles:    make([][]Card, parties),
		banked:      make([]int, parties),
		outstanding: map[string]int{},
	}
	for i := range d.wonPiles {
		d.wonPiles[i] = []Card{}
	}
	d.shuffle(d.drawPile)

	return d
}

func (d *Deck) shuffle(cards []Card) {
	d.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Draw takes the top card. An empty draw pile is replenished from the
// reshuffled discard pile, or failing that from the pool itself.
// Drawing when Available is zero panics.
func (d *Deck) Draw() Card {
	if len(d.drawPile) == 0 {
		d.drawPile, d.discardPile = d.discardPile, []Card{}
		d.shuffle(d.drawPile)
	}
	if len(d.drawPile) == 0 {
		d.refill()
	}
	if len(d.drawPile) == 0 {
		panic("deck: no cards left to draw")
	}

	last := len(d.drawPile) - 1
	card := d.drawPile[last]
	d.drawPile = d.drawPile[:last]
	d.outstanding[card.Word]++

	return card
}

// refill runs when every card is either won or out. Won piles are banked
// as scores and their cards go back into play.
func (d *Deck) refill() {
	for party, pile := range d.wonPiles {
		d.banked[party] += len(pile)
		d.wonPiles[party] = []Card{}
	}

	cards := d.notOut()
	d.shuffle(cards)
	d.drawPile = cards
}

func (d *Deck) notOut() []Card {
	cards := []Card{}
	for _, c := range d.pool.cards {
		if d.outstanding[c.Word] == 0 {
			cards = append(cards, c)
		}
	}
	return cards
}

// Available is the number of cards Draw can still deal before the cards
// already out are resolved
func (d *Deck) Available() int {
	if n := d.Size(); n > 0 {
		return n
	}
	return len(d.notOut())
}

func (d *Deck) release(c Card) {
	n := d.outstanding[c.Word]
	if n == 0 {
		panic(fmt.Sprintf("deck: %q is not in play", c.Word))
	}
	if n == 1 {
		delete(d.outstanding, c.Word)
		return
	}
	d.outstanding[c.Word] = n - 1
}

// Discard returns a drawn card to the discard pile
func (d *Deck) Discard(c Card) {
	d.release(c)
	d.discardPile = append(d.discardPile, c)
}

// Credit puts a drawn card on the won pile of each party
func (d *Deck) Credit(c Card, parties ...int) {
	if len(parties) == 0 {
		panic(fmt.Sprintf("deck: %q credited to nobody", c.Word))
	}
	for _, p := range parties {
		if p < 0 || p >= len(d.wonPiles) {
			panic(fmt.Sprintf("deck: no party %d", p))
		}
	}

	d.release(c)
	for _, p := range parties {
		d.wonPiles[p] = append(d.wonPiles[p], c)
	}
}

// Size is the number of cards that are neither won nor out
func (d *Deck) Size() int {
	return len(d.drawPile) + len(d.discardPile)
}

// Parties is the number of won piles
func (d *Deck) Parties() int {
	return len(d.wonPiles)
}

// Outstanding is the number of cards drawn and not yet resolved
func (d *Deck) Outstanding() int {
	n := 0
	for _, count := range d.outstanding {
		n += count
	}
	return n
}

// Won returns a copy of a party's won pile
func (d *Deck) Won(party int) []Card {
	won := make([]Card, len(d.wonPiles[party]))
	copy(won, d.wonPiles[party])
	return won
}

// Score is the number of cards a party has won, including banked ones
func (d *Deck) Score(party int) int {
	return d.banked[party] + len(d.wonPiles[party])
}

// Scores returns every party's score
func (d *Deck) Scores() []int {
	scores := make([]int, len(d.wonPiles))
	for i := range scores {
		scores[i] = d.Score(i)
	}
	return scores
}

// Check verifies that every card of the pool is accounted for exactly once
func (d *Deck) Check() error {
	where := map[string]string{}

	place := func(word, pile string) error {
		if _, ok := d.pool.Card(word); !ok {
			return fmt.Errorf("%w: %q in %s is not in the pool", ErrCardsNotConserved, word, pile)
		}
		if prev, ok := where[word]; ok {
			return fmt.Errorf("%w: %q is in both %s and %s", ErrCardsNotConserved, word, prev, pile)
		}
		where[word] = pile
		return nil
	}

	for _, c := range d.drawPile {
		if err := place(c.Word, "draw pile"); err != nil {
			return err
		}
	}
	for _, c := range d.discardPile {
		if err := place(c.Word, "discard pile"); err != nil {
			return err
		}
	}

	// a card may be credited to several parties at once
	won := map[string]bool{}
	for party, pile := range d.wonPiles {
		inPile := map[string]bool{}
		for _, c := range pile {
			if inPile[c.Word] {
				return fmt.Errorf("%w: %q won twice by party %d", ErrCardsNotConserved, c.Word, party)
			}
			inPile[c.Word] = true
			if won[c.Word] {
				continue
			}
			won[c.Word] = true
			if err := place(c.Word, "won piles"); err != nil {
				return err
			}
		}
	}

	for word, n := range d.outstanding {
		if n > 1 {
			return fmt.Errorf("%w: %q is out %d times", ErrCardsNotConserved, word, n)
		}
		if err := place(word, "play"); err != nil {
			return err
		}
	}

	if len(where) != d.pool.Len() {
		return fmt.Errorf("%w: %d of %d cards accounted for", ErrCardsNotConserved, len(where), d.pool.Len())
	}

	return nil
}

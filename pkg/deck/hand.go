package deck

// Hand represents an ordered collection of cards
type Hand []*Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// RemoveLast removes and returns the last card, or nil if the hand is empty
func (h *Hand) RemoveLast() *Card {
	n := len(*h)
	if n == 0 {
		return nil
	}

	card := (*h)[n-1]
	*h = (*h)[:n-1]
	return card
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
// The cards themselves are shared.
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}

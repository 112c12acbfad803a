package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand_AddCard(t *testing.T) {
	h := make(Hand, 0)
	h.AddCard(CardFromString("1s"))
	h.AddCard(CardFromString("3c"))
	assert.Equal(t, "1s,3c", h.String())
}

func TestHand_RemoveLast(t *testing.T) {
	a := assert.New(t)

	h := Hand(CardsFromString("8c,8d"))
	card := h.RemoveLast()
	a.Equal("8d", CardToString(card))
	a.Equal("8c", h.String())

	h.RemoveLast()
	a.Nil(h.RemoveLast())
	a.Empty(h)
}

func TestHand_Clone(t *testing.T) {
	h := Hand(CardsFromString("2c,3c"))
	clone := h.Clone()
	clone.AddCard(CardFromString("4c"))

	assert.Equal(t, "2c,3c", h.String())
	assert.Equal(t, "2c,3c,4c", clone.String())
}

package blackjack

import (
	"testing"

	"casinotable/pkg/deck"
	"github.com/stretchr/testify/assert"
)

func TestPayout(t *testing.T) {
	a := assert.New(t)
	a.Equal(20, Payout(10, OutcomeWin))
	a.Equal(25, Payout(10, OutcomeBlackjack))
	a.Equal(10, Payout(10, OutcomePush))
	a.Equal(0, Payout(10, OutcomeLoss))
	a.Equal(0, Payout(10, OutcomeBust))

	// 3:2 rounds the profit down
	a.Equal(7+10, Payout(7, OutcomeBlackjack))
	a.Equal(0, Payout(0, OutcomeBlackjack))
}

func TestResolve(t *testing.T) {
	cards := deck.CardsFromString
	tests := []struct {
		name   string
		player string
		dealer string
		want   Outcome
	}{
		{"player bust", "10s,10h,5c", "10c,6d,10d", OutcomeBust},
		{"dealer blackjack beats 21", "7s,7h,7c", "1c,13d", OutcomeLoss},
		{"blackjacks push", "1s,12h", "1c,13d", OutcomePush},
		{"blackjack beats a later 21", "1s,12h", "7c,7d,7h", OutcomeBlackjack},
		{"dealer bust", "10s,2h", "10c,6d,10d", OutcomeWin},
		{"higher wins", "10s,9h", "10c,8d", OutcomeWin},
		{"equal pushes", "10s,8h", "10c,8d", OutcomePush},
		{"lower loses", "10s,8h", "10c,9d", OutcomeLoss},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Resolve(cards(test.player), cards(test.dealer)))
		})
	}
}

func TestOutcome_MarshalJSON(t *testing.T) {
	data, err := OutcomeBlackjack.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"blackjack"`, string(data))
}

package blackjack

import (
	"errors"
	"testing"
	"time"

	"casinotable/internal/rng"
	"casinotable/pkg/chips"
	"casinotable/pkg/deck"
	"casinotable/pkg/playable"
	"casinotable/pkg/stats"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// instantOptions have no animation delays and a shoe that never refills
func instantOptions() Options {
	opts := DefaultOptions()
	opts.DealInterval = 0
	opts.CardTravel = 0
	opts.DealerDelay = 0
	opts.ChipTravel = 0
	opts.ReuseDiscards = false
	opts.InfiniteShoe = false
	opts.RNG = rng.NewSeeded(1)
	return opts
}

func newTestGame(t *testing.T, cash int, cards string, opts ...func(*Options)) *Game {
	t.Helper()

	options := instantOptions()
	for _, opt := range opts {
		opt(&options)
	}

	g, err := NewGame(logrus.StandardLogger(), stats.NewRecord(1, cash), options)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	g.shoe.ShuffleFrom(deck.CardsFromString(cards))
	return g
}

func tick(t *testing.T, g *Game) {
	t.Helper()
	_, err := g.Tick(0)
	assert.NoError(t, err)
}

func assertConserved(t *testing.T, g *Game) {
	t.Helper()
	assert.NoError(t, g.economy.Audit())
}

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	_, err := NewGame(logrus.StandardLogger(), nil, DefaultOptions())
	a.EqualError(err, "a stats record is required")

	opts := DefaultOptions()
	opts.Seats = 4
	_, err = NewGame(logrus.StandardLogger(), stats.NewRecord(1, 100), opts)
	a.EqualError(err, "seats must be between 1 and 3, got 4")

	g, err := NewGame(logrus.StandardLogger(), stats.NewRecord(1, 100), DefaultOptions())
	a.NoError(err)
	a.Equal("Blackjack (6 Decks)", g.Name())
	a.Equal("blackjack", g.Key())
	a.Equal(StateBetting, g.State())
	a.Equal(1, g.Round())
	a.Equal(100, g.Cash())
	a.Equal(10000, g.rack.Total())
	a.Equal(6*52, g.shoe.Remaining())
	a.Equal(50*time.Millisecond, g.Interval())
	assertConserved(t, g)
}

func TestOptions_Validate(t *testing.T) {
	a := assert.New(t)
	a.NoError(DefaultOptions().Validate())

	opts := DefaultOptions()
	opts.Denominations = chips.Denominations{25, 5}
	a.True(errors.Is(opts.Validate(), chips.ErrInvalidDenominations))

	opts = DefaultOptions()
	opts.MinBet = 50
	opts.MaxBet = 10
	a.EqualError(opts.Validate(), "minimum bet $50 exceeds maximum bet $10")

	opts = DefaultOptions()
	opts.DealerStandsOn = 22
	a.Error(opts.Validate())

	opts = DefaultOptions()
	opts.Decks = 0
	a.EqualError(opts.Validate(), "table needs at least one deck")
}

func TestGame_playerStandsAndLoses(t *testing.T) {
	a := assert.New(t)

	// player 10+8, dealer 10 (hole) + 6 then draws a 3
	g := newTestGame(t, 100, "10s,8h,10c,6d,3h")
	a.NoError(g.Bet(0, 10))
	a.Equal(90, g.Cash())

	a.NoError(g.Deal())
	a.Equal(StateDealing, g.State())
	tick(t, g)

	a.Equal(StatePlayerTurn, g.State())
	hand := g.CurrentHand()
	score, _ := hand.Score()
	a.Equal(18, score)
	a.False(g.dealer.Cards[0].FaceUp, "hole card is dealt face-down")
	a.True(g.dealer.Cards[1].FaceUp)
	a.Equal([]Action{ActionHit, ActionStand, ActionDouble, ActionExit}, g.Actions())

	a.NoError(g.Stand())
	tick(t, g)

	a.Equal(StateEndRound, g.State())
	a.Equal(3, len(g.dealer.Cards))
	dealerScore, _ := g.dealer.Score()
	a.Equal(19, dealerScore)
	a.True(g.dealer.Cards[0].FaceUp)

	a.Equal(OutcomeLoss, hand.Outcome)
	a.True(hand.Loser)
	a.Equal(0, hand.Payout)
	a.Equal(90, g.Cash(), "free pile is down by the bet")
	a.Equal(10010, g.rack.Total())

	r := g.Record()
	a.Equal(90, r.Cash)
	a.Equal(1, r.HandsPlayed)
	a.Equal(1, r.HandsLost)
	a.Equal(10, r.TotalBets)
	a.Equal(0, r.TotalWinnings)

	a.Len(g.Results(), 1)
	a.Equal(OutcomeLoss, g.Results()[0].Hands[0].Outcome)
	a.Equal(19, g.Results()[0].DealerScore)
	assertConserved(t, g)
}

func TestGame_blackjack(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "1s,13h,10c,7d")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	a.Equal(StateEndRound, g.State(), "a blackjack needs no decisions")
	hand := g.Hands()[0]
	a.True(hand.Blackjack)
	a.Equal(OutcomeBlackjack, hand.Outcome)
	a.Equal(25, hand.Payout)
	a.Equal(115, g.Cash())
	a.Equal(1, g.Record().Blackjacks)
	a.Equal(1, g.Record().HandsWon)
	a.Equal(25, g.Record().TotalWinnings)
	assertConserved(t, g)
}

func TestGame_dealerBlackjack(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "10s,13h,1c,13d")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	a.Equal(StatePlayerTurn, g.State())
	a.NoError(g.Stand())
	tick(t, g)

	a.Equal(StateEndRound, g.State())
	a.True(g.dealer.Blackjack)
	a.Equal(OutcomeLoss, g.Hands()[0].Outcome)
	a.Equal(90, g.Cash())
}

func TestGame_push(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "10s,8h,10c,8d")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)
	a.NoError(g.Stand())
	tick(t, g)

	a.Equal(OutcomePush, g.Hands()[0].Outcome)
	a.True(g.Hands()[0].Push)
	a.Equal(100, g.Cash())
	a.Equal(1, g.Record().Pushes)
}

func TestGame_dealerBusts(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "10s,2h,10c,6d,10d")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)
	a.NoError(g.Stand())
	tick(t, g)

	a.True(g.dealer.Busted)
	a.Equal(OutcomeWin, g.Hands()[0].Outcome)
	a.Equal(110, g.Cash())
	a.True(g.Results()[0].DealerBusted)
}

func TestGame_playerBusts(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "10s,6h,10c,6d,9s,5h")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	a.NoError(g.Hit())
	hand := g.Hands()[0]
	a.True(hand.Busted)
	a.True(hand.Final)
	tick(t, g)

	a.Equal(StateEndRound, g.State())
	a.Equal(2, len(g.dealer.Cards), "the dealer does not draw when every hand busted")
	a.Equal(1, g.shoe.Remaining())
	a.Equal(OutcomeBust, hand.Outcome)
	a.Equal(90, g.Cash())
	a.Equal(1, g.Record().Busts)
	a.Equal(1, g.Record().HandsLost)
	assertConserved(t, g)
}

func TestGame_hitToTwentyOneStands(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "10s,6h,10c,7d,5s")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	a.NoError(g.Hit())
	hand := g.Hands()[0]
	a.True(hand.Final)
	a.False(hand.Blackjack, "a three card 21 is not a blackjack")
	tick(t, g)

	a.Equal(OutcomeWin, hand.Outcome)
	a.Equal(20, hand.Payout)
}

func TestGame_double(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "5s,6h,10c,7d,10s")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	a.NoError(g.Double())
	hand := g.Hands()[0]
	a.True(hand.Doubled)
	a.True(hand.Final)
	a.Equal(3, len(hand.Cards))
	a.Equal(20, hand.BetValue())
	a.Equal(80, g.Cash())
	tick(t, g)

	a.Equal(OutcomeWin, hand.Outcome)
	a.Equal(40, hand.Payout)
	a.Equal(120, g.Cash())
	a.Equal(20, g.Record().TotalBets)
	assertConserved(t, g)
}

func TestGame_double_insufficientFunds(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 10, "5s,6h,10c,7d,10s")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	a.NotContains(g.Actions(), ActionDouble)
	err := g.Double()
	a.True(errors.Is(err, chips.ErrInsufficientFunds))
	hand := g.Hands()[0]
	a.Equal(2, len(hand.Cards))
	a.Equal(10, hand.BetValue())
	a.False(hand.Final)
	a.Equal(1, g.shoe.Remaining(), "no card was drawn")
}

func TestGame_double_threeCards(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "2s,3h,10c,7d,4s")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)
	a.NoError(g.Hit())
	tick(t, g)

	err := g.Double()
	a.True(errors.Is(err, ErrIllegalAction))
	a.EqualError(err, "cannot double during player-turn: double down needs exactly two cards")
}

func TestGame_split(t *testing.T) {
	a := assert.New(t)

	// the original hand draws 3s, the new hand draws 10h
	g := newTestGame(t, 100, "8s,8h,10c,7d,3s,10h")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	a.Contains(g.Actions(), ActionSplit)
	a.NoError(g.Split())
	a.Len(g.Hands(), 2)
	a.Equal(80, g.Cash())

	first, second := g.Hands()[0], g.Hands()[1]
	a.Equal("8s,3s", first.Cards.String())
	a.Equal("8h,10h", second.Cards.String())
	a.Equal(10, second.BetValue())
	a.Equal(1, first.Splits)
	a.Equal(1, second.Splits)
	a.Equal(0, second.Seat)

	tick(t, g)
	a.Equal(first, g.CurrentHand())
	a.NoError(g.Stand())
	tick(t, g)
	a.Equal(second, g.CurrentHand())
	a.NoError(g.Stand())
	tick(t, g)

	a.Equal(StateEndRound, g.State())
	a.Equal(OutcomeLoss, first.Outcome)
	a.Equal(OutcomeWin, second.Outcome)
	a.Equal(100, g.Cash())
	a.Equal(2, g.Record().HandsPlayed)
	a.Equal(20, g.Record().TotalBets)
	assertConserved(t, g)
}

func TestGame_split_acesToBlackjack(t *testing.T) {
	a := assert.New(t)

	// each ace draws a ten-value card, dealer stands on 17
	g := newTestGame(t, 100, "1s,1h,10c,7d,13s,12h")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	a.NoError(g.Split())
	tick(t, g)
	tick(t, g)

	a.Equal(StateEndRound, g.State())
	a.Len(g.Hands(), 2)
	for _, hand := range g.Hands() {
		a.True(hand.Blackjack)
		a.Equal(OutcomeBlackjack, hand.Outcome)
		a.Equal(25, hand.Payout, "a two-card 21 after a split pays 3:2")
	}

	a.Equal(130, g.Cash())
	a.Equal(2, g.Record().Blackjacks)
	a.Equal(50, g.Record().TotalWinnings)
	assertConserved(t, g)
}

func TestGame_split_shoeExhausted(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "8s,8h,10c,7d,3s")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)
	containers := len(g.economy.Containers())

	err := g.Split()
	a.ErrorIs(err, deck.ErrShoeExhausted)
	a.Len(g.Hands(), 1)
	a.Equal("8s,8h", g.Hands()[0].Cards.String())
	a.Equal(90, g.Cash())
	a.Equal(1, g.shoe.Remaining())
	a.Equal(0, g.shoe.DiscardCount())
	a.Len(g.economy.Containers(), containers)
	assertConserved(t, g)
}

func TestGame_split_limit(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "8s,8h,10c,7d,8c,5s,9s,9h", func(o *Options) {
		o.MaxSplits = 1
	})
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	a.NoError(g.Split())
	tick(t, g)
	a.Equal("8s,8c", g.CurrentHand().Cards.String())
	a.NotContains(g.Actions(), ActionSplit)

	err := g.Split()
	a.True(errors.Is(err, ErrIllegalAction))

	var illegal IllegalActionError
	a.True(errors.As(err, &illegal))
	a.Equal(ActionSplit, illegal.Action)
	a.Equal(StatePlayerTurn, illegal.State)
	a.Len(g.Hands(), 2)
}

func TestGame_split_differentRanks(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "13s,12h,10c,7d")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	a.NotContains(g.Actions(), ActionSplit)
	err := g.Split()
	a.EqualError(err, "cannot split during player-turn: split needs a pair")
	a.Len(g.Hands(), 1)
}

func TestGame_split_insufficientFunds(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 15, "13s,13h,10c,7d,2s,3s")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	err := g.Split()
	a.True(errors.Is(err, chips.ErrInsufficientFunds))
	a.Len(g.Hands(), 1)
	a.Equal(5, g.Cash())
	a.Equal(2, g.shoe.Remaining())
}

func TestGame_multipleSeats(t *testing.T) {
	a := assert.New(t)

	// seat 0 is empty and is dropped, seats 1 and 2 play in order
	g := newTestGame(t, 100, "10s,9h,10c,7h,10d,8d", func(o *Options) {
		o.Seats = 3
	})
	a.NoError(g.Bet(1, 10))
	a.NoError(g.Bet(2, 20))
	a.NoError(g.Deal())
	a.Len(g.Hands(), 2)
	a.Equal(1, g.Hands()[0].Seat)
	a.Equal(2, g.Hands()[1].Seat)

	tick(t, g)
	a.NoError(g.Stand())
	tick(t, g)
	a.NoError(g.Stand())
	tick(t, g)

	a.Equal(OutcomeWin, g.Hands()[0].Outcome)
	a.Equal(OutcomeLoss, g.Hands()[1].Outcome)
	a.Equal(90, g.Cash())
	a.Equal([]int{0, 10, 20}, g.lastBets)
	assertConserved(t, g)
}

func TestGame_betting(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 40, "", func(o *Options) {
		o.MinBet = 5
		o.MaxBet = 50
	})

	a.Equal(ErrNoBet, g.Deal())

	err := g.Bet(0, 45)
	a.True(errors.Is(err, chips.ErrInsufficientFunds))
	a.Equal(40, g.Cash())

	err = g.Bet(0, 60)
	a.True(errors.Is(err, ErrIllegalAction))
	a.EqualError(err, "cannot bet during betting: the table maximum is $50")

	err = g.Bet(1, 10)
	a.True(errors.Is(err, ErrHandNotFound))

	a.NoError(g.Bet(0, 3))
	err = g.Deal()
	a.EqualError(err, "cannot deal during betting: seat 1 is below the table minimum of $5")

	a.NoError(g.ClearBets())
	a.Equal(40, g.Cash())
	a.Equal([]Action{ActionBet, ActionExit}, g.Actions())

	a.NoError(g.Bet(0, 10))
	a.Equal([]Action{ActionBet, ActionClearBets, ActionDeal, ActionExit}, g.Actions())

	err = g.Hit()
	a.True(errors.Is(err, ErrIllegalAction))
	a.EqualError(err, "cannot hit during betting")
	assertConserved(t, g)
}

func TestGame_repeatAndChangeBet(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "10s,8h,10c,6d,3h")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)
	a.NoError(g.Stand())
	tick(t, g)

	a.Equal(StateEndRound, g.State())
	a.Equal([]Action{ActionRepeatBet, ActionChangeBet, ActionExit}, g.Actions())

	a.NoError(g.RepeatBet())
	a.Equal(StateBetting, g.State())
	a.Equal(2, g.Round())
	a.Len(g.Hands(), 1)
	a.Equal(10, g.Hands()[0].BetValue())
	a.Equal(80, g.Cash())
	a.Equal(5, g.shoe.DiscardCount(), "cards from the last round were discarded")

	a.NoError(g.ClearBets())
	a.Equal([]Action{ActionBet, ActionRepeatBet, ActionExit}, g.Actions())
	a.NoError(g.RepeatBet())
	a.Equal(10, g.totalBets())
	a.True(errors.Is(g.RepeatBet(), ErrIllegalAction))
	assertConserved(t, g)
}

func TestGame_changeBet(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "10s,8h,10c,6d,3h")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)
	a.NoError(g.Stand())
	tick(t, g)

	a.NoError(g.ChangeBet())
	a.Equal(StateBetting, g.State())
	a.Equal(0, g.totalBets())
	a.Equal(90, g.Cash())
	a.Len(g.economy.Containers(), 4, "free, rack, held and one empty seat")
}

func TestGame_repeatBet_insufficientFunds(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 10, "10s,8h,10c,6d,3h")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)
	a.NoError(g.Stand())
	tick(t, g)

	a.Equal([]Action{ActionChangeBet, ActionExit}, g.Actions())
	err := g.RepeatBet()
	a.True(errors.Is(err, chips.ErrInsufficientFunds))
	a.Equal(StateEndRound, g.State(), "a failed repeat leaves the table alone")
}

func TestGame_repeatBet_withHeldChips(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 20, "10s,8h,10c,6d,3h")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)
	a.NoError(g.Stand())
	tick(t, g)
	a.NoError(g.ChangeBet())

	// the last $10 is in the player's hand, not on the free pile
	a.NoError(g.pickUp(10, 0))
	a.Equal(10, g.held.Total())
	a.Equal(0, g.Cash())
	a.Contains(g.Actions(), ActionRepeatBet)

	a.NoError(g.RepeatBet())
	a.True(g.held.IsEmpty())
	a.Equal(10, g.Hands()[0].BetValue())
	a.Equal(0, g.Cash())
	assertConserved(t, g)
}

func TestGame_animationBarriers(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "10s,8h,10c,6d,3h", func(o *Options) {
		o.DealInterval = 100 * time.Millisecond
		o.CardTravel = 50 * time.Millisecond
		o.DealerDelay = 200 * time.Millisecond
		o.ChipTravel = 100 * time.Millisecond
	})

	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())

	changed, err := g.Tick(200 * time.Millisecond)
	a.NoError(err)
	a.True(changed)
	a.Equal(StateDealing, g.State())
	a.Equal(2, len(g.Hands()[0].Cards))
	a.Equal(1, len(g.dealer.Cards))
	a.Equal([]Action{ActionExit}, g.Actions(), "nothing but exit while cards move")
	a.True(errors.Is(g.Hit(), ErrIllegalAction))

	_, err = g.Tick(200 * time.Millisecond)
	a.NoError(err)
	a.Equal(StatePlayerTurn, g.State())

	a.NoError(g.Stand())
	_, _ = g.Tick(0)
	a.Equal(StateDealerTurn, g.State(), "the hole card is still flipping")

	_, _ = g.Tick(50 * time.Millisecond)
	a.Equal(StateDealerTurn, g.State())
	a.Equal(2, len(g.dealer.Cards), "the dealer waits before drawing")

	_, _ = g.Tick(200 * time.Millisecond)
	a.Equal(3, len(g.dealer.Cards))
	a.Equal(StateDealerTurn, g.State())

	_, _ = g.Tick(50 * time.Millisecond)
	a.Equal(StateShowResults, g.State())
	a.Equal(90, g.Cash(), "chips move as soon as the round settles")

	_, _ = g.Tick(100 * time.Millisecond)
	a.Equal(StateEndRound, g.State())

	changed, _ = g.Tick(time.Second)
	a.False(changed)
}

func TestGame_shoeExhaustedWhileDealing(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "10s,8h,10c")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	a.Equal(StateEndRound, g.State())
	a.Equal(100, g.Cash(), "bets are returned")
	a.Empty(g.Results())
	a.Equal(0, g.Record().HandsPlayed)
	assertConserved(t, g)
}

func TestGame_shoeExhaustedOnHit(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "10s,5h,10c,7d")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	a.Equal(deck.ErrShoeExhausted, g.Hit())
	a.Equal(2, len(g.Hands()[0].Cards))

	a.NoError(g.Stand())
	tick(t, g)
	a.Equal(OutcomeLoss, g.Hands()[0].Outcome)
}

func TestGame_exitWhileBetting(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "")
	a.NoError(g.Bet(0, 10))

	details, over := g.GetEndOfGameDetails()
	a.Nil(details)
	a.False(over)

	a.NoError(g.Exit())
	a.True(g.IsOver())
	a.Equal(100, g.Record().Cash, "bets are refunded")
	a.Equal(100, g.economy.CashedOut())
	a.Nil(g.Actions())
	a.Equal(ErrGameIsOver, g.Bet(0, 10))

	details, over = g.GetEndOfGameDetails()
	a.True(over)
	a.Equal(map[int64]int{1: 0}, details.BalanceAdjustments)
	assertConserved(t, g)
}

func TestGame_exitWithBetsInPlay(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "10s,8h,10c,6d,3h")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	a.NoError(g.Exit())
	a.False(g.IsOver())
	a.True(g.PendingExit())
	a.Equal([]Action{ActionConfirmExit, ActionCancelExit}, g.Actions())
	a.Equal(ErrExitPending, g.Hit())

	changed, err := g.Tick(time.Second)
	a.NoError(err)
	a.False(changed, "the table is paused")

	a.NoError(g.CancelExit())
	a.False(g.PendingExit())
	a.NoError(g.Stand())

	// leave again with the bet still on the table
	a.NoError(g.Exit())
	a.NoError(g.ConfirmExit())
	a.True(g.IsOver())
	a.Equal(90, g.Record().Cash)

	details, over := g.GetEndOfGameDetails()
	a.True(over)
	a.Equal(map[int64]int{1: -10}, details.BalanceAdjustments)
	a.Equal(ErrGameIsOver, g.ConfirmExit())
	assertConserved(t, g)
}

func TestGame_confirmWithoutExit(t *testing.T) {
	g := newTestGame(t, 100, "")
	err := g.ConfirmExit()
	assert.True(t, errors.Is(err, ErrIllegalAction))
	assert.False(t, g.IsOver())
}

func TestGame_houseRefill(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 1000, "1s,13h,10c,7d", func(o *Options) {
		o.HouseBankroll = 10
	})
	a.NoError(g.Bet(0, 100))
	a.NoError(g.Deal())
	tick(t, g)

	a.Equal(OutcomeBlackjack, g.Hands()[0].Outcome)
	a.Equal(1150, g.Cash())
	a.Equal(0, g.rack.Total())
	a.Equal(1000+10+140, g.economy.CashedIn())
	assertConserved(t, g)
}

func TestGame_Action(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "10s,8h,10c,6d,3h")

	_, _, err := g.Action(2, &playable.PayloadIn{Subject: "bet"})
	a.EqualError(err, "player 2 is not seated at this table")

	_, _, err = g.Action(1, &playable.PayloadIn{Subject: "dance"})
	a.EqualError(err, `unknown action: "dance"`)

	_, _, err = g.Action(1, &playable.PayloadIn{Subject: "bet"})
	a.EqualError(err, "cannot bet during betting: missing amount")

	resp, update, err := g.Action(1, &playable.PayloadIn{
		Subject:        "bet",
		AdditionalData: playable.AdditionalData{"amount": float64(10), "seat": float64(0)},
		Context:        "abc",
	})
	a.NoError(err)
	a.True(update)
	a.Equal(playable.OK("abc"), resp)
	a.Equal(90, g.Cash())

	_, _, err = g.Action(1, &playable.PayloadIn{Subject: "deal"})
	a.NoError(err)
	tick(t, g)

	_, _, err = g.Action(1, &playable.PayloadIn{Subject: "Stand"})
	a.NoError(err)
	tick(t, g)
	a.Equal(StateEndRound, g.State())
}

func TestGame_logChan(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 100, "1s,13h,10c,7d")
	a.NoError(g.Bet(0, 10))
	a.NoError(g.Deal())
	tick(t, g)

	var messages []string
	for len(g.LogChan()) > 0 {
		msgs := <-g.LogChan()
		for _, msg := range msgs {
			a.Equal(g.roundID, msg.RoundID)
			messages = append(messages, msg.Message)
		}
	}

	a.Equal([]string{
		"round 1: dealing 1 hand(s) for $10",
		"dealer reveals 10c,7d",
		"hand 1 blackjack: bet $10, paid $25",
	}, messages)
}

// TestGame_conservation plays random legal actions and checks the ledger after every step
func TestGame_conservation(t *testing.T) {
	a := assert.New(t)

	opts := instantOptions()
	opts.Seats = 3
	opts.InfiniteShoe = true
	opts.ReuseDiscards = true
	opts.HouseBankroll = 200
	opts.RNG = rng.NewSeeded(42)

	g, err := NewGame(logrus.StandardLogger(), stats.NewRecord(1, 500), opts)
	a.NoError(err)

	choices := rng.NewSeeded(7)
	for i := 0; i < 3000 && !g.IsOver(); i++ {
		_, err := g.Tick(0)
		if !a.NoError(err) {
			return
		}

		actions := g.Actions()
		if len(actions) == 0 {
			continue
		}

		action := actions[choices.Intn(len(actions))]
		if action == ActionExit && i < 2900 {
			continue
		}

		if action == ActionBet {
			_ = g.Bet(choices.Intn(opts.Seats), 1+choices.Intn(25))
		} else {
			_ = g.Do(action)
		}

		if !a.NoError(g.economy.Audit()) {
			return
		}

		held := 0
		for _, c := range g.economy.Containers() {
			held += c.Total()
		}
		a.Equal(g.economy.CashedIn()-g.economy.CashedOut(), held)
	}

	r := g.Record()
	a.Equal(r.HandsPlayed, r.HandsWon+r.HandsLost+r.Pushes)
}

package blackjack

import (
	"errors"
	"fmt"
	"time"

	"casinotable/pkg/chips"
	"casinotable/pkg/deck"
	"casinotable/pkg/playable"
	"casinotable/pkg/scheduler"
	"casinotable/pkg/stats"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// animation groups the state machine waits on
const (
	groupCards  = "cards"
	groupDealer = "dealer"
	groupChips  = "chips"
)

// maxStepsPerTick bounds how many transitions a single tick may chain
const maxStepsPerTick = 64

// Animator schedules deferred callbacks and reports what is still moving
type Animator interface {
	After(group string, delay time.Duration, fn func()) scheduler.Handle
	IsPending(group string) bool
	Busy() bool
	Advance(elapsed time.Duration) int
	Clear()
}

// Game is a single player's seat at a blackjack table
type Game struct {
	playerID int64
	options  Options
	logger   logrus.FieldLogger
	logChan  chan []*playable.LogMessage

	round   int
	roundID string
	state   State

	shoe   *deck.Shoe
	policy DealerPolicy

	economy *chips.Economy
	free    *chips.Container
	rack    *chips.Container
	held    *chips.Container

	hands        []*Hand
	dealer       *Hand
	activeHand   int
	selectedSeat int
	lastBets     []int

	pendingExit  bool
	exited       bool
	startingCash int

	animator Animator
	events   *EventBus
	layout   *Layout
	pointer  Point

	record  *stats.Record
	results []*RoundResult
}

// NewGame seats the player at a new table
// The player's cash is converted to chips on the free pile.
func NewGame(logger logrus.FieldLogger, record *stats.Record, options Options) (*Game, error) {
	if record == nil {
		return nil, errors.New("a stats record is required")
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	economy := chips.NewEconomy(options.Denominations)
	g := &Game{
		playerID:     record.PlayerID,
		options:      options,
		logger:       logger.WithField("playerID", record.PlayerID),
		logChan:      make(chan []*playable.LogMessage, 256),
		shoe:         deck.NewShoe(options.Decks, deck.Policy{ReuseDiscards: options.ReuseDiscards, Infinite: options.InfiniteShoe}, options.RNG),
		policy:       DealerPolicy{StandsOn: options.DealerStandsOn},
		economy:      economy,
		free:         economy.NewContainer(chips.KindFree, "player"),
		rack:         economy.NewContainer(chips.KindRack, "house"),
		held:         economy.NewContainer(chips.KindHeld, "pointer"),
		startingCash: record.Cash,
		animator:     scheduler.New(),
		events:       NewEventBus(),
		layout:       DefaultLayout(options.Seats, options.Denominations),
		record:       record,
	}

	if err := economy.CashIn(g.free, record.Cash); err != nil {
		return nil, err
	}

	if err := economy.CashIn(g.rack, options.HouseBankroll); err != nil {
		return nil, err
	}

	g.events.Subscribe(g.onEvent)
	g.newRound()

	return g, nil
}

// NameFromOptions returns the name for the options
func NameFromOptions(opts Options) string {
	if opts.Decks == 1 {
		return "Blackjack (Single Deck)"
	}

	return fmt.Sprintf("Blackjack (%d Decks)", opts.Decks)
}

// Name returns the name of the game
func (g *Game) Name() string {
	return NameFromOptions(g.options)
}

// Key returns a unique key
func (g *Game) Key() string {
	return "blackjack"
}

// Interval is how long we should wait between ticks
func (g *Game) Interval() time.Duration {
	return g.options.interval()
}

// LogChan should return a channel that a game will send log messages to
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// State returns the current state of the round
func (g *Game) State() State {
	return g.state
}

// Round returns the round number, starting at 1
func (g *Game) Round() int {
	return g.round
}

// Cash returns the value of the player's free pile
func (g *Game) Cash() int {
	return g.free.Total()
}

// Record returns the player's statistics
func (g *Game) Record() *stats.Record {
	return g.record
}

// Economy returns the chip ledger for the table
func (g *Game) Economy() *chips.Economy {
	return g.economy
}

// Events returns the table's event bus
func (g *Game) Events() *EventBus {
	return g.events
}

// Layout returns the widgets on the table
func (g *Game) Layout() *Layout {
	return g.layout
}

// Results returns the log of settled rounds
func (g *Game) Results() []*RoundResult {
	return g.results
}

// Hands returns the player's hands in play order
func (g *Game) Hands() []*Hand {
	return g.hands
}

// CurrentHand returns the hand being played, or nil outside of the player's turn
func (g *Game) CurrentHand() *Hand {
	if g.state != StatePlayerTurn || g.activeHand >= len(g.hands) {
		return nil
	}

	return g.hands[g.activeHand]
}

// DealerUpCard returns the dealer's first face-up card
func (g *Game) DealerUpCard() *deck.Card {
	for _, card := range g.dealer.Cards {
		if card.FaceUp {
			return card
		}
	}

	return nil
}

// IsOver returns true once the player has left the table
func (g *Game) IsOver() bool {
	return g.exited
}

// PendingExit returns true while an exit awaits confirmation
func (g *Game) PendingExit() bool {
	return g.pendingExit
}

// Tick advances animations and then the state machine
// Transitions chain within one tick as long as nothing is left moving.
func (g *Game) Tick(elapsed time.Duration) (bool, error) {
	if g.exited || g.pendingExit {
		return false, nil
	}

	changed := g.animator.Advance(elapsed) > 0
	for i := 0; i < maxStepsPerTick; i++ {
		if !g.step() {
			break
		}

		changed = true
		g.animator.Advance(0)
	}

	if changed {
		if err := g.economy.Audit(); err != nil {
			return true, err
		}
	}

	return changed, nil
}

// step performs at most one transition, returning true if anything changed
func (g *Game) step() bool {
	switch g.state {
	case StateDealing:
		if g.animator.IsPending(groupCards) {
			return false
		}

		g.activeHand = 0
		g.setState(StatePlayerTurn)
		return true

	case StatePlayerTurn:
		if g.animator.IsPending(groupCards) {
			return false
		}

		return g.stepPlayerTurn()

	case StateDealerTurn:
		if g.animator.IsPending(groupCards) || g.animator.IsPending(groupDealer) {
			return false
		}

		return g.stepDealerTurn()

	case StateShowResults:
		if g.animator.IsPending(groupChips) {
			return false
		}

		g.enterEndRound()
		return true
	}

	return false
}

func (g *Game) stepPlayerTurn() bool {
	if g.activeHand < len(g.hands) {
		hand := g.hands[g.activeHand]
		if !hand.Final && !hand.evaluate() {
			return false
		}
	}

	for i := g.activeHand + 1; i < len(g.hands); i++ {
		if !g.hands[i].Final {
			g.activeHand = i
			return true
		}
	}

	g.activeHand = len(g.hands)
	for _, card := range g.dealer.Cards {
		card.FaceUp = true
	}

	g.animator.After(groupCards, g.options.CardTravel, nil)
	g.sendLog(g.dealer.Cards, "dealer reveals %s", g.dealer.Cards)
	g.setState(StateDealerTurn)
	return true
}

func (g *Game) stepDealerTurn() bool {
	if g.allBusted() {
		g.settle()
		g.enterEndRound()
		return true
	}

	if !g.dealer.Final && g.policy.apply(g.dealer) == DealerHit {
		g.animator.After(groupDealer, g.options.DealerDelay, g.dealerDraw)
		return true
	}

	g.setState(StateShowResults)
	g.settle()
	return true
}

func (g *Game) dealerDraw() {
	card, err := g.shoe.Draw()
	if err != nil {
		// the dealer stands on whatever it holds
		g.logger.WithError(err).Warn("shoe exhausted during dealer turn")
		g.dealer.Final = true
		return
	}

	card.FaceUp = true
	g.dealer.Cards.AddCard(card)
	g.animator.After(groupCards, g.options.CardTravel, nil)
	g.sendLog([]*deck.Card{card}, "dealer draws %s", card)
}

func (g *Game) allBusted() bool {
	for _, hand := range g.hands {
		if !hand.Busted {
			return false
		}
	}

	return true
}

func (g *Game) setState(state State) {
	g.logger.WithFields(logrus.Fields{
		"round": g.round,
		"from":  g.state,
		"to":    state,
	}).Debug("state transition")
	g.state = state
}

// newRound sets an empty betting spot for every seat
func (g *Game) newRound() {
	g.round++
	g.roundID = uuid.New().String()
	g.hands = make([]*Hand, g.options.Seats)
	for seat := range g.hands {
		g.hands[seat] = newHand(seat, g.economy.NewContainer(chips.KindBet, fmt.Sprintf("seat-%d", seat)))
	}

	g.dealer = newHand(-1, nil)
	g.activeHand = 0
	if g.selectedSeat >= g.options.Seats {
		g.selectedSeat = 0
	}

	g.setState(StateBetting)
}

// clearTable discards every card and bet container and starts a new round
func (g *Game) clearTable() {
	chips.MoveAll(g.held, g.free)
	for _, hand := range g.hands {
		g.shoe.Discard(hand.Cards...)
		chips.MoveAll(hand.Bet, g.free)
		if err := g.economy.Unregister(hand.Bet); err != nil {
			g.logger.WithError(err).Error("could not unregister bet container")
		}
	}

	g.shoe.Discard(g.dealer.Cards...)
	g.newRound()
}

// deal schedules two cards to each hand and then two to the dealer, the first face-down
func (g *Game) deal() {
	type target struct {
		hand   *Hand
		faceUp bool
	}

	targets := make([]target, 0, len(g.hands)*2+2)
	for _, hand := range g.hands {
		targets = append(targets, target{hand, true}, target{hand, true})
	}

	targets = append(targets, target{g.dealer, false}, target{g.dealer, true})

	var delay time.Duration
	for _, t := range targets {
		t := t
		g.animator.After(groupCards, delay, func() {
			g.dealCard(t.hand, t.faceUp)
		})
		delay += g.options.DealInterval
	}
}

func (g *Game) dealCard(hand *Hand, faceUp bool) {
	card, err := g.shoe.Draw()
	if err != nil {
		g.voidRound(err)
		return
	}

	card.FaceUp = faceUp
	hand.Cards.AddCard(card)
	g.animator.After(groupCards, g.options.CardTravel, nil)
}

// voidRound returns every bet when the shoe runs dry mid-deal
func (g *Game) voidRound(err error) {
	g.logger.WithError(err).WithField("round", g.round).Warn("shoe exhausted while dealing, round voided")
	g.animator.Clear()
	for _, hand := range g.hands {
		chips.MoveAll(hand.Bet, g.free)
	}

	g.sendLog(nil, "the shoe ran out of cards, all bets were returned")
	g.enterEndRound()
}

func (g *Game) enterEndRound() {
	g.record.Cash = g.free.Total()
	g.setState(StateEndRound)
}

// settle resolves every hand, moves the chips and updates statistics
func (g *Game) settle() {
	dealerScore, _ := g.dealer.Score()
	result := &RoundResult{
		RoundID:      g.roundID,
		Round:        g.round,
		Dealer:       g.dealer.Cards.String(),
		DealerScore:  dealerScore,
		DealerBusted: g.dealer.Busted,
		Hands:        make([]*HandResult, 0, len(g.hands)),
	}

	for i, hand := range g.hands {
		outcome := Resolve(hand.Cards, g.dealer.Cards)
		bet := hand.BetValue()
		payout := Payout(bet, outcome)
		hand.setOutcome(outcome, payout)

		chips.MoveAll(hand.Bet, g.rack)
		if payout > 0 {
			g.payFromRack(payout)
		}

		g.recordHand(outcome, bet, payout)
		g.animator.After(groupChips, g.options.ChipTravel, nil)

		g.logger.WithFields(logrus.Fields{
			"round":   g.round,
			"hand":    i,
			"outcome": outcome,
			"bet":     bet,
			"payout":  payout,
		}).Info("hand settled")
		g.sendLog(hand.Cards, "hand %d %s: bet $%d, paid $%d", i+1, outcome, bet, payout)

		result.Hands = append(result.Hands, &HandResult{
			Seat:    hand.Seat,
			Cards:   hand.Cards.String(),
			Bet:     bet,
			Outcome: outcome,
			Payout:  payout,
		})
	}

	g.results = append(g.results, result)
}

// payFromRack moves a payout from the house rack to the free pile
// The house buys in again when the rack can't cover it.
func (g *Game) payFromRack(amount int) {
	if short := amount - g.rack.Total(); short > 0 {
		refill := g.options.HouseBankroll
		if refill < short {
			refill = short
		}

		g.logger.WithFields(logrus.Fields{
			"rack":   g.rack.Total(),
			"payout": amount,
			"refill": refill,
		}).Warn("house rack refilled")
		if err := g.economy.CashIn(g.rack, refill); err != nil {
			g.logger.WithError(err).Error("could not refill house rack")
		}
	}

	if err := chips.Transfer(g.rack, g.free, amount); err != nil {
		g.logger.WithError(err).Error("could not pay out from the rack")
	}
}

func (g *Game) recordHand(outcome Outcome, bet, payout int) {
	r := g.record
	r.HandsPlayed++
	r.TotalBets += bet
	r.TotalWinnings += payout

	switch outcome {
	case OutcomeBlackjack:
		r.HandsWon++
		r.Blackjacks++
	case OutcomeWin:
		r.HandsWon++
	case OutcomePush:
		r.Pushes++
	case OutcomeLoss:
		r.HandsLost++
	case OutcomeBust:
		r.HandsLost++
		r.Busts++
	}
}

func (g *Game) totalBets() int {
	total := 0
	for _, hand := range g.hands {
		total += hand.BetValue()
	}

	return total
}

func (g *Game) sendLog(cards []*deck.Card, format string, a ...interface{}) {
	msg := playable.SimpleLogMessage(g.playerID, format, a...)
	msg.RoundID = g.roundID
	if len(cards) > 0 {
		msg.Cards = make([]*deck.Card, len(cards))
		for i, card := range cards {
			c := *card
			msg.Cards[i] = &c
		}
	}

	select {
	case g.logChan <- []*playable.LogMessage{msg}:
	default:
		g.logger.Debug("log channel full, dropping table log")
	}
}

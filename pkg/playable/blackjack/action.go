package blackjack

import (
	"fmt"

	"casinotable/pkg/chips"
	"casinotable/pkg/deck"
	"casinotable/pkg/playable"
	"github.com/sirupsen/logrus"
)

var stateActions = map[State][]Action{
	StateBetting:    {ActionBet, ActionClearBets, ActionDeal, ActionRepeatBet},
	StatePlayerTurn: {ActionHit, ActionStand, ActionDouble, ActionSplit},
	StateEndRound:   {ActionRepeatBet, ActionChangeBet},
}

// Action performs with a message
// If playerResponse is not null, that's the response sent directly to the client
// If updateState is true, it will trigger a state update for all connected clients
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	if playerID != g.playerID {
		return nil, false, fmt.Errorf("player %d is not seated at this table", playerID)
	}

	action, err := ActionFromString(message.Subject)
	if err != nil {
		return nil, false, err
	}

	if action == ActionBet {
		amount, ok := message.AdditionalData.GetInt("amount")
		if !ok {
			return nil, false, IllegalActionError{Action: action, State: g.state, Reason: "missing amount"}
		}

		seat, ok := message.AdditionalData.GetInt("seat")
		if !ok {
			seat = g.selectedSeat
		}

		err = g.Bet(seat, amount)
	} else {
		err = g.Do(action)
	}

	if err != nil {
		return nil, false, err
	}

	return playable.OK(message.Context), true, nil
}

// Do performs an action that takes no arguments
// ActionBet places the table minimum on the selected seat.
func (g *Game) Do(action Action) error {
	switch action {
	case ActionBet:
		amount := g.options.MinBet
		if amount < 1 {
			amount = 1
		}

		return g.Bet(g.selectedSeat, amount)
	case ActionClearBets:
		return g.ClearBets()
	case ActionDeal:
		return g.Deal()
	case ActionHit:
		return g.Hit()
	case ActionStand:
		return g.Stand()
	case ActionDouble:
		return g.Double()
	case ActionSplit:
		return g.Split()
	case ActionRepeatBet:
		return g.RepeatBet()
	case ActionChangeBet:
		return g.ChangeBet()
	case ActionExit:
		return g.Exit()
	case ActionConfirmExit:
		return g.ConfirmExit()
	case ActionCancelExit:
		return g.CancelExit()
	}

	return fmt.Errorf("unknown action: %d", action)
}

// Actions returns the actions available right now
// Nothing but exiting is offered while cards or chips are still moving.
func (g *Game) Actions() []Action {
	if g.exited {
		return nil
	}

	if g.pendingExit {
		return []Action{ActionConfirmExit, ActionCancelExit}
	}

	if g.animator.Busy() {
		return []Action{ActionExit}
	}

	actions := make([]Action, 0, 5)
	switch g.state {
	case StateBetting:
		if !g.free.IsEmpty() {
			actions = append(actions, ActionBet)
		}

		if g.totalBets() > 0 {
			actions = append(actions, ActionClearBets, ActionDeal)
		} else if g.canRepeat() {
			actions = append(actions, ActionRepeatBet)
		}
	case StatePlayerTurn:
		hand := g.CurrentHand()
		if hand == nil || hand.Final {
			break
		}

		actions = append(actions, ActionHit, ActionStand)
		if hand.canDouble() && g.free.Total() >= hand.BetValue() {
			actions = append(actions, ActionDouble)
		}

		if hand.canSplit(g.options.MaxSplits) && g.free.Total() >= hand.BetValue() {
			actions = append(actions, ActionSplit)
		}
	case StateEndRound:
		if g.canRepeat() {
			actions = append(actions, ActionRepeatBet)
		}

		actions = append(actions, ActionChangeBet)
	}

	return append(actions, ActionExit)
}

// checkAction returns an error if the state does not allow the action
func (g *Game) checkAction(action Action) error {
	if g.exited {
		return ErrGameIsOver
	}

	switch action {
	case ActionExit:
		return nil
	case ActionConfirmExit, ActionCancelExit:
		if !g.pendingExit {
			return IllegalActionError{Action: action, State: g.state, Reason: "no exit is pending"}
		}

		return nil
	}

	if g.pendingExit {
		return ErrExitPending
	}

	if g.animator.Busy() {
		return IllegalActionError{Action: action, State: g.state, Reason: "the table is still moving"}
	}

	for _, allowed := range stateActions[g.state] {
		if allowed == action {
			return nil
		}
	}

	return IllegalActionError{Action: action, State: g.state}
}

// SelectSeat makes a seat the target of keyboard chip grabs
func (g *Game) SelectSeat(seat int) error {
	if seat < 0 || seat >= g.options.Seats {
		return fmt.Errorf("seat %d: %w", seat, ErrHandNotFound)
	}

	g.selectedSeat = seat
	return nil
}

func (g *Game) seatHand(seat int) (*Hand, error) {
	if g.state != StateBetting {
		return nil, IllegalActionError{Action: ActionBet, State: g.state}
	}

	if seat < 0 || seat >= len(g.hands) {
		return nil, fmt.Errorf("seat %d: %w", seat, ErrHandNotFound)
	}

	return g.hands[seat], nil
}

func (g *Game) checkMaxBet(hand *Hand, amount int) error {
	if g.options.MaxBet > 0 && hand.BetValue()+amount > g.options.MaxBet {
		return IllegalActionError{Action: ActionBet, State: g.state, Reason: fmt.Sprintf("the table maximum is $%d", g.options.MaxBet)}
	}

	return nil
}

// Bet moves chips worth amount from the free pile onto a seat's betting spot
func (g *Game) Bet(seat, amount int) error {
	if err := g.checkAction(ActionBet); err != nil {
		return err
	}

	if amount <= 0 {
		return IllegalActionError{Action: ActionBet, State: g.state, Reason: "bet must be positive"}
	}

	hand, err := g.seatHand(seat)
	if err != nil {
		return err
	}

	if err := g.checkMaxBet(hand, amount); err != nil {
		return err
	}

	if err := chips.Transfer(g.free, hand.Bet, amount); err != nil {
		return err
	}

	g.selectedSeat = seat
	return nil
}

// ClearBets returns every bet on the table to the free pile
func (g *Game) ClearBets() error {
	if err := g.checkAction(ActionClearBets); err != nil {
		return err
	}

	chips.MoveAll(g.held, g.free)
	for _, hand := range g.hands {
		chips.MoveAll(hand.Bet, g.free)
	}

	return nil
}

// Deal starts the round
func (g *Game) Deal() error {
	if err := g.checkAction(ActionDeal); err != nil {
		return err
	}

	if g.totalBets() == 0 {
		return ErrNoBet
	}

	for _, hand := range g.hands {
		if bet := hand.BetValue(); bet > 0 && bet < g.options.MinBet {
			return IllegalActionError{Action: ActionDeal, State: g.state, Reason: fmt.Sprintf("seat %d is below the table minimum of $%d", hand.Seat+1, g.options.MinBet)}
		}
	}

	chips.MoveAll(g.held, g.free)

	g.lastBets = make([]int, len(g.hands))
	hands := make([]*Hand, 0, len(g.hands))
	for i, hand := range g.hands {
		g.lastBets[i] = hand.BetValue()
		if hand.BetValue() == 0 {
			if err := g.economy.Unregister(hand.Bet); err != nil {
				return err
			}

			continue
		}

		hands = append(hands, hand)
	}

	g.hands = hands
	g.setState(StateDealing)
	g.sendLog(nil, "round %d: dealing %d hand(s) for $%d", g.round, len(hands), g.totalBets())
	g.deal()
	return nil
}

// actionHand returns the hand a player-turn action applies to
func (g *Game) actionHand(action Action) (*Hand, error) {
	if err := g.checkAction(action); err != nil {
		return nil, err
	}

	hand := g.CurrentHand()
	if hand == nil {
		return nil, fmt.Errorf("no hand in play: %w", ErrHandNotFound)
	}

	if hand.Final {
		return nil, IllegalActionError{Action: action, State: g.state, Reason: "the hand is final"}
	}

	return hand, nil
}

func (g *Game) draw() (*deck.Card, error) {
	card, err := g.shoe.Draw()
	if err != nil {
		g.logger.WithError(err).Warn("could not draw a card")
		return nil, err
	}

	card.FaceUp = true
	return card, nil
}

// Hit draws a card into the current hand
func (g *Game) Hit() error {
	hand, err := g.actionHand(ActionHit)
	if err != nil {
		return err
	}

	card, err := g.draw()
	if err != nil {
		return err
	}

	hand.Cards.AddCard(card)
	g.animator.After(groupCards, g.options.CardTravel, nil)
	hand.evaluate()
	g.sendLog([]*deck.Card{card}, "hand %d hits: %s", g.activeHand+1, hand)
	return nil
}

// Stand ends play on the current hand
func (g *Game) Stand() error {
	hand, err := g.actionHand(ActionStand)
	if err != nil {
		return err
	}

	hand.Final = true
	g.sendLog(nil, "hand %d stands: %s", g.activeHand+1, hand)
	return nil
}

// Double doubles the bet on a two card hand, draws exactly one more card and stands
func (g *Game) Double() error {
	hand, err := g.actionHand(ActionDouble)
	if err != nil {
		return err
	}

	if !hand.canDouble() {
		return IllegalActionError{Action: ActionDouble, State: g.state, Reason: "double down needs exactly two cards"}
	}

	bet := hand.BetValue()
	if g.free.Total() < bet {
		return fmt.Errorf("cannot double $%d with $%d: %w", bet, g.free.Total(), chips.ErrInsufficientFunds)
	}

	card, err := g.draw()
	if err != nil {
		return err
	}

	if err := chips.Transfer(g.free, hand.Bet, bet); err != nil {
		g.shoe.Discard(card)
		return err
	}

	hand.Cards.AddCard(card)
	hand.Doubled = true
	g.animator.After(groupCards, g.options.CardTravel, nil)
	hand.evaluate()
	hand.Final = true
	g.sendLog([]*deck.Card{card}, "hand %d doubles down to $%d: %s", g.activeHand+1, hand.BetValue(), hand)
	return nil
}

// Split turns a pair into two hands, each with the original bet and one new card
// The new hand is played after every hand already on the table.
func (g *Game) Split() error {
	hand, err := g.actionHand(ActionSplit)
	if err != nil {
		return err
	}

	if !IsPair(hand.Cards) {
		return IllegalActionError{Action: ActionSplit, State: g.state, Reason: "split needs a pair"}
	}

	if hand.Splits >= g.options.MaxSplits {
		return IllegalActionError{Action: ActionSplit, State: g.state, Reason: fmt.Sprintf("the hand was already split %d times", hand.Splits)}
	}

	bet := hand.BetValue()
	if g.free.Total() < bet {
		return fmt.Errorf("cannot split $%d with $%d: %w", bet, g.free.Total(), chips.ErrInsufficientFunds)
	}

	if !g.shoe.CanDraw(2) {
		return fmt.Errorf("cannot split with %d card(s) left: %w", g.shoe.Remaining(), deck.ErrShoeExhausted)
	}

	splitBet := g.economy.NewContainer(chips.KindBet, fmt.Sprintf("seat-%d-split-%d", hand.Seat, len(g.hands)))
	if err := chips.Transfer(g.free, splitBet, bet); err != nil {
		if unregisterErr := g.economy.Unregister(splitBet); unregisterErr != nil {
			g.logger.WithError(unregisterErr).Error("could not unregister the split bet")
		}

		return err
	}

	first, err := g.draw()
	if err != nil {
		g.refundSplit(splitBet)
		return err
	}

	second, err := g.draw()
	if err != nil {
		g.shoe.Discard(first)
		g.refundSplit(splitBet)
		return err
	}

	hand.Splits++
	split := newHand(hand.Seat, splitBet)
	split.Splits = hand.Splits
	split.Cards.AddCard(hand.Cards.RemoveLast())

	hand.Cards.AddCard(first)
	split.Cards.AddCard(second)
	g.hands = append(g.hands, split)

	g.animator.After(groupCards, g.options.CardTravel, nil)
	g.animator.After(groupCards, g.options.CardTravel, nil)
	hand.evaluate()
	g.sendLog([]*deck.Card{first, second}, "hand %d splits into %s and %s", g.activeHand+1, hand, split)
	return nil
}

// refundSplit returns a split bet that never got its cards
func (g *Game) refundSplit(splitBet *chips.Container) {
	chips.MoveAll(splitBet, g.free)
	if err := g.economy.Unregister(splitBet); err != nil {
		g.logger.WithError(err).Error("could not unregister the split bet")
	}
}

func (g *Game) canRepeat() bool {
	if len(g.lastBets) == 0 {
		return false
	}

	return g.lastBetTotal() <= g.available()
}

func (g *Game) lastBetTotal() int {
	total := 0
	for _, bet := range g.lastBets {
		total += bet
	}

	return total
}

// available is the cash the player can put down, including chips in hand
func (g *Game) available() int {
	return g.free.Total() + g.held.Total()
}

// RepeatBet starts a new round with the previous round's bets
func (g *Game) RepeatBet() error {
	if err := g.checkAction(ActionRepeatBet); err != nil {
		return err
	}

	if len(g.lastBets) == 0 {
		return IllegalActionError{Action: ActionRepeatBet, State: g.state, Reason: "there is no previous bet"}
	}

	if g.state == StateBetting && g.totalBets() > 0 {
		return IllegalActionError{Action: ActionRepeatBet, State: g.state, Reason: "clear the table first"}
	}

	if total := g.lastBetTotal(); total > g.available() {
		return fmt.Errorf("cannot repeat a $%d bet with $%d: %w", total, g.available(), chips.ErrInsufficientFunds)
	}

	if g.state == StateEndRound {
		g.clearTable()
	}

	chips.MoveAll(g.held, g.free)

	for seat, bet := range g.lastBets {
		if bet == 0 || seat >= len(g.hands) {
			continue
		}

		if err := chips.Transfer(g.free, g.hands[seat].Bet, bet); err != nil {
			return err
		}
	}

	return nil
}

// ChangeBet starts a new round with an empty table
func (g *Game) ChangeBet() error {
	if err := g.checkAction(ActionChangeBet); err != nil {
		return err
	}

	g.clearTable()
	return nil
}

// Exit leaves the table
// Bets still in play need ConfirmExit before they are forfeited.
func (g *Game) Exit() error {
	if err := g.checkAction(ActionExit); err != nil {
		return err
	}

	if g.pendingExit {
		return nil
	}

	if g.state == StateBetting || g.totalBets() == 0 {
		chips.MoveAll(g.held, g.free)
		for _, hand := range g.hands {
			chips.MoveAll(hand.Bet, g.free)
		}

		g.finishExit()
		return nil
	}

	g.pendingExit = true
	g.logger.WithField("atRisk", g.totalBets()).Info("exit requested with bets in play")
	return nil
}

// ConfirmExit forfeits the bets in play and leaves the table
func (g *Game) ConfirmExit() error {
	if err := g.checkAction(ActionConfirmExit); err != nil {
		return err
	}

	forfeited := 0
	for _, hand := range g.hands {
		forfeited += chips.MoveAll(hand.Bet, g.rack)
	}

	g.sendLog(nil, "player left the table forfeiting $%d", forfeited)
	g.finishExit()
	return nil
}

// CancelExit resumes the round
func (g *Game) CancelExit() error {
	if err := g.checkAction(ActionCancelExit); err != nil {
		return err
	}

	g.pendingExit = false
	return nil
}

func (g *Game) finishExit() {
	chips.MoveAll(g.held, g.free)
	g.animator.Clear()

	cash := g.economy.CashOut(g.free)
	g.record.Cash = cash
	g.pendingExit = false
	g.exited = true

	g.logger.WithFields(logrus.Fields{
		"round": g.round,
		"cash":  cash,
	}).Info("player left the table")
	g.sendLog(nil, "player left the table with $%d", cash)
}

// GetEndOfGameDetails returns the details after a game is over
// If the game is still in progress, nil will be returned and the second param will be false
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	if !g.exited {
		return nil, false
	}

	return &playable.GameOverDetails{
		BalanceAdjustments: map[int64]int{
			g.playerID: g.record.Cash - g.startingCash,
		},
		Log: g.results,
	}, true
}

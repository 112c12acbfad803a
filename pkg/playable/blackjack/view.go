package blackjack

import (
	"fmt"

	"casinotable/pkg/chips"
	"casinotable/pkg/deck"
	"casinotable/pkg/playable"
	"casinotable/pkg/stats"
)

// hiddenCard is shown in place of a face-down card
const hiddenCard = "??"

// RoundResult is the log entry for a settled round
type RoundResult struct {
	RoundID      string        `json:"roundId"`
	Round        int           `json:"round"`
	Dealer       string        `json:"dealer"`
	DealerScore  int           `json:"dealerScore"`
	DealerBusted bool          `json:"dealerBusted"`
	Hands        []*HandResult `json:"hands"`
}

// HandResult is how one hand was settled
type HandResult struct {
	Seat    int     `json:"seat"`
	Cards   string  `json:"cards"`
	Bet     int     `json:"bet"`
	Outcome Outcome `json:"outcome"`
	Payout  int     `json:"payout"`
}

// HandState is a hand as the player sees it
type HandState struct {
	Seat      int      `json:"seat"`
	Cards     []string `json:"cards"`
	Score     int      `json:"score"`
	Soft      bool     `json:"soft"`
	Bet       int      `json:"bet"`
	Active    bool     `json:"active"`
	Final     bool     `json:"final"`
	Busted    bool     `json:"busted"`
	Blackjack bool     `json:"blackjack"`
	Doubled   bool     `json:"doubled"`
	Outcome   Outcome  `json:"outcome"`
	Payout    int      `json:"payout"`
}

// DealerState is the dealer's hand with the hole card hidden
type DealerState struct {
	Cards     []string `json:"cards"`
	Score     int      `json:"score"`
	Busted    bool     `json:"busted"`
	Blackjack bool     `json:"blackjack"`
}

// PlayerState is the table from the player's point of view
type PlayerState struct {
	Name        string        `json:"name"`
	RoundID     string        `json:"roundId"`
	Round       int           `json:"round"`
	State       State         `json:"state"`
	Actions     []Action      `json:"actions"`
	PendingExit bool          `json:"pendingExit"`
	GameOver    bool          `json:"gameOver"`
	Cash        int           `json:"cash"`
	FreePile    []chips.Stack `json:"freePile"`
	Held        int           `json:"held"`
	Seat        int           `json:"seat"`
	Hands       []*HandState  `json:"hands"`
	Dealer      *DealerState  `json:"dealer"`
	ShoeCards   int           `json:"shoeCards"`
	Stats       *stats.Record `json:"stats"`
}

// View returns the table from the player's point of view
func (g *Game) View() *PlayerState {
	hands := make([]*HandState, len(g.hands))
	for i, hand := range g.hands {
		score, _ := hand.Score()
		hands[i] = &HandState{
			Seat:      hand.Seat,
			Cards:     cardStrings(hand.Cards),
			Score:     score,
			Soft:      IsSoft(hand.Cards),
			Bet:       hand.BetValue(),
			Active:    g.state == StatePlayerTurn && i == g.activeHand,
			Final:     hand.Final,
			Busted:    hand.Busted,
			Blackjack: hand.Blackjack,
			Doubled:   hand.Doubled,
			Outcome:   hand.Outcome,
			Payout:    hand.Payout,
		}
	}

	dealerScore, _ := VisibleScore(g.dealer.Cards)
	dealer := &DealerState{
		Cards:  cardStrings(g.dealer.Cards),
		Score:  dealerScore,
		Busted: g.dealer.Busted,
		// a blackjack is only known once the hole card is up
		Blackjack: g.dealer.Blackjack,
	}

	return &PlayerState{
		Name:        g.Name(),
		RoundID:     g.roundID,
		Round:       g.round,
		State:       g.state,
		Actions:     g.Actions(),
		PendingExit: g.pendingExit,
		GameOver:    g.exited,
		Cash:        g.free.Total(),
		FreePile:    g.free.Stacks(),
		Held:        g.held.Total(),
		Seat:        g.selectedSeat,
		Hands:       hands,
		Dealer:      dealer,
		ShoeCards:   g.shoe.Remaining(),
		Stats:       g.record,
	}
}

// GetPlayerState returns the current state of the game for the player
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	if playerID != g.playerID {
		return nil, fmt.Errorf("player %d is not seated at this table", playerID)
	}

	return &playable.Response{
		Key:   "game",
		Value: g.Key(),
		Data:  g.View(),
	}, nil
}

func cardStrings(cards []*deck.Card) []string {
	s := make([]string, len(cards))
	for i, card := range cards {
		if card.FaceUp {
			s[i] = card.String()
		} else {
			s[i] = hiddenCard
		}
	}

	return s
}

// HandLogs flattens a settled round into hand history entries
func (r *RoundResult) HandLogs() []stats.HandLog {
	logs := make([]stats.HandLog, len(r.Hands))
	for i, hand := range r.Hands {
		logs[i] = stats.HandLog{
			RoundID:     r.RoundID,
			Seat:        hand.Seat,
			Cards:       hand.Cards,
			DealerCards: r.Dealer,
			Bet:         hand.Bet,
			Outcome:     hand.Outcome.String(),
			Payout:      hand.Payout,
		}
	}

	return logs
}

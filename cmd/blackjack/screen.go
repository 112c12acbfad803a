package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"casinotable/pkg/playable/blackjack"
	"casinotable/pkg/room"
)

const clearScreen = "\x1b[2J\x1b[H"

// keyHelp is shown under the table
const keyHelp = "1-5 chips  tab seat  space deal  h hit  s stand  d double  p split  r repeat  c change  u undo  q quit"

// screen draws the table as plain text
// Note: must only be used from the room's tick goroutine
type screen struct {
	out     io.Writer
	game    *blackjack.Game
	room    *room.Room
	lastErr error
}

func (s *screen) setError(err error) {
	s.lastErr = err
}

func (s *screen) draw() {
	view := s.game.View()

	var b bytes.Buffer
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "%s  round %d  [%s]  shoe %d\n\n", view.Name, view.Round, view.State, view.ShoeCards)

	fmt.Fprintf(&b, "Dealer: %s", strings.Join(view.Dealer.Cards, " "))
	if len(view.Dealer.Cards) > 0 {
		fmt.Fprintf(&b, "  (%d)", view.Dealer.Score)
	}
	b.WriteString("\n\n")

	for i, hand := range view.Hands {
		marker := "  "
		if hand.Active || (view.State == blackjack.StateBetting && hand.Seat == view.Seat) {
			marker = "> "
		}

		fmt.Fprintf(&b, "%sHand %d  bet $%-5d %s", marker, i+1, hand.Bet, strings.Join(hand.Cards, " "))
		if len(hand.Cards) > 0 {
			fmt.Fprintf(&b, "  (%d)", hand.Score)
		}

		if hand.Outcome != blackjack.OutcomePending {
			fmt.Fprintf(&b, "  %s, paid $%d", hand.Outcome, hand.Payout)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nCash: $%d  (won %d, lost %d, pushed %d)\n", view.Cash, view.Stats.HandsWon, view.Stats.HandsLost, view.Stats.Pushes)

	actions := make([]string, len(view.Actions))
	for i, action := range view.Actions {
		actions[i] = action.String()
	}
	fmt.Fprintf(&b, "Actions: %s\n", strings.Join(actions, ", "))

	if view.PendingExit {
		b.WriteString("Leave and forfeit the bets in play? (y/n)\n")
	}

	if s.lastErr != nil {
		fmt.Fprintf(&b, "! %s\n", s.lastErr)
		s.lastErr = nil
	}

	b.WriteString("\n")
	for _, msg := range s.room.LogMessages() {
		fmt.Fprintf(&b, "  %s\n", msg.Message)
	}

	b.WriteString("\n" + keyHelp + "\n")
	_, _ = s.out.Write(rawNewlines(b.Bytes()))
}

// rawWriter restores carriage returns that raw mode stops adding
type rawWriter struct {
	w io.Writer
}

func (r *rawWriter) Write(p []byte) (int, error) {
	if _, err := r.w.Write(rawNewlines(p)); err != nil {
		return 0, err
	}

	return len(p), nil
}

func rawNewlines(p []byte) []byte {
	return bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
}

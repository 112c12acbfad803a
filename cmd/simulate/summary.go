package main

import (
	"fmt"
	"io"
	"time"

	"casinotable/pkg/playable/blackjack"
	"casinotable/pkg/stats"
)

// Summary aggregates a simulation run
type Summary struct {
	Seed         int64
	StartingCash int
	FinalCash    int
	Broke        bool
	Duration     time.Duration

	Rounds   int
	Voided   int
	Hands    int
	Wagered  int
	Paid     int
	Outcomes map[blackjack.Outcome]int

	Record *stats.Record
}

// Add records one round, a nil result is a voided round
func (s *Summary) Add(result *blackjack.RoundResult) {
	s.Rounds++
	if result == nil {
		s.Voided++
		return
	}

	if s.Outcomes == nil {
		s.Outcomes = make(map[blackjack.Outcome]int)
	}

	for _, hand := range result.Hands {
		s.Hands++
		s.Wagered += hand.Bet
		s.Paid += hand.Payout
		s.Outcomes[hand.Outcome]++
	}
}

// HouseEdge is the share of every dollar wagered the player lost
func (s *Summary) HouseEdge() float64 {
	if s.Wagered == 0 {
		return 0
	}

	return float64(s.Wagered-s.Paid) / float64(s.Wagered)
}

// Print writes the summary in a human readable form
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "\n=== %d ROUNDS COMPLETED in %s ===\n", s.Rounds, s.Duration.Round(time.Millisecond))
	if s.Broke {
		fmt.Fprintf(w, "The player went broke\n")
	}

	if s.Voided > 0 {
		fmt.Fprintf(w, "Voided rounds: %d\n", s.Voided)
	}

	fmt.Fprintf(w, "Hands played: %d\n", s.Hands)
	for _, outcome := range settleOrder {
		n := s.Outcomes[outcome]
		pct := 0.0
		if s.Hands > 0 {
			pct = 100 * float64(n) / float64(s.Hands)
		}

		fmt.Fprintf(w, "  %-10s %7d  %5.1f%%\n", outcome, n, pct)
	}

	fmt.Fprintf(w, "Wagered: $%d  Paid: $%d  House edge: %.2f%%\n", s.Wagered, s.Paid, 100*s.HouseEdge())
	fmt.Fprintf(w, "Cash: $%d -> $%d (%+d)\n", s.StartingCash, s.FinalCash, s.FinalCash-s.StartingCash)
	if s.Record != nil {
		fmt.Fprintf(w, "Lifetime: %d hands, %.1f%% won, net %+d\n", s.Record.HandsPlayed, 100*s.Record.WinRate(), s.Record.Net())
	}
	fmt.Fprintf(w, "Seed: %d\n", s.Seed)
}

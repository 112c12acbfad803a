package stats

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a player has no record yet
var ErrNotFound = errors.New("record not found")

// Store persists statistics records
type Store interface {
	Get(ctx context.Context, playerID int64) (*Record, error)
	Save(ctx context.Context, record *Record) error
}

// Load returns the player's record, creating one with startingCash if none exists
func Load(ctx context.Context, store Store, playerID int64, startingCash int) (*Record, error) {
	record, err := store.Get(ctx, playerID)
	if err == nil {
		return record, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("could not load stats for player %d: %w", playerID, err)
	}

	record = NewRecord(playerID, startingCash)
	if err := store.Save(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// HandLog is one settled hand in a player's history
type HandLog struct {
	RoundID     string `json:"roundId"`
	Seat        int    `json:"seat"`
	Cards       string `json:"cards"`
	DealerCards string `json:"dealerCards"`
	Bet         int    `json:"bet"`
	Outcome     string `json:"outcome"`
	Payout      int    `json:"payout"`
}

// RoundLogger is implemented by stores that keep a hand history
type RoundLogger interface {
	LogHands(ctx context.Context, playerID int64, hands []HandLog) error
}

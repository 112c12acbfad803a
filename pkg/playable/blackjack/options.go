package blackjack

import (
	"errors"
	"fmt"
	"time"

	"casinotable/internal/rng"
	"casinotable/pkg/chips"
)

// maxSeats is the most betting spots a single player may use
const maxSeats = 3

// Options contains options for a blackjack table
type Options struct {
	Decks         int                 `json:"decks"`
	ReuseDiscards bool                `json:"reuseDiscards"`
	InfiniteShoe  bool                `json:"infiniteShoe"`
	Seats         int                 `json:"seats"`
	MaxSplits     int                 `json:"maxSplits"`
	Denominations chips.Denominations `json:"denominations"`
	HouseBankroll int                 `json:"houseBankroll"`
	MinBet        int                 `json:"minBet"`
	MaxBet        int                 `json:"maxBet"`

	// DealerStandsOn is the lowest total the dealer stands on
	DealerStandsOn int `json:"dealerStandsOn"`

	DealInterval time.Duration `json:"dealInterval"`
	CardTravel   time.Duration `json:"cardTravel"`
	DealerDelay  time.Duration `json:"dealerDelay"`
	ChipTravel   time.Duration `json:"chipTravel"`
	TickInterval time.Duration `json:"tickInterval"`

	// RNG shuffles the shoe, a crypto source is used when nil
	RNG rng.Generator `json:"-"`
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		Decks:          6,
		ReuseDiscards:  true,
		InfiniteShoe:   true,
		Seats:          1,
		MaxSplits:      2,
		Denominations:  chips.DefaultDenominations,
		HouseBankroll:  10000,
		MinBet:         1,
		MaxBet:         0,
		DealerStandsOn: 17,
		DealInterval:   250 * time.Millisecond,
		CardTravel:     300 * time.Millisecond,
		DealerDelay:    600 * time.Millisecond,
		ChipTravel:     400 * time.Millisecond,
		TickInterval:   50 * time.Millisecond,
	}
}

// Validate ensures the options describe a playable table
func (o Options) Validate() error {
	if o.Decks < 1 {
		return errors.New("table needs at least one deck")
	}

	if o.Seats < 1 || o.Seats > maxSeats {
		return fmt.Errorf("seats must be between 1 and %d, got %d", maxSeats, o.Seats)
	}

	if o.MaxSplits < 0 {
		return errors.New("maxSplits cannot be negative")
	}

	if err := o.Denominations.Validate(); err != nil {
		return err
	}

	if o.HouseBankroll <= 0 {
		return errors.New("house bankroll must be > 0")
	}

	if o.MinBet < 0 || o.MaxBet < 0 {
		return errors.New("bet limits cannot be negative")
	}

	if o.MaxBet > 0 && o.MinBet > o.MaxBet {
		return fmt.Errorf("minimum bet $%d exceeds maximum bet $%d", o.MinBet, o.MaxBet)
	}

	if o.DealerStandsOn < 2 || o.DealerStandsOn > 21 {
		return fmt.Errorf("dealer must stand on a total between 2 and 21, got %d", o.DealerStandsOn)
	}

	if o.DealInterval < 0 || o.CardTravel < 0 || o.DealerDelay < 0 || o.ChipTravel < 0 {
		return errors.New("animation durations cannot be negative")
	}

	return nil
}

func (o Options) interval() time.Duration {
	if o.TickInterval <= 0 {
		return 50 * time.Millisecond
	}

	return o.TickInterval
}

package gamefactory

import (
	"casinotable/internal/rng"
	"casinotable/pkg/chips"
	"casinotable/pkg/playable"
	"casinotable/pkg/playable/blackjack"
	"casinotable/pkg/stats"
	"github.com/sirupsen/logrus"
)

type blackjackFactory struct {
	// decks overrides the default shoe size when set
	decks int
}

func (b blackjackFactory) CreateGame(logger logrus.FieldLogger, record *stats.Record, additionalData playable.AdditionalData) (*blackjack.Game, error) {
	opts, err := b.options(additionalData)
	if err != nil {
		return nil, err
	}

	return blackjack.NewGame(logger, record, opts)
}

func (b blackjackFactory) Details(additionalData playable.AdditionalData) (string, int, error) {
	opts, err := b.options(additionalData)
	if err != nil {
		return "", 0, err
	}

	return blackjack.NameFromOptions(opts), opts.MinBet, nil
}

func (b blackjackFactory) options(additionalData playable.AdditionalData) (blackjack.Options, error) {
	opts := blackjack.DefaultOptions()
	if b.decks > 0 {
		opts.Decks = b.decks
	}

	ints := map[string]*int{
		"decks":          &opts.Decks,
		"seats":          &opts.Seats,
		"maxSplits":      &opts.MaxSplits,
		"houseBankroll":  &opts.HouseBankroll,
		"minBet":         &opts.MinBet,
		"maxBet":         &opts.MaxBet,
		"dealerStandsOn": &opts.DealerStandsOn,
	}

	for key, dst := range ints {
		if val, ok := additionalData.GetInt(key); ok {
			*dst = val
		}
	}

	if val, ok := additionalData.GetBool("reuseDiscards"); ok {
		opts.ReuseDiscards = val
	}

	if val, ok := additionalData.GetBool("infiniteShoe"); ok {
		opts.InfiniteShoe = val
	}

	if seed, ok := additionalData.GetInt("seed"); ok {
		opts.RNG = rng.NewSeeded(int64(seed))
	}

	if val, ok := additionalData.GetIntSlice("denominations"); ok {
		opts.Denominations = chips.Denominations(val)
	}

	if err := opts.Validate(); err != nil {
		return blackjack.Options{}, err
	}

	return opts, nil
}

package main

import (
	"context"

	"casinotable/pkg/playable/blackjack"
	"casinotable/pkg/stats"
	"github.com/sirupsen/logrus"
)

// persister writes the player's record after every settled round
// Note: must only be used from the room's tick goroutine
type persister struct {
	store   stats.Store
	game    *blackjack.Game
	settled int
}

func newPersister(store stats.Store, game *blackjack.Game) *persister {
	return &persister{
		store:   store,
		game:    game,
		settled: len(game.Results()),
	}
}

func (p *persister) persistRounds(ctx context.Context) {
	results := p.game.Results()
	if len(results) == p.settled || p.game.State() != blackjack.StateEndRound {
		return
	}

	if logger, ok := p.store.(stats.RoundLogger); ok {
		var hands []stats.HandLog
		for _, result := range results[p.settled:] {
			hands = append(hands, result.HandLogs()...)
		}

		if err := logger.LogHands(ctx, p.game.Record().PlayerID, hands); err != nil {
			logrus.WithError(err).Error("could not log hands")
		}
	}

	p.settled = len(results)
	p.save(ctx)
}

func (p *persister) save(ctx context.Context) {
	if err := p.store.Save(ctx, p.game.Record()); err != nil {
		logrus.WithError(err).Error("could not save stats")
	}
}

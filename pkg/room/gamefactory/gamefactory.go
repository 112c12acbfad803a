package gamefactory

import (
	"fmt"

	"casinotable/pkg/playable"
	"casinotable/pkg/playable/blackjack"
	"casinotable/pkg/stats"
	"github.com/sirupsen/logrus"
)

var factories = map[string]GameFactory{
	"blackjack":   blackjackFactory{},
	"single-deck": blackjackFactory{decks: 1},
}

// GameFactory is a factory for creating tables from loose option data
type GameFactory interface {
	CreateGame(logger logrus.FieldLogger, record *stats.Record, additionalData playable.AdditionalData) (*blackjack.Game, error)
	Details(additionalData playable.AdditionalData) (name string, minBet int, err error)
}

// Get returns a factory by the given name
func Get(name string) (GameFactory, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("no factory with name: %s", name)
	}

	return factory, nil
}

package bot

import (
	"errors"
	"testing"
	"time"

	"casinotable/internal/rng"
	"casinotable/pkg/playable/blackjack"
	"casinotable/pkg/stats"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newSimGame(t *testing.T, cash, seats int, seed int64) *blackjack.Game {
	t.Helper()

	opts := blackjack.DefaultOptions()
	opts.Seats = seats
	opts.RNG = rng.NewSeeded(seed)

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	g, err := blackjack.NewGame(logger, stats.NewRecord(1, cash), opts)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	return g
}

func TestPlayer_PlayRound(t *testing.T) {
	for name, strategy := range strategies {
		t.Run(name, func(t *testing.T) {
			a := assert.New(t)
			g := newSimGame(t, 5000, 2, 99)
			p := &Player{Strategy: strategy, Bet: 10, Step: time.Second}

			settled := 0
			for i := 0; i < 200; i++ {
				result, err := p.PlayRound(g)
				if errors.Is(err, ErrBroke) {
					break
				}

				if !a.NoError(err) {
					return
				}

				a.Equal(blackjack.StateEndRound, g.State())
				a.NoError(g.Economy().Audit())
				a.Equal(g.Cash(), g.Record().Cash)

				if result != nil {
					settled++
					a.Equal(g.Round(), result.Round)
					a.GreaterOrEqual(len(result.Hands), 2)
				}
			}

			a.Greater(settled, 0)
			a.Len(g.Results(), settled)
			a.GreaterOrEqual(g.Record().HandsPlayed, 2*settled)
			a.Equal(g.Record().HandsPlayed,
				g.Record().HandsWon+g.Record().HandsLost+g.Record().Pushes)
		})
	}
}

func TestPlayer_PlayRound_broke(t *testing.T) {
	a := assert.New(t)
	g := newSimGame(t, 15, 2, 1)
	p := &Player{Strategy: Basic{}, Bet: 10, Step: time.Second}

	_, err := p.PlayRound(g)
	a.ErrorIs(err, ErrBroke)
	a.EqualError(err, "$15 left for 2 x $10: not enough cash for another bet")
	a.Equal(blackjack.StateBetting, g.State())
	a.Equal(15, g.Cash())
}

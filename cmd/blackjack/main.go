package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"casinotable/internal/config"
	"casinotable/pkg/playable"
	"casinotable/pkg/playable/blackjack"
	"casinotable/pkg/room"
	"casinotable/pkg/stats"
	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// ctrlC is what a raw terminal delivers instead of SIGINT
const ctrlC = 3

func main() {
	setupLogger()
	cfg := config.Instance()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := stats.Open(ctx, logrus.StandardLogger(), stats.Options{
		Driver:         cfg.Stats.Driver,
		Path:           cfg.Stats.Path,
		PGDSN:          cfg.Stats.PGDSN,
		MigrationsPath: cfg.Stats.MigrationsPath,
	})
	if err != nil {
		logrus.WithError(err).Fatal("could not open stats store")
	}
	defer closeStore()

	record, err := stats.Load(ctx, store, cfg.Player.ID, cfg.Player.StartingCash)
	if err != nil {
		logrus.WithError(err).Fatal("could not load stats")
	}

	if record.Cash <= 0 {
		logrus.WithField("playerID", record.PlayerID).Info("player is broke, restoring starting cash")
		record.Cash = cfg.Player.StartingCash
	}

	opts, err := cfg.TableOptions()
	if err != nil {
		logrus.WithError(err).Fatal("invalid table configuration")
	}

	game, err := blackjack.NewGame(logrus.StandardLogger(), record, opts)
	if err != nil {
		logrus.WithError(err).Fatal("could not create game")
	}

	if err := play(ctx, game, store); err != nil {
		logrus.WithError(err).Fatal("game stopped")
	}

	fmt.Printf("You left the table with $%d (net %+d)\n", record.Cash, record.Net())
}

// play runs the table until the player leaves or the context is done
func play(ctx context.Context, game *blackjack.Game, store stats.Store) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("could not put the terminal in raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	// log lines would tear the table apart while it is drawn
	logrus.SetOutput(&rawWriter{w: os.Stderr})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := room.New(quartz.NewReal(), logrus.StandardLogger(), game)
	p := newPersister(store, game)
	screen := &screen{out: os.Stdout, game: game, room: r}

	r.OnUpdate = func() {
		p.persistRounds(ctx)
		screen.draw()
	}
	r.OnGameOver = func(_ *playable.GameOverDetails) {
		p.save(ctx)
	}

	go readKeys(ctx, cancel, r, game, screen)

	screen.draw()
	err = r.Run(ctx)

	// an interrupted round keeps the cash from the last settled round
	p.save(context.Background())
	return err
}

func readKeys(ctx context.Context, cancel context.CancelFunc, r *room.Room, game *blackjack.Game, s *screen) {
	buf := make([]byte, 1)
	for ctx.Err() == nil {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			cancel()
			return
		}

		if buf[0] == ctrlC {
			cancel()
			return
		}

		key := blackjack.Key(buf[0])
		err = r.Submit(func() error {
			err := game.HandleKey(key)
			s.setError(err)
			return err
		})
		if err != nil {
			return
		}
	}
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

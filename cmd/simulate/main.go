package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"casinotable/pkg/bot"
	"casinotable/pkg/playable"
	"casinotable/pkg/playable/blackjack"
	"casinotable/pkg/room/gamefactory"
	"casinotable/pkg/stats"
	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

// CLI are the simulator flags
type CLI struct {
	Rounds   int    `default:"10000" help:"Number of rounds to simulate"`
	Seed     int64  `default:"0" help:"RNG seed (0 for random)"`
	Bet      int    `default:"10" help:"Bet placed on every seat each round"`
	Cash     int    `default:"1000" help:"Starting cash"`
	Strategy string `default:"basic" enum:"basic,dealer,never-bust" help:"Player strategy"`
	Table    string `default:"blackjack" enum:"blackjack,single-deck" help:"Table variant"`
	Decks    int    `default:"0" help:"Decks in the shoe (0 for the table default)"`
	Seats    int    `default:"1" help:"Betting spots played each round"`

	StatsDriver string `default:"memory" enum:"memory,file,postgres" help:"Where to keep the player's record"`
	StatsPath   string `default:"stats.json" help:"JSON file for the file driver"`
	PGDSN       string `name:"pg-dsn" help:"PostgreSQL DSN for the postgres driver"`
	Migrations  string `default:"sql" help:"Migrations applied by the postgres driver"`
	PlayerID    int64  `default:"1" help:"Player whose record is used"`

	Verbose bool `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli, kong.Description("Plays blackjack rounds with a strategy bot and prints the results."))

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	if cli.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	summary, err := run(context.Background(), logger, cli)
	kctx.FatalIfErrorf(err)

	summary.Print(os.Stdout)
	kctx.Exit(0)
}

func run(ctx context.Context, logger logrus.FieldLogger, cli CLI) (*Summary, error) {
	strategy, err := bot.Get(cli.Strategy)
	if err != nil {
		return nil, err
	}

	factory, err := gamefactory.Get(cli.Table)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := stats.Open(ctx, logger, stats.Options{
		Driver:         cli.StatsDriver,
		Path:           cli.StatsPath,
		PGDSN:          cli.PGDSN,
		MigrationsPath: cli.Migrations,
	})
	if err != nil {
		return nil, err
	}
	defer closeStore()

	record, err := stats.Load(ctx, store, cli.PlayerID, cli.Cash)
	if err != nil {
		return nil, err
	}

	// a simulation always starts from the requested bankroll, the lifetime counters carry on
	record.Cash = cli.Cash

	data := playable.AdditionalData{
		"seats":  cli.Seats,
		"minBet": 1,
		"seed":   cli.Seed,
	}
	if cli.Decks > 0 {
		data["decks"] = cli.Decks
	}

	game, err := factory.CreateGame(logger, record, data)
	if err != nil {
		return nil, err
	}

	fmt.Printf("Starting simulation: %d rounds of %s, %s strategy, $%d bets (seed: %d)\n",
		cli.Rounds, game.Name(), strategy.Name(), cli.Bet, cli.Seed)

	summary := &Summary{Seed: cli.Seed, StartingCash: cli.Cash}
	player := &bot.Player{Strategy: strategy, Bet: cli.Bet, Step: time.Second}
	start := time.Now()

	roundLogger, logsRounds := store.(stats.RoundLogger)
	for i := 0; i < cli.Rounds; i++ {
		result, err := player.PlayRound(game)
		if errors.Is(err, bot.ErrBroke) {
			summary.Broke = true
			break
		}

		if err != nil {
			return nil, err
		}

		if err := game.Economy().Audit(); err != nil {
			return nil, fmt.Errorf("round %d: %w", game.Round(), err)
		}

		summary.Add(result)
		if logsRounds && result != nil {
			if err := roundLogger.LogHands(ctx, record.PlayerID, result.HandLogs()); err != nil {
				return nil, err
			}
		}
	}

	if err := game.Exit(); err != nil {
		return nil, err
	}

	summary.Duration = time.Since(start)
	summary.FinalCash = record.Cash
	summary.Record = record.Clone()

	if err := store.Save(ctx, record); err != nil {
		return nil, err
	}

	return summary, nil
}

// settleOrder lists outcomes in the order they are printed
var settleOrder = []blackjack.Outcome{
	blackjack.OutcomeBlackjack,
	blackjack.OutcomeWin,
	blackjack.OutcomePush,
	blackjack.OutcomeLoss,
	blackjack.OutcomeBust,
}

package config

import (
	"errors"
	"os"
	"time"

	"casinotable/internal/util"
	"casinotable/pkg/chips"
	"casinotable/pkg/playable/blackjack"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the casino table
type Config struct {
	loaded bool

	Log struct {
		Level string `yaml:"level" envconfig:"level"`
	} `yaml:"log"`

	Table struct {
		Decks          int   `yaml:"decks" envconfig:"decks"`
		ReuseDiscards  bool  `yaml:"reuseDiscards" envconfig:"reuse_discards"`
		InfiniteShoe   bool  `yaml:"infiniteShoe" envconfig:"infinite_shoe"`
		Seats          int   `yaml:"seats" envconfig:"seats"`
		MaxSplits      int   `yaml:"maxSplits" envconfig:"max_splits"`
		Denominations  []int `yaml:"denominations" envconfig:"denominations"`
		HouseBankroll  int   `yaml:"houseBankroll" envconfig:"house_bankroll"`
		MinBet         int   `yaml:"minBet" envconfig:"min_bet"`
		MaxBet         int   `yaml:"maxBet" envconfig:"max_bet"`
		DealerStandsOn int   `yaml:"dealerStandsOn" envconfig:"dealer_stands_on"`
	} `yaml:"table"`

	Animation struct {
		DealIntervalMS int `yaml:"dealIntervalMs" envconfig:"deal_interval_ms"`
		CardTravelMS   int `yaml:"cardTravelMs" envconfig:"card_travel_ms"`
		DealerDelayMS  int `yaml:"dealerDelayMs" envconfig:"dealer_delay_ms"`
		ChipTravelMS   int `yaml:"chipTravelMs" envconfig:"chip_travel_ms"`
	} `yaml:"animation"`

	TickIntervalMS int `yaml:"tickIntervalMs" envconfig:"tick_interval_ms"`

	Stats struct {
		Driver         string `yaml:"driver" envconfig:"driver"`
		Path           string `yaml:"path" envconfig:"path"`
		PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
		MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	} `yaml:"stats"`

	Player struct {
		ID           int64 `yaml:"id" envconfig:"id"`
		StartingCash int   `yaml:"startingCash" envconfig:"starting_cash"`
	} `yaml:"player"`
}

var config Config

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() Config {
	opts := blackjack.DefaultOptions()

	var c Config
	c.Log.Level = "info"

	c.Table.Decks = opts.Decks
	c.Table.ReuseDiscards = opts.ReuseDiscards
	c.Table.InfiniteShoe = opts.InfiniteShoe
	c.Table.Seats = opts.Seats
	c.Table.MaxSplits = opts.MaxSplits
	c.Table.Denominations = append([]int(nil), opts.Denominations...)
	c.Table.HouseBankroll = opts.HouseBankroll
	c.Table.MinBet = opts.MinBet
	c.Table.MaxBet = opts.MaxBet
	c.Table.DealerStandsOn = opts.DealerStandsOn

	c.Animation.DealIntervalMS = int(opts.DealInterval / time.Millisecond)
	c.Animation.CardTravelMS = int(opts.CardTravel / time.Millisecond)
	c.Animation.DealerDelayMS = int(opts.DealerDelay / time.Millisecond)
	c.Animation.ChipTravelMS = int(opts.ChipTravel / time.Millisecond)
	c.TickIntervalMS = int(opts.TickInterval / time.Millisecond)

	c.Stats.Driver = "file"
	c.Stats.Path = "stats.json"
	c.Stats.MigrationsPath = "sql"

	c.Player.ID = 1
	c.Player.StartingCash = 1000

	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing configuration file is not an error, the defaults are used instead
func Load() error {
	c := DefaultConfig()

	configFile := util.Getenv("CASINO_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&c); err != nil {
			return err
		}
	}

	if err := envconfig.Process("casino", &c); err != nil {
		return err
	}

	c.loaded = true
	config = c
	return nil
}

// TableOptions converts the table and animation settings into blackjack options
func (c Config) TableOptions() (blackjack.Options, error) {
	opts := blackjack.DefaultOptions()
	opts.Decks = c.Table.Decks
	opts.ReuseDiscards = c.Table.ReuseDiscards
	opts.InfiniteShoe = c.Table.InfiniteShoe
	opts.Seats = c.Table.Seats
	opts.MaxSplits = c.Table.MaxSplits
	if len(c.Table.Denominations) > 0 {
		opts.Denominations = chips.Denominations(c.Table.Denominations)
	}
	opts.HouseBankroll = c.Table.HouseBankroll
	opts.MinBet = c.Table.MinBet
	opts.MaxBet = c.Table.MaxBet
	opts.DealerStandsOn = c.Table.DealerStandsOn

	opts.DealInterval = time.Duration(c.Animation.DealIntervalMS) * time.Millisecond
	opts.CardTravel = time.Duration(c.Animation.CardTravelMS) * time.Millisecond
	opts.DealerDelay = time.Duration(c.Animation.DealerDelayMS) * time.Millisecond
	opts.ChipTravel = time.Duration(c.Animation.ChipTravelMS) * time.Millisecond
	opts.TickInterval = time.Duration(c.TickIntervalMS) * time.Millisecond

	if err := opts.Validate(); err != nil {
		return blackjack.Options{}, err
	}

	return opts, nil
}

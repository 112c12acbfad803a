package stats

import (
	"context"
	"database/sql"
	"errors"

	"casinotable/pkg/db"
)

const recordColumns = `
player_stats.player_id,
player_stats.cash,
player_stats.hands_played,
player_stats.hands_won,
player_stats.hands_lost,
player_stats.blackjacks,
player_stats.pushes,
player_stats.busts,
player_stats.total_bets,
player_stats.total_winnings,
player_stats.updated`

// Postgres is a Store backed by the player_stats table
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns a store using the given database handle
func NewPostgres(dbh *sql.DB) *Postgres {
	return &Postgres{db: dbh}
}

func getRecordByRow(row db.Scanner) (*Record, error) {
	var r Record
	if err := row.Scan(&r.PlayerID, &r.Cash, &r.HandsPlayed, &r.HandsWon, &r.HandsLost, &r.Blackjacks, &r.Pushes, &r.Busts, &r.TotalBets, &r.TotalWinnings, &r.Updated); err != nil {
		return nil, err
	}

	return &r, nil
}

// Get returns the player's record
func (p *Postgres) Get(ctx context.Context, playerID int64) (*Record, error) {
	const query = `
SELECT ` + recordColumns + `
FROM player_stats
WHERE player_id = $1`

	record, err := getRecordByRow(p.db.QueryRowContext(ctx, query, playerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return record, nil
}

// Save inserts or updates the player's record
func (p *Postgres) Save(ctx context.Context, record *Record) error {
	const query = `
INSERT INTO player_stats (player_id, cash, hands_played, hands_won, hands_lost, blackjacks, pushes, busts, total_bets, total_winnings)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (player_id) DO UPDATE
SET cash = excluded.cash,
    hands_played = excluded.hands_played,
    hands_won = excluded.hands_won,
    hands_lost = excluded.hands_lost,
    blackjacks = excluded.blackjacks,
    pushes = excluded.pushes,
    busts = excluded.busts,
    total_bets = excluded.total_bets,
    total_winnings = excluded.total_winnings,
    updated = (NOW() AT TIME ZONE 'utc')
RETURNING updated`

	row := p.db.QueryRowContext(ctx, query, record.PlayerID, record.Cash, record.HandsPlayed, record.HandsWon, record.HandsLost, record.Blackjacks, record.Pushes, record.Busts, record.TotalBets, record.TotalWinnings)
	return row.Scan(&record.Updated)
}

// LogHands writes settled hands to the round_log table in a single transaction
func (p *Postgres) LogHands(ctx context.Context, playerID int64, hands []HandLog) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
INSERT INTO round_log (player_id, round_id, seat, cards, dealer_cards, bet, outcome, payout)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, hand := range hands {
		if _, err := tx.ExecContext(ctx, query, playerID, hand.RoundID, hand.Seat, hand.Cards, hand.DealerCards, hand.Bet, hand.Outcome, hand.Payout); err != nil {
			return err
		}
	}

	return tx.Commit()
}

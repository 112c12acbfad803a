package stats

import (
	"time"
)

// Record is the persisted statistics for a single player
type Record struct {
	PlayerID      int64     `json:"playerId"`
	Cash          int       `json:"cash"`
	HandsPlayed   int       `json:"handsPlayed"`
	HandsWon      int       `json:"handsWon"`
	HandsLost     int       `json:"handsLost"`
	Blackjacks    int       `json:"blackjacks"`
	Pushes        int       `json:"pushes"`
	Busts         int       `json:"busts"`
	TotalBets     int       `json:"totalBets"`
	TotalWinnings int       `json:"totalWinnings"`
	Updated       time.Time `json:"updated"`
}

// NewRecord returns an empty record holding the starting cash
func NewRecord(playerID int64, cash int) *Record {
	return &Record{
		PlayerID: playerID,
		Cash:     cash,
	}
}

// Net returns how much the player is up or down over every hand played
func (r *Record) Net() int {
	return r.TotalWinnings - r.TotalBets
}

// WinRate returns the share of hands won
func (r *Record) WinRate() float64 {
	if r.HandsPlayed == 0 {
		return 0
	}

	return float64(r.HandsWon) / float64(r.HandsPlayed)
}

// Clone returns a copy of the record
func (r *Record) Clone() *Record {
	clone := *r
	return &clone
}

package stats

import (
	"context"
	"sync"
	"time"
)

// Memory is a Store that lives for the life of the process
type Memory struct {
	mu      sync.Mutex
	records map[int64]*Record
	hands   map[int64][]HandLog
	now     func() time.Time
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		records: make(map[int64]*Record),
		hands:   make(map[int64][]HandLog),
		now:     time.Now,
	}
}

// Get returns a copy of the player's record
func (m *Memory) Get(_ context.Context, playerID int64) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[playerID]
	if !ok {
		return nil, ErrNotFound
	}

	return record.Clone(), nil
}

// Save stores a copy of the record
func (m *Memory) Save(_ context.Context, record *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record.Updated = m.now().UTC()
	m.records[record.PlayerID] = record.Clone()
	return nil
}

// LogHands appends to the player's hand history
func (m *Memory) LogHands(_ context.Context, playerID int64, hands []HandLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hands[playerID] = append(m.hands[playerID], hands...)
	return nil
}

// Hands returns the player's hand history
func (m *Memory) Hands(playerID int64) []HandLog {
	m.mu.Lock()
	defer m.mu.Unlock()

	hands := make([]HandLog, len(m.hands[playerID]))
	copy(hands, m.hands[playerID])
	return hands
}

package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"casinotable/internal/util"
)

type fileContents struct {
	Players map[string]*Record `json:"players"`
}

// File is a Store backed by a single JSON document
// Writes replace the file atomically, so a crash never leaves a half-written document.
type File struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFile returns a store for the JSON document at path
// The file does not need to exist yet.
func NewFile(path string) *File {
	return &File{
		path: path,
		now:  time.Now,
	}
}

// Get returns the player's record
func (f *File) Get(_ context.Context, playerID int64) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	contents, err := f.read()
	if err != nil {
		return nil, err
	}

	record, ok := contents.Players[strconv.FormatInt(playerID, 10)]
	if !ok {
		return nil, ErrNotFound
	}

	return record, nil
}

// Save writes the record, keeping every other player's record
func (f *File) Save(_ context.Context, record *Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	contents, err := f.read()
	if err != nil {
		return err
	}

	record.Updated = f.now().UTC()
	contents.Players[strconv.FormatInt(record.PlayerID, 10)] = record.Clone()

	data, err := json.MarshalIndent(contents, "", "  ")
	if err != nil {
		return err
	}

	return util.WriteFileAtomic(f.path, data, 0644)
}

func (f *File) read() (*fileContents, error) {
	contents := &fileContents{Players: make(map[string]*Record)}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return contents, nil
		}

		return nil, err
	}

	if len(data) == 0 {
		return contents, nil
	}

	if err := json.Unmarshal(data, contents); err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", f.path, err)
	}

	if contents.Players == nil {
		contents.Players = make(map[string]*Record)
	}

	return contents, nil
}

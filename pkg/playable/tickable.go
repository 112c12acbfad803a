package playable

import "time"

// Tickable is an interface that allows a periodic tick to update the game state
type Tickable interface {
	// Interval is how long the wait between each tick should be
	Interval() time.Duration

	// Tick will be called periodically with the time elapsed since the previous tick
	// Return true if the game state changed and viewers should be refreshed
	Tick(elapsed time.Duration) (bool, error)
}

// TickablePlayable is a playable game driven by ticks
type TickablePlayable interface {
	Playable
	Tickable
}

package room

import (
	"casinotable/pkg/playable"
)

const logMessageLimit = 25

// LogMessages returns the most recent table log messages
// Note: this must only be called from within the tick goroutine, e.g. from OnUpdate
func (r *Room) LogMessages() []*playable.LogMessage {
	return r.logMessages
}

// drainLogs moves everything the game logged into the room's buffer
// Note: this must only be called from within the tick goroutine
func (r *Room) drainLogs() bool {
	added := false
	for {
		select {
		case messages := <-r.game.LogChan():
			r.addLogMessages(messages)
			added = true
		default:
			return added
		}
	}
}

// addLogMessages adds a log message
// Note: this must only be called from within the tick goroutine
func (r *Room) addLogMessages(messages []*playable.LogMessage) {
	m := append(r.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	r.logMessages = m
}

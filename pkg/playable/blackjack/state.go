package blackjack

import (
	"encoding/json"
	"fmt"
	"strings"
)

// State is a stage of a blackjack round
type State int

// State constants
const (
	StateBetting State = iota
	StateDealing
	StatePlayerTurn
	StateDealerTurn
	StateShowResults
	StateEndRound
)

func (s State) String() string {
	switch s {
	case StateBetting:
		return "betting"
	case StateDealing:
		return "dealing"
	case StatePlayerTurn:
		return "player-turn"
	case StateDealerTurn:
		return "dealer-turn"
	case StateShowResults:
		return "show-results"
	case StateEndRound:
		return "end-round"
	}

	panic(fmt.Sprintf("unknown state: %d", s))
}

// MarshalJSON encodes the state as its name
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Action is something the player can do at the table
type Action int

// Action constants
const (
	ActionBet Action = iota
	ActionClearBets
	ActionDeal
	ActionHit
	ActionStand
	ActionDouble
	ActionSplit
	ActionRepeatBet
	ActionChangeBet
	ActionExit
	ActionConfirmExit
	ActionCancelExit
)

var actionNames = map[Action]string{
	ActionBet:         "bet",
	ActionClearBets:   "clear-bets",
	ActionDeal:        "deal",
	ActionHit:         "hit",
	ActionStand:       "stand",
	ActionDouble:      "double",
	ActionSplit:       "split",
	ActionRepeatBet:   "repeat-bet",
	ActionChangeBet:   "change-bet",
	ActionExit:        "exit",
	ActionConfirmExit: "confirm-exit",
	ActionCancelExit:  "cancel-exit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	panic(fmt.Sprintf("unknown action: %d", a))
}

// MarshalJSON encodes the action as its name
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// ActionFromString returns the action with the given name
func ActionFromString(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for action, name := range actionNames {
		if name == s {
			return action, nil
		}
	}

	return 0, fmt.Errorf("unknown action: %q", s)
}

package blackjack

import (
	"errors"
	"fmt"
)

// ErrIllegalAction is returned when an action is not allowed in the current state
var ErrIllegalAction = errors.New("illegal action")

// ErrNoBet is returned when the player tries to deal without a bet on the table
var ErrNoBet = errors.New("place a bet before dealing")

// ErrExitPending is returned for any action other than confirming or cancelling a pending exit
var ErrExitPending = errors.New("exit is awaiting confirmation")

// ErrGameIsOver is an error when an action is attempted after the player left the table
var ErrGameIsOver = errors.New("game is over")

// ErrHandNotFound is returned when a seat or hand index does not exist
var ErrHandNotFound = errors.New("hand not found")

// IllegalActionError describes an action that was rejected in a given state
type IllegalActionError struct {
	Action Action
	State  State
	Reason string
}

func (i IllegalActionError) Error() string {
	if i.Reason != "" {
		return fmt.Sprintf("cannot %s during %s: %s", i.Action, i.State, i.Reason)
	}

	return fmt.Sprintf("cannot %s during %s", i.Action, i.State)
}

// Unwrap allows errors.Is(err, ErrIllegalAction)
func (i IllegalActionError) Unwrap() error {
	return ErrIllegalAction
}

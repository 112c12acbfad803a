package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"casinotable/pkg/playable"
	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
)

// ErrInputQueueFull is returned when too many inputs are waiting for the next tick
var ErrInputQueueFull = errors.New("input queue is full")

// ErrRoomClosed is returned when input is submitted to a room that stopped ticking
var ErrRoomClosed = errors.New("room is closed")

// errGameOver stops the ticker once the game reports it is over
var errGameOver = errors.New("game over")

const inputQueueSize = 256

// Game is what a room can host
type Game interface {
	playable.TickablePlayable

	// IsOver returns true once the game cannot accept any more input
	IsOver() bool
}

type input struct {
	fn   func() error
	done chan error
}

// Room owns a game and is the only goroutine that touches it
// Inputs may be submitted from any goroutine, they are queued and applied on the tick
// goroutine before each tick.
type Room struct {
	clock  quartz.Clock
	logger logrus.FieldLogger
	game   Game

	inputs chan input
	closed chan struct{}
	once   sync.Once

	last        time.Time
	logMessages []*playable.LogMessage

	// OnUpdate is called on the tick goroutine whenever the game state changed
	OnUpdate func()

	// OnGameOver is called on the tick goroutine once the game is over
	OnGameOver func(details *playable.GameOverDetails)
}

// New returns a room for the game
// Pass quartz.NewReal() in production and a mock clock in tests.
func New(clock quartz.Clock, logger logrus.FieldLogger, game Game) *Room {
	return &Room{
		clock:  clock,
		logger: logger.WithField("game", game.Name()),
		game:   game,
		inputs: make(chan input, inputQueueSize),
		closed: make(chan struct{}),
	}
}

// Start starts ticking the game and returns a waiter that completes when the game is over
// or the context is done. The ticker is registered before Start returns.
func (r *Room) Start(ctx context.Context) quartz.Waiter {
	r.last = r.clock.Now()
	r.logger.WithField("interval", r.game.Interval()).Debug("opening room")

	return r.clock.TickerFunc(ctx, r.game.Interval(), r.tick, "room")
}

// Run ticks the game until it is over or the context is done
func (r *Room) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	err := r.Start(ctx).Wait()
	r.close()

	if errors.Is(err, errGameOver) || errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// Wait waits for a waiter returned by Start and closes the room
// It reports a finished game as a nil error.
func (r *Room) Wait(w quartz.Waiter) error {
	err := w.Wait()
	r.close()

	if errors.Is(err, errGameOver) || errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func (r *Room) close() {
	r.once.Do(func() {
		close(r.closed)
		r.logger.Debug("closing room")
	})
}

// Submit queues fn to run on the tick goroutine before the next tick
// This method must return quickly
func (r *Room) Submit(fn func() error) error {
	return r.enqueue(input{fn: fn})
}

// Do queues fn and waits for the result
func (r *Room) Do(ctx context.Context, fn func() error) error {
	in := input{fn: fn, done: make(chan error, 1)}
	if err := r.enqueue(in); err != nil {
		return err
	}

	select {
	case err := <-in.done:
		return err
	case <-r.closed:
		return ErrRoomClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatch sends a client payload to the game and waits for the response
// Failures are reported as an error response rather than an error.
func (r *Room) Dispatch(ctx context.Context, playerID int64, msg *playable.PayloadIn) *playable.Response {
	var response *playable.Response
	err := r.Do(ctx, func() error {
		res, _, err := r.game.Action(playerID, msg)
		if err != nil {
			return err
		}

		if res != nil {
			res.Context = msg.Context
		}

		response = res
		return nil
	})

	if err != nil {
		r.logger.WithError(err).WithField("action", msg.Subject).Debug("could not perform action")
		return newErrorResponse(msg.Context, err)
	}

	if response == nil {
		return playable.OK(msg.Context)
	}

	return response
}

func (r *Room) enqueue(in input) error {
	select {
	case <-r.closed:
		return ErrRoomClosed
	default:
	}

	select {
	case r.inputs <- in:
		return nil
	default:
		return ErrInputQueueFull
	}
}

// NOTE: must only be called from the tick goroutine
func (r *Room) drainInputs() bool {
	applied := false
	for {
		select {
		case in := <-r.inputs:
			applied = true
			err := in.fn()
			if in.done != nil {
				in.done <- err
			} else if err != nil {
				r.logger.WithError(err).Debug("input rejected")
			}
		default:
			return applied
		}
	}
}

// NOTE: must only be called from the tick goroutine
func (r *Room) tick() error {
	now := r.clock.Now()
	elapsed := now.Sub(r.last)
	r.last = now

	changed := r.drainInputs()

	tickChanged, err := r.game.Tick(elapsed)
	if err != nil {
		r.logger.WithError(err).Error("tick failed")
		return err
	}

	changed = r.drainLogs() || changed || tickChanged
	if changed && r.OnUpdate != nil {
		r.OnUpdate()
	}

	if details, isOver := r.game.GetEndOfGameDetails(); isOver || r.game.IsOver() {
		if r.OnGameOver != nil {
			r.OnGameOver(details)
		}

		return errGameOver
	}

	return nil
}

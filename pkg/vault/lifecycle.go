package vault

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/totpvault/pkg/logger"
)

// State is the lifecycle state of a Store.
type State string

const (
	// StateUninitialized means no password was ever set. The collection is empty.
	StateUninitialized State = "uninitialized"
	// StateLocked means a password exists but was not supplied this session.
	StateLocked State = "locked"
	// StateActive means the password is known and the collection is loaded.
	StateActive State = "active"
)

func (s State) String() string {
	return string(s)
}

type event string

const (
	eventFlagFound      event = "flag_found"
	eventSetPassword    event = "set_password"
	eventUnlock         event = "unlock"
	eventLock           event = "lock"
	eventChangePassword event = "change_password"
)

// transitions maps a state and event to the next state.
var transitions = map[State]map[event]State{
	StateUninitialized: {
		eventFlagFound:   StateLocked,
		eventSetPassword: StateActive,
	},
	StateLocked: {
		eventUnlock: StateActive,
	},
	StateActive: {
		eventLock:           StateLocked,
		eventChangePassword: StateActive,
	},
}

// action runs before the state changes. Returning an error aborts the transition.
type action func(ctx context.Context) error

// fire runs act and moves to the next state. The caller holds s.mu.
func (s *Store) fire(ctx context.Context, ev event, act action) error {
	to, ok := transitions[s.state][ev]
	if !ok {
		return rejected(s.state, ev)
	}

	if act != nil {
		if err := act(ctx); err != nil {
			return err
		}
	}

	if to != s.state {
		s.log.DebugContext(ctx, "vault state changed",
			slog.String("from", s.state.String()),
			logger.State(to.String()),
			slog.String("event", string(ev)),
		)
	}
	s.state = to
	return nil
}

// rejected picks the error describing why ev is not allowed in state.
func rejected(state State, ev event) error {
	switch ev {
	case eventSetPassword:
		return ErrPasswordAlreadySet
	case eventUnlock:
		if state == StateActive {
			return ErrAlreadyUnlocked
		}
	}
	return requireActive(state)
}

// requireActive returns nil in StateActive and the matching error otherwise.
func requireActive(state State) error {
	switch state {
	case StateActive:
		return nil
	case StateLocked:
		return ErrLocked
	default:
		return ErrNotInitialized
	}
}

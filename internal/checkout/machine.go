package checkout

import (
	"github.com/aliffarhan/threadmart-backend/internal/payments"
	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
)

// State is one point in a checkout attempt's lifecycle. FieldErrors is only
// populated while the attempt sits in idle after a rejected submit.
type State struct {
	Phase       enums.CheckoutState
	FieldErrors payments.FieldErrors
}

// NewState starts an attempt in idle.
func NewState() State {
	return State{Phase: enums.CheckoutStateIdle}
}

// Event drives a checkout transition.
type Event interface {
	isEvent()
}

// Submit moves an idle attempt into processing. While processing, further
// submits are rejected, which is what serializes concurrent attempts.
type Submit struct{}

// ValidationFailed keeps the attempt in idle and records per-field errors.
type ValidationFailed struct {
	Errors payments.FieldErrors
}

// PlacementSucceeded finishes a processing attempt.
type PlacementSucceeded struct{}

// PlacementFailed fails a processing attempt.
type PlacementFailed struct{}

// Retry returns a failed attempt to idle for another submit.
type Retry struct{}

func (Submit) isEvent()             {}
func (ValidationFailed) isEvent()   {}
func (PlacementSucceeded) isEvent() {}
func (PlacementFailed) isEvent()    {}
func (Retry) isEvent()              {}

// Transition is the pure reducer over checkout states. Disallowed pairs
// return a state-conflict error and leave the state untouched.
func Transition(state State, event Event) (State, error) {
	switch event := event.(type) {
	case Submit:
		if state.Phase != enums.CheckoutStateIdle {
			return state, transitionError(state.Phase, "submit")
		}
		return State{Phase: enums.CheckoutStateProcessing}, nil

	case ValidationFailed:
		if state.Phase != enums.CheckoutStateIdle {
			return state, transitionError(state.Phase, "validation")
		}
		return State{Phase: enums.CheckoutStateIdle, FieldErrors: event.Errors}, nil

	case PlacementSucceeded:
		if state.Phase != enums.CheckoutStateProcessing {
			return state, transitionError(state.Phase, "placement success")
		}
		return State{Phase: enums.CheckoutStateSuccess}, nil

	case PlacementFailed:
		if state.Phase != enums.CheckoutStateProcessing {
			return state, transitionError(state.Phase, "placement failure")
		}
		return State{Phase: enums.CheckoutStateFailed}, nil

	case Retry:
		if state.Phase != enums.CheckoutStateFailed {
			return state, transitionError(state.Phase, "retry")
		}
		return State{Phase: enums.CheckoutStateIdle}, nil
	}

	return state, pkgerrors.New(pkgerrors.CodeStateConflict, "unknown checkout event")
}

func transitionError(phase enums.CheckoutState, event string) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout cannot accept "+event).
		WithDetails(map[string]string{"state": phase.String()})
}

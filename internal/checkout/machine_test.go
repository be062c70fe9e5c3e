package checkout

import (
	"testing"

	"github.com/aliffarhan/threadmart-backend/internal/payments"
	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
)

func TestTransitionHappyPath(t *testing.T) {
	t.Parallel()

	state := NewState()
	if state.Phase != enums.CheckoutStateIdle {
		t.Fatalf("new state should be idle, got %s", state.Phase)
	}

	state, err := Transition(state, Submit{})
	if err != nil || state.Phase != enums.CheckoutStateProcessing {
		t.Fatalf("submit: %s %v", state.Phase, err)
	}

	state, err = Transition(state, PlacementSucceeded{})
	if err != nil || state.Phase != enums.CheckoutStateSuccess {
		t.Fatalf("placement success: %s %v", state.Phase, err)
	}
}

func TestTransitionValidationFailureStaysIdle(t *testing.T) {
	t.Parallel()

	errs := payments.FieldErrors{"number": "invalid card number"}
	state, err := Transition(NewState(), ValidationFailed{Errors: errs})
	if err != nil {
		t.Fatalf("validation failed event: %v", err)
	}
	if state.Phase != enums.CheckoutStateIdle {
		t.Fatalf("expected idle, got %s", state.Phase)
	}
	if state.FieldErrors["number"] == "" {
		t.Fatalf("field errors not carried: %v", state.FieldErrors)
	}

	// A later submit clears the recorded errors.
	state, err = Transition(state, Submit{})
	if err != nil || len(state.FieldErrors) != 0 {
		t.Fatalf("submit after validation failure: %+v %v", state, err)
	}
}

func TestTransitionFailedRetriesToIdle(t *testing.T) {
	t.Parallel()

	state, _ := Transition(NewState(), Submit{})
	state, err := Transition(state, PlacementFailed{})
	if err != nil || state.Phase != enums.CheckoutStateFailed {
		t.Fatalf("placement failed: %s %v", state.Phase, err)
	}

	state, err = Transition(state, Retry{})
	if err != nil || state.Phase != enums.CheckoutStateIdle {
		t.Fatalf("retry: %s %v", state.Phase, err)
	}

	// The retried attempt can run to success.
	state, _ = Transition(state, Submit{})
	state, err = Transition(state, PlacementSucceeded{})
	if err != nil || state.Phase != enums.CheckoutStateSuccess {
		t.Fatalf("second attempt: %s %v", state.Phase, err)
	}
}

func TestTransitionProcessingGatesSubmits(t *testing.T) {
	t.Parallel()

	state, _ := Transition(NewState(), Submit{})
	next, err := Transition(state, Submit{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if next.Phase != enums.CheckoutStateProcessing {
		t.Fatalf("rejected event must not move the state, got %s", next.Phase)
	}
}

func TestTransitionSuccessIsTerminal(t *testing.T) {
	t.Parallel()

	state, _ := Transition(NewState(), Submit{})
	state, _ = Transition(state, PlacementSucceeded{})

	for name, event := range map[string]Event{
		"submit":     Submit{},
		"validation": ValidationFailed{},
		"success":    PlacementSucceeded{},
		"failure":    PlacementFailed{},
		"retry":      Retry{},
	} {
		next, err := Transition(state, event)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("%s after success: expected state conflict, got %v", name, err)
		}
		if next.Phase != enums.CheckoutStateSuccess {
			t.Fatalf("%s after success moved the state to %s", name, next.Phase)
		}
	}
}

func TestTransitionRejectsOutOfOrderEvents(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		state State
		event Event
	}{
		"retry from idle":        {NewState(), Retry{}},
		"success from idle":      {NewState(), PlacementSucceeded{}},
		"failure from idle":      {NewState(), PlacementFailed{}},
		"validation while busy":  {State{Phase: enums.CheckoutStateProcessing}, ValidationFailed{}},
		"retry while processing": {State{Phase: enums.CheckoutStateProcessing}, Retry{}},
		"submit from failed":     {State{Phase: enums.CheckoutStateFailed}, Submit{}},
	}

	for name, tc := range cases {
		_, err := Transition(tc.state, tc.event)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("%s: expected state conflict, got %v", name, err)
		}
	}
}

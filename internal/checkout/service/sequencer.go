package service

import (
	"fmt"

	checkouterrors "tripdesk/internal/checkout/errors"
	"tripdesk/pkg/model"
)

// nextStep returns the step that follows current for the given travel mode.
// Cab and mixed itineraries have no seats or meals, so review jumps
// straight to special requests.
func nextStep(mode model.TravelMode, current model.CheckoutStep) (model.CheckoutStep, error) {
	switch current {
	case model.StepReview:
		if mode.SeatAndMealEligible() {
			return model.StepSeatSelection, nil
		}
		return model.StepSpecialRequests, nil
	case model.StepSeatSelection:
		return model.StepMealSelection, nil
	case model.StepMealSelection:
		return model.StepSpecialRequests, nil
	case model.StepSpecialRequests:
		return model.StepPayment, nil
	case model.StepPayment:
		return model.StepProcessing, nil
	}
	return "", fmt.Errorf("no transition from step %s", current)
}

// skippable reports whether a step accepts the skip transition. Review must
// be confirmed and payment is driven by the pay operation, never skipped.
func skippable(step model.CheckoutStep) bool {
	switch step {
	case model.StepSeatSelection, model.StepMealSelection, model.StepSpecialRequests:
		return true
	}
	return false
}

// ensureAtStep verifies the session is live and sitting at the expected
// step. Steps are never revisited; there is no backward transition.
func ensureAtStep(session *model.CheckoutSession, step model.CheckoutStep) error {
	if session.Terminated() {
		return checkouterrors.ErrSessionTerminated
	}
	if session.CurrentStep != step {
		return checkouterrors.ErrStepMismatch
	}
	return nil
}

// advance moves the session to the next step in the sequence.
func advance(session *model.CheckoutSession) error {
	next, err := nextStep(session.Option.Mode, session.CurrentStep)
	if err != nil {
		return err
	}
	session.CurrentStep = next
	return nil
}

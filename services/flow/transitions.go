package flow

import "fixora/models"

// The flow is a linear forward path; previous walks the same edges in
// reverse, one step at a time, never skipping.
type transition struct {
	from models.FlowStep
	to   models.FlowStep
}

var forwardTransitions = []transition{
	{from: models.StepServiceDetails, to: models.StepServiceTier},
	{from: models.StepServiceTier, to: models.StepAddressSelection},
}

func nextStep(from models.FlowStep) (models.FlowStep, bool) {
	for _, t := range forwardTransitions {
		if t.from == from {
			return t.to, true
		}
	}
	return from, false
}

func prevStep(from models.FlowStep) (models.FlowStep, bool) {
	for _, t := range forwardTransitions {
		if t.to == from {
			return t.from, true
		}
	}
	return from, false
}

package flow

import (
	"fmt"

	"fixora/models"
)

// TransitionError reports an illegal step move.
type TransitionError struct {
	From   models.FlowStep
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s: %s", e.From, e.Reason)
}

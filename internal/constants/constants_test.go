package constants

import "testing"

func TestSessionStatesAreZeroBased(t *testing.T) {
	states := []SessionState{
		StateChecklist,
		StateHistory,
		StateRules,
		StateConfirmComplete,
		StateCompletionCard,
		StateConfirmReset,
		StateConfirmClearHistory,
	}
	for i, s := range states {
		if int(s) != i {
			t.Errorf("state #%d has value %d, states must be zero-based and sequential", i, s)
		}
	}
}

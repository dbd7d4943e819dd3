package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// WorkflowState – immutable value object
// ---------------------------------------------------------------------------

// WorkflowState represents the wizard step a credit dossier is currently in.
type WorkflowState struct {
	value string
}

const (
	stateSelectingItems      = "SELECTING_ITEMS"
	stateSimulating          = "SIMULATING"
	stateValidating          = "VALIDATING"
	stateCreatingDossier     = "CREATING_DOSSIER"
	stateCollectingDocuments = "COLLECTING_DOCUMENTS"
	stateSubmitted           = "SUBMITTED"
)

var (
	WorkflowStateSelectingItems      = WorkflowState{value: stateSelectingItems}
	WorkflowStateSimulating          = WorkflowState{value: stateSimulating}
	WorkflowStateValidating          = WorkflowState{value: stateValidating}
	WorkflowStateCreatingDossier     = WorkflowState{value: stateCreatingDossier}
	WorkflowStateCollectingDocuments = WorkflowState{value: stateCollectingDocuments}
	WorkflowStateSubmitted           = WorkflowState{value: stateSubmitted}
)

var validWorkflowStates = map[string]WorkflowState{
	stateSelectingItems:      WorkflowStateSelectingItems,
	stateSimulating:          WorkflowStateSimulating,
	stateValidating:          WorkflowStateValidating,
	stateCreatingDossier:     WorkflowStateCreatingDossier,
	stateCollectingDocuments: WorkflowStateCollectingDocuments,
	stateSubmitted:           WorkflowStateSubmitted,
}

// previousWorkflowState maps each state to the state a single Back step
// returns to. SELECTING_ITEMS has no predecessor and SUBMITTED does not allow
// going back at all.
var previousWorkflowState = map[string]WorkflowState{
	stateSimulating:          WorkflowStateSelectingItems,
	stateValidating:          WorkflowStateSimulating,
	stateCreatingDossier:     WorkflowStateValidating,
	stateCollectingDocuments: WorkflowStateCreatingDossier,
}

// NewWorkflowState creates a WorkflowState from a raw string.
func NewWorkflowState(s string) (WorkflowState, error) {
	v, ok := validWorkflowStates[s]
	if !ok {
		return WorkflowState{}, fmt.Errorf("invalid workflow state: %q", s)
	}
	return v, nil
}

// String returns the string representation of the state.
func (s WorkflowState) String() string { return s.value }

// IsZero returns true if the state has not been initialised.
func (s WorkflowState) IsZero() bool { return s.value == "" }

// Equal returns true when both states carry the same value.
func (s WorkflowState) Equal(other WorkflowState) bool { return s.value == other.value }

// IsTerminal reports whether the wizard has finished. Subsequent dossier
// lifecycle (validation or refusal) is tracked by DossierStatus.
func (s WorkflowState) IsTerminal() bool { return s.value == stateSubmitted }

// Previous returns the state one Back step away. ok is false for the initial
// state and for SUBMITTED, from which going back is not allowed.
func (s WorkflowState) Previous() (WorkflowState, bool) {
	prev, ok := previousWorkflowState[s.value]
	return prev, ok
}

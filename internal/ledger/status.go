package ledger

import "copilot-orchestrator/pkg/models"

// Derive computes a delegation's effective status from its stored tag and
// the presence of its paired result record. A result on disk always wins:
// a worker may crash after writing output but before updating its own tag,
// so the tag is never trusted for the terminal state.
func Derive(stored models.DelegationStatus, resultExists bool) models.DelegationStatus {
	if resultExists {
		return models.DelegationComplete
	}
	return stored
}

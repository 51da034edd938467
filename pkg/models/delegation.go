package models

import "time"

// DelegationStatus represents the current state of a delegation.
// The on-disk tag uses the same uppercase literals.
type DelegationStatus string

const (
	// DelegationPending indicates the worker has not picked up the delegation.
	DelegationPending DelegationStatus = "PENDING"
	// DelegationInProgress indicates the worker is actively working.
	DelegationInProgress DelegationStatus = "IN_PROGRESS"
	// DelegationBlocked indicates the worker cannot proceed.
	DelegationBlocked DelegationStatus = "BLOCKED"
	// DelegationComplete indicates a result record exists for the delegation.
	DelegationComplete DelegationStatus = "COMPLETE"
)

// Valid returns true if the status is a known value.
func (s DelegationStatus) Valid() bool {
	switch s {
	case DelegationPending, DelegationInProgress, DelegationBlocked, DelegationComplete:
		return true
	default:
		return false
	}
}

// DelegationContext carries optional supporting material handed to the worker.
type DelegationContext struct {
	// Files lists paths the worker should look at.
	Files []string `yaml:"files,omitempty"`
	// PlanExcerpt is the relevant slice of the topic's plan.
	PlanExcerpt string `yaml:"plan_excerpt,omitempty"`
	// Constraints is free-text guidance the worker must honor.
	Constraints string `yaml:"constraints,omitempty"`
}

// Empty returns true if the context carries no material at all.
func (c DelegationContext) Empty() bool {
	return len(c.Files) == 0 && c.PlanExcerpt == "" && c.Constraints == ""
}

// Delegation represents a unit of work handed to a named worker.
type Delegation struct {
	// ID uniquely identifies the delegation: "<agent>-<epoch-millis>".
	ID string `json:"id"`
	// Agent is the worker identity the delegation is addressed to.
	Agent string `json:"agent"`
	// Task is the natural-language description of the work.
	Task string `json:"task"`
	// Context is the optional supporting material.
	Context DelegationContext `json:"context,omitempty"`
	// ModelTier is the execution tier requested for the worker.
	ModelTier Tier `json:"model_tier"`
	// Status is derived at read time; see ledger.Derive.
	Status DelegationStatus `json:"status"`
	// Created is when the delegation record was written.
	Created time.Time `json:"created"`
	// ResultPath is the path of the paired result record, if one exists.
	ResultPath string `json:"result_path,omitempty"`
}

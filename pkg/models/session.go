package models

import "time"

// Session records which topic is active for a coordinator and under what
// execution tier. At most one session record is persisted per topic; it is
// rewritten whole on every switch.
type Session struct {
	// SessionID is an opaque identifier, supplied by the environment or
	// generated on first activation.
	SessionID string `yaml:"session_id"`
	// Topic is the name of the topic this session belongs to.
	Topic string `yaml:"topic"`
	// Created is set once, on first activation of the topic.
	Created time.Time `yaml:"created"`
	// LastActive is updated on every switch into the topic.
	LastActive time.Time `yaml:"last_active"`
	// CoordinatorModel is the tier the coordinator runs under.
	CoordinatorModel Tier `yaml:"coordinator_model"`
}

// Package registry presents topic listing, creation, and activation on
// top of the store, and holds the process-local active-topic pointer.
// The pointer is explicit per-Registry state: embedding callers can run
// several registries side by side without clobbering each other.
package registry

import (
	"fmt"
	"time"

	"copilot-orchestrator/internal/ledger"
	"copilot-orchestrator/internal/store"
	"copilot-orchestrator/pkg/models"
)

// TopicInfo is one row of a topic listing.
type TopicInfo struct {
	// Name is the topic name.
	Name string
	// PendingDelegations counts delegations whose derived status is not
	// yet COMPLETE.
	PendingDelegations int
	// Active reports whether this is the registry's current topic.
	Active bool
}

// Registry manages topics for one coordinator process.
type Registry struct {
	store  *store.Store
	ledger *ledger.Ledger

	// sessionID identifies this coordinator in session records.
	sessionID string
	// coordinatorTier is recorded on every session write.
	coordinatorTier models.Tier

	// active is the current topic, empty until a create or switch.
	active string

	now func() time.Time
}

// New creates a Registry. The session ID and coordinator tier are fixed
// for the life of the process.
func New(st *store.Store, led *ledger.Ledger, sessionID string, coordinatorTier models.Tier) *Registry {
	return &Registry{
		store:           st,
		ledger:          led,
		sessionID:       sessionID,
		coordinatorTier: coordinatorTier,
		now:             time.Now,
	}
}

// Active returns the current topic name, empty if none has been
// activated in this process.
func (r *Registry) Active() string {
	return r.active
}

// Create scaffolds a new topic, makes it the active topic, and persists
// a fresh session for it. Returns the created file paths alongside the
// loaded topic. Fails with store.ErrTopicExists if the name is taken.
func (r *Registry) Create(name, description string) (*models.Topic, []string, error) {
	created, err := r.store.WriteTopicScaffold(name, description)
	if err != nil {
		return nil, nil, err
	}

	now := r.now()
	session := &models.Session{
		SessionID:        r.sessionID,
		Topic:            name,
		Created:          now,
		LastActive:       now,
		CoordinatorModel: r.coordinatorTier,
	}
	if err := r.store.WriteSession(name, session); err != nil {
		return nil, nil, err
	}
	r.active = name

	topic, err := r.store.ReadTopic(name)
	if err != nil {
		return nil, nil, err
	}
	return topic, created, nil
}

// List reports every stored topic with its outstanding delegation count
// and whether it is this process's active topic.
func (r *Registry) List() ([]TopicInfo, error) {
	names, err := r.store.TopicNames()
	if err != nil {
		return nil, err
	}

	infos := make([]TopicInfo, 0, len(names))
	for _, name := range names {
		delegations, err := r.ledger.ListForTopic(name, "")
		if err != nil {
			return nil, fmt.Errorf("counting delegations for topic %q: %w", name, err)
		}
		pending := 0
		for _, d := range delegations {
			if d.Status != models.DelegationComplete {
				pending++
			}
		}
		infos = append(infos, TopicInfo{
			Name:               name,
			PendingDelegations: pending,
			Active:             name == r.active,
		})
	}
	return infos, nil
}

// SwitchTo activates a topic. A missing topic yields (nil, nil) so the
// caller can present a friendly message rather than a fault. On success
// the session record is rewritten with an updated last_active, preserving
// the original created timestamp from any pre-existing session.
func (r *Registry) SwitchTo(name string) (*models.Topic, error) {
	topic, err := r.store.ReadTopic(name)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, nil
	}

	now := r.now()
	session := &models.Session{
		SessionID:        r.sessionID,
		Topic:            name,
		Created:          now,
		LastActive:       now,
		CoordinatorModel: r.coordinatorTier,
	}
	if topic.Session != nil && !topic.Session.Created.IsZero() {
		session.Created = topic.Session.Created
	}
	if err := r.store.WriteSession(name, session); err != nil {
		return nil, err
	}

	r.active = name
	topic.Session = session
	return topic, nil
}

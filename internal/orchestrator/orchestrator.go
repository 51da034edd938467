// Package orchestrator exposes the caller-facing operation set: create
// topic, list topics, switch topic, delegate, and check delegations.
// Each operation validates its input, drives the registry and ledger,
// and renders a textual summary. The façade is the boundary that
// guarantees every operation returns a Response, never an error.
package orchestrator

import (
	"errors"
	"strings"

	"copilot-orchestrator/internal/config"
	"copilot-orchestrator/internal/ledger"
	"copilot-orchestrator/internal/registry"
	"copilot-orchestrator/internal/store"
	"copilot-orchestrator/pkg/models"
)

// Orchestrator composes the registry and ledger over one store.
type Orchestrator struct {
	cfg      *config.Config
	store    *store.Store
	registry *registry.Registry
	ledger   *ledger.Ledger
}

// New creates an Orchestrator from configuration.
func New(cfg *config.Config) *Orchestrator {
	st := store.New(cfg.TopicsDir)
	led := ledger.New(st)
	reg := registry.New(st, led, cfg.SessionID, cfg.CoordinatorTier())
	return &Orchestrator{
		cfg:      cfg,
		store:    st,
		registry: reg,
		ledger:   led,
	}
}

// ActiveTopic returns the current active topic, empty if none.
func (o *Orchestrator) ActiveTopic() string {
	return o.registry.Active()
}

// DelegationsDir returns the delegations directory for a topic.
func (o *Orchestrator) DelegationsDir(topic string) string {
	return o.store.DelegationsDir(topic)
}

// CreateTopic scaffolds a new topic and makes it active.
func (o *Orchestrator) CreateTopic(name, description string) Response {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("topic name is required")
	}
	if strings.ContainsAny(name, "/\\") || strings.HasPrefix(name, ".") {
		return invalid("topic name %q is not a valid directory name", name)
	}

	topic, created, err := o.registry.Create(name, description)
	if err != nil {
		if errors.Is(err, store.ErrTopicExists) {
			return conflict("topic %q already exists. Switch to it with the switch operation, or pick another name.", name)
		}
		return failed(err)
	}
	return ok("%s", renderCreated(topic, created))
}

// ListTopics reports every stored topic with its outstanding delegation
// count and active flag.
func (o *Orchestrator) ListTopics() Response {
	infos, err := o.registry.List()
	if err != nil {
		return failed(err)
	}
	if len(infos) == 0 {
		return ok("No topics yet. Create one with the create operation.")
	}
	return ok("%s", renderTopicTable(infos))
}

// SwitchTopic activates a topic and returns its digest: a bounded plan
// preview, task progress, and delegations grouped by derived status.
func (o *Orchestrator) SwitchTopic(name string) Response {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("topic name is required")
	}

	topic, err := o.registry.SwitchTo(name)
	if err != nil {
		return failed(err)
	}
	if topic == nil {
		return notFound("topic %q not found. Use the list operation to see available topics.", name)
	}

	delegations, err := o.ledger.ListForTopic(name, "")
	if err != nil {
		return failed(err)
	}
	return ok("%s", renderDigest(topic, delegations, o.cfg.Display.PlanPreviewChars))
}

// DelegateRequest carries the inputs of a DelegateTo call.
type DelegateRequest struct {
	// Agent is the worker identity. Required.
	Agent string
	// Task is the natural-language work description. Required.
	Task string
	// Context is optional supporting material for the worker.
	Context models.DelegationContext
	// ModelTier defaults to the configured delegation tier when empty.
	ModelTier models.Tier
	// Blocking requests synchronous waiting. It is advisory in this
	// core: the flag is acknowledged in the summary, and true waiting is
	// provided by the separate watch operation.
	Blocking bool
}

// DelegateTo writes a delegation record for the active topic. It fails
// fast, before any filesystem write, when no topic is active. A missing
// worker definition only annotates the summary with a warning.
func (o *Orchestrator) DelegateTo(req DelegateRequest) Response {
	agent := strings.TrimSpace(req.Agent)
	if agent == "" {
		return invalid("agent is required")
	}
	if strings.TrimSpace(req.Task) == "" {
		return invalid("task is required")
	}

	topic := o.registry.Active()
	if topic == "" {
		return precondition("no active topic. Create or switch to a topic before delegating.")
	}

	tier := req.ModelTier
	if tier == "" {
		tier = o.cfg.DelegationTier()
	}
	if !tier.Valid() {
		return invalid("unknown model tier %q (expected premium, standard, or cheap)", tier)
	}

	var warning string
	if !store.Exists(o.cfg.WorkerDefinitionPath(agent)) {
		warning = "no worker definition found for " + agent + "; the delegation was recorded anyway"
	}

	d, err := o.ledger.Create(topic, agent, req.Task, req.Context, tier)
	if err != nil {
		return failed(err)
	}
	return ok("%s", renderDelegated(topic, d, warning, req.Blocking))
}

// CheckDelegations reports a topic's delegations grouped by derived
// status, optionally filtered by agent. The topic defaults to the active
// one; with neither available the caller is told which operation to run
// first.
func (o *Orchestrator) CheckDelegations(topicName, agentFilter string) Response {
	topicName = strings.TrimSpace(topicName)
	if topicName == "" {
		topicName = o.registry.Active()
	}
	if topicName == "" {
		return precondition("no active topic and none specified. Create or switch to a topic, or pass a topic name.")
	}

	if !store.Exists(o.store.TopicDir(topicName)) {
		return notFound("topic %q not found. Use the list operation to see available topics.", topicName)
	}

	delegations, err := o.ledger.ListForTopic(topicName, agentFilter)
	if err != nil {
		return failed(err)
	}
	if len(delegations) == 0 {
		if agentFilter != "" {
			return ok("No delegations for agent %q in topic %q.", agentFilter, topicName)
		}
		return ok("No delegations yet for topic %q.", topicName)
	}
	return ok("%s", renderDelegationReport(topicName, delegations))
}

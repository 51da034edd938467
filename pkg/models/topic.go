package models

// Topic is a named, isolated unit of work with its own plan, task list,
// session record, and delegations.
type Topic struct {
	// Name is the caller-chosen unique identifier, used as a directory name.
	Name string `json:"name"`
	// Path is the topic's directory under the store root.
	Path string `json:"path"`
	// Plan is the free-form plan text, empty if plan.md is absent.
	Plan string `json:"plan,omitempty"`
	// Tasks is the free-form checklist text, empty if tasks.md is absent.
	Tasks string `json:"tasks,omitempty"`
	// Session is the persisted session record, nil if none exists.
	Session *Session `json:"session,omitempty"`
}

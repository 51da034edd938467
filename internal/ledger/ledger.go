// Package ledger creates delegation records and reports their derived
// status. Delegations live one-per-file under a topic's delegations
// directory; completion is signaled by a paired result file written by
// the external worker.
package ledger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"copilot-orchestrator/internal/store"
	"copilot-orchestrator/pkg/models"
)

const (
	recordExt    = ".md"
	resultMarker = ".result"
)

// Ledger manages delegation records for topics in a single store.
type Ledger struct {
	store *store.Store

	// now is the clock used for delegation IDs.
	now func() time.Time
}

// New creates a Ledger over the given store.
func New(st *store.Store) *Ledger {
	return &Ledger{
		store: st,
		now:   time.Now,
	}
}

// recordMeta is the typed front-matter schema of a delegation record.
type recordMeta struct {
	Status    models.DelegationStatus   `yaml:"status"`
	Task      string                    `yaml:"task"`
	Agent     string                    `yaml:"agent"`
	ModelTier models.Tier               `yaml:"model_tier"`
	Created   time.Time                 `yaml:"created"`
	Context   *models.DelegationContext `yaml:"context,omitempty"`
}

// Create writes a new delegation record under the topic's delegations
// directory and returns the in-memory record. The on-disk tag always
// starts as PENDING; the external worker rewrites it from there.
//
// The ID is derived from the agent name and creation time in epoch
// milliseconds. If two delegations to the same agent land in the same
// millisecond, the timestamp is bumped until a free filename is found.
func (l *Ledger) Create(topicName, agent, task string, context models.DelegationContext, tier models.Tier) (*models.Delegation, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("unknown model tier %q", tier)
	}

	dir := l.store.DelegationsDir(topicName)
	if err := store.EnsureDir(dir); err != nil {
		return nil, err
	}

	created := l.now()
	millis := created.UnixMilli()
	var id, path string
	for {
		id = fmt.Sprintf("%s-%d", agent, millis)
		path = filepath.Join(dir, id+recordExt)
		if !store.Exists(path) {
			break
		}
		millis++
	}

	d := &models.Delegation{
		ID:        id,
		Agent:     agent,
		Task:      task,
		Context:   context,
		ModelTier: tier,
		Status:    models.DelegationPending,
		Created:   created,
	}

	data, err := encodeRecord(d)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("writing delegation %s: %w", path, err)
	}
	return d, nil
}

// ListForTopic enumerates the delegations of a topic, optionally filtered
// by agent, with the derived status applied to each. Files that do not
// match the naming contract, and records whose content fails to parse,
// are skipped so one malformed entry never hides the rest; a worker may
// be mid-write at any time.
func (l *Ledger) ListForTopic(topicName, agentFilter string) ([]models.Delegation, error) {
	dir := l.store.DelegationsDir(topicName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing delegations for topic %q: %w", topicName, err)
	}

	var delegations []models.Delegation
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		agent, ok := parseRecordName(entry.Name())
		if !ok {
			continue
		}
		if agentFilter != "" && agent != agentFilter {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		d, err := readRecord(path, agent)
		if err != nil {
			log.Printf("[ledger] warning: skipping malformed delegation %s: %v", path, err)
			continue
		}

		resultPath := ResultPath(path)
		if store.Exists(resultPath) {
			d.ResultPath = resultPath
		}
		d.Status = Derive(d.Status, d.ResultPath != "")
		delegations = append(delegations, *d)
	}

	sort.Slice(delegations, func(i, j int) bool {
		return delegations[i].Created.Before(delegations[j].Created)
	})
	return delegations, nil
}

// ResultPath returns the result-record path paired with a delegation
// record path: the same name with ".result" inserted before the extension.
func ResultPath(recordPath string) string {
	return strings.TrimSuffix(recordPath, recordExt) + resultMarker + recordExt
}

// parseRecordName checks a filename against the delegation naming
// contract `<agent>-<epoch-millis>.md` and extracts the agent. Result
// files and anything else that does not match are rejected.
func parseRecordName(name string) (agent string, ok bool) {
	if !strings.HasSuffix(name, recordExt) {
		return "", false
	}
	base := strings.TrimSuffix(name, recordExt)
	if strings.HasSuffix(base, resultMarker) {
		return "", false
	}
	// The agent name may itself contain hyphens; the timestamp is
	// everything after the last one.
	i := strings.LastIndex(base, "-")
	if i <= 0 || i == len(base)-1 {
		return "", false
	}
	if _, err := strconv.ParseInt(base[i+1:], 10, 64); err != nil {
		return "", false
	}
	return base[:i], true
}

// readRecord loads and validates a single delegation record. The agent
// comes from the filename; the stored tag and remaining fields come from
// the front matter.
func readRecord(path, agent string) (*models.Delegation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	metaBytes, _, err := store.SplitFrontMatter(data)
	if err != nil {
		return nil, err
	}

	var meta recordMeta
	if err := yaml.Unmarshal(metaBytes, &meta); err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}
	if !meta.Status.Valid() {
		return nil, fmt.Errorf("unknown status tag %q", meta.Status)
	}

	d := &models.Delegation{
		ID:        strings.TrimSuffix(filepath.Base(path), recordExt),
		Agent:     agent,
		Task:      meta.Task,
		ModelTier: meta.ModelTier,
		Status:    meta.Status,
		Created:   meta.Created,
	}
	if meta.Context != nil {
		d.Context = *meta.Context
	}
	return d, nil
}

// encodeRecord renders a delegation as YAML front matter followed by a
// human-readable body carrying the same fields.
func encodeRecord(d *models.Delegation) ([]byte, error) {
	meta := recordMeta{
		Status:    d.Status,
		Task:      d.Task,
		Agent:     d.Agent,
		ModelTier: d.ModelTier,
		Created:   d.Created,
	}
	if !d.Context.Empty() {
		ctx := d.Context
		meta.Context = &ctx
	}

	metaBytes, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encoding delegation %s: %w", d.ID, err)
	}
	return store.JoinFrontMatter(metaBytes, []byte(renderBody(d))), nil
}

func renderBody(d *models.Delegation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n# Delegation: %s\n\n", d.Agent)
	fmt.Fprintf(&b, "**Task**: %s\n\n", d.Task)
	fmt.Fprintf(&b, "**Model tier**: %s\n\n", d.ModelTier)
	fmt.Fprintf(&b, "**Created**: %s\n", d.Created.Format(time.RFC3339))

	if !d.Context.Empty() {
		b.WriteString("\n## Context\n")
		if len(d.Context.Files) > 0 {
			b.WriteString("\nFiles:\n")
			for _, f := range d.Context.Files {
				fmt.Fprintf(&b, "- %s\n", f)
			}
		}
		if d.Context.PlanExcerpt != "" {
			fmt.Fprintf(&b, "\nPlan excerpt:\n\n%s\n", strings.TrimRight(d.Context.PlanExcerpt, "\n"))
		}
		if d.Context.Constraints != "" {
			fmt.Fprintf(&b, "\nConstraints: %s\n", d.Context.Constraints)
		}
	}
	return b.String()
}

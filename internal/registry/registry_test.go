package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"copilot-orchestrator/internal/ledger"
	"copilot-orchestrator/internal/store"
	"copilot-orchestrator/pkg/models"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	st := store.New(t.TempDir())
	return New(st, ledger.New(st), "sess-test", models.TierPremium)
}

func TestCreateActivatesTopic(t *testing.T) {
	r := newTestRegistry(t)

	if r.Active() != "" {
		t.Fatalf("fresh registry has active topic %q", r.Active())
	}

	topic, created, err := r.Create("auth-refactor", "add OAuth")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if topic == nil {
		t.Fatal("expected topic, got nil")
	}
	if len(created) == 0 {
		t.Error("expected created file paths")
	}
	if r.Active() != "auth-refactor" {
		t.Errorf("active topic = %q, want auth-refactor", r.Active())
	}
	if topic.Session == nil {
		t.Fatal("expected session to be persisted on create")
	}
	if topic.Session.CoordinatorModel != models.TierPremium {
		t.Errorf("coordinator tier = %q, want premium", topic.Session.CoordinatorModel)
	}
	if !topic.Session.Created.Equal(topic.Session.LastActive) {
		t.Error("expected created == last_active on first activation")
	}
}

func TestCreateDuplicateFails(t *testing.T) {
	r := newTestRegistry(t)

	if _, _, err := r.Create("t1", ""); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, _, err := r.Create("t1", "")
	if !errors.Is(err, store.ErrTopicExists) {
		t.Fatalf("expected ErrTopicExists, got %v", err)
	}
	// The failed attempt must not steal the active pointer.
	if r.Active() != "t1" {
		t.Errorf("active topic = %q, want t1", r.Active())
	}
}

func TestListFreshTopic(t *testing.T) {
	r := newTestRegistry(t)

	if _, _, err := r.Create("auth-refactor", "add OAuth"); err != nil {
		t.Fatalf("create: %v", err)
	}

	infos, err := r.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(infos))
	}
	info := infos[0]
	if info.Name != "auth-refactor" {
		t.Errorf("name = %q", info.Name)
	}
	if info.PendingDelegations != 0 {
		t.Errorf("pending = %d, want 0", info.PendingDelegations)
	}
	if !info.Active {
		t.Error("expected topic to be active")
	}
}

func TestListCountsOutstandingDelegations(t *testing.T) {
	st := store.New(t.TempDir())
	led := ledger.New(st)
	r := New(st, led, "sess-test", models.TierPremium)

	if _, _, err := r.Create("t1", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	d1, err := led.Create("t1", "swift6", "a", models.DelegationContext{}, models.TierCheap)
	if err != nil {
		t.Fatalf("delegate: %v", err)
	}
	if _, err := led.Create("t1", "testing", "b", models.DelegationContext{}, models.TierCheap); err != nil {
		t.Fatalf("delegate: %v", err)
	}

	infos, err := r.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if infos[0].PendingDelegations != 2 {
		t.Errorf("pending = %d, want 2", infos[0].PendingDelegations)
	}

	// Completing one via its result file drops the count.
	recordPath := filepath.Join(st.DelegationsDir("t1"), d1.ID+".md")
	if err := writeFile(ledger.ResultPath(recordPath), "done\n"); err != nil {
		t.Fatalf("write result: %v", err)
	}
	infos, err = r.List()
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if infos[0].PendingDelegations != 1 {
		t.Errorf("pending after result = %d, want 1", infos[0].PendingDelegations)
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestSwitchToMissingTopic(t *testing.T) {
	r := newTestRegistry(t)

	topic, err := r.SwitchTo("ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topic != nil {
		t.Errorf("expected nil topic, got %+v", topic)
	}
	if r.Active() != "" {
		t.Errorf("failed switch must not set active topic, got %q", r.Active())
	}
}

func TestSwitchPreservesCreated(t *testing.T) {
	r := newTestRegistry(t)

	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(45 * time.Minute)
	r.now = func() time.Time { return t0 }

	if _, _, err := r.Create("t1", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	r.now = func() time.Time { return t1 }
	topic, err := r.SwitchTo("t1")
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if topic == nil {
		t.Fatal("expected topic")
	}
	if !topic.Session.Created.Equal(t0) {
		t.Errorf("created = %v, want %v", topic.Session.Created, t0)
	}
	if !topic.Session.LastActive.Equal(t1) {
		t.Errorf("last_active = %v, want %v", topic.Session.LastActive, t1)
	}
}

func TestSwitchBetweenTopics(t *testing.T) {
	r := newTestRegistry(t)

	if _, _, err := r.Create("a", ""); err != nil {
		t.Fatalf("create a: %v", err)
	}
	if _, _, err := r.Create("b", ""); err != nil {
		t.Fatalf("create b: %v", err)
	}
	if r.Active() != "b" {
		t.Fatalf("active = %q, want b", r.Active())
	}

	if _, err := r.SwitchTo("a"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if r.Active() != "a" {
		t.Errorf("active = %q, want a", r.Active())
	}
}

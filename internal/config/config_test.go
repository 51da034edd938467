package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"copilot-orchestrator/pkg/models"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.TopicsDir == "" {
		t.Error("expected a default topics dir")
	}
	if !strings.HasSuffix(cfg.AgentsDir, "agents") {
		t.Errorf("expected agents dir under the config root, got %q", cfg.AgentsDir)
	}
	if cfg.SessionID == "" {
		t.Error("expected a generated session ID")
	}
	if cfg.CoordinatorTier() != models.TierPremium {
		t.Errorf("coordinator tier = %q, want premium", cfg.CoordinatorTier())
	}
	if cfg.DelegationTier() != models.TierCheap {
		t.Errorf("delegation tier = %q, want cheap", cfg.DelegationTier())
	}
	if cfg.Display.PlanPreviewChars != 400 {
		t.Errorf("plan preview chars = %d, want 400", cfg.Display.PlanPreviewChars)
	}
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
topics_dir: /srv/orchestrator/topics
agents_dir: /srv/orchestrator/agents
session_id: sess-fixed
coordinator:
  model: standard
delegation:
  default_tier: standard
display:
  plan_preview_chars: 200
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.TopicsDir != "/srv/orchestrator/topics" {
		t.Errorf("topics dir = %q", cfg.TopicsDir)
	}
	if cfg.SessionID != "sess-fixed" {
		t.Errorf("session id = %q", cfg.SessionID)
	}
	if cfg.CoordinatorTier() != models.TierStandard {
		t.Errorf("coordinator tier = %q, want standard", cfg.CoordinatorTier())
	}
	if cfg.DelegationTier() != models.TierStandard {
		t.Errorf("delegation tier = %q, want standard", cfg.DelegationTier())
	}
	if cfg.Display.PlanPreviewChars != 200 {
		t.Errorf("plan preview chars = %d, want 200", cfg.Display.PlanPreviewChars)
	}
}

func TestTierFallbacks(t *testing.T) {
	cfg := &Config{
		Coordinator: CoordinatorConfig{Model: "opus"},
		Delegation:  DelegationConfig{DefaultTier: "free"},
	}
	if cfg.CoordinatorTier() != models.DefaultCoordinatorTier {
		t.Errorf("coordinator tier = %q, want default", cfg.CoordinatorTier())
	}
	if cfg.DelegationTier() != models.DefaultDelegationTier {
		t.Errorf("delegation tier = %q, want default", cfg.DelegationTier())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvTopicsDir, "/tmp/env-topics")
	t.Setenv(EnvAgentsDir, "/tmp/env-agents")
	t.Setenv(EnvSessionID, "sess-env")
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TopicsDir != "/tmp/env-topics" {
		t.Errorf("topics dir = %q", cfg.TopicsDir)
	}
	if cfg.AgentsDir != "/tmp/env-agents" {
		t.Errorf("agents dir = %q", cfg.AgentsDir)
	}
	if cfg.SessionID != "sess-env" {
		t.Errorf("session id = %q", cfg.SessionID)
	}
}

func TestWorkerDefinitionPath(t *testing.T) {
	cfg := &Config{AgentsDir: "/srv/agents"}
	got := cfg.WorkerDefinitionPath("swift6")
	want := filepath.Join("/srv/agents", "swift6.agent.md")
	if got != want {
		t.Errorf("worker definition path = %q, want %q", got, want)
	}
}

// Package store translates between the on-disk directory tree and typed
// in-memory records. It carries no policy: every read re-parses from disk
// and every write is a whole-file replace.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"copilot-orchestrator/pkg/models"
)

const (
	// DelegationsDirName is the per-topic subdirectory holding delegation
	// and result records.
	DelegationsDirName = "delegations"
	// SessionFileName is the per-topic session record.
	SessionFileName = "session.yaml"
	// PlanFileName is the per-topic plan document.
	PlanFileName = "plan.md"
	// TasksFileName is the per-topic checklist document.
	TasksFileName = "tasks.md"

	// reservedPrefix marks store-root entries that are not topics.
	reservedPrefix = "."
)

// ErrTopicExists is returned when scaffolding a topic whose directory
// already exists. Creation never silently overwrites in-progress work.
var ErrTopicExists = errors.New("topic already exists")

// Store reads and writes the topic tree rooted at a single directory.
type Store struct {
	root string
}

// New creates a Store over the given root directory. The root itself is
// created lazily on the first write.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// TopicDir returns the directory for a topic.
func (s *Store) TopicDir(name string) string {
	return filepath.Join(s.root, name)
}

// DelegationsDir returns the delegations directory for a topic.
func (s *Store) DelegationsDir(name string) string {
	return filepath.Join(s.root, name, DelegationsDirName)
}

// SessionPath returns the session file path for a topic.
func (s *Store) SessionPath(name string) string {
	return filepath.Join(s.root, name, SessionFileName)
}

// EnsureDir creates a directory and any missing parents. It succeeds if
// the directory already exists.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a path exists. Access errors are swallowed into
// false: existence probes are a common-case operation, not a place to
// surface permission faults.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// TopicNames lists the immediate subdirectories of the store root,
// excluding reserved (hidden/internal) entries. A missing root yields an
// empty list, not an error.
func (s *Store) TopicNames() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing store root %s: %w", s.root, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), reservedPrefix) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// ReadTopic loads a topic's plan, tasks, and session record. Missing
// optional files yield absent fields, not errors. Returns nil if the
// topic directory does not exist.
func (s *Store) ReadTopic(name string) (*models.Topic, error) {
	dir := s.TopicDir(name)
	if !Exists(dir) {
		return nil, nil
	}

	topic := &models.Topic{
		Name: name,
		Path: dir,
	}

	plan, err := readOptionalFile(filepath.Join(dir, PlanFileName))
	if err != nil {
		return nil, err
	}
	topic.Plan = plan

	tasks, err := readOptionalFile(filepath.Join(dir, TasksFileName))
	if err != nil {
		return nil, err
	}
	topic.Tasks = tasks

	session, err := s.ReadSession(name)
	if err != nil {
		return nil, err
	}
	topic.Session = session

	return topic, nil
}

// WriteTopicScaffold creates the topic directory, its delegations
// subdirectory, and the initial plan and tasks templates. It fails with
// ErrTopicExists if the topic directory is already present, and returns
// the paths of the files it created.
func (s *Store) WriteTopicScaffold(name, description string) ([]string, error) {
	dir := s.TopicDir(name)
	if Exists(dir) {
		return nil, fmt.Errorf("topic %q: %w", name, ErrTopicExists)
	}

	if err := EnsureDir(s.root); err != nil {
		return nil, err
	}
	if err := os.Mkdir(dir, 0755); err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("topic %q: %w", name, ErrTopicExists)
		}
		return nil, fmt.Errorf("creating topic directory %s: %w", dir, err)
	}
	if err := EnsureDir(s.DelegationsDir(name)); err != nil {
		return nil, err
	}

	planPath := filepath.Join(dir, PlanFileName)
	if err := os.WriteFile(planPath, []byte(planTemplate(name, description)), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", planPath, err)
	}

	tasksPath := filepath.Join(dir, TasksFileName)
	if err := os.WriteFile(tasksPath, []byte(tasksTemplate(name)), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", tasksPath, err)
	}

	return []string{planPath, tasksPath, s.DelegationsDir(name)}, nil
}

// WriteSession serializes the session record into the topic's session
// file, fully overwriting any previous content. Last writer wins.
func (s *Store) WriteSession(name string, session *models.Session) error {
	data, err := yaml.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session for topic %q: %w", name, err)
	}
	path := s.SessionPath(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadSession loads the session record for a topic. Returns nil if no
// session file exists.
func (s *Store) ReadSession(name string) (*models.Session, error) {
	path := s.SessionPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var session models.Session
	if err := yaml.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &session, nil
}

// readOptionalFile returns the file's content, or empty if it is absent.
func readOptionalFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func planTemplate(name, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Plan: %s\n\n", name)
	if description != "" {
		fmt.Fprintf(&b, "%s\n\n", description)
	}
	b.WriteString("## Intended changes\n\n")
	b.WriteString("_Describe the changes this topic will make._\n")
	return b.String()
}

func tasksTemplate(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Tasks: %s\n\n", name)
	b.WriteString("- [ ] Flesh out the plan\n")
	return b.String()
}

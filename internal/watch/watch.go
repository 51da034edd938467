// Package watch blocks until a delegation's result record appears.
// Delegations are handed off through the filesystem, so waiting is just
// watching the topic's delegations directory for the paired result file.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"copilot-orchestrator/internal/ledger"
	"copilot-orchestrator/internal/store"
)

// ErrTimeout indicates the result did not appear within the deadline.
var ErrTimeout = errors.New("watch: timed out waiting for result")

// pollInterval is the re-stat fallback for writes fsnotify can miss
// (e.g. results written over NFS or by a renaming editor).
const pollInterval = 500 * time.Millisecond

// ForResult waits until the result record paired with the given
// delegation exists under dir. It returns the result path on success,
// ErrTimeout after the timeout, or the context's error if it is
// canceled first. A result that already exists returns immediately.
func ForResult(ctx context.Context, dir, delegationID string, timeout time.Duration) (string, error) {
	resultPath := ledger.ResultPath(filepath.Join(dir, delegationID+".md"))
	if store.Exists(resultPath) {
		return resultPath, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return "", fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return "", fmt.Errorf("watching %s: %w", dir, err)
	}

	// The result may have landed between the first check and the watch
	// registration.
	if store.Exists(resultPath) {
		return resultPath, nil
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-deadline.C:
			return "", ErrTimeout
		case <-poll.C:
			if store.Exists(resultPath) {
				return resultPath, nil
			}
		case event, ok := <-watcher.Events:
			if !ok {
				return "", errors.New("watch: event channel closed")
			}
			if event.Name == resultPath && store.Exists(resultPath) {
				return resultPath, nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return "", errors.New("watch: error channel closed")
			}
			return "", fmt.Errorf("watching %s: %w", dir, err)
		}
	}
}

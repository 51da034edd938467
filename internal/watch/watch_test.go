package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestForResultAlreadyPresent(t *testing.T) {
	dir := t.TempDir()
	resultPath := filepath.Join(dir, "swift6-1772400000000.result.md")
	if err := os.WriteFile(resultPath, []byte("done\n"), 0644); err != nil {
		t.Fatalf("write result: %v", err)
	}

	got, err := ForResult(context.Background(), dir, "swift6-1772400000000", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != resultPath {
		t.Errorf("result path = %q, want %q", got, resultPath)
	}
}

func TestForResultAppears(t *testing.T) {
	dir := t.TempDir()
	resultPath := filepath.Join(dir, "swift6-1772400000000.result.md")

	go func() {
		time.Sleep(100 * time.Millisecond)
		os.WriteFile(resultPath, []byte("done\n"), 0644)
	}()

	got, err := ForResult(context.Background(), dir, "swift6-1772400000000", 5*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != resultPath {
		t.Errorf("result path = %q, want %q", got, resultPath)
	}
}

func TestForResultTimeout(t *testing.T) {
	dir := t.TempDir()

	_, err := ForResult(context.Background(), dir, "swift6-1772400000000", 150*time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestForResultCanceled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := ForResult(ctx, dir, "swift6-1772400000000", 5*time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

package server

import (
	"errors"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/dd0wney/cluso-chaintrace/pkg/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGracefulServer_Reload(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), logging.NewNopLogger())

	reloadCalled := false
	gs.SetReloadFunc(func() error {
		reloadCalled = true
		return nil
	})

	if err := gs.Reload(); err != nil {
		t.Errorf("Reload() error = %v", err)
	}
	if !reloadCalled {
		t.Error("Reload function was not called")
	}
}

func TestGracefulServer_ReloadError(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), logging.NewNopLogger())

	boom := errors.New("manifest is broken")
	gs.SetReloadFunc(func() error { return boom })

	if err := gs.Reload(); !errors.Is(err, boom) {
		t.Errorf("Expected reload error propagated, got %v", err)
	}
}

func TestGracefulServer_ReloadWithoutFunc(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), logging.NewNopLogger())

	if err := gs.Reload(); err != nil {
		t.Errorf("Reload without a function should be a no-op, got %v", err)
	}
}

// TestGracefulServer_SIGHUPDoesNotShutDown verifies a reload signal leaves
// the server running.
func TestGracefulServer_SIGHUPDoesNotShutDown(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), logging.NewNopLogger())

	go func() {
		if err := gs.Start(); err != nil {
			t.Logf("Server stopped: %v", err)
		}
	}()

	time.Sleep(100 * time.Millisecond)

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGHUP); err != nil {
		t.Fatalf("Failed to send SIGHUP: %v", err)
	}

	time.Sleep(200 * time.Millisecond)

	if gs.IsShuttingDown() {
		t.Error("Server should not be shutting down after SIGHUP")
	}

	if err := gs.Shutdown(time.Second); err != nil {
		t.Errorf("Shutdown error: %v", err)
	}
}

func TestGracefulServer_ShutdownIdempotent(t *testing.T) {
	gs := NewGracefulServer(":0", okHandler(), logging.NewNopLogger())

	if err := gs.Shutdown(time.Second); err != nil {
		t.Errorf("First shutdown error: %v", err)
	}
	if err := gs.Shutdown(time.Second); err != nil {
		t.Errorf("Second shutdown should be a no-op, got %v", err)
	}
	if !gs.IsShuttingDown() {
		t.Error("IsShuttingDown should report true after Shutdown")
	}
}

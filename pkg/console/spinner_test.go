package console

import (
	"testing"
	"time"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Checking files")
	if s == nil {
		t.Fatal("NewSpinner returned nil")
	}

	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop()
}

func TestSpinnerIsEnabled(t *testing.T) {
	s := NewSpinner("Checking files")
	// Test output is never a terminal, so the spinner stays disabled and
	// callers fall back to plain progress lines.
	if s.IsEnabled() {
		t.Error("IsEnabled = true outside a TTY")
	}
	if s.spinner != nil {
		t.Error("disabled spinner must not allocate the underlying animation")
	}
}

func TestSpinnerUpdateMessage(t *testing.T) {
	s := NewSpinner("Initial")

	// Must not panic when the spinner is disabled outside a TTY.
	s.UpdateMessage("Updated")

	s.Start()
	s.UpdateMessage("Running")
	s.Stop()
}

// Package clipboard wraps OS clipboard access behind a small interface so
// the monitor and the re-copy action can be tested without a display server.
package clipboard

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard is the external collaborator providing text clipboard access.
// Implementations are treated as unreliable and possibly slow; callers must
// not let a single failure propagate as fatal.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// System reads and writes the OS clipboard.
type System struct{}

// NewSystem returns the OS clipboard.
func NewSystem() *System {
	return &System{}
}

// Read returns the current clipboard text.
func (s *System) Read() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("clipboard operations not supported on %s", runtime.GOOS)
	}
	return clipboard.ReadAll()
}

// Write replaces the clipboard text.
func (s *System) Write(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard operations not supported on %s", runtime.GOOS)
	}
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard used by tests.
type Memory struct {
	mu      sync.Mutex
	text    string
	readErr error
}

// NewMemory returns a Memory clipboard holding the given initial text.
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

// Read returns the stored text, or the configured error.
func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return "", m.readErr
	}
	return m.text, nil
}

// Write replaces the stored text.
func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// FailReads makes subsequent reads return err (nil restores normal reads).
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// Package executor runs external commands behind an interface so callers can be tested.
package executor

import (
	"context"
	"os/exec"
)

// Executor defines the interface for running system commands.
type Executor interface {
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultExecutor is the standard implementation using os/exec.
type DefaultExecutor struct{}

func (e *DefaultExecutor) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// MockExecutor is a mock implementation of Executor for testing.
type MockExecutor struct {
	CombinedOutputFunc func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func (m *MockExecutor) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	if m.CombinedOutputFunc != nil {
		return m.CombinedOutputFunc(ctx, name, args...)
	}
	return []byte{}, nil
}

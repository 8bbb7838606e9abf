package git

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// OperationRecord records details of a git operation.
type OperationRecord struct {
	// Operation is the name of the operation (clone, pull, checkout,
	// local_head, remote_head).
	Operation string

	// URL is the repository URL (for clone and remote_head operations).
	URL string

	// Dir is the directory path (for pull, checkout and local_head operations).
	Dir string

	// Dest is the destination path (for clone operations).
	Dest string

	// Ref is the ref being checked out (for checkout operations).
	Ref string

	// Options are the clone options (for clone operations).
	Options *CloneOptions
}

// MockOperations is a mock implementation of Operations for testing.
type MockOperations struct {
	mu sync.Mutex

	// Operations records all operations performed.
	Operations []OperationRecord

	// CloneError controls the error returned by Clone. When CloneErrors has
	// an entry for the URL, that takes precedence.
	CloneError  error
	CloneErrors map[string]error

	// CloneFunc, when set, replaces the default Clone behavior entirely.
	// The call is still recorded.
	CloneFunc func(ctx context.Context, url, dest string, opts CloneOptions) error

	// PullError controls the error returned by Pull; PullErrors is keyed by dir.
	PullError  error
	PullErrors map[string]error

	// CheckoutError controls the error returned by Checkout.
	CheckoutError error

	// LocalHeadResponse and LocalHeadError control LocalHead results.
	// LocalHeadResponses is keyed by dir and takes precedence.
	LocalHeadResponse  string
	LocalHeadResponses map[string]string
	LocalHeadError     error

	// RemoteHeadResponse and RemoteHeadError control RemoteHead results.
	// RemoteHeadResponses is keyed by URL and takes precedence.
	RemoteHeadResponse  string
	RemoteHeadResponses map[string]string
	RemoteHeadError     error

	// CreateDest makes successful Clone calls create the destination
	// directory, matching what a real clone leaves on disk.
	CreateDest bool
}

// NewMockOperations creates a new MockOperations instance.
func NewMockOperations() *MockOperations {
	return &MockOperations{
		Operations:         make([]OperationRecord, 0),
		LocalHeadResponse:  "abc123def456",
		RemoteHeadResponse: "abc123def456",
		CreateDest:         true,
	}
}

// Clone records the clone operation and returns the configured error (if any).
func (m *MockOperations) Clone(ctx context.Context, url, dest string, opts CloneOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	optsCopy := opts
	m.Operations = append(m.Operations, OperationRecord{
		Operation: "clone",
		URL:       url,
		Dest:      dest,
		Options:   &optsCopy,
	})

	if m.CloneFunc != nil {
		return m.CloneFunc(ctx, url, dest, opts)
	}
	if err, ok := m.CloneErrors[url]; ok {
		return err
	}
	if m.CloneError != nil {
		return m.CloneError
	}

	if m.CreateDest {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Pull records the pull operation and returns the configured error (if any).
func (m *MockOperations) Pull(ctx context.Context, dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Operations = append(m.Operations, OperationRecord{
		Operation: "pull",
		Dir:       dir,
	})

	if err, ok := m.PullErrors[dir]; ok {
		return err
	}
	return m.PullError
}

// Checkout records the checkout operation and returns the configured error.
func (m *MockOperations) Checkout(ctx context.Context, dir, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Operations = append(m.Operations, OperationRecord{
		Operation: "checkout",
		Dir:       dir,
		Ref:       ref,
	})

	return m.CheckoutError
}

// LocalHead records the operation and returns the configured response/error.
func (m *MockOperations) LocalHead(ctx context.Context, dir string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Operations = append(m.Operations, OperationRecord{
		Operation: "local_head",
		Dir:       dir,
	})

	if hash, ok := m.LocalHeadResponses[dir]; ok {
		return hash, nil
	}
	return m.LocalHeadResponse, m.LocalHeadError
}

// RemoteHead records the operation and returns the configured response/error.
func (m *MockOperations) RemoteHead(ctx context.Context, url string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Operations = append(m.Operations, OperationRecord{
		Operation: "remote_head",
		URL:       url,
	})

	if hash, ok := m.RemoteHeadResponses[url]; ok {
		return hash, nil
	}
	return m.RemoteHeadResponse, m.RemoteHeadError
}

// Reset clears all recorded operations and configured errors.
func (m *MockOperations) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Operations = make([]OperationRecord, 0)
	m.CloneError = nil
	m.CloneErrors = nil
	m.CloneFunc = nil
	m.PullError = nil
	m.PullErrors = nil
	m.CheckoutError = nil
	m.LocalHeadResponse = "abc123def456"
	m.LocalHeadResponses = nil
	m.LocalHeadError = nil
	m.RemoteHeadResponse = "abc123def456"
	m.RemoteHeadResponses = nil
	m.RemoteHeadError = nil
	m.CreateDest = true
}

// GetOperations returns a copy of all recorded operations.
func (m *MockOperations) GetOperations() []OperationRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	ops := make([]OperationRecord, len(m.Operations))
	copy(ops, m.Operations)
	return ops
}

// GetOperationCount returns the number of operations performed.
func (m *MockOperations) GetOperationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.Operations)
}

// GetOperationsByType returns all operations of a specific type.
func (m *MockOperations) GetOperationsByType(opType string) []OperationRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	var filtered []OperationRecord
	for _, op := range m.Operations {
		if op.Operation == opType {
			filtered = append(filtered, op)
		}
	}
	return filtered
}

// VerifyOperation checks if a specific operation was performed.
func (m *MockOperations) VerifyOperation(opType string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, op := range m.Operations {
		if op.Operation == opType {
			return true
		}
	}
	return false
}

// VerifyOperationWithURL checks if an operation with a specific URL was performed.
func (m *MockOperations) VerifyOperationWithURL(opType, url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, op := range m.Operations {
		if op.Operation == opType && op.URL == url {
			return true
		}
	}
	return false
}

// VerifyOperationWithDir checks if an operation with a specific directory was performed.
func (m *MockOperations) VerifyOperationWithDir(opType, dir string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, op := range m.Operations {
		if op.Operation == opType && op.Dir == dir {
			return true
		}
	}
	return false
}

// String returns a string representation of the mock's state.
func (m *MockOperations) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fmt.Sprintf("MockOperations{operations=%d, cloneErr=%v, pullErr=%v, checkoutErr=%v}",
		len(m.Operations), m.CloneError != nil, m.PullError != nil, m.CheckoutError != nil)
}

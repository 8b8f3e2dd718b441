package storage

import "sync"

// Memory is a Backend kept in memory. Tests use it to inject write failures.
type Memory struct {
	mu       sync.Mutex
	data     []byte
	written  bool
	writeErr error
	writes   int
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{}
}

// Read returns the last written entry.
func (m *Memory) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.written {
		return nil, ErrNotExist
	}
	return append([]byte(nil), m.data...), nil
}

// Write stores data unless a failure was injected with FailWrites.
func (m *Memory) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data = append([]byte(nil), data...)
	m.written = true
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

// FailWrites makes every following Write return err. A nil err restores
// normal behavior.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Writes returns how many Write calls were made.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

package history

import (
	"strings"
	"sync"

	"github.com/yakuperoglu/nova-ai-cli/internal/pkg/filesystem"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// MemoryStore persists user rules ("remember" facts) in ~/.nova/profile.json.
type MemoryStore struct {
	path string
	mu   sync.Mutex
}

// NewMemoryStore creates a store at path; empty selects ~/.nova/profile.json.
func NewMemoryStore(path string) *MemoryStore {
	if path == "" {
		path = filesystem.NovaPath("profile.json")
	}
	return &MemoryStore{path: path}
}

// Add implements ports.MemoryStore. It reports false when the trimmed fact
// is empty or already stored.
func (m *MemoryStore) Add(fact string) (bool, error) {
	fact = strings.TrimSpace(fact)
	if fact == "" {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	memories := m.load()
	for _, existing := range memories {
		if existing == fact {
			return false, nil
		}
	}
	return true, writeJSON(m.path, append(memories, fact))
}

// List implements ports.MemoryStore.
func (m *MemoryStore) List() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(), nil
}

// Remove implements ports.MemoryStore with a 0-based index.
func (m *MemoryStore) Remove(index int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	memories := m.load()
	if index < 0 || index >= len(memories) {
		return false, nil
	}
	memories = append(memories[:index], memories[index+1:]...)
	return true, writeJSON(m.path, memories)
}

// Clear implements ports.MemoryStore.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return writeJSON(m.path, []string{})
}

// Path returns the backing file path.
func (m *MemoryStore) Path() string {
	return m.path
}

func (m *MemoryStore) load() []string {
	var memories []string
	if err := readJSON(m.path, &memories); err != nil {
		return nil
	}
	return memories
}

var _ ports.MemoryStore = (*MemoryStore)(nil)

package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/pkg/filesystem"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// FileStore keeps the bounded conversation window in ~/.nova/history.json.
type FileStore struct {
	path     string
	maxTurns int
	mu       sync.Mutex
}

// storedTurn mirrors the generateContent message shape so the file can be replayed as is.
type storedTurn struct {
	Role  domain.Role `json:"role"`
	Parts []part      `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// NewFileStore creates a store at path (empty selects ~/.nova/history.json)
// that keeps at most maxTurns turns.
func NewFileStore(path string, maxTurns int) *FileStore {
	if path == "" {
		path = filesystem.NovaPath("history.json")
	}
	if maxTurns <= 0 {
		maxTurns = domain.DefaultHistoryTurns
	}
	return &FileStore{path: path, maxTurns: maxTurns}
}

// AppendTurn implements ports.HistoryStore, evicting the oldest turns past the limit.
func (f *FileStore) AppendTurn(role domain.Role, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	turns := f.load()
	turns = append(turns, domain.Turn{Role: role, Text: text})
	if len(turns) > f.maxTurns {
		turns = turns[len(turns)-f.maxTurns:]
	}
	return f.save(turns)
}

// Turns implements ports.HistoryStore. A missing or corrupt file reads as empty.
func (f *FileStore) Turns() ([]domain.Turn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(), nil
}

// Reset implements ports.HistoryStore.
func (f *FileStore) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save(nil)
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) load() []domain.Turn {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil
	}
	var stored []storedTurn
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil
	}
	turns := make([]domain.Turn, 0, len(stored))
	for _, st := range stored {
		if st.Role != domain.RoleUser && st.Role != domain.RoleModel {
			continue
		}
		var text string
		for _, p := range st.Parts {
			text += p.Text
		}
		turns = append(turns, domain.Turn{Role: st.Role, Text: text})
	}
	return turns
}

func (f *FileStore) save(turns []domain.Turn) error {
	stored := make([]storedTurn, 0, len(turns))
	for _, t := range turns {
		stored = append(stored, storedTurn{Role: t.Role, Parts: []part{{Text: t.Text}}})
	}
	return writeJSON(f.path, stored)
}

func writeJSON(path string, value interface{}) error {
	if err := filesystem.EnsurePrivateDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	if err := filesystem.AtomicWriteFile(path, data, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, value interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, value)
}

var _ ports.HistoryStore = (*FileStore)(nil)

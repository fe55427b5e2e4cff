package attach

import (
	"slices"
	"sync"

	"github.com/matheus3301/qshare/internal/chat"
)

// Tray holds the files staged in the composer until the next send.
type Tray struct {
	mu    sync.RWMutex
	files []Source
}

// Add stages the given files, skipping ones already in the tray.
// Returns how many were accepted.
func (t *Tray) Add(files ...Source) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	before := len(t.files)
	t.files = AddFiles(t.files, files)
	return len(t.files) - before
}

// RemoveAt drops the file at index i. Returns false if i is out of range.
func (t *Tray) RemoveAt(i int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i < 0 || i >= len(t.files) {
		return false
	}
	t.files = slices.Delete(t.files, i, i+1)
	return true
}

// Clear empties the tray.
func (t *Tray) Clear() {
	t.mu.Lock()
	t.files = nil
	t.mu.Unlock()
}

// Files returns a copy of the staged files in the order they were added.
func (t *Tray) Files() []Source {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.files)
}

// Count returns the number of staged files.
func (t *Tray) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.files)
}

// TotalSize returns the sum of the staged file sizes.
func (t *Tray) TotalSize() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var total uint64
	for _, f := range t.files {
		total += f.Size
	}
	return total
}

// Attachments converts the staged files for a message draft.
func (t *Tray) Attachments() []chat.Attachment {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.files) == 0 {
		return nil
	}
	out := make([]chat.Attachment, len(t.files))
	for i, f := range t.files {
		out[i] = f.Attachment()
	}
	return out
}

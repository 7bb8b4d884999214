// Package memory holds the belief store document: an ordered list of
// statements with their truth values, identified by monotonically
// increasing ids and timestamps, persisted as JSON.
package memory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
	"github.com/ntoxeg/narst/pkg/narst/nal"
)

// Item is one stored belief.
type Item struct {
	ID         uint64         `json:"id"`
	Timestamp  uint64         `json:"timestamp"`
	Term       string         `json:"term"`
	TV         nal.TruthValue `json:"tv"`
	UsageCount uint64         `json:"usage_count"`
	EmbedID    *uint64        `json:"embed_id"`
}

// Memory is the belief store document. The id and timestamp counters are
// advanced only by Add.
type Memory struct {
	Items            []Item `json:"items"`
	LastID           uint64 `json:"last_id"`
	CurrentTimestamp uint64 `json:"current_timestamp"`
}

// New returns an empty memory.
func New() *Memory {
	return &Memory{Items: []Item{}}
}

// Add appends a belief and advances both counters.
func (m *Memory) Add(term string, tv nal.TruthValue, embedID *uint64) Item {
	item := Item{
		ID:        m.LastID,
		Timestamp: m.CurrentTimestamp,
		Term:      term,
		TV:        tv,
		EmbedID:   copyID(embedID),
	}
	m.Items = append(m.Items, item)
	m.LastID++
	m.CurrentTimestamp++
	return item
}

// Len returns the number of stored beliefs.
func (m *Memory) Len() int { return len(m.Items) }

// Get returns the belief with the given id.
func (m *Memory) Get(id uint64) (Item, bool) {
	for _, it := range m.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Find returns the most recent belief about term.
func (m *Memory) Find(term string) (Item, bool) {
	for i := len(m.Items) - 1; i >= 0; i-- {
		if m.Items[i].Term == term {
			return m.Items[i], true
		}
	}
	return Item{}, false
}

// Touch increments the usage count of a belief.
func (m *Memory) Touch(id uint64) error {
	for i := range m.Items {
		if m.Items[i].ID == id {
			m.Items[i].UsageCount++
			return nil
		}
	}
	return fmt.Errorf("belief %d: %w", id, internalerr.ErrNotFound)
}

// Clone returns a deep copy.
func (m *Memory) Clone() *Memory {
	out := &Memory{
		Items:            make([]Item, len(m.Items)),
		LastID:           m.LastID,
		CurrentTimestamp: m.CurrentTimestamp,
	}
	for i, it := range m.Items {
		out.Items[i] = it.Copy()
	}
	return out
}

// Copy returns it with its own EmbedID.
func (it Item) Copy() Item {
	it.EmbedID = copyID(it.EmbedID)
	return it
}

// Load reads a memory document from path.
func Load(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open memory: %w", internalerr.ErrIO, err)
	}
	defer f.Close()

	m := New()
	if err := json.NewDecoder(f).Decode(m); err != nil {
		return nil, fmt.Errorf("%w: decode memory %s: %w", internalerr.ErrIO, path, err)
	}
	if m.Items == nil {
		m.Items = []Item{}
	}
	return m, nil
}

// Store writes m to path, replacing any existing file.
func Store(path string, m *Memory) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("%w: encode memory: %w", internalerr.ErrIO, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write memory: %w", internalerr.ErrIO, err)
	}
	return nil
}

func copyID(id *uint64) *uint64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

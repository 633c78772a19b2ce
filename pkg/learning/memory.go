package learning

import "sync"

// MemoryHistory is an in-process History. For each column the
// highest-confidence fact wins; on equal confidence the most recent fact
// replaces the old one.
type MemoryHistory struct {
	mu    sync.RWMutex
	facts map[string]Fact
}

// NewMemoryHistory creates an empty in-memory history.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{facts: make(map[string]Fact)}
}

func (h *MemoryHistory) SuggestType(column string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fact, ok := h.facts[column]
	if !ok {
		return "", false
	}
	return fact.Type, true
}

func (h *MemoryHistory) RecordPattern(fact Fact) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if prev, ok := h.facts[fact.Column]; ok && fact.Confidence < prev.Confidence {
		return
	}
	h.facts[fact.Column] = fact
}

// Facts returns a snapshot of all remembered facts keyed by column name.
func (h *MemoryHistory) Facts() map[string]Fact {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[string]Fact, len(h.facts))
	for k, v := range h.facts {
		out[k] = v
	}
	return out
}

var _ History = (*MemoryHistory)(nil)

package checkpoint

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"casefold-hq/triage/pkg/casefile"
)

// MemoryStore is an in-memory checkpoint store. Records are snapshotted
// through JSON so callers never share mutable state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	byCase  map[string]string // case ID -> live token
}

type memoryEntry struct {
	caseID  string
	data    []byte
	savedAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		byCase:  make(map[string]string),
	}
}

// Save persists a snapshot of the record and returns a fresh token. Any
// previous checkpoint of the same case is replaced.
func (s *MemoryStore) Save(ctx context.Context, rec *casefile.CaseRecord) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", NewStorageError("memory", "save", err)
	}

	token := newToken()

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byCase[rec.CaseID]; ok {
		delete(s.entries, old)
	}
	s.entries[token] = memoryEntry{caseID: rec.CaseID, data: data, savedAt: time.Now()}
	s.byCase[rec.CaseID] = token
	return token, nil
}

// Load resolves a token to a private copy of the saved record.
func (s *MemoryStore) Load(ctx context.Context, token string) (*casefile.CaseRecord, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var rec casefile.CaseRecord
	if err := json.Unmarshal(entry.data, &rec); err != nil {
		return nil, NewStorageError("memory", "load", err)
	}
	return &rec, nil
}

// Delete removes a checkpoint. Unknown tokens are a no-op.
func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[token]; ok {
		if s.byCase[entry.caseID] == token {
			delete(s.byCase, entry.caseID)
		}
		delete(s.entries, token)
	}
	return nil
}

// List returns tokens saved before cutoff, oldest first.
func (s *MemoryStore) List(ctx context.Context, cutoff time.Time) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type aged struct {
		token   string
		savedAt time.Time
	}
	var out []aged
	for token, entry := range s.entries {
		if cutoff.IsZero() || entry.savedAt.Before(cutoff) {
			out = append(out, aged{token, entry.savedAt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].savedAt.Before(out[j].savedAt) })

	tokens := make([]string, len(out))
	for i, a := range out {
		tokens[i] = a.token
	}
	return tokens, nil
}

// Close releases nothing for the memory backend.
func (s *MemoryStore) Close() error {
	return nil
}

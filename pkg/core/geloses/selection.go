package geloses

import (
	"context"
	"sort"
	"sync"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo"
)

// DefaultSelection is the pair loaded when the durable entry is missing
// or unreadable.
var DefaultSelection = []string{"entero", "levures5j"}

// Selection keeps the coordinator's chosen bacterial tests. Membership
// is unique, insertion order irrelevant. Every mutation is written
// through the injected store before the in-memory set changes, so a
// failed write leaves the selection retryable.
type Selection struct {
	store repo.SelectionStore

	mu  sync.Mutex
	ids map[string]struct{}
}

// NewSelection loads the persisted selection through store, falling back
// to DefaultSelection on a missing or corrupt entry.
func NewSelection(ctx context.Context, store repo.SelectionStore) *Selection {
	s := &Selection{
		store: store,
		ids:   map[string]struct{}{},
	}

	ids, err := store.Load(ctx)
	if err != nil {
		logger.Warnf(ctx, "load bacteria selection fail, using default pair: %+v", err)
		ids = nil
	}
	if len(ids) == 0 {
		ids = DefaultSelection
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Selected returns the current membership, sorted.
func (s *Selection) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Toggle flips membership of id and reports whether it is now selected.
func (s *Selection) Toggle(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, present := s.ids[id]
	if err := s.commit(ctx, id, !present); err != nil {
		return present, err
	}
	return !present, nil
}

func (s *Selection) Add(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, id, true)
}

func (s *Selection) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, id, false)
}

// Reset restores the default pair.
func (s *Selection) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := map[string]struct{}{}
	for _, id := range DefaultSelection {
		next[id] = struct{}{}
	}
	if err := s.save(ctx, next); err != nil {
		return err
	}
	s.ids = next
	return nil
}

// commit persists the set with id added or removed, then applies the
// change in memory. Callers hold s.mu.
func (s *Selection) commit(ctx context.Context, id string, selected bool) error {
	next := make(map[string]struct{}, len(s.ids)+1)
	for k := range s.ids {
		next[k] = struct{}{}
	}
	if selected {
		next[id] = struct{}{}
	} else {
		delete(next, id)
	}

	if err := s.save(ctx, next); err != nil {
		return err
	}
	s.ids = next
	return nil
}

func (s *Selection) save(ctx context.Context, set map[string]struct{}) error {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if err := s.store.Save(ctx, ids); err != nil {
		logger.Errorf(ctx, "save bacteria selection fail: %+v", err)
		return code.SelectionErr.WithErr(err)
	}
	return nil
}

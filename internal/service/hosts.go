package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"hostsadmin/internal/domain"
	"hostsadmin/internal/store"
)

// HostService provides CRUD over host groups and their entries.
//
// Groups are keyed by category. Only UpdateEntry signals not-found;
// UpdateGroup, DeleteGroup and DeleteEntry silently no-op on missing keys
// and return the unchanged collection.
type HostService struct {
	store *store.Store
	bus   *EventBus
	mu    *sync.Mutex
}

// NewHostService creates a host service.
func NewHostService(st *store.Store, bus *EventBus) *HostService {
	return &HostService{store: st, bus: bus}
}

// WithLock makes every mutation hold mu across its whole
// read-modify-write cycle. See VocabularyService.WithLock.
func (s *HostService) WithLock(mu *sync.Mutex) *HostService {
	s.mu = mu
	return s
}

func (s *HostService) lock() func() {
	if s.mu == nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Hosts returns the full group collection. Search, filtering and
// pagination happen client-side over this projection.
func (s *HostService) Hosts() ([]domain.HostGroup, error) {
	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	return doc.Hosts, nil
}

// AddGroup creates a group from the patch, assigning a fresh id and
// timestamp, and appends it to the collection.
func (s *HostService) AddGroup(patch domain.GroupPatch) ([]domain.HostGroup, error) {
	defer s.lock()()

	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	group := domain.HostGroup{
		ID:          uuid.NewString(),
		LastUpdated: timestamp(),
		IsGroup:     true,
		Children:    []domain.HostEntry{},
	}
	patch.Apply(&group)
	doc.Hosts = append(doc.Hosts, group)

	if err := s.store.Write(doc); err != nil {
		return nil, err
	}
	s.bus.Publish(Event{Type: EventHostsUpdated, Payload: map[string]string{"category": group.Category}})
	return doc.Hosts, nil
}

// UpdateGroup merges the patch over the first group matching category and
// refreshes its timestamp. Silent no-op when no group matches.
func (s *HostService) UpdateGroup(category string, patch domain.GroupPatch) ([]domain.HostGroup, error) {
	defer s.lock()()

	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	idx := doc.FindGroup(category)
	if idx == -1 {
		return doc.Hosts, nil
	}
	patch.Apply(&doc.Hosts[idx])
	doc.Hosts[idx].LastUpdated = timestamp()

	if err := s.store.Write(doc); err != nil {
		return nil, err
	}
	s.bus.Publish(Event{Type: EventHostsUpdated, Payload: map[string]string{"category": category}})
	return doc.Hosts, nil
}

// DeleteGroup removes every group matching category.
func (s *HostService) DeleteGroup(category string) ([]domain.HostGroup, error) {
	defer s.lock()()

	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	kept := doc.Hosts[:0]
	for _, g := range doc.Hosts {
		if g.Category != category {
			kept = append(kept, g)
		}
	}
	doc.Hosts = kept

	if err := s.store.Write(doc); err != nil {
		return nil, err
	}
	s.bus.Publish(Event{Type: EventHostsUpdated, Payload: map[string]string{"category": category}})
	return doc.Hosts, nil
}

// AddEntry appends a new entry to the group for category, creating the
// group first if no group with that category exists yet.
func (s *HostService) AddEntry(category string, patch domain.EntryPatch) ([]domain.HostGroup, error) {
	defer s.lock()()

	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	idx := s.findOrCreateGroup(doc, category)

	entry := domain.HostEntry{
		ID:          uuid.NewString(),
		Category:    category,
		LastUpdated: timestamp(),
	}
	patch.Apply(&entry)
	doc.Hosts[idx].Children = append(doc.Hosts[idx].Children, entry)
	doc.Hosts[idx].LastUpdated = timestamp()

	if err := s.store.Write(doc); err != nil {
		return nil, err
	}
	s.bus.Publish(Event{Type: EventHostsUpdated, Payload: map[string]string{"category": category, "entry_id": entry.ID}})
	return doc.Hosts, nil
}

// UpdateEntry merges the patch over the entry with entryID inside the
// group for category. If the patch changes the category, the merged entry
// moves to the destination group (created on demand), keeping its id.
//
// This is the one lookup surface that signals failure: a missing group
// yields domain.ErrGroupNotFound and a missing entry domain.ErrEntryNotFound,
// in both cases without mutating the document.
func (s *HostService) UpdateEntry(category, entryID string, patch domain.EntryPatch) ([]domain.HostGroup, error) {
	defer s.lock()()

	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	gi := doc.FindGroup(category)
	if gi == -1 {
		return nil, fmt.Errorf("category %q: %w", category, domain.ErrGroupNotFound)
	}
	ei := doc.Hosts[gi].FindChild(entryID)
	if ei == -1 {
		return nil, fmt.Errorf("entry %q in category %q: %w", entryID, category, domain.ErrEntryNotFound)
	}

	merged := doc.Hosts[gi].Children[ei]
	patch.Apply(&merged)
	merged.LastUpdated = timestamp()

	if dest, moved := patch.MovesTo(category); moved {
		di := s.findOrCreateGroup(doc, dest)
		doc.Hosts[di].Children = append(doc.Hosts[di].Children, merged)
		doc.Hosts[di].LastUpdated = timestamp()

		kept := doc.Hosts[gi].Children[:0]
		for _, e := range doc.Hosts[gi].Children {
			if e.ID != entryID {
				kept = append(kept, e)
			}
		}
		doc.Hosts[gi].Children = kept
		doc.Hosts[gi].LastUpdated = timestamp()
	} else {
		doc.Hosts[gi].Children[ei] = merged
		doc.Hosts[gi].LastUpdated = timestamp()
	}

	if err := s.store.Write(doc); err != nil {
		return nil, err
	}
	s.bus.Publish(Event{Type: EventHostsUpdated, Payload: map[string]string{"category": category, "entry_id": entryID}})
	return doc.Hosts, nil
}

// DeleteEntry removes the entry with entryID from the group for category.
// Silent no-op when the group or the entry is absent. The group stays
// behind even when its last entry is removed.
func (s *HostService) DeleteEntry(category, entryID string) ([]domain.HostGroup, error) {
	defer s.lock()()

	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	gi := doc.FindGroup(category)
	if gi == -1 {
		return doc.Hosts, nil
	}

	removed := false
	kept := doc.Hosts[gi].Children[:0]
	for _, e := range doc.Hosts[gi].Children {
		if e.ID == entryID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	doc.Hosts[gi].Children = kept
	if removed {
		doc.Hosts[gi].LastUpdated = timestamp()
	}

	if err := s.store.Write(doc); err != nil {
		return nil, err
	}
	s.bus.Publish(Event{Type: EventHostsUpdated, Payload: map[string]string{"category": category, "entry_id": entryID}})
	return doc.Hosts, nil
}

// ReplaceDocument swaps in a full document, used by the settings-page
// import. The caller provides the complete replacement.
func (s *HostService) ReplaceDocument(doc *domain.Document) ([]domain.HostGroup, error) {
	defer s.lock()()

	if err := s.store.Write(doc); err != nil {
		return nil, err
	}
	s.bus.Publish(Event{Type: EventHostsUpdated, Payload: map[string]string{"action": "imported"}})
	return doc.Hosts, nil
}

// findOrCreateGroup returns the index of the group for category, creating
// an empty group with a fresh id when none exists.
func (s *HostService) findOrCreateGroup(doc *domain.Document, category string) int {
	idx := doc.FindGroup(category)
	if idx != -1 {
		return idx
	}
	doc.Hosts = append(doc.Hosts, domain.HostGroup{
		ID:          uuid.NewString(),
		Category:    category,
		LastUpdated: timestamp(),
		IsGroup:     true,
		Children:    []domain.HostEntry{},
	})
	return len(doc.Hosts) - 1
}

package service

import (
	"sync"

	"hostsadmin/internal/store"
)

// VocabularyService manages the categories and types lists.
//
// Values are matched by exact string equality: no trimming, no case
// folding. Add of a present value and update/delete of an absent value are
// silent no-ops returning the unchanged list. Renames cascade into every
// group and entry referencing the old value; deletes do not cascade (the
// dashboard warns, the store does not enforce).
type VocabularyService struct {
	store *store.Store
	bus   *EventBus
	mu    *sync.Mutex
}

// NewVocabularyService creates a vocabulary service.
func NewVocabularyService(st *store.Store, bus *EventBus) *VocabularyService {
	return &VocabularyService{store: st, bus: bus}
}

// WithLock makes every mutation hold mu across its whole
// read-modify-write cycle. Sharing one mutex with the host service
// serializes all writers; without it concurrent cycles can interleave and
// lose updates, matching the original single-admin behavior.
func (s *VocabularyService) WithLock(mu *sync.Mutex) *VocabularyService {
	s.mu = mu
	return s
}

func (s *VocabularyService) lock() func() {
	if s.mu == nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Categories returns the ordered category list.
func (s *VocabularyService) Categories() ([]string, error) {
	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

// AddCategory appends value unless already present.
func (s *VocabularyService) AddCategory(value string) ([]string, error) {
	defer s.lock()()

	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	if indexOf(doc.Categories, value) == -1 {
		doc.Categories = append(doc.Categories, value)
		if err := s.store.Write(doc); err != nil {
			return nil, err
		}
		s.bus.Publish(Event{Type: EventCategoriesUpdated, Payload: doc.Categories})
	}
	return doc.Categories, nil
}

// UpdateCategory renames oldValue in place, preserving its position, and
// rewrites the category field of every group and entry that referenced it.
// Renaming onto an existing value produces a duplicate list entry.
func (s *VocabularyService) UpdateCategory(oldValue, newValue string) ([]string, error) {
	defer s.lock()()

	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	idx := indexOf(doc.Categories, oldValue)
	if idx == -1 {
		return doc.Categories, nil
	}
	doc.Categories[idx] = newValue

	for i := range doc.Hosts {
		if doc.Hosts[i].Category == oldValue {
			doc.Hosts[i].Category = newValue
		}
		for j := range doc.Hosts[i].Children {
			if doc.Hosts[i].Children[j].Category == oldValue {
				doc.Hosts[i].Children[j].Category = newValue
			}
		}
	}

	if err := s.store.Write(doc); err != nil {
		return nil, err
	}
	s.bus.Publish(Event{Type: EventCategoriesUpdated, Payload: doc.Categories})
	return doc.Categories, nil
}

// DeleteCategory removes value from the list. Referencing groups and
// entries are left untouched.
func (s *VocabularyService) DeleteCategory(value string) ([]string, error) {
	defer s.lock()()

	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	idx := indexOf(doc.Categories, value)
	if idx == -1 {
		return doc.Categories, nil
	}
	doc.Categories = append(doc.Categories[:idx], doc.Categories[idx+1:]...)

	if err := s.store.Write(doc); err != nil {
		return nil, err
	}
	s.bus.Publish(Event{Type: EventCategoriesUpdated, Payload: doc.Categories})
	return doc.Categories, nil
}

// Types returns the ordered type list.
func (s *VocabularyService) Types() ([]string, error) {
	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	return doc.Types, nil
}

// AddType appends value unless already present.
func (s *VocabularyService) AddType(value string) ([]string, error) {
	defer s.lock()()

	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	if indexOf(doc.Types, value) == -1 {
		doc.Types = append(doc.Types, value)
		if err := s.store.Write(doc); err != nil {
			return nil, err
		}
		s.bus.Publish(Event{Type: EventTypesUpdated, Payload: doc.Types})
	}
	return doc.Types, nil
}

// UpdateType renames oldValue in place and rewrites the type field of
// every entry that referenced it. Groups carry no type, so the cascade
// only touches children.
func (s *VocabularyService) UpdateType(oldValue, newValue string) ([]string, error) {
	defer s.lock()()

	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	idx := indexOf(doc.Types, oldValue)
	if idx == -1 {
		return doc.Types, nil
	}
	doc.Types[idx] = newValue

	for i := range doc.Hosts {
		for j := range doc.Hosts[i].Children {
			if doc.Hosts[i].Children[j].Type == oldValue {
				doc.Hosts[i].Children[j].Type = newValue
			}
		}
	}

	if err := s.store.Write(doc); err != nil {
		return nil, err
	}
	s.bus.Publish(Event{Type: EventTypesUpdated, Payload: doc.Types})
	return doc.Types, nil
}

// DeleteType removes value from the list. Referencing entries are left
// untouched.
func (s *VocabularyService) DeleteType(value string) ([]string, error) {
	defer s.lock()()

	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	idx := indexOf(doc.Types, value)
	if idx == -1 {
		return doc.Types, nil
	}
	doc.Types = append(doc.Types[:idx], doc.Types[idx+1:]...)

	if err := s.store.Write(doc); err != nil {
		return nil, err
	}
	s.bus.Publish(Event{Type: EventTypesUpdated, Payload: doc.Types})
	return doc.Types, nil
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return -1
}

package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"hostsadmin/internal/domain"
	"hostsadmin/internal/store"
)

func newHostService(t *testing.T) (*HostService, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	return NewHostService(st, NewEventBus()), st
}

func strptr(s string) *string { return &s }

func TestAddGroup(t *testing.T) {
	svc, _ := newHostService(t)

	hosts, err := svc.AddGroup(domain.GroupPatch{Category: strptr("platform")})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(hosts) != 1 {
		t.Fatalf("expected 1 group, got %d", len(hosts))
	}
	g := hosts[0]
	if g.ID == "" {
		t.Error("group should get a generated id")
	}
	if !g.IsGroup {
		t.Error("group should be flagged as a group")
	}
	if g.Category != "platform" {
		t.Errorf("expected category platform, got %q", g.Category)
	}
	if g.Children == nil || len(g.Children) != 0 {
		t.Errorf("expected empty children, got %v", g.Children)
	}
	if _, err := time.Parse(time.RFC3339, g.LastUpdated); err != nil {
		t.Errorf("lastUpdated not RFC3339: %q", g.LastUpdated)
	}
}

func TestAddGroupAllowsDuplicateCategory(t *testing.T) {
	svc, _ := newHostService(t)

	if _, err := svc.AddGroup(domain.GroupPatch{Category: strptr("platform")}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	hosts, err := svc.AddGroup(domain.GroupPatch{Category: strptr("platform")})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(hosts) != 2 {
		t.Errorf("creation does not dedupe by category, expected 2 groups, got %d", len(hosts))
	}
	if hosts[0].ID == hosts[1].ID {
		t.Error("groups should get distinct ids")
	}
}

func TestUpdateGroupAbsentIsNoOp(t *testing.T) {
	svc, st := newHostService(t)

	hosts, err := svc.UpdateGroup("ghost", domain.GroupPatch{Category: strptr("renamed")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(hosts) != 0 {
		t.Errorf("expected unchanged empty collection, got %v", hosts)
	}

	doc, _ := st.Read()
	if len(doc.Hosts) != 0 {
		t.Error("no-op update should not persist anything")
	}
}

func TestDeleteGroupRemovesAllMatches(t *testing.T) {
	svc, _ := newHostService(t)

	svc.AddGroup(domain.GroupPatch{Category: strptr("platform")})
	svc.AddGroup(domain.GroupPatch{Category: strptr("operations")})
	svc.AddGroup(domain.GroupPatch{Category: strptr("platform")})

	hosts, err := svc.DeleteGroup("platform")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(hosts) != 1 || hosts[0].Category != "operations" {
		t.Errorf("expected only operations left, got %v", hosts)
	}
}

func TestAddEntryCreatesGroupOnDemand(t *testing.T) {
	svc, _ := newHostService(t)

	hosts, err := svc.AddEntry("platform", domain.EntryPatch{
		HostContent: strptr("10.0.0.1 web.internal"),
		Title:       strptr("web"),
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(hosts) != 1 {
		t.Fatalf("expected group created on demand, got %d groups", len(hosts))
	}
	g := hosts[0]
	if g.Category != "platform" || !g.IsGroup || g.ID == "" {
		t.Errorf("created group malformed: %+v", g)
	}
	if len(g.Children) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(g.Children))
	}
	e := g.Children[0]
	if e.ID == "" || e.Category != "platform" || e.HostContent != "10.0.0.1 web.internal" {
		t.Errorf("entry malformed: %+v", e)
	}
}

func TestAddEntryReusesFirstMatchingGroup(t *testing.T) {
	svc, _ := newHostService(t)

	svc.AddGroup(domain.GroupPatch{Category: strptr("platform")})
	svc.AddGroup(domain.GroupPatch{Category: strptr("platform")})

	hosts, err := svc.AddEntry("platform", domain.EntryPatch{HostContent: strptr("x")})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(hosts) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(hosts))
	}
	if len(hosts[0].Children) != 1 {
		t.Errorf("entry should land in the first matching group")
	}
	if len(hosts[1].Children) != 0 {
		t.Errorf("second duplicate group should stay empty")
	}
}

func TestUpdateEntryInPlace(t *testing.T) {
	svc, _ := newHostService(t)

	hosts, _ := svc.AddEntry("platform", domain.EntryPatch{
		HostContent: strptr("10.0.0.1 web"),
		Title:       strptr("web"),
		Type:        strptr("frontend"),
	})
	entryID := hosts[0].Children[0].ID

	hosts, err := svc.UpdateEntry("platform", entryID, domain.EntryPatch{
		Title: strptr("web-primary"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	e := hosts[0].Children[0]
	if e.Title != "web-primary" {
		t.Errorf("patched field not applied: %q", e.Title)
	}
	if e.HostContent != "10.0.0.1 web" || e.Type != "frontend" {
		t.Errorf("absent patch fields should be untouched: %+v", e)
	}
	if e.ID != entryID {
		t.Error("id must never change on update")
	}
}

func TestUpdateEntryMovesBetweenGroups(t *testing.T) {
	svc, _ := newHostService(t)

	hosts, _ := svc.AddEntry("platform", domain.EntryPatch{HostContent: strptr("10.0.0.1 web")})
	entryID := hosts[0].Children[0].ID
	before := hosts[0].Children[0].LastUpdated

	hosts, err := svc.UpdateEntry("platform", entryID, domain.EntryPatch{
		Category: strptr("operations"),
	})
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if len(hosts) != 2 {
		t.Fatalf("destination group should be created on demand, got %d groups", len(hosts))
	}

	var src, dst *domain.HostGroup
	for i := range hosts {
		switch hosts[i].Category {
		case "platform":
			src = &hosts[i]
		case "operations":
			dst = &hosts[i]
		}
	}
	if src == nil || dst == nil {
		t.Fatalf("missing source or destination group: %+v", hosts)
	}
	if len(src.Children) != 0 {
		t.Errorf("entry should leave the source group, got %v", src.Children)
	}
	if len(dst.Children) != 1 {
		t.Fatalf("entry should arrive in the destination group")
	}
	moved := dst.Children[0]
	if moved.ID != entryID {
		t.Error("move must preserve the entry id")
	}
	if moved.Category != "operations" {
		t.Errorf("moved entry category should follow, got %q", moved.Category)
	}
	if moved.LastUpdated < before {
		t.Errorf("moved entry timestamp went backwards: %q < %q", moved.LastUpdated, before)
	}
}

func TestUpdateEntryNotFound(t *testing.T) {
	svc, st := newHostService(t)

	hosts, _ := svc.AddEntry("platform", domain.EntryPatch{HostContent: strptr("x")})
	snapshot, _ := st.Read()

	t.Run("missing group", func(t *testing.T) {
		_, err := svc.UpdateEntry("ghost", hosts[0].Children[0].ID, domain.EntryPatch{})
		if !errors.Is(err, domain.ErrGroupNotFound) {
			t.Errorf("expected ErrGroupNotFound, got %v", err)
		}
	})

	t.Run("missing entry", func(t *testing.T) {
		_, err := svc.UpdateEntry("platform", "no-such-id", domain.EntryPatch{})
		if !errors.Is(err, domain.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound, got %v", err)
		}
	})

	t.Run("document untouched after failures", func(t *testing.T) {
		after, _ := st.Read()
		if len(after.Hosts) != len(snapshot.Hosts) {
			t.Fatalf("failed update mutated the document")
		}
		if after.Hosts[0].LastUpdated != snapshot.Hosts[0].LastUpdated {
			t.Error("failed update refreshed a timestamp")
		}
	})
}

func TestDeleteEntry(t *testing.T) {
	svc, _ := newHostService(t)

	hosts, _ := svc.AddEntry("platform", domain.EntryPatch{HostContent: strptr("x")})
	entryID := hosts[0].Children[0].ID

	t.Run("removes the entry but keeps the group", func(t *testing.T) {
		hosts, err := svc.DeleteEntry("platform", entryID)
		if err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if len(hosts) != 1 {
			t.Fatalf("emptied group should persist, got %d groups", len(hosts))
		}
		if len(hosts[0].Children) != 0 {
			t.Errorf("entry not removed: %v", hosts[0].Children)
		}
	})

	t.Run("missing entry is a no-op", func(t *testing.T) {
		hosts, err := svc.DeleteEntry("platform", "no-such-id")
		if err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if len(hosts) != 1 {
			t.Errorf("no-op delete changed the collection: %v", hosts)
		}
	})

	t.Run("missing group is a no-op", func(t *testing.T) {
		if _, err := svc.DeleteEntry("ghost", entryID); err != nil {
			t.Errorf("delete of absent group should not fail: %v", err)
		}
	})
}

func TestGroupTimestampRefreshedOnChildMutation(t *testing.T) {
	svc, st := newHostService(t)

	hosts, _ := svc.AddEntry("platform", domain.EntryPatch{HostContent: strptr("x")})
	entryID := hosts[0].Children[0].ID

	// Backdate the group so any refresh is observable
	doc, _ := st.Read()
	doc.Hosts[0].LastUpdated = "2000-01-01T00:00:00Z"
	if err := st.Write(doc); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	hosts, err := svc.UpdateEntry("platform", entryID, domain.EntryPatch{Title: strptr("t")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if hosts[0].LastUpdated == "2000-01-01T00:00:00Z" {
		t.Error("group timestamp should refresh when a child changes")
	}
}

func TestSerializedWrites(t *testing.T) {
	st := newTestStore(t)
	bus := NewEventBus()
	var mu sync.Mutex
	svc := NewHostService(st, bus).WithLock(&mu)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddEntry("platform", domain.EntryPatch{HostContent: strptr("x")}); err != nil {
				t.Errorf("add failed: %v", err)
			}
		}()
	}
	wg.Wait()

	doc, err := st.Read()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	total := 0
	for _, g := range doc.Hosts {
		total += len(g.Children)
	}
	if total != 10 {
		t.Errorf("serialized writes lost updates: expected 10 entries, got %d", total)
	}
}

package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/JUN-HYUN-SEOK/tradeguard-app/internal/model"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	session := s.Put("declarations.xlsx", &model.Report{Filename: "declarations.xlsx"})
	if session.ID == "" {
		t.Fatalf("empty session id")
	}

	got, err := s.Get(session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Filename != "declarations.xlsx" || got.Report == nil {
		t.Fatalf("session = %+v", got)
	}

	s.Delete(session.ID)
	if _, err := s.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	first := s.Put("a.xlsx", &model.Report{})
	second := s.Put("b.xlsx", &model.Report{})
	second.CreatedAt = first.CreatedAt.Add(1)

	list := s.List()
	if len(list) != 2 {
		t.Fatalf("list len = %d", len(list))
	}
	if list[0].ID != second.ID {
		t.Fatalf("list not newest-first: %s, %s", list[0].Filename, list[1].Filename)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session := s.Put("f.xlsx", &model.Report{})
			if _, err := s.Get(session.ID); err != nil {
				t.Errorf("get: %v", err)
			}
			_ = s.List()
		}()
	}
	wg.Wait()

	if s.Count() != 20 {
		t.Fatalf("count = %d, want 20", s.Count())
	}
}

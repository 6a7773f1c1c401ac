package vizstore

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/hyperjump/kotoba/internal/models"
)

func sampleViz(word string) *models.Visualization {
	return &models.Visualization{
		Method: models.MethodPCA,
		Dims:   2,
		Words:  []string{word, "other"},
		Coordinates: map[string]models.Point{
			word:    models.NewPoint2D(1, 2),
			"other": models.NewPoint2D(-1, 0.5),
		},
		Colors: map[string]string{
			word:    "#aa0000",
			"other": "#00aa00",
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestStore_RoundTrip(t *testing.T) {
	s := New()
	viz := sampleViz("king")
	id := s.Store(viz)
	if id == "" {
		t.Fatal("empty id")
	}
	if viz.ID != id {
		t.Errorf("viz.ID = %s, want %s", viz.ID, id)
	}
	got, ok := s.Get(id)
	if !ok {
		t.Fatal("stored visualization not found")
	}
	if !reflect.DeepEqual(got, viz) {
		t.Errorf("retrieved visualization differs:\n%+v\n%+v", got, viz)
	}
}

func TestStore_GetUnknown(t *testing.T) {
	s := New()
	if _, ok := s.Get("nope"); ok {
		t.Error("unknown id should miss")
	}
}

func TestStore_UniqueIDs(t *testing.T) {
	s := New()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := s.Store(sampleViz(fmt.Sprintf("w%d", i)))
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
	if s.Size() != 100 {
		t.Errorf("Size = %d, want 100", s.Size())
	}
}

func TestStore_ConcurrentStoreRetrieve(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	ids := make([]string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := s.Store(sampleViz(fmt.Sprintf("w%d", i)))
			ids[i] = id
			if _, ok := s.Get(id); !ok {
				t.Errorf("own store not visible for %s", id)
			}
		}(i)
	}
	wg.Wait()
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("colliding id %s", id)
		}
		seen[id] = true
	}
}

func TestStore_TrimKeepsMostRecent(t *testing.T) {
	s := New()
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, s.Store(sampleViz(fmt.Sprintf("w%d", i))))
	}
	remaining := s.Trim(2)
	if remaining != 2 {
		t.Errorf("remaining = %d, want 2", remaining)
	}
	for _, id := range ids[:3] {
		if _, ok := s.Get(id); ok {
			t.Errorf("old entry %s should be evicted", id)
		}
	}
	for _, id := range ids[3:] {
		if _, ok := s.Get(id); !ok {
			t.Errorf("recent entry %s should survive", id)
		}
	}
	if got := s.IDs(); !reflect.DeepEqual(got, ids[3:]) {
		t.Errorf("IDs = %v, want %v", got, ids[3:])
	}
}

func TestStore_TrimNoop(t *testing.T) {
	s := New()
	s.Store(sampleViz("a"))
	if remaining := s.Trim(10); remaining != 1 {
		t.Errorf("remaining = %d, want 1", remaining)
	}
}

package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"lifeline/internal/domain"
	"lifeline/internal/service"
	"lifeline/internal/storage/memory"
)

// fakeCache is an in-process stand-in for the redis snapshot cache.
type fakeCache struct {
	mu       sync.Mutex
	snapshot []*domain.Hospital
	readErr  error
	sets     int
}

func (c *fakeCache) GetActive(_ context.Context) ([]*domain.Hospital, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return nil, c.readErr
	}
	return c.snapshot, nil
}

func (c *fakeCache) SetActive(_ context.Context, hospitals []*domain.Hospital, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = hospitals
	c.sets++
	return nil
}

func TestRegistry_ListHospitals_CacheHit(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	cached := &domain.Hospital{ID: uuid.New(), Name: "Cached", IsAvailable: true}
	cache := &fakeCache{snapshot: []*domain.Hospital{cached}}

	svc := service.NewRegistryService(store.Hospitals(), cache, nil, newTestLogger())

	got, err := svc.ListHospitals(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != cached.ID {
		t.Fatalf("expected the cached snapshot, got %d entries", len(got))
	}
	if cache.sets != 0 {
		t.Fatalf("cache hit must not repopulate, sets=%d", cache.sets)
	}
}

func TestRegistry_ListHospitals_MissFallsThroughAndRepopulates(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	h := &domain.Hospital{
		ID:          uuid.New(),
		Name:        "City Hospital",
		Location:    domain.Location{Lat: 28.21, Lng: 83.99},
		IsAvailable: true,
	}
	store.PutHospital(h)
	cache := &fakeCache{}

	svc := service.NewRegistryService(store.Hospitals(), cache, nil, newTestLogger())

	got, err := svc.ListHospitals(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != h.ID {
		t.Fatalf("expected store contents, got %d entries", len(got))
	}
	if cache.sets != 1 {
		t.Fatalf("cache must be repopulated after a miss, sets=%d", cache.sets)
	}
}

func TestRegistry_ListHospitals_CacheErrorIsNotFatal(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	h := &domain.Hospital{ID: uuid.New(), Name: "City Hospital", IsAvailable: true}
	store.PutHospital(h)
	cache := &fakeCache{readErr: errors.New("redis down")}

	svc := service.NewRegistryService(store.Hospitals(), cache, nil, newTestLogger())

	got, err := svc.ListHospitals(context.Background())
	if err != nil {
		t.Fatalf("cache failure must fall through to the store: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected store contents, got %d entries", len(got))
	}
}

func TestRegistry_RankHospitals(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	staffed := &domain.Hospital{
		ID:          uuid.New(),
		Name:        "Staffed",
		Location:    domain.Location{Lat: 28.21, Lng: 83.99},
		StaffCount:  map[string]int{"Neurologist": 3},
		IsAvailable: true,
	}
	bare := &domain.Hospital{
		ID:          uuid.New(),
		Name:        "Bare",
		Location:    domain.Location{Lat: 28.21, Lng: 83.99},
		IsAvailable: true,
	}
	store.PutHospital(bare)
	store.PutHospital(staffed)

	svc := service.NewRegistryService(store.Hospitals(), nil, nil, newTestLogger())

	ranked, err := svc.RankHospitals(context.Background(),
		domain.CasualtyNeed{InjuryType: "head injury"},
		domain.Location{Lat: 28.20, Lng: 83.98},
	)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// zero-bed hospitals stay listed on the informational path
	if len(ranked) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ranked))
	}
	if ranked[0].HospitalID != staffed.ID {
		t.Fatalf("staffed hospital must rank first, got %q", ranked[0].HospitalName)
	}
}

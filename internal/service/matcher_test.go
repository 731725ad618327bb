package service_test

import (
	"testing"

	"github.com/google/uuid"

	"lifeline/internal/domain"
	"lifeline/internal/service"
)

func testMatcher() *service.Matcher {
	return service.NewMatcher(testGeo(), service.NewScorer())
}

func hospitalAt(name string, lat, lng float64, beds int) *domain.Hospital {
	return &domain.Hospital{
		ID:            uuid.New(),
		Name:          name,
		Location:      domain.Location{Lat: lat, Lng: lng},
		BedsAvailable: beds,
		StaffCount:    map[string]int{},
		IsAvailable:   true,
	}
}

func TestMatcher_Rank_OrdersByTotalDescending(t *testing.T) {
	t.Parallel()

	matcher := testMatcher()
	from := domain.Location{Lat: 28.20, Lng: 83.98}

	// strong: staffed, stocked, close, plenty of beds
	strong := hospitalAt("Strong", 28.21, 83.99, 25)
	strong.StaffCount["Cardiologist"] = 3
	strong.BloodInventory = domain.BloodInventory{domain.BloodOPos: 10}

	// weak: no staff, no blood, far away, one bed
	weak := hospitalAt("Weak", 27.70, 85.32, 1)

	need := domain.CasualtyNeed{
		InjuryType:       "cardiac arrest",
		BloodType:        domain.BloodOPos,
		BloodUnitsNeeded: 2,
	}

	ranked, err := matcher.Rank([]*domain.Hospital{weak, strong}, need, from, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ranked))
	}
	if ranked[0].HospitalID != strong.ID {
		t.Fatalf("expected %q first, got %q", strong.Name, ranked[0].HospitalName)
	}
	if ranked[0].Score.Total <= ranked[1].Score.Total {
		t.Fatalf("ranking not descending: %v then %v", ranked[0].Score.Total, ranked[1].Score.Total)
	}
	if ranked[0].RequiredSpecialist != "Cardiologist" {
		t.Fatalf("unexpected specialist: %q", ranked[0].RequiredSpecialist)
	}
}

func TestMatcher_Rank_StableOnTies(t *testing.T) {
	t.Parallel()

	matcher := testMatcher()
	from := domain.Location{Lat: 28.20, Lng: 83.98}

	// identical hospitals produce identical totals
	first := hospitalAt("First", 28.21, 83.99, 10)
	second := hospitalAt("Second", 28.21, 83.99, 10)

	need := domain.CasualtyNeed{InjuryType: "minor laceration"}

	ranked, err := matcher.Rank([]*domain.Hospital{first, second}, need, from, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ranked))
	}
	if ranked[0].HospitalID != first.ID || ranked[1].HospitalID != second.ID {
		t.Fatal("tie must keep input order")
	}
}

func TestMatcher_Rank_FiltersUnavailableAndBedless(t *testing.T) {
	t.Parallel()

	matcher := testMatcher()
	from := domain.Location{Lat: 28.20, Lng: 83.98}

	closed := hospitalAt("Closed", 28.21, 83.99, 10)
	closed.IsAvailable = false
	full := hospitalAt("Full", 28.21, 83.99, 0)
	open := hospitalAt("Open", 28.22, 84.00, 3)

	need := domain.CasualtyNeed{InjuryType: "minor laceration"}
	all := []*domain.Hospital{closed, full, open, nil}

	ranked, err := matcher.Rank(all, need, from, true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 1 || ranked[0].HospitalID != open.ID {
		t.Fatalf("requireBed should leave only %q, got %d entries", open.Name, len(ranked))
	}

	// without the bed requirement the full hospital is rankable again
	ranked, err = matcher.Rank(all, need, from, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 entries without bed filter, got %d", len(ranked))
	}
}

func TestMatcher_FindBest(t *testing.T) {
	t.Parallel()

	matcher := testMatcher()
	from := domain.Location{Lat: 28.20, Lng: 83.98}
	need := domain.CasualtyNeed{InjuryType: "minor laceration"}

	got, err := matcher.FindBest(nil, need, from, true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil on empty input, got %+v", got)
	}

	h := hospitalAt("Only", 28.21, 83.99, 5)
	got, err = matcher.FindBest([]*domain.Hospital{h}, need, from, true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got == nil || got.HospitalID != h.ID {
		t.Fatalf("expected %q, got %+v", h.Name, got)
	}
}

func TestMatcher_FindNearestDonor(t *testing.T) {
	t.Parallel()

	matcher := testMatcher()

	reference := hospitalAt("Requester", 28.20, 83.98, 5)
	near := hospitalAt("Near", 28.21, 83.99, 5)
	far := hospitalAt("Far", 27.70, 85.32, 5)

	got, err := matcher.FindNearestDonor([]*domain.Hospital{far, reference, near}, reference)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got == nil || got.Hospital.ID != near.ID {
		t.Fatalf("expected nearest donor %q, got %+v", near.Name, got)
	}
	if got.DistanceKm <= 0 {
		t.Fatalf("expected positive donor distance, got %v", got.DistanceKm)
	}
}

func TestMatcher_FindNearestDonor_SingletonList(t *testing.T) {
	t.Parallel()

	matcher := testMatcher()
	reference := hospitalAt("Requester", 28.20, 83.98, 5)

	got, err := matcher.FindNearestDonor([]*domain.Hospital{reference}, reference)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for singleton list, got %+v", got)
	}
}

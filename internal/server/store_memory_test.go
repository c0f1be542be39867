package server

import (
	"context"
	"testing"
)

func TestMemoryDonorStoreFindByNumber(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDonorStore()

	// A donor whose women_number collides with another donor's mobile: the
	// primary mobile always wins.
	a := &Donor{ID: "a", Mobile: "0170000001", WomenNumber: "0170000002"}
	b := &Donor{ID: "b", Mobile: "0170000002"}
	if err := store.Create(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := store.Create(ctx, b); err != nil {
		t.Fatal(err)
	}

	got, err := store.FindByNumber(ctx, "0170000002")
	if err != nil {
		t.Fatalf("FindByNumber: %v", err)
	}
	if got.ID != "b" {
		t.Errorf("resolved donor %s, want b (mobile match wins)", got.ID)
	}

	got, err = store.FindByNumber(ctx, "0170000001")
	if err != nil {
		t.Fatalf("FindByNumber: %v", err)
	}
	if got.ID != "a" {
		t.Errorf("resolved donor %s, want a", got.ID)
	}

	if _, err := store.FindByNumber(ctx, "0179999999"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryDonorStoreFindByMobile(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDonorStore()

	d := &Donor{ID: "a", Mobile: "0170000001", WomenNumber: "0170000002"}
	if err := store.Create(ctx, d); err != nil {
		t.Fatal(err)
	}

	got, err := store.FindByMobile(ctx, "0170000001")
	if err != nil {
		t.Fatalf("FindByMobile: %v", err)
	}
	if got.ID != "a" {
		t.Errorf("resolved donor %s, want a", got.ID)
	}

	// The alternate women's number never matches here.
	if _, err := store.FindByMobile(ctx, "0170000002"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryDonorStoreEmptyWomenNumber(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDonorStore()

	// An empty lookup key must not match donors with no women_number.
	if err := store.Create(ctx, &Donor{ID: "a", Mobile: "0170000001"}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.FindByNumber(ctx, ""); err != ErrNotFound {
		t.Errorf("empty number matched a donor: %v", err)
	}
}

func TestMemoryDonorStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDonorStore()

	d := &Donor{ID: "a", Mobile: "0170000001", BloodGroup: "O+"}
	if err := store.Create(ctx, d); err != nil {
		t.Fatal(err)
	}

	d.BloodGroup = "A+"
	if err := store.Update(ctx, d); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := store.FindByID(ctx, "a")
	if got.BloodGroup != "A+" {
		t.Errorf("bloodGroup = %q", got.BloodGroup)
	}

	if err := store.Update(ctx, &Donor{ID: "missing"}); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryReferenceStoreLookups(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryReferenceStore()

	rec := &ReferenceRecord{
		ID:         "r1",
		BloodGroup: "O+",
		Districts:  []District{{ID: "1", Name: "Dhaka"}},
		Upazillas:  []Upazilla{{ID: "10", DistrictID: "1", Name: "Savar"}},
	}
	if err := store.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := store.ByDistrictID(ctx, "1")
	if err != nil {
		t.Fatalf("ByDistrictID: %v", err)
	}
	if got.ID != "r1" {
		t.Errorf("record = %s", got.ID)
	}

	if _, err := store.ByDistrictID(ctx, "9"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	got, err = store.ByUpazillaDistrictID(ctx, "1")
	if err != nil {
		t.Fatalf("ByUpazillaDistrictID: %v", err)
	}
	if len(got.Upazillas) != 1 || got.Upazillas[0].Name != "Savar" {
		t.Errorf("upazillas = %+v", got.Upazillas)
	}
}

func TestMemoryReferenceStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryReferenceStore()

	rec := &ReferenceRecord{
		ID:        "r1",
		Districts: []District{{ID: "1", Name: "Dhaka"}},
	}
	if err := store.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}

	// Mutating a returned record must not leak into the store.
	got, _ := store.ByDistrictID(ctx, "1")
	got.Districts[0].Name = "changed"

	again, _ := store.ByDistrictID(ctx, "1")
	if again.Districts[0].Name != "Dhaka" {
		t.Errorf("stored record mutated through a returned copy")
	}
}

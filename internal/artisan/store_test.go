package artisan

import (
	"context"
	"testing"
)

func attrs(name, state, city string) Attributes {
	return Attributes{
		FullName:  name,
		Phone:     "555-0100",
		Email:     name + "@example.com",
		State:     state,
		City:      city,
		Specialty: "carpentry",
	}
}

func TestMemoryStoreCreateAssignsIdentity(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first, err := store.Create(ctx, attrs("ada", "A", "X"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := store.Create(ctx, attrs("bob", "A", "X"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if first.ID.IsZero() || second.ID.IsZero() {
		t.Fatal("expected generated identifiers")
	}
	if first.ID == second.ID {
		t.Errorf("identifiers collide: %s", first.ID.Hex())
	}
	if first.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}
}

func TestMemoryStoreFindPreservesInsertionOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	names := []string{"carol", "ada", "bob"}
	for _, name := range names {
		if _, err := store.Create(ctx, attrs(name, "A", "X")); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := store.Find(ctx, Filter{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != len(names) {
		t.Fatalf("got %d artisans, want %d", len(got), len(names))
	}
	for i, name := range names {
		if got[i].FullName != name {
			t.Errorf("position %d = %q, want %q", i, got[i].FullName, name)
		}
	}
}

func TestMemoryStoreFindEmpty(t *testing.T) {
	got, err := NewMemoryStore().Find(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Find on empty store = %#v, want empty non-nil slice", got)
	}
}

func TestFilterMatches(t *testing.T) {
	a := Artisan{Attributes: attrs("ada", "California", "Fresno")}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty", Filter{}, true},
		{"state", Filter{State: "California"}, true},
		{"city", Filter{City: "Fresno"}, true},
		{"both", Filter{State: "California", City: "Fresno"}, true},
		{"wrong city", Filter{State: "California", City: "Davis"}, false},
		{"case sensitive", Filter{State: "california"}, false},
		{"no substring", Filter{State: "Calif"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(a); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

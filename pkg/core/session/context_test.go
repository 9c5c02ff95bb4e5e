package session

import "testing"

func TestRegistry_CreateGetDrop(t *testing.T) {
	r := NewRegistry()

	ctx := r.Create("statement.xlsx")
	if ctx.ID == "" {
		t.Fatal("session must get an ID")
	}
	if ctx.FileName != "statement.xlsx" {
		t.Errorf("FileName = %q", ctx.FileName)
	}

	got, ok := r.Get(ctx.ID)
	if !ok || got != ctx {
		t.Fatal("Get must return the created session")
	}

	r.Drop(ctx.ID)
	if _, ok := r.Get(ctx.ID); ok {
		t.Fatal("dropped session must be gone")
	}
}

func TestRegistry_NewUploadIsFreshSession(t *testing.T) {
	r := NewRegistry()
	first := r.Create("a.xlsx")
	second := r.Create("b.xlsx")
	if first.ID == second.ID {
		t.Fatal("each upload must get its own session")
	}
	if r.Count() != 2 {
		t.Errorf("Count = %d, want 2", r.Count())
	}
}

func TestRegistry_UnknownID(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("nope"); ok {
		t.Fatal("unknown ID must miss")
	}
}

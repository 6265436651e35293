package pystr

import "testing"

func TestStrNameInterning(t *testing.T) {
	table := NewTable()

	foo := table.Get("foo")
	if foo != 1 {
		t.Fatalf("Get(foo) = %d, want 1", foo)
	}
	if again := table.Get("foo"); again != foo {
		t.Fatalf("Get(foo) second call = %d, want %d", again, foo)
	}
	bar := table.Get("bar")
	if bar != 2 {
		t.Fatalf("Get(bar) = %d, want 2", bar)
	}

	if table.IsValid(0) {
		t.Error("IsValid(0) = true, want false")
	}
	if !table.IsValid(1) {
		t.Error("IsValid(1) = false, want true")
	}
	if table.IsValid(3) {
		t.Error("IsValid(3) = true, want false")
	}
}

func TestStrNameStability(t *testing.T) {
	table := NewTable()
	h1 := table.Get("same")
	h2 := table.Get("same")
	if h1 != h2 {
		t.Fatalf("handles differ across calls: %d vs %d", h1, h2)
	}
	if table.Sv(h1).String() != "same" {
		t.Fatalf("Sv() = %q, want same", table.Sv(h1).String())
	}
}

func TestStrNameDistinctViews(t *testing.T) {
	table := NewTable()
	a := table.Get("alpha")
	b := table.Get("beta")
	if a == b {
		t.Fatal("distinct strings interned to the same handle")
	}
}

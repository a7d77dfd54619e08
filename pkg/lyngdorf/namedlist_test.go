package lyngdorf

import "testing"

func TestNamedListFill(t *testing.T) {
	var l namedList
	if !l.full() {
		t.Fatal("list with no pending count reports not full")
	}

	l.setCount(2)
	if l.full() {
		t.Fatal("empty counted list reports full")
	}
	l.add(0, "Apple TV")
	if l.full() {
		t.Fatal("half-filled list reports full")
	}
	l.add(1, "Bluray")
	if !l.full() {
		t.Fatal("filled list reports not full")
	}

	entries := l.entries()
	if len(entries) != 2 || entries[0].Name != "Apple TV" || entries[1].Name != "Bluray" {
		t.Errorf("entries = %v", entries)
	}
}

func TestNamedListIndexOf(t *testing.T) {
	var l namedList
	l.setCount(2)
	l.add(0, "Apple TV")
	l.add(1, "Bluray")

	if i, ok := l.indexOf("apple tv"); !ok || i != 0 {
		t.Errorf("indexOf(apple tv) = %d, %v", i, ok)
	}
	if _, ok := l.indexOf("Tape"); ok {
		t.Error("indexOf(Tape) found a match")
	}
}

func TestNamedListCountResets(t *testing.T) {
	var l namedList
	l.setCount(1)
	l.add(0, "A")
	l.setCount(3)
	if l.full() {
		t.Error("list still full after a new count")
	}
	if len(l.entries()) != 0 {
		t.Error("old entries survived the reset")
	}
}

package theme

import "testing"

func TestSetActiveFallsBack(t *testing.T) {
	defer SetActive(FlexokiDark.Name)

	SetActive("tokyo-night")
	if Active.Name != "tokyo-night" {
		t.Fatalf("Active = %q, want tokyo-night", Active.Name)
	}
	SetActive("no-such-theme")
	if Active.Name != FlexokiDark.Name {
		t.Fatalf("unknown theme should fall back to %q, got %q", FlexokiDark.Name, Active.Name)
	}
}

func TestNamesMatchAll(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("got %d names, want %d", len(names), len(All))
	}
	for i, n := range names {
		if ByName(n).Name != n {
			t.Fatalf("name %d (%q) does not round-trip", i, n)
		}
	}
}

func TestSigned(t *testing.T) {
	if FlexokiDark.Signed(true) != FlexokiDark.Red || FlexokiDark.Signed(false) != FlexokiDark.Green {
		t.Fatal("Signed should map negative to red and non-negative to green")
	}
}

func TestMoneyRolesAreDistinct(t *testing.T) {
	for _, th := range All {
		if th.Income == "" || th.Expense == "" || th.Savings == "" {
			t.Fatalf("%s: money roles must all be set", th.Name)
		}
		if th.Income == th.Expense {
			t.Fatalf("%s: income and expense share a color", th.Name)
		}
	}
}

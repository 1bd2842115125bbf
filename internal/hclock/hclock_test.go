package hclock

import "testing"

func TestAddCarriesSeconds(t *testing.T) {
	start := Time{Sec: 10, Nsec: 900_000_000}
	got := start.Add(200_000_000)
	want := Time{Sec: 11, Nsec: 100_000_000}
	if got != want {
		t.Fatalf("Add = %+v, want %+v", got, want)
	}
}

func TestAddNegativeBorrows(t *testing.T) {
	start := Time{Sec: 11, Nsec: 100_000_000}
	got := start.Add(-200_000_000)
	want := Time{Sec: 10, Nsec: 900_000_000}
	if got != want {
		t.Fatalf("Add = %+v, want %+v", got, want)
	}
}

func TestSubRoundtrip(t *testing.T) {
	a := Time{Sec: 100, Nsec: 500}
	b := Time{Sec: 99, Nsec: 999_999_900}
	delta := a.Sub(b)
	if delta != 600 {
		t.Fatalf("Sub = %d, want 600", delta)
	}
	if !a.Before(a.Add(1)) {
		t.Fatal("Before should hold for a vs a+1ns")
	}
}

func TestBefore(t *testing.T) {
	a := Time{Sec: 1, Nsec: 0}
	b := Time{Sec: 2, Nsec: 0}
	if !a.Before(b) {
		t.Fatal("expected a before b")
	}
	if b.Before(a) {
		t.Fatal("expected b not before a")
	}
}

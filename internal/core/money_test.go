package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12", 1200, true},
		{"0.5", 50, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"0", 0, false},
		{"", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
	}
	for i, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("case %d (%q): unexpected error %v", i, tc.in, err)
			}
			if got.Cents != tc.want {
				t.Fatalf("case %d (%q): got %d, want %d", i, tc.in, got.Cents, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("case %d (%q): expected ErrInvalidAmount, got %v", i, tc.in, err)
		}
	}
}

func TestParseLimitAllowsZero(t *testing.T) {
	got, err := ParseLimit("0")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got.Cents != 0 {
		t.Fatalf("got %d, want 0", got.Cents)
	}
	if _, err := ParseLimit("-1"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("negative limit should be rejected, got %v", err)
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1234, "$12.34"},
		{5, "$0.05"},
		{0, "$0.00"},
		{-2050, "-$20.50"},
	}
	for i, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

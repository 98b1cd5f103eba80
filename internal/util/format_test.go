package util

import "testing"

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{100000, "100,000"},
		{1234567, "1,234,567"},
		{-5000, "-5,000"},
	}

	for _, tc := range cases {
		if got := FormatCount(tc.in); got != tc.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDollars(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{298.12, "$298.12"},
		{1234.5, "$1,234.50"},
		{-20, "-$20.00"},
		{894360, "$894,360.00"},
	}

	for _, tc := range cases {
		if got := FormatDollars(tc.in); got != tc.want {
			t.Errorf("FormatDollars(%g) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.8486); got != "84.86%" {
		t.Errorf("FormatPercent(0.8486) = %q", got)
	}
}

package srt

import (
	"math"
	"testing"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"00:00:00,000", 0},
		{"00:03:31,100", 211.1},
		{"01:02:03,500", 3723.5},
		{" 00:00:05,250 ", 5.25},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q): %v", tc.in, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseTimestampRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "3:31,100", "aa:bb:cc,ddd", "00:00"} {
		if _, err := ParseTimestamp(in); err == nil {
			t.Errorf("ParseTimestamp(%q): expected error", in)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "00:00:00,000"},
		{211.1, "00:03:31,100"},
		{3723.5, "01:02:03,500"},
		{-1, "00:00:00,000"},
	}
	for _, tc := range cases {
		if got := FormatTimestamp(tc.in); got != tc.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3:31,100", "00:03:31,100"},
		{"00:03:31.100", "00:03:31,100"},
		{"00:03:31", "00:03:31,000"},
		{"1:02:03,5", "01:02:03,005"},
		{"31,100", "00:00:31,100"},
		{"00:03:31,100", "00:03:31,100"},
		{"garbage", "garbage"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeTimestamp(tc.in); got != tc.want {
			t.Errorf("NormalizeTimestamp(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotentOnCanonical(t *testing.T) {
	for _, in := range []string{"00:00:01,250", "00:03:31,100", "12:34:56,789"} {
		seconds, err := ParseTimestamp(in)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q): %v", in, err)
		}
		canonical := FormatTimestamp(seconds)
		if got := NormalizeTimestamp(canonical); got != canonical {
			t.Errorf("NormalizeTimestamp(%q) = %q, want unchanged", canonical, got)
		}
	}
}

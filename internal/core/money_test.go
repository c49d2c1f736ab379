package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"1000", 100000, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyMulRate(t *testing.T) {
	cases := []struct {
		cents    int64
		num, den int64
		want     int64
	}{
		{100000, 50, 100, 50000},
		{100000, 5, 100, 5000},
		{100000, 1, 60, 1667}, // 1666.66 rounds up
		{100000, 3, 100, 3000},
		{1, 1, 60, 0},
		{30, 1, 60, 1}, // exact half rounds up
	}
	for _, tc := range cases {
		got := Money{Cents: tc.cents}.MulRate(tc.num, tc.den)
		if got.Cents != tc.want {
			t.Fatalf("%d × %d/%d expected %d, got %d", tc.cents, tc.num, tc.den, tc.want, got.Cents)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0,00"},
		{5, "0,05"},
		{5000, "50,00"},
		{123456, "1234,56"},
		{-150, "-1,50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("%d expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

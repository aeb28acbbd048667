package textutil

import (
	"reflect"
	"testing"
)

func TestSortNatural(t *testing.T) {
	values := []string{
		"Chương 10", "Chương 2", "Chương 1", "Chương 11", "Chương 3",
	}
	SortNatural(values)
	want := []string{"Chương 1", "Chương 2", "Chương 3", "Chương 10", "Chương 11"}
	if !reflect.DeepEqual(values, want) {
		t.Fatalf("got %v, want %v", values, want)
	}
}

func TestNaturalLess(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"chapter 2", "chapter 10", true},
		{"chapter 10", "chapter 2", false},
		{"Chapter 2", "chapter 10", true}, // case-insensitive text runs
		{"a", "b", true},
		{"file2part3", "file2part10", true},
		{"007", "8", true},
		{"same", "same", false},
	}
	for _, tc := range cases {
		if got := NaturalLess(tc.a, tc.b); got != tc.want {
			t.Errorf("NaturalLess(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Chapter 1: The Start", "Chapter 1- The Start"},
		{"what?", "what"},
		{"  padded  ", "padded"},
		{"a/b\\c", "a-b-c"},
	}
	for _, tc := range cases {
		if got := SanitizeFileName(tc.in); got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

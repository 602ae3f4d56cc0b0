package main

import "testing"

func TestShortID(t *testing.T) {
	cases := map[string]string{
		"":                                     "",
		"task-1":                               "task-1",
		"12345678":                             "12345678",
		"0b9c2f4e-6d1a-4c7e-9f3b-2a8d5e1c7b40": "0b9c2f4e",
	}
	for in, want := range cases {
		if got := shortID(in); got != want {
			t.Fatalf("shortID(%q) = %q, want %q", in, got, want)
		}
	}
}

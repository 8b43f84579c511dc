package tool

import (
	"encoding/json"
	"testing"
)

func TestStringArg(t *testing.T) {
	args := map[string]any{"set": "value", "empty": "", "wrong": 7}

	if got := stringArg(args, "set", "d"); got != "value" {
		t.Fatalf("stringArg(set) = %q, want value", got)
	}
	if got := stringArg(args, "empty", "d"); got != "d" {
		t.Fatalf("stringArg(empty) = %q, want fallback", got)
	}
	if got := stringArg(args, "wrong", "d"); got != "d" {
		t.Fatalf("stringArg(wrong) = %q, want fallback", got)
	}
	if got := stringArg(args, "missing", "d"); got != "d" {
		t.Fatalf("stringArg(missing) = %q, want fallback", got)
	}
}

func TestIntArg(t *testing.T) {
	args := map[string]any{
		"int":     15,
		"int64":   int64(16),
		"float":   float64(17),
		"number":  json.Number("18"),
		"badnum":  json.Number("x"),
		"string":  "19",
		"boolean": true,
	}

	cases := []struct {
		key  string
		want int
	}{
		{"int", 15},
		{"int64", 16},
		{"float", 17},
		{"number", 18},
		{"badnum", 9},
		{"string", 9},
		{"boolean", 9},
		{"missing", 9},
	}
	for _, tc := range cases {
		if got := intArg(args, tc.key, 9); got != tc.want {
			t.Fatalf("intArg(%s) = %d, want %d", tc.key, got, tc.want)
		}
	}
}

package vdom

import (
	"math"
	"testing"
)

func TestLooseEqual(t *testing.T) {
	m := map[string]any{"a": 1}
	tests := []struct {
		a, b any
		want bool
	}{
		{nil, nil, true},
		{nil, "", false},
		{"", nil, false},
		{"a", "a", true},
		{"a", "b", false},
		{1, 1.0, true},
		{int64(2), uint8(2), true},
		{"1", 1, true},
		{" 2.5 ", 2.5, true},
		{"", 0, true},
		{"x", 0, false},
		{true, 1, true},
		{false, "0", true},
		{true, "true", false},
		{true, false, false},
		{m, m, true},
		{m, map[string]any{"a": 1}, false},
		{[]any{1}, []any{1}, false},
		{"0x10", 16, true},
		{"0b11", 3, true},
		{"-0x10", -16, false},
		{"Infinity", math.Inf(1), true},
		{"-Infinity", math.Inf(-1), true},
		{"inf", math.Inf(1), false},
		{"+Inf", math.Inf(1), false},
		{"1e", 1, false},
		{"1e2", 100, true},
		{"1_000", 1000, false},
	}
	for _, tt := range tests {
		if got := LooseEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("LooseEqual(%#v, %#v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

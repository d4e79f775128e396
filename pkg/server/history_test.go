package server

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHistory(t *testing.T) {
	h := NewHistory(3)
	if _, ok := h.Since(0); ok {
		t.Error("empty history claims to cover seq 0")
	}
	for seq := uint64(1); seq <= 5; seq++ {
		h.Add(seq, []byte{byte(seq)})
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	tests := []struct {
		since  uint64
		want   [][]byte
		wantOK bool
	}{
		{since: 1, wantOK: false}, // frame 2 was evicted
		{since: 2, want: [][]byte{{3}, {4}, {5}}, wantOK: true},
		{since: 4, want: [][]byte{{5}}, wantOK: true},
		{since: 5, wantOK: true},
		{since: 9, wantOK: false},
	}
	for _, tt := range tests {
		got, ok := h.Since(tt.since)
		if ok != tt.wantOK {
			t.Errorf("Since(%d) ok = %v, want %v", tt.since, ok, tt.wantOK)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Since(%d) mismatch (-want +got):\n%s", tt.since, diff)
		}
	}

	h.Clear()
	if _, ok := h.Since(4); ok || h.Len() != 0 {
		t.Error("Clear left frames behind")
	}
}

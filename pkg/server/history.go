package server

// History is a ring buffer of encoded patch frames, used to catch up a
// client that reconnects after missing a few. It is not safe for
// concurrent use; Session guards it with its own lock.
type History struct {
	frames [][]byte
	seqs   []uint64
	head   int // next write position
	count  int
}

// NewHistory creates a history holding up to capacity frames.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 100
	}
	return &History{
		frames: make([][]byte, capacity),
		seqs:   make([]uint64, capacity),
	}
}

// Add stores the frame with sequence number seq, evicting the oldest when
// full. Sequence numbers must increase by one per call.
func (h *History) Add(seq uint64, frame []byte) {
	h.frames[h.head] = frame
	h.seqs[h.head] = seq
	h.head = (h.head + 1) % len(h.frames)
	if h.count < len(h.frames) {
		h.count++
	}
}

// Since returns the frames after seq, oldest first. ok is false when some of
// them were already evicted or seq is ahead of the newest frame.
func (h *History) Since(seq uint64) (frames [][]byte, ok bool) {
	if h.count == 0 {
		return nil, false
	}
	oldest := (h.head - h.count + len(h.frames)) % len(h.frames)
	minSeq := h.seqs[oldest]
	maxSeq := h.seqs[(h.head-1+len(h.frames))%len(h.frames)]
	if seq > maxSeq || seq+1 < minSeq {
		return nil, false
	}
	for i := 0; i < h.count; i++ {
		idx := (oldest + i) % len(h.frames)
		if h.seqs[idx] > seq {
			frames = append(frames, h.frames[idx])
		}
	}
	return frames, true
}

// Len returns the number of stored frames.
func (h *History) Len() int { return h.count }

// Clear drops every frame.
func (h *History) Clear() {
	for i := range h.frames {
		h.frames[i] = nil
		h.seqs[i] = 0
	}
	h.head = 0
	h.count = 0
}

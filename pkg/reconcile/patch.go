package reconcile

import (
	"sync"
	"time"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// PatchOp is the type of a recorded mutation.
type PatchOp uint8

const (
	OpAppendChild    PatchOp = 0x01 // Insert Node at the end of the container at Path
	OpInsertChild    PatchOp = 0x02 // Insert Node at Index in the container at Path
	OpMoveChild      PatchOp = 0x03 // Move child Index to position Value (int)
	OpRemoveChild    PatchOp = 0x04 // Remove child Index of the container at Path
	OpReplace        PatchOp = 0x05 // Replace child Index with Node
	OpUpdateAttr     PatchOp = 0x06 // Set attribute Name to Value
	OpPatchAttr      PatchOp = 0x07 // Merge map delta Value into attribute Name
	OpRemoveAttr     PatchOp = 0x08 // Remove attribute Name
	OpUpdateText     PatchOp = 0x09 // Set text data, textContent or innerHTML (Name)
	OpRemoveText     PatchOp = 0x0A // Clear the text content of an element
	OpRemoveChildren PatchOp = 0x0B // Remove every child of an element
	OpSetListener    PatchOp = 0x0C // Bind a listener for event kind Name
	OpRemoveListener PatchOp = 0x0D // Unbind the listener for event kind Name
	OpUpdateComment  PatchOp = 0x0E // Set comment data to Value
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case OpAppendChild:
		return "AppendChild"
	case OpInsertChild:
		return "InsertChild"
	case OpMoveChild:
		return "MoveChild"
	case OpRemoveChild:
		return "RemoveChild"
	case OpReplace:
		return "Replace"
	case OpUpdateAttr:
		return "UpdateAttr"
	case OpPatchAttr:
		return "PatchAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpUpdateText:
		return "UpdateText"
	case OpRemoveText:
		return "RemoveText"
	case OpRemoveChildren:
		return "RemoveChildren"
	case OpSetListener:
		return "SetListener"
	case OpRemoveListener:
		return "RemoveListener"
	case OpUpdateComment:
		return "UpdateComment"
	default:
		return "Unknown"
	}
}

// Text targets of OpUpdateText.
const (
	TextData    = ""            // Path is a text node
	TextContent = "textContent" // Path is an element with text children
	TextHTML    = "innerHTML"   // Path is an element with raw children
)

// Patch represents a single mutation of the live tree, in the order it was
// applied. Path is the child-index path from the engine's root to the
// target node, or to the container for child operations. Replaying a log in
// order against a copy of the initial live tree reproduces the final one.
type Patch struct {
	Op    PatchOp
	Path  []int
	Index int
	Name  string
	Value any
	Node  *vdom.Node // For AppendChild/InsertChild/Replace
}

// Recorder receives the patches of a pass.
type Recorder interface {
	Record(p Patch)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(Patch)

// Record implements Recorder.
func (f RecorderFunc) Record(p Patch) { f(p) }

// PatchLog collects patches. It is safe for concurrent use.
type PatchLog struct {
	mu      sync.Mutex
	patches []Patch
}

// Record implements Recorder.
func (l *PatchLog) Record(p Patch) {
	l.mu.Lock()
	l.patches = append(l.patches, p)
	l.mu.Unlock()
}

// Patches returns a copy of the collected patches.
func (l *PatchLog) Patches() []Patch {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Patch, len(l.patches))
	copy(out, l.patches)
	return out
}

// Take returns the collected patches and clears the log.
func (l *PatchLog) Take() []Patch {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.patches
	l.patches = nil
	return out
}

// Reset clears the log.
func (l *PatchLog) Reset() {
	l.mu.Lock()
	l.patches = nil
	l.mu.Unlock()
}

// Len returns the number of collected patches.
func (l *PatchLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.patches)
}

// Count returns how many collected patches have the given op.
func (l *PatchLog) Count(op PatchOp) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, p := range l.patches {
		if p.Op == op {
			n++
		}
	}
	return n
}

// Ops returns the ops of the collected patches in order.
func (l *PatchLog) Ops() []PatchOp {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]PatchOp, len(l.patches))
	for i, p := range l.patches {
		out[i] = p.Op
	}
	return out
}

// MultiRecorder fans patches out to several recorders.
type MultiRecorder []Recorder

// Record implements Recorder.
func (m MultiRecorder) Record(p Patch) {
	for _, r := range m {
		r.Record(p)
	}
}

// ObservePass forwards pass timings to the recorders that want them.
func (m MultiRecorder) ObservePass(d time.Duration, err error) {
	for _, r := range m {
		if obs, ok := r.(PassObserver); ok {
			obs.ObservePass(d, err)
		}
	}
}

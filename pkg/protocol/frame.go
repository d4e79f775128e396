package protocol

import (
	"errors"
	"io"
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameEvent    FrameType = 0x01 // Client → Server event
	FramePatches  FrameType = 0x02 // Server → Client patches
	FrameSnapshot FrameType = 0x03 // Server → Client full container copy
	FrameError    FrameType = 0x05 // Error message
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameEvent:
		return "Event"
	case FramePatches:
		return "Patches"
	case FrameSnapshot:
		return "Snapshot"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// ErrInvalidFrameType is returned for an unknown frame type byte.
var ErrInvalidFrameType = errors.New("protocol: invalid frame type")

// Frame is one websocket message: a type byte followed by the payload.
type Frame struct {
	Type    FrameType
	Payload []byte
}

// NewFrame creates a frame.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode returns the frame bytes.
func (f *Frame) Encode() []byte {
	buf := make([]byte, 1+len(f.Payload))
	buf[0] = byte(f.Type)
	copy(buf[1:], f.Payload)
	return buf
}

// DecodeFrame decodes a frame. The payload aliases data.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < 1 {
		return nil, io.ErrUnexpectedEOF
	}
	ft := FrameType(data[0])
	switch ft {
	case FrameEvent, FramePatches, FrameSnapshot, FrameError:
	default:
		return nil, ErrInvalidFrameType
	}
	return &Frame{Type: ft, Payload: data[1:]}, nil
}

// Package protocol implements the binary wire format that carries recorded
// patches from a server-side live tree to remote copies of it.
//
// # Frames
//
// Every websocket message is one frame: a type byte followed by the
// payload.
//
//   - FrameEvent (0x01): client → server event aimed at a node path
//   - FramePatches (0x02): server → client batch of patches
//   - FrameSnapshot (0x03): server → client copy of the whole container
//   - FrameError (0x05): error message
//
// # Encoding
//
//   - Varint: unsigned integers, protobuf-style
//   - ZigZag: signed integers as unsigned varints
//   - Length-prefixed: strings and collections
//   - Tagged values: attribute values keep their shape (nil, bool, int,
//     float, string, array, map)
//
// Nodes travel structurally, as the live nodes the server built, so a
// client never has to parse markup and the child indexes in patch paths
// stay valid on both ends.
//
// Example UpdateText patch:
//
//	[Op: 0x09][Path: count, varints][Name: len-prefixed][Value: 0x04 len-prefixed]
package protocol

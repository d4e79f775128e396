package protocol

import (
	"testing"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
)

// FuzzDecodePatches checks that arbitrary payloads never panic.
func FuzzDecodePatches(f *testing.F) {
	el := dom.NewElement("p", dom.NamespaceHTML)
	el.SetAttribute("class", "x")
	el.AppendChild(dom.NewText("hi"))
	seed, _ := EncodePatches(&PatchesFrame{Seq: 1, Patches: []Patch{
		{Op: reconcile.OpInsertChild, Path: []int{0}, Index: 1, Nodes: []*Node{FromDOM(el)}},
		{Op: reconcile.OpUpdateAttr, Path: []int{0, 1}, Name: "style", Value: map[string]any{"a": []any{1.5, true}}},
		{Op: reconcile.OpMoveChild, Path: []int{0}, Index: 2, Value: 0},
	}})
	f.Add(seed)
	f.Add([]byte{})
	f.Add([]byte{0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0x0F})

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = DecodePatches(data)
	})
}

// FuzzDecodeEvent checks that arbitrary payloads never panic.
func FuzzDecodeEvent(f *testing.F) {
	seed, _ := EncodeEvent(&Event{Seq: 3, Path: []int{0, 2}, Type: "input", Detail: "hello"})
	f.Add(seed)
	f.Add([]byte{0x00})

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = DecodeEvent(data)
	})
}

// FuzzDecodeFrame checks that arbitrary frames never panic.
func FuzzDecodeFrame(f *testing.F) {
	f.Add(NewFrame(FrameEvent, []byte{0x01, 0x02}).Encode())
	f.Add([]byte{0xFF})

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = DecodeFrame(data)
	})
}

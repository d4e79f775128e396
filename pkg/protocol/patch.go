package protocol

import (
	"fmt"

	"github.com/vango-dev/vtree/pkg/reconcile"
)

// Patch is the wire form of a reconcile.Patch. Inserted and replacing
// subtrees travel as the live nodes they were built into.
type Patch struct {
	Op    reconcile.PatchOp
	Path  []int
	Index int
	Name  string
	Value any
	Nodes []*Node
}

// PatchesFrame is a batch of patches with a sequence number.
type PatchesFrame struct {
	Seq     uint64
	Patches []Patch
}

// FromPatches converts recorded patches to wire form. It must run before
// the next pass over the same live tree, since node payloads are copied from
// the live nodes as they are now.
func FromPatches(patches []reconcile.Patch) ([]Patch, error) {
	out := make([]Patch, len(patches))
	for i, p := range patches {
		w := Patch{Op: p.Op, Path: p.Path, Index: p.Index, Name: p.Name, Value: p.Value}
		switch p.Op {
		case reconcile.OpAppendChild, reconcile.OpInsertChild, reconcile.OpReplace:
			if p.Node == nil {
				return nil, fmt.Errorf("protocol: %s patch without a node", p.Op)
			}
			live := p.Node.LiveNodes()
			if len(live) == 0 {
				return nil, fmt.Errorf("protocol: %s node %s is no longer built", p.Op, p.Node)
			}
			w.Nodes = make([]*Node, len(live))
			for j, x := range live {
				w.Nodes[j] = FromDOM(x)
			}
		}
		out[i] = w
	}
	return out, nil
}

// EncodePatches encodes a patches frame payload.
func EncodePatches(pf *PatchesFrame) ([]byte, error) {
	e := NewEncoder()
	if err := EncodePatchesTo(e, pf); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// EncodePatchesTo encodes a patches frame payload using e.
func EncodePatchesTo(e *Encoder, pf *PatchesFrame) error {
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))
	for i := range pf.Patches {
		if err := encodePatch(e, &pf.Patches[i]); err != nil {
			return fmt.Errorf("protocol: patch %d: %w", i, err)
		}
	}
	return nil
}

func encodePatch(e *Encoder, p *Patch) error {
	e.WriteByte(byte(p.Op))
	e.WriteInts(p.Path)

	switch p.Op {
	case reconcile.OpAppendChild, reconcile.OpInsertChild, reconcile.OpReplace:
		e.WriteUvarint(uint64(p.Index))
		e.WriteUvarint(uint64(len(p.Nodes)))
		for _, n := range p.Nodes {
			EncodeNode(e, n)
		}

	case reconcile.OpMoveChild:
		to, ok := p.Value.(int)
		if !ok {
			return fmt.Errorf("move target has type %T", p.Value)
		}
		e.WriteUvarint(uint64(p.Index))
		e.WriteUvarint(uint64(to))

	case reconcile.OpRemoveChild:
		e.WriteUvarint(uint64(p.Index))

	case reconcile.OpUpdateAttr, reconcile.OpPatchAttr, reconcile.OpUpdateText:
		e.WriteString(p.Name)
		return EncodeValue(e, p.Value)

	case reconcile.OpRemoveAttr, reconcile.OpSetListener, reconcile.OpRemoveListener:
		e.WriteString(p.Name)

	case reconcile.OpUpdateComment:
		return EncodeValue(e, p.Value)

	case reconcile.OpRemoveText, reconcile.OpRemoveChildren:
		// Path is enough.

	default:
		return fmt.Errorf("unknown op %d", p.Op)
	}
	return nil
}

// DecodePatches decodes a patches frame payload.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	return DecodePatchesFrom(NewDecoder(data))
}

// DecodePatchesFrom decodes a patches frame payload from d.
func DecodePatchesFrom(d *Decoder) (*PatchesFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	patches := make([]Patch, count)
	for i := range patches {
		if err := decodePatch(d, &patches[i]); err != nil {
			return nil, fmt.Errorf("protocol: patch %d: %w", i, err)
		}
	}
	return &PatchesFrame{Seq: seq, Patches: patches}, nil
}

func decodePatch(d *Decoder, p *Patch) error {
	op, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = reconcile.PatchOp(op)
	if p.Path, err = d.ReadInts(); err != nil {
		return err
	}

	switch p.Op {
	case reconcile.OpAppendChild, reconcile.OpInsertChild, reconcile.OpReplace:
		if p.Index, err = d.ReadInt(); err != nil {
			return err
		}
		count, err := d.ReadCollectionCount()
		if err != nil {
			return err
		}
		p.Nodes = make([]*Node, count)
		for i := range p.Nodes {
			if p.Nodes[i], err = DecodeNode(d); err != nil {
				return err
			}
		}

	case reconcile.OpMoveChild:
		if p.Index, err = d.ReadInt(); err != nil {
			return err
		}
		to, err := d.ReadInt()
		if err != nil {
			return err
		}
		p.Value = to

	case reconcile.OpRemoveChild:
		p.Index, err = d.ReadInt()

	case reconcile.OpUpdateAttr, reconcile.OpPatchAttr, reconcile.OpUpdateText:
		if p.Name, err = d.ReadString(); err != nil {
			return err
		}
		p.Value, err = DecodeValue(d)

	case reconcile.OpRemoveAttr, reconcile.OpSetListener, reconcile.OpRemoveListener:
		p.Name, err = d.ReadString()

	case reconcile.OpUpdateComment:
		p.Value, err = DecodeValue(d)

	case reconcile.OpRemoveText, reconcile.OpRemoveChildren:

	default:
		return fmt.Errorf("unknown op %d", op)
	}
	return err
}

package protocol

// Event is a client interaction aimed at the node at Path, relative to the
// container. Type is the event kind ("click", "input").
type Event struct {
	Seq    uint64
	Path   []int
	Type   string
	Detail any
}

// EncodeEvent encodes an event payload.
func EncodeEvent(ev *Event) ([]byte, error) {
	e := NewEncoder()
	e.WriteUvarint(ev.Seq)
	e.WriteInts(ev.Path)
	e.WriteString(ev.Type)
	if err := EncodeValue(e, ev.Detail); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// DecodeEvent decodes an event payload.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	ev := &Event{}
	var err error
	if ev.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if ev.Path, err = d.ReadInts(); err != nil {
		return nil, err
	}
	if ev.Type, err = d.ReadString(); err != nil {
		return nil, err
	}
	if ev.Detail, err = DecodeValue(d); err != nil {
		return nil, err
	}
	return ev, nil
}

// Snapshot is a full copy of the container's children, sent to a client
// when it connects. Seq is the sequence number of the last patch frame it
// includes.
type Snapshot struct {
	Seq   uint64
	Nodes []*Node
}

// EncodeSnapshot encodes a snapshot payload.
func EncodeSnapshot(s *Snapshot) []byte {
	e := NewEncoder()
	e.WriteUvarint(s.Seq)
	e.WriteUvarint(uint64(len(s.Nodes)))
	for _, n := range s.Nodes {
		EncodeNode(e, n)
	}
	return e.Bytes()
}

// DecodeSnapshot decodes a snapshot payload.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	d := NewDecoder(data)
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	s := &Snapshot{Seq: seq, Nodes: make([]*Node, count)}
	for i := range s.Nodes {
		if s.Nodes[i], err = DecodeNode(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ErrorMessage reports a failure to the client.
type ErrorMessage struct {
	Code    string
	Message string
}

// EncodeError encodes an error payload.
func EncodeError(m *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteString(m.Code)
	e.WriteString(m.Message)
	return e.Bytes()
}

// DecodeError decodes an error payload.
func DecodeError(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	code, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	msg, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: code, Message: msg}, nil
}

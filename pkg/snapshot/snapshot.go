// Package snapshot stores rendered trees: page markup for static hosting,
// or a binary container snapshot a client can start from.
package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Content types of stored objects.
const (
	ContentTypeMarkup   = "text/html; charset=utf-8"
	ContentTypeSnapshot = "application/vnd.vtree.snapshot"
)

const timeFormat = time.RFC3339

func parseTime(s string) (time.Time, error) { return time.Parse(timeFormat, s) }

// ErrNotFound is returned when no object is stored under a key.
var ErrNotFound = errors.New("snapshot: not found")

// ErrTooLarge is returned when an object exceeds the store's size limit.
var ErrTooLarge = errors.New("snapshot: object too large")

// Store persists snapshot objects by key.
type Store interface {
	Put(ctx context.Context, obj *Object) error
	Get(ctx context.Context, key string) (*Object, error)
}

// Object is one stored snapshot.
type Object struct {
	Key         string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}

// Markup renders tree to an object holding its markup.
func Markup(key string, tree *vdom.Node) (*Object, error) {
	s, err := render.RenderToString(tree)
	if err != nil {
		return nil, err
	}
	return &Object{Key: key, ContentType: ContentTypeMarkup, Data: []byte(s), CreatedAt: time.Now().UTC()}, nil
}

// Container copies the children of a live container into an object
// holding a protocol snapshot payload with sequence number seq.
func Container(key string, container *dom.Node, seq uint64) *Object {
	snap := &protocol.Snapshot{Seq: seq}
	for _, c := range container.ChildNodes() {
		snap.Nodes = append(snap.Nodes, protocol.FromDOM(c))
	}
	return &Object{
		Key:         key,
		ContentType: ContentTypeSnapshot,
		Data:        protocol.EncodeSnapshot(snap),
		CreatedAt:   time.Now().UTC(),
	}
}

// Restore rebuilds the live nodes held by obj: the decoded snapshot nodes,
// or the parsed markup.
func Restore(obj *Object) ([]*dom.Node, error) {
	if obj.ContentType == ContentTypeSnapshot {
		snap, err := protocol.DecodeSnapshot(obj.Data)
		if err != nil {
			return nil, err
		}
		nodes := make([]*dom.Node, len(snap.Nodes))
		for i, n := range snap.Nodes {
			nodes[i] = n.DOM()
		}
		return nodes, nil
	}
	return dom.ParseFragment(string(obj.Data), dom.NewElement("div", dom.NamespaceHTML))
}

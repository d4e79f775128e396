package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// ErrSessionClosed is returned by operations on a closed session.
var ErrSessionClosed = errors.New("server: session closed")

// RenderFunc produces the next tree for a session. It must return a fresh
// tree, or reuse subtrees of the mounted one only where they stay in place.
type RenderFunc func(ctx context.Context) (*vdom.Node, error)

// Session is one live tree shared by every connected client.
//
// Listeners bound in the tree run while the session lock is held, so they
// must not call back into the Session; an Update follows every handled
// event.
type Session struct {
	cfg     *Config
	render  RenderFunc
	root    *reconcile.Root
	log     *reconcile.PatchLog
	hub     *Hub
	history *History
	tracer  trace.Tracer
	logger  *slog.Logger

	mu     sync.Mutex
	seq    uint64
	closed bool
}

// NewSession creates a session. Nothing is rendered until the first Update.
func NewSession(render RenderFunc, cfg *Config) *Session {
	cfg = cfg.withDefaults()
	s := &Session{
		cfg:     cfg,
		render:  render,
		log:     &reconcile.PatchLog{},
		hub:     NewHub(cfg),
		history: NewHistory(cfg.MaxPatchHistory),
		tracer:  otel.Tracer(cfg.TracerName),
		logger:  cfg.Logger.With("component", "session"),
	}

	var rec reconcile.Recorder = s.log
	if cfg.Recorder != nil {
		rec = reconcile.MultiRecorder{s.log, cfg.Recorder}
	}
	container := dom.NewElement("div", dom.NamespaceHTML)
	container.SetAttribute("id", cfg.RootID)
	s.root = reconcile.NewRoot(container,
		reconcile.WithRecorder(rec),
		reconcile.WithLogger(cfg.Logger),
		reconcile.WithStrategy(cfg.Strategy),
	)
	return s
}

// Update renders the next tree, reconciles it and broadcasts the patches.
// Patches recorded before a failed pass are still broadcast, so clients
// keep matching the server's container.
func (s *Session) Update(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "vtree.Session.Update")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	err := s.update(ctx, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("update failed", "error", err)
	}
	return err
}

func (s *Session) update(ctx context.Context, span trace.Span) error {
	tree, err := s.render(ctx)
	if err != nil {
		return fmt.Errorf("server: render: %w", err)
	}
	if tree == nil {
		return errors.New("server: render returned no tree")
	}

	s.log.Reset()
	passErr := s.root.Render(tree)
	patches := s.log.Take()
	span.SetAttributes(attribute.Int("vtree.patches", len(patches)))
	if len(patches) > 0 {
		if err := s.broadcast(patches); err != nil {
			return err
		}
		span.SetAttributes(attribute.Int64("vtree.seq", int64(s.seq)))
	}
	if passErr != nil {
		return fmt.Errorf("server: reconcile: %w", passErr)
	}
	return nil
}

// broadcast encodes one patch frame and sends it. If encoding fails the
// clients can no longer follow, so they are disconnected and the history
// dropped; they resynchronize from a snapshot when they reconnect.
func (s *Session) broadcast(patches []reconcile.Patch) error {
	s.seq++
	wire, err := protocol.FromPatches(patches)
	var data []byte
	if err == nil {
		data, err = protocol.EncodePatches(&protocol.PatchesFrame{Seq: s.seq, Patches: wire})
	}
	if err != nil {
		s.history.Clear()
		s.hub.Close()
		return fmt.Errorf("server: encode patches: %w", err)
	}

	frame := protocol.NewFrame(protocol.FramePatches, data).Encode()
	s.history.Add(s.seq, frame)
	s.hub.Broadcast(frame)
	s.cfg.Metrics.frame("patches", len(frame))
	s.logger.Debug("patches sent", "seq", s.seq, "patches", len(patches), "bytes", len(frame))
	return nil
}

// HandleEvent dispatches ev to the live node at its path and, if a
// listener ran, updates the session.
func (s *Session) HandleEvent(ctx context.Context, ev *protocol.Event) error {
	ctx, span := s.tracer.Start(ctx, "vtree.Session.HandleEvent",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("vtree.event_type", ev.Type),
			attribute.IntSlice("vtree.event_path", ev.Path),
		),
	)
	defer span.End()

	start := time.Now()
	handled, err := s.dispatch(ctx, ev)
	status := "ignored"
	switch {
	case err != nil:
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case handled:
		status = "handled"
		span.SetStatus(codes.Ok, "")
	}
	span.SetAttributes(attribute.Bool("vtree.event_handled", handled))
	s.cfg.Metrics.event(status, time.Since(start))
	return err
}

func (s *Session) dispatch(ctx context.Context, ev *protocol.Event) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrSessionClosed
	}
	target := dom.Resolve(s.root.Container(), ev.Path)
	if target == nil {
		s.mu.Unlock()
		return false, fmt.Errorf("server: no node at path %v", ev.Path)
	}
	handled := dom.Dispatch(target, &dom.Event{Type: ev.Type, Detail: ev.Detail})
	s.mu.Unlock()

	if !handled {
		return false, nil
	}
	return true, s.Update(ctx)
}

// Seq returns the sequence number of the last patch frame.
func (s *Session) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Tree returns the mounted tree, or nil before the first Update.
func (s *Session) Tree() *vdom.Node {
	return s.root.Tree()
}

// Markup serializes the server's container children.
func (s *Session) Markup() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dom.SerializeChildren(s.root.Container())
}

// Clients returns the number of connected clients.
func (s *Session) Clients() int {
	return s.hub.ClientCount()
}

// ServePage writes the full HTML page around the mounted tree.
func (s *Session) ServePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	s.mu.Lock()
	err := render.NewRenderer(render.RendererConfig{Pretty: s.cfg.Pretty}).RenderPage(&buf, render.PageData{
		Body:         s.root.Tree(),
		Title:        s.cfg.Title,
		RootID:       s.cfg.RootID,
		ClientScript: s.cfg.ClientScript,
	})
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// ServeWS upgrades the request to a websocket and serves the client until
// it disconnects. A ?seq=N query asks for the frames after N instead of a
// snapshot.
func (s *Session) ServeWS(w http.ResponseWriter, r *http.Request) {
	c, err := s.hub.upgrade(w, r)
	if err != nil {
		s.cfg.Metrics.wsError("upgrade")
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	if err := s.attach(c, r.URL.Query().Get("seq")); err != nil {
		s.logger.Warn("client attach failed", "error", err)
		c.conn.Close()
		return
	}
	defer s.hub.remove(c)

	done := make(chan struct{})
	defer close(done)
	go s.heartbeat(c, done)

	s.readLoop(r.Context(), c)
}

// attach sends the client what it needs to catch up and registers it, both
// under the session lock so no frame is missed in between.
func (s *Session) attach(c *client, since string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	frames, kind := s.catchUp(since)
	for _, frame := range frames {
		if err := c.write(frame, s.cfg.WriteTimeout); err != nil {
			s.cfg.Metrics.wsError("write")
			return err
		}
		s.cfg.Metrics.frame(kind, len(frame))
	}
	s.hub.add(c)
	return nil
}

// catchUp returns the frames a client resuming after since needs and
// their frame kind.
func (s *Session) catchUp(since string) ([][]byte, string) {
	if since != "" {
		if seq, err := strconv.ParseUint(since, 10, 64); err == nil {
			if seq == s.seq {
				s.cfg.Metrics.reconnect("current")
				return nil, ""
			}
			if frames, ok := s.history.Since(seq); ok {
				s.cfg.Metrics.reconnect("history")
				return frames, "patches"
			}
		}
		s.cfg.Metrics.reconnect("snapshot")
	}
	return [][]byte{s.snapshotFrame()}, "snapshot"
}

func (s *Session) snapshotFrame() []byte {
	snap := &protocol.Snapshot{Seq: s.seq}
	for _, c := range s.root.Container().ChildNodes() {
		snap.Nodes = append(snap.Nodes, protocol.FromDOM(c))
	}
	return protocol.NewFrame(protocol.FrameSnapshot, protocol.EncodeSnapshot(snap)).Encode()
}

func (s *Session) readLoop(ctx context.Context, c *client) {
	c.conn.SetReadLimit(s.cfg.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.cfg.Metrics.wsError("read")
				s.logger.Warn("read error", "error", err)
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))

		frame, err := protocol.DecodeFrame(msg)
		if err != nil || frame.Type != protocol.FrameEvent {
			s.cfg.Metrics.wsError("protocol")
			s.sendError(c, "bad_frame", "expected an event frame")
			continue
		}
		ev, err := protocol.DecodeEvent(frame.Payload)
		if err != nil {
			s.cfg.Metrics.wsError("protocol")
			s.sendError(c, "bad_event", err.Error())
			continue
		}
		if ev.Seq != 0 && ev.Seq <= c.lastEvent {
			continue
		}
		c.lastEvent = ev.Seq

		if err := s.HandleEvent(ctx, ev); err != nil {
			s.sendError(c, "event_failed", err.Error())
		}
	}
}

// heartbeat pings the client at half the read timeout until done closes.
func (s *Session) heartbeat(c *client, done <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.ReadTimeout / 2)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(s.cfg.WriteTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func (s *Session) sendError(c *client, code, msg string) {
	payload := protocol.EncodeError(&protocol.ErrorMessage{Code: code, Message: msg})
	frame := protocol.NewFrame(protocol.FrameError, payload).Encode()
	if err := c.write(frame, s.cfg.WriteTimeout); err != nil {
		s.logger.Debug("error frame not sent", "error", err)
		return
	}
	s.cfg.Metrics.frame("error", len(frame))
}

// Close disconnects every client and unmounts the tree.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.hub.Close()
	s.root.Unmount()
	s.log.Reset()
	s.history.Clear()
}

// Package server keeps a live tree on the server and streams its changes to
// connected clients.
//
// A Session owns a reconcile.Root over a server-side container. Each Update
// renders the next tree, reconciles it against the mounted one, and
// broadcasts the recorded patches as one FramePatches websocket message:
//
//	Update ──► RenderFunc ──► Root.Render ──► PatchLog
//	                                             │
//	            clients ◄── Hub.Broadcast ◄── protocol.EncodePatches
//
// A client that connects receives a FrameSnapshot of the container, or the
// frames it missed when it reconnects with ?seq=N and the session still
// holds them. Event frames from clients are dispatched to the listeners
// bound on the live node at the event path, and an Update follows.
//
// Updates and events are traced with OpenTelemetry spans. Server wraps a
// Session in a chi router with the page, websocket, metrics and reload
// routes, and registers the reconcile and session metrics.
package server

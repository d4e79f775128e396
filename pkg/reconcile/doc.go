// Package reconcile moves a live dom tree from representing one sealed vdom
// tree to representing the next, with as few mutations as it can.
//
// Engine.Reconcile decides per node pair whether to reuse the live node
// (same kind, tag and namespace) or to replace it. Reuse runs the attribute
// differ, reconciles the children and resolves the ref transition; replace
// unmounts the old subtree, builds the new one and splices it in.
//
// Children are reconciled with a cascade of cheap cases (identical,
// text, empty) before the general keyed algorithm, which matches siblings by
// key or, for siblings without keys, by position, keeps the longest
// increasing run of matched nodes in place and moves only the rest.
//
// Every mutation is reported as a Patch to an optional Recorder. PatchLog
// collects them, Metrics counts them in Prometheus.
//
// A pass is synchronous and assumes exclusive ownership of the live tree;
// Root serializes its own passes.
package reconcile

// Package dev contains development helpers for the vtree CLI.
//
// Watcher polls tree files and reports changes, so `vtree serve --watch`
// can push an update to connected clients whenever a file is saved.
package dev

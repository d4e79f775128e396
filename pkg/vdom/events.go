package vdom

import (
	"strings"
	"sync"
)

// eventKinds lists the event kinds a listener attribute may name. The
// attribute name is "on" followed by the kind.
var eventKinds = []string{
	// Mouse
	"click", "dblclick", "mousedown", "mouseup", "mousemove",
	"mouseenter", "mouseleave", "mouseover", "mouseout", "contextmenu", "wheel",
	// Keyboard
	"keydown", "keyup", "keypress",
	// Form
	"input", "change", "submit", "reset", "invalid", "select",
	// Focus
	"focus", "blur", "focusin", "focusout",
	// Drag
	"drag", "dragstart", "dragend", "dragenter", "dragover", "dragleave", "drop",
	// Touch
	"touchstart", "touchmove", "touchend", "touchcancel",
	// Pointer
	"pointerdown", "pointerup", "pointermove", "pointerenter", "pointerleave", "pointercancel",
	// Scroll
	"scroll", "scrollend",
	// Media
	"play", "pause", "ended", "timeupdate", "volumechange", "loadeddata", "loadedmetadata",
	// Resource
	"load", "error", "abort",
	// Animation and transition
	"animationstart", "animationend", "animationiteration",
	"transitionstart", "transitionend",
	// Clipboard
	"copy", "cut", "paste",
	"toggle",
}

var (
	eventMu    sync.RWMutex
	eventTable = func() map[string]string {
		m := make(map[string]string, len(eventKinds))
		for _, k := range eventKinds {
			m["on"+k] = k
		}
		return m
	}()
)

// RegisterEvent adds a listener attribute name to the event table, mapping
// it to kind. Names are matched case-insensitively.
func RegisterEvent(attr, kind string) {
	eventMu.Lock()
	eventTable[strings.ToLower(attr)] = kind
	eventMu.Unlock()
}

// EventKind returns the event kind for a listener attribute name.
func EventKind(attr string) (string, bool) {
	if !hasEventPrefix(attr) {
		return "", false
	}
	eventMu.RLock()
	kind, ok := eventTable[strings.ToLower(attr)]
	eventMu.RUnlock()
	return kind, ok
}

// IsEventAttr reports whether attr names a listener in the event table.
func IsEventAttr(attr string) bool {
	_, ok := EventKind(attr)
	return ok
}

func hasEventPrefix(attr string) bool {
	return len(attr) > 2 && (attr[0] == 'o' || attr[0] == 'O') && (attr[1] == 'n' || attr[1] == 'N')
}

// On binds a listener for an arbitrary kind in the event table.
func On(kind string, handler any) Attr { return attr("on"+kind, handler) }

// Mouse events

// OnClick handles click events.
func OnClick(handler any) Attr { return On("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) Attr { return On("dblclick", handler) }

func OnMouseDown(handler any) Attr  { return On("mousedown", handler) }
func OnMouseUp(handler any) Attr    { return On("mouseup", handler) }
func OnMouseEnter(handler any) Attr { return On("mouseenter", handler) }
func OnMouseLeave(handler any) Attr { return On("mouseleave", handler) }

// Keyboard events

func OnKeyDown(handler any) Attr { return On("keydown", handler) }
func OnKeyUp(handler any) Attr   { return On("keyup", handler) }

// Form events

// OnInput fires on every edit of an input or textarea.
func OnInput(handler any) Attr { return On("input", handler) }

// OnChange fires when a form control commits a new value.
func OnChange(handler any) Attr { return On("change", handler) }

func OnSubmit(handler any) Attr { return On("submit", handler) }

// Focus events

func OnFocus(handler any) Attr { return On("focus", handler) }
func OnBlur(handler any) Attr  { return On("blur", handler) }

// Misc

func OnScroll(handler any) Attr { return On("scroll", handler) }
func OnLoad(handler any) Attr   { return On("load", handler) }
func OnToggle(handler any) Attr { return On("toggle", handler) }

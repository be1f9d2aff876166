package tickshell

import (
	"image"
	"sync"
)

// mousePhase is the press phase of the mouse.
type mousePhase uint8

const (
	phaseIdle        mousePhase = iota // no button down
	phasePending                       // pressed since the last frame boundary, not yet observed
	phaseJustPressed                   // reported as just pressed for this frame
	phaseHeld                          // down for longer than one frame
)

// nextPhase is the per-frame transition table.
var nextPhase = [...]mousePhase{
	phaseIdle:        phaseIdle,
	phasePending:     phaseJustPressed,
	phaseJustPressed: phaseHeld,
	phaseHeld:        phaseHeld,
}

func (p mousePhase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phasePending:
		return "pending"
	case phaseJustPressed:
		return "just-pressed"
	case phaseHeld:
		return "held"
	default:
		return "unknown"
	}
}

// mousePress exists only between a press and its release, so a button and a
// click origin can never be recorded while the mouse is idle.
type mousePress struct {
	phase  mousePhase
	button MouseButton
	origin image.Point
}

// mouseState is the mouse interaction state machine. Press and release come
// from the event goroutine; advance and the cursor cache reset come from the
// loop.
type mouseState struct {
	mu    sync.Mutex
	press *mousePress // nil while idle

	locate      func() image.Point
	cursorPos   image.Point
	cursorValid bool
}

func newMouseState(locate func() image.Point) *mouseState {
	return &mouseState{locate: locate}
}

// onPress moves to the pending phase. The click origin is captured once per
// press; a second press without a release keeps the first origin.
func (m *mouseState) onPress(button MouseButton) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.press == nil {
		m.press = &mousePress{origin: m.cursorLocked()}
	}
	m.press.phase = phasePending
	m.press.button = button
}

func (m *mouseState) onRelease() {
	m.mu.Lock()
	m.press = nil
	m.mu.Unlock()
}

// advance moves the phase forward one step. Called once per frame after render.
func (m *mouseState) advance() {
	m.mu.Lock()
	if m.press != nil {
		m.press.phase = nextPhase[m.press.phase]
	}
	m.mu.Unlock()
}

// justPressed reports whether the current frame is the first one to observe
// the press. A pending press is promoted here, so a caller polling before the
// frame boundary still sees the edge.
func (m *mouseState) justPressed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.press == nil {
		return false
	}
	if m.press.phase == phasePending {
		m.press.phase = phaseJustPressed
	}
	return m.press.phase == phaseJustPressed
}

func (m *mouseState) held() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.press != nil
}

func (m *mouseState) button() MouseButton {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.press == nil {
		return MouseButtonNone
	}
	return m.press.button
}

func (m *mouseState) phase() mousePhase {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.press == nil {
		return phaseIdle
	}
	return m.press.phase
}

func (m *mouseState) clickOrigin() (image.Point, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.press == nil {
		return image.Point{}, false
	}
	return m.press.origin, true
}

// cursor returns the surface-relative cursor position, resolving it at most
// once per frame.
func (m *mouseState) cursor() image.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursorLocked()
}

func (m *mouseState) cursorLocked() image.Point {
	if !m.cursorValid {
		if m.locate != nil {
			m.cursorPos = m.locate()
		}
		m.cursorValid = true
	}
	return m.cursorPos
}

// invalidateCursor drops the cached cursor position. Called at every frame start.
func (m *mouseState) invalidateCursor() {
	m.mu.Lock()
	m.cursorValid = false
	m.mu.Unlock()
}

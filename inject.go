package tickshell

// syntheticKind selects what a syntheticEvent delivers.
type syntheticKind uint8

const (
	syntheticIdle syntheticKind = iota // consumes a frame without input
	syntheticKeyPress
	syntheticKeyRelease
	syntheticMousePress
	syntheticMouseRelease
	syntheticWheel
)

// syntheticEvent is a single injected input event.
type syntheticEvent struct {
	kind   syntheticKind
	key    Key
	button MouseButton
	delta  int
}

func (s *Shell) inject(evts ...syntheticEvent) {
	s.injectMu.Lock()
	s.injectQueue = append(s.injectQueue, evts...)
	s.injectMu.Unlock()
}

// InjectKeyPress queues a key press. Queued events are delivered one per
// frame at the start of the frame, through the same path as host events.
func (s *Shell) InjectKeyPress(k Key) {
	s.inject(syntheticEvent{kind: syntheticKeyPress, key: k})
}

// InjectKeyRelease queues a key release.
func (s *Shell) InjectKeyRelease(k Key) {
	s.inject(syntheticEvent{kind: syntheticKeyRelease, key: k})
}

// InjectKeyTap queues a press of k that is released `frames` frames later.
// The sequence consumes `frames` frames. Minimum frames is 2 (press + release).
func (s *Shell) InjectKeyTap(k Key, frames int) {
	if frames < 2 {
		frames = 2
	}
	evts := make([]syntheticEvent, 0, frames)
	evts = append(evts, syntheticEvent{kind: syntheticKeyPress, key: k})
	for i := 0; i < frames-2; i++ {
		evts = append(evts, syntheticEvent{kind: syntheticIdle})
	}
	evts = append(evts, syntheticEvent{kind: syntheticKeyRelease, key: k})
	s.inject(evts...)
}

// InjectPress queues a mouse press at the current cursor position.
func (s *Shell) InjectPress(button MouseButton) {
	s.inject(syntheticEvent{kind: syntheticMousePress, button: button})
}

// InjectRelease queues a mouse release.
func (s *Shell) InjectRelease(button MouseButton) {
	s.inject(syntheticEvent{kind: syntheticMouseRelease, button: button})
}

// InjectClick is a convenience that queues a press followed by a release.
// Consumes two frames.
func (s *Shell) InjectClick(button MouseButton) {
	s.inject(
		syntheticEvent{kind: syntheticMousePress, button: button},
		syntheticEvent{kind: syntheticMouseRelease, button: button},
	)
}

// InjectWheel queues a wheel movement.
func (s *Shell) InjectWheel(delta int) {
	s.inject(syntheticEvent{kind: syntheticWheel, delta: delta})
}

// pendingInjected returns the number of queued events.
func (s *Shell) pendingInjected() int {
	s.injectMu.Lock()
	defer s.injectMu.Unlock()
	return len(s.injectQueue)
}

// processInjected pops one event from the queue and delivers it. Returns true
// if an event was consumed.
func (s *Shell) processInjected() bool {
	s.injectMu.Lock()
	if len(s.injectQueue) == 0 {
		s.injectMu.Unlock()
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	s.injectMu.Unlock()

	switch evt.kind {
	case syntheticKeyPress:
		s.PressKey(evt.key)
	case syntheticKeyRelease:
		s.ReleaseKey(evt.key)
	case syntheticMousePress:
		s.PressMouse(evt.button)
	case syntheticMouseRelease:
		s.ReleaseMouse(evt.button)
	case syntheticWheel:
		s.ScrollWheel(evt.delta)
	}
	return true
}

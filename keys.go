package tickshell

import (
	"slices"
	"sync"
)

// keyHold is the hold state of one key. A hold that has not started yet was
// pressed after the last frame boundary and has no duration.
type keyHold struct {
	started bool
	seconds float64
}

// keyTracker maps held keys to their hold duration. Event callbacks insert and
// remove entries; the loop advances them once per frame.
type keyTracker struct {
	mu   sync.Mutex
	keys map[Key]keyHold
}

func newKeyTracker() *keyTracker {
	return &keyTracker{keys: make(map[Key]keyHold)}
}

// press starts tracking k. Repeated presses while k is held do nothing, so
// auto-repeat never resets the duration.
func (t *keyTracker) press(k Key) {
	t.mu.Lock()
	if _, ok := t.keys[k]; !ok {
		t.keys[k] = keyHold{}
	}
	t.mu.Unlock()
}

func (t *keyTracker) release(k Key) {
	t.mu.Lock()
	delete(t.keys, k)
	t.mu.Unlock()
}

// tick advances every held key by dt seconds. Holds that have not started
// start at zero instead.
func (t *keyTracker) tick(dt float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, h := range t.keys {
		if !h.started {
			t.keys[k] = keyHold{started: true}
			continue
		}
		h.seconds += dt
		t.keys[k] = h
	}
}

// held returns how long k has been held, in seconds, or -1 when it is not
// held. Querying a hold that has not started starts it at zero.
func (t *keyTracker) held(k Key) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	h, ok := t.keys[k]
	if !ok {
		return -1
	}
	if !h.started {
		t.keys[k] = keyHold{started: true}
		return 0
	}
	return h.seconds
}

// heldKeys returns the held keys in ascending order.
func (t *keyTracker) heldKeys() []Key {
	t.mu.Lock()
	keys := make([]Key, 0, len(t.keys))
	for k := range t.keys {
		keys = append(keys, k)
	}
	t.mu.Unlock()
	slices.Sort(keys)
	return keys
}

func (t *keyTracker) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.keys)
}

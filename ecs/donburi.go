package ecs

import (
	"sync"

	"github.com/phanxgames/tickshell"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InputKind identifies the event carried by an InputEvent.
type InputKind uint8

const (
	KeyPressed InputKind = iota
	KeyReleased
	MousePressed
	MouseReleased
	WheelScrolled
)

// InputEvent is one host input event as delivered to the shell.
type InputEvent struct {
	Kind   InputKind
	Key    tickshell.Key
	Button tickshell.MouseButton
	Delta  int
}

// InputEventType is the Donburi event type for input events.
var InputEventType = events.NewEventType[InputEvent]()

// InputBridge is a tickshell.InputSink that tees events into a Donburi world.
// Its sink methods may be called from any goroutine and only queue the event;
// the world is touched by Process alone, on the caller's goroutine.
type InputBridge struct {
	world donburi.World
	next  tickshell.InputSink

	mu     sync.Mutex
	queued []InputEvent
}

// NewInputBridge creates a bridge publishing to world. next, usually the
// shell, receives every event first; it may be nil.
func NewInputBridge(world donburi.World, next tickshell.InputSink) *InputBridge {
	return &InputBridge{world: world, next: next}
}

func (b *InputBridge) publish(e InputEvent) {
	b.mu.Lock()
	b.queued = append(b.queued, e)
	b.mu.Unlock()
}

// PressKey implements tickshell.InputSink.
func (b *InputBridge) PressKey(k tickshell.Key) {
	if b.next != nil {
		b.next.PressKey(k)
	}
	b.publish(InputEvent{Kind: KeyPressed, Key: k})
}

// ReleaseKey implements tickshell.InputSink.
func (b *InputBridge) ReleaseKey(k tickshell.Key) {
	if b.next != nil {
		b.next.ReleaseKey(k)
	}
	b.publish(InputEvent{Kind: KeyReleased, Key: k})
}

// PressMouse implements tickshell.InputSink.
func (b *InputBridge) PressMouse(button tickshell.MouseButton) {
	if b.next != nil {
		b.next.PressMouse(button)
	}
	b.publish(InputEvent{Kind: MousePressed, Button: button})
}

// ReleaseMouse implements tickshell.InputSink.
func (b *InputBridge) ReleaseMouse(button tickshell.MouseButton) {
	if b.next != nil {
		b.next.ReleaseMouse(button)
	}
	b.publish(InputEvent{Kind: MouseReleased, Button: button})
}

// ScrollWheel implements tickshell.InputSink.
func (b *InputBridge) ScrollWheel(delta int) {
	if b.next != nil {
		b.next.ScrollWheel(delta)
	}
	b.publish(InputEvent{Kind: WheelScrolled, Delta: delta})
}

// Process publishes the queued input events to the world and delivers them to
// subscribers on the calling goroutine. Events a subscriber sends through the
// bridge are delivered by the next Process.
func (b *InputBridge) Process() {
	b.mu.Lock()
	queued := b.queued
	b.queued = nil
	b.mu.Unlock()

	for _, e := range queued {
		InputEventType.Publish(b.world, e)
	}
	InputEventType.ProcessEvents(b.world)
}

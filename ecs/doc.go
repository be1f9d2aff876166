// Package ecs forwards tickshell input events into a [Donburi] world.
//
// [NewInputBridge] wraps the shell's [tickshell.InputSink]. Every event is
// passed on to the shell unchanged and also queued as an [InputEvent].
// [InputBridge.Process] publishes the queue to the world and delivers it to
// systems subscribed to [InputEventType] on the calling goroutine, typically
// at the top of the render callback:
//
//	bridge := ecs.NewInputBridge(world, sh)
//	host.Attach(bridge)
//	ecs.InputEventType.Subscribe(world, onInput)
//
//	func (g *game) Render(target *ebiten.Image, delta float64) {
//		g.bridge.Process()
//		...
//	}
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

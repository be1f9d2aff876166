// Package tickshell is a minimal real-time application shell for [Ebitengine].
//
// A [Shell] runs a frame loop on its own goroutine against a [Surface] and
// exposes polled input to the per-frame [Renderer]. Input arrives as events
// from the host at arbitrary times; the shell turns them into state that is
// coherent for a whole frame: how long a key has been held, whether the mouse
// was just pressed, the pending wheel delta.
//
// # Quick start
//
// [Run] opens a window, starts the loop and blocks until the window closes:
//
//	err := tickshell.Run(tickshell.RunConfig{
//		Title: "My App", Width: 640, Height: 480,
//	}, func(sh *tickshell.Shell) tickshell.Renderer {
//		return tickshell.RenderFunc(func(target *ebiten.Image, delta float64) {
//			if d := sh.KeyHeld(tickshell.Key(ebiten.KeySpace)); d >= 0 {
//				ebitenutil.DebugPrint(target, fmt.Sprintf("space held %.2fs", d))
//			}
//		})
//	})
//
// For another display backend, implement [Surface], create the shell with
// [New], feed it events through the [InputSink] methods and call
// [Shell.Start].
//
// # Frame protocol
//
// Each iteration measures the elapsed time, resets the cursor cache, acquires
// and clears a draw target, calls the renderer, presents the target and then
// advances input state: held keys gain the frame's delta and the mouse moves
// one step through idle, pending, just-pressed and held. The loop never
// sleeps, but presenting may wait for the host to show the previous frame,
// as [Host] does. If no draw target can be acquired render and present are
// skipped for that frame and the error is logged.
//
// # Input queries
//
//   - [Shell.KeyHeld]: -1 when not held, 0 when pressed this frame, else seconds.
//   - [Shell.MouseJustPressed], [Shell.MouseHeld], [Shell.MouseButton].
//   - [Shell.Cursor] and [Shell.ClickOrigin], in surface coordinates.
//   - [Shell.ConsumeWheel]: the latest unread wheel delta, reset on read.
//
// # Automation
//
// Synthetic input can be queued with the Inject methods, or played back from a
// JSON script loaded with [LoadScript]. [Shell.Screenshot] writes the next
// frame to a PNG file.
//
// [Ebitengine]: https://ebitengine.org
package tickshell

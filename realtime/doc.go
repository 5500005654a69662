// Package realtime drives a statetree.Machine from a fixed-timestep loop.
//
// The core machine is single-threaded by contract. Driver provides the
// thread-safe boundary around it: transition requests and input events may
// be queued from any goroutine, and are drained at tick boundaries in a
// deterministic order before the frame's Tick runs. A fixed-step accumulator
// issues zero or more PhysicsTick calls per frame, so physics hooks see a
// constant delta regardless of frame jitter.
//
// # Example Usage
//
//	m, _ := statetree.NewBuilder("Idle"). ... .Build()
//	d := realtime.NewDriver(m, realtime.Config{
//		TickRate:    16667 * time.Microsecond, // 60 FPS
//		PhysicsStep: 16667 * time.Microsecond,
//	})
//	d.Start(ctx)
//	defer d.Stop()
//	d.RequestTransition("Move/Jump", statetree.Message{"impulse": 4.5})
//
// # Determinism
//
// Queued requests carry a sequence number and an optional priority. At each
// tick the batch is stably sorted: higher priority first, then submission
// order. Given the same sequence of requests, the machine executes the same
// way on every run.
//
// # Manual stepping
//
// Hosts that own their own loop (a game engine's update callback, a replay
// harness, a test) call StartManual and then Step with the frame delta
// instead of Start; the driver performs the same drain/tick/physics phases
// without a ticker goroutine.
package realtime

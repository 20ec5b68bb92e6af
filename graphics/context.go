package graphics

// Context is the window the sprite is presented in. It owns the OpenGL
// context and the platform event queue.
type Context interface {
	MakeCurrent()
	Shutdown()
	// PollEvents returns every event queued since the previous call without
	// waiting for new ones.
	PollEvents() []Event
	// Present swaps the displayed frame. It may block on vsync.
	Present() error
	GetFramebufferSize() (int, int)
	// Time returns monotonically increasing seconds.
	Time() float64
}

package cotask

// An Observer receives lifecycle notifications from the runtime: frames
// starting and finishing, and items moving through channels. Observers
// must be cheap and must not call back into the runtime.
//
// The interface exists so that metric backends stay out of the core; see
// the observe/prom package for a Prometheus adapter.
type Observer interface {
	FrameStarted()
	FrameFinished(canceled bool)
	ItemSent()
	ItemDelivered()
}

var observer Observer

// SetObserver installs the process-wide observer. Like
// [SetDefaultExecutor], it is meant to be called once at process start,
// before any task runs. A nil observer disables notifications.
func SetObserver(o Observer) {
	observer = o
}

package ports

// UpdateNotifier receives a signal after every admission, pop, reorder, or
// pause/resume. No payload: observers re-read the state they care about.
type UpdateNotifier interface {
	NotifyUpdate()
}

// NoopNotifier is an UpdateNotifier that does nothing.
type NoopNotifier struct{}

func (NoopNotifier) NotifyUpdate() {}

var _ UpdateNotifier = NoopNotifier{}

// NotifierFunc adapts a plain function to the UpdateNotifier interface.
type NotifierFunc func()

func (f NotifierFunc) NotifyUpdate() { f() }

package cotask

import "errors"

// ErrCanceled is the sentinel reported at a suspension point once the
// cancellation flag of the ownership tree has been set, and by a
// [Unichannel] consumer whose channel died while it was waiting.
//
// Bodies usually do not handle it; they return early, which runs their
// deferred cleanups and unwinds the frame.
var ErrCanceled = errors.New("cotask: canceled")

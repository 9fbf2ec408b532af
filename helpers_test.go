package cotask_test

import (
	"github.com/cotaskio/cotask"
)

// external is a hand-driven suspension point: it parks the awaiting frame
// and hands the resumption token to the test.
type external struct {
	tok *cotask.Token
}

func (x *external) Ready() bool {
	return false
}

func (x *external) Suspend(t *cotask.Token) bool {
	x.tok = t
	return true
}

func (x *external) Resume() (cotask.Unit, error) {
	return cotask.Unit{}, nil
}

// track counts scope lifetimes: the counter goes up at the call and back
// down when the returned function runs, typically via defer.
func track(n *int) func() {
	*n++
	return func() { *n-- }
}

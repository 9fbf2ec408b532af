package cotask_test

import (
	"testing"

	"go.uber.org/goleak"
)

// Every frame is backed by a pull iterator; a frame left suspended at the
// end of a test shows up as a leaked goroutine.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

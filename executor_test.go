package cotask_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotaskio/cotask"
)

func TestLoopExecutorFIFO(t *testing.T) {
	var exec cotask.LoopExecutor
	var order []int

	for i := 1; i <= 3; i++ {
		exec.Execute(func() { order = append(order, i) })
	}
	require.Equal(t, 3, exec.Len())
	require.Empty(t, order)

	exec.Run()
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, exec.Len())
}

func TestLoopExecutorReentrantSubmission(t *testing.T) {
	var exec cotask.LoopExecutor
	var order []string

	exec.Execute(func() {
		order = append(order, "first")
		exec.Execute(func() { order = append(order, "third") })
		order = append(order, "second")
	})

	exec.Run()
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestLoopExecutorAutorun(t *testing.T) {
	var exec cotask.LoopExecutor
	exec.Autorun(exec.Run)

	ran := false
	exec.Execute(func() { ran = true })
	assert.True(t, ran)
}

func TestInlineExecutorRunsAtCallSite(t *testing.T) {
	ran := false
	cotask.InlineExecutor{}.Execute(func() { ran = true })
	assert.True(t, ran)
}

func TestGoroutineExecutorDrainsOnClose(t *testing.T) {
	exec := cotask.NewGoroutineExecutor()

	var n atomic.Int64
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				exec.Execute(func() { n.Add(1) })
			}
		}()
	}
	wg.Wait()

	require.NoError(t, exec.Close())
	assert.Equal(t, int64(100), n.Load())
}

func TestDefaultExecutorConfiguration(t *testing.T) {
	var exec cotask.LoopExecutor
	cotask.SetDefaultExecutor(&exec)
	t.Cleanup(func() { cotask.SetDefaultExecutor(cotask.InlineExecutor{}) })

	require.Same(t, &exec, cotask.DefaultExecutor())
}

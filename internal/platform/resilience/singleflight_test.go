package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGroup_Do_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g Group[string]
	var calls atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := g.Do("competitions.json", func() (string, error) {
				calls.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "ok", v)
		}()
	}

	close(start)
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestGroup_Do_SequentialCallsRunAgain(t *testing.T) {
	t.Parallel()

	var g Group[int]
	n := 0
	for i := 0; i < 3; i++ {
		v, err, shared := g.Do("k", func() (int, error) {
			n++
			return n, nil
		})
		assert.NoError(t, err)
		assert.False(t, shared)
		assert.Equal(t, i+1, v)
	}
}

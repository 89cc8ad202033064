package observe

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValue_LateSubscriberGetsCurrent(t *testing.T) {
	v := NewValue(false)
	v.Set(true)

	var got []bool
	cancel := v.Subscribe(func(b bool) { got = append(got, b) })
	defer cancel()

	assert.Equal(t, []bool{true}, got)
	assert.True(t, v.Get())
}

func TestValue_DeliversInOrder(t *testing.T) {
	v := NewValue(0)

	var got []int
	cancel := v.Subscribe(func(n int) { got = append(got, n) })
	for i := 1; i <= 3; i++ {
		v.Set(i)
	}
	cancel()
	v.Set(4)

	assert.Equal(t, []int{0, 1, 2, 3}, got)
	assert.Equal(t, 4, v.Get())
}

func TestValue_CancelIsIdempotent(t *testing.T) {
	v := NewValue("a")
	calls := 0
	first := v.Subscribe(func(string) { calls++ })
	second := v.Subscribe(func(string) { calls++ })

	first()
	first()
	v.Set("b")
	second()

	// 2 initial deliveries + 1 from Set to the second subscriber.
	assert.Equal(t, 3, calls)
}

func TestValue_Update(t *testing.T) {
	v := NewValue(10)
	var got []int
	defer v.Subscribe(func(n int) { got = append(got, n) })()

	assert.False(t, v.Update(func(cur int) (int, bool) { return cur + 1, false }))
	assert.True(t, v.Update(func(cur int) (int, bool) { return cur + 1, true }))

	assert.Equal(t, []int{10, 11}, got)
}

func TestValue_ConcurrentSetIsSerialized(t *testing.T) {
	v := NewValue(0)

	var busy sync.Mutex
	var overlap atomic.Bool
	var calls atomic.Int32
	defer v.Subscribe(func(int) {
		calls.Add(1)
		if !busy.TryLock() {
			overlap.Store(true)
			return
		}
		time.Sleep(100 * time.Microsecond)
		busy.Unlock()
	})()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			v.Set(n)
		}(i)
	}
	wg.Wait()

	assert.False(t, overlap.Load())
	assert.Equal(t, int32(21), calls.Load())
}

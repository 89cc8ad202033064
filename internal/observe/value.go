// Package observe provides a value holder that pushes every change to its
// subscribers.
package observe

import "sync"

// Value holds a T and notifies subscribers of each Set. A new subscriber is
// called immediately with the current value. Deliveries are serialized:
// subscribers see values in Set order and never concurrently.
type Value[T any] struct {
	mu      sync.Mutex
	deliver sync.Mutex
	cur     T
	subs    []*subscriber[T]
	nextID  int
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// NewValue returns a Value initialised to v.
func NewValue[T any](v T) *Value[T] {
	return &Value[T]{cur: v}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

// Set stores x and delivers it to every subscriber.
// Subscribers must not call Set or Subscribe from their callback.
func (v *Value[T]) Set(x T) {
	v.deliver.Lock()
	defer v.deliver.Unlock()

	v.mu.Lock()
	v.cur = x
	subs := make([]*subscriber[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(x)
	}
}

// Update applies fn to the current value under the delivery lock and
// publishes the result when fn reports ok.
func (v *Value[T]) Update(fn func(cur T) (next T, ok bool)) bool {
	v.deliver.Lock()
	defer v.deliver.Unlock()

	v.mu.Lock()
	next, ok := fn(v.cur)
	if !ok {
		v.mu.Unlock()
		return false
	}
	v.cur = next
	subs := make([]*subscriber[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(next)
	}
	return true
}

// Subscribe registers fn and calls it with the current value.
// The returned function removes the subscription.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.deliver.Lock()
	defer v.deliver.Unlock()

	v.mu.Lock()
	v.nextID++
	id := v.nextID
	v.subs = append(v.subs, &subscriber[T]{id: id, fn: fn})
	cur := v.cur
	v.mu.Unlock()

	fn(cur)

	var once sync.Once
	return func() {
		once.Do(func() { v.remove(id) })
	}
}

func (v *Value[T]) remove(id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, s := range v.subs {
		if s.id == id {
			v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
			return
		}
	}
}

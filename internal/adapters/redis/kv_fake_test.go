package redis

import (
	"context"
	"sync"
)

// fakeKV is an in-memory KV for unit tests.
type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) MGet(ctx context.Context, keys ...string) ([]string, []bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, nil, f.err
	}
	values := make([]string, len(keys))
	ok := make([]bool, len(keys))
	for i, k := range keys {
		values[i], ok[i] = f.data[k]
	}
	return values, ok, nil
}

func (f *fakeKV) SetAll(ctx context.Context, pairs map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for k, v := range pairs {
		f.data[k] = v
	}
	return nil
}

package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/distclient/internal/adapters/fs"
	redisAdapter "github.com/bft-labs/distclient/internal/adapters/redis"
	"github.com/bft-labs/distclient/internal/adapters/sqlite"
	"github.com/bft-labs/distclient/internal/ports"
)

// mapKV is an in-memory redis.KV.
type mapKV struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *mapKV) MGet(ctx context.Context, keys ...string) ([]string, []bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	values := make([]string, len(keys))
	ok := make([]bool, len(keys))
	for i, k := range keys {
		values[i], ok[i] = m.data[k]
	}
	return values, ok, nil
}

func (m *mapKV) SetAll(ctx context.Context, pairs map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range pairs {
		m.data[k] = v
	}
	return nil
}

func backends(t *testing.T) map[string]func(t *testing.T) ports.SessionRepository {
	return map[string]func(t *testing.T) ports.SessionRepository{
		"file": func(t *testing.T) ports.SessionRepository {
			return fs.NewSessionFileRepository(t.TempDir(), "user_prefs")
		},
		"sqlite": func(t *testing.T) ports.SessionRepository {
			repo, err := sqlite.Open(context.Background(), t.TempDir(), "user_prefs")
			require.NoError(t, err)
			t.Cleanup(func() { _ = repo.Close() })
			return repo
		},
		"redis": func(t *testing.T) ports.SessionRepository {
			return redisAdapter.NewSessionRepository(&mapKV{data: map[string]string{}}, "user_prefs")
		},
	}
}

func TestStore_ClearTokenOnEveryBackend(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := New(open(t))

			require.NoError(t, store.SaveToken(ctx, "X"))
			require.NoError(t, store.SetLoggedIn(ctx, true))
			require.NoError(t, store.ClearToken(ctx))

			tok, err := store.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, "", tok)

			sess, err := store.Session(ctx)
			require.NoError(t, err)
			assert.True(t, sess.IsLoggedIn, "ClearToken leaves the flag untouched")

			// Clearing an already empty token is a no-op.
			require.NoError(t, store.ClearToken(ctx))
			tok, err = store.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, "", tok)
		})
	}
}

func TestStore_SaveTokenOnEveryBackend(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := New(open(t))

			require.NoError(t, store.SaveToken(ctx, "first"))
			require.NoError(t, store.SaveToken(ctx, "second"))

			tok, err := store.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, "second", tok)
		})
	}
}

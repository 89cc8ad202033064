package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/distclient/internal/domain"
)

func TestSessionFileRepository_LoadMissing(t *testing.T) {
	repo := NewSessionFileRepository(t.TempDir(), "user_prefs")

	s, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
}

func TestSessionFileRepository_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	repo := NewSessionFileRepository(dir, "user_prefs")
	ctx := context.Background()

	want := domain.Session{Token: "abc.def.ghi", IsLoggedIn: true}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(repo.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A second repository over the same file sees the same session.
	other := NewSessionFileRepository(dir, "user_prefs")
	got, err = other.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestSessionFileRepository_Namespaces(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	a := NewSessionFileRepository(dir, "a")
	b := NewSessionFileRepository(dir, "b")
	require.NoError(t, a.Save(ctx, domain.Session{Token: "t", IsLoggedIn: true}))

	s, err := b.Load(ctx)
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
}

func TestSessionFileRepository_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	repo := NewSessionFileRepository(dir, "user_prefs")
	require.NoError(t, os.WriteFile(repo.Path(), []byte("{not json"), 0o600))

	_, err := repo.Load(context.Background())
	assert.Error(t, err)
}

func TestSessionFileRepository_ConcurrentSaveLoad(t *testing.T) {
	repo := NewSessionFileRepository(t.TempDir(), "user_prefs")
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, domain.Session{}))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if i%2 == 0 {
				_ = repo.Save(ctx, domain.Session{Token: "tok", IsLoggedIn: true})
			} else {
				_ = repo.Save(ctx, domain.Session{})
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			s, err := repo.Load(ctx)
			if err != nil {
				t.Errorf("Load() error = %v", err)
				return
			}
			if s.Inconsistent() || (s.Token != "" && !s.IsLoggedIn) {
				t.Errorf("observed partial write: %+v", s)
				return
			}
		}
	}()
	wg.Wait()
}

func TestSessionFileRepository_Watch(t *testing.T) {
	dir := t.TempDir()
	repo := NewSessionFileRepository(dir, "user_prefs", WithDebounce(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- repo.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register.
	time.Sleep(50 * time.Millisecond)

	writer := NewSessionFileRepository(dir, "user_prefs")
	require.NoError(t, writer.Save(context.Background(), domain.Session{Token: "t", IsLoggedIn: true}))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("expected change notification")
	}

	// Drain notifications still pending from the save above.
	time.Sleep(50 * time.Millisecond)
	for len(changed) > 0 {
		<-changed
	}

	// Unrelated files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o600))
	select {
	case <-changed:
		t.Fatal("unexpected notification for unrelated file")
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

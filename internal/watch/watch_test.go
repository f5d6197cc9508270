package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.ml")
	require.NoError(t, os.WriteFile(path, []byte("1"), 0o644))

	w, err := New(path, 0, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() { fired <- struct{}{} })
	}()

	require.NoError(t, os.WriteFile(path, []byte("1 + 2"), 0o644))

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	assert.GreaterOrEqual(t, w.Changes(), uint64(1))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunWaitsForBurstToSettle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.ml")
	require.NoError(t, os.WriteFile(path, []byte("1"), 0o644))

	w, err := New(path, DefaultDebounce, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu    sync.Mutex
		reads []string
	)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() {
			data, err := os.ReadFile(path)
			assert.NoError(t, err)
			mu.Lock()
			reads = append(reads, string(data))
			mu.Unlock()
		})
	}()

	// Editors often truncate first and write the new contents right after.
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("1 + 2"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(reads) > 0
	}, 5*time.Second, 10*time.Millisecond)

	// Give any stray trailing event time to fire.
	time.Sleep(3 * DefaultDebounce)
	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"1 + 2"}, reads, "only the settled contents are rendered")
	assert.Equal(t, uint64(1), w.Changes())
}

func TestRunIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.ml")
	require.NoError(t, os.WriteFile(path, []byte("1"), 0o644))

	w, err := New(path, 0, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	go func() {
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(filepath.Join(dir, "other.ml"), []byte("x"), 0o644)
	}()

	calls := 0
	require.NoError(t, w.Run(ctx, func() { calls++ }))
	assert.Zero(t, calls)
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "prog.ml"), DefaultDebounce, nil)
	assert.Error(t, err)
}

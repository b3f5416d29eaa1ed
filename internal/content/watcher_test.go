package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	initial, err := Load(path)
	require.NoError(t, err)
	store := NewStore(initial)

	w, err := NewWatcher(path, store, zap.NewNop())
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Invalid content is rejected and the previous value kept.
	require.NoError(t, os.WriteFile(path, []byte("profile: {name: ''}"), 0o600))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "Ada Example", store.Get().Profile.Name)

	updated := []byte("profile:\n  name: Grace Example\n")
	require.NoError(t, os.WriteFile(path, updated, 0o600))
	assert.Eventually(t, func() bool {
		return store.Get().Profile.Name == "Grace Example"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "portfolio.yaml"), NewStore(Default()), zap.NewNop())
	assert.Error(t, err)
}

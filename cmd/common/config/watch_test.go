package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gigurra/chordtrainer/cmd/common/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Settings, 8)
	require.NoError(t, Watch(ctx, path, func(s *Settings, err error) {
		if err == nil {
			changes <- s
		}
	}))

	s := Default()
	s.SetMode(theory.ModeIIVI)
	require.NoError(t, SaveFile(path, s))

	select {
	case got := <-changes:
		assert.Equal(t, theory.ModeIIVI, got.CurrentMode())
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Settings, 8)
	require.NoError(t, Watch(ctx, filepath.Join(dir, "settings.json"), func(s *Settings, err error) {
		changes <- s
	}))

	require.NoError(t, SaveFile(filepath.Join(dir, "other.json"), Default()))

	select {
	case <-changes:
		t.Fatal("reloaded for an unrelated file")
	case <-time.After(3 * WatchDebounce):
	}
}

package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.db")
	m, err := OpenPath(path)
	require.NoError(t, err)
	return m, path
}

func TestGetSession_FirstRun(t *testing.T) {
	m, _ := openTestManager(t)
	defer m.Close()

	s, err := m.GetSession()
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestSaveSession_FlushedOnClose(t *testing.T) {
	m, path := openTestManager(t)

	m.SaveSession(Session{
		FilePath:        "/hvsc/Commando.sid",
		Engine:          "sidplayfp",
		Subtune:         2,
		Loop:            true,
		DefaultTuneOnly: false,
		PlaylistIndex:   4,
	})
	// Close before the debounce fires; the pending state must flush.
	require.NoError(t, m.Close())

	m2, err := OpenPath(path)
	require.NoError(t, err)
	defer m2.Close()

	s, err := m2.GetSession()
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, "/hvsc/Commando.sid", s.FilePath)
	require.Equal(t, "sidplayfp", s.Engine)
	require.Equal(t, 2, s.Subtune)
	require.True(t, s.Loop)
	require.False(t, s.DefaultTuneOnly)
	require.Equal(t, 4, s.PlaylistIndex)
}

func TestSaveSession_DebounceKeepsLatest(t *testing.T) {
	m, path := openTestManager(t)

	m.SaveSession(Session{FilePath: "/a.sid", Engine: "sidplayfp", Subtune: 1})
	m.SaveSession(Session{FilePath: "/b.sid", Engine: "jsidplay2", Subtune: 3})
	require.NoError(t, m.Close())

	m2, err := OpenPath(path)
	require.NoError(t, err)
	defer m2.Close()

	s, err := m2.GetSession()
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, "/b.sid", s.FilePath)
	require.Equal(t, "jsidplay2", s.Engine)
	require.Equal(t, 3, s.Subtune)
}

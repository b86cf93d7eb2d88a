package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLoadMissingReturnsFallback(t *testing.T) {
	s := New(NewMemoryBackend())

	got := Load(s, "missing", sample{Name: "fallback"})
	assert.Equal(t, "fallback", got.Name)
}

func TestSaveThenLoad(t *testing.T) {
	s := New(NewMemoryBackend())

	s.Save("k", sample{Name: "a", Count: 3})

	got := Load(s, "k", sample{})
	assert.Equal(t, sample{Name: "a", Count: 3}, got)
}

func TestCorruptedEntryIsClearedAndFallsBack(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set(context.Background(), KeyCourses, "{not json"))
	s := New(backend)

	got := Load(s, KeyCourses, []sample{{Name: "default"}})
	assert.Equal(t, []sample{{Name: "default"}}, got)

	_, ok, err := backend.Get(context.Background(), KeyCourses)
	require.NoError(t, err)
	assert.False(t, ok, "corrupted key should be deleted")

	again := Load(s, KeyCourses, []sample(nil))
	assert.Nil(t, again)
}

func TestRemove(t *testing.T) {
	s := New(NewMemoryBackend())
	s.Save(KeyAuthToken, "abc")
	s.Remove(KeyAuthToken)

	assert.Equal(t, "", Load(s, KeyAuthToken, ""))
}

func TestFileBackendPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first, err := NewFileBackend(dir)
	require.NoError(t, err)
	New(first).Save(KeyCurrentUser, sample{Name: "ada"})

	second, err := NewFileBackend(dir)
	require.NoError(t, err)
	got := Load(New(second), KeyCurrentUser, sample{})
	assert.Equal(t, "ada", got.Name)
}

func TestFileBackendCorruptionRecovery(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, KeyEnrollments, "]]"))

	got := Load(New(backend), KeyEnrollments, 7)
	assert.Equal(t, 7, got)

	_, ok, err := backend.Get(ctx, KeyEnrollments)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, backend.Delete(ctx, KeyEnrollments), "deleting a missing key is not an error")
}

package lcaops

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastOpts keeps fitting cheap in tests.
func fastOpts(dir string) []Option {
	return []Option{WithModelDir(dir), WithSamples(60), WithTrees(3)}
}

func TestEnsureArtifactCreatesFallback(t *testing.T) {
	dir := t.TempDir()

	rep, err := EnsureArtifact(fastOpts(dir)...)
	require.NoError(t, err)

	assert.True(t, rep.Fallback)
	assert.Equal(t, filepath.Join(dir, "fallback_model.json"), rep.Path)
	assert.NotEmpty(t, rep.ModelVersion)
	assert.NotEmpty(t, rep.ArtifactID)
	_, statErr := os.Stat(rep.Path)
	assert.NoError(t, statErr)
}

func TestEnsureArtifactFindsExisting(t *testing.T) {
	dir := t.TempDir()

	// First call creates the fallback; a second call with it renamed to a
	// candidate basename must find it instead of generating again.
	first, err := EnsureArtifact(fastOpts(dir)...)
	require.NoError(t, err)
	candidate := filepath.Join(dir, "lca_model.json")
	require.NoError(t, os.Rename(first.Path, candidate))

	rep, err := EnsureArtifact(fastOpts(dir)...)
	require.NoError(t, err)
	assert.False(t, rep.Fallback)
	assert.Equal(t, candidate, rep.Path)
}

func TestVerifyFailsWhenEmpty(t *testing.T) {
	_, err := Verify(WithModelDir(t.TempDir()))
	assert.Error(t, err)
}

func TestVerifyFindsArtifact(t *testing.T) {
	dir := t.TempDir()
	created, err := EnsureArtifact(fastOpts(dir)...)
	require.NoError(t, err)
	require.NoError(t, os.Rename(created.Path, filepath.Join(dir, "lca_model.json")))

	rep, err := Verify(WithModelDir(dir))
	require.NoError(t, err)
	assert.False(t, rep.Fallback)
}

func TestVerifyCustomCandidates(t *testing.T) {
	dir := t.TempDir()
	created, err := EnsureArtifact(fastOpts(dir)...)
	require.NoError(t, err)
	require.NoError(t, os.Rename(created.Path, filepath.Join(dir, "mine.json")))

	_, err = Verify(WithModelDir(dir))
	assert.Error(t, err)

	rep, err := Verify(WithModelDir(dir), WithCandidates("mine.json"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mine.json"), rep.Path)
}

func TestWaitHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ok := WaitHealthy(context.Background(),
		WithHealthURL(srv.URL),
		WithHealthAttempts(3),
		WithHealthInterval(time.Millisecond))
	assert.True(t, ok)
}

func TestWaitHealthyTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	ok := WaitHealthy(context.Background(),
		WithHealthURL(srv.URL),
		WithHealthAttempts(2),
		WithHealthInterval(time.Millisecond))
	assert.False(t, ok)
}

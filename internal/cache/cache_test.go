package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	c := New(t.TempDir(), 24)

	payload := json.RawMessage(`{"scores": [1, 2, 3]}`)
	require.NoError(t, c.Set("swebench", payload))

	fetchedAt, data, ok := c.Get("swebench")
	require.True(t, ok)
	assert.JSONEq(t, string(payload), string(data))
	assert.WithinDuration(t, time.Now(), fetchedAt, time.Minute)
}

func TestGet_MissingKey(t *testing.T) {
	c := New(t.TempDir(), 24)

	_, _, ok := c.Get("nothing-here")
	assert.False(t, ok)
}

func TestGet_StaleEntry(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, 1)

	require.NoError(t, c.Set("arena", json.RawMessage(`{}`)))

	// An entry fetched over an hour ago with ttl_hours=1 is stale.
	c.now = func() time.Time { return time.Now().Add(61 * time.Minute) }
	_, _, ok := c.Get("arena")
	assert.False(t, ok)

	// The stale file is left on disk for a future Set to overwrite.
	_, err := os.Stat(filepath.Join(dir, "arena.json"))
	assert.NoError(t, err)
}

func TestGet_WholeHourBoundary(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, 1)

	require.NoError(t, c.Set("arena", json.RawMessage(`{}`)))

	// 59 minutes is zero whole hours, still fresh under ttl_hours=1.
	c.now = func() time.Time { return time.Now().Add(59 * time.Minute) }
	_, _, ok := c.Get("arena")
	assert.True(t, ok)
}

func TestGet_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, 24)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "aider.json"), []byte("not json {"), 0o644))

	_, _, ok := c.Get("aider")
	assert.False(t, ok)
}

func TestSet_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, 24)

	require.NoError(t, c.Set("livebench", json.RawMessage(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "livebench.json", entries[0].Name())
}

func TestSet_OverwritesStale(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, 24)

	require.NoError(t, c.Set("seal", json.RawMessage(`{"v": 1}`)))
	require.NoError(t, c.Set("seal", json.RawMessage(`{"v": 2}`)))

	_, data, ok := c.Get("seal")
	require.True(t, ok)
	assert.JSONEq(t, `{"v": 2}`, string(data))
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, 24)

	require.NoError(t, c.Set("a", json.RawMessage(`1`)))
	require.NoError(t, c.Set("b", json.RawMessage(`2`)))
	require.NoError(t, c.Clear())

	_, _, ok := c.Get("a")
	assert.False(t, ok)
	_, _, ok = c.Get("b")
	assert.False(t, ok)
}

func TestClear_MissingDirectory(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "never-created"), 24)
	assert.NoError(t, c.Clear())
}

func TestBypass(t *testing.T) {
	c := New(t.TempDir(), 24)

	require.NoError(t, c.Set("arena", json.RawMessage(`{}`)))

	c.SetBypass(true)
	_, _, ok := c.Get("arena")
	assert.False(t, ok, "bypass should turn every read into a miss")

	// Writes still land so a bypassed run refreshes the cache.
	require.NoError(t, c.Set("arena", json.RawMessage(`{"fresh": true}`)))
	c.SetBypass(false)
	_, data, ok := c.Get("arena")
	require.True(t, ok)
	assert.JSONEq(t, `{"fresh": true}`, string(data))
}

func TestDefaults(t *testing.T) {
	c := New("", 0)
	assert.NotEmpty(t, c.dir)
	assert.Equal(t, DefaultTTLHours, c.ttlHours)
}

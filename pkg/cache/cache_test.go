package cache

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCache_Basic(t *testing.T) {
	c := New(Options{MaxEntries: 3})

	c.Set(Result{ContentHash: "a", Pattern: "basic"})
	c.Set(Result{ContentHash: "b", Pattern: "parallel_for"})

	assert.Equal(t, 2, c.Len())

	res, found := c.Get("a")
	require.True(t, found)
	assert.Equal(t, "basic", res.Pattern)
	assert.NotZero(t, res.CreatedAt)

	_, found = c.Get("missing")
	assert.False(t, found)
}

func TestResultCache_Eviction(t *testing.T) {
	var evicted []string
	c := New(Options{
		MaxEntries: 2,
		OnEvict:    func(hash string, _ Result) { evicted = append(evicted, hash) },
	})

	c.Set(Result{ContentHash: "a"})
	c.Set(Result{ContentHash: "b"})

	// Touch 'a' so 'b' becomes least recently used.
	c.Get("a")
	c.Set(Result{ContentHash: "c"})

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"b"}, evicted)

	_, found := c.Get("b")
	assert.False(t, found, "b should have been evicted")
	_, found = c.Get("a")
	assert.True(t, found, "a should still be present")
}

func TestResultCache_SaveLoad(t *testing.T) {
	c := New(Options{MaxEntries: 10})
	c.Set(Result{
		ContentHash: "h1",
		Pattern:     "sparselu",
		DOT:         "digraph \"SparseLU_CFG\" {\n}\n",
		Checks:      map[string]bool{"has_entry_exit": true},
	})
	c.Set(Result{ContentHash: "h2", Pattern: "basic"})

	var buf bytes.Buffer
	require.NoError(t, c.Save(&buf))

	restored := New(Options{MaxEntries: 10})
	require.NoError(t, restored.Load(&buf))

	assert.Equal(t, 2, restored.Len())
	res, found := restored.Get("h1")
	require.True(t, found)
	assert.Equal(t, "sparselu", res.Pattern)
	assert.True(t, res.Checks["has_entry_exit"])
}

func TestResultCache_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.msgpack")

	c := New(Options{})
	c.Set(Result{ContentHash: "h1", Pattern: "task_parallel"})
	require.NoError(t, c.SaveFile(path))

	restored := New(Options{})
	require.NoError(t, restored.LoadFile(path))
	assert.Equal(t, 1, restored.Len())
}

func TestResultCache_LoadMissingFile(t *testing.T) {
	c := New(Options{})
	require.NoError(t, c.LoadFile(filepath.Join(t.TempDir(), "absent.msgpack")))
	assert.Equal(t, 0, c.Len())
}

func TestHashContent(t *testing.T) {
	a := HashContent([]byte("#pragma omp parallel"))
	b := HashContent([]byte("#pragma omp parallel"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, HashContent([]byte("#pragma omp task")))
	assert.Len(t, a, 64)
}

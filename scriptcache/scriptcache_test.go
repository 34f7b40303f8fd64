package scriptcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreAndLookup(t *testing.T) {
	dir, err := os.MkdirTemp("", "scriptcache")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	c, err := Open(filepath.Join(dir, "db"))
	require.NoError(t, err)
	defer c.Close()

	script := []byte{0x51, 0x87}

	_, found, err := c.Lookup(script, 0)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, c.Store(script, 0, true))

	valid, found, err := c.Lookup(script, 0)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, valid)
}

func TestLookupKeyedByFlags(t *testing.T) {
	dir, err := os.MkdirTemp("", "scriptcache")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	c, err := Open(filepath.Join(dir, "db"))
	require.NoError(t, err)
	defer c.Close()

	script := []byte{0x51}
	require.NoError(t, c.Store(script, 1, true))

	_, found, err := c.Lookup(script, 2)
	require.NoError(t, err)
	require.False(t, found, "a different flag set must miss the cache")
}

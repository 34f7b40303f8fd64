// Package scriptcache memoizes Interpret verdicts on disk so that a caller
// re-validating the same script bytes repeatedly (e.g. a node re-checking
// mempool transactions across reorgs) does not pay the evaluation cost
// twice.
package scriptcache

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

// Cache wraps a leveldb handle keyed by the double-SHA256 of the script
// bytes plus the flags they were evaluated under, so that the same script
// evaluated under two different ScriptFlags settings never collides.
type Cache struct {
	db *leveldb.DB
}

// Open opens (creating if necessary) a cache database at dir.
func Open(dir string) (*Cache, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, errors.Wrap(err, "opening script cache")
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached verdict for (script, flags), if present.
func (c *Cache) Lookup(script []byte, flags uint32) (valid bool, found bool, err error) {
	key := cacheKey(script, flags)
	v, err := c.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, errors.Wrap(err, "reading script cache")
	}
	return v[0] != 0, true, nil
}

// Store records the verdict for (script, flags).
func (c *Cache) Store(script []byte, flags uint32, valid bool) error {
	key := cacheKey(script, flags)
	v := byte(0)
	if valid {
		v = 1
	}
	return errors.Wrap(c.db.Put(key, []byte{v}, nil), "writing script cache")
}

func cacheKey(script []byte, flags uint32) []byte {
	h := sha256.New()
	h.Write(script)
	var flagBytes [4]byte
	binary.LittleEndian.PutUint32(flagBytes[:], flags)
	h.Write(flagBytes[:])
	sum := h.Sum(nil)
	second := sha256.Sum256(sum)
	return second[:]
}

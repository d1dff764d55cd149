// Package filecache is a small JSON-on-disk TTL cache.
package filecache

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Cache stores JSON documents under dir, one file per key.
type Cache struct {
	fs     afero.Fs
	dir    string
	ttl    time.Duration
	jitter time.Duration
	now    func() time.Time
}

// New returns a cache on the OS filesystem.
func New(dir string, ttl time.Duration) *Cache {
	return NewWithFs(afero.NewOsFs(), dir, ttl)
}

// NewWithFs returns a cache on an arbitrary filesystem.
func NewWithFs(fs afero.Fs, dir string, ttl time.Duration) *Cache {
	return &Cache{fs: fs, dir: dir, ttl: ttl, now: time.Now}
}

// WithJitter staggers expiry per key by up to max so entries written
// together do not all expire together.
func (c *Cache) WithJitter(max time.Duration) *Cache {
	c.jitter = max
	return c
}

// Key hashes the parts into a filesystem-safe key.
func Key(parts ...string) string {
	h := sha1.Sum([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(h[:])
}

// ttlFor is deterministic per key so the same key always gets the same TTL.
func (c *Cache) ttlFor(key string) time.Duration {
	if c.jitter <= 0 {
		return c.ttl
	}
	h := sha256.Sum256([]byte(key))
	n := binary.BigEndian.Uint64(h[:8])
	return c.ttl + time.Duration(n%uint64(c.jitter))
}

// Get decodes a fresh entry into v. Expired or unreadable entries report a miss.
func (c *Cache) Get(key string, v any) (bool, error) {
	return c.get(key, v, false)
}

// GetStale decodes an entry into v regardless of age.
func (c *Cache) GetStale(key string, v any) (bool, error) {
	return c.get(key, v, true)
}

func (c *Cache) get(key string, v any, allowStale bool) (bool, error) {
	if key == "" {
		return false, errors.New("empty key")
	}
	path := filepath.Join(c.dir, key+".json")
	fi, err := c.fs.Stat(path)
	if err != nil {
		return false, nil
	}
	if !allowStale && c.now().Sub(fi.ModTime()) > c.ttlFor(key) {
		return false, nil
	}
	f, err := c.fs.Open(path)
	if err != nil {
		return false, nil
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return false, nil
	}
	return true, nil
}

// Set writes v atomically (temp file + rename). Each write gets its own temp
// file, so concurrent writers of one key never share a partial file.
func (c *Cache) Set(key string, v any) error {
	if key == "" {
		return errors.New("empty key")
	}
	if err := c.fs.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	f, err := afero.TempFile(c.fs, c.dir, key+"-*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := json.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		_ = c.fs.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = c.fs.Remove(tmp)
		return err
	}
	if err := c.fs.Rename(tmp, filepath.Join(c.dir, key+".json")); err != nil {
		_ = c.fs.Remove(tmp)
		return err
	}
	return nil
}

// Clear removes all cached entries.
func (c *Cache) Clear() error {
	entries, err := afero.ReadDir(c.fs, c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		_ = c.fs.Remove(filepath.Join(c.dir, entry.Name()))
	}
	return nil
}

package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/s2"
	"github.com/vmihailenco/msgpack/v5"

	"mofmt/internal/version"
)

// Current schema version - increment when CachePayload format changes
const cacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

// Cache stores formatter results on disk, keyed by CacheKey.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the stored result of formatting one input.
type CachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Formatted text; equal to the input when Changed is false.
	Formatted []byte
	Changed   bool
}

// CacheKey hashes the input together with everything that can change the
// output: the options fingerprint and the formatter version.
func CacheKey(content []byte, fingerprint string) Digest {
	return combineDigest(sha256.Sum256(content),
		sha256.Sum256([]byte(fingerprint)),
		sha256.Sum256([]byte(version.Version)))
}

// combineDigest: H(first || rest...). Порядок аргументов значим.
func combineDigest(first Digest, rest ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(first[:])
	for _, d := range rest {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// OpenCache initializes a cache at the standard per-user location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		var err error
		base, err = os.UserCacheDir()
		if err != nil {
			return nil, err
		}
	}
	return OpenCacheDir(filepath.Join(base, app))
}

// OpenCacheDir initializes a cache rooted at dir.
func OpenCacheDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог по первому байту, чтобы не складывать всё в одну папку.
	return filepath.Join(c.dir, "fmt", hexKey[:2], hexKey+".mp.s2")
}

// Put serializes, compresses and writes a payload to the cache.
func (c *Cache) Put(key Digest, payload *CachePayload) (err error) {
	if c == nil {
		return nil
	}
	payload.Schema = cacheSchemaVersion
	raw, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}
	data := s2.Encode(nil, raw)

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload from the cache. Entries of another schema count as
// misses.
func (c *Cache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.pathFor(key))
	c.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	raw, err := s2.Decode(nil, data)
	if err != nil {
		return false, err
	}
	var payload CachePayload
	if err := msgpack.Unmarshal(raw, &payload); err != nil {
		return false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return false, nil
	}
	*out = payload
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// Package cache persists toolchain probe results between runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// SchemaVersion is the current payload format version - increment when
// ToolPayload changes shape. Producers stamp it into Schema.
const SchemaVersion uint16 = 1

// Digest - фиксированный 256 битный ключ записи.
type Digest [32]byte

// KeyOf строит ключ из строковых частей: H(part1 || 0 || part2 || 0 ...).
// Разделитель исключает склейку соседних частей.
func KeyOf(parts ...string) Digest {
	h := sha256.New()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// DiskCache хранит результаты probe на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// ToolPayload stores a probed tool's identity plus the stat of its binary,
// so that an upgraded toolchain invalidates the entry.
type ToolPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Tool identity
	Name    string
	Path    string
	Version string
	Release string
	Commit  string
	Date    string

	// Binary stat at probe time, for invalidation
	BinSize  int64
	BinMTime int64 // unix nanoseconds

	ProbedAt int64 // unix seconds
}

// Fresh reports whether the payload still describes the binary at its
// recorded path. A moved, rebuilt or upgraded binary is stale.
func (p *ToolPayload) Fresh() bool {
	if p == nil || p.Schema != SchemaVersion {
		return false
	}
	info, err := os.Stat(p.Path)
	if err != nil {
		return false
	}
	return info.Size() == p.BinSize && info.ModTime().UnixNano() == p.BinMTime
}

// Open initializes and returns a disk cache at the standard location.
func Open(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenAt returns a disk cache rooted at an explicit directory.
func OpenAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "tools".
	return filepath.Join(c.dir, "tools", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *ToolPayload) error {
	if c == nil {
		return nil
	}
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
		// После успешного rename временного имени уже нет.
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			_ = rmErr
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
// Returns false with no error when the entry does not exist.
func (c *DiskCache) Get(key Digest, out *ToolPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p) // #nosec G304 -- path is derived from a hex digest under the cache dir
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != SchemaVersion {
		// Старый формат трактуем как промах.
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
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
	return os.RemoveAll(old)
}

// Dir returns the cache root directory.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

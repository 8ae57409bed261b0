package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"cppts/internal/format"
)

// bump when DiskPayload changes shape
const diskCacheSchema uint16 = 1

// Digest keys the cache: sha256 over the source and everything that shapes
// the output.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// CacheKey digests file content together with the config fingerprint and
// the converter version. Parts are NUL-separated.
func CacheKey(content []byte, fingerprint, version string) Digest {
	h := sha256.New()
	for i, part := range [][]byte{content, []byte(fingerprint), []byte(version)} {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write(part)
	}
	var d Digest
	h.Sum(d[:0])
	return d
}

// DiskPayload is one cached conversion. Only successful conversions are
// stored.
type DiskPayload struct {
	Schema    uint16            `msgpack:"v"`
	Source    string            `msgpack:"src"` // informational
	Output    string            `msgpack:"out"`
	Overflows []format.Overflow `msgpack:"ovf,omitempty"`
	Formatted bool              `msgpack:"fmt"`
}

// DiskCache stores payloads as one msgpack file per Digest. Writes go through
// a temp file and a rename, so concurrent workers never see partial entries.
type DiskCache struct {
	root string
}

// OpenDiskCache opens (creating if needed) a cache rooted at dir. An empty
// dir selects <user cache dir>/app.
func OpenDiskCache(dir, app string) (*DiskCache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{root: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.root
}

func (c *DiskCache) entries() string { return filepath.Join(c.root, "ts") }

// entry fans keys out by their first byte.
func (c *DiskCache) entry(key Digest) string {
	name := key.String()
	return filepath.Join(c.entries(), name[:2], name+".mp")
}

// Put writes payload under key, replacing any previous entry.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil || payload == nil {
		return nil
	}
	payload.Schema = diskCacheSchema
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}

	dst := c.entry(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".put-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Rename(tmp.Name(), dst)
	}
	if werr != nil {
		_ = os.Remove(tmp.Name())
	}
	return werr
}

// Get fills out on a hit. Missing entries and entries of another schema are
// misses, not errors.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	data, err := os.ReadFile(c.entry(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var p DiskPayload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return false, err
	}
	if p.Schema != diskCacheSchema {
		return false, nil
	}
	*out = p
	return true, nil
}

// DropAll removes every entry; the cache stays usable.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	if err := os.RemoveAll(c.entries()); err != nil {
		return err
	}
	return os.MkdirAll(c.root, 0o755)
}

package driver

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"tokiwen/internal/program"
	"tokiwen/internal/project"
	"tokiwen/internal/source"
	"tokiwen/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит скомпилированные программы на диске по ключу из
// содержимого файла, ключевых слов и опций компилятора.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached compile.
type DiskPayload struct {
	Schema uint16
	Path   string
	// Object is the program in object-file form (program.WriteObject).
	Object []byte
}

// OpenDiskCache opens $XDG_CACHE_HOME/<app>, falling back to ~/.cache.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "programs", hexKey[:2], hexKey+".mp")
}

// Put stores prog under key.
func (c *DiskCache) Put(key project.Digest, path string, prog *program.Program) error {
	if c == nil {
		return nil
	}
	var obj bytes.Buffer
	if err := program.WriteObject(&obj, prog); err != nil {
		return err
	}
	payload := DiskPayload{Schema: diskCacheSchemaVersion, Path: path, Object: obj.Bytes()}

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
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get loads the program cached under key. A payload from an older schema
// counts as a miss.
func (c *DiskCache) Get(key project.Digest) (*program.Program, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var payload DiskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	prog, err := program.ReadObject(bytes.NewReader(payload.Object))
	if err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	return prog, true, nil
}

// DropAll removes every cached program.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "programs"))
}

// cacheKey covers everything that changes the output for file: its content,
// the keyword spellings, the compiler options and the toolchain itself.
func cacheKey(file *source.File, opts Options) project.Digest {
	return project.Combine(project.Digest(file.Hash),
		project.HashString(opts.Keywords.Fingerprint()),
		project.HashString("immediates="+strconv.FormatBool(opts.Immediates)),
		project.HashString(version.Fingerprint()),
	)
}

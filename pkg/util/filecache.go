// FileCache provides read access to many source files via memory-mapped
// regions. The usage counter scans every project file for component
// references; mmap keeps that scan cheap because only the pages the regex
// engine actually touches are loaded, and repeated scans of the same file
// hit the cache.
//
// Files that fail to mmap (empty files, exotic filesystems) fall back to
// os.ReadFile and are cached as plain byte slices.
package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// MappedFile is one cached file. Data can be sliced directly.
type MappedFile struct {
	Path string
	Data []byte

	// mapped is non-nil when Data is an mmap region that must be unmapped.
	mapped mmap.MMap
	file   *os.File
}

// FileCacheStats tracks cache behavior for observability.
type FileCacheStats struct {
	FilesCached  int
	CacheHits    int64
	CacheMisses  int64
	MmapFailures int64
}

// FileCache caches memory-mapped files. Safe for concurrent use: lookups
// take a read lock, loads take the write lock with a double-check.
type FileCache struct {
	maxFiles int
	logger   *slog.Logger

	mu    sync.RWMutex
	files map[string]*MappedFile

	statsMu sync.Mutex
	stats   FileCacheStats
}

// NewFileCache creates a cache holding at most maxFiles entries
// (0 = unlimited).
func NewFileCache(maxFiles int, logger *slog.Logger) *FileCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileCache{
		maxFiles: maxFiles,
		logger:   logger,
		files:    make(map[string]*MappedFile),
	}
}

// Get returns the mapped file, loading it on first access.
func (fc *FileCache) Get(path string) (*MappedFile, error) {
	fc.mu.RLock()
	if mf, ok := fc.files[path]; ok {
		fc.mu.RUnlock()
		fc.recordHit()
		return mf, nil
	}
	fc.mu.RUnlock()

	fc.mu.Lock()
	defer fc.mu.Unlock()

	// Another goroutine may have loaded it while we waited.
	if mf, ok := fc.files[path]; ok {
		fc.recordHit()
		return mf, nil
	}

	if fc.maxFiles > 0 && len(fc.files) >= fc.maxFiles {
		fc.recordMiss()
		return nil, fmt.Errorf("file cache limit reached (%d files)", fc.maxFiles)
	}

	mf, err := fc.load(path)
	if err != nil {
		fc.recordMiss()
		return nil, err
	}
	fc.files[path] = mf
	fc.recordMiss()
	return mf, nil
}

// Size returns the number of cached files.
func (fc *FileCache) Size() int {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return len(fc.files)
}

// Stats returns a snapshot of cache metrics.
func (fc *FileCache) Stats() FileCacheStats {
	fc.statsMu.Lock()
	defer fc.statsMu.Unlock()
	s := fc.stats
	fc.mu.RLock()
	s.FilesCached = len(fc.files)
	fc.mu.RUnlock()
	return s
}

// Close unmaps all files and clears the cache. Unmap errors are logged,
// not returned, so shutdown always completes.
func (fc *FileCache) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	for path, mf := range fc.files {
		if mf.mapped != nil {
			if err := mf.mapped.Unmap(); err != nil {
				fc.logger.Warn("failed to unmap file", "path", path, "error", err)
			}
		}
		if mf.file != nil {
			_ = mf.file.Close()
		}
	}
	fc.files = make(map[string]*MappedFile)
	return nil
}

func (fc *FileCache) load(path string) (*MappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	// mmap of an empty file fails on most platforms.
	if info.Size() == 0 {
		f.Close()
		return &MappedFile{Path: path, Data: nil}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		// Fallback: plain read.
		fc.recordMmapFailure()
		fc.logger.Debug("mmap failed, falling back to read", "path", path, "error", err)
		f.Close()
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, rerr)
		}
		return &MappedFile{Path: path, Data: data}, nil
	}

	return &MappedFile{Path: path, Data: m, mapped: m, file: f}, nil
}

func (fc *FileCache) recordHit() {
	fc.statsMu.Lock()
	fc.stats.CacheHits++
	fc.statsMu.Unlock()
}

func (fc *FileCache) recordMiss() {
	fc.statsMu.Lock()
	fc.stats.CacheMisses++
	fc.statsMu.Unlock()
}

func (fc *FileCache) recordMmapFailure() {
	fc.statsMu.Lock()
	fc.stats.MmapFailures++
	fc.statsMu.Unlock()
}

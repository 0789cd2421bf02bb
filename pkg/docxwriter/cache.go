package docxwriter

import (
	"container/list"
	"fmt"
	"os"
	"sync"
	"time"
)

// CacheConfig contains configuration options for the picture cache
type CacheConfig struct {
	// MaxSize is the maximum number of pictures to keep. 0 or less disables caching.
	MaxSize int
	// TTL is the time-to-live of a cached picture. 0 means no expiration.
	TTL time.Duration
}

// PictureCache keeps decoded pictures between builds, keyed by file path.
// An entry is used only while the file's size and modification time are
// unchanged. It is safe for concurrent use; a nil cache reads every time.
type PictureCache struct {
	mu     sync.Mutex
	cache  map[string]*cacheEntry
	lru    *list.List
	config CacheConfig

	hits, misses int
}

type cacheEntry struct {
	path    string
	picture *Picture
	size    int64
	modTime time.Time
	expiry  time.Time
	element *list.Element
}

// NewPictureCache creates a picture cache with the given configuration
func NewPictureCache(config CacheConfig) *PictureCache {
	return &PictureCache{
		cache:  make(map[string]*cacheEntry),
		lru:    list.New(),
		config: config,
	}
}

// Load returns the decoded picture stored at path
func (pc *PictureCache) Load(path string) (*Picture, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to read image: %s is a directory", path)
	}

	if pic, ok := pc.get(path, info); ok {
		return pic, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	pic, err := DecodePicture(data)
	if err != nil {
		return nil, err
	}
	pc.set(path, info, pic)
	return pic, nil
}

func (pc *PictureCache) get(path string, info os.FileInfo) (*Picture, bool) {
	if pc == nil || pc.config.MaxSize <= 0 {
		return nil, false
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()

	entry, exists := pc.cache[path]
	switch {
	case !exists:
		pc.misses++
		return nil, false
	case pc.config.TTL > 0 && time.Now().After(entry.expiry),
		entry.size != info.Size() || !entry.modTime.Equal(info.ModTime()):
		pc.remove(entry)
		pc.misses++
		return nil, false
	}

	pc.lru.MoveToFront(entry.element)
	pc.hits++
	return entry.picture, true
}

func (pc *PictureCache) set(path string, info os.FileInfo, pic *Picture) {
	if pc == nil || pc.config.MaxSize <= 0 {
		return
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if existing, exists := pc.cache[path]; exists {
		pc.remove(existing)
	}

	// Evict least recently used
	for pc.lru.Len() >= pc.config.MaxSize {
		pc.remove(pc.lru.Back().Value.(*cacheEntry))
	}

	entry := &cacheEntry{
		path:    path,
		picture: pic,
		size:    info.Size(),
		modTime: info.ModTime(),
	}
	if pc.config.TTL > 0 {
		entry.expiry = time.Now().Add(pc.config.TTL)
	}
	entry.element = pc.lru.PushFront(entry)
	pc.cache[path] = entry
}

// remove drops entry; pc.mu must be held
func (pc *PictureCache) remove(entry *cacheEntry) {
	delete(pc.cache, entry.path)
	pc.lru.Remove(entry.element)
}

// Clear removes all pictures from the cache
func (pc *PictureCache) Clear() {
	if pc == nil {
		return
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.cache = make(map[string]*cacheEntry)
	pc.lru = list.New()
}

// Size returns the current number of cached pictures
func (pc *PictureCache) Size() int {
	if pc == nil {
		return 0
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return len(pc.cache)
}

// Stats returns the number of cache hits and misses so far
func (pc *PictureCache) Stats() (hits, misses int) {
	if pc == nil {
		return 0, 0
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.hits, pc.misses
}

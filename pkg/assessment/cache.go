package assessment

import (
	"sync"

	"github.com/golang/snappy"
)

// reportCache memoizes serialized reports by fingerprint. Entries are stored
// snappy-compressed; a hit returns the exact bytes of the first run, so
// repeated assessments of an unchanged portfolio are byte-identical.
type reportCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func newReportCache() *reportCache {
	return &reportCache{entries: make(map[string][]byte)}
}

func (c *reportCache) get(key string) ([]byte, bool) {
	c.mu.RLock()
	compressed, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		// A corrupt entry is treated as a miss and overwritten on the
		// next put.
		return nil, false
	}
	return data, true
}

func (c *reportCache) put(key string, data []byte) {
	compressed := snappy.Encode(nil, data)
	c.mu.Lock()
	c.entries[key] = compressed
	c.mu.Unlock()
}

func (c *reportCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

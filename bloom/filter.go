// Package bloom deduplicates processed excerpts by content hash using a
// Bloom filter.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter is a concurrency-safe Bloom filter over content hashes.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected excerpts
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a content hash.
func (f *Filter) Add(hash string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(hash)
}

// Test returns true if the hash might have been recorded.
// False positives are possible; false negatives are not.
func (f *Filter) Test(hash string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(hash)
}

// Seen records hash and reports whether it might have been recorded
// before. Concurrent callers with the same hash see exactly one false.
func (f *Filter) Seen(hash string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestOrAddString(hash)
}

// EstimatedCount returns the approximate number of hashes in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
